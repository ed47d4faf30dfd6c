package diagram

import "github.com/bioproclab/fmex/internal/engine"

// Panel labels one cell of the layout grid.
type Panel struct {
	YLabel string
	XLabel string
}

// Layout is a fixed grid of panels. Panels are addressed row-major,
// starting at zero.
type Layout struct {
	Title  string
	Rows   int
	Cols   int
	Panels []Panel
}

// LinePatterns is the default pattern cycle: solid, dashed, dotted,
// dash-dot. The cycle advances once per render so repeated runs on the same
// panels stay distinguishable.
var LinePatterns = []string{"-", "--", ":", "-."}

// Cycle walks the line-pattern list.
type Cycle struct {
	patterns []string
	pos      int
}

func NewCycle(patterns []string) *Cycle {
	if len(patterns) == 0 {
		patterns = LinePatterns
	}
	return &Cycle{patterns: patterns, pos: -1}
}

// Next advances the cycle and returns the pattern index to draw with.
func (c *Cycle) Next() int {
	c.pos = (c.pos + 1) % len(c.patterns)
	return c.pos
}

// Pattern returns the textual pattern for an index.
func (c *Cycle) Pattern(i int) string {
	return c.patterns[i%len(c.patterns)]
}

// Reset rewinds the cycle, as a fresh layout does for a fresh plot window.
func (c *Cycle) Reset() { c.pos = -1 }

// Renderer draws a replayed action list. Implementations exist for gonum
// plot files and for the terminal.
type Renderer interface {
	Render(layout Layout, actions []Action, pattern int, res *engine.Result) error
}

// Registry is the ordered sequence of rendering actions tied to the current
// layout. It implements the session's renderer hook.
type Registry struct {
	layout    Layout
	actions   []Action
	cycle     *Cycle
	renderers []Renderer
}

func NewRegistry(renderers ...Renderer) *Registry {
	return &Registry{cycle: NewCycle(nil), renderers: renderers}
}

// SetLayout installs a new panel grid, clears every registered action and
// rewinds the pattern cycle.
func (r *Registry) SetLayout(l Layout) {
	r.layout = l
	r.actions = r.actions[:0]
	r.cycle.Reset()
}

// Append registers one rendering action. Replay order is append order.
func (r *Registry) Append(actions ...Action) {
	r.actions = append(r.actions, actions...)
}

// Layout returns the current panel grid.
func (r *Registry) Layout() Layout { return r.layout }

// Actions returns the registered actions in replay order.
func (r *Registry) Actions() []Action {
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Render advances the pattern cycle once and replays every action, in
// order, through every renderer.
func (r *Registry) Render(res *engine.Result) error {
	if len(r.actions) == 0 {
		return nil
	}
	pattern := r.cycle.Next()
	for _, renderer := range r.renderers {
		if err := renderer.Render(r.layout, r.actions, pattern, res); err != nil {
			return err
		}
	}
	return nil
}

package diagram

import (
	"fmt"
	"io"

	"github.com/bioproclab/fmex/internal/engine"
	"github.com/guptarohit/asciigraph"
)

// TermRenderer draws each action as a terminal graph after a run. Dash
// patterns do not apply on the terminal; the pattern index is shown in the
// caption instead so successive runs stay identifiable.
type TermRenderer struct {
	Out    io.Writer
	Height int
	Width  int
}

func NewTermRenderer(out io.Writer) *TermRenderer {
	return &TermRenderer{Out: out, Height: 10, Width: 80}
}

func (r *TermRenderer) Render(layout Layout, actions []Action, pattern int, res *engine.Result) error {
	for _, a := range actions {
		data, err := a.Series.Eval(res)
		if err != nil {
			return err
		}
		caption := a.Series.Label()
		if a.Panel < len(layout.Panels) && layout.Panels[a.Panel].YLabel != "" {
			caption = fmt.Sprintf("%s  %s", a.Series.Label(), layout.Panels[a.Panel].YLabel)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(r.Height),
			asciigraph.Width(r.Width),
			asciigraph.Caption(fmt.Sprintf("%s  (pen %s)", caption, LinePatterns[pattern%len(LinePatterns)])),
		)
		fmt.Fprintln(r.Out, graph)
		fmt.Fprintln(r.Out)
	}
	return nil
}

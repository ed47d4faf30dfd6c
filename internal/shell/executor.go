// Package shell is the interactive front end: a small command language over
// the session (par, init, simu, newplot, show, disp, describe, info,
// export) presented through a terminal UI.
package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bioproclab/fmex/internal/describe"
	"github.com/bioproclab/fmex/internal/diagram"
	"github.com/bioproclab/fmex/internal/engine"
	"github.com/bioproclab/fmex/internal/results"
	"github.com/bioproclab/fmex/internal/session"
)

// LayoutFunc builds a plot layout with its actions for a given title.
type LayoutFunc func(title string) (diagram.Layout, []diagram.Action)

// Executor runs one shell command at a time against the session. It is the
// command language without the terminal around it.
type Executor struct {
	Sess     *session.Session
	Desc     *describe.Describer
	Registry *diagram.Registry
	Results  *results.Store
	Layouts  map[string]LayoutFunc
	Opts     engine.Options

	// Duration is the run length used when simu is called without one.
	Duration float64

	lastMode session.Mode
}

// Exec parses and runs one command line, writing user-facing output to w.
func (e *Executor) Exec(w io.Writer, line string) error {
	fields := strings.Fields(strings.TrimSpace(line))
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		e.help(w)
		return nil
	case "par":
		return e.setValues(w, args, false)
	case "init":
		return e.setValues(w, args, true)
	case "simu":
		return e.simu(w, args)
	case "newplot":
		return e.newplot(w, args)
	case "show":
		return e.show(w)
	case "disp":
		if err := e.Desc.Eng.Load(); err != nil {
			return err
		}
		return e.disp(w, args)
	case "describe":
		if len(args) != 1 {
			fmt.Fprintln(w, "usage: describe <name>")
			return nil
		}
		if err := e.Desc.Eng.Load(); err != nil {
			return err
		}
		return e.Desc.Describe(w, args[0], 3)
	case "info":
		if err := e.Desc.Eng.Load(); err != nil {
			return err
		}
		return e.Desc.SystemInfo(w)
	case "export":
		return e.export(w)
	default:
		fmt.Fprintf(w, "unknown command %q, try help\n", cmd)
		return nil
	}
}

func (e *Executor) help(w io.Writer) {
	fmt.Fprintln(w, "Model for the bioreactor has been set up. Key commands:")
	fmt.Fprintln(w, " - par name=value ...   change parameters and initial values")
	fmt.Fprintln(w, " - init name=value ...  change initial values only")
	fmt.Fprintln(w, " - simu [T] [cont]      simulate T hours, fresh or continued")
	fmt.Fprintln(w, " - newplot [layout]     set up a new plot window")
	fmt.Fprintln(w, " - show                 replay diagrams from the last run")
	fmt.Fprintln(w, " - disp [filter]        display parameters and initial values")
	fmt.Fprintln(w, " - describe <name>      describe culture, broth, parameters, variables")
	fmt.Fprintln(w, " - info                 system and model provenance")
	fmt.Fprintln(w, " - export               save the last run to the data directory")
}

// setValues parses name=value pairs and applies them through the store.
func (e *Executor) setValues(w io.Writer, args []string, initOnly bool) error {
	if len(args) == 0 {
		fmt.Fprintln(w, "usage: par name=value [name=value ...]")
		return nil
	}
	updates := make(map[string]float64, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok {
			fmt.Fprintf(w, "Error: %q is not a name=value pair\n", arg)
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintf(w, "Error: %q is not a number\n", raw)
			continue
		}
		updates[name] = v
	}

	var report *session.UpdateReport
	if initOnly {
		report = e.Sess.Store().SetInitialValues(updates)
	} else {
		report = e.Sess.Store().SetParameters(updates)
	}
	for _, rej := range report.Rejected {
		fmt.Fprintf(w, "Error: %s - %s\n", rej.Name, rej.Reason)
	}
	if len(report.Violated) > 0 {
		fmt.Fprintln(w, "Error - the following requirements do not hold:")
		for _, expr := range report.Violated {
			fmt.Fprintln(w, " ", expr)
		}
	}
	return nil
}

func (e *Executor) simu(w io.Writer, args []string) error {
	duration := e.Duration
	mode := session.ModeInitial
	for _, arg := range args {
		switch strings.ToLower(arg) {
		case "cont", "continued":
			mode = session.ModeContinued
		case "init", "initial":
			mode = session.ModeInitial
		default:
			v, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				fmt.Fprintf(w, "Error: %q is neither a duration nor a mode\n", arg)
				return nil
			}
			duration = v
		}
	}

	res, err := e.Sess.Run(duration, mode, e.Opts)
	if err != nil {
		return err
	}
	e.lastMode = mode
	fmt.Fprintf(w, "Simulated %s over [%g, %g], %d points\n",
		mode, res.Time[0], res.FinalTime(), res.Len())
	return nil
}

func (e *Executor) newplot(w io.Writer, args []string) error {
	name := "basic"
	if len(args) > 0 {
		name = strings.ToLower(args[0])
	}
	build, ok := e.Layouts[name]
	if !ok {
		fmt.Fprintf(w, "unknown plot layout %q\n", name)
		return nil
	}
	title := "Stem cell perfusion cultivation"
	if len(args) > 1 {
		title = strings.Join(args[1:], " ")
	}
	layout, actions := build(title)
	e.Registry.SetLayout(layout)
	e.Registry.Append(actions...)
	fmt.Fprintf(w, "plot window %q ready, %d panels\n", name, len(layout.Panels))
	return nil
}

func (e *Executor) show(w io.Writer) error {
	res := e.Sess.LastResult()
	if res == nil {
		fmt.Fprintln(w, "Error: no simulation done")
		return nil
	}
	return e.Registry.Render(res)
}

func (e *Executor) disp(w io.Writer, args []string) error {
	filter := ""
	mode := describe.DispShort
	for _, arg := range args {
		if arg == "location" || arg == "long" {
			mode = describe.DispLocation
		} else {
			filter = arg
		}
	}
	return e.Desc.Disp(w, filter, mode, 3)
}

func (e *Executor) export(w io.Writer) error {
	res := e.Sess.LastResult()
	if res == nil {
		fmt.Fprintln(w, "Error: no simulation done")
		return nil
	}
	if err := e.Results.Init(); err != nil {
		return err
	}
	runID, err := e.Results.Save(e.lastMode.String(), e.Sess.Store().Values(),
		e.Sess.Engine().Provenance(), e.Opts, res)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, "saved", runID)
	return nil
}

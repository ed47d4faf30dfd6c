// Package describe answers read-only questions about the loaded model:
// variable descriptions and units, component listing, parameter display and
// provenance. Nothing here mutates session state.
package describe

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/bioproclab/fmex/internal/engine"
	"github.com/bioproclab/fmex/internal/session"
)

// InteractionVersion identifies this interaction layer in system info.
const InteractionVersion = "fmex version 1.0.0"

// Describer bundles the collaborators the queries need.
type Describer struct {
	Eng   engine.Engine
	Store *session.ParameterStore

	// CultureInfo answers "describe culture" for the loaded application.
	CultureInfo string
	// SeedComponents pre-populates the component listing.
	SeedComponents []string
	// MSLInfo names the standard-library version the model was built with.
	MSLInfo string
}

// Describe looks up one name: the reserved words time, culture, broth and
// parts first, then logical parameter names, then raw model variables.
func (d *Describer) Describe(w io.Writer, name string, decimals int) error {
	switch name {
	case "time":
		fmt.Fprintln(w, "Time [h]")
		return nil
	case "culture":
		fmt.Fprintln(w, d.CultureInfo)
		return nil
	case "broth", "liquidphase", "media":
		return d.describeBroth(w)
	case "parts":
		return d.Parts(w)
	case "MSL":
		fmt.Fprintln(w, "MSL:", d.MSLInfo)
		return nil
	}
	return d.describeGeneral(w, name, decimals)
}

// describeBroth lists the substances of the liquid phase with their medium
// index and molecular weight.
func (d *Describer) describeBroth(w io.Writer) error {
	fmt.Fprintln(w, "Reactor broth substances included in the model")
	fmt.Fprintln(w)
	for i, sub := range []string{"X", "G", "L"} {
		name := "liquidphase." + sub
		desc, err := d.Eng.VariableDescription(name)
		if err != nil {
			return err
		}
		index, err := d.Eng.Get(name)
		if err != nil {
			return err
		}
		mw, err := d.Eng.Get(fmt.Sprintf("liquidphase.mw[%d]", i+1))
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s   index = %.0f   molecular weight = %g Da\n", desc, index, mw)
	}
	return nil
}

// describeGeneral resolves a logical parameter name through the store when
// possible, otherwise queries the engine directly. A missing unit is
// non-fatal and renders without brackets.
func (d *Describer) describeGeneral(w io.Writer, name string, decimals int) error {
	location := name
	if d.Store != nil {
		if loc, ok := d.Store.Location(name); ok {
			location = loc
		}
	}
	desc, err := d.Eng.VariableDescription(location)
	if err != nil {
		return err
	}
	value, err := d.Eng.Get(location)
	if err != nil {
		return err
	}
	unit, err := d.Eng.VariableUnit(location)
	if err != nil {
		if !errors.Is(err, engine.ErrNoUnit) {
			return err
		}
		unit = ""
	}
	if unit == "" {
		fmt.Fprintf(w, "%s : %g\n", desc, roundTo(value, decimals))
		return nil
	}
	fmt.Fprintf(w, "%s : %g [%s]\n", desc, roundTo(value, decimals), unit)
	return nil
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

package describe

import (
	"fmt"
	"io"
	"strings"
)

// DispMode selects the display form of the parameter listing.
type DispMode int

const (
	// DispShort prints "name : value".
	DispShort DispMode = iota
	// DispLocation also prints the engine location of each entry.
	DispLocation
)

// Disp lists declared parameters and initial values whose engine location
// matches the filter, read back from the engine rather than the store.
// When no location matches, logical names are matched instead.
func (d *Describer) Disp(w io.Writer, filter string, mode DispMode, decimals int) error {
	matched := false
	byLocation := func(name, location string) bool { return strings.Contains(location, filter) }
	byName := func(name, location string) bool { return strings.Contains(name, filter) }

	for _, match := range []func(string, string) bool{byLocation, byName} {
		for _, name := range d.Store.Names() {
			location, _ := d.Store.Location(name)
			if !match(name, location) {
				continue
			}
			value, err := d.Eng.Get(location)
			if err != nil {
				return err
			}
			matched = true
			switch mode {
			case DispLocation:
				fmt.Fprintf(w, "%s : %s : %g\n", location, name, roundTo(value, decimals))
			default:
				fmt.Fprintf(w, "%s : %g\n", name, roundTo(value, decimals))
			}
		}
		if matched {
			return nil
		}
	}
	return nil
}

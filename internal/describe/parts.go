package describe

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// componentStoplist filters exporter bookkeeping and vendor prefixes out of
// the component listing.
var componentStoplist = map[string]bool{
	"BPL":      true,
	"Customer": true,
	"today[1]": true,
	"today[2]": true,
	"today[3]": true,
}

// scratchComponents are exporter-internal prefixes that never name a model
// part.
var scratchComponents = map[string]bool{
	"der":    true,
	"temp_1": true,
	"temp_2": true,
	"temp_3": true,
	"temp_4": true,
	"temp_5": true,
	"temp_6": true,
	"temp_7": true,
}

// componentOf extracts the sub-component prefix of a fully qualified
// variable name: everything up to the first separator. Underscore-prefixed
// and scratch names yield the empty string.
func componentOf(name string) string {
	if name == "" || name[0] == '_' {
		return ""
	}
	comp := name
	if i := strings.IndexAny(name, ".("); i >= 0 {
		comp = name[:i]
	}
	if scratchComponents[comp] {
		return ""
	}
	return comp
}

// Components enumerates the model's sub-components: the seed list plus
// every distinct variable prefix that survives the stoplist, sorted
// case-insensitively.
func (d *Describer) Components() []string {
	list := make([]string, 0, len(d.SeedComponents))
	seen := make(map[string]bool)
	for _, c := range d.SeedComponents {
		list = append(list, c)
		seen[c] = true
	}
	for name := range d.Eng.ModelVariables() {
		c := componentOf(name)
		if c == "" || componentStoplist[c] || seen[c] {
			continue
		}
		seen[c] = true
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return strings.ToLower(list[i]) < strings.ToLower(list[j])
	})
	return list
}

// Parts prints the component listing.
func (d *Describer) Parts(w io.Writer) error {
	fmt.Fprintln(w, strings.Join(d.Components(), "  "))
	return nil
}

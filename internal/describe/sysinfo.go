package describe

import (
	"fmt"
	"io"
	"runtime"
)

// SystemInfo prints the provenance of the loaded model and of the
// interaction layer around it.
func (d *Describer) SystemInfo(w io.Writer) error {
	p := d.Eng.Provenance()
	fmt.Fprintln(w, "System information")
	fmt.Fprintln(w, " -OS:", runtime.GOOS)
	fmt.Fprintln(w, " -Go:", runtime.Version())
	fmt.Fprintln(w, " -Model by:", p.GenerationTool)
	fmt.Fprintln(w, " -Format:", p.FormatVersion)
	fmt.Fprintln(w, " -Name:", p.ModelName)
	fmt.Fprintln(w, " -Generated:", p.GeneratedAt)
	fmt.Fprintln(w, " -MSL:", d.MSLInfo)
	fmt.Fprintln(w, " -Interaction:", InteractionVersion)
	return nil
}

// Package perfusion is the built-in reference engine: a perfusion
// bioreactor with a stem-cell culture, exposed through the same narrow
// surface an externally compiled model binary would offer. It exists so the
// CLI and the end-to-end tests have a real collaborator to drive.
package perfusion

import (
	"math"

	"github.com/bioproclab/fmex/internal/solver"
)

// State vector layout.
const (
	ixN  = iota // viable cell density [1E6/L]
	ixG         // glucose [g/L]
	ixL         // lactate [g/L]
	ixDO        // dissolved oxygen [% air saturation]
	ixFy        // DO sensor filter output [%]
	stateDim
)

// culture holds the kinetic parameters of the cell line.
type culture struct {
	QNmax  float64 // max specific growth rate [1/h]
	Ks     float64 // glucose half-saturation [g/L]
	KiL    float64 // lactate inhibition constant [g/L]
	Kd     float64 // lactate-mediated death rate [L/(g*h)]
	Qm     float64 // maintenance glucose uptake [g/(h*1E6)]
	Yns    float64 // glucose use per growth [g/1E6]
	QLpMax float64 // max lactate production rate [g/(h*1E6)]
	KLc    float64 // lactate consumption half-saturation [g/L]
	YO2    float64 // oxygen use per growth [mg/1E6]
	MO2    float64 // maintenance oxygen uptake [mg/(h*1E6)]
}

// reactor holds the vessel and supply parameters.
type reactor struct {
	Vcc   float64 // working volume [L]
	Gin   float64 // feed glucose [g/L]
	Scale float64 // lactate balance scale correction
	CL0   float64 // oxygen solubility at saturation [mg/L]
	OTR   float64 // oxygen transfer rate [mg/h]
	Tf    float64 // DO sensor filter time constant [h]
}

// model is the ODE right-hand side of the perfusion cultivation.
type model struct {
	cul culture
	rea reactor
}

func defaultModel() model {
	return model{
		cul: culture{
			QNmax:  0.040,
			Ks:     0.5,
			KiL:    30.0,
			Kd:     1.0e-4,
			Qm:     1.0e-6,
			Yns:    0.013,
			QLpMax: 0.008,
			KLc:    5.0,
			YO2:    0.40,
			MO2:    1.0e-4,
		},
		rea: reactor{
			Vcc:   0.040,
			Gin:   5.5,
			Scale: 1000.0,
			CL0:   8.0,
			OTR:   21.0,
			Tf:    0.5,
		},
	}
}

func (m model) Dim() int { return stateDim }

// feed is the perfusion schedule: off during attachment, then two fixed
// rate steps. Step-shaped on purpose so the F panel draws as a staircase.
func (m model) feed(t float64) float64 {
	switch {
	case t < 24:
		return 0
	case t < 96:
		return 0.002
	default:
		return 0.004
	}
}

// rates evaluates the specific rates at one state point.
type rates struct {
	qN, qNmax, qG, qLp, qLc, qO2 float64
}

func (m model) rates(x solver.State) rates {
	g := math.Max(x[ixG], 0)
	l := math.Max(x[ixL], 0)

	var r rates
	r.qNmax = m.cul.QNmax
	r.qN = m.cul.QNmax * g / (m.cul.Ks + g) * m.cul.KiL / (m.cul.KiL + l)
	r.qG = m.cul.Yns*r.qN + m.cul.Qm
	r.qLp = m.cul.QLpMax * g / (m.cul.Ks + g)
	r.qLc = m.cul.QLpMax / 4 * l / (m.cul.KLc + l) * m.cul.Ks / (m.cul.Ks + g)
	r.qO2 = m.cul.YO2*r.qN + m.cul.MO2
	return r
}

func (m model) Derive(x solver.State, t float64) solver.State {
	r := m.rates(x)
	f := m.feed(t)
	d := f / m.rea.Vcc // dilution [1/h], cells retained by the filter
	n := math.Max(x[ixN], 0)

	// Oxygen balance in percent of air saturation; OTR/CL0 acts as the
	// transfer coefficient.
	kla := m.rea.OTR / m.rea.CL0
	our := r.qO2 * n * 100 / (m.rea.CL0 * m.rea.Scale)

	dx := make(solver.State, stateDim)
	dx[ixN] = r.qN*n - m.cul.Kd*x[ixL]*n
	dx[ixG] = d*(m.rea.Gin-x[ixG]) - r.qG*n
	dx[ixL] = -d*x[ixL] + (r.qLp-r.qLc)*n*m.rea.Scale/1000
	dx[ixDO] = kla*(100-x[ixDO]) - our
	dx[ixFy] = (x[ixDO] - x[ixFy]) / m.rea.Tf
	return dx
}

// defaultInitial is the state the model starts from after a reset.
func (m model) defaultInitial() solver.State {
	x := make(solver.State, stateDim)
	x[ixN] = 50
	x[ixG] = 5.0
	x[ixL] = 0
	x[ixDO] = 100
	x[ixFy] = 100
	return x
}

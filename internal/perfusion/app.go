package perfusion

import (
	"github.com/bioproclab/fmex/internal/diagram"
	"github.com/bioproclab/fmex/internal/session"
)

// CultureInfo is the one-line answer to "describe culture".
const CultureInfo = "Reactor culture human-induced pluripotent stem cells - hiPSCs"

// MinimumComponents seeds the component listing before model variables are
// scanned.
var MinimumComponents = []string{"bioreactor", "bioreactor.culture"}

// Parameters declares the tunable parameters and initial values of the
// perfusion application with their engine locations and default values.
func Parameters() *session.ParameterStore {
	s := session.NewParameterStore()
	s.Declare("Vcc", "bioreactor.Vcc", 0.040)           // L
	s.Declare("N_start", "bioreactor.c_start[1]", 50)   // 1E6
	s.Declare("DO_start", "bioreactor.DO_start", 100)   // %
	s.Declare("qm", "bioreactor.culture.qm", 1.0e-6)    // g/(h*1E6)
	s.Declare("Yns", "bioreactor.culture.Yns", 0.013)   // g/1E6
	s.Declare("qLpmax", "bioreactor.culture.qLpmax", 0.008)
	s.Declare("scale", "bioreactor.scale", 1000.0)
	s.Declare("CL0", "bioreactor.CL0", 8.0)  // mg/L
	s.Declare("OTR", "airsupply.OTR", 21)    // mg/h

	s.AddConstraint(session.Constraint{
		Expr:  "Vcc > 0",
		Check: func(v session.Values) bool { return v["Vcc"] > 0 },
	})
	s.AddConstraint(session.Constraint{
		Expr:  "OTR >= 0",
		Check: func(v session.Values) bool { return v["OTR"] >= 0 },
	})
	return s
}

// BasicLayout is the standard six-panel time-series window.
func BasicLayout(title string) (diagram.Layout, []diagram.Action) {
	layout := diagram.Layout{
		Title: title,
		Rows:  6,
		Cols:  1,
		Panels: []diagram.Panel{
			{YLabel: "N [1E6]"},
			{YLabel: "G [g/L]"},
			{YLabel: "L [g/L]"},
			{YLabel: "DO [%]"},
			{YLabel: "Vcc [L]"},
			{YLabel: "F [L/h]", XLabel: "Time [h]"},
		},
	}
	actions := []diagram.Action{
		{Panel: 0, Series: diagram.Name("N"), Style: diagram.StyleLine, Color: diagram.ColorBlue},
		{Panel: 1, Series: diagram.Name("G"), Style: diagram.StyleLine, Color: diagram.ColorBlue, YMin: diagram.Float(0)},
		{Panel: 2, Series: diagram.Name("L"), Style: diagram.StyleLine, Color: diagram.ColorBlue},
		{Panel: 3, Series: diagram.Name("DO"), Style: diagram.StyleLine, Color: diagram.ColorBlue, YMin: diagram.Float(0)},
		{Panel: 4, Series: diagram.Name("Vcc"), Style: diagram.StyleLine, Color: diagram.ColorBlue, YMin: diagram.Float(0), YMax: diagram.Float(0.050)},
		{Panel: 5, Series: diagram.Name("F"), Style: diagram.StyleStep, Color: diagram.ColorBlue},
	}
	return layout, actions
}

// ComprehensiveLayout adds the specific-rate panels next to the basic ones.
func ComprehensiveLayout(title string) (diagram.Layout, []diagram.Action) {
	layout := diagram.Layout{
		Title: title,
		Rows:  5,
		Cols:  2,
		Panels: []diagram.Panel{
			{YLabel: "N [1E6]"}, {YLabel: "qN [1/h]"},
			{YLabel: "G [g/L]"}, {YLabel: "qG [g/(h*1E6)]"},
			{YLabel: "L [g/L]"}, {YLabel: "qL [g/(h*1E6)]"},
			{YLabel: "DO [%]"}, {YLabel: "qO2 [mg/(h*1E6)]"},
			{YLabel: "F [L/h]", XLabel: "Time [h]"}, {YLabel: "OUR [mg/h]", XLabel: "Time [h]"},
		},
	}
	actions := []diagram.Action{
		{Panel: 0, Series: diagram.Name("N"), Style: diagram.StyleLine, Color: diagram.ColorBlue},
		{Panel: 2, Series: diagram.Name("G"), Style: diagram.StyleLine, Color: diagram.ColorBlue, YMin: diagram.Float(0)},
		{Panel: 4, Series: diagram.Name("L"), Style: diagram.StyleLine, Color: diagram.ColorBlue},
		{Panel: 6, Series: diagram.Name("DO"), Style: diagram.StyleLine, Color: diagram.ColorBlue, YMin: diagram.Float(0)},
		{Panel: 8, Series: diagram.Name("F"), Style: diagram.StyleStep, Color: diagram.ColorBlue},

		{Panel: 1, Series: diagram.Name("qN"), Style: diagram.StyleLine, Color: diagram.ColorBlue},
		{Panel: 1, Series: diagram.Name("qNmax"), Style: diagram.StyleStep, Color: diagram.ColorRed},
		{Panel: 3, Series: diagram.Name("qG"), Style: diagram.StyleLine, Color: diagram.ColorBlue},
		{Panel: 5, Series: diagram.Diff("qLp", "qLc"), Style: diagram.StyleLine, Color: diagram.ColorBlue},
		{Panel: 5, Series: diagram.Name("qLp"), Style: diagram.StyleLine, Color: diagram.ColorGreen},
		{Panel: 5, Series: diagram.Name("qLc"), Style: diagram.StyleStep, Color: diagram.ColorRed},
		{Panel: 7, Series: diagram.Name("qO2"), Style: diagram.StyleStep, Color: diagram.ColorRed},
		{Panel: 9, Series: diagram.Product("N", "qO2"), Style: diagram.StyleLine, Color: diagram.ColorBlue},
	}
	return layout, actions
}

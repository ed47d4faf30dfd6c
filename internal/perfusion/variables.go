package perfusion

import "github.com/bioproclab/fmex/internal/engine"

// stateNames is the engine-order list of state variables. The exporter
// names array states with a bracketed index and filter-block states with
// the fixed control-block suffix.
var stateNames = []string{
	"bioreactor.c[1]",
	"bioreactor.c[2]",
	"bioreactor.c[3]",
	"bioreactor.DO",
	"pump.controlI.y",
}

// initLocations maps initialization-parameter locations to state indices.
var initLocations = map[string]int{
	"bioreactor.c_start[1]": ixN,
	"bioreactor.c_start[2]": ixG,
	"bioreactor.c_start[3]": ixL,
	"bioreactor.DO_start":   ixDO,
	"pump.I_start":          ixFy,
}

// stateLocations maps state variable names to state indices.
var stateLocations = map[string]int{
	"bioreactor.c[1]": ixN,
	"bioreactor.c[2]": ixG,
	"bioreactor.c[3]": ixL,
	"bioreactor.DO":   ixDO,
	"pump.controlI.y": ixFy,
}

// substance index and molecular weight table of the liquid phase.
var liquidphase = map[string]float64{
	"liquidphase.X":     1,
	"liquidphase.G":     2,
	"liquidphase.L":     3,
	"liquidphase.mw[1]": 24.6,
	"liquidphase.mw[2]": 180.16,
	"liquidphase.mw[3]": 90.08,
}

// variables is the model metadata table, keyed by fully qualified name.
// Entries with an empty unit have no declared unit; unit queries on them
// fail and callers substitute an empty string.
var variables = map[string]engine.Variable{
	"bioreactor.Vcc":            {Description: "Working volume of the cell culture", Unit: "L", Causality: engine.CausalityParameter},
	"bioreactor.scale":          {Description: "Correction factor of the lactate balance", Causality: engine.CausalityParameter},
	"bioreactor.CL0":            {Description: "Oxygen solubility at air saturation", Unit: "mg/L", Causality: engine.CausalityParameter},
	"bioreactor.culture.qm":     {Description: "Maintenance glucose uptake rate", Unit: "g/(h*1E6)", Causality: engine.CausalityParameter},
	"bioreactor.culture.Yns":    {Description: "Glucose use per unit of cell growth", Unit: "g/1E6", Causality: engine.CausalityParameter},
	"bioreactor.culture.qLpmax": {Description: "Maximal lactate production rate", Unit: "g/(h*1E6)", Causality: engine.CausalityParameter},
	"airsupply.OTR":             {Description: "Oxygen transfer rate of the aeration", Unit: "mg/h", Causality: engine.CausalityParameter},

	"bioreactor.c_start[1]": {Description: "Initial viable cell density", Unit: "1E6/L", Causality: engine.CausalityParameter},
	"bioreactor.c_start[2]": {Description: "Initial glucose concentration", Unit: "g/L", Causality: engine.CausalityParameter},
	"bioreactor.c_start[3]": {Description: "Initial lactate concentration", Unit: "g/L", Causality: engine.CausalityParameter},
	"bioreactor.DO_start":   {Description: "Initial dissolved oxygen level", Unit: "%", Causality: engine.CausalityParameter},
	"pump.I_start":          {Description: "Initial DO sensor filter output", Unit: "%", Causality: engine.CausalityParameter},

	"bioreactor.c[1]": {Description: "Viable cell density", Unit: "1E6/L", Causality: engine.CausalityState},
	"bioreactor.c[2]": {Description: "Glucose concentration", Unit: "g/L", Causality: engine.CausalityState},
	"bioreactor.c[3]": {Description: "Lactate concentration", Unit: "g/L", Causality: engine.CausalityState},
	"bioreactor.DO":   {Description: "Dissolved oxygen level", Unit: "%", Causality: engine.CausalityState},
	"pump.controlI.y": {Description: "Filtered dissolved oxygen signal", Unit: "%", Causality: engine.CausalityState},

	"liquidphase.X":     {Description: "Cells - stem cells hiPSC", Causality: engine.CausalityLocal},
	"liquidphase.G":     {Description: "Glucose - substrate", Causality: engine.CausalityLocal},
	"liquidphase.L":     {Description: "Lactate - product", Causality: engine.CausalityLocal},
	"liquidphase.mw[1]": {Description: "Cell molecular weight per carbon", Unit: "Da", Causality: engine.CausalityLocal},
	"liquidphase.mw[2]": {Description: "Glucose molecular weight", Unit: "Da", Causality: engine.CausalityLocal},
	"liquidphase.mw[3]": {Description: "Lactate molecular weight", Unit: "Da", Causality: engine.CausalityLocal},

	"airsupply.F_air":   {Description: "Air flow through the sparger", Unit: "L/h", Causality: engine.CausalityLocal},
	"pump.F":            {Description: "Perfusion feed rate", Unit: "L/h", Causality: engine.CausalityOutput},
	"der(bioreactor.c[1])": {Description: "Time derivative of viable cell density", Causality: engine.CausalityLocal},
	"der(bioreactor.DO)":   {Description: "Time derivative of dissolved oxygen", Causality: engine.CausalityLocal},
	"temp_1":               {Description: "Exporter scratch variable", Causality: engine.CausalityLocal},
	"_eventCounter":        {Description: "Exporter event bookkeeping", Causality: engine.CausalityLocal},
}

// seriesNames is what each simulation samples into the result, beyond time.
var seriesNames = []string{
	"N", "G", "L", "DO", "Vcc", "F",
	"qN", "qNmax", "qG", "qLp", "qLc", "qO2",
}

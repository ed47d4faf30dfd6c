package perfusion_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bioproclab/fmex/internal/engine"
	"github.com/bioproclab/fmex/internal/perfusion"
	"github.com/bioproclab/fmex/internal/session"
)

var _ = Describe("running the session against the reference engine", func() {
	var (
		eng  *perfusion.Engine
		sess *session.Session
	)

	BeforeEach(func() {
		eng = perfusion.New()
		sess = session.New(eng, perfusion.Parameters(), nil)
	})

	It("captures every state after an initial run", func() {
		res, err := sess.Run(100, session.ModeInitial, engine.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.FinalTime()).To(Equal(100.0))
		Expect(sess.PrevFinalTime()).To(Equal(100.0))

		for _, name := range eng.StateNames() {
			v, ok := sess.Continuation().Value(name)
			Expect(ok).To(BeTrue(), "state %q not captured", name)
			Expect(math.IsNaN(v)).To(BeFalse())
		}
	})

	It("continues exactly from the previous final state", func() {
		_, err := sess.Run(100, session.ModeInitial, engine.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		captured := map[string]float64{}
		for _, name := range eng.StateNames() {
			v, _ := sess.Continuation().Value(name)
			captured[name] = v
		}

		res, err := sess.Run(50, session.ModeContinued, engine.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Time[0]).To(Equal(100.0))
		Expect(res.FinalTime()).To(Equal(150.0))
		Expect(sess.PrevFinalTime()).To(Equal(150.0))

		// The continued run's first sample is the seeded initial state,
		// which must equal the captured final state of the first run.
		n, err := res.Get("N")
		Expect(err).NotTo(HaveOccurred())
		Expect(n[0]).To(Equal(captured["bioreactor.c[1]"]))
		do, err := res.Get("DO")
		Expect(err).NotTo(HaveOccurred())
		Expect(do[0]).To(Equal(captured["bioreactor.DO"]))
	})

	It("matches a single long run within solver tolerance", func() {
		_, err := sess.Run(100, session.ModeInitial, engine.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())
		res, err := sess.Run(50, session.ModeContinued, engine.DefaultOptions())
		Expect(err).NotTo(HaveOccurred())

		ref := perfusion.New()
		Expect(ref.Load()).To(Succeed())
		long, err := ref.Simulate(0, 150, engine.Options{NCP: 750})
		Expect(err).NotTo(HaveOccurred())

		n, _ := res.Get("N")
		nLong, _ := long.Get("N")
		Expect(n[len(n)-1]).To(BeNumerically("~", nLong[len(nLong)-1], 1e-3))
	})

	It("refuses a continued run before any initial run", func() {
		_, err := sess.Run(50, session.ModeContinued, engine.DefaultOptions())
		Expect(err).To(MatchError(session.ErrContinuationWithoutRun))
	})

	It("aborts before the engine when a parameter value is missing", func() {
		report := sess.Store().SetParameters(map[string]float64{"OTR": math.NaN()})
		Expect(report.OK()).To(BeTrue())

		_, err := sess.Run(100, session.ModeInitial, engine.DefaultOptions())
		var missing *session.MissingValueError
		Expect(err).To(BeAssignableToTypeOf(missing))
		Expect(err.(*session.MissingValueError).Names).To(ConsistOf("OTR"))
	})
})

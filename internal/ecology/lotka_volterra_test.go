package ecology_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/alidh/modelab/internal/analysis"
	"github.com/alidh/modelab/internal/ecology"
	"github.com/alidh/modelab/internal/integrators"
	"github.com/alidh/modelab/internal/sim"
)

var _ = Describe("LotkaVolterra", func() {
	classic := ecology.Params{Alpha: 1.0, Beta: 0.1, Delta: 0.075, Gamma: 1.5}

	Describe("parameter validation", func() {
		It("rejects non-positive rates", func() {
			bad := []ecology.Params{
				{Alpha: 0, Beta: 0.1, Delta: 0.075, Gamma: 1.5},
				{Alpha: 1.0, Beta: -0.1, Delta: 0.075, Gamma: 1.5},
				{Alpha: 1.0, Beta: 0.1, Delta: 0, Gamma: 1.5},
				{Alpha: 1.0, Beta: 0.1, Delta: 0.075, Gamma: -1},
				{},
			}
			for _, p := range bad {
				_, err := ecology.NewLotkaVolterra(p)
				Expect(err).To(MatchError(sim.ErrInvalidParameters))
			}
		})

		It("rejects non-finite rates", func() {
			p := classic
			p.Beta = math.NaN()
			_, err := ecology.NewLotkaVolterra(p)
			Expect(err).To(MatchError(sim.ErrInvalidParameters))
		})

		It("rejects negative initial populations", func() {
			_, err := ecology.Simulate(context.Background(), classic, -1, 5, 10, 0.01, nil)
			Expect(err).To(MatchError(sim.ErrInvalidParameters))
		})

		It("rejects non-positive duration and step", func() {
			_, err := ecology.Simulate(context.Background(), classic, 10, 5, 0, 0.01, nil)
			Expect(err).To(MatchError(sim.ErrInvalidParameters))

			_, err = ecology.Simulate(context.Background(), classic, 10, 5, 10, -0.01, nil)
			Expect(err).To(MatchError(sim.ErrInvalidParameters))
		})

		It("fails before any stepping on invalid input", func() {
			result, err := ecology.Simulate(context.Background(), classic, 10, 5, 10, 0, nil)
			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("dynamics", func() {
		It("has zero derivative at the nontrivial equilibrium", func() {
			model, err := ecology.NewLotkaVolterra(classic)
			Expect(err).NotTo(HaveOccurred())

			xEq, yEq := model.Equilibrium()
			Expect(xEq).To(BeNumerically("~", 20.0, 1e-12))
			Expect(yEq).To(BeNumerically("~", 10.0, 1e-12))

			dx := model.Derive(sim.State{xEq, yEq}, 0)
			Expect(dx[0]).To(BeNumerically("~", 0, 1e-12))
			Expect(dx[1]).To(BeNumerically("~", 0, 1e-12))
		})

		It("keeps prey at zero when starting without prey", func() {
			result, err := ecology.Simulate(context.Background(), classic, 0, 5, 10, 0.01, nil)
			Expect(err).NotTo(HaveOccurred())

			for _, s := range result.States {
				Expect(s[0]).To(BeNumerically("~", 0, 1e-12))
			}
		})

		It("keeps predators at zero when starting without predators", func() {
			result, err := ecology.Simulate(context.Background(), classic, 10, 0, 10, 0.01, nil)
			Expect(err).NotTo(HaveOccurred())

			for _, s := range result.States {
				Expect(s[1]).To(BeNumerically("~", 0, 1e-12))
			}
		})

		It("exposes parameters through the configurable interface", func() {
			model, err := ecology.NewLotkaVolterra(classic)
			Expect(err).NotTo(HaveOccurred())

			Expect(model.GetParams()).To(HaveKeyWithValue("alpha", 1.0))

			Expect(model.SetParam("alpha", 2.0)).To(Succeed())
			Expect(model.GetParams()).To(HaveKeyWithValue("alpha", 2.0))

			Expect(model.SetParam("alpha", -1.0)).NotTo(Succeed())
			Expect(model.SetParam("sigma", 1.0)).NotTo(Succeed())
		})
	})

	Describe("the classic scenario", func() {
		var result *sim.Result

		BeforeEach(func() {
			var err error
			result, err = ecology.Simulate(context.Background(), classic, 10, 5, 10, 0.01, nil)
			Expect(err).NotTo(HaveOccurred())
		})

		It("starts the trajectory at the initial state", func() {
			Expect(result.Times[0]).To(BeZero())
			Expect(result.States[0][0]).To(Equal(10.0))
			Expect(result.States[0][1]).To(Equal(5.0))
		})

		It("produces N+1 samples for N steps", func() {
			Expect(result.States).To(HaveLen(1001))
			Expect(result.Times).To(HaveLen(1001))
			Expect(result.StepsTaken).To(Equal(1000))
		})

		It("oscillates: both populations cross their initial values at least twice", func() {
			preyOsc := analysis.DetectOscillation(result, 0, 10.0)
			predOsc := analysis.DetectOscillation(result, 1, 5.0)

			Expect(preyOsc.Crossings).To(BeNumerically(">=", 2))
			Expect(predOsc.Crossings).To(BeNumerically(">=", 2))
		})

		It("keeps the first integral nearly constant under RK4", func() {
			Expect(result.InvariantDrift).To(BeNumerically("<", 1e-5))
		})
	})

	Describe("integration accuracy", func() {
		finalState := func(name string, step float64) sim.State {
			integ, err := integrators.Get(name)
			Expect(err).NotTo(HaveOccurred())

			result, err := ecology.Simulate(context.Background(), classic, 10, 5, 10, step, integ)
			Expect(err).NotTo(HaveOccurred())
			return result.Final()
		}

		It("converges much faster with RK4 than with Euler", func() {
			rk4Shift := finalState("rk4", 0.01).Sub(finalState("rk4", 0.001)).Norm()
			eulerShift := finalState("euler", 0.01).Sub(finalState("euler", 0.001)).Norm()

			Expect(rk4Shift).To(BeNumerically("<", eulerShift))
		})

		It("defaults to RK4 when no integrator is given", func() {
			result, err := ecology.Simulate(context.Background(), classic, 10, 5, 10, 0.01, nil)
			Expect(err).NotTo(HaveOccurred())

			explicit := finalState("rk4", 0.01)
			Expect(result.Final()[0]).To(Equal(explicit[0]))
			Expect(result.Final()[1]).To(Equal(explicit[1]))
		})
	})

	Describe("failure modes", func() {
		It("surfaces numeric overflow instead of returning garbage", func() {
			hot := ecology.Params{Alpha: 10, Beta: 0.1, Delta: 0.075, Gamma: 1.5}
			integ, err := integrators.Get("euler")
			Expect(err).NotTo(HaveOccurred())

			_, err = ecology.Simulate(context.Background(), hot, 1e300, 0, 1000, 100, integ)
			Expect(err).To(MatchError(sim.ErrNotFinite))
		})

		It("clamps populations that discretization pushes negative", func() {
			integ, err := integrators.Get("euler")
			Expect(err).NotTo(HaveOccurred())

			// Coarse Euler steps overshoot predator decay below zero.
			result, err := ecology.Simulate(context.Background(), classic, 0, 5, 3, 1.0, integ)
			Expect(err).NotTo(HaveOccurred())

			Expect(result.Clamped).To(ContainElement(true))
			for _, s := range result.States {
				Expect(s[1]).To(BeNumerically(">=", 0))
			}
		})
	})
})

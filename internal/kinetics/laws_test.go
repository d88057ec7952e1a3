package kinetics_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bioproc/adsim/internal/kinetics"
)

// stockParams covers every law's parameter set with the stock values.
func stockParams() map[string]float64 {
	return map[string]float64{
		"mu_max": 0.4,
		"k_s":    20.0,
		"k_i":    250.0,
		"k_c":    5.0,
		"k_t":    15.0,
		"n":      2.0,
		"s_ref":  100.0,
		"k_ch":   0.5,
		"k_p":    150.0,
		"k":      0.05,
	}
}

var _ = Describe("New", func() {
	It("rejects an unknown law tag", func() {
		_, err := kinetics.New("unknown", stockParams())
		Expect(err).To(MatchError(kinetics.ErrUnknownKinetics))
	})

	It("builds every known law from the stock parameters", func() {
		for _, name := range kinetics.Names() {
			law, err := kinetics.New(name, stockParams())
			Expect(err).NotTo(HaveOccurred(), name)
			Expect(law.Name()).To(Equal(name))
		}
	})

	It("rejects a missing saturation constant", func() {
		p := stockParams()
		delete(p, "k_s")
		_, err := kinetics.New("monod", p)
		var cfgErr *kinetics.ConfigError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("k_s"))
	})

	It("rejects a non-positive inhibition constant", func() {
		p := stockParams()
		p["k_i"] = -1.0
		_, err := kinetics.New("haldane", p)
		var cfgErr *kinetics.ConfigError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
	})
})

var _ = Describe("Rate", func() {
	It("is non-negative over the valid state domain for every law", func() {
		substrates := []float64{0, 0.5, 10, 100, 500}
		biomasses := []float64{0.1, 1, 10}
		for _, name := range kinetics.Names() {
			law, err := kinetics.New(name, stockParams())
			Expect(err).NotTo(HaveOccurred())
			for _, s := range substrates {
				for _, b := range biomasses {
					r, err := law.Rate(s, b)
					var domErr *kinetics.DomainError
					if errors.As(err, &domErr) {
						// States a law rejects are outside its domain,
						// never a negative rate.
						continue
					}
					Expect(err).NotTo(HaveOccurred(), "%s S=%g B=%g", name, s, b)
					Expect(r).To(BeNumerically(">=", 0), "%s S=%g B=%g", name, s, b)
				}
			}
		}
	})

	It("vanishes at zero substrate", func() {
		for _, name := range kinetics.Names() {
			law, _ := kinetics.New(name, stockParams())
			r, err := law.Rate(0, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(BeZero(), name)
		}
	})

	It("is a fixed point when mu_max (or k) is zero", func() {
		p := stockParams()
		p["mu_max"] = 0
		p["k"] = 0
		for _, name := range kinetics.Names() {
			law, err := kinetics.New(name, p)
			Expect(err).NotTo(HaveOccurred(), name)
			r, err := law.Rate(50, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(r).To(BeZero(), name)
		}
	})

	It("matches the Monod formula", func() {
		law, _ := kinetics.New("monod", stockParams())
		r, err := law.Rate(100, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("~", 0.4*100/(20+100)*1, 1e-12))
	})

	It("scales linearly with substrate and ignores biomass for the linear law", func() {
		law, _ := kinetics.New("linear", stockParams())
		r1, _ := law.Rate(100, 1)
		r2, _ := law.Rate(100, 50)
		Expect(r1).To(BeNumerically("~", 0.05*100, 1e-12))
		Expect(r2).To(Equal(r1))
	})

	It("inhibits Haldane growth at high substrate", func() {
		law, _ := kinetics.New("haldane", stockParams())
		mid, _ := law.Rate(100, 1)
		high, _ := law.Rate(5000, 1)
		Expect(high).To(BeNumerically("<", mid))
	})

	It("inhibits Andrews growth at high substrate", func() {
		law, _ := kinetics.New("andrews", stockParams())
		mid, _ := law.Rate(200, 1)
		high, _ := law.Rate(5000, 1)
		Expect(high).To(BeNumerically("<", mid))
	})

	It("keeps Contois and Monod distinct at equal parameters", func() {
		// Contois saturation depends on S/B, not S alone.
		contois, _ := kinetics.New("contois", stockParams())
		lowB, _ := contois.Rate(50, 1)
		highB, _ := contois.Rate(50, 20)
		Expect(lowB / 1.0).To(BeNumerically(">", highB/20.0))
	})

	It("saturates Teissier toward mu_max", func() {
		law, _ := kinetics.New("teissier", stockParams())
		r, _ := law.Rate(1e6, 1)
		Expect(r).To(BeNumerically("~", 0.4, 1e-6))
	})

	It("matches the Moser exponent form", func() {
		law, _ := kinetics.New("moser", stockParams())
		s := 10.0
		want := 0.4 * math.Pow(s, 2) / (20 + math.Pow(s, 2))
		r, err := law.Rate(s, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically("~", want, 1e-12))
	})

	It("fails Contois evaluation at zero biomass", func() {
		law, _ := kinetics.New("contois", stockParams())
		_, err := law.Rate(50, 0)
		var domErr *kinetics.DomainError
		Expect(errors.As(err, &domErr)).To(BeTrue())
	})

	It("fails Chen-Hashimoto evaluation beyond the normalized substrate range", func() {
		// k_ch + r*(1-r) has a positive root near r=1.37 at the stock
		// k_ch; past it the denominator flips sign.
		law, _ := kinetics.New("chen-hashimoto", stockParams())
		r, err := law.Rate(120, 1)
		Expect(err).NotTo(HaveOccurred())
		Expect(r).To(BeNumerically(">", 0))

		_, err = law.Rate(500, 1)
		var domErr *kinetics.DomainError
		Expect(errors.As(err, &domErr)).To(BeTrue())
	})

	It("fails Moser evaluation for negative substrate with fractional exponent", func() {
		p := stockParams()
		p["n"] = 1.5
		law, err := kinetics.New("moser", p)
		Expect(err).NotTo(HaveOccurred())
		_, err = law.Rate(-0.1, 1)
		var domErr *kinetics.DomainError
		Expect(errors.As(err, &domErr)).To(BeTrue())
	})
})

var _ = Describe("Tunable", func() {
	It("round-trips parameters through GetParams and SetParam", func() {
		for _, name := range kinetics.Names() {
			law, _ := kinetics.New(name, stockParams())
			tunable, ok := law.(kinetics.Tunable)
			Expect(ok).To(BeTrue(), name)
			for param, v := range tunable.GetParams() {
				Expect(tunable.SetParam(param, v*2)).To(Succeed())
			}
			for _, v := range tunable.GetParams() {
				Expect(v).To(BeNumerically(">", 0))
			}
		}
	})
})

package field_test

import (
	"math/big"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/fieldops/smc-go/core/field"
)

var _ = Describe("Field", func() {
	const trials = 64

	Context("when constructing a field from a prime", func() {
		It("should not panic", func() {
			Expect(func() { field.New(field.DefaultPrime) }).ToNot(Panic())
		})
	})

	Context("when constructing a field from a composite number", func() {
		It("should panic", func() {
			Expect(func() { field.New(big.NewInt(1753388298)) }).To(Panic())
		})
	})

	Context("when constructing a field from a non-positive number", func() {
		It("should panic", func() {
			Expect(func() { field.New(big.NewInt(0)) }).To(Panic())
			Expect(func() { field.New(big.NewInt(-7)) }).To(Panic())
		})
	})

	Context("when checking membership", func() {
		f := field.Default()

		It("should accept 0 and P-1", func() {
			Expect(f.InField(big.NewInt(0))).To(BeTrue())
			pMinus1 := new(big.Int).Sub(f.Prime(), big.NewInt(1))
			Expect(f.InField(pMinus1)).To(BeTrue())
		})

		It("should reject P and negative values", func() {
			Expect(f.InField(f.Prime())).To(BeFalse())
			Expect(f.InField(big.NewInt(-1))).To(BeFalse())
		})
	})

	Context("when drawing random elements", func() {
		f := field.Default()

		It("should always land in the field", func() {
			for i := 0; i < trials; i++ {
				r := f.Random()
				Expect(f.InField(r.ToInt())).To(BeTrue())
			}
		})
	})

	Context("when building elements from out-of-range integers", func() {
		f := field.Default()

		It("should reduce modulo the prime", func() {
			a := f.FromInt(-1)
			b := f.FromBigInt(new(big.Int).Sub(big.NewInt(0), big.NewInt(1)))
			Expect(a.Eq(b)).To(BeTrue())

			pPlus5 := new(big.Int).Add(f.Prime(), big.NewInt(5))
			Expect(f.FromBigInt(pPlus5).Eq(f.FromInt(5))).To(BeTrue())
		})
	})
})

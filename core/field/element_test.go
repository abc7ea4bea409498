package field_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/fieldops/smc-go/core/field"
)

var _ = Describe("Element", func() {
	f := field.Default()

	Context("when adding, subtracting, and multiplying", func() {
		It("should match schoolbook arithmetic for small values", func() {
			a := f.FromInt(3)
			b := f.FromInt(14)

			Expect(a.Add(b)).To(Equal(f.FromInt(17)))
			Expect(b.Sub(a)).To(Equal(f.FromInt(11)))
			Expect(a.Sub(b)).To(Equal(f.FromInt(-11)))
			Expect(a.Mul(b)).To(Equal(f.FromInt(42)))
		})
	})

	Context("at the boundary of the field", func() {
		It("should wrap P-1 + 1 to 0", func() {
			pMinus1 := f.FromInt(0).Sub(f.FromInt(1))
			Expect(pMinus1.Add(f.FromInt(1)).IsZero()).To(BeTrue())
		})

		It("should negate 0 to 0", func() {
			Expect(f.Zero().Neg().IsZero()).To(BeTrue())
		})
	})

	Context("equality", func() {
		It("should be reflexive and respect value", func() {
			a := f.FromInt(1234)
			b := f.FromInt(1234)
			c := f.FromInt(1235)
			Expect(a.Eq(b)).To(BeTrue())
			Expect(a.Eq(c)).To(BeFalse())
		})
	})

	Context("text round-trip", func() {
		It("should serialise and deserialise to the identical value", func() {
			a := f.FromInt(987654321)
			text, err := a.MarshalText()
			Expect(err).NotTo(HaveOccurred())

			var b field.Element
			Expect(b.UnmarshalText(text)).To(Succeed())
			Expect(b.Eq(a)).To(BeTrue())
		})
	})
})

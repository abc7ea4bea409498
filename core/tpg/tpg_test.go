package tpg_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/fieldops/smc-go/core/field"
	"github.com/fieldops/smc-go/core/sharing"
	"github.com/fieldops/smc-go/core/tpg"
)

var _ = Describe("Generator", func() {
	f := field.Default()
	parties := []string{"alice", "bob", "charlie"}

	It("generates exactly once per op_id regardless of fetch order", func() {
		gen := tpg.New(f, parties)

		for _, p := range parties {
			_, err := gen.FetchShares("mul-0", p)
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(gen.GenerationCount()).To(Equal(int64(1)))
	})

	It("produces a valid Beaver triplet: c = a*b, reconstructed from shares", func() {
		gen := tpg.New(f, parties)

		aShares := make([]field.Element, len(parties))
		bShares := make([]field.Element, len(parties))
		cShares := make([]field.Element, len(parties))

		for i, p := range parties {
			ps, err := gen.FetchShares("mul-1", p)
			Expect(err).NotTo(HaveOccurred())
			aShares[i], bShares[i], cShares[i] = ps.A, ps.B, ps.C
		}

		a, err := sharing.Reconstruct(aShares)
		Expect(err).NotTo(HaveOccurred())
		b, err := sharing.Reconstruct(bShares)
		Expect(err).NotTo(HaveOccurred())
		c, err := sharing.Reconstruct(cShares)
		Expect(err).NotTo(HaveOccurred())

		Expect(c.Eq(a.Mul(b))).To(BeTrue())
	})

	It("gives different parties distinct shares", func() {
		gen := tpg.New(f, parties)

		aliceShares, err := gen.FetchShares("mul-2", "alice")
		Expect(err).NotTo(HaveOccurred())
		bobShares, err := gen.FetchShares("mul-2", "bob")
		Expect(err).NotTo(HaveOccurred())

		Expect(aliceShares.A.Eq(bobShares.A)).To(BeFalse())
		Expect(aliceShares.B.Eq(bobShares.B)).To(BeFalse())
	})

	It("issues a fresh triplet for each distinct op_id", func() {
		gen := tpg.New(f, parties)

		gen.FetchShares("mul-a", "alice")
		gen.FetchShares("mul-b", "alice")

		Expect(gen.GenerationCount()).To(Equal(int64(2)))
	})

	It("rejects a client that is not a participant", func() {
		gen := tpg.New(f, parties)
		_, err := gen.FetchShares("mul-3", "mallory")
		Expect(err).To(HaveOccurred())
	})

	It("releases a cached triplet once every participant has fetched it", func() {
		gen := tpg.New(f, parties)
		for _, p := range parties {
			_, err := gen.FetchShares("mul-4", p)
			Expect(err).NotTo(HaveOccurred())
		}
		// Fetching again for the same op_id after full release counts as a
		// fresh generation (the cache entry was dropped).
		_, err := gen.FetchShares("mul-4", "alice")
		Expect(err).NotTo(HaveOccurred())
		Expect(gen.GenerationCount()).To(Equal(int64(2)))
	})
})

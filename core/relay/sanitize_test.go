package relay_test

import (
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/fieldops/smc-go/core/relay"
)

var _ = Describe("Sanitize", func() {
	It("collapses raw slashes and percent-encoded slashes to underscore", func() {
		Expect(relay.Sanitize("a/b")).To(Equal("a_b"))
		Expect(relay.Sanitize("a%2Fb")).To(Equal("a_b"))
		Expect(relay.Sanitize("a%2fb")).To(Equal("a_b"))
	})

	It("rewrites plus to minus", func() {
		Expect(relay.Sanitize("a+b")).To(Equal("a-b"))
	})

	It("is idempotent", func() {
		label := "weird/+label%2F++"
		once := relay.Sanitize(label)
		twice := relay.Sanitize(once)
		Expect(twice).To(Equal(once))
	})
})

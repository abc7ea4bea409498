package relayd_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/fieldops/smc-go/internal/relayd"
)

func body(resp *http.Response) string {
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

var _ = Describe("relayd.Server", func() {
	var (
		server *relayd.Server
		ts     *httptest.Server
	)

	BeforeEach(func() {
		server = relayd.New()
		ts = httptest.NewServer(server.Handler())
	})

	AfterEach(func() {
		ts.Close()
	})

	Context("private messages", func() {
		It("returns 404 before anything has been posted", func() {
			resp, err := ts.Client().Get(ts.URL + "/private/bob/greeting")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(404))
		})

		It("delivers a posted message to the intended receiver", func() {
			resp, err := ts.Client().Post(ts.URL+"/private/alice/bob/greeting", "application/octet-stream", strings.NewReader("hi"))
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))

			resp, err = ts.Client().Get(ts.URL + "/private/bob/greeting")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))
			Expect(body(resp)).To(Equal("hi"))
		})

		It("delivers messages FIFO per (sender, receiver, label)", func() {
			ts.Client().Post(ts.URL+"/private/alice/bob/x", "application/octet-stream", strings.NewReader("first"))
			ts.Client().Post(ts.URL+"/private/alice/bob/x", "application/octet-stream", strings.NewReader("second"))

			resp1, err := ts.Client().Get(ts.URL + "/private/bob/x")
			Expect(err).NotTo(HaveOccurred())
			resp2, err := ts.Client().Get(ts.URL + "/private/bob/x")
			Expect(err).NotTo(HaveOccurred())

			Expect(body(resp1)).To(Equal("first"))
			Expect(body(resp2)).To(Equal("second"))
		})

		It("does not deliver a message to the wrong receiver", func() {
			ts.Client().Post(ts.URL+"/private/alice/bob/x", "application/octet-stream", strings.NewReader("for bob"))
			resp, err := ts.Client().Get(ts.URL + "/private/carol/x")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(404))
		})

		It("accepts a zero-length body as valid", func() {
			ts.Client().Post(ts.URL+"/private/alice/bob/empty", "application/octet-stream", strings.NewReader(""))
			resp, err := ts.Client().Get(ts.URL + "/private/bob/empty")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(200))
			Expect(body(resp)).To(Equal(""))
		})
	})

	Context("public messages", func() {
		It("returns 404 until published", func() {
			resp, err := ts.Client().Get(ts.URL + "/public/bob/alice/res")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.StatusCode).To(Equal(404))
		})

		It("is readable by any reader once published", func() {
			ts.Client().Post(ts.URL+"/public/alice/res", "application/octet-stream", strings.NewReader("42"))

			for _, reader := range []string{"bob", "carol"} {
				resp, err := ts.Client().Get(ts.URL + "/public/" + reader + "/alice/res")
				Expect(err).NotTo(HaveOccurred())
				Expect(resp.StatusCode).To(Equal(200))
				Expect(body(resp)).To(Equal("42"))
			}
		})
	})
})

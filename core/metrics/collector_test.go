package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"github.com/fieldops/smc-go/core/metrics"
)

type fakeClient struct {
	blocked  time.Duration
	sent     int64
	received int64
	sentTTP  int64
}

func (f *fakeClient) TimeBlocked() time.Duration { return f.blocked }
func (f *fakeClient) BytesSent() int64           { return f.sent }
func (f *fakeClient) BytesReceived() int64       { return f.received }
func (f *fakeClient) BytesSentTTP() int64        { return f.sentTTP }

type fakeGenerator struct{ count int64 }

func (f *fakeGenerator) GenerationCount() int64 { return f.count }

var _ = Describe("Collector", func() {
	It("reports zero byte counts and TTP cost for an instant, idle run", func() {
		client := &fakeClient{}
		c := metrics.NewCollector(client, nil)
		c.Begin()
		c.MarkSharingDone()
		c.MarkEvaluationDone()
		c.MarkPublishingDone()
		c.MarkReconstructionDone()

		m := c.Metrics()
		Expect(m.BytesSentParty).To(Equal(int64(0)))
		Expect(m.BytesReceivedParty).To(Equal(int64(0)))
		Expect(m.BytesSentTTP).To(Equal(int64(0)))
		Expect(m.CompCostTTP).To(Equal(int64(0)))
	})

	It("subtracts blocked time from each phase so polling wait is not counted as computation", func() {
		client := &fakeClient{}
		c := metrics.NewCollector(client, nil)

		c.Begin()
		time.Sleep(5 * time.Millisecond)
		client.blocked += 5 * time.Millisecond // all of phase 1 was blocked on the network
		c.MarkSharingDone()

		time.Sleep(5 * time.Millisecond)
		c.MarkEvaluationDone() // phase 2 had no blocking at all

		m := c.Metrics()
		Expect(m.CompTimeSharing).To(BeNumerically("<", time.Millisecond))
		Expect(m.CompTimeProcessing).To(BeNumerically(">=", 4*time.Millisecond))
	})

	It("attributes triplet-generation count to the run via a snapshot diff", func() {
		client := &fakeClient{}
		gen := &fakeGenerator{count: 10}
		c := metrics.NewCollector(client, gen)
		c.Begin()

		gen.count = 13
		c.MarkSharingDone()
		c.MarkEvaluationDone()
		c.MarkPublishingDone()
		c.MarkReconstructionDone()

		Expect(c.Metrics().CompCostTTP).To(Equal(int64(3)))
	})

	It("carries byte counters straight through from the client", func() {
		client := &fakeClient{sent: 42, received: 7, sentTTP: 3}
		c := metrics.NewCollector(client, nil)
		c.Begin()
		c.MarkSharingDone()
		c.MarkEvaluationDone()
		c.MarkPublishingDone()
		c.MarkReconstructionDone()

		m := c.Metrics()
		Expect(m.BytesSentParty).To(Equal(int64(42)))
		Expect(m.BytesReceivedParty).To(Equal(int64(7)))
		Expect(m.BytesSentTTP).To(Equal(int64(3)))
	})

	It("treats an un-reached publishing/reconstructing phase as zero-length", func() {
		client := &fakeClient{}
		c := metrics.NewCollector(client, nil)
		c.Begin()
		c.MarkSharingDone()
		c.MarkEvaluationDone()
		// a purely-public expression never calls MarkPublishingDone/MarkReconstructionDone

		m := c.Metrics()
		Expect(m.CompTimeReconstruction).To(Equal(time.Duration(0)))
	})
})

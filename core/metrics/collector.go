package metrics

import "time"

// BlockedReader is the subset of *relay.Client a Collector needs: running
// byte counters and the accumulated time spent blocked inside polling
// receives, so I/O wait can be subtracted out of computation timings.
type BlockedReader interface {
	TimeBlocked() time.Duration
	BytesSent() int64
	BytesReceived() int64
	BytesSentTTP() int64
}

// TripletCounter is the subset of *tpg.Generator a Collector needs to
// attribute fresh-triplet generations to a run.
type TripletCounter interface {
	GenerationCount() int64
}

// Collector times the four phase boundaries of a single core/party.Engine
// run and subtracts relay polling wait from each phase, per the
// specification's "timing corrections" rule: wall-clock time spent blocked
// on the network is not computation. It implements party.Recorder without
// importing core/party, so there is no import cycle between the two
// packages.
type Collector struct {
	client BlockedReader
	gen    TripletCounter

	start      time.Time
	blockStart time.Duration
	genStart   int64

	sharingEnd     time.Time
	blockedSharing time.Duration

	evaluatingEnd   time.Time
	blockedEvaluate time.Duration

	publishingEnd  time.Time
	blockedPublish time.Duration

	reconstructEnd   time.Time
	blockedReconcile time.Duration
}

// NewCollector returns a Collector reading byte/blocked-time counters from
// client and, if gen is non-nil, triplet-generation counts from gen.
func NewCollector(client BlockedReader, gen TripletCounter) *Collector {
	return &Collector{client: client, gen: gen}
}

// Begin snapshots the starting wall clock and counters. Call it
// immediately before Engine.Run.
func (c *Collector) Begin() {
	c.start = time.Now()
	c.blockStart = c.client.TimeBlocked()
	if c.gen != nil {
		c.genStart = c.gen.GenerationCount()
	}
}

func (c *Collector) MarkSharingDone() {
	c.sharingEnd = time.Now()
	c.blockedSharing = c.client.TimeBlocked()
}

func (c *Collector) MarkEvaluationDone() {
	c.evaluatingEnd = time.Now()
	c.blockedEvaluate = c.client.TimeBlocked()
}

func (c *Collector) MarkPublishingDone() {
	c.publishingEnd = time.Now()
	c.blockedPublish = c.client.TimeBlocked()
}

func (c *Collector) MarkReconstructionDone() {
	c.reconstructEnd = time.Now()
	c.blockedReconcile = c.client.TimeBlocked()
}

// Metrics assembles the snapshot. Call it after Engine.Run returns. A run
// over a purely public expression never reaches the publishing/
// reconstructing phases; Metrics treats their un-marked boundary as
// coinciding with the evaluation boundary so the derived durations come
// out zero rather than negative.
func (c *Collector) Metrics() Metrics {
	publishingEnd := c.publishingEnd
	if publishingEnd.IsZero() {
		publishingEnd = c.evaluatingEnd
	}
	reconstructEnd := c.reconstructEnd
	if reconstructEnd.IsZero() {
		reconstructEnd = publishingEnd
	}
	blockedPublish := c.blockedPublish
	if blockedPublish == 0 {
		blockedPublish = c.blockedEvaluate
	}
	blockedReconcile := c.blockedReconcile
	if blockedReconcile == 0 {
		blockedReconcile = blockedPublish
	}

	var ttpCost int64
	if c.gen != nil {
		ttpCost = c.gen.GenerationCount() - c.genStart
	}

	return Metrics{
		CompTimeSharing:        elapsedLess(c.start, c.sharingEnd, c.blockStart, c.blockedSharing),
		CompTimeProcessing:     elapsedLess(c.sharingEnd, c.evaluatingEnd, c.blockedSharing, c.blockedEvaluate),
		CompTimeReconstruction: elapsedLess(publishingEnd, reconstructEnd, blockedPublish, blockedReconcile),
		RuntimeOverall:         reconstructEnd.Sub(c.start),
		BytesSentParty:         c.client.BytesSent(),
		BytesReceivedParty:     c.client.BytesReceived(),
		BytesSentTTP:           c.client.BytesSentTTP(),
		CompCostTTP:            ttpCost,
	}
}

func elapsedLess(t0, t1 time.Time, blocked0, blocked1 time.Duration) time.Duration {
	wall := t1.Sub(t0)
	d := wall - (blocked1 - blocked0)
	if d < 0 {
		return 0
	}
	return d
}

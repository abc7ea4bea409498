// Package relay is a thin client over the message relay transport
// described in the specification: point-to-point ("private") delivery,
// broadcast-by-label ("public") delivery, and a lookup of Beaver triplet
// shares from the Trusted Parameter Generator. It is the specification's
// component D; the relay and TPG servers themselves live in
// internal/relayd and internal/ttpd as reference implementations of the
// external transport this client talks to.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fieldops/smc-go/core/field"
)

// DefaultPollInterval is the reference polling delay for blocking receives.
const DefaultPollInterval = 200 * time.Millisecond

// A TransportError wraps a relay-transport failure: the relay is
// unreachable, returned a non-200/404 status, or returned a malformed
// body. It corresponds to the "Transport error" category in the
// specification's error taxonomy.
type TransportError struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("relay: %s: unexpected status %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("relay: %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// A DecodingError wraps a failure to interpret a relay response body as
// the expected shape (e.g. the Beaver-triplet JSON array). It corresponds
// to the "Decoding error" category in the error taxonomy.
type DecodingError struct {
	Op  string
	Err error
}

func (e *DecodingError) Error() string {
	return fmt.Sprintf("relay: %s: decode: %v", e.Op, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// Client is a single-threaded-per-party wrapper over the relay's HTTP
// surface. All of its operations are synchronous and blocking; receives
// poll at PollInterval until the relay returns 200.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	self         string
	PollInterval time.Duration

	bytesSentParty     int64
	bytesReceivedParty int64
	bytesSentTTP       int64
	timeBlocked        int64 // nanoseconds, accumulated across all polling loops
}

// New returns a Client that talks to the relay at host:port, identifying
// itself as selfID in all private/public operations.
func New(host string, port int, selfID string) *Client {
	return &Client{
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		baseURL:      fmt.Sprintf("http://%s:%d", host, port),
		self:         selfID,
		PollInterval: DefaultPollInterval,
	}
}

// BytesSent returns the number of message bytes sent to peers via private
// and public sends (not counting TPG traffic), for the benchmark metrics.
func (c *Client) BytesSent() int64 { return atomic.LoadInt64(&c.bytesSentParty) }

// BytesReceived returns the number of message bytes received from peers.
func (c *Client) BytesReceived() int64 { return atomic.LoadInt64(&c.bytesReceivedParty) }

// BytesSentTTP returns the number of bytes implicitly "sent" to the TPG —
// in this protocol that is just the op_id string on each fetch request.
func (c *Client) BytesSentTTP() int64 { return atomic.LoadInt64(&c.bytesSentTTP) }

// TimeBlocked returns the accumulated time spent inside polling loops,
// used by core/metrics to subtract relay I/O wait from computation
// counters per the specification's "timing corrections" rule.
func (c *Client) TimeBlocked() time.Duration {
	return time.Duration(atomic.LoadInt64(&c.timeBlocked))
}

// SendPrivate sends body to receiver under label, via POST
// /private/{self}/{receiver}/{label}.
func (c *Client) SendPrivate(ctx context.Context, receiver, label string, body []byte) error {
	path := fmt.Sprintf("/private/%s/%s/%s", esc(c.self), esc(receiver), esc(label))
	if err := c.post(ctx, path, body); err != nil {
		return err
	}
	atomic.AddInt64(&c.bytesSentParty, int64(len(body)))
	return nil
}

// RecvPrivate blocks, polling GET /private/{self}/{label}, until the relay
// returns the message addressed to this client under label.
func (c *Client) RecvPrivate(ctx context.Context, label string) ([]byte, error) {
	path := fmt.Sprintf("/private/%s/%s", esc(c.self), esc(label))
	body, err := c.pollGet(ctx, path)
	if err != nil {
		return nil, err
	}
	atomic.AddInt64(&c.bytesReceivedParty, int64(len(body)))
	return body, nil
}

// Publish broadcasts body under label via POST /public/{self}/{label}.
func (c *Client) Publish(ctx context.Context, label string, body []byte) error {
	path := fmt.Sprintf("/public/%s/%s", esc(c.self), esc(label))
	if err := c.post(ctx, path, body); err != nil {
		return err
	}
	atomic.AddInt64(&c.bytesSentParty, int64(len(body)))
	return nil
}

// RecvPublic blocks, polling GET /public/{self}/{from}/{label}, until from
// has published a message under label.
func (c *Client) RecvPublic(ctx context.Context, from, label string) ([]byte, error) {
	path := fmt.Sprintf("/public/%s/%s/%s", esc(c.self), esc(from), esc(label))
	body, err := c.pollGet(ctx, path)
	if err != nil {
		return nil, err
	}
	atomic.AddInt64(&c.bytesReceivedParty, int64(len(body)))
	return body, nil
}

// FetchTripletShares blocks, polling GET /shares/{self}/{opID}, until the
// TPG has produced this client's share of the Beaver triplet for opID. The
// response body is a JSON array of three decimal-integer strings [a,b,c].
func (c *Client) FetchTripletShares(ctx context.Context, f field.Field, opID string) (a, b, cc field.Element, err error) {
	path := fmt.Sprintf("/shares/%s/%s", esc(c.self), esc(opID))
	atomic.AddInt64(&c.bytesSentTTP, int64(len(opID)))

	body, err := c.pollGet(ctx, path)
	if err != nil {
		return field.Element{}, field.Element{}, field.Element{}, err
	}

	var raw []string
	if jsonErr := json.Unmarshal(body, &raw); jsonErr != nil {
		return field.Element{}, field.Element{}, field.Element{}, &DecodingError{Op: "FetchTripletShares", Err: jsonErr}
	}
	if len(raw) != 3 {
		return field.Element{}, field.Element{}, field.Element{}, &DecodingError{
			Op:  "FetchTripletShares",
			Err: fmt.Errorf("expected 3 values, got %d", len(raw)),
		}
	}

	vals := make([]field.Element, 3)
	for i, s := range raw {
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return field.Element{}, field.Element{}, field.Element{}, &DecodingError{
				Op: "FetchTripletShares", Err: fmt.Errorf("invalid integer %q", s),
			}
		}
		vals[i] = f.FromBigInt(v)
	}
	return vals[0], vals[1], vals[2], nil
}

func (c *Client) post(ctx context.Context, path string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode != http.StatusOK {
		return &TransportError{Op: "POST " + path, StatusCode: resp.StatusCode}
	}
	return nil
}

// pollGet issues GET requests against path at PollInterval until the relay
// responds 200 (returning the body) or the context is cancelled. A 404
// response is the expected "not yet posted" signal, not an error.
func (c *Client) pollGet(ctx context.Context, path string) ([]byte, error) {
	started := time.Now()
	defer func() {
		atomic.AddInt64(&c.timeBlocked, int64(time.Since(started)))
	}()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, &TransportError{Op: "GET " + path, Err: err}
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, &TransportError{Op: "GET " + path, Err: err}
		}

		switch resp.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return nil, &TransportError{Op: "GET " + path, Err: err}
			}
			return body, nil

		case http.StatusNotFound:
			resp.Body.Close()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.PollInterval):
			}

		default:
			resp.Body.Close()
			return nil, &TransportError{Op: "GET " + path, StatusCode: resp.StatusCode}
		}
	}
}

func esc(label string) string {
	// Sanitize first (our own identifier-safety rule), then percent-encode
	// whatever remains so arbitrary label bytes survive as one path segment.
	return url.PathEscape(Sanitize(label))
}

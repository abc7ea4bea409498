// Package party implements the specification's component E: the Party
// Engine. One Engine runs one instance of one ProtocolSpec for one
// participant, taking that participant's locally-owned secret inputs and
// driving Phase 1 (input sharing), Phase 2 (recursive evaluation), and
// Phase 3 (output publication and reconstruction) over a relay.Client.
package party

import (
	"context"
	"fmt"

	"github.com/fieldops/smc-go/core/expr"
	"github.com/fieldops/smc-go/core/field"
	"github.com/fieldops/smc-go/core/metrics"
	"github.com/fieldops/smc-go/core/relay"
	"github.com/fieldops/smc-go/core/sharing"
)

// Recorder receives phase-boundary callbacks so core/metrics can time a run
// without this package importing metrics back. A nil Recorder is a valid,
// inert no-op.
type Recorder interface {
	MarkSharingDone()
	MarkEvaluationDone()
	MarkPublishingDone()
	MarkReconstructionDone()
}

// Engine runs a single ProtocolSpec instance for one participant. Client
// carries party-to-party traffic (private sends, public broadcasts); TTP
// is a separate relay.Client pointed at the Trusted Parameter Generator's
// host, since the reference topology runs the relay and the TPG as two
// independent servers (cmd/party's --relay and --ttp flags).
type Engine struct {
	Client   *relay.Client
	TTP      tripletSource
	Field    field.Field
	Spec     ProtocolSpec
	Self     string
	Inputs   map[expr.SecretID]field.Element
	Recorder Recorder

	state State
	local map[expr.SecretID]field.Element
}

const protocolCommitmentLabel = "protocol-commitment"

// State returns the engine's current phase. The read is not synchronised
// with a concurrently executing Run; Run itself is not re-entrant.
func (e *Engine) State() State { return e.state }

// Run executes the full protocol and returns the reconstructed output.
func (e *Engine) Run(ctx context.Context) (field.Element, error) {
	if err := e.validateConfiguration(); err != nil {
		e.state = StateFailed
		return field.Element{}, err
	}

	if err := e.agreeOnProtocol(ctx); err != nil {
		e.state = StateFailed
		return field.Element{}, err
	}

	e.state = StateSharing
	if err := e.shareInputs(ctx); err != nil {
		e.state = StateFailed
		return field.Element{}, err
	}
	e.mark(Recorder.MarkSharingDone)

	e.state = StateEvaluating
	var result field.Element
	var err error
	if expr.ContainsSecret(e.Spec.Expr) {
		mulIndex := 0
		result, err = e.evalShare(ctx, e.Spec.Expr, &mulIndex)
	} else {
		result = e.evalPublic(e.Spec.Expr)
	}
	if err != nil {
		e.state = StateFailed
		return field.Element{}, err
	}
	e.mark(Recorder.MarkEvaluationDone)

	if !expr.ContainsSecret(e.Spec.Expr) {
		e.state = StateDone
		return result, nil
	}

	e.state = StatePublishing
	resultText, _ := result.MarshalText()
	if err := e.Client.Publish(ctx, e.Self+"-res", resultText); err != nil {
		e.state = StateFailed
		return field.Element{}, err
	}
	e.mark(Recorder.MarkPublishingDone)

	e.state = StateReconstructing
	shares := make([]field.Element, 0, e.Spec.N())
	shares = append(shares, result)
	for _, peer := range e.Spec.ParticipantIDs {
		if peer == e.Self {
			continue
		}
		body, err := e.Client.RecvPublic(ctx, peer, peer+"-res")
		if err != nil {
			e.state = StateFailed
			return field.Element{}, err
		}
		var share field.Element
		if uerr := share.UnmarshalText(body); uerr != nil {
			e.state = StateFailed
			return field.Element{}, fmt.Errorf("party: decode result share from %s: %w", peer, uerr)
		}
		shares = append(shares, share)
	}
	out, err := sharing.Reconstruct(shares)
	if err != nil {
		e.state = StateFailed
		return field.Element{}, err
	}
	e.mark(Recorder.MarkReconstructionDone)

	e.state = StateDone
	return out, nil
}

// RunInstrumented wraps Run with a metrics.Collector, per the
// specification's "Benchmark interface": cmd/bench uses this instead of
// Run to get a Metrics snapshot alongside the reconstructed result. gen
// may be nil when the caller does not have in-process access to the TPG's
// Generator (e.g. a real deployment, as opposed to cmd/bench's
// self-hosted harness); CompCostTTP is then left at zero.
func (e *Engine) RunInstrumented(ctx context.Context, gen metrics.TripletCounter) (field.Element, metrics.Metrics, error) {
	collector := metrics.NewCollector(e.Client, gen)
	e.Recorder = collector
	collector.Begin()
	result, err := e.Run(ctx)
	return result, collector.Metrics(), err
}

func (e *Engine) mark(fn func(Recorder)) {
	if e.Recorder != nil {
		fn(e.Recorder)
	}
}

func (e *Engine) validateConfiguration() error {
	if e.Spec.N() == 0 {
		return &ErrConfiguration{Reason: "participant list is empty"}
	}
	seen := make(map[string]bool, e.Spec.N())
	for _, id := range e.Spec.ParticipantIDs {
		if seen[id] {
			return &ErrConfiguration{Reason: fmt.Sprintf("duplicate participant id %q", id)}
		}
		seen[id] = true
	}
	if _, ok := e.Spec.IndexOf(e.Self); !ok {
		return &ErrConfiguration{Reason: fmt.Sprintf("self id %q is not among the participants", e.Self)}
	}
	if len(e.Inputs) > 0 {
		declared := make(map[expr.SecretID]bool)
		for _, id := range expr.Secrets(e.Spec.Expr) {
			declared[id] = true
		}
		for id := range e.Inputs {
			if !declared[id] {
				return &ErrConfiguration{Reason: fmt.Sprintf("input secret %s does not appear in the protocol expression", id)}
			}
		}
	}
	return nil
}

// agreeOnProtocol broadcasts this party's protocol-spec commitment and
// compares it against every peer's, so that a mismatched expression or
// participant ordering fails fast instead of silently miscomputing.
func (e *Engine) agreeOnProtocol(ctx context.Context) error {
	commitment := e.Spec.Commitment()
	if err := e.Client.Publish(ctx, protocolCommitmentLabel, commitment[:]); err != nil {
		return err
	}
	for _, peer := range e.Spec.ParticipantIDs {
		if peer == e.Self {
			continue
		}
		body, err := e.Client.RecvPublic(ctx, peer, protocolCommitmentLabel)
		if err != nil {
			return err
		}
		if string(body) != string(commitment[:]) {
			return &ErrProtocolMismatch{Peer: peer}
		}
	}
	return nil
}

// shareInputs runs Phase 1: every secret appearing in the expression is
// split by its owner (the one party whose Inputs carries it) and
// distributed privately; every other party blocks on its own share.
func (e *Engine) shareInputs(ctx context.Context) error {
	e.local = make(map[expr.SecretID]field.Element)

	for _, id := range expr.Secrets(e.Spec.Expr) {
		value, owns := e.Inputs[id]
		if owns {
			if !e.Field.InField(value.ToInt()) {
				return &ErrArithmetic{SecretID: id.String()}
			}
			shares, err := sharing.Share(value, e.Spec.N())
			if err != nil {
				return err
			}
			for i, peer := range e.Spec.ParticipantIDs {
				if peer == e.Self {
					e.local[id] = shares[i]
					continue
				}
				text, _ := shares[i].MarshalText()
				if err := e.Client.SendPrivate(ctx, peer, id.String(), text); err != nil {
					return err
				}
			}
			continue
		}

		body, err := e.Client.RecvPrivate(ctx, id.String())
		if err != nil {
			return err
		}
		var share field.Element
		if uerr := share.UnmarshalText(body); uerr != nil {
			return fmt.Errorf("party: decode share of secret %s: %w", id, uerr)
		}
		e.local[id] = share
	}
	return nil
}

// evalPublic computes the actual value of a subtree that contains no
// secret. Every party sees the same expression, so this is pure, local,
// and identical everywhere — no sharing convention is involved.
func (e *Engine) evalPublic(node expr.Expr) field.Element {
	switch node.Kind() {
	case expr.KindScalar:
		return e.Field.FromBigInt(expr.ScalarOf(node))
	case expr.KindAdd:
		l, r := expr.Operands(node)
		return e.evalPublic(l).Add(e.evalPublic(r))
	case expr.KindSub:
		l, r := expr.Operands(node)
		return e.evalPublic(l).Sub(e.evalPublic(r))
	case expr.KindMul:
		l, r := expr.Operands(node)
		return e.evalPublic(l).Mul(e.evalPublic(r))
	default:
		panic("party: evalPublic called on a subtree containing a secret")
	}
}

// contribution returns this party's local additive-share contribution of
// node, which may be a secret-bearing subtree (its real share) or a public
// subtree (the real value from the leader, zero from everyone else, so
// that summing every party's contribution reconstructs the true value
// exactly once).
func (e *Engine) contribution(ctx context.Context, node expr.Expr, mulIndex *int) (field.Element, error) {
	if !expr.ContainsSecret(node) {
		if e.Self == e.Spec.Leader() {
			return e.evalPublic(node), nil
		}
		return e.Field.Zero(), nil
	}
	return e.evalShare(ctx, node, mulIndex)
}

// evalShare computes this party's local share of node's value. node must
// contain at least one secret; pure-public subtrees are never passed here
// directly (contribution routes those through evalPublic instead).
func (e *Engine) evalShare(ctx context.Context, node expr.Expr, mulIndex *int) (field.Element, error) {
	switch node.Kind() {
	case expr.KindSecret:
		return e.local[expr.SecretOf(node)], nil

	case expr.KindAdd:
		l, r := expr.Operands(node)
		lv, err := e.contribution(ctx, l, mulIndex)
		if err != nil {
			return field.Element{}, err
		}
		rv, err := e.contribution(ctx, r, mulIndex)
		if err != nil {
			return field.Element{}, err
		}
		return lv.Add(rv), nil

	case expr.KindSub:
		l, r := expr.Operands(node)
		lv, err := e.contribution(ctx, l, mulIndex)
		if err != nil {
			return field.Element{}, err
		}
		rv, err := e.contribution(ctx, r, mulIndex)
		if err != nil {
			return field.Element{}, err
		}
		return lv.Sub(rv), nil

	case expr.KindMul:
		l, r := expr.Operands(node)
		lSecret := expr.ContainsSecret(l)
		rSecret := expr.ContainsSecret(r)

		switch {
		case lSecret && rSecret:
			lv, err := e.evalShare(ctx, l, mulIndex)
			if err != nil {
				return field.Element{}, err
			}
			rv, err := e.evalShare(ctx, r, mulIndex)
			if err != nil {
				return field.Element{}, err
			}
			commitment := e.Spec.Commitment()
			id := opID(commitment, *mulIndex)
			*mulIndex++
			return beaverMultiply(ctx, e.Client, e.TTP, e.Field, e.Spec, e.Self, id, lv, rv)

		case lSecret:
			lv, err := e.evalShare(ctx, l, mulIndex)
			if err != nil {
				return field.Element{}, err
			}
			return lv.Mul(e.evalPublic(r)), nil

		default: // rSecret
			rv, err := e.evalShare(ctx, r, mulIndex)
			if err != nil {
				return field.Element{}, err
			}
			return rv.Mul(e.evalPublic(l)), nil
		}

	default:
		panic("party: evalShare called on a pure-public node")
	}
}

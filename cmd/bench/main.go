// Command bench drives a batch of synthetic protocol runs against a
// self-hosted relay and TPG and writes their core/metrics.Metrics
// snapshots to a JSON file, recovering the distilled project's
// evaluate_performance.py benchmark harness as a runnable Go component.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldops/smc-go/core/expr"
	"github.com/fieldops/smc-go/core/field"
	"github.com/fieldops/smc-go/core/metrics"
	"github.com/fieldops/smc-go/core/party"
	"github.com/fieldops/smc-go/core/relay"
	"github.com/fieldops/smc-go/core/tpg"
	"github.com/fieldops/smc-go/internal/relayd"
	"github.com/fieldops/smc-go/internal/ttpd"
)

var (
	iterations int
	outputFile string
)

var rootCmd = &cobra.Command{
	Use:   "bench",
	Short: "Benchmark the SMC engine against synthetic protocol specs",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the benchmark suite and write a JSON report",
	RunE:  runBench,
}

func init() {
	runCmd.Flags().IntVar(&iterations, "iterations", 5, "repetitions per scenario")
	runCmd.Flags().StringVar(&outputFile, "output", "bench-results.json", "output JSON file")
	rootCmd.AddCommand(runCmd)
}

// buildScenario constructs one fresh (spec, alice-inputs, bob-inputs)
// triple so repeated iterations don't reuse the same SecretIDs.
func buildScenario(name string, ids []string, f field.Field) (party.ProtocolSpec, map[expr.SecretID]field.Element, map[expr.SecretID]field.Element) {
	switch name {
	case "pure-add":
		sa, sb := expr.NewSecretID(), expr.NewSecretID()
		spec := party.ProtocolSpec{Expr: expr.Add(expr.Secret(sa), expr.Secret(sb)), ParticipantIDs: ids}
		return spec, map[expr.SecretID]field.Element{sa: f.FromInt(11)}, map[expr.SecretID]field.Element{sb: f.FromInt(31)}

	case "mixed":
		sa, sb := expr.NewSecretID(), expr.NewSecretID()
		e := expr.Sub(expr.Add(expr.Secret(sa), expr.Scalar(big.NewInt(9))), expr.Secret(sb))
		spec := party.ProtocolSpec{Expr: e, ParticipantIDs: ids}
		return spec, map[expr.SecretID]field.Element{sa: f.FromInt(200)}, map[expr.SecretID]field.Element{sb: f.FromInt(50)}

	case "single-multiplication":
		sa, sb := expr.NewSecretID(), expr.NewSecretID()
		spec := party.ProtocolSpec{Expr: expr.Mul(expr.Secret(sa), expr.Secret(sb)), ParticipantIDs: ids}
		return spec, map[expr.SecretID]field.Element{sa: f.FromInt(12)}, map[expr.SecretID]field.Element{sb: f.FromInt(13)}

	case "weighted-sum":
		sa, sb := expr.NewSecretID(), expr.NewSecretID()
		weights := []expr.Expr{expr.Scalar(big.NewInt(3)), expr.Scalar(big.NewInt(4))}
		secrets := []expr.Expr{expr.Secret(sa), expr.Secret(sb)}
		spec := party.ProtocolSpec{Expr: expr.Dot(secrets, weights), ParticipantIDs: ids}
		return spec, map[expr.SecretID]field.Element{sa: f.FromInt(6)}, map[expr.SecretID]field.Element{sb: f.FromInt(2)}

	default:
		panic("bench: unknown scenario " + name)
	}
}

func scenarioNames() []string {
	return []string{"pure-add", "mixed", "single-multiplication", "weighted-sum"}
}

// report is one scenario's repeated-iteration metrics, keyed by scenario
// name in the written JSON file.
type report struct {
	Scenario string            `json:"scenario"`
	Runs     []metrics.Metrics `json:"runs"`
}

func runBench(cmd *cobra.Command, args []string) error {
	f := field.Default()
	ids := []string{"alice", "bob"}

	relayLn, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	defer relayLn.Close()
	relaySrv := relayd.New()
	go http.Serve(relayLn, relaySrv.Handler())

	gen := tpg.New(f, ids)
	ttpLn, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return err
	}
	defer ttpLn.Close()
	go http.Serve(ttpLn, ttpd.New(gen).Handler())

	relayHost, relayPort := hostPort(relayLn.Addr().String())
	ttpHost, ttpPort := hostPort(ttpLn.Addr().String())

	var reports []report
	for _, name := range scenarioNames() {
		var runs []metrics.Metrics
		for i := 0; i < iterations; i++ {
			spec, aliceInputs, bobInputs := buildScenario(name, ids, f)

			aliceClient := relay.New(relayHost, relayPort, "alice")
			aliceTTP := relay.New(ttpHost, ttpPort, "alice")
			bobClient := relay.New(relayHost, relayPort, "bob")
			bobTTP := relay.New(ttpHost, ttpPort, "bob")

			alice := &party.Engine{Client: aliceClient, TTP: aliceTTP, Field: f, Spec: spec, Self: "alice", Inputs: aliceInputs}
			bob := &party.Engine{Client: bobClient, TTP: bobTTP, Field: f, Spec: spec, Self: "bob", Inputs: bobInputs}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			m, err := runPair(ctx, alice, bob, gen)
			cancel()
			if err != nil {
				return fmt.Errorf("scenario %s iteration %d: %w", name, i, err)
			}
			runs = append(runs, m)
		}
		reports = append(reports, report{Scenario: name, Runs: runs})
		fmt.Printf("%s: %d runs complete\n", name, len(runs))
	}

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputFile, data, 0o644)
}

// runPair runs alice and bob concurrently and returns alice's instrumented
// metrics, which is representative since both sides do the same amount of
// protocol work for every scenario here.
func runPair(ctx context.Context, alice, bob *party.Engine, gen *tpg.Generator) (metrics.Metrics, error) {
	type outcome struct {
		m   metrics.Metrics
		err error
	}
	aliceDone := make(chan outcome, 1)
	bobDone := make(chan error, 1)

	go func() {
		_, m, err := alice.RunInstrumented(ctx, gen)
		aliceDone <- outcome{m, err}
	}()
	go func() {
		_, err := bob.Run(ctx)
		bobDone <- err
	}()

	aliceOut := <-aliceDone
	bobErr := <-bobDone
	if aliceOut.err != nil {
		return metrics.Metrics{}, aliceOut.err
	}
	if bobErr != nil {
		return metrics.Metrics{}, bobErr
	}
	return aliceOut.m, nil
}

func hostPort(addr string) (string, int) {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		panic(err)
	}
	var port int
	fmt.Sscanf(portStr, "%d", &port)
	return host, port
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "bench: %v\n", err)
		os.Exit(1)
	}
}

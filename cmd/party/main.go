// Command party runs one participant's instance of a protocol: it loads a
// protocol-spec file (the shared expression and participant order) and an
// input file (this party's own secret values), then drives
// core/party.Engine.Run against a relay and a TPG and prints the
// reconstructed result.
//
// spec.json is the expr package's own JSON wire form, not a textual
// expression language:
//
//	{"expr": {...}, "participants": ["alice", "bob", "carol"]}
//
// inputs.json maps this party's own secret ids (as produced by
// expr.SecretID.String) to decimal values:
//
//	{"AAECAwQFBgcICQoLDA0ODw": "42"}
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldops/smc-go/core/expr"
	"github.com/fieldops/smc-go/core/field"
	"github.com/fieldops/smc-go/core/party"
	"github.com/fieldops/smc-go/core/relay"
)

var (
	selfID     string
	relayAddr  string
	ttpAddr    string
	specPath   string
	inputsPath string
)

var rootCmd = &cobra.Command{
	Use:   "party",
	Short: "Run one participant's instance of an SMC protocol",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Load a protocol spec and inputs, then run the engine",
	RunE:  runParty,
}

func init() {
	runCmd.Flags().StringVar(&selfID, "id", "", "this party's id (required)")
	runCmd.Flags().StringVar(&relayAddr, "relay", "127.0.0.1:8080", "relay server host:port")
	runCmd.Flags().StringVar(&ttpAddr, "ttp", "127.0.0.1:8081", "TPG server host:port")
	runCmd.Flags().StringVar(&specPath, "spec", "", "protocol-spec JSON file (required)")
	runCmd.Flags().StringVar(&inputsPath, "inputs", "", "this party's secret-input JSON file")
	runCmd.MarkFlagRequired("id")
	runCmd.MarkFlagRequired("spec")
	rootCmd.AddCommand(runCmd)
}

type specFile struct {
	Expr         json.RawMessage `json:"expr"`
	Participants []string        `json:"participants"`
}

func loadSpec(path string) (party.ProtocolSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return party.ProtocolSpec{}, fmt.Errorf("read spec: %w", err)
	}
	var sf specFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return party.ProtocolSpec{}, fmt.Errorf("decode spec: %w", err)
	}
	e, err := expr.Decode(sf.Expr)
	if err != nil {
		return party.ProtocolSpec{}, fmt.Errorf("decode expr: %w", err)
	}
	return party.ProtocolSpec{Expr: e, ParticipantIDs: sf.Participants}, nil
}

func loadInputs(path string, f field.Field) (map[expr.SecretID]field.Element, error) {
	inputs := map[expr.SecretID]field.Element{}
	if path == "" {
		return inputs, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode inputs: %w", err)
	}
	for idStr, valStr := range raw {
		id, err := expr.SecretIDFromString(idStr)
		if err != nil {
			return nil, fmt.Errorf("invalid secret id %q: %w", idStr, err)
		}
		v, ok := new(big.Int).SetString(valStr, 10)
		if !ok {
			return nil, fmt.Errorf("invalid value %q for secret %s", valStr, idStr)
		}
		inputs[id] = f.FromBigInt(v)
	}
	return inputs, nil
}

func splitHostPort(hostport string) (string, int, error) {
	i := len(hostport) - 1
	for i >= 0 && hostport[i] != ':' {
		i--
	}
	if i < 0 {
		return "", 0, fmt.Errorf("invalid host:port %q: missing port", hostport)
	}
	host := hostport[:i]
	var port int
	if _, err := fmt.Sscanf(hostport[i+1:], "%d", &port); err != nil {
		return "", 0, fmt.Errorf("invalid host:port %q: %w", hostport, err)
	}
	return host, port, nil
}

func runParty(cmd *cobra.Command, args []string) error {
	f := field.Default()

	spec, err := loadSpec(specPath)
	if err != nil {
		return err
	}
	inputs, err := loadInputs(inputsPath, f)
	if err != nil {
		return err
	}

	relayHost, relayPort, err := splitHostPort(relayAddr)
	if err != nil {
		return err
	}
	ttpHost, ttpPort, err := splitHostPort(ttpAddr)
	if err != nil {
		return err
	}

	client := relay.New(relayHost, relayPort, selfID)
	ttpClient := relay.New(ttpHost, ttpPort, selfID)

	engine := &party.Engine{
		Client: client,
		TTP:    ttpClient,
		Field:  f,
		Spec:   spec,
		Self:   selfID,
		Inputs: inputs,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	result, err := engine.Run(ctx)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	fmt.Println(result.ToInt().String())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "party: %v\n", err)
		os.Exit(1)
	}
}

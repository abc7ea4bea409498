// Command ttp runs the reference Trusted Parameter Generator server
// (internal/ttpd), fronting a core/tpg.Generator over HTTP for a fixed
// participant set.
package main

import (
	"fmt"
	"log"
	"math/big"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fieldops/smc-go/core/field"
	"github.com/fieldops/smc-go/core/tpg"
	"github.com/fieldops/smc-go/internal/ttpd"
)

var (
	addr         string
	participants string
	prime        string
)

var rootCmd = &cobra.Command{
	Use:   "ttp",
	Short: "Reference Trusted Parameter Generator for the SMC engine",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the TPG server",
	RunE:  runTTP,
}

func init() {
	runCmd.Flags().StringVar(&addr, "addr", ":8081", "address to listen on")
	runCmd.Flags().StringVar(&participants, "participants", "", "comma-separated participant ids (required)")
	runCmd.Flags().StringVar(&prime, "prime", "", "field prime as a decimal integer (default: the reference prime)")
	runCmd.MarkFlagRequired("participants")
	rootCmd.AddCommand(runCmd)
}

func runTTP(cmd *cobra.Command, args []string) error {
	ids := strings.Split(participants, ",")
	for i := range ids {
		ids[i] = strings.TrimSpace(ids[i])
	}

	f := field.Default()
	if prime != "" {
		p, ok := new(big.Int).SetString(prime, 10)
		if !ok {
			return fmt.Errorf("ttp: invalid prime %q", prime)
		}
		f = field.New(p)
	}

	gen := tpg.New(f, ids)
	srv := ttpd.New(gen)
	log.Printf("[info] (ttp) listening on %s, participants=%v", addr, ids)
	return http.ListenAndServe(addr, srv.Handler())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "ttp: %v\n", err)
		os.Exit(1)
	}
}

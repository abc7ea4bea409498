// Command relay runs the reference message relay (internal/relayd) that
// core/relay.Client talks to: point-to-point and broadcast delivery over
// plain HTTP, with no persistence beyond the life of the process.
package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldops/smc-go/internal/relayd"
)

var addr string

var rootCmd = &cobra.Command{
	Use:   "relay",
	Short: "Reference relay server for the SMC engine",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the relay server",
	RunE:  runRelay,
}

func init() {
	runCmd.Flags().StringVar(&addr, "addr", ":8080", "address to listen on")
	rootCmd.AddCommand(runCmd)
}

func runRelay(cmd *cobra.Command, args []string) error {
	srv := relayd.New()
	log.Printf("[info] (relay) listening on %s", addr)
	return http.ListenAndServe(addr, srv.Handler())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "relay: %v\n", err)
		os.Exit(1)
	}
}

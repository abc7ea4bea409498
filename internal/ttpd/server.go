// Package ttpd is a reference HTTP front-end over core/tpg.Generator,
// exposing the single relay-facing shape the specification assigns to the
// TPG: GET /shares/{client}/{op_id}. Like internal/relayd, this package is
// ambient transport plumbing the specification treats as an external
// collaborator, provided so the engine is runnable end to end.
package ttpd

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/fieldops/smc-go/core/tpg"
)

// Server fronts a tpg.Generator with the relay's /shares endpoint.
type Server struct {
	gen *tpg.Generator
}

// New returns a Server backed by gen.
func New(gen *tpg.Generator) *Server {
	return &Server{gen: gen}
}

// Handler returns the http.Handler implementing GET /shares/{client}/{op_id}.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/shares/", s.handleShares)
	return mux
}

func (s *Server) handleShares(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/shares/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	client, opID := parts[0], parts[1]

	shares, err := s.gen.FetchShares(opID, client)
	if err != nil {
		log.Printf("[error] (ttpd) fetch shares for %s/%s: %v", client, opID, err)
		w.WriteHeader(http.StatusNotFound)
		return
	}

	body, err := json.Marshal([]string{
		shares.A.String(),
		shares.B.String(),
		shares.C.String(),
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	log.Printf("[debug] (ttpd) shares for %s/%s", client, opID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

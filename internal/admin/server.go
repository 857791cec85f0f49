// Package admin exposes operator commands over HTTP: ribbon edits, map
// refreshes, reconfiguration, and pausing the planner.
package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"asv-planner/internal/executive"
)

// Server wires operator endpoints to a running executive.
type Server struct {
	Exec *executive.Executive
	mux  *http.ServeMux
}

// NewServer creates a server bound to an executive.
func NewServer(exec *executive.Executive) *Server {
	s := &Server{Exec: exec, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("/status", s.handleStatus)
	s.mux.HandleFunc("/add-ribbon", s.handleAddRibbon)
	s.mux.HandleFunc("/clear-ribbons", s.handleClearRibbons)
	s.mux.HandleFunc("/refresh-map", s.handleRefreshMap)
	s.mux.HandleFunc("/configure", s.handleConfigure)
	s.mux.HandleFunc("/pause", s.handlePause)
}

// Start serves until the context is cancelled.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.mux}
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()
	return srv.ListenAndServe()
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"planner_running": s.Exec.PlannerIsRunning(),
		"ribbons_done":    s.Exec.RibbonsDone(),
	})
}

func (s *Server) handleAddRibbon(w http.ResponseWriter, r *http.Request) {
	coords := make([]float64, 4)
	for i, key := range []string{"x1", "y1", "x2", "y2"} {
		v, err := strconv.ParseFloat(r.URL.Query().Get(key), 64)
		if err != nil {
			http.Error(w, "bad "+key, http.StatusBadRequest)
			return
		}
		coords[i] = v
	}
	s.Exec.AddRibbon(coords[0], coords[1], coords[2], coords[3])
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearRibbons(w http.ResponseWriter, r *http.Request) {
	s.Exec.ClearRibbons()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRefreshMap(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		http.Error(w, "path required", http.StatusBadRequest)
		return
	}
	lat, _ := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, _ := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	s.Exec.RefreshMap(path, lat, lon)
	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) handleConfigure(w http.ResponseWriter, r *http.Request) {
	var settings executive.Settings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.Exec.SetConfiguration(settings)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	s.Exec.CancelPlanner()
	w.WriteHeader(http.StatusNoContent)
}

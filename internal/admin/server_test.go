package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"asv-planner/internal/executive"
	"asv-planner/internal/logging"
	"asv-planner/internal/nav"
	"asv-planner/internal/ribbon"
)

type nullPublisher struct{}

func (nullPublisher) Time() float64                           { return 0 }
func (nullPublisher) PublishPlan(nav.Plan) nav.State          { return nav.State{} }
func (nullPublisher) DisplayTrajectory([]nav.State, bool)     {}
func (nullPublisher) DisplayRibbons(*ribbon.Manager)          {}
func (nullPublisher) AllDone()                                {}

func newTestServer() *Server {
	ctx := logging.NewContext(context.Background(), logging.New())
	return NewServer(executive.New(ctx, nullPublisher{}))
}

func TestStatusEndpoint(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatal(err)
	}
	if body["planner_running"] != false {
		t.Errorf("expected planner_running=false, got %v", body["planner_running"])
	}
	if body["ribbons_done"] != true {
		t.Errorf("expected ribbons_done=true for empty mission, got %v", body["ribbons_done"])
	}
}

func TestAddAndClearRibbons(t *testing.T) {
	s := newTestServer()

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add-ribbon?x1=0&y1=0&x2=50&y2=0", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("add status %d", rec.Code)
	}
	if s.Exec.RibbonsDone() {
		t.Fatal("ribbon not added")
	}

	rec = httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clear-ribbons", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear status %d", rec.Code)
	}
	if !s.Exec.RibbonsDone() {
		t.Fatal("ribbons not cleared")
	}
}

func TestAddRibbonRejectsBadCoords(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add-ribbon?x1=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestConfigureEndpoint(t *testing.T) {
	s := newTestServer()
	settings := executive.DefaultSettings()
	settings.MaxSpeed = 3.5
	body, _ := json.Marshal(settings)

	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/configure", strings.NewReader(string(body))))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("configure status %d", rec.Code)
	}
}

func TestRefreshMapRequiresPath(t *testing.T) {
	s := newTestServer()
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh-map", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// Package status serves an optional HTTP health and status endpoint for
// the running simulator. It is observability only; readings are never
// queryable through it.
package status

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/kwalsh/wxsim/internal/log"
	"github.com/kwalsh/wxsim/internal/types"
)

// Snapshot is the JSON document returned by GET /status.
type Snapshot struct {
	RunID            string         `json:"run_id"`
	StartedAt        time.Time      `json:"started_at"`
	UptimeSeconds    float64        `json:"uptime_seconds"`
	RecordsPersisted int64          `json:"records_persisted"`
	LastReading      *types.Reading `json:"last_reading,omitempty"`
	LastError        string         `json:"last_error,omitempty"`
}

// Server tracks simulator progress and serves it over HTTP.
type Server struct {
	runID     string
	startedAt time.Time
	srv       *http.Server

	mu          sync.Mutex
	records     int64
	lastReading *types.Reading
	lastError   string
}

// NewServer creates a status server bound to addr.
func NewServer(addr, runID string) *Server {
	s := &Server{
		runID:     runID,
		startedAt: time.Now(),
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/status", s.handleStatus).Methods(http.MethodGet)

	s.srv = &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	return s
}

// Start runs the HTTP server and shuts it down when ctx is cancelled.
func (s *Server) Start(ctx context.Context, wg *sync.WaitGroup) {
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Infof("status endpoint listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("status endpoint error: %v", err)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			log.Warnf("status endpoint shutdown: %v", err)
		}
	}()
}

// RecordPersisted notes a successfully stored reading.
func (s *Server) RecordPersisted(r types.Reading, total int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = total
	s.lastReading = &r
	s.lastError = ""
}

// RecordError notes a failed persist attempt.
func (s *Server) RecordError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastError = err.Error()
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	snap := Snapshot{
		RunID:            s.runID,
		StartedAt:        s.startedAt,
		UptimeSeconds:    time.Since(s.startedAt).Seconds(),
		RecordsPersisted: s.records,
		LastReading:      s.lastReading,
		LastError:        s.lastError,
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		log.Errorf("error encoding status response: %v", err)
	}
}

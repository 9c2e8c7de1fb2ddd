package status

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kwalsh/wxsim/internal/types"
)

func TestHealthz(t *testing.T) {
	s := NewServer(":0", "test-run")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, expected 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, expected ok", rec.Body.String())
	}
}

func TestStatusSnapshot(t *testing.T) {
	s := NewServer(":0", "test-run")

	reading := types.Reading{
		Temperature:      21.5,
		Humidity:         55.2,
		Pressure:         1012.3,
		WindSpeed:        3.4,
		WindDirection:    "NW",
		WeatherCondition: types.PartlyCloudy,
	}
	s.RecordPersisted(reading, 42)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200", rec.Code)
	}

	var snap Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}

	if snap.RunID != "test-run" {
		t.Errorf("run id = %q", snap.RunID)
	}
	if snap.RecordsPersisted != 42 {
		t.Errorf("records = %d, expected 42", snap.RecordsPersisted)
	}
	if snap.LastReading == nil || *snap.LastReading != reading {
		t.Errorf("last reading = %+v, expected %+v", snap.LastReading, reading)
	}
	if snap.LastError != "" {
		t.Errorf("last error = %q, expected empty", snap.LastError)
	}
}

func TestStatusReportsAndClearsError(t *testing.T) {
	s := NewServer(":0", "test-run")
	s.RecordError(errors.New("connection reset"))

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var snap Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if snap.LastError != "connection reset" {
		t.Errorf("last error = %q", snap.LastError)
	}

	// A subsequent successful persist clears the error.
	s.RecordPersisted(types.Reading{}, 1)
	rec = httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	snap = Snapshot{}
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("could not decode response: %v", err)
	}
	if snap.LastError != "" {
		t.Errorf("last error = %q after successful persist, expected empty", snap.LastError)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := NewServer(":0", "test-run")

	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", rec.Code)
	}
}

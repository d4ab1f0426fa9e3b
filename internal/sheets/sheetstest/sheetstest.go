// Package sheetstest runs an in-process stand-in for the Sheets values API.
package sheetstest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"sheets-proxy/internal/sheets"
)

const Account = "proxy@sheets-proxy-test.iam.gserviceaccount.com"

// Request is one values.get call observed by the fake.
type Request struct {
	SheetID string
	Range   string
}

// Failure makes the fake answer with a Google style error body.
type Failure struct {
	Code    int
	Message string
	Status  string
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	values   map[Request][][]interface{}
	failures map[Request]Failure
	requests []Request
}

func NewServer(t testing.TB) *Server {
	s := &Server{
		values:   map[Request][][]interface{}{},
		failures: map[Request]Failure{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// SetValues registers the rows returned for sheetID and rng. A nil rows value
// yields a response without a values key, as the real API does for empty ranges.
func (s *Server) SetValues(sheetID, rng string, rows [][]interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[Request{sheetID, rng}] = rows
}

func (s *Server) SetFailure(sheetID, rng string, f Failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[Request{sheetID, rng}] = f
}

func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// Client returns a sheets.Client whose service talks to this fake.
func (s *Server) Client(t testing.TB) *sheets.Client {
	srv, err := sheetsv4.NewService(context.Background(),
		option.WithEndpoint(s.URL+"/"),
		option.WithHTTPClient(s.Server.Client()),
	)
	if err != nil {
		t.Fatalf("sheets service: %v", err)
	}
	return sheets.NewWithService(srv, Account)
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	rest, ok := strings.CutPrefix(r.URL.Path, "/v4/spreadsheets/")
	if !ok || r.Method != http.MethodGet {
		writeFailure(w, Failure{Code: http.StatusNotFound, Message: "unknown method", Status: "NOT_FOUND"})
		return
	}
	id, rng, ok := strings.Cut(rest, "/values/")
	if !ok {
		writeFailure(w, Failure{Code: http.StatusNotFound, Message: "unknown method", Status: "NOT_FOUND"})
		return
	}
	req := Request{SheetID: id, Range: rng}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	f, failed := s.failures[req]
	rows, found := s.values[req]
	s.mu.Unlock()

	switch {
	case failed:
		writeFailure(w, f)
	case !found:
		writeFailure(w, Failure{
			Code:    http.StatusNotFound,
			Message: "Requested entity was not found.",
			Status:  "NOT_FOUND",
		})
	default:
		body := map[string]interface{}{"range": rng, "majorDimension": "ROWS"}
		if rows != nil {
			body["values"] = rows
		}
		w.Header().Set("Content-Type", "application/json; charset=UTF-8")
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeFailure(w http.ResponseWriter, f Failure) {
	w.Header().Set("Content-Type", "application/json; charset=UTF-8")
	w.WriteHeader(f.Code)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]interface{}{
			"code":    f.Code,
			"message": f.Message,
			"status":  f.Status,
		},
	})
}

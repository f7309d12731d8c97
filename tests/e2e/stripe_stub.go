//go:build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// StripeStub is an in-memory stand-in for the Checkout Sessions API.
type StripeStub struct {
	server   *httptest.Server
	mu       sync.Mutex
	sessions map[string]map[string]any
	seq      atomic.Int64
	down     atomic.Bool
}

func NewStripeStub() *StripeStub {
	s := &StripeStub{sessions: map[string]map[string]any{}}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/checkout/sessions", s.create)
	mux.HandleFunc("/v1/checkout/sessions/", s.retrieve)
	s.server = httptest.NewServer(mux)
	return s
}

func (s *StripeStub) URL() string { return s.server.URL }

func (s *StripeStub) Close() { s.server.Close() }

// SetDown makes every call answer 503.
func (s *StripeStub) SetDown(down bool) { s.down.Store(down) }

// MarkPaid flips a stored session to complete/paid, as the hosted page would.
func (s *StripeStub) MarkPaid(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		sess["status"] = "complete"
		sess["payment_status"] = "paid"
	}
}

func (s *StripeStub) Session(id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func (s *StripeStub) create(w http.ResponseWriter, r *http.Request) {
	if s.unavailable(w) {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	unit, _ := strconv.ParseInt(r.PostForm.Get("line_items[0][price_data][unit_amount]"), 10, 64)
	qty, _ := strconv.ParseInt(r.PostForm.Get("line_items[0][quantity]"), 10, 64)
	metadata := map[string]string{}
	for k, v := range r.PostForm {
		if strings.HasPrefix(k, "metadata[") && strings.HasSuffix(k, "]") {
			metadata[strings.TrimSuffix(strings.TrimPrefix(k, "metadata["), "]")] = v[0]
		}
	}

	id := fmt.Sprintf("cs_test_e2e_%d", s.seq.Add(1))
	sess := map[string]any{
		"id":             id,
		"object":         "checkout.session",
		"url":            "https://checkout.stripe.com/c/pay/" + id,
		"status":         "open",
		"payment_status": "unpaid",
		"amount_total":   unit * qty,
		"currency":       r.PostForm.Get("line_items[0][price_data][currency]"),
		"metadata":       metadata,
		"created":        time.Now().Unix(),
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, sess)
}

func (s *StripeStub) retrieve(w http.ResponseWriter, r *http.Request) {
	if s.unavailable(w) {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/checkout/sessions/")
	sess, ok := s.Session(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]any{
			"type":    "invalid_request_error",
			"code":    "resource_missing",
			"message": "No such checkout.session: " + id,
		}})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *StripeStub) unavailable(w http.ResponseWriter) bool {
	if !s.down.Load() {
		return false
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": map[string]any{"type": "api_error", "message": "unavailable"}})
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

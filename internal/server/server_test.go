package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wealthmap/wealthmap/pkg/cache"
	"github.com/wealthmap/wealthmap/pkg/holdings"
	"github.com/wealthmap/wealthmap/pkg/pipeline"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := New(holdings.NewMemoryStore(), nil, pipeline.Options{}, nil, nil)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func postHolding(t *testing.T, ts *httptest.Server, body string) holdings.Holding {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/holdings/", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("POST status = %d, want 201", resp.StatusCode)
	}
	var h holdings.Holding
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return h
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestHoldingsCRUD(t *testing.T) {
	_, ts := newTestServer(t)

	h := postHolding(t, ts, `{"symbol":"aapl","name":"Apple","type":"stocks","shares":"10","avg_cost":"150","current_price":"200"}`)
	if h.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", h.Symbol)
	}
	if h.Type != holdings.TypeStock {
		t.Errorf("Type = %q, want stock", h.Type)
	}

	// Get
	resp, err := http.Get(fmt.Sprintf("%s/api/holdings/%s", ts.URL, h.ID))
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET status = %d, want 200", resp.StatusCode)
	}

	// Patch
	req, _ := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/api/holdings/%s", ts.URL, h.ID),
		bytes.NewReader([]byte(`{"shares":"20"}`)))
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PATCH error: %v", err)
	}
	var updated holdings.Holding
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode PATCH response: %v", err)
	}
	resp.Body.Close()
	if updated.Shares.String() != "20" {
		t.Errorf("Shares = %s, want 20", updated.Shares)
	}

	// List
	resp, err = http.Get(ts.URL + "/api/holdings/")
	if err != nil {
		t.Fatalf("GET list error: %v", err)
	}
	var list struct {
		Holdings []holdings.Holding `json:"holdings"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	resp.Body.Close()
	if len(list.Holdings) != 1 {
		t.Errorf("got %d holdings, want 1", len(list.Holdings))
	}

	// Delete
	req, _ = http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/holdings/%s", ts.URL, h.ID), nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("DELETE status = %d, want 204", resp.StatusCode)
	}

	// Gone
	resp, _ = http.Get(fmt.Sprintf("%s/api/holdings/%s", ts.URL, h.ID))
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestCreateHoldingValidation(t *testing.T) {
	_, ts := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"bad json", `{not json`},
		{"empty symbol", `{"symbol":"","name":"X","type":"stock","shares":"1","avg_cost":"1"}`},
		{"zero shares", `{"symbol":"AAPL","name":"Apple","type":"stock","shares":"0","avg_cost":"1"}`},
		{"unknown field", `{"symbol":"AAPL","shares":"1","avg_cost":"1","bogus":true}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/holdings/", "application/json", strings.NewReader(tt.body))
			if err != nil {
				t.Fatalf("POST error: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			var envelope struct {
				Code  string `json:"code"`
				Error string `json:"error"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
				t.Fatalf("decode error envelope: %v", err)
			}
			if envelope.Code == "" || envelope.Error == "" {
				t.Error("error envelope should carry code and message")
			}
		})
	}
}

func TestAllocationEndpoints(t *testing.T) {
	_, ts := newTestServer(t)

	postHolding(t, ts, `{"symbol":"AAPL","name":"Apple","type":"stock","shares":"10","avg_cost":"150","current_price":"200"}`)
	postHolding(t, ts, `{"symbol":"BTC","name":"Bitcoin","type":"crypto","shares":"1","avg_cost":"40000","current_price":"60000"}`)

	// Aggregated items
	resp, err := http.Get(ts.URL + "/api/allocation/")
	if err != nil {
		t.Fatalf("GET allocation error: %v", err)
	}
	var alloc struct {
		Items []struct {
			ID    string  `json:"id"`
			Value float64 `json:"value"`
		} `json:"items"`
		Total float64 `json:"total"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&alloc); err != nil {
		t.Fatalf("decode allocation: %v", err)
	}
	resp.Body.Close()
	if len(alloc.Items) != 2 {
		t.Fatalf("got %d items, want 2", len(alloc.Items))
	}
	if alloc.Items[0].ID != "crypto" || alloc.Items[0].Value != 60000 {
		t.Errorf("items[0] = %+v, want crypto 60000", alloc.Items[0])
	}
	if alloc.Total != 62000 {
		t.Errorf("total = %v, want 62000", alloc.Total)
	}

	// Layout JSON
	resp, err = http.Get(ts.URL + "/api/allocation/layout?radius=100")
	if err != nil {
		t.Fatalf("GET layout error: %v", err)
	}
	var layout struct {
		Segments []struct {
			ID         string  `json:"id"`
			Percentage float64 `json:"percentage"`
		} `json:"segments"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&layout); err != nil {
		t.Fatalf("decode layout: %v", err)
	}
	resp.Body.Close()
	if len(layout.Segments) != 2 {
		t.Fatalf("got %d segments, want 2", len(layout.Segments))
	}

	// SVG chart
	resp, err = http.Get(ts.URL + "/api/allocation/chart.svg?title=Allocation")
	if err != nil {
		t.Fatalf("GET chart error: %v", err)
	}
	if got := resp.Header.Get("Content-Type"); got != "image/svg+xml" {
		t.Errorf("Content-Type = %q", got)
	}
	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(resp.Body)
	resp.Body.Close()
	if !strings.Contains(body.String(), "<svg") || !strings.Contains(body.String(), "Allocation") {
		t.Error("chart response should be a titled SVG")
	}
}

func TestAllocationChartBadGeometry(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/allocation/chart.svg?radius=bogus")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/allocation/chart.svg?radius=900")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("oversized radius status = %d, want 400", resp.StatusCode)
	}
}

func TestGainsChart(t *testing.T) {
	_, ts := newTestServer(t)

	postHolding(t, ts, `{"symbol":"AAPL","name":"Apple","type":"stock","shares":"10","avg_cost":"150","current_price":"200"}`)
	postHolding(t, ts, `{"symbol":"BTC","name":"Bitcoin","type":"crypto","shares":"1","avg_cost":"60000","current_price":"40000"}`)

	resp, err := http.Get(ts.URL + "/api/gains/chart.svg")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body.String(), "<rect") {
		t.Error("gains chart should render bars")
	}
}

func TestAllocationEmptyPortfolio(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/allocation/chart.svg")
	if err != nil {
		t.Fatalf("GET error: %v", err)
	}
	body := new(bytes.Buffer)
	_, _ = body.ReadFrom(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body.String(), "No data") {
		t.Error("empty portfolio should render the placeholder chart")
	}
}

// listHookStore runs a hook before delegating List, so tests can interleave
// writes with an in-flight snapshot read.
type listHookStore struct {
	holdings.Store
	onList func()
}

func (s *listHookStore) List(ctx context.Context) ([]holdings.Holding, error) {
	if s.onList != nil {
		s.onList()
	}
	return s.Store.List(ctx)
}

func TestSnapshotNotCachedWhenWriteRaces(t *testing.T) {
	ctx := context.Background()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	hook := &listHookStore{Store: holdings.NewMemoryStore()}
	srv := New(hook, pipeline.NewRunner(fc, nil, nil), pipeline.Options{}, nil, nil)
	key := srv.runner.Keyer.HoldingsKey("allocation")

	// A write landing while the store read is in flight invalidates the
	// snapshot generation; the stale result must not be cached.
	hook.onList = func() { srv.invalidateSnapshot(ctx) }
	if _, err := srv.snapshotItems(ctx, true); err != nil {
		t.Fatalf("snapshotItems error: %v", err)
	}
	if _, hit, _ := fc.Get(ctx, key); hit {
		t.Error("snapshot invalidated mid-read should not be cached")
	}

	// A clean read caches normally.
	hook.onList = nil
	if _, err := srv.snapshotItems(ctx, true); err != nil {
		t.Fatalf("snapshotItems error: %v", err)
	}
	if _, hit, _ := fc.Get(ctx, key); !hit {
		t.Error("snapshot should be cached after an uncontended read")
	}
}

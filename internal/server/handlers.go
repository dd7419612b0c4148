package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/wealthmap/wealthmap/pkg/chart"
	"github.com/wealthmap/wealthmap/pkg/errors"
	"github.com/wealthmap/wealthmap/pkg/holdings"
	"github.com/wealthmap/wealthmap/pkg/pipeline"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// createHoldingRequest is the POST /api/holdings body.
type createHoldingRequest struct {
	Symbol       string           `json:"symbol"`
	Name         string           `json:"name"`
	Type         string           `json:"type"`
	Shares       decimal.Decimal  `json:"shares"`
	AvgCost      decimal.Decimal  `json:"avg_cost"`
	CurrentPrice *decimal.Decimal `json:"current_price,omitempty"`
	Sector       string           `json:"sector,omitempty"`
	Platform     string           `json:"platform,omitempty"`
}

func (s *Server) handleCreateHolding(w http.ResponseWriter, r *http.Request) {
	var req createHoldingRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	h, err := holdings.New(req.Symbol, req.Name, req.Type, req.Shares, req.AvgCost)
	if err != nil {
		writeError(w, err)
		return
	}
	if req.CurrentPrice != nil {
		h.CurrentPrice = *req.CurrentPrice
	}
	h.Sector = req.Sector
	h.Platform = req.Platform
	if err := h.Validate(); err != nil {
		writeError(w, err)
		return
	}

	if err := s.store.Create(r.Context(), h); err != nil {
		writeError(w, err)
		return
	}
	s.invalidateSnapshot(r.Context())
	writeJSON(w, http.StatusCreated, h)
}

func (s *Server) handleListHoldings(w http.ResponseWriter, r *http.Request) {
	hs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"holdings": hs,
		"total":    holdings.TotalValue(hs),
	})
}

func (s *Server) handleGetHolding(w http.ResponseWriter, r *http.Request) {
	h, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleUpdateHolding(w http.ResponseWriter, r *http.Request) {
	var u holdings.Update
	if err := decodeBody(r, &u); err != nil {
		writeError(w, err)
		return
	}
	h, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		writeError(w, err)
		return
	}
	s.invalidateSnapshot(r.Context())
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleDeleteHolding(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	s.invalidateSnapshot(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAllocation(w http.ResponseWriter, r *http.Request) {
	items, err := s.snapshotItems(r.Context(), refreshParam(r))
	if err != nil {
		writeError(w, err)
		return
	}
	var total float64
	for _, it := range items {
		total += it.Value
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (s *Server) handleAllocationLayout(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{pipeline.FormatJSON}

	items, err := s.snapshotItems(r.Context(), opts.Refresh)
	if err != nil {
		writeError(w, err)
		return
	}
	result, err := s.runner.Execute(r.Context(), items, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatJSON])
}

func (s *Server) handleAllocationChart(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{pipeline.FormatSVG}

	items, err := s.snapshotItems(r.Context(), opts.Refresh)
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeChartSVG(w, r, items, opts)
}

func (s *Server) handleGainsChart(w http.ResponseWriter, r *http.Request) {
	opts, err := s.requestOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts.ChartType = pipeline.ChartDiverging
	opts.Formats = []string{pipeline.FormatSVG}

	hs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	s.writeChartSVG(w, r, holdings.GainLossItems(hs), opts)
}

func (s *Server) writeChartSVG(w http.ResponseWriter, r *http.Request, items []chart.Item, opts pipeline.Options) {
	result, err := s.runner.Execute(r.Context(), items, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[pipeline.FormatSVG])
}

// requestOptions merges per-request query parameters over the server's
// configured chart defaults.
func (s *Server) requestOptions(r *http.Request) (pipeline.Options, error) {
	opts := s.opts
	q := r.URL.Query()

	for param, dst := range map[string]*float64{
		"width":          &opts.Width,
		"height":         &opts.Height,
		"radius":         &opts.Radius,
		"label_distance": &opts.LabelDistance,
		"min_spacing":    &opts.MinSpacing,
		"label_offset":   &opts.LabelOffset,
	} {
		raw := q.Get(param)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", param, raw)
		}
		*dst = v
	}

	if title := q.Get("title"); title != "" {
		opts.Title = title
	}
	opts.Interactive = q.Get("interactive") == "true"
	opts.Refresh = refreshParam(r)

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func refreshParam(r *http.Request) bool {
	return r.URL.Query().Get("refresh") == "true"
}

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/ppc-intelligence/internal/config"
	"github.com/ignite/ppc-intelligence/internal/export"
	"github.com/ignite/ppc-intelligence/internal/pipeline"
	"github.com/ignite/ppc-intelligence/internal/portfolio"
	"github.com/ignite/ppc-intelligence/internal/report"
	"github.com/ignite/ppc-intelligence/internal/storage"
)

// Handlers contains all HTTP handlers.
type Handlers struct {
	store   *storage.Store
	cfg     *config.Config
	aliases report.AliasTable
	s3      *export.S3Delivery
}

// NewHandlers creates a new Handlers instance using the default alias
// table.
func NewHandlers(store *storage.Store, cfg *config.Config) *Handlers {
	return &Handlers{
		store:   store,
		cfg:     cfg,
		aliases: report.DefaultAliasTable(),
	}
}

// SetS3Delivery enables S3 delivery of generated bulk files.
func (h *Handlers) SetS3Delivery(d *export.S3Delivery) {
	h.s3 = d
}

// SetAliasTable overrides the column alias table for subsequent uploads.
func (h *Handlers) SetAliasTable(t report.AliasTable) {
	h.aliases = t
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// HealthCheck returns the health status of the API.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now(),
	})
}

// ListAccounts returns the stored account names.
// GET /api/accounts
func (h *Handlers) ListAccounts(w http.ResponseWriter, r *http.Request) {
	names, err := h.store.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"accounts": names,
		"total":    len(names),
	})
}

// UploadReport ingests a search term report for an account and replaces
// its stored snapshot. Accepts multipart form data with a "file" field or
// a raw CSV body.
// POST /api/accounts/{name}/report
func (h *Handlers) UploadReport(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		respondError(w, http.StatusBadRequest, "account name is required")
		return
	}

	var reader io.Reader = r.Body
	if ct := r.Header.Get("Content-Type"); len(ct) >= 19 && ct[:19] == "multipart/form-data" {
		if err := r.ParseMultipartForm(64 << 20); err != nil {
			respondError(w, http.StatusBadRequest, "invalid multipart form")
			return
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			respondError(w, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()
		reader = file
	}

	records, resolution, err := report.Parse(reader, h.aliases)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap := &storage.Snapshot{
		Account:    name,
		Records:    records,
		Resolution: resolution,
	}
	if err := h.store.Save(r.Context(), snap); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"account":   name,
		"upload_id": snap.UploadID,
		"rows":      len(records),
		"defaulted": resolution.Defaulted,
	})
}

// DeleteAccount removes an account's stored snapshot.
// DELETE /api/accounts/{name}
func (h *Handlers) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := h.store.Delete(r.Context(), name); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": name})
}

// AnalyzeRequest carries optional per-run overrides of the configured
// pipeline parameters.
type AnalyzeRequest struct {
	MarginPercent  *float64            `json:"margin_percent,omitempty"`
	WastePolicy    string              `json:"waste_policy,omitempty"`
	WasteThreshold *float64            `json:"waste_threshold,omitempty"`
	PenaltySource  string              `json:"penalty_source,omitempty"`
	SoftWaste      *bool               `json:"soft_waste,omitempty"`
	Weights        *pipeline.WeightSet `json:"weights,omitempty"`
	TotalRevenue   *float64            `json:"total_revenue,omitempty"`
}

func (req *AnalyzeRequest) apply(cfg pipeline.Config) pipeline.Config {
	if req.MarginPercent != nil {
		cfg.MarginPercent = *req.MarginPercent
	}
	if req.WastePolicy != "" {
		cfg.WastePolicy = pipeline.WastePolicy(req.WastePolicy)
	}
	if req.WasteThreshold != nil {
		cfg.WasteThreshold = *req.WasteThreshold
	}
	if req.PenaltySource != "" {
		cfg.PenaltySource = pipeline.PenaltySource(req.PenaltySource)
	}
	if req.SoftWaste != nil {
		cfg.SoftWaste = *req.SoftWaste
	}
	if req.Weights != nil {
		cfg.Weights = *req.Weights
	}
	if req.TotalRevenue != nil {
		cfg.TotalRevenue = *req.TotalRevenue
	}
	return cfg
}

// Analyze runs the scoring pipeline over an account's stored snapshot.
// POST /api/accounts/{name}/analyze
func (h *Handlers) Analyze(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.loadSnapshot(w, r)
	if !ok {
		return
	}

	cfg := h.cfg.Pipeline
	if r.ContentLength > 0 {
		var req AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		cfg = req.apply(cfg)
	}

	analysis, err := pipeline.Run(snap.Records, cfg)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, analysis)
}

// GetRollups aggregates the account's scored records by campaign or SKU.
// GET /api/accounts/{name}/rollups?key=campaign|sku
func (h *Handlers) GetRollups(w http.ResponseWriter, r *http.Request) {
	analysis, ok := h.analyzeSnapshot(w, r)
	if !ok {
		return
	}

	key := portfolio.GroupByCampaign
	if r.URL.Query().Get("key") == "sku" {
		key = portfolio.GroupBySKU
	}

	rollups := portfolio.BuildRollups(analysis.Records, key)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"key":     key,
		"rollups": rollups,
	})
}

// SimulateRequest names the incremental budget to distribute.
type SimulateRequest struct {
	Budget float64 `json:"budget"`
	Key    string  `json:"key,omitempty"`
}

// Simulate projects the effect of an incremental budget allocated across
// campaign rollups in proportion to mean UIS.
// POST /api/accounts/{name}/simulate
func (h *Handlers) Simulate(w http.ResponseWriter, r *http.Request) {
	analysis, ok := h.analyzeSnapshot(w, r)
	if !ok {
		return
	}

	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	key := portfolio.GroupByCampaign
	if req.Key == "sku" {
		key = portfolio.GroupBySKU
	}

	rollups := portfolio.BuildRollups(analysis.Records, key)
	allocations, err := portfolio.SimulateBudget(rollups, req.Budget)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"budget":      req.Budget,
		"key":         key,
		"allocations": allocations,
	})
}

// CompareRequest carries two independently computed rollups of the same
// group for period-over-period comparison.
type CompareRequest struct {
	Current  portfolio.Rollup `json:"current"`
	Previous portfolio.Rollup `json:"previous"`
}

// Compare diffs a current-period rollup against a previous-period one.
// POST /api/compare
func (h *Handlers) Compare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondJSON(w, http.StatusOK, portfolio.CompareRollups(req.Current, req.Previous))
}

// Export generates a bulk operations file for the account.
// GET /api/accounts/{name}/export/{kind}  kind = smart-bid | negatives | isolation
// With ?deliver=s3 the file is uploaded instead of streamed.
func (h *Handlers) Export(w http.ResponseWriter, r *http.Request) {
	analysis, ok := h.analyzeSnapshot(w, r)
	if !ok {
		return
	}

	kind := export.FileKind(chi.URLParam(r, "kind"))
	var rows []export.BulkRow
	switch kind {
	case export.FileSmartBid:
		rows = export.SmartBidRows(analysis.Records)
	case export.FileNegatives:
		rows = export.NegativeRows(analysis.NegativeCandidates())
	case export.FileIsolation:
		rows = export.IsolationRows(analysis.IsolationCandidates(), h.cfg.Export.DailyBudget, time.Now())
	default:
		respondError(w, http.StatusBadRequest, "unknown export kind "+string(kind))
		return
	}

	if r.URL.Query().Get("deliver") == "s3" {
		if h.s3 == nil {
			respondError(w, http.StatusServiceUnavailable, "S3 delivery not configured")
			return
		}
		key, err := h.s3.Deliver(r.Context(), chi.URLParam(r, "name"), kind, rows)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"s3_key": key, "rows": len(rows)})
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+string(kind)+`.csv"`)
	if err := export.WriteCSV(w, kind, rows); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// loadSnapshot fetches the account snapshot named in the URL, writing the
// error response itself when the account is missing.
func (h *Handlers) loadSnapshot(w http.ResponseWriter, r *http.Request) (*storage.Snapshot, bool) {
	name := chi.URLParam(r, "name")
	snap, err := h.store.Get(r.Context(), name)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	if snap == nil {
		respondError(w, http.StatusNotFound, "no report uploaded for account "+name)
		return nil, false
	}
	return snap, true
}

// analyzeSnapshot loads the snapshot and runs the configured pipeline over
// it for the read-side endpoints that need scored records.
func (h *Handlers) analyzeSnapshot(w http.ResponseWriter, r *http.Request) (*pipeline.Analysis, bool) {
	snap, ok := h.loadSnapshot(w, r)
	if !ok {
		return nil, false
	}
	analysis, err := pipeline.Run(snap.Records, h.cfg.Pipeline)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return analysis, true
}

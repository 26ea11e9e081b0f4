package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/corpgraph/kindred/internal/adapter/exporter"
	"github.com/corpgraph/kindred/internal/adapter/metrics"
	"github.com/corpgraph/kindred/internal/core/domain"
	"github.com/corpgraph/kindred/internal/core/ports"
)

type RestHandler struct {
	scorer       *domain.Scorer
	officers     ports.OfficerRepository
	connections  ports.ConnectionRepository
	notifier     ports.Notifier
	csvExporter  *exporter.CSVExporter
	jsonExporter *exporter.JSONExporter
}

func NewRestHandler(scorer *domain.Scorer, officers ports.OfficerRepository, connections ports.ConnectionRepository, notifier ports.Notifier) *RestHandler {
	return &RestHandler{
		scorer:       scorer,
		officers:     officers,
		connections:  connections,
		notifier:     notifier,
		csvExporter:  exporter.NewCSVExporter(connections),
		jsonExporter: exporter.NewJSONExporter(connections),
	}
}

// Health check endpoint
func (h *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "kindred-api",
	}
	writeJSON(w, http.StatusOK, response)
}

type scorePairRequest struct {
	OfficerA domain.RawOfficer `json:"officer_a"`
	OfficerB domain.RawOfficer `json:"officer_b"`
}

// ScorePair scores a single ad-hoc pair of records without persisting
// anything. Useful for investigators testing hypotheses.
func (h *RestHandler) ScorePair(w http.ResponseWriter, r *http.Request) {
	var req scorePairRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	score, err := h.scorer.Score(req.OfficerA, req.OfficerB)
	if err != nil {
		if errors.Is(err, domain.ErrMalformedRecord) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to score pair")
		return
	}

	metrics.RecordPairScored(string(score.Confidence), score.TotalScore)
	writeJSON(w, http.StatusOK, score)
}

// AnalyzeCompany loads every stored officer record for a company, scores
// all unordered pairs, persists the results, and notifies on
// high-confidence findings.
func (h *RestHandler) AnalyzeCompany(w http.ResponseWriter, r *http.Request) {
	companyNumber := mux.Vars(r)["companyNumber"]
	if companyNumber == "" {
		writeError(w, http.StatusBadRequest, "missing company number")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	timer := metrics.StartTimer()
	defer timer.ObserveDuration()

	records, err := h.officers.FindOfficersByCompany(ctx, companyNumber)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load officers")
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusNotFound, "no officers stored for company")
		return
	}

	scores := h.scorer.ScoreGroup(records)

	now := time.Now().UTC()
	pairs := make([]domain.ScoredPair, 0, len(scores))
	for _, score := range scores {
		metrics.RecordPairScored(string(score.Confidence), score.TotalScore)
		pairs = append(pairs, domain.ScoredPair{
			ID:            uuid.New().String(),
			CompanyNumber: companyNumber,
			OfficerA:      score.OfficerA,
			OfficerB:      score.OfficerB,
			TotalScore:    score.TotalScore,
			Confidence:    score.Confidence,
			Reasons:       score.Reasons,
			ScoredAt:      now,
		})
	}

	if len(pairs) > 0 {
		if err := h.connections.SaveBatch(ctx, pairs); err != nil {
			writeError(w, http.StatusInternalServerError, "failed to persist connections")
			return
		}
	}

	highCount := 0
	for _, pair := range pairs {
		if pair.Confidence != domain.ConfidenceHigh {
			continue
		}
		highCount++
		if h.notifier == nil {
			continue
		}
		err := h.notifier.NotifyHighConfidenceConnection(ports.ConnectionNotification{
			OfficerA:      pair.OfficerA,
			OfficerB:      pair.OfficerB,
			CompanyNumber: pair.CompanyNumber,
			TotalScore:    pair.TotalScore,
			Confidence:    string(pair.Confidence),
			Reasons:       pair.Reasons,
		})
		if err != nil {
			log.Printf("Failed to send notification for %s/%s: %v", pair.OfficerA, pair.OfficerB, err)
		}
	}

	response := map[string]interface{}{
		"company_number":  companyNumber,
		"officers":        len(records),
		"pairs_scored":    len(pairs),
		"high_confidence": highCount,
		"connections":     pairs,
	}
	writeJSON(w, http.StatusOK, response)
}

// GetCompanyConnections returns previously scored pairs for one company.
func (h *RestHandler) GetCompanyConnections(w http.ResponseWriter, r *http.Request) {
	companyNumber := mux.Vars(r)["companyNumber"]
	if companyNumber == "" {
		writeError(w, http.StatusBadRequest, "missing company number")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pairs, err := h.connections.FindByCompany(ctx, companyNumber)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to query connections")
		return
	}

	response := map[string]interface{}{
		"company_number": companyNumber,
		"count":          len(pairs),
		"connections":    pairs,
	}
	writeJSON(w, http.StatusOK, response)
}

// ListConnections returns recently scored pairs across all companies.
func (h *RestHandler) ListConnections(w http.ResponseWriter, r *http.Request) {
	since := time.Now().Add(-24 * time.Hour)
	if raw := r.URL.Query().Get("since"); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'since' parameter (use format like '24h', '168h')")
			return
		}
		since = time.Now().Add(-duration)
	}

	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10000 {
			writeError(w, http.StatusBadRequest, "invalid 'limit' parameter (1-10000)")
			return
		}
		limit = parsed
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	pairs, err := h.connections.FindSince(ctx, since, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to query connections")
		return
	}

	response := map[string]interface{}{
		"count":       len(pairs),
		"connections": pairs,
	}
	writeJSON(w, http.StatusOK, response)
}

// GetConnectionFeed exports scored connections for downstream systems.
func (h *RestHandler) GetConnectionFeed(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")

	var sinceTime time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		duration, err := time.ParseDuration(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid 'since' parameter (use format like '24h', '168h')")
			return
		}
		sinceTime = time.Now().Add(-duration)
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	switch format {
	case "csv":
		data, err := h.csvExporter.Export(ctx, sinceTime)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to export CSV feed")
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(data)); err != nil {
			log.Printf("Error writing CSV feed response: %v", err)
		}

	case "json", "":
		data, err := h.jsonExporter.Export(ctx, sinceTime)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to export JSON feed")
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(data)); err != nil {
			log.Printf("Error writing JSON feed response: %v", err)
		}

	default:
		writeError(w, http.StatusBadRequest, "unsupported format (use 'csv' or 'json')")
	}
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// Package api exposes HTTP handlers for the healthy weight service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/domain"
	"github.com/brandondoesreviews-afk/healthy-weight-range/internal/usage"
)

// Handler handles HTTP interactions.
type Handler struct {
	usage *usage.Service
}

// NewHandler constructs Handler.
func NewHandler(counter *usage.Service) *Handler {
	return &Handler{usage: counter}
}

// RegisterRoutes sets up routes.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/usage", h.readUsage)
	mux.HandleFunc("/usage/increment", h.incrementUsage)
	mux.HandleFunc("/v1/weight-range", h.weightRange)
	mux.HandleFunc("/healthz", healthz)
}

// healthz returns an OK response for readiness probes.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readUsage reports the persisted calculation count. It always answers
// 200: an unreadable store degrades to a zero count inside the service.
func (h *Handler) readUsage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}
	writeJSON(w, http.StatusOK, UsageResponse{Count: h.usage.Read(r.Context())})
}

// incrementUsage bumps the counter and reports the post-increment value.
// Callers are expected to invoke it only after a successful calculation
// for an adult subject.
func (h *Handler) incrementUsage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	count, err := h.usage.IncrementAndRead(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "usage counter unavailable")
		return
	}
	writeJSON(w, http.StatusOK, UsageResponse{Count: count})
}

func (h *Handler) weightRange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req WeightRangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	input, err := req.Input()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", "sex must be male/female and frame small/medium/large")
		return
	}

	result, err := domain.Compute(input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_input", "age must be positive, feet non-negative, inches within 0-11")
			return
		}
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, WeightRangeResponse{Result: result, Adult: input.Adult()})
}

// WeightRangeRequest represents the request payload.
type WeightRangeRequest struct {
	Sex          string  `json:"sex"`
	AgeYears     float64 `json:"age_years"`
	HeightFeet   float64 `json:"height_feet"`
	HeightInches float64 `json:"height_inches"`
	Frame        string  `json:"frame"`
}

// Input converts the wire payload into a domain Input, rejecting unknown
// enum values.
func (r WeightRangeRequest) Input() (domain.Input, error) {
	sex, err := domain.ParseSex(r.Sex)
	if err != nil {
		return domain.Input{}, err
	}
	frame, err := domain.ParseFrame(r.Frame)
	if err != nil {
		return domain.Input{}, err
	}
	return domain.Input{
		Sex:          sex,
		AgeYears:     r.AgeYears,
		HeightFeet:   r.HeightFeet,
		HeightInches: r.HeightInches,
		Frame:        frame,
	}, nil
}

// WeightRangeResponse wraps a computed result. Adult tells the caller
// whether this calculation should count toward usage.
type WeightRangeResponse struct {
	Result domain.WeightResult `json:"result"`
	Adult  bool                `json:"adult"`
}

// UsageResponse is the payload of both usage endpoints.
type UsageResponse struct {
	Count int64 `json:"count"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	writeJSON(w, status, map[string]string{"type": code, "detail": detail})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

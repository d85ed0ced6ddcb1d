package service

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/CoderArchie/Membership-Manager/internal/domain"
	"github.com/CoderArchie/Membership-Manager/internal/extraction"
	"github.com/CoderArchie/Membership-Manager/internal/store"
)

// Handler exposes the analysis pipeline over HTTP.
type Handler struct {
	analyzer       *Analyzer
	store          store.Store
	maxUploadBytes int64
	logger         *zap.Logger
}

// NewHandler creates the HTTP handler set.
func NewHandler(analyzer *Analyzer, st store.Store, maxUploadBytes int64, logger *zap.Logger) *Handler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &Handler{analyzer: analyzer, store: st, maxUploadBytes: maxUploadBytes, logger: logger}
}

// Register mounts the routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/statements", h.uploadStatement)
	mux.HandleFunc("GET /api/analyses", h.listAnalyses)
	mux.HandleFunc("GET /api/analyses/{id}", h.getAnalysis)
	mux.HandleFunc("GET /api/memberships", h.listMemberships)
}

type analyzeResponse struct {
	AnalysisID  string                    `json:"analysis_id"`
	Memberships []domain.MembershipRecord `json:"memberships"`
	Skipped     []domain.SkippedRow       `json:"skipped"`
}

type errorResponse struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

// uploadStatement accepts a multipart "file" field plus optional "format"
// and "locale" form values, runs the pipeline, and persists the result.
func (h *Handler) uploadStatement(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		h.writeError(w, http.StatusBadRequest, "BAD_UPLOAD", "could not parse multipart upload")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "BAD_UPLOAD", "missing file field")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, http.StatusBadRequest, "BAD_UPLOAD", "could not read uploaded file")
		return
	}

	opts := AnalyzeOptions{
		FormatHint: domain.SourceFormat(r.FormValue("format")),
		LocaleHint: r.FormValue("locale"),
	}

	records, skipped, err := h.analyzer.Analyze(r.Context(), data, opts)
	if err != nil {
		var se *extraction.StatementError
		if errors.As(err, &se) {
			// Fatal statement errors: empty record set with the reason.
			h.writeError(w, http.StatusUnprocessableEntity, string(se.Code), se.Message)
			return
		}
		h.logger.Error("analysis failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "INTERNAL", "analysis failed")
		return
	}

	format := opts.FormatHint
	if format == "" && len(records) > 0 && len(records[0].Transactions) > 0 {
		format = records[0].Transactions[0].Source
	}
	a := &store.Analysis{
		FileName:    header.Filename,
		Format:      format,
		Memberships: records,
		Skipped:     skipped,
	}
	if err := h.store.CreateAnalysis(r.Context(), a); err != nil {
		h.logger.Error("persist analysis failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "INTERNAL", "could not persist analysis")
		return
	}

	h.writeJSON(w, http.StatusOK, analyzeResponse{
		AnalysisID:  a.ID,
		Memberships: records,
		Skipped:     skipped,
	})
}

func (h *Handler) listAnalyses(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.store.ListAnalyses(r.Context())
	if err != nil {
		h.logger.Error("list analyses failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "INTERNAL", "could not list analyses")
		return
	}
	h.writeJSON(w, http.StatusOK, analyses)
}

func (h *Handler) getAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := h.store.GetAnalysis(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.writeError(w, http.StatusNotFound, "NOT_FOUND", "analysis not found")
			return
		}
		h.logger.Error("get analysis failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "INTERNAL", "could not load analysis")
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

func (h *Handler) listMemberships(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.ListMemberships(r.Context())
	if err != nil {
		h.logger.Error("list memberships failed", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "INTERNAL", "could not list memberships")
		return
	}
	if records == nil {
		records = []domain.MembershipRecord{}
	}
	h.writeJSON(w, http.StatusOK, records)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response failed", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, reason string) {
	h.writeJSON(w, status, errorResponse{Code: code, Reason: reason})
}

package song

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/futig/songsmith/internal/entity"
	"github.com/futig/songsmith/internal/pkg/logger"
	"github.com/futig/songsmith/internal/pkg/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	usecase SongUsecase
}

func NewHandler(usecase SongUsecase) *Handler {
	return &Handler{usecase: usecase}
}

// Compose handles POST /songs/compose
func (h *Handler) Compose(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Compose")

	var req entity.ComposeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	song, err := h.usecase.Compose(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, toComposeResponse(song))
}

// Generate handles POST /projects/{project_id}/songs
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Generate")
	projectID := chi.URLParam(r, "project_id")
	ctx = logger.AddFields(ctx, zap.String("project_id", projectID))

	var req entity.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	req.ProjectID = projectID
	req.RequestID = requestID(r)

	resp, err := h.usecase.Generate(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "song generation submitted",
		zap.String("job_id", resp.JobID),
		zap.Int("version_number", resp.VersionNumber),
	)
	response.JSON(w, http.StatusAccepted, resp)
}

// GetJob handles GET /jobs/{job_id}
func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetJob")
	jobID := chi.URLParam(r, "job_id")
	ctx = logger.AddFields(ctx, zap.String("job_id", jobID))

	job, err := h.usecase.GetJob(ctx, jobID)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, toJobStatusResponse(job))
}

// GetLyricSheet handles GET /versions/{version_id}/lyrics?format=md|docx|pdf
func (h *Handler) GetLyricSheet(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetLyricSheet")
	versionID := chi.URLParam(r, "version_id")

	formatParam := r.URL.Query().Get("format")
	if formatParam == "" {
		formatParam = string(entity.FormatMarkdown)
	}
	ctx = logger.AddFields(ctx, zap.String("version_id", versionID), zap.String("format", formatParam))

	sheet, err := h.usecase.LyricSheet(ctx, versionID, entity.ResultFormat(formatParam))
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	ctxzap.Info(ctx, "lyric sheet rendered", zap.Int("bytes", len(sheet.Data)))
	response.Attachment(w, sheet.ContentType, sheet.Filename, sheet.Data)
}

// InferStyle handles POST /music/infer
func (h *Handler) InferStyle(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "InferStyle")

	var req entity.InferStyleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.respondError(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	resp, err := h.usecase.InferStyle(ctx, &req)
	if err != nil {
		h.handleUsecaseError(ctx, w, err)
		return
	}

	response.JSON(w, http.StatusOK, resp)
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst)
}

// requestID prefers the caller's header and falls back to the one chi assigned
func requestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	return middleware.GetReqID(r.Context())
}

func (h *Handler) respondError(ctx context.Context, w http.ResponseWriter, status int, message string, err error) {
	if status >= http.StatusInternalServerError {
		ctxzap.Error(ctx, message, zap.Error(err))
	} else {
		ctxzap.Warn(ctx, message, zap.Error(err))
	}
	response.Error(w, status, message)
}

func (h *Handler) handleUsecaseError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrVersionNotFound) || errors.Is(err, entity.ErrJobNotFound):
		h.respondError(ctx, w, http.StatusNotFound, "resource not found", err)
	case errors.Is(err, entity.ErrMissingField) || errors.Is(err, entity.ErrInvalidParameter) || errors.Is(err, entity.ErrInvalidFormat):
		h.respondError(ctx, w, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, entity.ErrRevisionLimit):
		h.respondError(ctx, w, http.StatusForbidden, "revision limit reached", err)
	case errors.Is(err, entity.ErrProviderRejected):
		h.respondError(ctx, w, http.StatusBadGateway, err.Error(), err)
	case errors.Is(err, entity.ErrProviderUnavailable):
		h.respondError(ctx, w, http.StatusBadGateway, "music provider unavailable", err)
	default:
		h.respondError(ctx, w, http.StatusInternalServerError, "internal server error", err)
	}
}

package song

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers song routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/songs/compose", h.Compose)
	r.Post("/projects/{project_id}/songs", h.Generate)
	r.Get("/jobs/{job_id}", h.GetJob)
	r.Get("/versions/{version_id}/lyrics", h.GetLyricSheet)
	r.Post("/music/infer", h.InferStyle)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
	"github.com/pulseboard/dash-services/internal/dashsvc/service"
)

// IngestHandler is the gateway entry point. The body is the producer's push;
// success returns the written envelope's metadata, failure a structured
// field-level error. The gateway never retries, a fully rejected push is safe
// for the producer to re-issue.
func (h *Handler) IngestHandler(w http.ResponseWriter, r *http.Request) {
	var req service.IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrorResponse(w, &models.ValidationError{Field: "body", Reason: "malformed ingest request"})
		return
	}

	env, err := h.ingest.Ingest(r.Context(), chi.URLParam(r, "producer"), req)
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{
		Message: "envelope written",
		Code:    200,
		Data: map[string]interface{}{
			"card_id":      env.CardID,
			"period_label": env.PeriodLabel,
			"ingested_at":  env.IngestedAt,
		},
	})
}

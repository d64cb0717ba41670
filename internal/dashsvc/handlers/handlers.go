package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
	"github.com/pulseboard/dash-services/internal/dashsvc/service"
	"github.com/pulseboard/dash-services/internal/sdkgate"
)

type Handler struct {
	cards    *service.CardService
	resolver *service.ResolveService
	ingest   *service.IngestService
	tasks    *service.TaskService
}

func NewHandler(cards *service.CardService, resolver *service.ResolveService,
	ingest *service.IngestService, tasks *service.TaskService) *Handler {
	return &Handler{
		cards:    cards,
		resolver: resolver,
		ingest:   ingest,
		tasks:    tasks,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode response: %v", err)
	}
}

// ErrorResponse maps the typed domain failures onto HTTP codes and keeps the
// field-level detail in the response body, so producers see exactly what was
// rejected instead of a blank error.
func (h *Handler) ErrorResponse(w http.ResponseWriter, err error) {
	var (
		ve      *models.ValidationError
		sm      *models.SchemaMismatchError
		unknown *models.UnknownCardError
		im      *models.ImmutableFieldError
	)

	switch {
	case errors.As(err, &ve):
		h.CreateResponse(w, Response{
			Message: "validation failed",
			Code:    http.StatusBadRequest,
			Data:    map[string]string{"field": ve.Field, "reason": ve.Reason},
			Error:   err.Error(),
		})
	case errors.As(err, &sm):
		h.CreateResponse(w, Response{
			Message: "payload does not satisfy chart-type contract",
			Code:    http.StatusUnprocessableEntity,
			Data:    map[string]string{"field": sm.Field, "chart_type": sm.ChartType, "reason": sm.Reason},
			Error:   err.Error(),
		})
	case errors.As(err, &unknown):
		h.CreateResponse(w, Response{
			Message: "unknown card",
			Code:    http.StatusNotFound,
			Data:    map[string]string{"card_id": unknown.CardID},
			Error:   err.Error(),
		})
	case errors.As(err, &im):
		h.CreateResponse(w, Response{
			Message: "immutable field",
			Code:    http.StatusConflict,
			Data:    map[string]string{"field": im.Field},
			Error:   err.Error(),
		})
	case errors.Is(err, models.ErrNotFound):
		h.CreateResponse(w, Response{
			Message: "not found",
			Code:    http.StatusNotFound,
			Error:   err.Error(),
		})
	default:
		log.Errorf("internal error: %s", err)
		h.CreateResponse(w, Response{
			Message: "internal error",
			Code:    http.StatusInternalServerError,
			Error:   "internal error",
		})
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	rsp := Response{
		Message: "dash service is running at port " + os.Getenv("DASH_SERVICE_PORT"),
		Code:    200,
		Data:    nil,
	}
	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("Failed to encode health response: %v", err)
	}
}

// StatusHandler reports operational state, including whether the integration
// SDK was found at startup.
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "status",
		Code:    200,
		Data: map[string]interface{}{
			"sdk": sdkgate.Current(),
		},
	})
}

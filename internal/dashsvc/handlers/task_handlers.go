package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

func (h *Handler) ListTasksHandler(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.tasks.ListTasks(r.Context())
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}

	h.CreateResponse(w, Response{Message: "tasks", Code: 200, Data: tasks})
}

func (h *Handler) PatchTaskHandler(w http.ResponseWriter, r *http.Request) {
	var patch models.TaskPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.ErrorResponse(w, &models.ValidationError{Field: "body", Reason: "malformed task patch"})
		return
	}

	task, err := h.tasks.UpdateTask(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "task updated", Code: 200, Data: task})
}

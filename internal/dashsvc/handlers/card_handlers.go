package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/pulseboard/dash-services/internal/dashsvc/models"
)

// ListCardsHandler serves the registry listing. ?source= filters by exact
// source attribution, ?tag= by tag membership.
func (h *Handler) ListCardsHandler(w http.ResponseWriter, r *http.Request) {
	filter := models.CardFilter{
		Source: r.URL.Query().Get("source"),
		Tag:    r.URL.Query().Get("tag"),
	}

	cards, err := h.cards.ListCards(r.Context(), filter)
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}

	h.CreateResponse(w, Response{Message: "cards", Code: 200, Data: cards})
}

func (h *Handler) CreateCardHandler(w http.ResponseWriter, r *http.Request) {
	var spec models.CardSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		h.ErrorResponse(w, &models.ValidationError{Field: "body", Reason: "malformed card spec"})
		return
	}

	card, err := h.cards.CreateCard(r.Context(), spec)
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "card created", Code: 201, Data: card})
}

func (h *Handler) GetCardHandler(w http.ResponseWriter, r *http.Request) {
	card, err := h.cards.GetCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "card", Code: 200, Data: card})
}

// GetCardFullHandler is the single read path the presentation layer uses:
// one response carrying card, chart type and the latest envelope (or an
// explicit null for a card with no data yet).
func (h *Handler) GetCardFullHandler(w http.ResponseWriter, r *http.Request) {
	resolved, err := h.resolver.ResolveFull(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "card resolved", Code: 200, Data: resolved})
}

func (h *Handler) PatchCardHandler(w http.ResponseWriter, r *http.Request) {
	var patch models.CardPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		h.ErrorResponse(w, &models.ValidationError{Field: "body", Reason: "malformed card patch"})
		return
	}

	card, err := h.cards.UpdateCard(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		h.ErrorResponse(w, err)
		return
	}

	h.CreateResponse(w, Response{Message: "card updated", Code: 200, Data: card})
}

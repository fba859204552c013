package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/services"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// RecordMatch godoc
// @Summary Запись результата матча с начислением очков
// @Tags matches
// @Accept json
// @Produce json
// @Param input body models.MatchDetails true "Результат матча"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	var match models.MatchDetails
	if err := readJSON(w, r, &match); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	recorded, err := h.matchService.RecordMatch(r.Context(), &match)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": recorded}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *MatchHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "matchID"))
	if err != nil || matchID <= 0 {
		notFoundResponse(w, r)
		return
	}

	match, err := h.matchService.GetByID(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

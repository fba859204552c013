package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/fantasy-league/middleware"
	"github.com/Dosada05/fantasy-league/services"
)

type TeamHandler struct {
	rosterService *services.RosterService
}

func NewTeamHandler(rosterService *services.RosterService) *TeamHandler {
	return &TeamHandler{rosterService: rosterService}
}

// CreateTeam godoc
// @Summary Создание фэнтези-команды с составом
// @Tags teams
// @Accept json
// @Produce json
// @Param input body services.CreateTeamInput true "Команда и состав"
// @Success 201 {object} map[string]interface{}
// @Security BearerAuth
// @Router /teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.CreateTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.UserID = userID

	team, err := h.rosterService.CreateTeam(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateRoster применяет add/remove к составу редактируемой стадии.
func (h *TeamHandler) UpdateRoster(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	teamID, err := strconv.Atoi(chi.URLParam(r, "teamID"))
	if err != nil || teamID <= 0 {
		notFoundResponse(w, r)
		return
	}

	var input services.UpdateRosterInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.UserID = userID
	input.TeamID = teamID

	team, err := h.rosterService.UpdateRoster(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CheckUpdateAbility сообщает клиенту, можно ли сейчас редактировать
// состав и какую стадию.
func (h *TeamHandler) CheckUpdateAbility(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	teamID, err := strconv.Atoi(chi.URLParam(r, "teamID"))
	if err != nil || teamID <= 0 {
		notFoundResponse(w, r)
		return
	}

	phase, err := h.rosterService.CheckUpdateAbility(r.Context(), userID, teamID)
	if err != nil {
		if errors.Is(err, services.ErrEditWindowClosed) {
			response := jsonResponse{"editable": false}
			if werr := writeJSON(w, http.StatusOK, response, nil); werr != nil {
				serverErrorResponse(w, r, werr)
			}
			return
		}
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"editable": true, "phase": phase}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) GetTeamByID(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.Atoi(chi.URLParam(r, "teamID"))
	if err != nil || teamID <= 0 {
		notFoundResponse(w, r)
		return
	}

	team, err := h.rosterService.GetTeamByID(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

package handlers

import (
	"net/http"

	"github.com/Dosada05/fantasy-league/middleware"
	"github.com/Dosada05/fantasy-league/models"
	"github.com/Dosada05/fantasy-league/services"
)

type ScheduleHandler struct {
	scheduleService *services.ScheduleService
}

func NewScheduleHandler(scheduleService *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// AddUpcomingMatch публикует анонс матча. Только для админов.
func (h *ScheduleHandler) AddUpcomingMatch(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var match models.UpcomingMatch
	if err := readJSON(w, r, &match); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	match.CreatorID = userID

	created, err := h.scheduleService.AddUpcomingMatch(r.Context(), &match)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"upcoming_match": created}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListUpcoming отдаёт расписание будущих матчей.
func (h *ScheduleHandler) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	matches, err := h.scheduleService.ListUpcoming(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"upcoming_matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

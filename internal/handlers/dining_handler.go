package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gauchoeats/gaucho/internal/models"
	"github.com/gauchoeats/gaucho/internal/repository"
	"github.com/gauchoeats/gaucho/internal/service"
)

// DiningHandler serves the endpoints used by the mobile client
type DiningHandler struct {
	diningService *service.DiningService
	log           *slog.Logger
}

// NewDiningHandler creates a new dining handler
func NewDiningHandler(diningService *service.DiningService, log *slog.Logger) *DiningHandler {
	return &DiningHandler{
		diningService: diningService,
		log:           log,
	}
}

// UserInfo handles GET /user_info?id=
func (h *DiningHandler) UserInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.diningService.UserInfo(r.Context(), userID)
	if err != nil {
		h.writeServiceError(w, err, "failed to get user info")
		return
	}

	WriteJSON(w, http.StatusOK, user, h.log)
}

// UpdatePreferences handles POST /update_preferences
func (h *DiningHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var req models.PreferencesUpdate

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode preferences request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}
	if req.ID == 0 {
		WriteError(w, http.StatusBadRequest, "User ID is required", h.log)
		return
	}

	user, err := h.diningService.UpdatePreferences(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "failed to update preferences")
		return
	}

	WriteJSON(w, http.StatusOK, user, h.log)
	h.log.Info("preferences updated", "user_id", user.ID)
}

// WaitTime handles GET /wait_time?dining_hall=
func (h *DiningHandler) WaitTime(w http.ResponseWriter, r *http.Request) {
	avg, err := h.diningService.AverageWaitTime(r.Context(), r.URL.Query().Get("dining_hall"))
	if err != nil {
		h.writeServiceError(w, err, "failed to get wait time")
		return
	}

	WriteJSON(w, http.StatusOK, models.WaitTimeResponse{AverageWaitTime: avg}, h.log)
}

// RecordWaitTime handles POST /wait_time
func (h *DiningHandler) RecordWaitTime(w http.ResponseWriter, r *http.Request) {
	var req models.WaitSampleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode wait sample", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	sample, err := h.diningService.RecordWaitSample(r.Context(), req)
	if err != nil {
		h.writeServiceError(w, err, "failed to record wait sample")
		return
	}

	WriteJSON(w, http.StatusCreated, sample, h.log)
	h.log.Info("wait sample recorded", "hall", sample.DiningHall, "wait_time", sample.WaitTime)
}

// Menu handles GET /menu?userId=&dining_hall=
func (h *DiningHandler) Menu(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.requireID(w, r, "userId")
	if !ok {
		return
	}

	items, err := h.diningService.Menu(r.Context(), userID, r.URL.Query().Get("dining_hall"))
	if err != nil {
		h.writeServiceError(w, err, "failed to get menu")
		return
	}

	WriteJSON(w, http.StatusOK, items, h.log)
}

// Recommend handles GET /recommend?user_query=&user_id=&daily_query_number=
func (h *DiningHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	userID, _ := strconv.ParseInt(q.Get("user_id"), 10, 64)
	dailyQueryNumber := 0
	if raw := q.Get("daily_query_number"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			WriteError(w, http.StatusBadRequest, "Invalid daily_query_number", h.log)
			return
		}
		dailyQueryNumber = n
	}

	text, err := h.diningService.Recommend(r.Context(), userID, q.Get("user_query"), dailyQueryNumber)
	if err != nil {
		h.writeServiceError(w, err, "failed to get recommendation")
		return
	}

	WriteJSON(w, http.StatusOK, text, h.log)
}

// requireID parses a positive integer query parameter, writing a 400 when it is missing or malformed
func (h *DiningHandler) requireID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		WriteError(w, http.StatusBadRequest, param+" is required", h.log)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, http.StatusBadRequest, "Invalid "+param, h.log)
		return 0, false
	}
	return id, true
}

func (h *DiningHandler) writeServiceError(w http.ResponseWriter, err error, msg string) {
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		WriteError(w, http.StatusNotFound, "User not found", h.log)
	case errors.Is(err, service.ErrHallRequired):
		WriteError(w, http.StatusBadRequest, "dining_hall is required", h.log)
	case errors.Is(err, service.ErrQueryRequired):
		WriteError(w, http.StatusBadRequest, "user_query is required", h.log)
	case errors.Is(err, service.ErrInvalidPreference):
		WriteError(w, http.StatusBadRequest, "Preference flags must be 0 or 1", h.log)
	case errors.Is(err, service.ErrInvalidWaitTime):
		WriteError(w, http.StatusBadRequest, "wait_time must be a non-negative number of seconds", h.log)
	case errors.Is(err, service.ErrDailyLimit):
		WriteError(w, http.StatusTooManyRequests, "Daily query limit reached", h.log)
	default:
		h.log.Error(msg, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.log)
	}
}

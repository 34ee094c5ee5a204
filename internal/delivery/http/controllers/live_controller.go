package controllers

import (
	"log/slog"
	"net/http"

	"demoday/internal/delivery/http/helpers"
	"demoday/internal/domain"
)

// LiveController handles the live presentation state endpoints.
type LiveController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewLiveController(logger *slog.Logger, svc domain.EventService) *LiveController {
	return &LiveController{
		Logger:  logger,
		Service: svc,
	}
}

// GetCurrent godoc
// @Summary Get the current live state
// @Description Returns the event currently being presented with its phase and demo/award pointers, or null if no event is live. Presentation views poll this endpoint.
// @Tags live
// @Produce json
// @Success 200 {object} helpers.APIResponse "data contains the live state, or null"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /event/current [get]
func (c *LiveController) GetCurrent(w http.ResponseWriter, r *http.Request) {
	state, err := c.Service.Current(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, state)
}

// UpdateCurrentRequest is the request body for PUT /admin/event/current.
// A null eventId clears the current event.
type UpdateCurrentRequest struct {
	EventID *string `json:"eventId"`
}

// UpdateCurrent godoc
// @Summary Set the current live event
// @Description Anchors the live state to the given event, or clears it when eventId is null. Anchoring a different event resets the phase to demos and clears both pointers.
// @Tags live
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateCurrentRequest true "Event to present, or null to stop presenting"
// @Success 200 {object} helpers.APIResponse "data contains the new live state, or null when cleared"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/event/current [put]
func (c *LiveController) UpdateCurrent(w http.ResponseWriter, r *http.Request) {
	var req UpdateCurrentRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	state, err := c.Service.UpdateCurrent(r.Context(), req.EventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, state)
}

// UpdateCurrentState godoc
// @Summary Update the live presentation state
// @Description Merges the supplied fields into the live state: phase moves between demos (1) and awards (2); currentDemoId and currentAwardId point at what is on screen, with an explicit null clearing the pointer. Omitted fields are unchanged.
// @Tags live
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body domain.LiveStateUpdate true "Partial live state"
// @Success 200 {object} helpers.APIResponse "data contains the merged live state"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (no current event)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/event/current/state [patch]
func (c *LiveController) UpdateCurrentState(w http.ResponseWriter, r *http.Request) {
	var upd domain.LiveStateUpdate
	if !helpers.DecodeAndValidate(w, r, &upd) {
		return
	}
	state, err := c.Service.UpdateCurrentState(r.Context(), upd)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, state)
}

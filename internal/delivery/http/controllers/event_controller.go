package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"demoday/internal/delivery/http/helpers"
	"demoday/internal/domain"
)

// EventController handles public and admin event endpoints.
type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// writeServiceError maps domain errors to API responses. Unclassified errors
// are logged and become a generic 500.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event not found")
	case errors.Is(err, domain.ErrDuplicateID):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "an event with this id already exists")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoCurrentEvent):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "no current event")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
	}
}

func validURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// UpsertEventRequest is the request body for PUT /admin/events. With
// originalId set it updates that event (fields given replace prior values,
// id renames the event); without it a new event is created, requiring id,
// name, date, and url.
type UpsertEventRequest struct {
	OriginalID *string             `json:"originalId"`
	ID         *string             `json:"id"`
	Name       *string             `json:"name"`
	Date       *string             `json:"date"`
	URL        *string             `json:"url"`
	Config     *domain.EventConfig `json:"config"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (u UpsertEventRequest) Validate() []string {
	var errs []string
	if u.OriginalID == nil {
		if u.ID == nil || *u.ID == "" {
			errs = append(errs, "id is required")
		}
		if u.Name == nil || *u.Name == "" {
			errs = append(errs, "name is required")
		}
		if u.Date == nil {
			errs = append(errs, "date is required")
		}
		if u.URL == nil {
			errs = append(errs, "url is required")
		}
	}
	if u.ID != nil && *u.ID == "" {
		errs = append(errs, "id must not be empty")
	}
	if u.Date != nil {
		if _, err := time.Parse(time.RFC3339, *u.Date); err != nil {
			errs = append(errs, "date must be a valid RFC3339 timestamp")
		}
	}
	if u.URL != nil && !validURL(*u.URL) {
		errs = append(errs, "url must be a valid http(s) URL")
	}
	if u.Config != nil {
		cfg := *u.Config
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// UpsertEventSuccessResponse is the success response envelope for PUT /admin/events.
type UpsertEventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Upsert godoc
// @Summary Create or update an event
// @Description With originalId set, updates that event in place (id, name, date, url, config each optionally replaced). Without it, creates a new event seeded with default demos and awards.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body UpsertEventRequest true "Event data"
// @Success 200 {object} controllers.UpsertEventSuccessResponse "data contains the event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate id)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [put]
func (c *EventController) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	input := domain.UpsertEventInput{
		OriginalID: req.OriginalID,
		ID:         req.ID,
		Name:       req.Name,
		URL:        req.URL,
		Config:     req.Config,
	}
	if req.Date != nil {
		date, err := time.Parse(time.RFC3339, *req.Date)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be a valid RFC3339 timestamp")
			return
		}
		input.Date = &date
	}
	event, err := c.Service.Upsert(r.Context(), input)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Get godoc
// @Summary Get an event
// @Description Returns the public view of an event: demos without secrets, awards in full, both ordered by index.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the event"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.Get(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// All godoc
// @Summary List past events
// @Description Returns events whose date has passed, newest first. Supports optional limit and offset query parameters.
// @Tags events
// @Produce json
// @Param limit query int false "Maximum number of events"
// @Param offset query int false "Number of events to skip"
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) All(w http.ResponseWriter, r *http.Request) {
	limit, offset := helpers.ParseLimitOffset(r)
	events, err := c.Service.All(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetAdmin godoc
// @Summary Get an event with admin detail
// @Description Returns the unredacted event including demo secrets, attendees, and feedback.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains the admin event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [get]
func (c *EventController) GetAdmin(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetAdmin(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// AllAdmin godoc
// @Summary List all events
// @Description Returns every event regardless of date, newest first.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data contains the event list"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events [get]
func (c *EventController) AllAdmin(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.AllAdmin(r.Context())
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes the event and its demos, awards, attendees, and feedback. Clears the live pointer if the event was being presented.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data is null"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /admin/events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.Delete(r.Context(), eventID); err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, nil)
}

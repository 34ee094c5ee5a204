package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"demoday/internal/delivery/http/helpers"
	"demoday/internal/domain"
)

// emailRegex matches a simple email format (local@domain with at least one dot in domain).
var emailRegex = regexp.MustCompile(`^[^@]+@[^@]+\.[^@]+$`)

// SubmissionController handles demo submission endpoints.
type SubmissionController struct {
	Logger  *slog.Logger
	Service domain.SubmissionService
}

func NewSubmissionController(logger *slog.Logger, svc domain.SubmissionService) *SubmissionController {
	return &SubmissionController{
		Logger:  logger,
		Service: svc,
	}
}

// SubmitDemoRequest is the request body for POST /events/{eventID}/demos.
type SubmitDemoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Email       string `json:"email"`
	URL         string `json:"url"`
	Votable     *bool  `json:"votable"`
}

// Validate implements Validator. Returns error messages for required and format rules.
func (s SubmitDemoRequest) Validate() []string {
	var errs []string
	if s.Name == "" {
		errs = append(errs, "name is required")
	}
	if s.Email != "" && !emailRegex.MatchString(s.Email) {
		errs = append(errs, "email must be a valid address")
	}
	if s.URL != "" && !validURL(s.URL) {
		errs = append(errs, "url must be a valid http(s) URL")
	}
	return errs
}

// Submit godoc
// @Summary Submit a demo
// @Description Creates a demo for the event if submissions are still open per the event's deadline policy. The response includes the demo's secret, which the submitter needs to edit the entry later.
// @Tags submissions
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param demo body SubmitDemoRequest true "Demo data"
// @Success 201 {object} helpers.APIResponse "data contains the created demo"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (submissions closed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/demos [post]
func (c *SubmissionController) Submit(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req SubmitDemoRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	votable := true
	if req.Votable != nil {
		votable = *req.Votable
	}
	demo := &domain.Demo{
		Name:        req.Name,
		Description: req.Description,
		Email:       req.Email,
		URL:         req.URL,
		Votable:     votable,
	}
	created, err := c.Service.SubmitDemo(r.Context(), eventID, demo)
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionsClosed) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "submissions are closed")
			return
		}
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, created)
}

// Status godoc
// @Summary Get submission status
// @Description Reports whether demo submissions are still open for the event and when they close. The submission page consults this before rendering the form.
// @Tags submissions
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data contains open flag and closing time"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/submission [get]
func (c *SubmissionController) Status(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	status, err := c.Service.Status(r.Context(), eventID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, status)
}

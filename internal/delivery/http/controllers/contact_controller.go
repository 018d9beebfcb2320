package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"citybeat/internal/delivery/http/helpers"
	"citybeat/internal/domain"
)

// ContactRequest is the request body for POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Validate implements Validator.
func (c ContactRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(c.Message) == "" {
		errs = append(errs, "message is required")
	}
	return errs
}

// ContactResponse is the response body for POST /api/contact.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ContactController handles contact submissions.
type ContactController struct {
	Logger  *slog.Logger
	Service domain.ContactService
}

// NewContactController creates a ContactController with the given logger and service.
func NewContactController(logger *slog.Logger, svc domain.ContactService) *ContactController {
	return &ContactController{Logger: logger, Service: svc}
}

// Submit godoc
// @Summary Submit a contact message
// @Description Submissions are handed to the configured sink; the default only records them locally. A sink failure is reported in the payload, not as an HTTP error.
// @Tags contact
// @Accept json
// @Produce json
// @Param body body ContactRequest true "submission"
// @Success 200 {object} controllers.ContactResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/contact [post]
func (c *ContactController) Submit(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	ok, detail := c.Service.Submit(r.Context(), domain.ContactSubmission{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	helpers.WriteJSON(w, http.StatusOK, ContactResponse{Success: ok, Message: detail})
}

package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"citybeat/internal/delivery/http/helpers"
	"citybeat/internal/domain"
)

// EventRefRequest is the request body for the favorite, save, and reserve endpoints.
type EventRefRequest struct {
	EventID *int `json:"eventId"`
}

// Validate implements Validator.
func (e EventRefRequest) Validate() []string {
	if e.EventID == nil {
		return []string{"eventId is required"}
	}
	return nil
}

// MarkReadRequest is the request body for POST /api/user/{user}/notifications/markread.
type MarkReadRequest struct {
	ID string `json:"id"`
}

// Validate implements Validator.
func (m MarkReadRequest) Validate() []string {
	if m.ID == "" {
		return []string{"id is required"}
	}
	return nil
}

// NotificationSettingRequest is the request body for POST /api/user/{user}/settings/notifications.
type NotificationSettingRequest struct {
	Enabled *bool `json:"enabled"`
}

// Validate implements Validator.
func (n NotificationSettingRequest) Validate() []string {
	if n.Enabled == nil {
		return []string{"enabled is required"}
	}
	return nil
}

// ChangePasswordRequest is the request body for POST /api/user/{user}/change-password.
type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// FavoritesResponse is the response body for POST /api/user/{user}/favorite.
type FavoritesResponse struct {
	Favorites []int `json:"favorites"`
}

// SavedResponse is the response body for POST /api/user/{user}/save.
type SavedResponse struct {
	Saved []int `json:"saved"`
}

// ReservedResponse is the response body for POST /api/user/{user}/reserve.
type ReservedResponse struct {
	Reserved []int `json:"reserved"`
}

// EnabledResponse is the response body for POST /api/user/{user}/settings/notifications.
type EnabledResponse struct {
	Enabled bool `json:"enabled"`
}

// SuccessResponse reports a business-level outcome with HTTP 200.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// UserController handles the per-user interaction endpoints. Every write
// reflects the now-durable state of the store (or the in-memory state
// when the best-effort persist failed).
type UserController struct {
	Logger *slog.Logger
	Users  domain.UserService
}

// NewUserController creates a UserController with the given logger and service.
func NewUserController(logger *slog.Logger, users domain.UserService) *UserController {
	return &UserController{Logger: logger, Users: users}
}

func userParam(r *http.Request) string {
	return r.PathValue("user")
}

// Actions godoc
// @Summary Current interaction state
// @Tags user
// @Produce json
// @Param user path string true "user identifier"
// @Success 200 {object} domain.UserActions
// @Router /api/user/{user}/actions [get]
func (c *UserController) Actions(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.Users.Actions(userParam(r)))
}

// Notifications godoc
// @Summary Notification feed, most recent first
// @Description Returns an empty list when the user has notifications disabled, regardless of history.
// @Tags user
// @Produce json
// @Param user path string true "user identifier"
// @Success 200 {array} domain.Notification
// @Router /api/user/{user}/notifications [get]
func (c *UserController) Notifications(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.Users.Notifications(userParam(r)))
}

// ToggleFavorite godoc
// @Summary Toggle an event in the favorites set
// @Tags user
// @Accept json
// @Produce json
// @Param user path string true "user identifier"
// @Param body body EventRefRequest true "event reference"
// @Success 200 {object} controllers.FavoritesResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/user/{user}/favorite [post]
func (c *UserController) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	var req EventRefRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	favorites, _ := c.Users.ToggleFavorite(userParam(r), *req.EventID)
	helpers.WriteJSON(w, http.StatusOK, FavoritesResponse{Favorites: favorites})
}

// ToggleSave godoc
// @Summary Toggle an event in the saved set
// @Tags user
// @Accept json
// @Produce json
// @Param user path string true "user identifier"
// @Param body body EventRefRequest true "event reference"
// @Success 200 {object} controllers.SavedResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/user/{user}/save [post]
func (c *UserController) ToggleSave(w http.ResponseWriter, r *http.Request) {
	var req EventRefRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	saved, _ := c.Users.ToggleSave(userParam(r), *req.EventID)
	helpers.WriteJSON(w, http.StatusOK, SavedResponse{Saved: saved})
}

// Reserve godoc
// @Summary Reserve a ticket (add-only)
// @Tags user
// @Accept json
// @Produce json
// @Param user path string true "user identifier"
// @Param body body EventRefRequest true "event reference"
// @Success 200 {object} controllers.ReservedResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/user/{user}/reserve [post]
func (c *UserController) Reserve(w http.ResponseWriter, r *http.Request) {
	var req EventRefRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	reserved, _ := c.Users.Reserve(userParam(r), *req.EventID)
	helpers.WriteJSON(w, http.StatusOK, ReservedResponse{Reserved: reserved})
}

// MarkNotificationRead godoc
// @Summary Mark one notification as read
// @Description An unknown notification id is a silent no-op.
// @Tags user
// @Accept json
// @Produce json
// @Param user path string true "user identifier"
// @Param body body MarkReadRequest true "notification id"
// @Success 200 {object} controllers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/user/{user}/notifications/markread [post]
func (c *UserController) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	var req MarkReadRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.Users.MarkNotificationRead(userParam(r), req.ID)
	helpers.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// GetProfile godoc
// @Summary Read the profile
// @Tags user
// @Produce json
// @Param user path string true "user identifier"
// @Success 200 {object} domain.Profile
// @Router /api/user/{user}/profile [get]
func (c *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.Users.Profile(userParam(r)))
}

// SetProfile godoc
// @Summary Replace the profile
// @Description Full replace of the profile sub-record, not a merge.
// @Tags user
// @Accept json
// @Produce json
// @Param user path string true "user identifier"
// @Param body body domain.Profile true "profile"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/user/{user}/profile [post]
func (c *UserController) SetProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.Profile
	if !helpers.DecodeAndValidate(w, r, &profile) {
		return
	}
	c.Users.SetProfile(userParam(r), profile)
	helpers.WriteJSON(w, http.StatusOK, profile)
}

// SetNotificationsEnabled godoc
// @Summary Toggle the notifications setting
// @Description Does not retroactively alter existing notifications.
// @Tags user
// @Accept json
// @Produce json
// @Param user path string true "user identifier"
// @Param body body NotificationSettingRequest true "setting"
// @Success 200 {object} controllers.EnabledResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/user/{user}/settings/notifications [post]
func (c *UserController) SetNotificationsEnabled(w http.ResponseWriter, r *http.Request) {
	var req NotificationSettingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	c.Users.SetNotificationsEnabled(userParam(r), *req.Enabled)
	helpers.WriteJSON(w, http.StatusOK, EnabledResponse{Enabled: *req.Enabled})
}

// ChangePassword godoc
// @Summary Change the password
// @Description With no password set the new one is accepted unconditionally. A mismatch is a business failure reported as success:false with HTTP 200.
// @Tags user
// @Accept json
// @Produce json
// @Param user path string true "user identifier"
// @Param body body ChangePasswordRequest true "old and new password"
// @Success 200 {object} controllers.SuccessResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Router /api/user/{user}/change-password [post]
func (c *UserController) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	_, err := c.Users.ChangePassword(userParam(r), req.OldPassword, req.NewPassword)
	if err != nil {
		if errors.Is(err, domain.ErrPasswordMismatch) {
			helpers.WriteJSON(w, http.StatusOK, SuccessResponse{Success: false})
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}
	helpers.WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Summary godoc
// @Summary Settings view of a user
// @Tags user
// @Produce json
// @Param user path string true "user identifier"
// @Success 200 {object} domain.UserSummary
// @Router /api/user/{user} [get]
func (c *UserController) Summary(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSON(w, http.StatusOK, c.Users.Summary(userParam(r)))
}

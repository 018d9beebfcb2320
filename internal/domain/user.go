package domain

import (
	"errors"
	"time"
)

// GuestUser is the identity a blank user identifier resolves to.
const GuestUser = "demo"

// ErrPasswordMismatch is the business-level failure returned by
// ChangePassword when the supplied old password does not match the stored
// one. It maps to a 200 response with success:false, not an HTTP error.
var ErrPasswordMismatch = errors.New("password mismatch")

// Profile is the free-form profile sub-record of a user.
// swagger:model Profile
type Profile struct {
	Name          string `json:"name"`
	Summary       string `json:"summary"`
	Email         string `json:"email"`
	Country       string `json:"country"`
	City          string `json:"city"`
	Street        string `json:"street"`
	AvatarDataURL string `json:"avatarDataUrl"`
}

// Notification is one entry in a user's notification feed. Entries are
// append-only; only the Read flag is ever updated.
// swagger:model Notification
type Notification struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Message   string    `json:"message"`
	EventID   int       `json:"eventId"`
	Read      bool      `json:"read"`
}

// UserRecord holds everything tracked for one user. Records are keyed by
// the lowercased identifier; Name keeps the identifier as first seen for
// display.
type UserRecord struct {
	Name                 string         `json:"name"`
	Favorites            []int          `json:"favorites"`
	Saved                []int          `json:"saved"`
	Reserved             []int          `json:"reserved"`
	Notifications        []Notification `json:"notifications"`
	Password             string         `json:"password"` // plaintext; empty means unset
	NotificationsEnabled bool           `json:"notificationsEnabled"`
	Profile              Profile        `json:"profile"`
}

// UserActions is the snapshot of a user's interaction state returned by
// the actions endpoint.
// swagger:model UserActions
type UserActions struct {
	Favorites     []int          `json:"favorites"`
	Saved         []int          `json:"saved"`
	Reserved      []int          `json:"reserved"`
	Notifications []Notification `json:"notifications"`
}

// UserSummary is the settings view of a user.
// swagger:model UserSummary
type UserSummary struct {
	NotificationsEnabled bool    `json:"notificationsEnabled"`
	Profile              Profile `json:"profile"`
}

// PersistStatus reports whether an in-memory mutation reached durable
// storage. Persistence is best-effort: a failed write never rolls back the
// mutation or fails the caller, it is only logged and counted.
type PersistStatus int

const (
	// PersistOK means the mutation was written to durable storage.
	PersistOK PersistStatus = iota
	// PersistFailed means the write failed; memory remains authoritative
	// until the next successful write.
	PersistFailed
)

// StorePersister serializes the whole user store to durable storage. The
// full mapping is the unit of persistence and is rewritten wholesale on
// every mutation.
type StorePersister interface {
	Load() (map[string]*UserRecord, error)
	Save(users map[string]*UserRecord) error
}

// UserService defines the operations of the user interaction store. All
// operations, reads included, are serialized by one store-wide lock.
type UserService interface {
	ToggleFavorite(user string, eventID int) ([]int, PersistStatus)
	ToggleSave(user string, eventID int) ([]int, PersistStatus)
	Reserve(user string, eventID int) ([]int, PersistStatus)
	MarkNotificationRead(user, notificationID string) PersistStatus
	SetProfile(user string, p Profile) PersistStatus
	SetNotificationsEnabled(user string, enabled bool) PersistStatus
	ChangePassword(user, oldPassword, newPassword string) (PersistStatus, error)

	Actions(user string) UserActions
	Notifications(user string) []Notification
	Profile(user string) Profile
	Summary(user string) UserSummary
}

package services

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"citybeat/internal/domain"
	"citybeat/internal/metrics"
)

// EventTitleResolver resolves event titles for notification messages.
type EventTitleResolver interface {
	EventTitle(id int) string
}

// userService is the user interaction store. One mutex serializes every
// operation, including the lazy create on read; each mutation runs its
// full read-modify-persist cycle under the lock.
type userService struct {
	mu      sync.Mutex
	users   map[string]*domain.UserRecord
	titles  EventTitleResolver
	store   domain.StorePersister
	logger  *slog.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewUserService returns a UserService over the given initial records,
// typically the persister's last saved document.
func NewUserService(users map[string]*domain.UserRecord, titles EventTitleResolver, store domain.StorePersister, logger *slog.Logger, m *metrics.Metrics) domain.UserService {
	if users == nil {
		users = map[string]*domain.UserRecord{}
	}
	return &userService{
		users:   users,
		titles:  titles,
		store:   store,
		logger:  logger,
		metrics: m,
		now:     time.Now,
	}
}

// userKey normalizes an identifier for lookup: trimmed, lowercased, blank
// mapped to the guest identity.
func userKey(user string) string {
	user = strings.TrimSpace(user)
	if user == "" {
		user = domain.GuestUser
	}
	return strings.ToLower(user)
}

// ensureUserLocked returns the record for user, creating a default one on
// first access. Caller must hold the lock.
func (s *userService) ensureUserLocked(user string) *domain.UserRecord {
	key := userKey(user)
	if rec, ok := s.users[key]; ok {
		return rec
	}
	name := strings.TrimSpace(user)
	if name == "" {
		name = domain.GuestUser
	}
	rec := &domain.UserRecord{
		Name:                 name,
		Favorites:            []int{},
		Saved:                []int{},
		Reserved:             []int{},
		Notifications:        []domain.Notification{},
		NotificationsEnabled: true,
	}
	s.users[key] = rec
	return rec
}

// persistLocked serializes the whole store. A failure is logged and
// counted but never rolls back the mutation or fails the caller; memory
// stays authoritative until the next successful write.
func (s *userService) persistLocked() domain.PersistStatus {
	if err := s.store.Save(s.users); err != nil {
		s.logger.Error("user store persist failed", "err", err)
		s.metrics.PersistTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return domain.PersistFailed
	}
	s.metrics.PersistTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	return domain.PersistOK
}

// notifyLocked appends a notification. Unless always is set, the user's
// notificationsEnabled flag gates the append.
func (s *userService) notifyLocked(rec *domain.UserRecord, always bool, message string, eventID int) {
	if !always && !rec.NotificationsEnabled {
		return
	}
	rec.Notifications = append(rec.Notifications, domain.Notification{
		ID:        newNotificationID(),
		Timestamp: s.now().UTC(),
		Message:   message,
		EventID:   eventID,
	})
}

func (s *userService) ToggleFavorite(user string, eventID int) ([]int, domain.PersistStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ensureUserLocked(user)
	title := s.titles.EventTitle(eventID)
	if i := indexOf(rec.Favorites, eventID); i >= 0 {
		rec.Favorites = append(rec.Favorites[:i], rec.Favorites[i+1:]...)
		// removals notify even when the user disabled notifications
		s.notifyLocked(rec, true, "Removed from favorites: "+title, eventID)
	} else {
		rec.Favorites = append(rec.Favorites, eventID)
		s.notifyLocked(rec, false, "Added to favorites: "+title, eventID)
	}
	return copyIDs(rec.Favorites), s.persistLocked()
}

func (s *userService) ToggleSave(user string, eventID int) ([]int, domain.PersistStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ensureUserLocked(user)
	title := s.titles.EventTitle(eventID)
	if i := indexOf(rec.Saved, eventID); i >= 0 {
		rec.Saved = append(rec.Saved[:i], rec.Saved[i+1:]...)
		s.notifyLocked(rec, true, "Removed from saved: "+title, eventID)
	} else {
		rec.Saved = append(rec.Saved, eventID)
		s.notifyLocked(rec, false, "Saved event: "+title, eventID)
	}
	return copyIDs(rec.Saved), s.persistLocked()
}

// Reserve is add-only; there is no server-side cancel operation.
func (s *userService) Reserve(user string, eventID int) ([]int, domain.PersistStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ensureUserLocked(user)
	if indexOf(rec.Reserved, eventID) >= 0 {
		return copyIDs(rec.Reserved), domain.PersistOK
	}
	rec.Reserved = append(rec.Reserved, eventID)
	s.notifyLocked(rec, false, "Reserved a ticket for "+s.titles.EventTitle(eventID), eventID)
	return copyIDs(rec.Reserved), s.persistLocked()
}

// MarkNotificationRead sets read on the matching notification. An unknown
// id is a silent no-op.
func (s *userService) MarkNotificationRead(user, notificationID string) domain.PersistStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ensureUserLocked(user)
	for i := range rec.Notifications {
		if rec.Notifications[i].ID == notificationID {
			rec.Notifications[i].Read = true
			return s.persistLocked()
		}
	}
	return domain.PersistOK
}

func (s *userService) SetProfile(user string, p domain.Profile) domain.PersistStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ensureUserLocked(user)
	rec.Profile = p
	return s.persistLocked()
}

// SetNotificationsEnabled updates the flag; existing notifications are
// left as they are.
func (s *userService) SetNotificationsEnabled(user string, enabled bool) domain.PersistStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ensureUserLocked(user)
	rec.NotificationsEnabled = enabled
	return s.persistLocked()
}

// ChangePassword sets the password. With no password stored the new one
// is accepted unconditionally; otherwise the old password must match
// exactly, and a mismatch returns ErrPasswordMismatch without mutating
// anything.
func (s *userService) ChangePassword(user, oldPassword, newPassword string) (domain.PersistStatus, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ensureUserLocked(user)
	if rec.Password != "" && rec.Password != oldPassword {
		return domain.PersistOK, domain.ErrPasswordMismatch
	}
	rec.Password = newPassword
	return s.persistLocked(), nil
}

func (s *userService) Actions(user string) domain.UserActions {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ensureUserLocked(user)
	return domain.UserActions{
		Favorites:     copyIDs(rec.Favorites),
		Saved:         copyIDs(rec.Saved),
		Reserved:      copyIDs(rec.Reserved),
		Notifications: notificationsView(rec),
	}
}

// Notifications returns the feed most recent first, or an empty list when
// the user disabled notifications, regardless of history.
func (s *userService) Notifications(user string) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return notificationsView(s.ensureUserLocked(user))
}

func (s *userService) Profile(user string) domain.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ensureUserLocked(user).Profile
}

func (s *userService) Summary(user string) domain.UserSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.ensureUserLocked(user)
	return domain.UserSummary{
		NotificationsEnabled: rec.NotificationsEnabled,
		Profile:              rec.Profile,
	}
}

// notificationsView copies the feed newest first. Entries are appended in
// time order, so the reversal is the descending-timestamp order.
func notificationsView(rec *domain.UserRecord) []domain.Notification {
	if !rec.NotificationsEnabled {
		return []domain.Notification{}
	}
	out := make([]domain.Notification, 0, len(rec.Notifications))
	for i := len(rec.Notifications) - 1; i >= 0; i-- {
		out = append(out, rec.Notifications[i])
	}
	return out
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func copyIDs(ids []int) []int {
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// newNotificationID returns an opaque random token.
func newNotificationID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("n%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b)
}

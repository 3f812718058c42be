package preferences

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gauchoeats/gaucho/internal/models"
)

// ErrUnknownFlag is returned when toggling a flag that does not exist
var ErrUnknownFlag = errors.New("unknown preference flag")

// Backend is the part of the gateway the editor needs
type Backend interface {
	UserInfo(ctx context.Context, userID int64) (*models.User, error)
	UpdatePreferences(ctx context.Context, update models.PreferencesUpdate) (*models.User, error)
}

// Editor holds the account tab's user record and the locally edited flags.
// Toggles stay local until Submit sends the full set.
type Editor struct {
	backend Backend
	userID  int64
	logger  *slog.Logger

	mu    sync.Mutex
	user  models.User
	local models.Preferences
}

// NewEditor creates an editor for userID with all flags off
func NewEditor(backend Backend, userID int64, logger *slog.Logger) *Editor {
	return &Editor{
		backend: backend,
		userID:  userID,
		logger:  logger,
		user:    models.User{ID: userID},
	}
}

// Load fetches the user record and seeds the local flags from it
func (e *Editor) Load(ctx context.Context) error {
	user, err := e.backend.UserInfo(ctx, e.userID)
	if err != nil {
		e.logger.Error("failed to fetch user info", "user_id", e.userID, "error", err)
		return err
	}

	e.mu.Lock()
	e.user = *user
	e.local = user.Preferences
	e.mu.Unlock()
	return nil
}

// Toggle flips one flag between 0 and 1 without contacting the backend
func (e *Editor) Toggle(flag string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	field, err := e.field(flag)
	if err != nil {
		return err
	}
	if *field == 1 {
		*field = 0
	} else {
		*field = 1
	}
	return nil
}

// Submit sends every flag and replaces local state with the server's record.
// On failure local state is left as it was.
func (e *Editor) Submit(ctx context.Context) (*models.User, error) {
	e.mu.Lock()
	update := models.PreferencesUpdate{ID: e.userID, Preferences: e.local}
	e.mu.Unlock()

	user, err := e.backend.UpdatePreferences(ctx, update)
	if err != nil {
		e.logger.Error("failed to update preferences", "user_id", e.userID, "error", err)
		return nil, err
	}

	e.mu.Lock()
	e.user = *user
	e.local = user.Preferences
	e.mu.Unlock()

	e.logger.Info("preferences updated", "user_id", e.userID)
	return user, nil
}

// Preferences returns the locally edited flags
func (e *Editor) Preferences() models.Preferences {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.local
}

// User returns the last record received from the backend
func (e *Editor) User() models.User {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.user
}

// Dirty reports whether local flags differ from the last server record
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.local != e.user.Preferences
}

func (e *Editor) field(flag string) (*int, error) {
	switch flag {
	case models.FlagVegetarian:
		return &e.local.WantsV, nil
	case models.FlagVegan:
		return &e.local.WantsVgn, nil
	case models.FlagNuts:
		return &e.local.WantsWNuts, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFlag, flag)
	}
}

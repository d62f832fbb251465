package services

import (
	"context"
	"fmt"

	"github.com/prismmail/prism-tui/internal/api"
)

// Sync interval bounds in seconds. Values outside this range are rejected
// with a field-level validation error.
const (
	MinSyncIntervalSeconds = 30
	MaxSyncIntervalSeconds = 3600
)

// PreferenceAPI is the slice of the REST client the preference service uses.
type PreferenceAPI interface {
	GetPreferences(ctx context.Context) (*api.Preferences, error)
	SavePreferences(ctx context.Context, prefs api.Preferences) error
}

// PreferenceServiceImpl implements PreferenceService
type PreferenceServiceImpl struct {
	client PreferenceAPI
}

// NewPreferenceService creates a new preference service
func NewPreferenceService(client PreferenceAPI) *PreferenceServiceImpl {
	return &PreferenceServiceImpl{client: client}
}

// Get fetches the user preferences, substituting defaults when the backend
// has none stored yet.
func (s *PreferenceServiceImpl) Get(ctx context.Context) (*api.Preferences, error) {
	prefs, err := s.client.GetPreferences(ctx)
	if err != nil {
		return nil, err
	}
	if prefs.SyncInterval == 0 {
		prefs.SyncInterval = 300
	}
	return prefs, nil
}

// Save validates and stores the preferences.
func (s *PreferenceServiceImpl) Save(ctx context.Context, prefs api.Preferences) error {
	if errs := ValidatePreferences(prefs); len(errs) > 0 {
		return fmt.Errorf("invalid preferences: %w", errs[0])
	}
	return s.client.SavePreferences(ctx, prefs)
}

// ValidatePreferences returns field-level errors for the settings form.
func ValidatePreferences(prefs api.Preferences) []ValidationError {
	var errs []ValidationError
	if prefs.AutoSync {
		if prefs.SyncInterval < MinSyncIntervalSeconds {
			errs = append(errs, ValidationError{
				Field:   "syncInterval",
				Message: fmt.Sprintf("must be at least %d seconds", MinSyncIntervalSeconds),
			})
		}
		if prefs.SyncInterval > MaxSyncIntervalSeconds {
			errs = append(errs, ValidationError{
				Field:   "syncInterval",
				Message: fmt.Sprintf("must be at most %d seconds", MaxSyncIntervalSeconds),
			})
		}
	}
	return errs
}

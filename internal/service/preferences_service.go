package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/dafibh/finwise/finwise-backend/internal/domain"
	"github.com/google/uuid"
)

// PreferencesService reads and saves user preferences
type PreferencesService struct {
	store domain.DocumentStore[domain.UserPreferences]
}

// NewPreferencesService creates a new PreferencesService
func NewPreferencesService(store domain.DocumentStore[domain.UserPreferences]) *PreferencesService {
	return &PreferencesService{store: store}
}

// Get returns the saved preferences, or the defaults when none are saved
func (s *PreferencesService) Get(ctx context.Context, userID uuid.UUID) (domain.UserPreferences, error) {
	prefs, found, err := s.store.Get(ctx, userID)
	if err != nil {
		return domain.UserPreferences{}, err
	}
	if !found {
		return domain.DefaultPreferences(), nil
	}
	return prefs, nil
}

// Update validates and saves preferences
func (s *PreferencesService) Update(ctx context.Context, userID uuid.UUID, prefs domain.UserPreferences) (domain.UserPreferences, error) {
	prefs.Currency = strings.ToUpper(strings.TrimSpace(prefs.Currency))
	if err := prefs.Validate(); err != nil {
		return domain.UserPreferences{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if err := s.store.Put(ctx, userID, prefs); err != nil {
		return domain.UserPreferences{}, err
	}
	return prefs, nil
}

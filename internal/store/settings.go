package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/iliyamo/repair-workshop/internal/model"
)

// SettingsRepository is the backend tier for the workshop profile.
type SettingsRepository interface {
	Get(ctx context.Context) (*model.WorkshopSettings, error)
	Update(ctx context.Context, id string, patch model.WorkshopSettingsPatch) (*model.WorkshopSettings, error)
}

// Settings holds the single-row workshop profile.  The local tier is
// the default profile; updates merge into it when the backend cannot
// confirm them.
type Settings struct {
	mu       sync.RWMutex
	repo     SettingsRepository
	settings *model.WorkshopSettings
	degraded bool
}

// NewSettings builds the settings store with the default profile.
func NewSettings(repo SettingsRepository) *Settings {
	return &Settings{
		repo:     repo,
		settings: defaultSettings(time.Now().UTC()),
		degraded: repo == nil,
	}
}

// Degraded reports whether the store is serving local data.
func (s *Settings) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

func (s *Settings) markDegraded(op string, err error) {
	s.mu.Lock()
	s.degraded = true
	s.mu.Unlock()
	log.Printf("store: settings %s: backend unavailable, serving local data: %v", op, err)
}

// Get returns the workshop profile, falling back to the cached copy.
func (s *Settings) Get(ctx context.Context) (*model.WorkshopSettings, error) {
	if s.repo != nil {
		out, err := s.repo.Get(ctx)
		if err == nil {
			s.mu.Lock()
			s.settings = out
			s.degraded = false
			s.mu.Unlock()
			return out, nil
		}
		s.markDegraded("get", err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := *s.settings
	return &cp, nil
}

// Update applies a partial profile update in place; the singleton row
// is never duplicated.  On backend failure the patch merges into the
// cached copy and the merged profile is returned.
func (s *Settings) Update(ctx context.Context, patch model.WorkshopSettingsPatch) (*model.WorkshopSettings, error) {
	s.mu.RLock()
	id := s.settings.ID
	s.mu.RUnlock()

	if s.repo != nil {
		out, err := s.repo.Update(ctx, id, patch)
		if err == nil {
			s.mu.Lock()
			s.settings = out
			s.degraded = false
			s.mu.Unlock()
			return out, nil
		}
		s.markDegraded("update", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	merged := *s.settings
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Address != nil {
		merged.Address = *patch.Address
	}
	if patch.Phone != nil {
		merged.Phone = *patch.Phone
	}
	if patch.ThankYouMessage != nil {
		merged.ThankYouMessage = *patch.ThankYouMessage
	}
	merged.UpdatedAt = time.Now().UTC()
	s.settings = &merged
	cp := merged
	return &cp, nil
}

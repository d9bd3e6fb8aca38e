package services

import (
	"context"

	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository"
)

// preferenceServiceImpl implements the PreferenceService interface
type preferenceServiceImpl struct {
	s *session
}

func newPreferenceService(s *session) *preferenceServiceImpl {
	return &preferenceServiceImpl{s: s}
}

// DarkMode reports the stored theme. Missing or unreadable values mean light.
func (p *preferenceServiceImpl) DarkMode(ctx context.Context) (bool, error) {
	var enabled bool
	if _, err := repository.LoadJSON(ctx, p.s.repo, repository.KeyDarkMode, &enabled); err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeStorageCorrupt) {
			return false, nil
		}
		return false, err
	}
	return enabled, nil
}

// SetDarkMode stores the theme.
func (p *preferenceServiceImpl) SetDarkMode(ctx context.Context, enabled bool) error {
	return repository.SaveJSON(ctx, p.s.repo, repository.KeyDarkMode, enabled)
}

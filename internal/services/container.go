package services

import (
	"context"

	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
)

// NewServiceContainer loads the stored state once and wires every service on
// top of the shared view.
func NewServiceContainer(ctx context.Context, deps Dependencies) (*ServiceContainer, error) {
	if deps.Repo == nil {
		return nil, errors.NewInvalidInputError("repo", nil, "a repository is required")
	}

	s := newSession(deps)
	s.mu.Lock()
	err := s.load(ctx)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return &ServiceContainer{
		ProfileService:    newProfileService(s, deps.ProfileNameMaxLength),
		LedgerService:     newLedgerService(s),
		TransferService:   newTransferService(s),
		PreferenceService: newPreferenceService(s),
		TimeService:       NewTimeService(deps.Location, deps.Clock),
	}, nil
}

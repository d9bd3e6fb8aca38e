package services

import (
	"context"
	"fmt"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/events"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite"
	"github.com/Burh0n/LogiTrack-Pro/internal/validation"
)

// profileServiceImpl implements the ProfileService interface
type profileServiceImpl struct {
	s         *session
	validator *validation.ProfileValidator
}

func newProfileService(s *session, maxNameLength int) *profileServiceImpl {
	return &profileServiceImpl{
		s:         s,
		validator: validation.NewProfileValidator(maxNameLength),
	}
}

// validName trims and validates a profile name
func (p *profileServiceImpl) validName(name string) (string, error) {
	trimmed, err := p.validator.GetValidProfileName(name)
	if err != nil {
		msg := "Please enter a profile name"
		if ve, ok := err.(*validation.ValidationError); ok && len(ve.Errors) > 0 && ve.Errors[0].Type != validation.ErrorTypeRequired {
			msg = ve.GetUserFriendlyMessage()
		}
		return "", errors.NewValidationError(msg, err)
	}
	return trimmed, nil
}

// List returns the registry in display order.
func (p *profileServiceImpl) List(ctx context.Context) []domain.Profile {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	return p.s.profilesCopy()
}

// Active returns the signed-in profile, if any.
func (p *profileServiceImpl) Active() (domain.Profile, bool) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if !p.s.hasActive() {
		return domain.Profile{}, false
	}
	return domain.Profile{Name: p.s.active}, true
}

// Add appends a new profile. Names are compared exactly.
func (p *profileServiceImpl) Add(ctx context.Context, name string) (domain.Profile, error) {
	trimmed, err := p.validName(name)
	if err != nil {
		return domain.Profile{}, err
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	profiles, err := p.s.readProfiles(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if domain.IndexOf(profiles, trimmed) >= 0 {
		return domain.Profile{}, errors.NewDuplicateProfileError(trimmed)
	}

	profile := domain.NewProfile(trimmed)
	profiles = append(profiles, profile)
	if err := repository.SaveJSON(ctx, p.s.repo, repository.KeyProfiles, profiles); err != nil {
		return domain.Profile{}, err
	}

	p.s.profiles = profiles
	p.s.publish(events.ProfilesChanged, profile.Name)
	notify.Success(p.s.notifier, fmt.Sprintf("Profile %q created", profile.Name))
	return profile, nil
}

// Rename changes the name at index and moves its task collection to the new
// key in the same transaction.
func (p *profileServiceImpl) Rename(ctx context.Context, index int, newName string) (domain.Profile, error) {
	trimmed, err := p.validName(newName)
	if err != nil {
		return domain.Profile{}, err
	}

	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	profiles, err := p.s.readProfiles(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if index < 0 || index >= len(profiles) {
		return domain.Profile{}, errors.NewIndexOutOfRangeError("profile", index, len(profiles))
	}
	oldName := profiles[index].Name
	if existing := domain.IndexOf(profiles, trimmed); existing >= 0 && existing != index {
		return domain.Profile{}, errors.NewDuplicateProfileError(trimmed)
	}

	renamed := domain.NewProfile(trimmed)
	profiles[index] = renamed
	wasActive := p.s.active == oldName

	err = p.s.repo.Batch(ctx, func(tx sqlite.Tx) error {
		if err := repository.SaveJSONTx(tx, repository.KeyProfiles, profiles); err != nil {
			return err
		}
		if err := rekeyTasks(tx, oldName, trimmed); err != nil {
			return err
		}
		if wasActive {
			return repository.SaveJSONTx(tx, repository.KeyCurrentProfile, renamed)
		}
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}

	p.s.profiles = profiles
	if wasActive {
		p.s.active = trimmed
		p.s.publish(events.ActiveChanged, trimmed)
	}
	p.s.publish(events.ProfilesChanged, trimmed)
	notify.Success(p.s.notifier, fmt.Sprintf("Profile updated from %q to %q", oldName, trimmed))
	return renamed, nil
}

// rekeyTasks moves the task collection of from to to. A profile that never
// stored tasks still replaces whatever sits under the new key with an empty
// list, so a stale collection cannot attach itself to the renamed profile.
func rekeyTasks(tx sqlite.Tx, from, to string) error {
	if from == to {
		return nil
	}
	_, found, err := tx.Get(repository.TasksKey(from))
	if err != nil {
		return err
	}
	if !found {
		return repository.SaveJSONTx(tx, repository.TasksKey(to), []domain.Task{})
	}
	return tx.Move(repository.TasksKey(from), repository.TasksKey(to))
}

// Remove deletes the profile at index together with its tasks. Removing the
// signed-in profile signs out.
func (p *profileServiceImpl) Remove(ctx context.Context, index int) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	profiles, err := p.s.readProfiles(ctx)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(profiles) {
		return errors.NewIndexOutOfRangeError("profile", index, len(profiles))
	}
	name := profiles[index].Name
	remaining := append(append([]domain.Profile{}, profiles[:index]...), profiles[index+1:]...)
	wasActive := p.s.active == name

	err = p.s.repo.Batch(ctx, func(tx sqlite.Tx) error {
		if err := repository.SaveJSONTx(tx, repository.KeyProfiles, remaining); err != nil {
			return err
		}
		if err := tx.Remove(repository.TasksKey(name)); err != nil {
			return err
		}
		if wasActive {
			return tx.Remove(repository.KeyCurrentProfile)
		}
		return nil
	})
	if err != nil {
		return err
	}

	p.s.profiles = remaining
	if wasActive {
		p.s.active = ""
		p.s.tasks = []domain.Task{}
		p.s.publish(events.ActiveChanged, "")
		p.s.publish(events.ListUpdated, "")
	}
	p.s.publish(events.ProfilesChanged, name)
	p.s.publish(events.SummaryUpdated, name)
	notify.Success(p.s.notifier, fmt.Sprintf("Profile %q deleted", name))
	return nil
}

// SetActive signs in as the profile at index and reloads its tasks before
// returning.
func (p *profileServiceImpl) SetActive(ctx context.Context, index int) (domain.Profile, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	profiles, err := p.s.readProfiles(ctx)
	if err != nil {
		return domain.Profile{}, err
	}
	if index < 0 || index >= len(profiles) {
		return domain.Profile{}, errors.NewNoProfileSelectedError(index)
	}
	profile := profiles[index]

	if err := repository.SaveJSON(ctx, p.s.repo, repository.KeyCurrentProfile, profile); err != nil {
		return domain.Profile{}, err
	}

	p.s.profiles = profiles
	p.s.active = profile.Name
	if err := p.s.reloadTasks(ctx); err != nil {
		return domain.Profile{}, err
	}

	p.s.publish(events.ActiveChanged, profile.Name)
	p.s.publish(events.ListUpdated, profile.Name)
	notify.Success(p.s.notifier, fmt.Sprintf("Signed in as %s", profile.Name))
	return profile, nil
}

// ClearActive signs out. The registry and stored tasks are untouched.
func (p *profileServiceImpl) ClearActive(ctx context.Context) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if err := p.s.repo.Remove(ctx, repository.KeyCurrentProfile); err != nil {
		return err
	}
	p.s.active = ""
	p.s.tasks = []domain.Task{}
	p.s.publish(events.ActiveChanged, "")
	p.s.publish(events.ListUpdated, "")
	notify.Info(p.s.notifier, "Signed out")
	return nil
}

// EnsureDefault seeds the registry with a single default profile on first
// launch. It reports whether anything was written.
func (p *profileServiceImpl) EnsureDefault(ctx context.Context) (bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	profiles, err := p.s.readProfiles(ctx)
	if err != nil {
		return false, err
	}
	if len(profiles) > 0 {
		p.s.profiles = profiles
		return false, nil
	}

	seeded := []domain.Profile{domain.NewProfile(domain.DefaultProfileName)}
	if err := repository.SaveJSON(ctx, p.s.repo, repository.KeyProfiles, seeded); err != nil {
		return false, err
	}
	p.s.profiles = seeded
	p.s.publish(events.ProfilesChanged, domain.DefaultProfileName)
	return true, nil
}

package services

import (
	"context"

	"github.com/anjiri1684/tutoring_api/database"
	"github.com/anjiri1684/tutoring_api/models"
	"go.uber.org/zap"
)

type ProfileService struct {
	store  *database.Store
	sim    *Simulator
	logger *zap.Logger
}

func NewProfileService(store *database.Store, sim *Simulator, logger *zap.Logger) *ProfileService {
	return &ProfileService{store: store, sim: sim, logger: orNop(logger)}
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	return call(ctx, s.sim, "getProfile", func() (models.Profile, error) {
		var p models.Profile
		err := s.store.View(func(tx *database.Tx) error {
			var ok bool
			if p, ok = tx.FindProfile(id); !ok {
				return ErrProfileNotFound
			}
			return nil
		})
		return p, err
	})
}

func (s *ProfileService) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (models.Profile, error) {
	return call(ctx, s.sim, "updateProfile", func() (models.Profile, error) {
		return s.mutate(id, patch.Apply)
	})
}

// SetAvatar points the profile at an uploaded picture.
func (s *ProfileService) SetAvatar(ctx context.Context, id, url string) (models.Profile, error) {
	return call(ctx, s.sim, "setAvatar", func() (models.Profile, error) {
		return s.mutate(id, func(p *models.Profile) { p.AvatarURL = &url })
	})
}

func (s *ProfileService) mutate(id string, fn func(*models.Profile)) (models.Profile, error) {
	var out models.Profile
	err := s.store.Update(func(tx *database.Tx) error {
		updated, ok, err := tx.UpdateProfile(id, fn)
		if err != nil {
			return err
		}
		if !ok {
			return ErrProfileNotFound
		}
		out = updated
		return nil
	})
	return out, err
}

func (s *ProfileService) GetAllUsers(ctx context.Context) ([]models.Profile, error) {
	return s.list(ctx, "getAllUsers", nil)
}

func (s *ProfileService) GetTutors(ctx context.Context) ([]models.Profile, error) {
	return s.list(ctx, "getTutors", func(p models.Profile) bool { return p.Role == models.RoleTutor })
}

func (s *ProfileService) GetStudents(ctx context.Context) ([]models.Profile, error) {
	return s.list(ctx, "getStudents", func(p models.Profile) bool { return p.Role == models.RoleStudent })
}

func (s *ProfileService) list(ctx context.Context, op string, keep func(models.Profile) bool) ([]models.Profile, error) {
	return call(ctx, s.sim, op, func() ([]models.Profile, error) {
		var out []models.Profile
		err := s.store.View(func(tx *database.Tx) error {
			out = tx.Profiles(keep)
			return nil
		})
		return out, err
	})
}

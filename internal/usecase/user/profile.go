package user

import (
	"context"
	"io"

	"github.com/BruksfildServices01/site-backend/internal/models"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

const avatarPrefix = "avatars"

func (s *Service) Profile(ctx context.Context, id uint) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// UpdateProfile only touches the fields present in in.
func (s *Service) UpdateProfile(ctx context.Context, id uint, in validators.ProfileInput) (*models.User, error) {
	return s.users.Update(ctx, id, func(u *models.User) error {
		if in.FirstName != nil {
			u.FirstName = *in.FirstName
		}
		if in.LastName != nil {
			u.LastName = *in.LastName
		}
		if in.Phone != nil {
			u.Phone = *in.Phone
		}
		return nil
	})
}

// SetAvatar stores the new image first, then swaps it in and drops the old
// blob. A failed swap removes the new blob again.
func (s *Service) SetAvatar(ctx context.Context, id uint, r io.Reader) (*models.User, error) {
	if _, err := s.users.GetByID(ctx, id); err != nil {
		return nil, err
	}

	url, key, err := s.avatars.Upload(ctx, avatarPrefix, "avatar", r)
	if err != nil {
		return nil, err
	}

	var oldKey string
	u, err := s.users.Update(ctx, id, func(u *models.User) error {
		oldKey = u.AvatarKey
		u.Avatar, u.AvatarKey = url, key
		return nil
	})
	if err != nil {
		s.removeBlob(ctx, key)
		return nil, err
	}

	s.removeBlob(ctx, oldKey)
	return u, nil
}

func (s *Service) RemoveAvatar(ctx context.Context, id uint) (*models.User, error) {
	var oldKey string
	u, err := s.users.Update(ctx, id, func(u *models.User) error {
		oldKey = u.AvatarKey
		u.Avatar, u.AvatarKey = "", ""
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.removeBlob(ctx, oldKey)
	return u, nil
}

func (s *Service) removeBlob(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.avatars.Remove(ctx, key); err != nil {
		s.log.Warn("avatar cleanup failed", "key", key, "err", err)
	}
}

package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/warmpaws/warmpaws-backend/pkg/db/models"
	apperrors "github.com/warmpaws/warmpaws-backend/pkg/errors"
)

type repo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type Service struct {
	repo repo
}

func NewService(r repo) (*Service, error) {
	if r == nil {
		return nil, fmt.Errorf("users repo is required")
	}
	return &Service{repo: r}, nil
}

func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, apperrors.New(apperrors.CodeNotFound, "user not found")
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "loading profile")
	}
	return user, nil
}

type ProfileInput struct {
	DisplayName *string
	AvatarURL   *string
	Bio         *string
	City        *string
}

func (s *Service) UpdateProfile(ctx context.Context, id uuid.UUID, in ProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.DisplayName != nil {
		if *in.DisplayName == "" {
			return nil, apperrors.New(apperrors.CodeValidation, "display name cannot be empty")
		}
		user.DisplayName = *in.DisplayName
	}
	if in.AvatarURL != nil {
		user.AvatarURL = *in.AvatarURL
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.City != nil {
		user.City = *in.City
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperrors.Wrap(apperrors.CodeInternal, err, "updating profile")
	}
	return user, nil
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/realitygames/fantasy-league/internal/domain/user"
)

type UpdateProfileInput struct {
	UserID      string
	Email       string
	DisplayName string
	Phone       string
	AvatarURL   string
}

type ProfileService struct {
	userRepo user.Repository
	now      func() time.Time
}

func NewProfileService(userRepo user.Repository) *ProfileService {
	return &ProfileService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetProfile")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user %s", ErrNotFound, userID)
	}
	return item, nil
}

// UpsertProfile creates or updates the caller's profile. The user ID and
// email come from the verified token, never the request body.
func (s *ProfileService) UpsertProfile(ctx context.Context, input UpdateProfileInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.UpsertProfile")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.Email = strings.TrimSpace(input.Email)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	input.Phone = strings.TrimSpace(input.Phone)
	input.AvatarURL = strings.TrimSpace(input.AvatarURL)

	if input.Phone != "" && !isE164Phone(input.Phone) {
		return user.User{}, fmt.Errorf("%w: phone must be in E.164 format", ErrInvalidInput)
	}

	now := s.now().UTC()
	item := user.User{
		ID:          input.UserID,
		Email:       input.Email,
		DisplayName: input.DisplayName,
		Phone:       input.Phone,
		AvatarURL:   input.AvatarURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := item.ValidateBasic(); err != nil {
		return user.User{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	if err := s.userRepo.Upsert(ctx, item); err != nil {
		return user.User{}, fmt.Errorf("upsert user profile: %w", err)
	}
	return item, nil
}

// isE164Phone accepts "+" followed by 8 to 15 digits, the shape reminder SMS
// delivery requires.
func isE164Phone(value string) bool {
	if !strings.HasPrefix(value, "+") {
		return false
	}
	digits := value[1:]
	if len(digits) < 8 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

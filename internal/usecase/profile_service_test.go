package usecase

import (
	"errors"
	"testing"

	"github.com/realitygames/fantasy-league/internal/infrastructure/repository/memory"
)

func TestProfileService_UpsertProfile(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewUserRepository(nil))

	got, err := svc.UpsertProfile(t.Context(), UpdateProfileInput{
		UserID:      "user-9",
		Email:       "dee@example.com",
		DisplayName: " Dee ",
		Phone:       "+442071234567",
	})
	if err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	if got.DisplayName != "Dee" {
		t.Fatalf("unexpected display name: %q", got.DisplayName)
	}

	stored, err := svc.GetProfile(t.Context(), "user-9")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if stored.Phone != "+442071234567" {
		t.Fatalf("unexpected phone: %s", stored.Phone)
	}
}

func TestProfileService_UpsertProfile_RejectBadPhone(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewUserRepository(nil))

	for _, phone := range []string{"0712345678", "+12ab3456789", "+12", "+1234567890123456"} {
		_, err := svc.UpsertProfile(t.Context(), UpdateProfileInput{
			UserID:      "user-9",
			Email:       "dee@example.com",
			DisplayName: "Dee",
			Phone:       phone,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("phone %q: expected ErrInvalidInput, got %v", phone, err)
		}
	}
}

func TestProfileService_UpsertProfile_RequiresIdentity(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewUserRepository(nil))

	_, err := svc.UpsertProfile(t.Context(), UpdateProfileInput{DisplayName: "Dee"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestProfileService_GetProfile_NotFound(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(memory.NewUserRepository(nil))

	_, err := svc.GetProfile(t.Context(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

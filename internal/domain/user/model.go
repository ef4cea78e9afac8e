package user

import (
	"fmt"
	"strings"
	"time"
)

// User is a registered player profile.
type User struct {
	ID          string
	Email       string
	DisplayName string
	Phone       string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Principal identifies the authenticated caller of a request.
type Principal struct {
	UserID string
	Email  string
}

func (u User) ValidateBasic() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("user email is required")
	}
	if strings.TrimSpace(u.DisplayName) == "" {
		return fmt.Errorf("user display name is required")
	}

	return nil
}

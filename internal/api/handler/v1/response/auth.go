package response

import (
	"github.com/blwclub/membership-portal/internal/domain"
)

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	User      domain.User `json:"user"`
}

type SessionResponse struct {
	Authenticated bool                `json:"authenticated"`
	User          *domain.SessionUser `json:"user,omitempty"`
	Home          string              `json:"home"`
}

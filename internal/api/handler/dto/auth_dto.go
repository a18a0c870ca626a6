package dto

import (
	"fmt"
	"strings"

	"loanledger/internal/domain/user"
)

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *RegisterRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if strings.TrimSpace(r.Password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	if strings.TrimSpace(r.Username) == "" {
		return fmt.Errorf("username cannot be empty")
	}
	if strings.TrimSpace(r.Password) == "" {
		return fmt.Errorf("password cannot be empty")
	}
	return nil
}

type UserResponse struct {
	Username string `json:"username"`
}

// LoginResponse echoes the username; Token is only populated when token
// issuance is enabled in the server configuration.
type LoginResponse struct {
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
}

func NewUserResponse(u *user.User) UserResponse {
	if u == nil {
		return UserResponse{}
	}
	return UserResponse{Username: u.Username}
}

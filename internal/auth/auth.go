// Package auth implements the login check and the opaque bearer token
// handed to clients. The token is an unsigned string validated by shape
// only, with no server-side registry. That matches the dashboard's
// route-guarding contract but is not a security boundary; anything that
// needs real authentication should sit behind a proper session layer.
package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const tokenPrefix = "auth_token_"

var (
	// ErrMissingCredentials is returned when username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")

	// ErrInvalidCredentials is returned when the pair does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User identifies the authenticated account in login responses.
type User struct {
	Username string `json:"username"`
	ID       string `json:"id"`
}

// Session is a successful login result.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Service checks login attempts against the single configured
// credential pair.
type Service struct {
	username string
	password string
}

// New creates an auth service for the given credential pair.
func New(username, password string) *Service {
	return &Service{username: username, password: password}
}

// Login validates the pair and mints a token.
func (s *Service) Login(username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, ErrMissingCredentials
	}
	if username != s.username || password != s.password {
		log.Warn("Rejected login attempt", "username", username)
		return nil, ErrInvalidCredentials
	}

	session := &Session{
		Token: newToken(),
		User:  User{Username: username, ID: "1"},
	}
	log.Info("User logged in", "username", username)
	return session, nil
}

// newToken mints an opaque token of the documented shape:
// auth_token_<unix-timestamp>_<random>.
func newToken() string {
	random := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s%d_%s", tokenPrefix, time.Now().Unix(), random)
}

// ValidToken reports whether a bearer token matches the issued shape.
// There is no registry lookup: any well-formed token is accepted.
func ValidToken(token string) bool {
	if !strings.HasPrefix(token, tokenPrefix) {
		return false
	}
	rest := strings.TrimPrefix(token, tokenPrefix)
	parts := strings.SplitN(rest, "_", 2)
	if len(parts) != 2 || parts[1] == "" {
		return false
	}
	_, err := strconv.ParseInt(parts[0], 10, 64)
	return err == nil
}

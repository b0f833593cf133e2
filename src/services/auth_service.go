package services

import (
	"context"
	"regexp"

	"golang.org/x/crypto/bcrypt"

	"chirper/src/apperrors"
	"chirper/src/lib"
	"chirper/src/models"
	"chirper/src/store"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLength = 6

// AuthService handles registration and login. Every mutating request in the
// system is gated on a token this service (via the token manager) issued.
type AuthService struct {
	users  store.UserStore
	tokens *lib.TokenManager
}

func NewAuthService(users store.UserStore, tokens *lib.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Register validates the signup payload, stores the user with a bcrypt hash of
// the password, and issues a session token bound to the new user id. The
// returned record never carries the hash.
func (s *AuthService) Register(ctx context.Context, username, email, password, fullName string) (*models.User, string, error) {
	if username == "" || email == "" || password == "" || fullName == "" {
		return nil, "", apperrors.Validationf("All fields are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, "", apperrors.Validationf("Invalid email format")
	}
	if len(password) < minPasswordLength {
		return nil, "", apperrors.Validationf("Password must be at least 6 characters")
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, "", apperrors.Conflictf("Username already exists")
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", apperrors.Conflictf("Email already exists")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashed),
		FullName: fullName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Generate(user.Id.Hex())
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

// Login verifies the credentials and issues a fresh session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apperrors.Unauthorizedf("Invalid password")
	}

	token, err := s.tokens.Generate(user.Id.Hex())
	if err != nil {
		return nil, "", err
	}

	user.Password = ""
	return user, token, nil
}

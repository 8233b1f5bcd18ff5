package service

import (
	"fmt"
	"time"

	"github.com/Aarbaz/perfect-management/internal/models"
	"github.com/Aarbaz/perfect-management/internal/repository"
	"github.com/Aarbaz/perfect-management/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthService issues and verifies session tokens and manages passwords.
type AuthService struct {
	Users      *repository.UserRepository
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
}

func NewAuthService(users *repository.UserRepository, jwtSecret string, ttlHours, bcryptCost int) *AuthService {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	if bcryptCost <= 0 {
		bcryptCost = 12
	}
	return &AuthService{
		Users:      users,
		JWTSecret:  jwtSecret,
		TokenTTL:   time.Duration(ttlHours) * time.Hour,
		BcryptCost: bcryptCost,
	}
}

// Register creates the account and signs an initial session token.
// Username and email must each be unused.
func (s *AuthService) Register(username, email, password string) (*models.User, string, error) {
	existing, err := s.Users.FindByUsername(username)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	existing, err = s.Users.FindByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.BcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.Users.Create(user); err != nil {
		return nil, "", err
	}

	token, err := util.GenerateToken(s.JWTSecret, user.ID, user.Username, s.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Login checks the credentials and issues a session token. An unknown
// username and a wrong password fail differently so the UI can say which.
func (s *AuthService) Login(username, password string) (*models.User, string, error) {
	user, err := s.Users.FindByUsername(username)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateToken(s.JWTSecret, user.ID, user.Username, s.TokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("sign token: %w", err)
	}
	return user, token, nil
}

// Verify validates a session token and returns its identity claims.
func (s *AuthService) Verify(token string) (*util.Claims, error) {
	claims, err := util.ParseToken(s.JWTSecret, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ChangePassword re-verifies the current password before storing the
// new hash.
func (s *AuthService) ChangePassword(userID uint, current, newPassword string) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.Users.UpdatePasswordHash(userID, string(hash))
}

package repository

import (
	"errors"
	"fmt"

	"github.com/Aarbaz/perfect-management/internal/models"

	"gorm.io/gorm"
)

// UserRepository runs all queries against the users table.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(u *models.User) error {
	if err := r.db.Create(u).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByUsername returns (nil, nil) when no account matches.
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("username = ?", username).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &u, nil
}

// FindByEmail returns (nil, nil) when no account matches.
func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

// FindByID returns (nil, nil) when no account matches.
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserRepository) UpdatePasswordHash(id uint, hash string) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", id).
		Update("password_hash", hash).Error; err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateProfileImage(id uint, path string) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", id).
		Update("profile_image", path).Error; err != nil {
		return fmt.Errorf("update profile image: %w", err)
	}
	return nil
}

package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/Aarbaz/perfect-management/internal/middleware"
	"github.com/Aarbaz/perfect-management/internal/repository"
	"github.com/Aarbaz/perfect-management/internal/service"
	"github.com/Aarbaz/perfect-management/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	Auth      *service.AuthService
	Users     *repository.UserRepository
	UploadDir string
}

func NewAuthHandler(auth *service.AuthService, users *repository.UserRepository, uploadDir string) *AuthHandler {
	return &AuthHandler{
		Auth:      auth,
		Users:     users,
		UploadDir: uploadDir,
	}
}

type registerReq struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.ErrorDetail(c, http.StatusBadRequest, "Validation failed", err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if err := util.ValidateUsername(req.Username); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	if err := util.ValidatePassword(req.Password); err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.Auth.Register(req.Username, req.Email, req.Password)
	switch {
	case err == service.ErrUsernameTaken:
		util.Error(c, http.StatusBadRequest, "Username already exists")
		return
	case err == service.ErrEmailTaken:
		util.Error(c, http.StatusBadRequest, "Email already exists")
		return
	case err != nil:
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	util.Success(c, http.StatusCreated, "User registered successfully", util.Response{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"token": token,
	})
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	user, token, err := h.Auth.Login(strings.TrimSpace(req.Username), req.Password)
	switch {
	case err == service.ErrUserNotFound:
		util.Error(c, http.StatusUnauthorized, "Username not found. Please check your username and try again.")
		return
	case err == service.ErrInvalidCredentials:
		util.Error(c, http.StatusUnauthorized, "Incorrect password. Please check your password and try again.")
		return
	case err != nil:
		util.ErrorDetail(c, http.StatusInternalServerError, "Login failed. Please try again later.", err)
		return
	}

	util.Success(c, http.StatusOK, "Login successful", util.Response{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
		"token": token,
	})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, "Access token required")
		return
	}

	user, err := h.Users.FindByID(claims.UserID)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	if user == nil {
		util.Error(c, http.StatusNotFound, "User not found")
		return
	}

	util.Success(c, http.StatusOK, "", util.Response{"user": user})
}

// UpdateProfile stores a new profile image from a multipart form.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, "Access token required")
		return
	}

	file, err := c.FormFile("profile_image")
	if err != nil {
		util.Error(c, http.StatusBadRequest, "No data provided for update")
		return
	}

	path, err := h.saveProfileImage(c, file.Filename, claims.UserID)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	user, err := h.Users.FindByID(claims.UserID)
	if err != nil || user == nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	user.ProfileImage = path

	util.Success(c, http.StatusOK, "Profile updated successfully", util.Response{"user": user})
}

// UploadProfileImage is the standalone image upload endpoint.
func (h *AuthHandler) UploadProfileImage(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, "Access token required")
		return
	}

	file, err := c.FormFile("profile_image")
	if err != nil {
		util.Error(c, http.StatusBadRequest, "No image uploaded")
		return
	}

	path, err := h.saveProfileImage(c, file.Filename, claims.UserID)
	if err != nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	user, err := h.Users.FindByID(claims.UserID)
	if err != nil || user == nil {
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}
	user.ProfileImage = path

	util.Success(c, http.StatusOK, "Profile image updated", util.Response{"user": user})
}

func (h *AuthHandler) saveProfileImage(c *gin.Context, original string, userID uint) (string, error) {
	file, err := c.FormFile("profile_image")
	if err != nil {
		return "", err
	}
	name := "profile_" + uuid.NewString() + filepath.Ext(original)
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
		return "", err
	}
	path := "/uploads/" + name
	if err := h.Users.UpdateProfileImage(userID, path); err != nil {
		return "", err
	}
	return path, nil
}

type changePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required"`
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if claims == nil {
		util.Error(c, http.StatusUnauthorized, "Access token required")
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Current password and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		util.Error(c, http.StatusBadRequest, "New password must be at least 6 characters long")
		return
	}

	err := h.Auth.ChangePassword(claims.UserID, req.CurrentPassword, req.NewPassword)
	switch {
	case err == service.ErrInvalidCredentials:
		util.Error(c, http.StatusBadRequest, "Current password is incorrect")
		return
	case err == service.ErrUserNotFound:
		util.Error(c, http.StatusNotFound, "User not found")
		return
	case err != nil:
		util.ErrorDetail(c, http.StatusInternalServerError, "Internal server error", err)
		return
	}

	util.Success(c, http.StatusOK, "Password updated successfully", nil)
}

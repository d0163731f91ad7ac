package services

import (
	"errors"
	"net/http"
	"time"

	"github.com/billysm23/FitKitchen-BackendTST/config"
	"github.com/billysm23/FitKitchen-BackendTST/models"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MaxActiveSessions is the per-user cap; logging in past it
// deactivates every older session.
const MaxActiveSessions = 2

func RegisterUser(username, email, password string) (*models.User, string, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return nil, "", err
	}
	if err := utils.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := utils.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	var existing models.User
	err := config.DB.Where("email = ? OR username = ?", email, username).First(&existing).Error
	if err == nil {
		message := "User already exists with this "
		switch {
		case existing.Email == email && existing.Username == username:
			message += "email and username"
		case existing.Email == email:
			message += "email"
		default:
			message += "username"
		}
		return nil, "", utils.NewAppError(message, http.StatusConflict, utils.ErrResourceExists)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", storageError("checking existing user", err)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := models.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if err := config.DB.Create(&user).Error; err != nil {
		return nil, "", storageError("creating user", err)
	}

	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	if err := createSession(user.ID, token); err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

func AuthenticateUser(email, password string) (*models.User, string, error) {
	var user models.User
	err := config.DB.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", utils.NewAppError("No user found with this email", http.StatusNotFound, utils.ErrResourceNotFound)
	}
	if err != nil {
		return nil, "", storageError("finding user", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, "", utils.NewAppError("Invalid password", http.StatusUnauthorized, utils.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.ID, user.Username)
	if err != nil {
		return nil, "", err
	}
	if err := createSession(user.ID, token); err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

func createSession(userID uint, token string) error {
	var active int64
	if err := config.DB.Model(&models.Session{}).
		Where("user_id = ? AND is_active = ?", userID, true).
		Count(&active).Error; err != nil {
		return storageError("counting sessions", err)
	}

	if active >= MaxActiveSessions {
		if err := config.DB.Model(&models.Session{}).
			Where("user_id = ? AND is_active = ?", userID, true).
			Update("is_active", false).Error; err != nil {
			return storageError("deactivating sessions", err)
		}
	}

	session := models.Session{
		UserID:    userID,
		Token:     token,
		IsActive:  true,
		ExpiresAt: time.Now().Add(utils.TokenExpiry),
	}
	if err := config.DB.Create(&session).Error; err != nil {
		return storageError("creating session", err)
	}
	return nil
}

// FindActiveSession resolves a bearer token to its live session row.
func FindActiveSession(token string) (*models.Session, error) {
	var session models.Session
	err := config.DB.
		Where("token = ? AND is_active = ?", token, true).
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewAppError("Session not found or expired", http.StatusUnauthorized, utils.ErrSessionInvalid)
	}
	if err != nil {
		return nil, storageError("finding session", err)
	}
	if time.Now().After(session.ExpiresAt) {
		return nil, utils.NewAppError("Session expired", http.StatusUnauthorized, utils.ErrSessionInvalid)
	}
	return &session, nil
}

func LogoutUser(token string) error {
	result := config.DB.Model(&models.Session{}).
		Where("token = ? AND is_active = ?", token, true).
		Update("is_active", false)
	if result.Error != nil {
		return storageError("deactivating session", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NewAppError("Session not found", http.StatusUnauthorized, utils.ErrSessionInvalid)
	}
	return nil
}

// storageError logs the underlying failure and surfaces it as a
// generic storage error; details never reach the client.
func storageError(op string, err error) error {
	config.L().Error("database error", zap.String("op", op), zap.Error(err))
	return utils.NewAppError("Database error while "+op, http.StatusInternalServerError, utils.ErrDatabaseError)
}

package controllers

import (
	"errors"
	"net/http"

	"github.com/billysm23/FitKitchen-BackendTST/config"
	"github.com/billysm23/FitKitchen-BackendTST/models"
	"github.com/billysm23/FitKitchen-BackendTST/services"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the user record plus their health assessment;
// the assessment is null until one has been submitted.
func GetProfile(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		utils.RespondError(c, utils.NewAppError("User not found", http.StatusNotFound, utils.ErrResourceNotFound))
		return
	}

	var assessment interface{}
	found, err := services.GetAssessment(userID)
	switch {
	case err == nil:
		assessment = found
	case isNotFound(err):
		assessment = nil
	default:
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user":             user,
			"healthAssessment": assessment,
		},
	})
}

func isNotFound(err error) bool {
	var appErr *utils.AppError
	return errors.As(err, &appErr) && appErr.Code == utils.ErrResourceNotFound
}

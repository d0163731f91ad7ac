package controllers

import (
	"net/http"

	"github.com/billysm23/FitKitchen-BackendTST/services"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"github.com/gin-gonic/gin"
)

// CreateAssessment recomputes the caller's metrics from scratch and
// upserts their single health profile.
func CreateAssessment(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input services.AssessmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewAppError("Invalid request body", http.StatusBadRequest, utils.ErrInvalidFormat))
		return
	}

	assessment, existed, err := services.UpsertAssessment(userID, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	message := "Assessment created successfully"
	if existed {
		message = "Assessment updated successfully"
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": message,
		"data":    assessment,
	})
}

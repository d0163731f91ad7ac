package controllers

import (
	"net/http"
	"strconv"

	"github.com/billysm23/FitKitchen-BackendTST/services"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"github.com/gin-gonic/gin"
)

type InitializePlanInput struct {
	PlanType string `json:"plan_type" binding:"required"`
}

// InitializePlan returns the recommendation set for the chosen plan
// type, the first step of composing a plan.
func InitializePlan(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input InitializePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewAppError(
			"Invalid plan type. Must be one of: single, half_day, full_day",
			http.StatusBadRequest,
			utils.ErrInvalidInput,
		))
		return
	}

	result, err := services.GetRecommendedMenus(userID, input.PlanType)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

type CreatePlanInput struct {
	PlanType string `json:"plan_type" binding:"required"`
	MenuIDs  []uint `json:"menuIds" binding:"required"`
}

func CreatePlan(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewAppError("plan_type and menuIds are required", http.StatusBadRequest, utils.ErrMissingField))
		return
	}

	plan, validation, err := services.CreatePlan(userID, input.PlanType, input.MenuIDs)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"plan":       plan,
			"validation": validation,
		},
	})
}

func GetActivePlans(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	plans, err := services.GetActivePlans(userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": plans})
}

type UpdatePlanStatusInput struct {
	Status string `json:"status" binding:"required"`
}

func UpdatePlanStatus(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	planID, err := strconv.ParseUint(c.Param("plan_id"), 10, 64)
	if err != nil {
		utils.RespondError(c, utils.NewAppError("Invalid plan id", http.StatusBadRequest, utils.ErrInvalidInput))
		return
	}

	var input UpdatePlanStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewAppError("Status is required", http.StatusBadRequest, utils.ErrMissingField))
		return
	}

	plan, err := services.UpdatePlanStatus(uint(planID), userID, input.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": plan})
}

func GetPlanHistory(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	opts := services.PlanHistoryOptions{Status: c.Query("status"), Limit: 10}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > 100 {
			utils.RespondError(c, utils.NewAppError("Limit must be between 1 and 100", http.StatusBadRequest, utils.ErrInvalidInput))
			return
		}
		opts.Limit = limit
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			utils.RespondError(c, utils.NewAppError("Offset cannot be negative", http.StatusBadRequest, utils.ErrInvalidInput))
			return
		}
		opts.Offset = offset
	}

	history, err := services.GetPlanHistory(userID, opts)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
		"pagination": gin.H{
			"limit":  opts.Limit,
			"offset": opts.Offset,
		},
	})
}

package controllers

import (
	"net/http"
	"strconv"

	"github.com/billysm23/FitKitchen-BackendTST/services"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"github.com/gin-gonic/gin"
)

func parseFloatQuery(c *gin.Context, name string) (*float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, utils.NewAppError("Invalid value for "+name, http.StatusBadRequest, utils.ErrInvalidInput)
	}
	return &v, nil
}

func parseIntQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, utils.NewAppError("Invalid value for "+name, http.StatusBadRequest, utils.ErrInvalidInput)
	}
	return v, nil
}

func GetMenusByCategory(c *gin.Context) {
	category := c.Param("category")

	var filters services.MenuFilters
	var err error
	if filters.MinCalories, err = parseFloatQuery(c, "minCalories"); err != nil {
		utils.RespondError(c, err)
		return
	}
	if filters.MaxCalories, err = parseFloatQuery(c, "maxCalories"); err != nil {
		utils.RespondError(c, err)
		return
	}
	if filters.MinProtein, err = parseFloatQuery(c, "minProtein"); err != nil {
		utils.RespondError(c, err)
		return
	}
	if filters.Page, err = parseIntQuery(c, "page", 1); err != nil {
		utils.RespondError(c, err)
		return
	}
	if filters.Limit, err = parseIntQuery(c, "limit", 10); err != nil {
		utils.RespondError(c, err)
		return
	}

	menus, err := services.GetMenusByCategory(category, filters)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": menus})
}

func SearchMenus(c *gin.Context) {
	term := c.Query("search")

	var categoryID *uint
	if raw := c.Query("categoryId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			utils.RespondError(c, utils.NewAppError("Invalid value for categoryId", http.StatusBadRequest, utils.ErrInvalidInput))
			return
		}
		v := uint(id)
		categoryID = &v
	}

	minCalories, err := parseFloatQuery(c, "minCalories")
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	maxCalories, err := parseFloatQuery(c, "maxCalories")
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	menus, err := services.SearchMenus(term, categoryID, minCalories, maxCalories)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": menus})
}

func GetMenuDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, utils.NewAppError("Menu ID is required", http.StatusBadRequest, utils.ErrMissingField))
		return
	}

	menu, allergens, err := services.GetMenuDetails(uint(id))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"menu":      menu,
			"allergens": allergens,
		},
	})
}

// GetRecommendedMenus ranks the catalog for the caller's targets.
// Defaults to a single-meal plan when no plan_type is given.
func GetRecommendedMenus(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	planType := c.DefaultQuery("plan_type", "single")
	result, err := services.GetRecommendedMenus(userID, planType)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

type ValidateSelectionInput struct {
	MenuIDs  []uint `json:"menuIds" binding:"required"`
	PlanType string `json:"plan_type" binding:"required"`
}

// ValidateMenuSelection runs the plan validator and always answers 200
// once the inputs parse; an unbalanced selection is data, not an error.
func ValidateMenuSelection(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input ValidateSelectionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewAppError("Valid menu selection is required", http.StatusBadRequest, utils.ErrInvalidInput))
		return
	}

	result, err := services.ValidateSelectionByIDs(userID, input.MenuIDs, input.PlanType)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

type MenuImageInput struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

func UploadMenuImage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondError(c, utils.NewAppError("Menu ID is required", http.StatusBadRequest, utils.ErrMissingField))
		return
	}

	var input MenuImageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewAppError("Invalid input", http.StatusBadRequest, utils.ErrInvalidInput))
		return
	}

	url, err := utils.UploadBase64ImageToS3(input.ImageBase64, "menu-images/menu")
	if err != nil {
		utils.RespondError(c, utils.NewAppError("Upload failed", http.StatusInternalServerError, utils.ErrDatabaseError))
		return
	}

	if err := services.SetMenuImage(uint(id), url); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"url": url}})
}

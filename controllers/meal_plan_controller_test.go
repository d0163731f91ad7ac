package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// Pagination bounds are enforced before any storage access, so these
// run without a database.
func TestGetPlanHistoryPaginationBounds(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name  string
		query string
	}{
		{name: "zero limit", query: "limit=0"},
		{name: "limit over cap", query: "limit=101"},
		{name: "negative offset", query: "offset=-1"},
		{name: "non-numeric limit", query: "limit=ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/meal-plans/history?"+tt.query, nil)
			c.Set("userID", uint(1))

			GetPlanHistory(c)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
		})
	}
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListCategories returns every category (public)
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.Store.ListCategories(c.Request.Context())
	if err != nil {
		serverError(c, "list_categories_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": categories})
}

// ListMeals returns the menu, optionally narrowed to ?category_id= (public)
func (h *Handler) ListMeals(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			clientError(c, http.StatusBadRequest, "list_meals_failed", "category_id must be a non-negative integer")
			return
		}
		v := uint(id)
		categoryID = &v
	}

	meals, err := h.Store.ListMeals(c.Request.Context(), categoryID)
	if err != nil {
		serverError(c, "list_meals_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": meals})
}

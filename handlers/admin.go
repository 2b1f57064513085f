package handlers

import (
	"errors"
	"net/http"

	"food-ordering-api/models"
	"food-ordering-api/store"

	"github.com/gin-gonic/gin"
)

// AdminListOrders returns all orders, newest first (admin only)
func (h *Handler) AdminListOrders(c *gin.Context) {
	orders, err := h.Store.ListOrders(c.Request.Context())
	if err != nil {
		serverError(c, "list_orders_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

// ── Menu Management ─────────────────────────────────────────────────────────

type MealRequest struct {
	Name        string   `json:"name" binding:"notblank"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	Description *string  `json:"description"`
	Options     []string `json:"options"`
	CategoryID  *uint    `json:"category_id" binding:"required,gt=0"`
}

func (r MealRequest) toMeal() models.Meal {
	return models.Meal{
		Name:        r.Name,
		Price:       *r.Price,
		Description: r.Description,
		Options:     models.OptionList(r.Options),
		CategoryID:  r.CategoryID,
	}
}

// CreateMeal adds a new item to the menu
func (h *Handler) CreateMeal(c *gin.Context) {
	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		clientError(c, http.StatusBadRequest, "create_meal_failed", bindingMessage(err))
		return
	}

	meal := req.toMeal()
	if err := h.Store.CreateMeal(c.Request.Context(), &meal); err != nil {
		serverError(c, "create_meal_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Meal created successfully", "mealId": meal.ID})
}

// UpdateMeal replaces every field of a menu item
func (h *Handler) UpdateMeal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		clientError(c, http.StatusBadRequest, "update_meal_failed", "invalid meal id")
		return
	}

	var req MealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		clientError(c, http.StatusBadRequest, "update_meal_failed", bindingMessage(err))
		return
	}

	meal := req.toMeal()
	if err := h.Store.UpdateMeal(c.Request.Context(), id, &meal); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			clientError(c, http.StatusNotFound, "update_meal_failed", "Meal not found")
			return
		}
		serverError(c, "update_meal_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal updated successfully"})
}

// DeleteMeal removes a menu item
func (h *Handler) DeleteMeal(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		clientError(c, http.StatusBadRequest, "delete_meal_failed", "invalid meal id")
		return
	}

	if err := h.Store.DeleteMeal(c.Request.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			clientError(c, http.StatusNotFound, "delete_meal_failed", "Meal not found")
			return
		}
		serverError(c, "delete_meal_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Meal deleted successfully"})
}

// ── Category Management ─────────────────────────────────────────────────────

type CategoryRequest struct {
	Name string `json:"name" binding:"notblank"`
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		clientError(c, http.StatusBadRequest, "create_category_failed", bindingMessage(err))
		return
	}

	category, err := h.Store.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			clientError(c, http.StatusConflict, "create_category_failed", "Category already exists")
			return
		}
		serverError(c, "create_category_failed", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created successfully", "categoryId": category.ID})
}

// DeleteCategory refuses with 409 while meals still belong to the category
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		clientError(c, http.StatusBadRequest, "delete_category_failed", "invalid category id")
		return
	}

	if err := h.Store.DeleteCategory(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			clientError(c, http.StatusNotFound, "delete_category_failed", "Category not found")
		case errors.Is(err, store.ErrCategoryInUse):
			clientError(c, http.StatusConflict, "delete_category_failed", "Category still has meals; delete or move them first")
		default:
			serverError(c, "delete_category_failed", err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
}

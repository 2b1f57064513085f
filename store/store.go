// Package store is the data-access layer. Every method runs on the request
// context and maps "no matching row" onto ErrNotFound.
package store

import (
	"context"
	"errors"
	"fmt"

	"food-ordering-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicate          = errors.New("record already exists")
	ErrCategoryInUse      = errors.New("category still has meals")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// ── Categories ──────────────────────────────────────────────────────────────

func (s *Store) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (s *Store) CreateCategory(ctx context.Context, name string) (*models.Category, error) {
	category := models.Category{Name: name}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicate
		}
		return tx.Create(&category).Error
	})
	if err != nil {
		if errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// DeleteCategory refuses to remove a category that meals still reference.
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find category: %w", err)
		}

		var meals int64
		if err := tx.Model(&models.Meal{}).Where("category_id = ?", id).Count(&meals).Error; err != nil {
			return fmt.Errorf("count meals: %w", err)
		}
		if meals > 0 {
			return ErrCategoryInUse
		}

		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}

// ── Meals ───────────────────────────────────────────────────────────────────

// ListMeals returns every meal, or only those of categoryID when it is set.
func (s *Store) ListMeals(ctx context.Context, categoryID *uint) ([]models.Meal, error) {
	meals := []models.Meal{}
	query := s.DB.WithContext(ctx).Order("id ASC")
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	}
	if err := query.Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("list meals: %w", err)
	}
	return meals, nil
}

func (s *Store) CreateMeal(ctx context.Context, meal *models.Meal) error {
	if len(meal.Options) == 0 {
		meal.Options = nil
	}
	if err := s.DB.WithContext(ctx).Omit("Category").Create(meal).Error; err != nil {
		return fmt.Errorf("create meal: %w", err)
	}
	return nil
}

// UpdateMeal replaces every mutable column of meal id.
func (s *Store) UpdateMeal(ctx context.Context, id uint, meal *models.Meal) error {
	var description, categoryID any
	if meal.Description != nil {
		description = *meal.Description
	}
	if meal.CategoryID != nil {
		categoryID = *meal.CategoryID
	}
	res := s.DB.WithContext(ctx).Model(&models.Meal{}).Where("id = ?", id).Updates(map[string]any{
		"name":         meal.Name,
		"price":        meal.Price,
		"description":  description,
		"options_json": meal.Options,
		"category_id":  categoryID,
	})
	if res.Error != nil {
		return fmt.Errorf("update meal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	meal.ID = id
	return nil
}

func (s *Store) DeleteMeal(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Meal{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete meal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Orders ──────────────────────────────────────────────────────────────────

func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if err := s.DB.WithContext(ctx).Create(order).Error; err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	return nil
}

// ListOrders returns all orders, newest first.
func (s *Store) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// ── Admins ──────────────────────────────────────────────────────────────────

// Authenticate returns ErrInvalidCredentials both for an unknown username
// and for a wrong password.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find admin: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &admin, nil
}

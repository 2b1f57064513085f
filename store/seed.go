package store

import (
	"context"
	"fmt"
	"log/slog"

	"food-ordering-api/models"

	"golang.org/x/crypto/bcrypt"
)

var defaultCategories = []string{"Burgers", "Sides", "Drinks"}

type seedMeal struct {
	name        string
	price       float64
	description string
	options     models.OptionList
	category    string
}

var (
	burgerOptions = models.OptionList{"No pickles", "No ketchup"}
	sideOptions   = models.OptionList{"Ketchup", "Tartar sauce"}
)

var defaultMeals = []seedMeal{
	{"Spicy Mexican Beef Burger", 230, "Served with fries", burgerOptions, "Burgers"},
	{"Double Cheese Beef Burger", 230, "Served with fries", burgerOptions, "Burgers"},
	{"Tartar Fish Burger", 210, "Served with fries", burgerOptions, "Burgers"},
	{"American Fries", 45, "", sideOptions, "Sides"},
	{"Chicken Nuggets", 65, "", sideOptions, "Sides"},
	{"Cola", 40, "", nil, "Drinks"},
	{"Sprite", 40, "", nil, "Drinks"},
	{"Calpis", 40, "", nil, "Drinks"},
}

// Seed fills each empty table with the default menu and admin account.
// Tables that already hold rows are left untouched.
func (s *Store) Seed(ctx context.Context, adminUsername, adminPassword string) error {
	if err := s.seedCategories(ctx); err != nil {
		return err
	}
	if err := s.seedMeals(ctx); err != nil {
		return err
	}
	return s.seedAdmin(ctx, adminUsername, adminPassword)
}

func (s *Store) isEmpty(ctx context.Context, model any) (bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(model).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func (s *Store) seedCategories(ctx context.Context) error {
	empty, err := s.isEmpty(ctx, &models.Category{})
	if err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}
	if !empty {
		slog.Info("categories already seeded, skipping")
		return nil
	}

	categories := make([]models.Category, 0, len(defaultCategories))
	for _, name := range defaultCategories {
		categories = append(categories, models.Category{Name: name})
	}
	if err := s.DB.WithContext(ctx).Create(&categories).Error; err != nil {
		return fmt.Errorf("seed insert categories: %w", err)
	}
	slog.Info("seeded default categories", "count", len(categories))
	return nil
}

func (s *Store) seedMeals(ctx context.Context) error {
	empty, err := s.isEmpty(ctx, &models.Meal{})
	if err != nil {
		return fmt.Errorf("seed check meals: %w", err)
	}
	if !empty {
		slog.Info("meals already seeded, skipping")
		return nil
	}

	categories, err := s.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("seed load categories: %w", err)
	}
	byName := make(map[string]uint, len(categories))
	for _, c := range categories {
		byName[c.Name] = c.ID
	}

	meals := make([]models.Meal, 0, len(defaultMeals))
	for _, m := range defaultMeals {
		meal := models.Meal{Name: m.name, Price: m.price, Options: m.options}
		if m.description != "" {
			desc := m.description
			meal.Description = &desc
		}
		if id, ok := byName[m.category]; ok {
			meal.CategoryID = &id
		}
		meals = append(meals, meal)
	}
	if err := s.DB.WithContext(ctx).Omit("Category").Create(&meals).Error; err != nil {
		return fmt.Errorf("seed insert meals: %w", err)
	}
	slog.Info("seeded default meals", "count", len(meals))
	return nil
}

func (s *Store) seedAdmin(ctx context.Context, username, password string) error {
	empty, err := s.isEmpty(ctx, &models.Admin{})
	if err != nil {
		return fmt.Errorf("seed check admin: %w", err)
	}
	if !empty {
		slog.Info("admin account already present, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}
	admin := models.Admin{Username: username, PasswordHash: string(hash)}
	if err := s.DB.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}
	slog.Info("seeded default admin account", "username", username)
	return nil
}

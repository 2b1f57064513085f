package store

import (
	"context"
	"testing"
	"time"

	"food-ordering-api/config"
	"food-ordering-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := config.InitDB(config.DBConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return New(db)
}

func uintPtr(v uint) *uint { return &v }

func TestSeed_Idempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Seed(ctx, "admin", "admin123"))
	require.NoError(t, s.Seed(ctx, "admin", "admin123"))

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, len(defaultCategories))

	meals, err := s.ListMeals(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, meals, len(defaultMeals))

	var admins int64
	require.NoError(t, s.DB.Model(&models.Admin{}).Count(&admins).Error)
	assert.Equal(t, int64(1), admins)
}

func TestSeed_AssignsMealsToCategoriesByName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, "admin", "admin123"))

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Equal(t, "Drinks", categories[2].Name)

	drinks, err := s.ListMeals(ctx, &categories[2].ID)
	require.NoError(t, err)
	require.Len(t, drinks, 3)
	for _, m := range drinks {
		assert.Empty(t, m.Options)
		assert.Nil(t, m.Description)
	}

	burgers, err := s.ListMeals(ctx, &categories[0].ID)
	require.NoError(t, err)
	require.Len(t, burgers, 3)
	assert.Equal(t, models.OptionList{"No pickles", "No ketchup"}, burgers[0].Options)
	require.NotNil(t, burgers[0].Description)
}

func TestSeed_HashesAdminPassword(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, "boss", "s3cret"))

	var admin models.Admin
	require.NoError(t, s.DB.Where("username = ?", "boss").First(&admin).Error)
	assert.NotEqual(t, "s3cret", admin.PasswordHash)

	got, err := s.Authenticate(ctx, "boss", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)
}

func TestSeed_DoesNotReseedNonEmptyTable(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateCategory(ctx, "Desserts")
	require.NoError(t, err)
	require.NoError(t, s.Seed(ctx, "admin", "admin123"))

	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Desserts", categories[0].Name)

	meals, err := s.ListMeals(ctx, nil)
	require.NoError(t, err)
	require.Len(t, meals, len(defaultMeals))
	assert.Nil(t, meals[0].CategoryID)
}

func TestAuthenticate_InvalidCredentials(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx, "admin", "admin123"))

	_, err := s.Authenticate(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Authenticate(ctx, "nobody", "admin123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMeal_CreateListRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat, err := s.CreateCategory(ctx, "Burgers")
	require.NoError(t, err)

	desc := "juicy"
	meal := models.Meal{Name: "Burger", Price: 99.5, Description: &desc, Options: models.OptionList{"A", "B"}, CategoryID: &cat.ID}
	require.NoError(t, s.CreateMeal(ctx, &meal))
	require.NotZero(t, meal.ID)

	meals, err := s.ListMeals(ctx, nil)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	got := meals[0]
	assert.Equal(t, meal.ID, got.ID)
	assert.Equal(t, "Burger", got.Name)
	assert.Equal(t, 99.5, got.Price)
	assert.Equal(t, "juicy", *got.Description)
	assert.Equal(t, models.OptionList{"A", "B"}, got.Options)
	assert.Equal(t, cat.ID, *got.CategoryID)
}

func TestMeal_EmptyOptionsStoredAsNull(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	meal := models.Meal{Name: "Cola", Price: 40, Options: models.OptionList{}, CategoryID: uintPtr(1)}
	require.NoError(t, s.CreateMeal(ctx, &meal))

	var nulls int64
	require.NoError(t, s.DB.Model(&models.Meal{}).Where("options_json IS NULL").Count(&nulls).Error)
	assert.Equal(t, int64(1), nulls)

	meals, err := s.ListMeals(ctx, nil)
	require.NoError(t, err)
	assert.NotNil(t, meals[0].Options)
	assert.Empty(t, meals[0].Options)
}

func TestListMeals_Filter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateMeal(ctx, &models.Meal{Name: "a", Price: 1, CategoryID: uintPtr(1)}))
	require.NoError(t, s.CreateMeal(ctx, &models.Meal{Name: "b", Price: 1, CategoryID: uintPtr(2)}))
	require.NoError(t, s.CreateMeal(ctx, &models.Meal{Name: "c", Price: 1, CategoryID: uintPtr(1)}))

	meals, err := s.ListMeals(ctx, uintPtr(1))
	require.NoError(t, err)
	require.Len(t, meals, 2)
	for _, m := range meals {
		assert.Equal(t, uint(1), *m.CategoryID)
	}

	none, err := s.ListMeals(ctx, uintPtr(42))
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestListMeals_MalformedOptionsFails(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DB.Exec("INSERT INTO meals (name, price, options_json) VALUES (?, ?, ?)", "broken", 1, "not json").Error)

	_, err := s.ListMeals(ctx, nil)
	assert.Error(t, err)
}

func TestUpdateMeal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	desc := "old"
	meal := models.Meal{Name: "Old", Price: 10, Description: &desc, Options: models.OptionList{"x"}, CategoryID: uintPtr(1)}
	require.NoError(t, s.CreateMeal(ctx, &meal))

	update := models.Meal{Name: "New", Price: 0, CategoryID: uintPtr(2)}
	require.NoError(t, s.UpdateMeal(ctx, meal.ID, &update))

	meals, err := s.ListMeals(ctx, nil)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, "New", meals[0].Name)
	assert.Equal(t, float64(0), meals[0].Price)
	assert.Nil(t, meals[0].Description)
	assert.Empty(t, meals[0].Options)
	assert.Equal(t, uint(2), *meals[0].CategoryID)

	err = s.UpdateMeal(ctx, 999, &update)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteMeal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	meal := models.Meal{Name: "Gone", Price: 1}
	require.NoError(t, s.CreateMeal(ctx, &meal))
	keep := models.Meal{Name: "Kept", Price: 1}
	require.NoError(t, s.CreateMeal(ctx, &keep))

	assert.ErrorIs(t, s.DeleteMeal(ctx, 999), ErrNotFound)

	require.NoError(t, s.DeleteMeal(ctx, meal.ID))
	meals, err := s.ListMeals(ctx, nil)
	require.NoError(t, err)
	require.Len(t, meals, 1)
	assert.Equal(t, keep.ID, meals[0].ID)

	assert.ErrorIs(t, s.DeleteMeal(ctx, meal.ID), ErrNotFound)
}

func TestCategory_CreateDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateCategory(ctx, "Drinks")
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, "Drinks")
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestCategory_DeleteRestrictedWhileMealsReferenceIt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	cat, err := s.CreateCategory(ctx, "Sides")
	require.NoError(t, err)
	meal := models.Meal{Name: "Fries", Price: 45, CategoryID: &cat.ID}
	require.NoError(t, s.CreateMeal(ctx, &meal))

	assert.ErrorIs(t, s.DeleteCategory(ctx, cat.ID), ErrCategoryInUse)
	categories, err := s.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 1)

	require.NoError(t, s.DeleteMeal(ctx, meal.ID))
	require.NoError(t, s.DeleteCategory(ctx, cat.ID))
	assert.ErrorIs(t, s.DeleteCategory(ctx, cat.ID), ErrNotFound)
}

func TestOrders_NewestFirstWithDecodedItems(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := models.Order{CustomerName: "Table 1", TotalPrice: 40, Items: mustItems(t,
		models.CartLine{Meal: models.MealSnapshot{ID: 6, Name: "Cola", Price: 40}, Quantity: 1},
	)}
	require.NoError(t, s.CreateOrder(ctx, &first))
	second := models.Order{CustomerName: "Table 2", TotalPrice: 1, Items: mustItems(t,
		models.CartLine{Meal: models.MealSnapshot{ID: 1, Name: "Burger", Price: 230}, Quantity: 2},
		models.CartLine{Meal: models.MealSnapshot{ID: 4, Name: "Fries", Price: 45}, Quantity: 1},
	)}
	require.NoError(t, s.CreateOrder(ctx, &second))

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, first.ID, orders[1].ID)
	assert.False(t, orders[0].CreatedAt.Before(orders[1].CreatedAt))
	assert.WithinDuration(t, time.Now(), orders[0].CreatedAt, time.Minute)

	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, float64(1), orders[0].TotalPrice)
	lines, err := orders[1].Items.Lines()
	require.NoError(t, err)
	assert.Equal(t, "Cola", lines[0].Meal.Name)
}

func TestOrders_NullItemsReadAsEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.DB.Exec("INSERT INTO orders (customer_name, total_price, created_at) VALUES (?, ?, ?)", "legacy", 0, time.Now()).Error)

	orders, err := s.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.NotNil(t, orders[0].Items)
	assert.Empty(t, orders[0].Items)
}

func mustItems(t *testing.T, lines ...models.CartLine) models.OrderItems {
	t.Helper()
	items, err := models.NewOrderItems(lines)
	require.NoError(t, err)
	return items
}

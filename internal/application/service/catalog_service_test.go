package service

import (
	"testing"

	"github.com/google/uuid"
	domainRepo "github.com/sangkips/gopos-api/internal/domain/repository"
	"github.com/sangkips/gopos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryNamesIsolatedPerTenant(t *testing.T) {
	env := newTestEnv(t)
	ctxA, _ := env.newTenant(t, "0811")
	ctxB, _ := env.newTenant(t, "0812")

	_, err := env.category.CreateCategory(ctxA, &CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	_, err = env.category.CreateCategory(ctxB, &CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)

	_, err = env.category.CreateCategory(ctxA, &CreateCategoryInput{Name: "Drinks"})
	assertKind(t, err, apperror.KindConflict)

	_, err = env.category.CreateCategory(ctxA, &CreateCategoryInput{Name: "   "})
	assertKind(t, err, apperror.KindBadRequest)
}

func TestUpdateCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newTenant(t, "0811")

	drinks, err := env.category.CreateCategory(ctx, &CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	_, err = env.category.CreateCategory(ctx, &CreateCategoryInput{Name: "Food"})
	require.NoError(t, err)

	_, err = env.category.UpdateCategory(ctx, &UpdateCategoryInput{ID: drinks.ID, Name: "Food"})
	assertKind(t, err, apperror.KindConflict)

	updated, err := env.category.UpdateCategory(ctx, &UpdateCategoryInput{ID: drinks.ID, Name: "Beverages"})
	require.NoError(t, err)
	assert.Equal(t, "Beverages", updated.Name)

	_, err = env.category.UpdateCategory(ctx, &UpdateCategoryInput{ID: uuid.New(), Name: "X"})
	assertKind(t, err, apperror.KindNotFound)
}

func TestCategoryInUseCannotBeDeleted(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newTenant(t, "0811")

	drinks, err := env.category.CreateCategory(ctx, &CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	latte, err := env.items.CreateItem(ctx, &CreateItemInput{CategoryID: drinks.ID, Name: "Latte", Price: 450})
	require.NoError(t, err)

	assertKind(t, env.category.DeleteCategory(ctx, drinks.ID), apperror.KindConflict)

	require.NoError(t, env.items.DeleteItem(ctx, latte.ID))
	require.NoError(t, env.category.DeleteCategory(ctx, drinks.ID))
	assertKind(t, env.category.DeleteCategory(ctx, drinks.ID), apperror.KindNotFound)
}

func TestItemNeedsCategoryOfSameTenant(t *testing.T) {
	env := newTestEnv(t)
	ctxA, _ := env.newTenant(t, "0811")
	ctxB, _ := env.newTenant(t, "0812")

	foreign, err := env.category.CreateCategory(ctxB, &CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)

	_, err = env.items.CreateItem(ctxA, &CreateItemInput{CategoryID: foreign.ID, Name: "Latte", Price: 450})
	assertKind(t, err, apperror.KindNotFound)

	_, err = env.items.CreateItem(ctxB, &CreateItemInput{CategoryID: foreign.ID, Name: "Latte", Price: -1})
	assertKind(t, err, apperror.KindBadRequest)
}

func TestItemUpdateAndListByCategory(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newTenant(t, "0811")

	drinks, err := env.category.CreateCategory(ctx, &CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	food, err := env.category.CreateCategory(ctx, &CreateCategoryInput{Name: "Food"})
	require.NoError(t, err)

	latte, err := env.items.CreateItem(ctx, &CreateItemInput{CategoryID: drinks.ID, Name: "Latte", Price: 450})
	require.NoError(t, err)
	_, err = env.items.CreateItem(ctx, &CreateItemInput{CategoryID: food.ID, Name: "Bagel", Price: 300})
	require.NoError(t, err)

	_, err = env.items.CreateItem(ctx, &CreateItemInput{CategoryID: food.ID, Name: "Latte", Price: 300})
	assertKind(t, err, apperror.KindConflict)

	updated, err := env.items.UpdateItem(ctx, &UpdateItemInput{ID: latte.ID, CategoryID: food.ID, Name: "Oat Latte", Price: 500})
	require.NoError(t, err)
	assert.Equal(t, int64(500), updated.Price)

	inFood, err := env.items.ListItems(ctx, &domainRepo.ItemFilterParams{CategoryID: &food.ID})
	require.NoError(t, err)
	assert.Len(t, inFood, 2)

	inDrinks, err := env.items.ListItems(ctx, &domainRepo.ItemFilterParams{CategoryID: &drinks.ID})
	require.NoError(t, err)
	assert.Empty(t, inDrinks)
}

func TestUpdateStockTurnsTrackingOn(t *testing.T) {
	env := newTestEnv(t)
	ctx, _ := env.newTenant(t, "0811")

	drinks, err := env.category.CreateCategory(ctx, &CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	latte, err := env.items.CreateItem(ctx, &CreateItemInput{CategoryID: drinks.ID, Name: "Latte", Price: 450})
	require.NoError(t, err)
	assert.False(t, latte.TrackStock)

	_, err = env.items.UpdateStock(ctx, latte.ID, -3)
	assertKind(t, err, apperror.KindBadRequest)

	got, err := env.items.UpdateStock(ctx, latte.ID, 12)
	require.NoError(t, err)
	assert.True(t, got.TrackStock)
	assert.Equal(t, 12, got.Stock)
}

func TestModifierCategories(t *testing.T) {
	env := newTestEnv(t)
	ctxA, _ := env.newTenant(t, "0811")
	ctxB, _ := env.newTenant(t, "0812")

	drinks, err := env.category.CreateCategory(ctxA, &CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	food, err := env.category.CreateCategory(ctxA, &CreateCategoryInput{Name: "Food"})
	require.NoError(t, err)
	foreign, err := env.category.CreateCategory(ctxB, &CreateCategoryInput{Name: "Drinks"})
	require.NoError(t, err)

	_, err = env.modifiers.CreateModifier(ctxA, &ModifierInput{Name: "Extra shot", Cost: 50})
	assertKind(t, err, apperror.KindBadRequest)

	_, err = env.modifiers.CreateModifier(ctxA, &ModifierInput{Name: "Extra shot", Cost: 50, CategoryIDs: []uuid.UUID{foreign.ID}})
	assertKind(t, err, apperror.KindNotFound)

	shot, err := env.modifiers.CreateModifier(ctxA, &ModifierInput{Name: "Extra shot", Cost: 50, CategoryIDs: []uuid.UUID{drinks.ID, drinks.ID}})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{drinks.ID}, shot.CategoryIDs())

	_, err = env.modifiers.CreateModifier(ctxA, &ModifierInput{Name: "Extra shot", Cost: 10, CategoryIDs: []uuid.UUID{food.ID}})
	assertKind(t, err, apperror.KindConflict)

	updated, err := env.modifiers.UpdateModifier(ctxA, shot.ID, &ModifierInput{Name: "Extra shot", Cost: 75, CategoryIDs: []uuid.UUID{food.ID}})
	require.NoError(t, err)
	assert.Equal(t, int64(75), updated.Cost)

	inDrinks, err := env.modifiers.ListModifiers(ctxA, &drinks.ID)
	require.NoError(t, err)
	assert.Empty(t, inDrinks)

	inFood, err := env.modifiers.ListModifiers(ctxA, &food.ID)
	require.NoError(t, err)
	require.Len(t, inFood, 1)

	assertKind(t, env.category.DeleteCategory(ctxA, food.ID), apperror.KindConflict)

	require.NoError(t, env.modifiers.DeleteModifier(ctxA, shot.ID))
	assertKind(t, env.modifiers.DeleteModifier(ctxA, shot.ID), apperror.KindNotFound)
}

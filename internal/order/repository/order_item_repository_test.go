package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opply/internal/domain"
	"opply/internal/testutil"
)

func TestOrderItemRepository_InsertAndFindByOrderID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewMySQLOrderRepository(db)
	itemRepo := NewMySQLOrderItemRepository(db)

	buyerID := insertTestBuyer(t, db, "items")
	ingredientID := insertTestIngredient(t, db, "Organic Rolled Oats", "1.85")
	order := insertTestOrder(t, db, orderRepo, buyerID)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	_, err = itemRepo.Insert(context.Background(), tx, domain.OrderItem{
		OrderID:      order.ID,
		IngredientID: ingredientID,
		Quantity:     50,
		UnitPrice:    decimal.RequireFromString("1.85"),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	items, err := itemRepo.FindByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, order.ID, item.OrderID)
	assert.Equal(t, ingredientID, item.IngredientID)
	assert.Equal(t, 50, item.Quantity)
	assert.Equal(t, "1.85", item.UnitPrice.StringFixed(2))
	assert.Equal(t, "92.50", item.LineTotal().StringFixed(2))

	require.NotNil(t, item.Ingredient)
	assert.Equal(t, "Organic Rolled Oats", item.Ingredient.Name)
	assert.Equal(t, "Organic Rolled Oats Supplier", item.Ingredient.SupplierName)
}

func TestOrderItemRepository_PriceSnapshotSurvivesCatalogChange(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewMySQLOrderRepository(db)
	itemRepo := NewMySQLOrderItemRepository(db)

	buyerID := insertTestBuyer(t, db, "snapshot")
	ingredientID := insertTestIngredient(t, db, "Unsalted Butter", "7.50")
	order := insertTestOrder(t, db, orderRepo, buyerID)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = itemRepo.Insert(context.Background(), tx, domain.OrderItem{
		OrderID:      order.ID,
		IngredientID: ingredientID,
		Quantity:     10,
		UnitPrice:    decimal.RequireFromString("7.50"),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	// The supplier raises the list price after the order was placed.
	_, err = db.Exec(`UPDATE ingredients SET price_per_unit = '9.99' WHERE id = ?`, ingredientID)
	require.NoError(t, err)

	items, err := itemRepo.FindByOrderID(context.Background(), order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "7.50", items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "9.99", items[0].Ingredient.PricePerUnit.StringFixed(2))
}

func TestOrderItemRepository_FindByOrderIDs_Grouping(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewMySQLOrderRepository(db)
	itemRepo := NewMySQLOrderItemRepository(db)

	buyerID := insertTestBuyer(t, db, "grouping")
	ingredientID := insertTestIngredient(t, db, "Spelt Flour", "3.40")
	orderA := insertTestOrder(t, db, orderRepo, buyerID)
	orderB := insertTestOrder(t, db, orderRepo, buyerID)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	for _, fixture := range []struct {
		orderID  uint
		quantity int
	}{
		{orderA.ID, 5},
		{orderA.ID, 3},
		{orderB.ID, 7},
	} {
		_, err = itemRepo.Insert(context.Background(), tx, domain.OrderItem{
			OrderID:      fixture.orderID,
			IngredientID: ingredientID,
			Quantity:     fixture.quantity,
			UnitPrice:    decimal.RequireFromString("3.40"),
		})
		require.NoError(t, err)
	}
	require.NoError(t, tx.Commit())

	grouped, err := itemRepo.FindByOrderIDs(context.Background(), []uint{orderA.ID, orderB.ID})
	require.NoError(t, err)
	assert.Len(t, grouped[orderA.ID], 2)
	assert.Len(t, grouped[orderB.ID], 1)
}

func TestOrderItemRepository_FindByOrderIDs_Empty(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	itemRepo := NewMySQLOrderItemRepository(db)

	grouped, err := itemRepo.FindByOrderIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, grouped)
}

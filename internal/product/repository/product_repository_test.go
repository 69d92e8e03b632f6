package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"opply/internal/domain"
	"opply/internal/errors"
	"opply/internal/testutil"
)

func insertTestBuyer(t *testing.T, db *sql.DB, username string) uint {
	t.Helper()

	result, err := db.Exec(`
		INSERT INTO buyers (username, email, password_hash, company_name)
		VALUES (?, ?, 'x', 'Test Buying Co.')
	`, username, username+"@example.com")
	require.NoError(t, err)

	id, err := result.LastInsertId()
	require.NoError(t, err)
	return uint(id)
}

func insertTestIngredient(t *testing.T, db *sql.DB, name, price string) uint {
	t.Helper()

	result, err := db.Exec(`INSERT INTO suppliers (name, description) VALUES (?, '')`, name+" Supplier")
	require.NoError(t, err)
	supplierID, err := result.LastInsertId()
	require.NoError(t, err)

	result, err = db.Exec(`
		INSERT INTO ingredients (supplier_id, name, description, unit, price_per_unit)
		VALUES (?, ?, '', 'kg', ?)
	`, supplierID, name, price)
	require.NoError(t, err)

	id, err := result.LastInsertId()
	require.NoError(t, err)
	return uint(id)
}

func insertTestProduct(t *testing.T, db *sql.DB, repo *MySQLProductRepository, buyerID uint, name string) *domain.Product {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Second)
	product := &domain.Product{
		BuyerID:     buyerID,
		Name:        name,
		Description: "test product",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)

	id, err := repo.Insert(context.Background(), tx, product)
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	product.ID = id
	return product
}

func TestProductRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	buyerID := insertTestBuyer(t, db, "productfind")
	created := insertTestProduct(t, db, repo, buyerID, "Oat Milk")

	product, err := repo.FindByID(context.Background(), created.ID, buyerID)
	require.NoError(t, err)
	assert.Equal(t, "Oat Milk", product.Name)
	assert.Equal(t, buyerID, product.BuyerID)
}

func TestProductRepository_FindByID_OtherBuyersProductReadsAsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	ownerID := insertTestBuyer(t, db, "productowner")
	otherID := insertTestBuyer(t, db, "productother")
	created := insertTestProduct(t, db, repo, ownerID, "Granola")

	product, err := repo.FindByID(context.Background(), created.ID, otherID)
	assert.Nil(t, product)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_Update(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	buyerID := insertTestBuyer(t, db, "productupdate")
	created := insertTestProduct(t, db, repo, buyerID, "Granola")

	created.Name = "Toasted Granola"
	created.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, repo.Update(context.Background(), tx, created))
	require.NoError(t, tx.Commit())

	product, err := repo.FindByID(context.Background(), created.ID, buyerID)
	require.NoError(t, err)
	assert.Equal(t, "Toasted Granola", product.Name)
}

func TestProductRepository_Delete_RemovesRecipe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	productRepo := NewMySQLProductRepository(db)
	recipeRepo := NewMySQLProductIngredientRepository(db)

	buyerID := insertTestBuyer(t, db, "productdelete")
	ingredientID := insertTestIngredient(t, db, "Cacao Powder", "12.50")
	created := insertTestProduct(t, db, productRepo, buyerID, "Protein Bar")

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = recipeRepo.Insert(context.Background(), tx, domain.ProductIngredient{
		ProductID:    created.ID,
		IngredientID: ingredientID,
		Quantity:     decimal.RequireFromString("0.150"),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	require.NoError(t, productRepo.Delete(context.Background(), created.ID, buyerID))

	lines, err := recipeRepo.FindByProductID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestProductRepository_Delete_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLProductRepository(db)
	buyerID := insertTestBuyer(t, db, "deletemissing")

	err := repo.Delete(context.Background(), 9999, buyerID)
	assert.Error(t, err)

	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestProductRepository_RecipeQuantityResolution(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	productRepo := NewMySQLProductRepository(db)
	recipeRepo := NewMySQLProductIngredientRepository(db)

	buyerID := insertTestBuyer(t, db, "quantity")
	ingredientID := insertTestIngredient(t, db, "Vanilla Extract", "85.00")
	created := insertTestProduct(t, db, productRepo, buyerID, "Butter Cake")

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err)
	_, err = recipeRepo.Insert(context.Background(), tx, domain.ProductIngredient{
		ProductID:    created.ID,
		IngredientID: ingredientID,
		Quantity:     decimal.RequireFromString("0.005"),
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	lines, err := recipeRepo.FindByProductID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "0.005", lines[0].Quantity.StringFixed(3))
}

package seed

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	buyerrepo "opply/internal/buyer/repository"
	"opply/internal/domain"
	apperrors "opply/internal/errors"
	ingredientrepo "opply/internal/ingredient/repository"
	orderrepo "opply/internal/order/repository"
	productrepo "opply/internal/product/repository"
	supplierrepo "opply/internal/supplier/repository"
)

const (
	demoUsername = "demo"
	demoPassword = "demo1234"
	demoEmail    = "demo@opply.com"
	demoCompany  = "Demo Buying Co."
)

type ingredientDef struct {
	name         string
	unit         string
	pricePerUnit string
	description  string
}

type supplierDef struct {
	name        string
	description string
	ingredients []ingredientDef
}

var suppliers = []supplierDef{
	{
		name:        "Nordic Grains Co.",
		description: "Specialist grain supplier sourcing from Scandinavian farms. Known for high-quality oats, rye, and ancient grains.",
		ingredients: []ingredientDef{
			{"Organic Rolled Oats", "kg", "1.85", "Whole grain rolled oats, certified organic"},
			{"Dark Rye Flour", "kg", "2.10", "Stone-ground dark rye, rich flavour"},
			{"Spelt Flour", "kg", "3.40", "Ancient grain flour, nutty and nutritious"},
			{"Barley Flakes", "kg", "1.65", "Lightly toasted barley flakes"},
		},
	},
	{
		name:        "Alpine Dairy Collective",
		description: "Premium dairy ingredients sourced from Alpine mountain farms. Specialists in butter, cream, and cultured products.",
		ingredients: []ingredientDef{
			{"Unsalted Butter", "kg", "7.50", "84% fat content, European style"},
			{"Double Cream", "litre", "4.20", "48% fat, pasteurised"},
			{"Full-Fat Milk Powder", "kg", "9.80", "Spray-dried, instant dissolving"},
			{"Cultured Buttermilk Powder", "kg", "11.20", "Adds tang and tenderness to baked goods"},
			{"Whey Protein Concentrate", "kg", "14.50", "80% protein, neutral flavour"},
		},
	},
	{
		name:        "Tropicana Botanicals",
		description: "Importer and distributor of tropical botanicals, spices, and natural flavourings sourced directly from smallholder farms.",
		ingredients: []ingredientDef{
			{"Vanilla Extract", "litre", "85.00", "Pure Madagascar vanilla, 2-fold concentration"},
			{"Cacao Powder", "kg", "12.50", "Dutch-processed, 22-24% fat"},
			{"Coconut Sugar", "kg", "4.80", "Unrefined, low GI sweetener"},
			{"Desiccated Coconut", "kg", "3.20", "Fine grade, unsweetened"},
		},
	},
	{
		name:        "BioSeed Oils",
		description: "Cold-pressed and refined plant oils for food manufacturing. Certified non-GMO, traceable supply chain.",
		ingredients: []ingredientDef{
			{"Sunflower Oil", "litre", "2.10", "High-oleic, refined, neutral flavour"},
			{"Cold-Pressed Rapeseed Oil", "litre", "3.80", "Unrefined, nutty flavour, high omega-3"},
			{"Coconut Oil", "kg", "5.60", "Organic, virgin, unrefined"},
		},
	},
}

// Seeder loads demo data. Running it repeatedly is safe: existing rows are
// reused and order/product fixtures are only created when the buyer has none.
type Seeder struct {
	db             *sql.DB
	buyerRepo      *buyerrepo.MySQLBuyerRepository
	supplierRepo   *supplierrepo.MySQLSupplierRepository
	ingredientRepo *ingredientrepo.MySQLIngredientRepository
	orderRepo      *orderrepo.MySQLOrderRepository
	orderItemRepo  *orderrepo.MySQLOrderItemRepository
	productRepo    *productrepo.MySQLProductRepository
	recipeRepo     *productrepo.MySQLProductIngredientRepository
	logger         *zap.Logger
}

func NewSeeder(db *sql.DB, logger *zap.Logger) *Seeder {
	return &Seeder{
		db:             db,
		buyerRepo:      buyerrepo.NewMySQLBuyerRepository(db),
		supplierRepo:   supplierrepo.NewMySQLSupplierRepository(db),
		ingredientRepo: ingredientrepo.NewMySQLIngredientRepository(db),
		orderRepo:      orderrepo.NewMySQLOrderRepository(db),
		orderItemRepo:  orderrepo.NewMySQLOrderItemRepository(db),
		productRepo:    productrepo.NewMySQLProductRepository(db),
		recipeRepo:     productrepo.NewMySQLProductIngredientRepository(db),
		logger:         logger,
	}
}

func (s *Seeder) Run(ctx context.Context) error {
	buyer, err := s.ensureBuyer(ctx)
	if err != nil {
		return err
	}

	pool, err := s.ensureSuppliers(ctx)
	if err != nil {
		return err
	}

	if err := s.ensureOrders(ctx, buyer.ID, pool); err != nil {
		return err
	}

	if err := s.ensureProducts(ctx, buyer.ID, pool); err != nil {
		return err
	}

	s.logger.Info("seed complete")
	return nil
}

func (s *Seeder) ensureBuyer(ctx context.Context) (*domain.Buyer, error) {
	buyer, err := s.buyerRepo.FindByUsername(ctx, demoUsername)
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(buyer.PasswordHash), []byte(demoPassword)) != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
			if err != nil {
				return nil, fmt.Errorf("hashing demo password: %w", err)
			}
			if err := s.buyerRepo.UpdatePasswordHash(ctx, buyer.ID, string(hash)); err != nil {
				return nil, err
			}
		}
		return buyer, nil
	}
	if _, ok := apperrors.IsNotFoundError(err); !ok {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing demo password: %w", err)
	}

	buyer = &domain.Buyer{
		Username:     demoUsername,
		Email:        demoEmail,
		PasswordHash: string(hash),
		CompanyName:  demoCompany,
		CreatedAt:    time.Now().UTC(),
	}

	id, err := s.buyerRepo.Insert(ctx, buyer)
	if err != nil {
		return nil, err
	}
	buyer.ID = id

	s.logger.Info("created demo buyer", zap.String("username", demoUsername))
	return buyer, nil
}

// ensureSuppliers returns the full ingredient pool in definition order, which
// the order and product fixtures index into.
func (s *Seeder) ensureSuppliers(ctx context.Context) ([]domain.Ingredient, error) {
	var pool []domain.Ingredient

	for _, def := range suppliers {
		supplier, err := s.supplierRepo.FindByName(ctx, def.name)
		if err != nil {
			if _, ok := apperrors.IsNotFoundError(err); !ok {
				return nil, err
			}
			supplier = &domain.Supplier{
				Name:        def.name,
				Description: def.description,
				CreatedAt:   time.Now().UTC(),
			}
			id, err := s.supplierRepo.Insert(ctx, supplier)
			if err != nil {
				return nil, err
			}
			supplier.ID = id
			s.logger.Info("created supplier", zap.String("name", def.name))
		}

		for _, ingDef := range def.ingredients {
			ingredient, err := s.ingredientRepo.FindBySupplierAndName(ctx, supplier.ID, ingDef.name)
			if err != nil {
				if _, ok := apperrors.IsNotFoundError(err); !ok {
					return nil, err
				}
				price, err := decimal.NewFromString(ingDef.pricePerUnit)
				if err != nil {
					return nil, fmt.Errorf("parsing seed price for %s: %w", ingDef.name, err)
				}
				ingredient = &domain.Ingredient{
					SupplierID:   supplier.ID,
					SupplierName: supplier.Name,
					Name:         ingDef.name,
					Description:  ingDef.description,
					Unit:         ingDef.unit,
					PricePerUnit: price,
					CreatedAt:    time.Now().UTC(),
				}
				id, err := s.ingredientRepo.Insert(ctx, ingredient)
				if err != nil {
					return nil, err
				}
				ingredient.ID = id
			}
			pool = append(pool, *ingredient)
		}
	}

	return pool, nil
}

func (s *Seeder) ensureOrders(ctx context.Context, buyerID uint, pool []domain.Ingredient) error {
	count, err := s.orderRepo.CountByBuyer(ctx, buyerID)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	type line struct {
		ingredient domain.Ingredient
		quantity   int
	}

	fixtures := []struct {
		lines       []line
		transitions []domain.OrderStatus
	}{
		{
			lines: []line{{pool[0], 50}, {pool[4], 10}},
		},
		{
			lines:       []line{{pool[8], 2}, {pool[9], 20}, {pool[2], 15}},
			transitions: []domain.OrderStatus{domain.OrderStatusConfirmed},
		},
		{
			lines: []line{{pool[12], 30}, {pool[5], 10}},
			transitions: []domain.OrderStatus{
				domain.OrderStatusConfirmed,
				domain.OrderStatusProcessing,
				domain.OrderStatusShipped,
				domain.OrderStatusDelivered,
			},
		},
	}

	for _, fixture := range fixtures {
		order := domain.NewOrder(buyerID, time.Now().UTC())

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}

		orderID, err := s.orderRepo.Insert(ctx, tx, order)
		if err != nil {
			tx.Rollback()
			return err
		}
		order.ID = orderID

		for _, l := range fixture.lines {
			item := domain.OrderItem{
				OrderID:      orderID,
				IngredientID: l.ingredient.ID,
				Quantity:     l.quantity,
				UnitPrice:    l.ingredient.PricePerUnit,
			}
			if _, err := s.orderItemRepo.Insert(ctx, tx, item); err != nil {
				tx.Rollback()
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing seed order: %w", err)
		}

		for _, target := range fixture.transitions {
			from := order.Status
			if err := order.TransitionTo(target, time.Now().UTC()); err != nil {
				return err
			}
			if err := s.orderRepo.UpdateStatus(ctx, order.ID, buyerID, from, target, order.UpdatedAt); err != nil {
				return err
			}
		}

		s.logger.Info("created seed order",
			zap.Uint("orderId", order.ID),
			zap.String("status", string(order.Status)))
	}

	return nil
}

func (s *Seeder) ensureProducts(ctx context.Context, buyerID uint, pool []domain.Ingredient) error {
	existing, err := s.productRepo.FindByBuyer(ctx, buyerID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	type recipeLine struct {
		poolIndex int
		quantity  string
	}

	fixtures := []struct {
		name        string
		description string
		recipe      []recipeLine
	}{
		{
			name:        "Oat Milk",
			description: "Plant-based milk alternative made from whole grain oats.",
			recipe:      []recipeLine{{0, "0.800"}, {13, "0.050"}},
		},
		{
			name:        "Granola",
			description: "Toasted oat and coconut granola, lightly sweetened.",
			recipe:      []recipeLine{{0, "0.500"}, {12, "0.150"}, {11, "0.100"}, {15, "0.080"}},
		},
		{
			name:        "Chocolate Protein Bar",
			description: "High-protein snack bar with cacao and vanilla.",
			recipe:      []recipeLine{{8, "0.300"}, {10, "0.150"}, {11, "0.100"}, {12, "0.100"}, {9, "0.005"}},
		},
		{
			name:        "Spelt & Rye Loaf",
			description: "Dense, wholesome sourdough-style loaf using ancient grains.",
			recipe:      []recipeLine{{2, "0.300"}, {1, "0.200"}, {3, "0.050"}},
		},
		{
			name:        "Vanilla Butter Cake",
			description: "Classic vanilla sponge made with Alpine butter and spelt flour.",
			recipe:      []recipeLine{{2, "0.250"}, {4, "0.150"}, {11, "0.120"}, {6, "0.050"}, {9, "0.010"}},
		},
	}

	for _, fixture := range fixtures {
		now := time.Now().UTC()
		product := &domain.Product{
			BuyerID:     buyerID,
			Name:        fixture.name,
			Description: fixture.description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("beginning transaction: %w", err)
		}

		productID, err := s.productRepo.Insert(ctx, tx, product)
		if err != nil {
			tx.Rollback()
			return err
		}

		for _, r := range fixture.recipe {
			quantity, err := decimal.NewFromString(r.quantity)
			if err != nil {
				tx.Rollback()
				return fmt.Errorf("parsing seed quantity for %s: %w", fixture.name, err)
			}
			line := domain.ProductIngredient{
				ProductID:    productID,
				IngredientID: pool[r.poolIndex].ID,
				Quantity:     quantity,
			}
			if _, err := s.recipeRepo.Insert(ctx, tx, line); err != nil {
				tx.Rollback()
				return err
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing seed product: %w", err)
		}

		s.logger.Info("created seed product", zap.String("name", fixture.name))
	}

	return nil
}

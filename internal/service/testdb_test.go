package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"electronics-store/internal/client"
	"electronics-store/internal/model"
	"electronics-store/internal/repository"
)

type testEnv struct {
	db *gorm.DB

	products repository.ProductRepository
	orders   repository.OrderRepository
	carts    repository.CartRepository
	users    repository.UserRepository
	sessions repository.SessionRepository

	account AccountService
	catalog CatalogService
	cart    CartService
	order   OrderService
	admin   AdminService

	category *model.Category
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One in-memory sqlite database per test; a second pooled connection
	// would see an empty schema.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, client.Migrate(db))

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	orderService := NewOrderService(db, orderRepo, productRepo, cartRepo, userRepo)

	env := &testEnv{
		db:       db,
		products: productRepo,
		orders:   orderRepo,
		carts:    cartRepo,
		users:    userRepo,
		sessions: sessionRepo,
		account:  NewAccountService(db, userRepo, sessionRepo, cartRepo, "test-secret", time.Hour),
		catalog:  NewCatalogService(categoryRepo, productRepo),
		cart:     NewCartService(db, cartRepo, productRepo),
		order:    orderService,
		admin:    NewAdminService(db, orderRepo, orderService),
	}

	env.category = &model.Category{Slug: "laser-printers", Name: "Laser printers"}
	require.NoError(t, db.Create(env.category).Error)

	return env
}

func (e *testEnv) createUser(t *testing.T, login, password string) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Login:        login,
		Email:        login + "@example.com",
		FirstName:    "Иван",
		LastName:     "Петров",
		PasswordHash: string(hash),
	}
	require.NoError(t, e.db.Create(user).Error)
	require.NoError(t, e.db.Create(&model.UserProfile{UserID: user.ID}).Error)

	return user
}

func (e *testEnv) createProduct(t *testing.T, slug, price string, stock int) *model.Product {
	t.Helper()

	product := &model.Product{
		CategoryID: e.category.ID,
		Name:       slug,
		Slug:       slug,
		Price:      decimal.RequireFromString(price),
		Year:       2023,
		Country:    "Japan",
		Model:      "X-" + slug,
		Stock:      stock,
		InStock:    stock > 0,
	}
	require.NoError(t, e.db.Create(product).Error)

	return product
}

func (e *testEnv) productByID(t *testing.T, productID uint) *model.Product {
	t.Helper()

	var product model.Product
	require.NoError(t, e.db.First(&product, productID).Error)
	return &product
}

func (e *testEnv) setStock(t *testing.T, productID uint, stock int, inStock bool) {
	t.Helper()

	err := e.db.Model(&model.Product{}).Where("id = ?", productID).
		Updates(map[string]interface{}{"stock": stock, "in_stock": inStock}).Error
	require.NoError(t, err)
}

// newCart seeds a cart directly, bypassing the clamping in CartService.Add,
// so tests can model stock that shrank after the items went in.
func (e *testEnv) newCart(t *testing.T, sessionKey string, userID uint, quantities map[uint]int) *model.Cart {
	t.Helper()

	cart := &model.Cart{SessionKey: sessionKey, UserID: userID}
	require.NoError(t, e.db.Create(cart).Error)
	for productID, quantity := range quantities {
		item := &model.CartItem{CartID: cart.ID, ProductID: productID, Quantity: quantity}
		require.NoError(t, e.db.Create(item).Error)
	}

	return cart
}

func (e *testEnv) countRows(t *testing.T, m interface{}) int64 {
	t.Helper()

	var count int64
	require.NoError(t, e.db.Model(m).Count(&count).Error)
	return count
}

package router

// End to end tests: a real engine wired to an in-memory database, driven
// through the HTTP surface only.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Ammar-000/PointOfSale/internal/application/audit"
	catalogapp "github.com/Ammar-000/PointOfSale/internal/application/catalog"
	identityapp "github.com/Ammar-000/PointOfSale/internal/application/identity"
	"github.com/Ammar-000/PointOfSale/internal/application/media"
	orderingapp "github.com/Ammar-000/PointOfSale/internal/application/ordering"
	"github.com/Ammar-000/PointOfSale/internal/domain/catalog"
	"github.com/Ammar-000/PointOfSale/internal/domain/identity"
	"github.com/Ammar-000/PointOfSale/internal/domain/ordering"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/auth"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/config"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/persistence"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/seed"
	"github.com/Ammar-000/PointOfSale/internal/infrastructure/storage"
	"github.com/Ammar-000/PointOfSale/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testServer struct {
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, db.AutoMigrate(
		&identity.User{}, &identity.Role{},
		&catalog.Category{}, &catalog.Product{},
		&ordering.Order{}, &ordering.OrderItem{},
	))

	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Images.BasePath = t.TempDir()
	cfg.JWT.Secret = "test-secret-key-0123456789abcdef-0123"

	log := zap.NewNop()

	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	roleRepo := persistence.NewGormRoleRepository(db)

	stamper := audit.NewStamper(userRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, stamper, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, stamper, log)
	orderService := orderingapp.NewOrderService(orderRepo, stamper, log)
	userService := identityapp.NewUserService(userRepo, roleRepo, stamper, log)
	roleService := identityapp.NewRoleService(roleRepo, stamper, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)

	imageStore, err := storage.NewLocalImageStorage(cfg.Images.BasePath)
	require.NoError(t, err)
	imageService := media.NewImageService(productService, imageStore, log)

	seeder := seed.NewSeeder(userService, roleService, seed.DefaultBootstrapUser(), log)
	require.NoError(t, seeder.Seed(context.Background()))

	engine := New(cfg, jwtService, Handlers{
		Auth:       handler.NewAuthHandler(authService),
		Categories: handler.NewCategoryHandler(categoryService),
		Products:   handler.NewProductHandler(productService, imageService, cfg.Images),
		Orders:     handler.NewOrderHandler(orderService),
		Users:      handler.NewUserHandler(userService),
		Roles:      handler.NewRoleHandler(roleService),
		Waiter:     handler.NewWaiterHandler(categoryService, productService, orderService, imageService, cfg.Images),
	}, log)

	return &testServer{engine: engine}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), "body: %s", w.Body.String())
	}
	return w.Code, env
}

func (s *testServer) login(t *testing.T, userName, password string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/Login", "", map[string]string{
		"userName": userName,
		"password": password,
	})
	require.Equal(t, http.StatusOK, code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func (s *testServer) loginAdmin(t *testing.T) string {
	bootstrap := seed.DefaultBootstrapUser()
	return s.login(t, bootstrap.UserName, bootstrap.Password)
}

// createWaiter provisions a Waiter account through the Admin API and returns
// a token for it.
func (s *testServer) createWaiter(t *testing.T, adminToken string) string {
	t.Helper()
	code, env := s.do(t, http.MethodPost, "/api/Admin/Users", adminToken, map[string]any{
		"userName":  "amira_1",
		"firstName": "Amira",
		"lastName":  "Said",
		"email":     "amira@example.com",
		"password":  "Passw0rd1",
	})
	require.Equal(t, http.StatusCreated, code, "create user: %+v", env.Error)

	var user struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))

	code, env = s.do(t, http.MethodGet, "/api/Admin/Roles/ByName/Waiter", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var role struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &role))

	code, _ = s.do(t, http.MethodPost,
		fmt.Sprintf("/api/Admin/Users/%s/Roles/%s", user.ID, role.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, code)

	return s.login(t, "amira_1", "Passw0rd1")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t)

	code, env := srv.do(t, http.MethodPost, "/api/Login", "", map[string]string{
		"userName": seed.DefaultBootstrapUser().UserName,
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.loginAdmin(t)
	waiterToken := srv.createWaiter(t, adminToken)

	code, _ := srv.do(t, http.MethodPost, "/api/Admin/Categories", waiterToken,
		map[string]string{"name": "Drinks"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = srv.do(t, http.MethodGet, "/api/Admin/Categories", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestCatalogLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.loginAdmin(t)

	code, env := srv.do(t, http.MethodPost, "/api/Admin/Categories", adminToken,
		map[string]string{"name": "Drinks", "description": "Hot and cold drinks"})
	require.Equal(t, http.StatusCreated, code, "create category: %+v", env.Error)
	var category struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &category))

	code, env = srv.do(t, http.MethodPost, "/api/Admin/Products", adminToken, map[string]any{
		"name":       "Espresso",
		"price":      "2.50",
		"categoryId": category.ID,
	})
	require.Equal(t, http.StatusCreated, code, "create product: %+v", env.Error)
	var product struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))

	// deactivate, confirm hidden from default reads, then restore
	code, _ = srv.do(t, http.MethodDelete,
		fmt.Sprintf("/api/Admin/Products/%d", product.ID), adminToken, nil)
	require.Equal(t, http.StatusNoContent, code)

	code, env = srv.do(t, http.MethodGet,
		fmt.Sprintf("/api/Admin/Products/%d", product.ID), adminToken, nil)
	assert.Equal(t, http.StatusNotFound, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	code, _ = srv.do(t, http.MethodPost,
		fmt.Sprintf("/api/Admin/Products/%d/Restore", product.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = srv.do(t, http.MethodGet,
		fmt.Sprintf("/api/Admin/Products/%d", product.ID), adminToken, nil)
	assert.Equal(t, http.StatusOK, code)

	code, env = srv.do(t, http.MethodGet,
		"/api/Admin/Products/Count?filter=name:eq:Espresso", adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var counted struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &counted))
	assert.Equal(t, int64(1), counted.Count)
}

func TestWaiterOrderFlowOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.loginAdmin(t)
	waiterToken := srv.createWaiter(t, adminToken)

	code, env := srv.do(t, http.MethodPost, "/api/Admin/Categories", adminToken,
		map[string]string{"name": "Food"})
	require.Equal(t, http.StatusCreated, code)
	var category struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &category))

	code, env = srv.do(t, http.MethodPost, "/api/Admin/Products", adminToken, map[string]any{
		"name":       "Falafel Wrap",
		"price":      "4.25",
		"categoryId": category.ID,
	})
	require.Equal(t, http.StatusCreated, code)
	var product struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))

	code, env = srv.do(t, http.MethodPost, "/api/Waiter/Orders", waiterToken, map[string]any{
		"tableNumber": 7,
		"orderItems": []map[string]any{
			{"productId": product.ID, "quantity": 2, "productPrice": "4.25"},
		},
	})
	require.Equal(t, http.StatusCreated, code, "create order: %+v", env.Error)
	var order struct {
		ID         int             `json:"id"`
		TotalPrice decimal.Decimal `json:"totalPrice"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &order))
	assert.True(t, order.TotalPrice.Equal(decimal.RequireFromString("8.50")),
		"total %s", order.TotalPrice)

	// resubmitting the full desired state reconciles the item set
	code, env = srv.do(t, http.MethodPut,
		fmt.Sprintf("/api/Waiter/Orders/%d", order.ID), waiterToken, map[string]any{
			"tableNumber": 7,
			"orderItems": []map[string]any{
				{"productId": product.ID, "quantity": 1, "productPrice": "4.25"},
			},
		})
	require.Equal(t, http.StatusOK, code, "update order: %+v", env.Error)

	var updated struct {
		TotalPrice decimal.Decimal `json:"totalPrice"`
		Items      []struct {
			Quantity int `json:"quantity"`
		} `json:"orderItems"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.True(t, updated.TotalPrice.Equal(decimal.RequireFromString("4.25")),
		"total %s", updated.TotalPrice)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 1, updated.Items[0].Quantity)

	code, _ = srv.do(t, http.MethodDelete,
		fmt.Sprintf("/api/Waiter/Orders/%d", order.ID), waiterToken, nil)
	assert.Equal(t, http.StatusNoContent, code)
}

// The waiter surface must expose trimmed views while the admin surface keeps
// the full models with audit stamps and active flags.
func TestWaiterResponsesOmitAuditFields(t *testing.T) {
	srv := newTestServer(t)
	adminToken := srv.loginAdmin(t)
	waiterToken := srv.createWaiter(t, adminToken)

	code, env := srv.do(t, http.MethodPost, "/api/Admin/Categories", adminToken,
		map[string]string{"name": "Sides"})
	require.Equal(t, http.StatusCreated, code)
	var category struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &category))

	code, env = srv.do(t, http.MethodPost, "/api/Admin/Products", adminToken, map[string]any{
		"name":       "Hummus",
		"price":      "3.00",
		"categoryId": category.ID,
	})
	require.Equal(t, http.StatusCreated, code)
	var product struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &product))

	code, env = srv.do(t, http.MethodGet,
		fmt.Sprintf("/api/Waiter/Products/%d", product.ID), waiterToken, nil)
	require.Equal(t, http.StatusOK, code)
	var waiterPayload map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &waiterPayload))
	assert.Contains(t, waiterPayload, "name")
	assert.Contains(t, waiterPayload, "price")
	assert.Contains(t, waiterPayload, "categoryId")
	assert.NotContains(t, waiterPayload, "createdAt")
	assert.NotContains(t, waiterPayload, "createdBy")
	assert.NotContains(t, waiterPayload, "updatedAt")
	assert.NotContains(t, waiterPayload, "isActive")

	code, env = srv.do(t, http.MethodGet,
		fmt.Sprintf("/api/Admin/Products/%d", product.ID), adminToken, nil)
	require.Equal(t, http.StatusOK, code)
	var adminPayload map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &adminPayload))
	assert.Contains(t, adminPayload, "createdBy")
	assert.Contains(t, adminPayload, "isActive")

	code, env = srv.do(t, http.MethodGet, "/api/Waiter/Categories", waiterToken, nil)
	require.Equal(t, http.StatusOK, code)
	var categories []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &categories))
	require.NotEmpty(t, categories)
	assert.NotContains(t, categories[0], "createdBy")
	assert.NotContains(t, categories[0], "isActive")
}

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"landscape-supply-api/config"
	"landscape-supply-api/middleware"
	"landscape-supply-api/models"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-global connection at a fresh in-memory
// database. Max one open connection, or the pool would hand out separate
// empty :memory: databases.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	config.DB = db
	return db
}

// setupRouter mirrors the registrations in routes.SetupRoutes. The routes
// package imports this one, so the tests wire the handlers directly.
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	public := r.Group("/api")
	public.POST("/auth/login", Login)
	public.GET("/lifecycle", GetLifecycleInfo)

	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	auth.GET("/auth/me", Me)
	auth.GET("/jobs", ListJobs)
	auth.GET("/jobs/:id", GetJob)
	auth.PUT("/jobs/:id/complete", middleware.CapabilityRequired(models.CapCompleteJobs), CompleteJob)
	auth.PUT("/users/:id/password", ChangePassword)

	office := r.Group("/api")
	office.Use(middleware.AuthRequired())
	jobs := office.Group("", middleware.CapabilityRequired(models.CapManageJobs))
	jobs.POST("/jobs", CreateJob)
	jobs.PUT("/jobs/:id", UpdateJob)
	jobs.GET("/users/drivers", ListDrivers)
	customers := office.Group("", middleware.CapabilityRequired(models.CapManageCustomers))
	customers.GET("/customers", ListCustomers)
	customers.GET("/customers/search", SearchCustomers)
	customers.POST("/customers", CreateCustomer)
	customers.PUT("/customers/:id", UpdateCustomer)
	products := office.Group("", middleware.CapabilityRequired(models.CapManageProducts))
	products.GET("/products", ListProducts)
	products.GET("/products/active", ListActiveProducts)
	products.GET("/products/pricing/:customerId", CustomerPricing)
	products.POST("/products", CreateProduct)
	products.PUT("/products/:id", UpdateProduct)
	products.DELETE("/products/:id", DeleteProduct)

	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired())
	users := admin.Group("", middleware.CapabilityRequired(models.CapManageUsers))
	users.POST("/auth/register", Register)
	users.GET("/users", ListUsers)
	users.PUT("/users/:id", UpdateUser)
	users.DELETE("/users/:id", DeleteUser)
	admin.DELETE("/jobs/:id", middleware.CapabilityRequired(models.CapDeleteJobs), DeleteJob)

	return r
}

func createTestUser(t *testing.T, username string, role models.Role) (models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := models.User{
		Name:         username,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, config.DB.Create(&user).Error)

	token, err := middleware.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func seedProduct(t *testing.T, name string, unit models.Unit, retail float64, contractor *float64) models.Product {
	t.Helper()

	p := models.Product{Name: name, Unit: unit, RetailPrice: retail, ContractorPrice: contractor, Active: true}
	require.NoError(t, config.DB.Create(&p).Error)
	return p
}

func seedCustomer(t *testing.T, name string, contractor bool) models.Customer {
	t.Helper()

	cust := models.Customer{Name: name, Phone: "555-0100", Contractor: contractor}
	require.NoError(t, config.DB.Create(&cust).Error)
	return cust
}

package routes

import (
	"landscape-supply-api/handlers"
	"landscape-supply-api/middleware"
	"landscape-supply-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/login", handlers.Login)

		// State machine info (great for docs/Postman)
		public.GET("/lifecycle", handlers.GetLifecycleInfo)
	}

	// ── Authenticated routes (any role) ────────────────────────────
	auth := r.Group("/api")
	auth.Use(middleware.AuthRequired())
	{
		auth.GET("/auth/me", handlers.Me)

		// Drivers see only their own assigned jobs; the handlers scope by role
		auth.GET("/jobs", handlers.ListJobs)
		auth.GET("/jobs/:id", handlers.GetJob)
		auth.PUT("/jobs/:id/complete", middleware.CapabilityRequired(models.CapCompleteJobs), handlers.CompleteJob)

		// Password changes: self-service, or admin resetting someone else's
		auth.PUT("/users/:id/password", handlers.ChangePassword)
	}

	// ── Office routes (office + admin) ─────────────────────────────
	office := r.Group("/api")
	office.Use(middleware.AuthRequired())
	{
		jobs := office.Group("", middleware.CapabilityRequired(models.CapManageJobs))
		{
			jobs.POST("/jobs", handlers.CreateJob)
			jobs.PUT("/jobs/:id", handlers.UpdateJob)
			jobs.GET("/users/drivers", handlers.ListDrivers)
		}

		customers := office.Group("", middleware.CapabilityRequired(models.CapManageCustomers))
		{
			customers.GET("/customers", handlers.ListCustomers)
			customers.GET("/customers/search", handlers.SearchCustomers)
			customers.POST("/customers", handlers.CreateCustomer)
			customers.PUT("/customers/:id", handlers.UpdateCustomer)
		}

		products := office.Group("", middleware.CapabilityRequired(models.CapManageProducts))
		{
			products.GET("/products", handlers.ListProducts)
			products.GET("/products/active", handlers.ListActiveProducts)
			products.GET("/products/pricing/:customerId", handlers.CustomerPricing)
			products.POST("/products", handlers.CreateProduct)
			products.PUT("/products/:id", handlers.UpdateProduct)
			products.DELETE("/products/:id", handlers.DeleteProduct)
		}
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(middleware.AuthRequired())
	{
		users := admin.Group("", middleware.CapabilityRequired(models.CapManageUsers))
		{
			users.POST("/auth/register", handlers.Register)
			users.GET("/users", handlers.ListUsers)
			users.PUT("/users/:id", handlers.UpdateUser)
			users.DELETE("/users/:id", handlers.DeleteUser)
		}

		admin.DELETE("/jobs/:id", middleware.CapabilityRequired(models.CapDeleteJobs), handlers.DeleteJob)
	}
}

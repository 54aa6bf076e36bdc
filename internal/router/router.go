package router

import (
	"time"

	"sportclub/internal/config"
	"sportclub/internal/handler"
	"sportclub/internal/middleware"
	"sportclub/internal/repository"
	"sportclub/internal/service"
	"sportclub/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	orgRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	athleteRepo := repository.NewAthleteRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	waitlistRepo := repository.NewWaitlistRepository(db)
	registerRepo := repository.NewCashRegisterRepository(db)
	productRepo := repository.NewProductRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	athleteSvc := service.NewAthleteService(athleteRepo)
	groupSvc := service.NewGroupService(groupRepo)
	waitlistSvc := service.NewWaitlistService(waitlistRepo, athleteRepo, groupRepo, dispatcher)
	registerSvc := service.NewCashRegisterService(registerRepo, productRepo, paymentRepo, rdb)
	productSvc := service.NewProductService(productRepo)
	financeSvc := service.NewFinanceService(expenseRepo, paymentRepo, registerRepo, athleteRepo, dispatcher, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	athletesH := handler.NewAthleteHandler(athleteSvc)
	groupsH := handler.NewGroupHandler(groupSvc)
	waitlistH := handler.NewWaitlistHandler(waitlistSvc)
	registerH := handler.NewCashRegisterHandler(registerSvc, orgRepo, cfg.PDFStoragePath)
	productsH := handler.NewProductHandler(productSvc)
	financeH := handler.NewFinanceHandler(financeSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: staff, manager, admin — declared per-endpoint
		anyStaff := middleware.RequireRole("staff", "manager", "admin")
		managers := middleware.RequireRole("manager", "admin")
		admins := middleware.RequireRole("admin")

		athletes := v1.Group("/athletes")
		{
			athletes.GET("", anyStaff, athletesH.List)
			athletes.GET("/:id", anyStaff, athletesH.Get)
			athletes.POST("", anyStaff, athletesH.Create)
			athletes.PUT("/:id", anyStaff, athletesH.Update)
			athletes.DELETE("/:id", managers, athletesH.Delete)
		}

		groups := v1.Group("/groups")
		{
			groups.GET("", anyStaff, groupsH.List)
			groups.GET("/:id", anyStaff, groupsH.Get)
			groups.GET("/:id/members", anyStaff, groupsH.ListMembers)
			groups.POST("", managers, groupsH.Create)
			groups.PUT("/:id", managers, groupsH.Update)
			groups.DELETE("/:id", managers, groupsH.Deactivate)
		}

		waitlist := v1.Group("/waitlist")
		{
			waitlist.GET("", anyStaff, waitlistH.List)
			waitlist.POST("", anyStaff, waitlistH.Create)
			waitlist.POST("/:id/assign", anyStaff, waitlistH.Assign)
			waitlist.DELETE("/:id", anyStaff, waitlistH.Delete)
			waitlist.POST("/bulk-delete", managers, waitlistH.BulkDelete)
			waitlist.POST("/bulk-priority", managers, waitlistH.BulkUpdatePriority)
		}

		register := v1.Group("/cash-register")
		{
			register.POST("/open", anyStaff, registerH.Open)
			register.POST("/:id/close", anyStaff, registerH.Close)
			register.POST("/movements", anyStaff, registerH.AddMovement)
			register.GET("/summary", anyStaff, registerH.DailySummary)
			register.GET("/:id/movements", anyStaff, registerH.ListMovements)
			register.GET("/:id/report.pdf", anyStaff, registerH.Report)
			register.GET("/history", managers, registerH.History)
		}

		products := v1.Group("/products")
		{
			products.GET("", anyStaff, productsH.List)
			products.GET("/:id", anyStaff, productsH.Get)
			products.GET("/:id/stock-history", anyStaff, productsH.StockHistory)
			products.POST("", managers, productsH.Create)
			products.PUT("/:id", managers, productsH.Update)
			products.DELETE("/:id", managers, productsH.Delete)
			products.POST("/:id/stock", managers, productsH.AdjustStock)
		}

		v1.POST("/expenses", anyStaff, financeH.CreateExpense)
		v1.GET("/expenses", anyStaff, financeH.ListExpenses)
		v1.POST("/payments", anyStaff, financeH.CreatePayment)
		v1.GET("/payments", anyStaff, financeH.ListPayments)

		users := v1.Group("/users", admins)
		{
			users.POST("", authH.CreateUser)
			users.GET("", authH.ListUsers)
			users.PUT("/:id", authH.UpdateUser)
			users.DELETE("/:id", authH.DeactivateUser)
			users.PATCH("/:id/reactivate", authH.ReactivateUser)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}

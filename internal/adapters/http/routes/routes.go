package routes

import (
	"tanzanex-lend/internal/adapters/http/handlers"
	"tanzanex-lend/internal/adapters/http/middleware"
	"tanzanex-lend/internal/adapters/persistence/repositories"
	"tanzanex-lend/internal/config"
	"tanzanex-lend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) *services.SubscriptionService {
	// Initialize repositories
	orgRepo := repositories.NewOrganizationRepository(db)
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	borrowerRepo := repositories.NewBorrowerRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	repaymentRepo := repositories.NewRepaymentRepository(db)
	expenseRepo := repositories.NewExpenseRepository(db)
	cashFlowRepo := repositories.NewCashFlowRepository(db)
	groupRepo := repositories.NewGroupRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, orgRepo, cfg)
	borrowerService := services.NewBorrowerService(borrowerRepo)
	loanService := services.NewLoanService(loanRepo, repaymentRepo, borrowerRepo)
	expenseService := services.NewExpenseService(expenseRepo)
	cashFlowService := services.NewCashFlowService(cashFlowRepo, expenseRepo, repaymentRepo)
	staffService := services.NewStaffService(userRepo)
	groupService := services.NewGroupService(groupRepo, borrowerRepo)
	subscriptionService := services.NewSubscriptionService(orgRepo)
	organizationService := services.NewOrganizationService(orgRepo)
	dashboardService := services.NewDashboardService(loanRepo, repaymentRepo, expenseRepo, cashFlowRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	borrowerHandler := handlers.NewBorrowerHandler(borrowerService)
	loanHandler := handlers.NewLoanHandler(loanService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	cashFlowHandler := handlers.NewCashFlowHandler(cashFlowService)
	staffHandler := handlers.NewStaffHandler(staffService)
	groupHandler := handlers.NewGroupHandler(groupService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)

	// ============================================================
	// Public routes
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api")
	v1 := api.Group("/v1")
	v1.Get("/", healthHandler.APIInfo)

	// ============================================================
	// Auth routes
	// ============================================================
	auth := v1.Group("/auth")
	auth.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	auth.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/logout", authHandler.Logout)
	auth.Post("/logout-all", middleware.AuthMiddleware(cfg), authHandler.LogoutAll)
	auth.Get("/me", middleware.AuthMiddleware(cfg), authHandler.Me)

	// ============================================================
	// Tenant routes. Everything below requires a valid token and a
	// resolved organization; the data surfaces additionally sit
	// behind the subscription gate.
	// ============================================================
	authed := v1.Group("",
		middleware.AuthMiddleware(cfg),
		middleware.RequireOrganization(),
	)

	// Subscription status stays reachable while locked
	authed.Get("/subscription/status", subscriptionHandler.Status)

	gated := authed.Group("", middleware.SubscriptionGate(subscriptionService))

	// Borrowers
	borrowers := gated.Group("/borrowers")
	borrowers.Post("/", borrowerHandler.Create)
	borrowers.Get("/", borrowerHandler.List)
	borrowers.Get("/:id", borrowerHandler.GetByID)

	// Loans & repayments
	loans := gated.Group("/loans")
	loans.Post("/", loanHandler.Create)
	loans.Get("/", loanHandler.List)
	loans.Get("/:id", loanHandler.GetByID)
	loans.Post("/:id/repayments", loanHandler.Repay)
	gated.Post("/repayments", loanHandler.CreateRepayment)
	gated.Get("/repayments", loanHandler.ListRepayments)

	// Expenses
	expenses := gated.Group("/expenses")
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)

	// Manual cash flow & combined feed. Any role records entries,
	// reading the books is for managers and admins.
	cashflow := gated.Group("/cashflow")
	cashflow.Post("/", cashFlowHandler.Create)
	cashflow.Get("/", middleware.ManagerOrAdmin(), cashFlowHandler.List)
	cashflow.Get("/transactions", middleware.ManagerOrAdmin(), cashFlowHandler.Feed)

	// Collection groups
	groups := gated.Group("/groups")
	groups.Post("/", groupHandler.Create)
	groups.Get("/", groupHandler.List)
	groups.Get("/:id", groupHandler.GetByID)
	groups.Post("/:id/members", groupHandler.AddMember)
	groups.Delete("/:id/members", groupHandler.RemoveMember)

	// Staff management (admins only)
	staff := gated.Group("/staff", middleware.AdminOnly())
	staff.Post("/", staffHandler.Create)
	staff.Get("/", staffHandler.List)
	staff.Put("/:id", staffHandler.Update)
	staff.Delete("/:id", staffHandler.Delete)

	// Dashboard & reports
	dashboard := gated.Group("/dashboard")
	dashboard.Get("/metrics", dashboardHandler.Metrics)
	dashboard.Get("/reports", dashboardHandler.Report)
	dashboard.Get("/aging", dashboardHandler.Aging)
	dashboard.Get("/today-transactions", dashboardHandler.TodayTransactions)
	dashboard.Get("/loans-repayments", dashboardHandler.LoansVsRepayments)

	// ============================================================
	// Platform-operator routes. Reachable with a super-admin token
	// or the service key header; never tenant scoped.
	// ============================================================
	admin := v1.Group("/admin",
		middleware.OptionalAuth(cfg),
		middleware.ServiceKeyMiddleware(cfg),
	)
	admin.Get("/organizations", organizationHandler.List)
	admin.Get("/organizations/:id", organizationHandler.GetByID)
	admin.Post("/organizations/:id/activate", organizationHandler.Activate)
	admin.Post("/organizations/:id/suspend", organizationHandler.Suspend)
	admin.Post("/organizations/:id/archive", organizationHandler.Archive)
	admin.Post("/organizations/:id/restore", organizationHandler.Restore)

	return subscriptionService
}

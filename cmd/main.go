package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"garagedesk/internal/authz"
	"garagedesk/internal/caching"
	"garagedesk/internal/handlers"
	"garagedesk/internal/jobs"
	"garagedesk/internal/middleware"
	"garagedesk/internal/repositories"
	"garagedesk/internal/services"
	"garagedesk/pkg/database"
)

func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is required")
	}
	tokenTTL := envInt("TOKEN_TTL_SECONDS", 900)
	refreshTTL := envInt("REFRESH_TTL_SECONDS", 7*24*3600)

	redisAddr := envString("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := envInt("REDIS_DB", 0)

	minioEndpoint := envString("MINIO_ENDPOINT", "localhost:9000")
	minioAccessKey := envString("MINIO_ACCESS_KEY", "minioadmin")
	minioSecretKey := envString("MINIO_SECRET_KEY", "minioadmin")
	minioBucket := envString("MINIO_BUCKET", "garagedesk-attachments")
	minioSSL := os.Getenv("MINIO_USE_SSL") == "true"

	storageSvc, err := services.NewStorageService(minioEndpoint, minioAccessKey, minioSecretKey, minioBucket, minioSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARNING: could not ensure storage bucket: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	tenantRepo := repositories.NewTenantRepository(pool)
	permRepo := repositories.NewModulePermissionRepository(pool)
	invitationRepo := repositories.NewInvitationRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	vehicleRepo := repositories.NewVehicleRepository(pool)
	orderRepo := repositories.NewServiceOrderRepository(pool)
	inventoryRepo := repositories.NewInventoryRepository(pool)
	purchaseRepo := repositories.NewPurchaseRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	onboardingRepo := repositories.NewOnboardingRepository(pool)
	chatRepo := repositories.NewChatRepository(pool)
	attachmentRepo := repositories.NewAttachmentRepository(pool)
	auditRepo := repositories.NewAuditLogsRepository(pool)

	// Services
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)
	authSvc := services.NewAuthService(cacheSvc, jwtSecret, tokenTTL, refreshTTL)
	permSvc := services.NewPermissionService(userRepo, permRepo, cacheSvc)
	tenantSvc := services.NewTenantService(tenantRepo, userRepo, permSvc)
	usersSvc := services.NewUsersService(userRepo, permRepo, tenantSvc, authSvc, permSvc)
	invitationSvc := services.NewInvitationService(invitationRepo, userRepo, permRepo, permSvc)
	customersSvc := services.NewCustomersService(customerRepo, permSvc)
	vehiclesSvc := services.NewVehiclesService(vehicleRepo, customerRepo, permSvc)
	ordersSvc := services.NewServiceOrdersService(orderRepo, customerRepo, vehicleRepo, permSvc)
	inventorySvc := services.NewInventoryService(inventoryRepo, permSvc)
	purchasesSvc := services.NewPurchasesService(purchaseRepo, supplierRepo, inventoryRepo, permSvc)
	suppliersSvc := services.NewSuppliersService(supplierRepo, permSvc)
	onboardingSvc := services.NewOnboardingService(onboardingRepo)
	responder := services.NewRuleResponder(orderRepo, inventoryRepo, customerRepo)
	chatSvc := services.NewChatService(chatRepo, responder)
	attachmentsSvc := services.NewAttachmentsService(attachmentRepo, orderRepo, storageSvc, permSvc)
	auditSvc := services.NewAuditLogsService(auditRepo, permSvc)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(usersSvc, authSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc)
	teamHandlers := handlers.NewTeamHandlers(usersSvc, permSvc)
	invitationHandlers := handlers.NewInvitationHandlers(invitationSvc)
	customerHandlers := handlers.NewCustomerHandlers(customersSvc)
	vehicleHandlers := handlers.NewVehicleHandlers(vehiclesSvc)
	orderHandlers := handlers.NewServiceOrderHandlers(ordersSvc, attachmentsSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc)
	purchaseHandlers := handlers.NewPurchaseHandlers(purchasesSvc)
	supplierHandlers := handlers.NewSupplierHandlers(suppliersSvc)
	chatHandlers := handlers.NewChatHandlers(chatSvc)
	onboardingHandlers := handlers.NewOnboardingHandlers(onboardingSvc)
	auditHandlers := handlers.NewAuditLogsHandlers(auditSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, storageSvc)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.CORS())

	// Health probes
	e.GET("/health", healthHandlers.Liveness)
	e.GET("/health/ready", healthHandlers.Readiness)
	e.GET("/health/detailed", healthHandlers.Detailed)

	// Public auth routes
	e.POST("/v1/auth/signup", authHandlers.Signup)
	e.POST("/v1/auth/login", authHandlers.Login)
	e.POST("/v1/auth/refresh", authHandlers.Refresh)

	// Protected routes
	jwtMw := middleware.JWTMiddleware(authSvc)
	permMw := middleware.NewPermissionMiddleware(permSvc)
	auditMw := middleware.NewAuditMiddleware(auditSvc)

	v1 := e.Group("/v1", jwtMw, auditMw.Capture())

	v1.GET("/me", authHandlers.Me)

	v1.GET("/tenant", tenantHandlers.Get)
	v1.PUT("/tenant", tenantHandlers.Update, permMw.Require(authz.ModuleSettings, authz.ActionUpdate))

	v1.GET("/team/members", teamHandlers.ListMembers, permMw.Require(authz.ModuleTeam, authz.ActionRead))
	v1.DELETE("/team/members/:id", teamHandlers.RemoveMember, permMw.Require(authz.ModuleTeam, authz.ActionDelete))
	v1.GET("/team/members/:id/permissions", teamHandlers.GetPermissions, permMw.Require(authz.ModuleTeam, authz.ActionRead))
	v1.PUT("/team/members/:id/permissions", teamHandlers.SetPermissions, permMw.Require(authz.ModuleTeam, authz.ActionUpdate))

	v1.POST("/invitations", invitationHandlers.Create, permMw.Require(authz.ModuleTeam, authz.ActionCreate))
	v1.GET("/invitations", invitationHandlers.List, permMw.Require(authz.ModuleTeam, authz.ActionRead))
	v1.POST("/invitations/:id/accept", invitationHandlers.Accept)
	v1.DELETE("/invitations/:id", invitationHandlers.Cancel, permMw.Require(authz.ModuleTeam, authz.ActionDelete))

	v1.GET("/customers", customerHandlers.List, permMw.Require(authz.ModuleCustomers, authz.ActionRead))
	v1.GET("/customers/:id", customerHandlers.Get, permMw.Require(authz.ModuleCustomers, authz.ActionRead))
	v1.POST("/customers", customerHandlers.Create, permMw.Require(authz.ModuleCustomers, authz.ActionCreate))
	v1.PUT("/customers/:id", customerHandlers.Update, permMw.Require(authz.ModuleCustomers, authz.ActionUpdate))
	v1.DELETE("/customers/:id", customerHandlers.Delete, permMw.Require(authz.ModuleCustomers, authz.ActionDelete))

	v1.GET("/vehicles", vehicleHandlers.List, permMw.Require(authz.ModuleVehicles, authz.ActionRead))
	v1.GET("/vehicles/:id", vehicleHandlers.Get, permMw.Require(authz.ModuleVehicles, authz.ActionRead))
	v1.POST("/vehicles", vehicleHandlers.Create, permMw.Require(authz.ModuleVehicles, authz.ActionCreate))
	v1.PUT("/vehicles/:id", vehicleHandlers.Update, permMw.Require(authz.ModuleVehicles, authz.ActionUpdate))
	v1.DELETE("/vehicles/:id", vehicleHandlers.Delete, permMw.Require(authz.ModuleVehicles, authz.ActionDelete))

	v1.GET("/service-orders", orderHandlers.List, permMw.Require(authz.ModuleServiceOrders, authz.ActionRead))
	v1.GET("/service-orders/:id", orderHandlers.Get, permMw.Require(authz.ModuleServiceOrders, authz.ActionRead))
	v1.POST("/service-orders", orderHandlers.Create, permMw.Require(authz.ModuleServiceOrders, authz.ActionCreate))
	v1.PUT("/service-orders/:id", orderHandlers.Update, permMw.Require(authz.ModuleServiceOrders, authz.ActionUpdate))
	v1.PUT("/service-orders/:id/status", orderHandlers.UpdateStatus, permMw.Require(authz.ModuleServiceOrders, authz.ActionUpdate))
	v1.DELETE("/service-orders/:id", orderHandlers.Delete, permMw.Require(authz.ModuleServiceOrders, authz.ActionDelete))
	v1.POST("/service-orders/:id/attachments", orderHandlers.UploadAttachment, permMw.Require(authz.ModuleServiceOrders, authz.ActionUpdate))
	v1.GET("/service-orders/:id/attachments", orderHandlers.ListAttachments, permMw.Require(authz.ModuleServiceOrders, authz.ActionRead))
	v1.GET("/attachments/:id/url", orderHandlers.AttachmentURL, permMw.Require(authz.ModuleServiceOrders, authz.ActionRead))
	v1.DELETE("/attachments/:id", orderHandlers.DeleteAttachment, permMw.Require(authz.ModuleServiceOrders, authz.ActionUpdate))

	v1.GET("/inventory", inventoryHandlers.List, permMw.Require(authz.ModuleInventory, authz.ActionRead))
	v1.GET("/inventory/:id", inventoryHandlers.Get, permMw.Require(authz.ModuleInventory, authz.ActionRead))
	v1.POST("/inventory", inventoryHandlers.Create, permMw.Require(authz.ModuleInventory, authz.ActionCreate))
	v1.PUT("/inventory/:id", inventoryHandlers.Update, permMw.Require(authz.ModuleInventory, authz.ActionUpdate))
	v1.POST("/inventory/:id/adjust", inventoryHandlers.AdjustQuantity, permMw.Require(authz.ModuleInventory, authz.ActionUpdate))
	v1.DELETE("/inventory/:id", inventoryHandlers.Delete, permMw.Require(authz.ModuleInventory, authz.ActionDelete))

	v1.GET("/purchases", purchaseHandlers.List, permMw.Require(authz.ModulePurchases, authz.ActionRead))
	v1.GET("/purchases/:id", purchaseHandlers.Get, permMw.Require(authz.ModulePurchases, authz.ActionRead))
	v1.POST("/purchases", purchaseHandlers.Create, permMw.Require(authz.ModulePurchases, authz.ActionCreate))
	v1.PUT("/purchases/:id", purchaseHandlers.Update, permMw.Require(authz.ModulePurchases, authz.ActionUpdate))
	v1.POST("/purchases/:id/receive", purchaseHandlers.Receive, permMw.Require(authz.ModulePurchases, authz.ActionUpdate))
	v1.POST("/purchases/:id/cancel", purchaseHandlers.Cancel, permMw.Require(authz.ModulePurchases, authz.ActionUpdate))
	v1.DELETE("/purchases/:id", purchaseHandlers.Delete, permMw.Require(authz.ModulePurchases, authz.ActionDelete))

	v1.GET("/suppliers", supplierHandlers.List, permMw.Require(authz.ModuleSuppliers, authz.ActionRead))
	v1.GET("/suppliers/:id", supplierHandlers.Get, permMw.Require(authz.ModuleSuppliers, authz.ActionRead))
	v1.POST("/suppliers", supplierHandlers.Create, permMw.Require(authz.ModuleSuppliers, authz.ActionCreate))
	v1.PUT("/suppliers/:id", supplierHandlers.Update, permMw.Require(authz.ModuleSuppliers, authz.ActionUpdate))
	v1.DELETE("/suppliers/:id", supplierHandlers.Delete, permMw.Require(authz.ModuleSuppliers, authz.ActionDelete))

	v1.POST("/assistant/messages", chatHandlers.Send)
	v1.GET("/assistant/messages", chatHandlers.History)

	v1.GET("/onboarding", onboardingHandlers.Get)
	v1.PUT("/onboarding", onboardingHandlers.MarkStep, permMw.Require(authz.ModuleSettings, authz.ActionUpdate))

	v1.GET("/audit-logs", auditHandlers.List, permMw.Require(authz.ModuleSettings, authz.ActionRead))

	// Background jobs
	scheduler, err := jobs.NewScheduler(invitationRepo, inventoryRepo, tenantRepo)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()

	port := envString("PORT", "8080")
	go func() {
		if err := e.Start(":" + port); err != nil {
			log.Printf("server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := scheduler.Stop(); err != nil {
		log.Printf("scheduler shutdown: %v", err)
	}
	if err := e.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

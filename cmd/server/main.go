package main

import (
	"context"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"pawtrack/internal/auth"
	"pawtrack/internal/authz"
	"pawtrack/internal/config"
	"pawtrack/internal/domain/models"
	"pawtrack/internal/handler"
	"pawtrack/internal/jobs"
	"pawtrack/internal/mail"
	"pawtrack/internal/middleware"
	"pawtrack/internal/nutrition"
	"pawtrack/internal/repository/postgres"
	"pawtrack/internal/service"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		log.Fatalf("Failed to create token service: %v", err)
	}

	// Create pgx connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected",
		"max_conns", 25,
		"min_conns", 5,
	)

	tables := postgres.NewTableNames(cfg.TablePrefix)

	// Create repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	userRepo := postgres.NewUserRepository(repoConfig)
	petRepo := postgres.NewPetRepository(repoConfig)
	vaccRepo := postgres.NewVaccinationRepository(repoConfig)
	apptRepo := postgres.NewAppointmentRepository(repoConfig)
	expenseRepo := postgres.NewExpenseRepository(repoConfig)
	healthLogRepo := postgres.NewHealthLogRepository(repoConfig)
	activityRepo := postgres.NewActivityRepository(repoConfig)
	policyRepo := postgres.NewPolicyRepository(repoConfig)
	subRepo := postgres.NewSubscriptionRepository(repoConfig)
	postRepo := postgres.NewPostRepository(repoConfig)
	playdateRepo := postgres.NewPlaydateRepository(repoConfig)
	notifRepo := postgres.NewNotificationRepository(repoConfig)

	// The ownership gate backs every per-resource authorization decision.
	gate := authz.NewGate(postgres.NewOwnershipResolver(repoConfig))

	planner, err := nutrition.NewPlanner()
	if err != nil {
		log.Fatalf("Failed to load nutrition guidelines: %v", err)
	}

	mailer := newMailer(cfg, logger)

	// Create services
	authService := service.NewAuthService(userRepo, tokens, logger)
	userService := service.NewUserService(userRepo, gate, logger)
	petService := service.NewPetService(petRepo, gate, logger)
	vaccService := service.NewVaccinationService(vaccRepo, gate, logger)
	apptService := service.NewAppointmentService(apptRepo, gate, logger)
	expenseService := service.NewExpenseService(expenseRepo, gate, logger)
	healthService := service.NewHealthService(healthLogRepo, gate, logger)
	activityService := service.NewActivityService(activityRepo, gate, logger)
	insuranceService := service.NewInsuranceService(policyRepo, subRepo, gate, logger)
	postService := service.NewPostService(postRepo, gate, logger)
	playdateService := service.NewPlaydateService(playdateRepo, notifRepo, gate, logger)
	notifService := service.NewNotificationService(notifRepo, gate, logger)
	dashboardService := service.NewDashboardService(userRepo, petRepo, vaccRepo, apptRepo, expenseRepo, subRepo, gate, logger)
	nutritionService := service.NewNutritionService(petRepo, planner, gate, logger)

	// Create handlers
	authHandler := handler.NewAuthHandler(authService, logger)
	userHandler := handler.NewUserHandler(userService, logger)
	petHandler := handler.NewPetHandler(petService, logger)
	vaccHandler := handler.NewVaccinationHandler(vaccService, logger)
	apptHandler := handler.NewAppointmentHandler(apptService, logger)
	expenseHandler := handler.NewExpenseHandler(expenseService, logger)
	healthHandler := handler.NewHealthHandler(healthService, logger)
	activityHandler := handler.NewActivityHandler(activityService, logger)
	insuranceHandler := handler.NewInsuranceHandler(insuranceService, logger)
	postHandler := handler.NewPostHandler(postService, logger)
	playdateHandler := handler.NewPlaydateHandler(playdateService, logger)
	notifHandler := handler.NewNotificationHandler(notifService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)
	nutritionHandler := handler.NewNutritionHandler(nutritionService, logger)

	logger.Info("services initialized")

	// Background sweeps (playdate expiry, vaccination reminders)
	sweeper := jobs.NewSweeper(playdateService, vaccRepo, mailer, logger)
	if err := sweeper.Start(); err != nil {
		log.Fatalf("Failed to start background sweeps: %v", err)
	}
	defer sweeper.Stop()

	// Authenticated routes (Go 1.22+ enhanced patterns)
	api := http.NewServeMux()
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	// Profile routes
	api.HandleFunc("GET /api/users/me", userHandler.Me)
	api.HandleFunc("PUT /api/users/me", userHandler.UpdateMe)

	// User administration (admin only)
	api.Handle("GET /api/users", adminOnly(http.HandlerFunc(userHandler.List)))
	api.Handle("DELETE /api/users/{id}", adminOnly(http.HandlerFunc(userHandler.Delete)))

	// Pet routes
	api.HandleFunc("POST /api/pets", petHandler.Create)
	api.HandleFunc("GET /api/pets", petHandler.List)
	api.HandleFunc("GET /api/pets/{id}", petHandler.Get)
	api.HandleFunc("PUT /api/pets/{id}", petHandler.Update)
	api.HandleFunc("DELETE /api/pets/{id}", petHandler.Delete)

	// Vaccination routes
	api.HandleFunc("POST /api/vaccinations", vaccHandler.Create)
	api.HandleFunc("GET /api/vaccinations", vaccHandler.List)
	api.HandleFunc("GET /api/vaccinations/{id}", vaccHandler.Get)
	api.HandleFunc("PUT /api/vaccinations/{id}", vaccHandler.Update)
	api.HandleFunc("DELETE /api/vaccinations/{id}", vaccHandler.Delete)

	// Appointment routes
	api.HandleFunc("POST /api/appointments", apptHandler.Create)
	api.HandleFunc("GET /api/appointments", apptHandler.List)
	api.HandleFunc("GET /api/appointments/{id}", apptHandler.Get)
	api.HandleFunc("PUT /api/appointments/{id}", apptHandler.Update)
	api.HandleFunc("DELETE /api/appointments/{id}", apptHandler.Delete)

	// Expense routes
	api.HandleFunc("POST /api/expenses", expenseHandler.Create)
	api.HandleFunc("GET /api/expenses", expenseHandler.List)
	api.HandleFunc("GET /api/expenses/{id}", expenseHandler.Get)
	api.HandleFunc("PUT /api/expenses/{id}", expenseHandler.Update)
	api.HandleFunc("DELETE /api/expenses/{id}", expenseHandler.Delete)

	// Health log routes
	api.HandleFunc("POST /api/health-logs", healthHandler.AddLog)
	api.HandleFunc("GET /api/health-logs/pet/{petId}", healthHandler.ListLogs)
	api.HandleFunc("GET /api/health-logs/pet/{petId}/weight-trend", healthHandler.WeightTrend)
	api.HandleFunc("PUT /api/health-logs/{id}", healthHandler.UpdateLog)
	api.HandleFunc("DELETE /api/health-logs/{id}", healthHandler.DeleteLog)

	// Activity routes
	api.HandleFunc("POST /api/activities", activityHandler.Create)
	api.HandleFunc("GET /api/activities/pet/{petId}", activityHandler.List)
	api.HandleFunc("GET /api/activities/pet/{petId}/summary", activityHandler.Summary)
	api.HandleFunc("PUT /api/activities/{id}", activityHandler.Update)
	api.HandleFunc("DELETE /api/activities/{id}", activityHandler.Delete)

	// Insurance routes (policy catalog management is admin only)
	api.Handle("POST /api/insurance/policies", adminOnly(http.HandlerFunc(insuranceHandler.CreatePolicy)))
	api.HandleFunc("GET /api/insurance/policies", insuranceHandler.ListPolicies)
	api.Handle("PUT /api/insurance/policies/{id}", adminOnly(http.HandlerFunc(insuranceHandler.UpdatePolicy)))
	api.Handle("DELETE /api/insurance/policies/{id}", adminOnly(http.HandlerFunc(insuranceHandler.DeletePolicy)))
	api.HandleFunc("POST /api/insurance/subscribe", insuranceHandler.Subscribe)
	api.HandleFunc("GET /api/insurance/pet/{petId}", insuranceHandler.ListByPet)
	api.Handle("GET /api/insurance/subscriptions", adminOnly(http.HandlerFunc(insuranceHandler.ListAll)))
	api.Handle("PUT /api/insurance/subscriptions/{id}/claim", adminOnly(http.HandlerFunc(insuranceHandler.UpdateClaimStatus)))

	// Community feed routes
	api.HandleFunc("POST /api/posts", postHandler.Create)
	api.HandleFunc("GET /api/posts", postHandler.Feed)
	api.HandleFunc("PUT /api/posts/{id}", postHandler.Update)
	api.HandleFunc("DELETE /api/posts/{id}", postHandler.Delete)
	api.HandleFunc("POST /api/posts/{id}/like", postHandler.Like)
	api.HandleFunc("DELETE /api/posts/{id}/like", postHandler.Unlike)
	api.HandleFunc("POST /api/posts/{id}/comments", postHandler.AddComment)
	api.HandleFunc("GET /api/posts/{id}/comments", postHandler.ListComments)
	api.HandleFunc("DELETE /api/comments/{id}", postHandler.DeleteComment)

	// Playdate routes
	api.HandleFunc("POST /api/playdates", playdateHandler.Create)
	api.HandleFunc("GET /api/playdates", playdateHandler.List)
	api.HandleFunc("PUT /api/playdates/{id}", playdateHandler.Update)
	api.HandleFunc("DELETE /api/playdates/{id}", playdateHandler.Delete)
	api.HandleFunc("POST /api/playdates/{id}/rsvp", playdateHandler.RSVP)

	// Notification routes
	api.HandleFunc("GET /api/notifications", notifHandler.List)
	api.HandleFunc("PUT /api/notifications/{id}/read", notifHandler.MarkRead)
	api.HandleFunc("DELETE /api/notifications/{id}", notifHandler.Delete)

	// Aggregate views
	api.HandleFunc("GET /api/dashboard", dashboardHandler.Overview)
	api.Handle("GET /api/admin/analytics", adminOnly(http.HandlerFunc(dashboardHandler.AdminAnalytics)))

	// Nutrition routes
	api.HandleFunc("GET /api/nutrition/{petId}", nutritionHandler.MealPlan)

	// Public routes, everything else under /api requires a credential.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", healthCheck)
	mux.HandleFunc("POST /api/auth/signup", authHandler.Signup)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.Handle("/api/", middleware.Auth(tokens)(api))

	// Build middleware chain (applied in reverse order, they wrap each other)
	// Order: CORS → RequestID → RateLimiter → Recovery → Routes
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)
	root = middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitPerSecond,
		Burst:             cfg.RateLimitBurst,
	})(root)
	root = middleware.RequestID(logger)(root)

	// CORS - Must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server, then wait for a shutdown signal.
	shutdownCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		log.Fatalf("Failed to start server: %v", err)
	case <-shutdownCtx.Done():
		logger.Info("shutdown signal received")
	}

	timeoutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(timeoutCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}

// healthCheck reports liveness for load balancers.
func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// newMailer picks SMTP delivery when a relay is configured and falls
// back to log-only delivery otherwise.
func newMailer(cfg *config.Config, logger *slog.Logger) mail.Mailer {
	if cfg.SMTPAddr == "" {
		return mail.NewLogMailer(logger)
	}

	host, portStr, err := net.SplitHostPort(cfg.SMTPAddr)
	if err != nil {
		logger.Warn("invalid SMTP_ADDR, falling back to log mailer", "addr", cfg.SMTPAddr, "error", err)
		return mail.NewLogMailer(logger)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		logger.Warn("invalid SMTP_ADDR port, falling back to log mailer", "addr", cfg.SMTPAddr, "error", err)
		return mail.NewLogMailer(logger)
	}

	return mail.NewSMTPMailer(host, port, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
}

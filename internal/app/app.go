package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"

	"furnimart/internal/config"
	"furnimart/internal/handlers"
	"furnimart/internal/middleware"
	"furnimart/internal/migrations"
	"furnimart/internal/payments"
	"furnimart/internal/ratelimit"
	"furnimart/internal/repositories"
	"furnimart/internal/routes"
	"furnimart/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	_ "furnimart/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func Run() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}
	middleware.SetSigningKey([]byte(cfg.JWT.Secret))

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Failed to open database: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()
	if err := db.Ping(); err != nil {
		log.Fatal("Database unreachable: ", err)
	}
	if err := runMigrations(db); err != nil {
		log.Fatal("Migrations failed: ", err)
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	otpRepo := repositories.NewOTPRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	authService := services.NewAuthService(userRepo, emailService, []byte(cfg.JWT.Secret))
	otpService := services.NewOTPService(otpRepo, userRepo, emailService)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	otpService.StartCleanup(ctx)

	limiter := ratelimit.NewLimiter(ratelimit.DefaultWindow, ratelimit.DefaultMaxAttempts)
	limiter.StartSweeper(ctx.Done())

	gateway := payments.NewClient(cfg.Razorpay.KeyID, cfg.Razorpay.KeySecret)
	if !gateway.Configured() {
		log.Printf("[app] razorpay credentials missing, payment endpoints will return 503")
	}

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(authService, limiter)
	otpHandler := handlers.NewOTPHandler(otpService, limiter)
	paymentHandler := handlers.NewPaymentHandler(gateway)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())

	router.GET("/healthz", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "db unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, authHandler, otpHandler, paymentHandler)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Server failed: ", err)
	}
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}

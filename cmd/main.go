package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"marketwallet/internal/facades"
	"marketwallet/internal/handlers"
	"marketwallet/internal/jwt"
	"marketwallet/internal/logger"
	"marketwallet/internal/middlewares"
	"marketwallet/internal/repositories"
	"marketwallet/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title marketwallet API
// @version 1.0.0
// @description Wallet and payment-request ledger for a services marketplace
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, redisExpSecond,
		kafkaAddr, kafkaTopic, catalogURL, logLevel,
		jwtSecret, jwtExp,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort,
		pgHost, pgPort, pgUser, pgPassword, pgDB,
		pgMaxOpenConns, pgMaxIdleConns,
		redisHost, redisPort, redisDB, redisPassword,
		redisPoolSize, redisMinIdleConns, redisExpSecond,
		kafkaAddr, kafkaTopic, catalogURL,
		logLevel,
		jwtSecret, jwtExp,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns
// all application, database, Redis, Kafka, catalog, logging, and JWT
// configuration.
func parseConfig(path string) (
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort int, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, redisExpSecond int,
	kafkaAddr, kafkaTopic, catalogURL, logLevel string,
	jwtSecretKey string, jwtExpSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	pgHost = getEnv("POSTGRES_HOST", "localhost")
	pgUser = getEnv("POSTGRES_USER", "user")
	pgPassword = getEnv("POSTGRES_PASSWORD", "password")
	pgDB = getEnv("POSTGRES_DB", "database")
	if pgPort, err = strconv.Atoi(getEnv("POSTGRES_PORT", "5432")); err != nil {
		return
	}
	if pgMaxOpenConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_OPEN_CONNS", "16")); err != nil {
		return
	}
	if pgMaxIdleConns, err = strconv.Atoi(getEnv("POSTGRES_MAX_IDLE_CONNS", "8")); err != nil {
		return
	}

	// Redis config
	redisHost = getEnv("REDIS_HOST", "localhost")
	if redisPort, err = strconv.Atoi(getEnv("REDIS_PORT", "6379")); err != nil {
		return
	}
	if redisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return
	}
	redisPassword = getEnv("REDIS_PASSWORD", "")
	if redisPoolSize, err = strconv.Atoi(getEnv("REDIS_POOL_SIZE", "10")); err != nil {
		return
	}
	if redisMinIdleConns, err = strconv.Atoi(getEnv("REDIS_MIN_IDLE_CONNS", "2")); err != nil {
		return
	}
	if redisExpSecond, err = strconv.Atoi(getEnv("REDIS_EXP_SECOND", "300")); err != nil {
		return
	}

	// Kafka config
	kafkaAddr = getEnv("KAFKA_ADDR", "localhost:9092")
	kafkaTopic = getEnv("KAFKA_TOPIC", "wallet-transactions")

	// Service catalog config
	catalogURL = getEnv("CATALOG_URL", "http://localhost:8081")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "3600")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, Redis, Kafka, and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context,
	appHost, appPort string,
	pgHost string, pgPort int, pgUser, pgPassword, pgDB string,
	pgMaxOpenConns, pgMaxIdleConns int,
	redisHost string, redisPort, redisDB int, redisPassword string,
	redisPoolSize, redisMinIdleConns, redisExpSecond int,
	kafkaAddr, kafkaTopic, catalogURL, logLevel string,
	jwtSecretKey string, jwtExpSecond int,
) error {
	// Initialize logger
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		pgUser, pgPassword, pgHost, pgPort, pgDB)
	logger.Log.Infof("Connecting to PostgreSQL at %s:%d", pgHost, pgPort)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", redisHost, redisPort),
		Password:     redisPassword,
		DB:           redisDB,
		PoolSize:     redisPoolSize,
		MinIdleConns: redisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Log.Errorw("Redis connection error", "error", err)
		return err
	}
	defer rdb.Close()

	// Kafka writer for the transaction event stream
	kafkaWriter := &kafka.Writer{
		Addr:     kafka.TCP(kafkaAddr),
		Topic:    kafkaTopic,
		Balancer: &kafka.LeastBytes{},
	}
	defer kafkaWriter.Close()

	// Initialize JWT service
	tokenSvc := jwt.New(jwtSecretKey, time.Duration(jwtExpSecond)*time.Second)

	// Initialize repositories
	txRunner := repositories.NewTxRunner(db)
	walletWriteRepo := repositories.NewWalletWriteRepository(db, repositories.TxFromContext)
	walletReadRepo := repositories.NewWalletReadRepository(db)
	txnWriteRepo := repositories.NewTransactionWriteRepository(db, repositories.TxFromContext)
	txnReadRepo := repositories.NewTransactionReadRepository(db)
	inquiryWriteRepo := repositories.NewInquiryWriteRepository(db, repositories.TxFromContext)
	inquiryReadRepo := repositories.NewInquiryReadRepository(db, repositories.TxFromContext)
	requestWriteRepo := repositories.NewPaymentRequestWriteRepository(db, repositories.TxFromContext)
	requestReadRepo := repositories.NewPaymentRequestReadRepository(db, repositories.TxFromContext)
	catalogCacheRepo := repositories.NewCatalogCacheRepository(rdb, time.Duration(redisExpSecond)*time.Second)

	// External service catalog
	catalogFacade := facades.NewServiceCatalogHTTPFacade(catalogURL, nil)

	// Initialize services
	walletService := services.NewWalletService(walletWriteRepo, walletReadRepo, txnWriteRepo, txRunner, kafkaWriter)
	inquiryService := services.NewInquiryService(inquiryWriteRepo, inquiryReadRepo, catalogFacade, catalogCacheRepo, walletService, txRunner)
	requestService := services.NewPaymentRequestService(requestWriteRepo, requestReadRepo, inquiryReadRepo, walletService, txRunner)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewares.AuthMiddleware(tokenSvc))

			// Wallet Store
			r.Get("/wallet/{user_id}", handlers.NewGetBalanceHandler(walletService, tokenSvc))
			r.Post("/wallet/{user_id}/deposit", handlers.NewDepositHandler(walletService, tokenSvc))
			r.Post("/wallet/{user_id}/withdraw", handlers.NewWithdrawHandler(walletService, tokenSvc))
			r.Get("/wallet/{user_id}/transactions", handlers.NewListTransactionsHandler(txnReadRepo, tokenSvc))
			r.Post("/wallet/transfer", handlers.NewTransferHandler(walletService, tokenSvc))

			// Payment Request Engine
			r.Post("/payment-requests", handlers.NewCreatePaymentRequestHandler(requestService, tokenSvc))
			r.Get("/payment-requests", handlers.NewListPaymentRequestsHandler(requestService, tokenSvc))
			r.Get("/payment-requests/{id}", handlers.NewGetPaymentRequestHandler(requestService, tokenSvc))
			r.Post("/payment-requests/{id}/respond", handlers.NewRespondPaymentRequestHandler(requestService, tokenSvc))

			// Inquiry Lifecycle
			r.Post("/inquiries", handlers.NewOpenInquiryHandler(inquiryService, tokenSvc))
			r.Get("/inquiries", handlers.NewListInquiriesHandler(inquiryService, tokenSvc))
			r.Get("/inquiries/{id}", handlers.NewGetInquiryHandler(inquiryService, tokenSvc))
			r.Post("/inquiries/{id}/close", handlers.NewCloseInquiryHandler(inquiryService, tokenSvc))
			r.Get("/inquiries/{id}/service", handlers.NewGetInquiryServiceHandler(inquiryService, tokenSvc))
			r.Get("/inquiries/{id}/verified", handlers.NewGetVerifiedCustomerHandler(inquiryService, tokenSvc))
			r.Post("/inquiries/{id}/messages", handlers.NewSendInquiryMessageHandler(inquiryService, tokenSvc))
			r.Get("/inquiries/{id}/messages", handlers.NewListInquiryMessagesHandler(inquiryService, tokenSvc))
		})
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}

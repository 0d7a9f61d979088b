package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/config"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/dbx"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/facades"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/jwt"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/logger"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/migrations"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/repositories"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/services"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/workers"

	_ "github.com/jackc/pgx/v5/stdlib"
	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gw-pesa-settlement API
// @version 1.0.0
// @description Dual-currency wallet that settles M-Pesa shillings against Lightning sats
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey WebhookSecret
// @in header
// @name X-Webhook-Secret
// @securityDefinitions.apikey InternalAPIKey
// @in header
// @name X-Internal-API-Key
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// run initializes the logger, database, Redis, Kafka, gRPC clients, background
// workers and the HTTP and gRPC health servers, and shuts them down gracefully.
func run(ctx context.Context, cfg *config.Config) error {
	if err := logger.Initialize(cfg.App.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.App.LogLevel)

	// Connect to PostgreSQL
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.Postgres.Host, "port", cfg.Postgres.Port, "db", cfg.Postgres.DB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.PostgresDSN())
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	if err := migrations.Up(ctx, db.DB); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka is optional; events are skipped when no brokers are configured
	var events services.KafkaWriter
	if len(cfg.Kafka.Brokers) > 0 {
		kw := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.Kafka.Brokers...),
			Topic:                  cfg.Kafka.Topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
		}
		defer kw.Close()
		events = kw
	} else {
		logger.Log.Warn("KAFKA_BROKERS not set, transaction events are disabled")
	}

	// Connect to gw-exchanger
	grpcAddr := net.JoinHostPort(cfg.Exchanger.Host, cfg.Exchanger.Port)
	conn, err := grpc.NewClient(grpcAddr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect to gRPC service at %s: %w", grpcAddr, err)
	}
	defer conn.Close()

	// Repositories
	transactor := dbx.NewTransactor(db, cfg.Postgres.TxRetries)
	userRepo := repositories.NewUserRepository(db, dbx.TxFromContext)
	walletRepo := repositories.NewWalletRepository(db, dbx.TxFromContext)
	txRepo := repositories.NewTransactionRepository(db, dbx.TxFromContext)
	auditRepo := repositories.NewAuditRepository(db, dbx.TxFromContext)
	rateRepo := repositories.NewExchangeRateRepository(db)
	rateCache := repositories.NewExchangeRateCacheRepository(rdb, cfg.Redis.RateTTL)
	reconQueue := repositories.NewReconciliationQueue(rdb, cfg.Redis.ReconStream)

	// Providers
	httpClient := &http.Client{Timeout: cfg.Settlement.ProviderTimeout}
	mpesa := facades.NewMpesaDarajaFacade(facades.MpesaConfig{
		BaseURL:        cfg.Mpesa.BaseURL,
		ConsumerKey:    cfg.Mpesa.ConsumerKey,
		ConsumerSecret: cfg.Mpesa.ConsumerSecret,
		ShortCode:      cfg.Mpesa.ShortCode,
		PassKey:        cfg.Mpesa.PassKey,
		Initiator:      cfg.Mpesa.Initiator,
		SecurityCred:   cfg.Mpesa.SecurityCred,
		CallbackURL:    cfg.Mpesa.CallbackURL,
		ResultURL:      cfg.Mpesa.ResultURL,
	}, httpClient, time.Now)
	lnd := facades.NewLightningLNDFacade(cfg.Lightning.BaseURL, cfg.Lightning.Macaroon, httpClient)
	exchanger := facades.NewExchangeRatesGRPCFacade(pb.NewExchangeServiceClient(conn))
	coingecko := facades.NewCoinGeckoFacade(cfg.Oracle.CoinGeckoURL, nil)

	// Services
	tokens := jwt.New(jwt.WithSecretKey(cfg.JWT.SecretKey), jwt.WithExpiration(cfg.JWT.Exp))
	ledger := services.NewLedgerService(transactor, walletRepo, auditRepo)
	machine := services.NewTransactionService(transactor, txRepo, userRepo, ledger, auditRepo, events, dailyLimits(cfg),
		services.WithMonthlyLimits(monthlyLimits(cfg)),
		services.WithMonitoring(reconQueue, monitoring(cfg)))
	oracle := services.NewOracleService(rateRepo, rateCache, reconQueue, cfg.Oracle.Staleness, cfg.Oracle.ToleranceBps, nil)
	settlement := services.NewSettlementService(machine, reconQueue, nil)
	payments := services.NewPaymentService(machine, ledger, oracle, settlement, mpesa, lnd, feePolicy(cfg), cfg.Settlement.ProviderTimeout, nil)
	auth := services.NewAuthService(transactor, userRepo, ledger, auditRepo, tokens)

	// Background workers
	workersCtx, stopWorkers := context.WithCancel(ctx)
	var wg sync.WaitGroup
	sweeper := workers.NewExpirySweeper(machine, cfg.Settlement.PendingTimeout, cfg.Settlement.ProcessingTimeout, cfg.Settlement.SweepInterval, cfg.Settlement.SweepBatch)
	poller := workers.NewRatePoller(oracle, cfg.Oracle.PollInterval, cfg.Settlement.ProviderTimeout, cfg.Oracle.PollsPerMinute, exchanger, coingecko)
	wg.Add(2)
	go func() {
		defer wg.Done()
		sweeper.Run(workersCtx)
	}()
	go func() {
		defer wg.Done()
		poller.Run(workersCtx)
	}()
	defer func() {
		stopWorkers()
		wg.Wait()
	}()

	router := newRouter(cfg, api{
		tokens:     tokens,
		auth:       auth,
		payments:   payments,
		rates:      oracle,
		settlement: settlement,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.App.Host, cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// gRPC health server
	healthSrv := health.NewServer()
	grpcSrv := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcSrv, healthSrv)
	healthSrv.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	grpcLis, err := net.Listen("tcp", net.JoinHostPort(cfg.App.Host, cfg.App.GRPCPort))
	if err != nil {
		return fmt.Errorf("gRPC health listener: %w", err)
	}

	// Graceful shutdown
	errChan := make(chan error, 2)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()
	go func() {
		logger.Log.Infof("gRPC health server listening on %s", grpcLis.Addr())
		if err := grpcSrv.Serve(grpcLis); err != nil {
			errChan <- fmt.Errorf("gRPC server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping servers...")
	case serveErr := <-errChan:
		grpcSrv.Stop()
		return serveErr
	}

	healthSrv.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}
	grpcSrv.GracefulStop()

	logger.Log.Info("Servers stopped gracefully")
	return nil
}

// dailyLimits maps the configured ceilings to KYC tiers. Zero means unlimited.
func dailyLimits(cfg *config.Config) models.TierLimits {
	return models.TierLimits{
		models.KYCTier0: decimal.NewFromInt(cfg.Settlement.Tier0DailyLimit),
		models.KYCTier1: decimal.NewFromInt(cfg.Settlement.Tier1DailyLimit),
		models.KYCTier2: decimal.NewFromInt(cfg.Settlement.Tier2DailyLimit),
	}
}

// monthlyLimits maps the configured monthly ceilings to KYC tiers. Zero means unlimited.
func monthlyLimits(cfg *config.Config) models.TierLimits {
	return models.TierLimits{
		models.KYCTier0: decimal.NewFromInt(cfg.Settlement.Tier0MonthlyLimit),
		models.KYCTier1: decimal.NewFromInt(cfg.Settlement.Tier1MonthlyLimit),
		models.KYCTier2: decimal.NewFromInt(cfg.Settlement.Tier2MonthlyLimit),
	}
}

func monitoring(cfg *config.Config) services.Monitoring {
	return services.Monitoring{
		LargeKES:       decimal.NewFromInt(cfg.Settlement.LargeTxKES),
		StructuringKES: decimal.NewFromInt(cfg.Settlement.StructuringKES),
	}
}

func feePolicy(cfg *config.Config) services.FeePolicy {
	return services.FeePolicy{
		Enabled:       cfg.Settlement.FeesEnabled,
		DepositBps:    cfg.Settlement.DepositFeeBps,
		DepositMinKES: decimal.NewFromInt(cfg.Settlement.DepositMinFeeKES),
		WithdrawalBps: cfg.Settlement.WithdrawFeeBps,
	}
}

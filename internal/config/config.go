package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds application, storage, provider and policy settings.
type Config struct {
	App struct {
		Host           string  `env:"APP_HOST" envDefault:"localhost"`
		Port           string  `env:"APP_PORT" envDefault:"8080"`
		GRPCPort       string  `env:"APP_GRPC_PORT" envDefault:"9090"`
		LogLevel       string  `env:"APP_LOG_LEVEL" envDefault:"info"`
		RateLimitRPS   float64 `env:"APP_RATE_LIMIT_RPS" envDefault:"20"`
		RateLimitBurst int     `env:"APP_RATE_LIMIT_BURST" envDefault:"40"`
		WebhookSecret  string  `env:"APP_WEBHOOK_SECRET" envDefault:"change_me_webhook"`
		InternalAPIKey string  `env:"APP_INTERNAL_API_KEY" envDefault:"change_me_internal"`
	}

	Postgres struct {
		Host         string `env:"POSTGRES_HOST" envDefault:"localhost"`
		Port         int    `env:"POSTGRES_PORT" envDefault:"5432"`
		User         string `env:"POSTGRES_USER" envDefault:"user"`
		Password     string `env:"POSTGRES_PASSWORD" envDefault:"password"`
		DB           string `env:"POSTGRES_DB" envDefault:"database"`
		MaxOpenConns int    `env:"POSTGRES_MAX_OPEN_CONNS" envDefault:"16"`
		MaxIdleConns int    `env:"POSTGRES_MAX_IDLE_CONNS" envDefault:"8"`
		TxRetries    uint64 `env:"POSTGRES_TX_RETRIES" envDefault:"5"`
	}

	Redis struct {
		Host         string        `env:"REDIS_HOST" envDefault:"localhost"`
		Port         int           `env:"REDIS_PORT" envDefault:"6379"`
		DB           int           `env:"REDIS_DB" envDefault:"0"`
		Password     string        `env:"REDIS_PASSWORD" envDefault:""`
		PoolSize     int           `env:"REDIS_POOL_SIZE" envDefault:"10"`
		MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"2"`
		RateTTL      time.Duration `env:"REDIS_RATE_TTL" envDefault:"5m"`
		ReconStream  string        `env:"REDIS_RECONCILIATION_STREAM" envDefault:"settlement:reconciliation"`
	}

	Kafka struct {
		Brokers []string `env:"KAFKA_BROKERS" envSeparator:","`
		Topic   string   `env:"KAFKA_TOPIC" envDefault:"settlement.transactions"`
	}

	Exchanger struct {
		Host string `env:"GW_EXCHANGER_HOST" envDefault:"localhost"`
		Port string `env:"GW_EXCHANGER_PORT" envDefault:"50051"`
	}

	JWT struct {
		SecretKey string        `env:"JWT_SECRET_KEY" envDefault:"my_super_secret_key"`
		Exp       time.Duration `env:"JWT_EXP" envDefault:"24h"`
	}

	Mpesa struct {
		BaseURL        string `env:"MPESA_BASE_URL" envDefault:"https://sandbox.safaricom.co.ke"`
		ConsumerKey    string `env:"MPESA_CONSUMER_KEY"`
		ConsumerSecret string `env:"MPESA_CONSUMER_SECRET"`
		ShortCode      string `env:"MPESA_SHORTCODE" envDefault:"174379"`
		PassKey        string `env:"MPESA_PASSKEY"`
		Initiator      string `env:"MPESA_INITIATOR_NAME" envDefault:"testapi"`
		SecurityCred   string `env:"MPESA_SECURITY_CREDENTIAL"`
		CallbackURL    string `env:"MPESA_CALLBACK_URL" envDefault:"http://localhost:8080/callbacks/mpesa/stk"`
		ResultURL      string `env:"MPESA_RESULT_URL" envDefault:"http://localhost:8080/callbacks/mpesa/b2c"`
	}

	Lightning struct {
		BaseURL  string `env:"LND_REST_URL" envDefault:"https://localhost:8081"`
		Macaroon string `env:"LND_MACAROON_HEX"`
	}

	Oracle struct {
		CoinGeckoURL   string        `env:"COINGECKO_URL" envDefault:"https://api.coingecko.com/api/v3"`
		Staleness      time.Duration `env:"RATE_STALENESS" envDefault:"5m"`
		ToleranceBps   int64         `env:"RATE_DISAGREEMENT_TOLERANCE_BPS" envDefault:"200"`
		PollInterval   time.Duration `env:"RATE_POLL_INTERVAL" envDefault:"30s"`
		PollsPerMinute int           `env:"RATE_POLLS_PER_MINUTE" envDefault:"10"`
	}

	Settlement struct {
		ProviderTimeout   time.Duration `env:"PROVIDER_TIMEOUT" envDefault:"15s"`
		PendingTimeout    time.Duration `env:"PENDING_TIMEOUT" envDefault:"10m"`
		ProcessingTimeout time.Duration `env:"PROCESSING_ALERT_AGE" envDefault:"1h"`
		SweepInterval     time.Duration `env:"SWEEP_INTERVAL" envDefault:"1m"`
		SweepBatch        int           `env:"SWEEP_BATCH" envDefault:"100"`
		FeesEnabled       bool          `env:"FEES_ENABLED" envDefault:"true"`
		Tier0DailyLimit   int64         `env:"KYC_TIER0_DAILY_LIMIT_KES" envDefault:"10000"`
		Tier1DailyLimit   int64         `env:"KYC_TIER1_DAILY_LIMIT_KES" envDefault:"100000"`
		Tier2DailyLimit   int64         `env:"KYC_TIER2_DAILY_LIMIT_KES" envDefault:"0"`
		Tier0MonthlyLimit int64         `env:"KYC_TIER0_MONTHLY_LIMIT_KES" envDefault:"50000"`
		Tier1MonthlyLimit int64         `env:"KYC_TIER1_MONTHLY_LIMIT_KES" envDefault:"500000"`
		Tier2MonthlyLimit int64         `env:"KYC_TIER2_MONTHLY_LIMIT_KES" envDefault:"0"`
		LargeTxKES        int64         `env:"LARGE_TRANSACTION_ALERT_KES" envDefault:"1000000"`
		StructuringKES    int64         `env:"STRUCTURING_ALERT_KES" envDefault:"100000"`
		DepositFeeBps     int64         `env:"DEPOSIT_FEE_BPS" envDefault:"100"`
		DepositMinFeeKES  int64         `env:"DEPOSIT_MIN_FEE_KES" envDefault:"10"`
		WithdrawFeeBps    int64         `env:"WITHDRAWAL_FEE_BPS" envDefault:"100"`
	}
}

// Load reads variables from the optional env file at path and parses them into Config.
func Load(path string) (*Config, error) {
	_ = godotenv.Load(path)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// PostgresDSN builds the pgx connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Postgres.User, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.DB)
}

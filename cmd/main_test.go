package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-pesa-settlement/internal/config"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/handlers"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/jwt"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/middlewares"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/services"

	pb "github.com/sbilibin2017/proto-exchange/exchange"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"google.golang.org/grpc"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestPrintBuildInfo_Output(t *testing.T) {
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2026-03-10"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	output := buf.String()
	assert.Contains(t, output, "Version: v1.0.0")
	assert.Contains(t, output, "Commit: abcd1234")
	assert.Contains(t, output, "Build: 2026-03-10")
}

func TestTierLimitsAndFeePolicy(t *testing.T) {
	cfg := &config.Config{}
	cfg.Settlement.Tier0DailyLimit = 10000
	cfg.Settlement.Tier1DailyLimit = 100000
	cfg.Settlement.Tier0MonthlyLimit = 50000
	cfg.Settlement.LargeTxKES = 1000000
	cfg.Settlement.StructuringKES = 100000
	cfg.Settlement.FeesEnabled = true
	cfg.Settlement.DepositFeeBps = 100
	cfg.Settlement.DepositMinFeeKES = 10
	cfg.Settlement.WithdrawFeeBps = 50

	limits := dailyLimits(cfg)
	ceiling, ok := limits.Ceiling(models.KYCTier0)
	assert.True(t, ok)
	assert.True(t, ceiling.Equal(decimal.NewFromInt(10000)))
	_, ok = limits.Ceiling(models.KYCTier2)
	assert.False(t, ok)

	monthly := monthlyLimits(cfg)
	ceiling, ok = monthly.Ceiling(models.KYCTier0)
	assert.True(t, ok)
	assert.True(t, ceiling.Equal(decimal.NewFromInt(50000)))
	_, ok = monthly.Ceiling(models.KYCTier1)
	assert.False(t, ok)

	m := monitoring(cfg)
	assert.Equal(t, models.ReconLargeTransaction, m.Alert(decimal.NewFromInt(2000000)))
	assert.Equal(t, models.ReconStructuring, m.Alert(decimal.NewFromInt(200000)))

	fees := feePolicy(cfg)
	assert.True(t, fees.Enabled)
	assert.Equal(t, int64(100), fees.DepositBps)
	assert.True(t, fees.DepositMinKES.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, int64(50), fees.WithdrawalBps)
}

// ------------------ Router ------------------

type authMocks struct {
	*handlers.MockRegisterer
	*handlers.MockLoginer
	*handlers.MockKYCTierSetter
}

type paymentsMocks struct {
	*handlers.MockWalletReader
	*handlers.MockMpesaPayments
	*handlers.MockLightningPayments
}

type settlementMocks struct {
	*handlers.MockMpesaSettler
	*handlers.MockLightningSettler
}

type routerFixture struct {
	tokens     *middlewares.MockTokener
	auth       authMocks
	payments   paymentsMocks
	rates      *handlers.MockRateReader
	settlement settlementMocks
	handler    http.Handler
}

func newRouterFixture(t *testing.T, burst int) *routerFixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.App.RateLimitRPS = 1
	cfg.App.RateLimitBurst = burst
	cfg.App.WebhookSecret = "whsec"
	cfg.App.InternalAPIKey = "ops-key"

	f := &routerFixture{
		tokens: middlewares.NewMockTokener(ctrl),
		auth: authMocks{
			MockRegisterer:    handlers.NewMockRegisterer(ctrl),
			MockLoginer:       handlers.NewMockLoginer(ctrl),
			MockKYCTierSetter: handlers.NewMockKYCTierSetter(ctrl),
		},
		payments: paymentsMocks{
			MockWalletReader:      handlers.NewMockWalletReader(ctrl),
			MockMpesaPayments:     handlers.NewMockMpesaPayments(ctrl),
			MockLightningPayments: handlers.NewMockLightningPayments(ctrl),
		},
		rates: handlers.NewMockRateReader(ctrl),
		settlement: settlementMocks{
			MockMpesaSettler:     handlers.NewMockMpesaSettler(ctrl),
			MockLightningSettler: handlers.NewMockLightningSettler(ctrl),
		},
	}
	f.handler = newRouter(cfg, api{
		tokens:     f.tokens,
		auth:       f.auth,
		payments:   f.payments,
		rates:      f.rates,
		settlement: f.settlement,
	})
	return f
}

func (f *routerFixture) serve(r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	f.handler.ServeHTTP(rr, r)
	return rr
}

func TestRouter_UserRoutesRequireToken(t *testing.T) {
	f := newRouterFixture(t, 100)
	f.tokens.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("", errors.New("missing"))

	rr := f.serve(httptest.NewRequest(http.MethodGet, "/wallet/balance", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), `"UNAUTHORIZED"`)
	assert.NotEmpty(t, rr.Header().Get(middlewares.RequestIDHeader))
}

func TestRouter_Balance(t *testing.T) {
	f := newRouterFixture(t, 100)
	userID := uuid.New()

	f.tokens.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
	f.tokens.EXPECT().GetClaims(gomock.Any(), "tok").Return(&jwt.Claims{UserID: userID}, nil)
	f.payments.MockWalletReader.EXPECT().Balance(gomock.Any(), userID).Return(&services.WalletBalance{
		BitcoinSats:        250000,
		MpesaKES:           decimal.NewFromInt(13250),
		PendingDepositsKES: decimal.Zero,
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/wallet/balance", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr := f.serve(req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"bitcoin_balance":250000`)
	assert.Contains(t, rr.Body.String(), `"mpesa_balance":"13250.00"`)
}

func TestRouter_Register(t *testing.T) {
	f := newRouterFixture(t, 100)
	f.auth.MockRegisterer.EXPECT().
		Register(gomock.Any(), "+254712345678", "4321", "wanjiku").
		Return(&models.User{ID: uuid.New(), PhoneNumber: "+254712345678", LightningUsername: "wanjiku", KYCTier: models.KYCTier0}, nil)

	body := strings.NewReader(`{"phone_number":"+254712345678","pin":"4321","lightning_username":"wanjiku"}`)
	rr := f.serve(httptest.NewRequest(http.MethodPost, "/register", body))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), `"kyc_tier":"tier0"`)
}

func TestRouter_Callbacks(t *testing.T) {
	tests := []struct {
		name           string
		secret         string
		expectSettle   bool
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "Missing secret",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"INVALID_WEBHOOK_SECRET"`,
		},
		{
			name:           "Wrong secret",
			secret:         "guess",
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"INVALID_WEBHOOK_SECRET"`,
		},
		{
			name:           "Valid secret",
			secret:         "whsec",
			expectSettle:   true,
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"completed"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newRouterFixture(t, 100)
			if tt.expectSettle {
				hash := "ab12"
				f.settlement.MockLightningSettler.EXPECT().
					OnLightningSettlement(gomock.Any(), hash, "cd34").
					Return(&models.Transaction{
						ID:             uuid.New(),
						Type:           models.TypeLightningReceive,
						Status:         models.StatusCompleted,
						CorrelationKey: &hash,
					}, nil)
			}

			body := strings.NewReader(`{"event":"invoice_settled","payment_hash":"ab12","preimage":"cd34"}`)
			req := httptest.NewRequest(http.MethodPost, "/callbacks/lightning", body)
			if tt.secret != "" {
				req.Header.Set(middlewares.WebhookSecretHeader, tt.secret)
			}
			rr := f.serve(req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}

func TestRouter_InternalRoutesRequireAPIKey(t *testing.T) {
	f := newRouterFixture(t, 100)
	userID := uuid.New()

	body := `{"tier":"tier1","actor":"compliance:jdoe"}`
	rr := f.serve(httptest.NewRequest(http.MethodPut, "/internal/users/"+userID.String()+"/kyc-tier", strings.NewReader(body)))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	f.auth.MockKYCTierSetter.EXPECT().
		SetKYCTier(gomock.Any(), userID, models.KYCTier1, "compliance:jdoe").
		Return(&models.User{ID: userID, KYCTier: models.KYCTier1}, nil)

	req := httptest.NewRequest(http.MethodPut, "/internal/users/"+userID.String()+"/kyc-tier", strings.NewReader(body))
	req.Header.Set(middlewares.InternalAPIKeyHeader, "ops-key")
	rr = f.serve(req)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"kyc_tier":"tier1"`)
}

func TestRouter_RateLimit(t *testing.T) {
	f := newRouterFixture(t, 1)
	f.auth.MockLoginer.EXPECT().Login(gomock.Any(), "+254712345678", "4321").Return("tok", nil)

	login := func() *httptest.ResponseRecorder {
		body := strings.NewReader(`{"phone_number":"+254712345678","pin":"4321"}`)
		return f.serve(httptest.NewRequest(http.MethodPost, "/login", body))
	}

	assert.Equal(t, http.StatusOK, login().Code)

	rr := login()
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestRouter_SwaggerDoc(t *testing.T) {
	f := newRouterFixture(t, 100)

	rr := f.serve(httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "/mpesa/deposit")
	assert.Contains(t, rr.Body.String(), "gw-pesa-settlement API")
}

// ------------------ Mock gRPC Server ------------------
type mockExchangeServer struct {
	pb.UnimplementedExchangeServiceServer
}

func (m *mockExchangeServer) GetExchangeRateForCurrency(ctx context.Context, req *pb.CurrencyRequest) (*pb.ExchangeRateResponse, error) {
	return &pb.ExchangeRateResponse{
		FromCurrency: req.FromCurrency,
		ToCurrency:   req.ToCurrency,
		Rate:         5300000,
	}, nil
}

// Start mock gRPC server and return host:port and stop function
func startMockGRPCServer() (addr string, stop func(), err error) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, err
	}
	s := grpc.NewServer()
	pb.RegisterExchangeServiceServer(s, &mockExchangeServer{})
	go s.Serve(lis)

	stop = func() {
		s.Stop()
		lis.Close()
	}
	return lis.Addr().String(), stop, nil
}

// ------------------ Full integration test ------------------
func TestRun_Success(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	ctx := context.Background()

	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:15-alpine",
			Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "user"},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer pgContainer.Terminate(ctx)

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	redisContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7.0-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	require.NoError(t, err)
	defer redisContainer.Terminate(ctx)

	redisHost, err := redisContainer.Host(ctx)
	require.NoError(t, err)
	redisPort, err := redisContainer.MappedPort(ctx, "6379")
	require.NoError(t, err)

	grpcAddr, stopGRPC, err := startMockGRPCServer()
	require.NoError(t, err)
	defer stopGRPC()
	grpcHost, grpcPort, err := net.SplitHostPort(grpcAddr)
	require.NoError(t, err)

	coingecko := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"bitcoin":{"kes":5300000}}`))
	}))
	defer coingecko.Close()

	cfg, err := config.Load("nonexistent.env")
	require.NoError(t, err)
	cfg.App.Host = "127.0.0.1"
	cfg.App.Port = "0"
	cfg.App.GRPCPort = "0"
	cfg.App.LogLevel = "debug"
	cfg.Postgres.Host = pgHost
	cfg.Postgres.Port = pgPort.Int()
	cfg.Postgres.User = "user"
	cfg.Postgres.Password = "password"
	cfg.Postgres.DB = "testdb"
	cfg.Redis.Host = redisHost
	cfg.Redis.Port = redisPort.Int()
	cfg.Kafka.Brokers = nil
	cfg.Exchanger.Host = grpcHost
	cfg.Exchanger.Port = grpcPort
	cfg.Oracle.CoinGeckoURL = coingecko.URL

	testCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(testCtx, cfg)
	}()

	select {
	case <-time.After(20 * time.Second):
		t.Fatal("test timed out")
	case err := <-errCh:
		require.NoError(t, err)
	}
}

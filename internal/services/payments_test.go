package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decEq matches a decimal.Decimal by value rather than representation.
type decEq string

func (d decEq) Matches(x any) bool {
	v, ok := x.(decimal.Decimal)
	return ok && v.Equal(decimal.RequireFromString(string(d)))
}

func (d decEq) String() string { return "decimal equal to " + string(d) }

type paymentMocks struct {
	machine *MockTransactionManager
	wallets *MockBalanceReader
	oracle  *MockRateOracle
	settler *MockLightningSettler
	mpesa   *MockMpesaGateway
	node    *MockLightningNode
}

var testRate = &models.ExchangeRate{Source: "coingecko", BTCKES: decimal.NewFromInt(5_300_000), CreatedAt: fixedNow}

func newPayments(ctrl *gomock.Controller) (*PaymentService, paymentMocks) {
	m := paymentMocks{
		machine: NewMockTransactionManager(ctrl),
		wallets: NewMockBalanceReader(ctrl),
		oracle:  NewMockRateOracle(ctrl),
		settler: NewMockLightningSettler(ctrl),
		mpesa:   NewMockMpesaGateway(ctrl),
		node:    NewMockLightningNode(ctrl),
	}
	fees := FeePolicy{Enabled: true, DepositBps: 100, DepositMinKES: decimal.NewFromInt(10), WithdrawalBps: 100}
	svc := NewPaymentService(m.machine, m.wallets, m.oracle, m.settler, m.mpesa, m.node, fees, time.Second,
		func() time.Time { return fixedNow })
	return svc, m
}

func TestPaymentService_Deposit(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	phone := "+254712345678"

	tests := []struct {
		name       string
		amount     string
		phone      string
		setupMocks func(m paymentMocks, tx *models.Transaction)
		wantErr    error
		wantNilTx  bool
	}{
		{
			name:   "prompts payer and correlates checkout",
			amount: "1000",
			phone:  phone,
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
				m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p CreateParams) (*models.Transaction, error) {
					assert.Equal(t, models.TypeDepositMpesa, p.Type)
					assert.Equal(t, int64(18679), p.AmountSats)
					assert.True(t, p.FeeKES.Equal(decimal.NewFromInt(10)))
					assert.Equal(t, UserActor(userID), p.Actor)
					return tx, nil
				})
				m.mpesa.EXPECT().STKPush(gomock.Any(), phone, decEq("1000"), tx.ID.String()).Return("ws_CO_1", nil)
				m.machine.EXPECT().AttachCorrelation(gomock.Any(), tx.ID, CorrelationParams{CorrelationKey: "ws_CO_1"}, ActorPayments).Return(tx, nil)
			},
		},
		{
			name:   "push rejected fails the deposit",
			amount: "1000",
			phone:  phone,
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
				m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tx, nil)
				m.mpesa.EXPECT().STKPush(gomock.Any(), phone, gomock.Any(), gomock.Any()).Return("", errors.New("400 Bad Request"))
				m.machine.EXPECT().Fail(gomock.Any(), tx.ID, "stk push: 400 Bad Request", ActorPayments).Return(tx, nil)
			},
			wantErr: apperr.ErrProviderUnavailable,
		},
		{
			name:   "push timeout leaves the deposit pending",
			amount: "1000",
			phone:  phone,
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
				m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tx, nil)
				m.mpesa.EXPECT().STKPush(gomock.Any(), phone, gomock.Any(), gomock.Any()).
					Return("", fmt.Errorf("post: %w", context.DeadlineExceeded))
			},
		},
		{
			name:   "no fresh rate",
			amount: "1000",
			phone:  phone,
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.oracle.EXPECT().Current(gomock.Any()).Return(nil, apperr.ErrStaleRate)
			},
			wantErr: apperr.ErrStaleRate,
		},
		{name: "below minimum", amount: "9", phone: phone, setupMocks: func(paymentMocks, *models.Transaction) {}, wantErr: apperr.ErrInvalidAmount},
		{name: "above maximum", amount: "500001", phone: phone, setupMocks: func(paymentMocks, *models.Transaction) {}, wantErr: apperr.ErrInvalidAmount},
		{name: "cents", amount: "100.50", phone: phone, setupMocks: func(paymentMocks, *models.Transaction) {}, wantErr: apperr.ErrInvalidAmount},
		{name: "bad phone", amount: "100", phone: "0712345678", setupMocks: func(paymentMocks, *models.Transaction) {}, wantErr: apperr.ErrInvalidPhoneNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newPayments(ctrl)
			tx := newTx(models.TypeDepositMpesa, models.StatusPending)
			tt.setupMocks(m, tx)

			got, err := svc.Deposit(ctx, userID, decimal.RequireFromString(tt.amount), tt.phone)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tx, got)
		})
	}
}

func TestPaymentService_Withdraw(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	phone := "+254712345678"

	t.Run("reserves and pays out", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPayments(ctrl)
		tx := newTx(models.TypeWithdrawalMpesa, models.StatusPending)

		m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
		m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p CreateParams) (*models.Transaction, error) {
			assert.Equal(t, models.TypeWithdrawalMpesa, p.Type)
			assert.Equal(t, int64(100_000), p.AmountSats)
			assert.True(t, p.AmountKES.Equal(decimal.NewFromInt(5300)), "payout %s", p.AmountKES)
			assert.True(t, p.FeeKES.Equal(decimal.NewFromInt(98)), "fee %s", p.FeeKES)
			assert.Equal(t, int64(1849), p.FeeSats)
			return tx, nil
		})
		m.mpesa.EXPECT().B2CPayment(gomock.Any(), phone, decEq("5300"), tx.ID.String()).Return("AG_1", nil)
		m.machine.EXPECT().AttachCorrelation(gomock.Any(), tx.ID, CorrelationParams{CorrelationKey: "AG_1"}, ActorPayments).Return(tx, nil)

		got, err := svc.Withdraw(ctx, userID, 100_000, phone)
		require.NoError(t, err)
		assert.Equal(t, tx, got)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPayments(ctrl)
		m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
		m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperr.ErrInsufficientFunds)

		_, err := svc.Withdraw(ctx, userID, 100_000, phone)
		assert.ErrorIs(t, err, apperr.ErrInsufficientFunds)
	})

	t.Run("payout rejected refunds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPayments(ctrl)
		tx := newTx(models.TypeWithdrawalMpesa, models.StatusPending)
		m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
		m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tx, nil)
		m.mpesa.EXPECT().B2CPayment(gomock.Any(), phone, gomock.Any(), gomock.Any()).Return("", errors.New("503"))
		m.machine.EXPECT().Fail(gomock.Any(), tx.ID, gomock.Any(), ActorPayments).Return(tx, nil)

		_, err := svc.Withdraw(ctx, userID, 100_000, phone)
		assert.ErrorIs(t, err, apperr.ErrProviderUnavailable)
	})

	t.Run("below minimum", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, _ := newPayments(ctrl)
		_, err := svc.Withdraw(ctx, userID, MinWithdrawalSats-1, phone)
		assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
	})
}

func TestPaymentService_CreateInvoice(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("issues invoice", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPayments(ctrl)
		tx := newTx(models.TypeLightningReceive, models.StatusPending)
		inv := &models.Invoice{PaymentRequest: "lnbc50u1p", PaymentHash: testHash, AmountSats: 5000}

		m.oracle.EXPECT().Current(gomock.Any()).Return(nil, apperr.ErrStaleRate)
		m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p CreateParams) (*models.Transaction, error) {
			assert.Equal(t, models.TypeLightningReceive, p.Type)
			assert.True(t, p.Rate.IsZero())
			return tx, nil
		})
		m.node.EXPECT().CreateInvoice(gomock.Any(), int64(5000), "coffee", DefaultInvoiceExpiry).Return(inv, nil)
		m.machine.EXPECT().AttachCorrelation(gomock.Any(), tx.ID, CorrelationParams{CorrelationKey: testHash, LightningInvoice: "lnbc50u1p"}, ActorPayments).
			Return(tx, nil)

		gotTx, gotInv, err := svc.CreateInvoice(ctx, userID, 5000, "coffee", 0)
		require.NoError(t, err)
		assert.Equal(t, tx, gotTx)
		assert.Equal(t, inv, gotInv)
	})

	t.Run("node timeout fails the receive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPayments(ctrl)
		tx := newTx(models.TypeLightningReceive, models.StatusPending)
		m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
		m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tx, nil)
		m.node.EXPECT().CreateInvoice(gomock.Any(), int64(5000), "", time.Hour).Return(nil, context.DeadlineExceeded)
		m.machine.EXPECT().Fail(gomock.Any(), tx.ID, gomock.Any(), ActorPayments).Return(tx, nil)

		_, _, err := svc.CreateInvoice(ctx, userID, 5000, "", time.Hour)
		assert.ErrorIs(t, err, apperr.ErrProviderUnavailable)
	})

	invalid := []struct {
		name    string
		sats    int64
		expiry  time.Duration
		wantErr error
	}{
		{"zero sats", 0, 0, apperr.ErrInvalidAmount},
		{"over one bitcoin", MaxInvoiceSats + 1, 0, apperr.ErrInvalidAmount},
		{"expiry too short", 1000, time.Second, apperr.ErrValidation},
		{"expiry too long", 1000, 25 * time.Hour, apperr.ErrValidation},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, _ := newPayments(ctrl)
			_, _, err := svc.CreateInvoice(ctx, userID, tt.sats, "", tt.expiry)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestPaymentService_PayInvoice(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	bolt11 := "lnbc10u1p"
	inv := &models.Invoice{PaymentRequest: bolt11, PaymentHash: testHash, AmountSats: 1000, ExpiresAt: fixedNow.Add(time.Hour)}

	tests := []struct {
		name       string
		setupMocks func(m paymentMocks, tx *models.Transaction)
		wantErr    error
		wantStatus models.TransactionStatus
	}{
		{
			name: "synchronous success",
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.node.EXPECT().DecodeInvoice(gomock.Any(), bolt11).Return(inv, nil)
				m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
				m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, p CreateParams) (*models.Transaction, error) {
					assert.Equal(t, models.TypeLightningSend, p.Type)
					assert.Equal(t, int64(1000), p.AmountSats)
					assert.Equal(t, int64(20), p.FeeSats)
					assert.Equal(t, testHash, p.CorrelationKey)
					return tx, nil
				})
				m.machine.EXPECT().MarkProcessing(gomock.Any(), tx.ID, ActorPayments).Return(tx, nil)
				m.node.EXPECT().PayInvoice(gomock.Any(), bolt11, int64(20)).
					Return(&models.Payment{PaymentHash: testHash, Preimage: testPreimage, Status: models.PaymentSucceeded, FeeSats: 3}, nil)
				done := *tx
				done.Status = models.StatusCompleted
				m.settler.EXPECT().OnLightningPayment(gomock.Any(), testHash, testPreimage, int64(3)).Return(&done, nil)
			},
			wantStatus: models.StatusCompleted,
		},
		{
			name: "payment failed",
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.node.EXPECT().DecodeInvoice(gomock.Any(), bolt11).Return(inv, nil)
				m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
				m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tx, nil)
				m.machine.EXPECT().MarkProcessing(gomock.Any(), tx.ID, ActorPayments).Return(tx, nil)
				m.node.EXPECT().PayInvoice(gomock.Any(), bolt11, int64(20)).
					Return(&models.Payment{PaymentHash: testHash, Status: models.PaymentFailed, FailureReason: "FAILURE_REASON_NO_ROUTE"}, nil)
				refunded := *tx
				refunded.Status = models.StatusRefunded
				m.settler.EXPECT().OnLightningFailure(gomock.Any(), testHash, "FAILURE_REASON_NO_ROUTE").Return(&refunded, nil)
			},
			wantStatus: models.StatusRefunded,
		},
		{
			name: "node error",
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.node.EXPECT().DecodeInvoice(gomock.Any(), bolt11).Return(inv, nil)
				m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
				m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tx, nil)
				m.machine.EXPECT().MarkProcessing(gomock.Any(), tx.ID, ActorPayments).Return(tx, nil)
				m.node.EXPECT().PayInvoice(gomock.Any(), bolt11, int64(20)).Return(nil, errors.New("insufficient local balance"))
				refunded := *tx
				refunded.Status = models.StatusRefunded
				m.settler.EXPECT().OnLightningFailure(gomock.Any(), testHash, "insufficient local balance").Return(&refunded, nil)
			},
			wantStatus: models.StatusRefunded,
		},
		{
			name: "still in flight",
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.node.EXPECT().DecodeInvoice(gomock.Any(), bolt11).Return(inv, nil)
				m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
				m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).Return(tx, nil)
				tx.Status = models.StatusProcessing
				m.machine.EXPECT().MarkProcessing(gomock.Any(), tx.ID, ActorPayments).Return(tx, nil)
				m.node.EXPECT().PayInvoice(gomock.Any(), bolt11, int64(20)).Return(nil, context.DeadlineExceeded)
			},
			wantStatus: models.StatusProcessing,
		},
		{
			name: "undecodable invoice",
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.node.EXPECT().DecodeInvoice(gomock.Any(), bolt11).Return(nil, errors.New("checksum failed"))
			},
			wantErr: apperr.ErrInvalidInvoice,
		},
		{
			name: "expired invoice",
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				expired := *inv
				expired.ExpiresAt = fixedNow.Add(-time.Second)
				m.node.EXPECT().DecodeInvoice(gomock.Any(), bolt11).Return(&expired, nil)
			},
			wantErr: apperr.ErrInvalidInvoice,
		},
		{
			name: "amountless invoice",
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				open := *inv
				open.AmountSats = 0
				m.node.EXPECT().DecodeInvoice(gomock.Any(), bolt11).Return(&open, nil)
			},
			wantErr: apperr.ErrInvalidInvoice,
		},
		{
			name: "duplicate payment hash",
			setupMocks: func(m paymentMocks, tx *models.Transaction) {
				m.node.EXPECT().DecodeInvoice(gomock.Any(), bolt11).Return(inv, nil)
				m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)
				m.machine.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperr.ErrDuplicateCorrelation)
			},
			wantErr: apperr.ErrDuplicateCorrelation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			svc, m := newPayments(ctrl)
			tx := newTx(models.TypeLightningSend, models.StatusPending)
			tt.setupMocks(m, tx)

			got, err := svc.PayInvoice(ctx, userID, bolt11, 20)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestPaymentService_Balance(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	wallet := &models.Wallet{UserID: userID, BalanceSats: 100_000, BalanceKES: decimal.NewFromInt(500), InFlightSats: 2000}

	t.Run("with rate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPayments(ctrl)
		m.wallets.EXPECT().Balance(gomock.Any(), userID).Return(wallet, nil)
		m.oracle.EXPECT().Current(gomock.Any()).Return(testRate, nil)

		b, err := svc.Balance(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, int64(100_000), b.BitcoinSats)
		assert.Equal(t, "5300.00", b.MpesaKES.StringFixed(2))
		assert.Equal(t, "500", b.PendingDepositsKES.String())
		assert.Equal(t, int64(2000), b.PendingWithdrawals)
		assert.False(t, b.RateStale)
	})

	t.Run("stale rate", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		svc, m := newPayments(ctrl)
		m.wallets.EXPECT().Balance(gomock.Any(), userID).Return(wallet, nil)
		m.oracle.EXPECT().Current(gomock.Any()).Return(nil, apperr.ErrStaleRate)

		b, err := svc.Balance(ctx, userID)
		require.NoError(t, err)
		assert.True(t, b.RateStale)
		assert.Nil(t, b.Rate)
		assert.True(t, b.MpesaKES.IsZero())
	})
}

func TestPaymentService_History(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, m := newPayments(ctrl)

	m.machine.EXPECT().List(gomock.Any(), userID, DefaultHistoryLimit, 0).Return([]models.Transaction{}, nil)
	_, err := svc.Transactions(ctx, userID, 0, 0)
	require.NoError(t, err)

	_, err = svc.Transactions(ctx, userID, MaxHistoryLimit+1, 0)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Transactions(ctx, userID, 10, -1)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	own := newTx(models.TypeDepositMpesa, models.StatusCompleted)
	own.UserID = userID
	m.machine.EXPECT().Get(gomock.Any(), own.ID).Return(own, nil)
	got, err := svc.Transaction(ctx, userID, own.ID)
	require.NoError(t, err)
	assert.Equal(t, own, got)

	foreign := newTx(models.TypeDepositMpesa, models.StatusCompleted)
	m.machine.EXPECT().Get(gomock.Any(), foreign.ID).Return(foreign, nil)
	_, err = svc.Transaction(ctx, userID, foreign.ID)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

package workers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpirySweeper_Sweep(t *testing.T) {
	tests := []struct {
		name          string
		mockSetup     func(m *MockStaleExpirer)
		expectedCount int
		expectErr     bool
	}{
		{
			name: "nothing stale",
			mockSetup: func(m *MockStaleExpirer) {
				m.EXPECT().ExpireStale(gomock.Any(), 10*time.Minute, 2).Return(0, nil)
			},
		},
		{
			name: "drains full batches",
			mockSetup: func(m *MockStaleExpirer) {
				gomock.InOrder(
					m.EXPECT().ExpireStale(gomock.Any(), 10*time.Minute, 2).Return(2, nil),
					m.EXPECT().ExpireStale(gomock.Any(), 10*time.Minute, 2).Return(2, nil),
					m.EXPECT().ExpireStale(gomock.Any(), 10*time.Minute, 2).Return(1, nil),
				)
			},
			expectedCount: 5,
		},
		{
			name: "stops after bounded rounds",
			mockSetup: func(m *MockStaleExpirer) {
				m.EXPECT().ExpireStale(gomock.Any(), 10*time.Minute, 2).Return(2, nil).Times(maxSweepRounds)
			},
			expectedCount: 2 * maxSweepRounds,
		},
		{
			name: "error keeps partial count",
			mockSetup: func(m *MockStaleExpirer) {
				gomock.InOrder(
					m.EXPECT().ExpireStale(gomock.Any(), 10*time.Minute, 2).Return(2, nil),
					m.EXPECT().ExpireStale(gomock.Any(), 10*time.Minute, 2).Return(0, errors.New("db down")),
				)
			},
			expectedCount: 2,
			expectErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			expirer := NewMockStaleExpirer(ctrl)
			tt.mockSetup(expirer)

			n, err := NewExpirySweeper(expirer, 10*time.Minute, 0, time.Minute, 2).Sweep(context.Background())

			assert.Equal(t, tt.expectedCount, n)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestExpirySweeper_FlagStuck(t *testing.T) {
	ctx := context.Background()

	t.Run("flags one batch", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		expirer := NewMockStaleExpirer(ctrl)
		expirer.EXPECT().FlagStuckProcessing(gomock.Any(), time.Hour, 2).Return(2, nil)

		n, err := NewExpirySweeper(expirer, 10*time.Minute, time.Hour, time.Minute, 2).FlagStuck(ctx)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("disabled without an age", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		n, err := NewExpirySweeper(NewMockStaleExpirer(ctrl), 10*time.Minute, 0, time.Minute, 2).FlagStuck(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		expirer := NewMockStaleExpirer(ctrl)
		expirer.EXPECT().FlagStuckProcessing(gomock.Any(), time.Hour, 2).Return(0, errors.New("db down"))

		_, err := NewExpirySweeper(expirer, 10*time.Minute, time.Hour, time.Minute, 2).FlagStuck(ctx)
		assert.Error(t, err)
	})
}

func TestExpirySweeper_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	swept := make(chan struct{}, 1)
	expirer := NewMockStaleExpirer(ctrl)
	expirer.EXPECT().ExpireStale(gomock.Any(), time.Minute, 100).
		DoAndReturn(func(context.Context, time.Duration, int) (int, error) {
			select {
			case swept <- struct{}{}:
			default:
			}
			return 0, nil
		}).MinTimes(1)
	expirer.EXPECT().FlagStuckProcessing(gomock.Any(), time.Hour, 100).Return(0, nil).AnyTimes()

	done := make(chan struct{})
	go func() {
		NewExpirySweeper(expirer, time.Minute, time.Hour, 5*time.Millisecond, 0).Run(ctx)
		close(done)
	}()

	select {
	case <-swept:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not run")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "sweeper did not stop")
	}
}

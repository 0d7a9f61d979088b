package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRegisterHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	user := &models.User{
		ID:                uuid.New(),
		PhoneNumber:       "+254712345678",
		LightningUsername: "wanjiku",
		KYCTier:           models.KYCTier0,
		CreatedAt:         testTime,
	}

	tests := []struct {
		name         string
		body         any
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedErr  apperr.Code
	}{
		{
			name: "success",
			body: RegisterRequest{PhoneNumber: "+254712345678", Pin: "4321", LightningUsername: "wanjiku"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), "+254712345678", "4321", "wanjiku").Return(user, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name:         "invalid JSON",
			body:         "{invalid json}",
			mockSetup:    func(m *MockRegisterer) {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  apperr.CodeValidation,
		},
		{
			name: "already registered",
			body: RegisterRequest{PhoneNumber: "+254712345678", Pin: "4321", LightningUsername: "wanjiku"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apperr.ErrUserAlreadyExists)
			},
			expectedCode: http.StatusConflict,
			expectedErr:  apperr.CodeUserAlreadyExists,
		},
		{
			name: "internal error",
			body: RegisterRequest{PhoneNumber: "+254712345678", Pin: "4321", LightningUsername: "wanjiku"},
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  apperr.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewMockRegisterer(ctrl)
			tt.mockSetup(svc)

			rr := httptest.NewRecorder()
			NewRegisterHandler(svc).ServeHTTP(rr, newRequest(t, http.MethodPost, "/register", tt.body))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, errorCode(t, rr))
				return
			}
			assert.Contains(t, rr.Body.String(), `"kyc_tier":"tier0"`)
			assert.NotContains(t, rr.Body.String(), "pin")
		})
	}
}

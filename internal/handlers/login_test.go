package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-pesa-settlement/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockLoginer(ctrl)

	tests := []struct {
		name          string
		inputBody     any
		mockSetup     func()
		expectedCode  int
		expectedToken string
		expectedErr   apperr.Code
	}{
		{
			name:      "success",
			inputBody: LoginRequest{PhoneNumber: "+254712345678", Pin: "4321"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "+254712345678", "4321").
					Return("JWT_TOKEN", nil)
			},
			expectedCode:  http.StatusOK,
			expectedToken: "JWT_TOKEN",
		},
		{
			name:         "invalid JSON",
			inputBody:    "{invalid json}",
			mockSetup:    func() {},
			expectedCode: http.StatusBadRequest,
			expectedErr:  apperr.CodeValidation,
		},
		{
			name:      "wrong credentials",
			inputBody: LoginRequest{PhoneNumber: "+254712345678", Pin: "0000"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "+254712345678", "0000").
					Return("", apperr.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  apperr.CodeInvalidCredentials,
		},
		{
			name:      "internal error",
			inputBody: LoginRequest{PhoneNumber: "+254712345678", Pin: "4321"},
			mockSetup: func() {
				mockSvc.EXPECT().
					Login(gomock.Any(), "+254712345678", "4321").
					Return("", errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedErr:  apperr.CodeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()

			rr := httptest.NewRecorder()
			NewLoginHandler(mockSvc).ServeHTTP(rr, newRequest(t, http.MethodPost, "/login", tt.inputBody))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedErr != "" {
				assert.Equal(t, tt.expectedErr, errorCode(t, rr))
				return
			}
			var resp LoginResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.expectedToken, resp.Token)
		})
	}
}

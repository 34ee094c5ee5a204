package controllers

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"demoday/internal/delivery/http/helpers"
	"demoday/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	token        string
	err          error
	lastPassword string
}

func (f *fakeAuthService) Login(ctx context.Context, password string) (string, error) {
	f.lastPassword = password
	return f.token, f.err
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		svc        *fakeAuthService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"password": "hunter2"}`,
			svc:        &fakeAuthService{token: "token-123"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong password",
			body:       `{"password": "wrong"}`,
			svc:        &fakeAuthService{err: domain.ErrInvalidCredentials},
			wantStatus: http.StatusUnauthorized,
			wantCode:   helpers.ErrCodeUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{}`,
			svc:        &fakeAuthService{},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "issuer error",
			body:       `{"password": "hunter2"}`,
			svc:        &fakeAuthService{err: errors.New("signing failed")},
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewAuthController(testLogger, tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			rec := httptest.NewRecorder()

			c.Login(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			resp := decodeEnvelope(t, rec)
			if tt.wantCode != "" {
				require.NotNil(t, resp.Error)
				assert.Equal(t, tt.wantCode, resp.Error.Code)
				return
			}
			require.Nil(t, resp.Error)
			assert.Contains(t, rec.Body.String(), "token-123")
		})
	}
}

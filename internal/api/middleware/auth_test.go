package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
)

func TestAuth_ExtractsUserIDAndRole(t *testing.T) {
	var gotUserID int64
	var gotRole string

	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		gotRole, _ = GetUserRole(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	req.Header.Set("X-User-ID", "42")
	req.Header.Set("X-User-Role", domain.RoleGarageOwner)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
	assert.Equal(t, domain.RoleGarageOwner, gotRole)
}

func TestAuth_DefaultsRoleToCustomer(t *testing.T) {
	var gotRole string

	handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRole, _ = GetUserRole(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, domain.RoleCustomer, gotRole)
}

func TestAuth_RejectsMissingOrInvalidUserID(t *testing.T) {
	tests := []struct {
		name   string
		userID string
	}{
		{name: "missing header", userID: ""},
		{name: "not a number", userID: "abc"},
		{name: "zero", userID: "0"},
		{name: "negative", userID: "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			handler := Auth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
			}))

			req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
			if tt.userID != "" {
				req.Header.Set("X-User-ID", tt.userID)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, called)
		})
	}
}

func TestRequireRoles_AllowsListedRole(t *testing.T) {
	called := false
	handler := Auth(RequireRoles(domain.RoleGarageOwner, domain.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			w.WriteHeader(http.StatusOK)
		})))

	req := httptest.NewRequest(http.MethodPatch, "/reservations/7/provide-quote", nil)
	req.Header.Set("X-User-ID", "42")
	req.Header.Set("X-User-Role", domain.RoleAdmin)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireRoles_ForbidsCustomer(t *testing.T) {
	called := false
	handler := Auth(RequireRoles(domain.RoleGarageOwner, domain.RoleAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		})))

	req := httptest.NewRequest(http.MethodPatch, "/reservations/7/provide-quote", nil)
	req.Header.Set("X-User-ID", "42")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)
}

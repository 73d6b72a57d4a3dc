package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/logger"
	"github.com/coralab/coralab-backend/internal/requestdata"
	"github.com/coralab/coralab-backend/internal/types"
)

type stubAuthService struct {
	userID uuid.UUID
	role   string
	err    error
}

func (s *stubAuthService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (s *stubAuthService) RefreshUser(ctx context.Context) (string, string, error) {
	return "", "", errors.New("not implemented")
}

func (s *stubAuthService) LogoutUser(ctx context.Context) error {
	return errors.New("not implemented")
}

func (s *stubAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if s.err != nil {
		return ctx, s.err
	}
	return requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      s.userID,
		Role:        s.role,
	}), nil
}

func authTestRouter(t *testing.T, svc *stubAuthService, extra ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger init: %v", err)
	}
	am := NewAuthMiddleware(log, svc)

	r := gin.New()
	chain := []gin.HandlerFunc{am.RequireAuth()}
	chain = append(chain, extra...)
	chain = append(chain, func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/protected", chain...)
	return r
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	t.Parallel()
	r := authTestRouter(t, &stubAuthService{userID: uuid.New(), role: types.RoleAdmin})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	t.Parallel()
	r := authTestRouter(t, &stubAuthService{err: errors.New("invalid token")})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	t.Parallel()
	r := authTestRouter(t, &stubAuthService{userID: uuid.New(), role: types.RoleAdmin})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		role string
		want int
	}{
		{"superadmin allowed", types.RoleSuperadmin, http.StatusOK},
		{"admin forbidden", types.RoleAdmin, http.StatusForbidden},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubAuthService{userID: uuid.New(), role: tc.role}
			log, err := logger.New("development")
			if err != nil {
				t.Fatalf("logger init: %v", err)
			}
			am := NewAuthMiddleware(log, svc)
			r := authTestRouter(t, svc, am.RequireRole(types.RoleSuperadmin))

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer sometoken")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

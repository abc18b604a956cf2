package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"salon_backend/internal/models"
	"salon_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

type fakeSession struct{ user *models.User }

func (f *fakeSession) Current() *models.User { return f.user }

func newAuthEngine(issuer *utils.TokenIssuer, session CurrentSession) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/me", AuthMiddleware(issuer, session), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"id": c.GetString(ContextUserID), "role": c.GetString(ContextUserRole)})
	})
	r.GET("/admin", AuthMiddleware(issuer, session), RoleAuthMiddleware(models.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func doGet(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	client := &models.User{ID: "usr_1", Name: "Ana"}
	session := &fakeSession{user: client}
	r := newAuthEngine(issuer, session)

	token, err := issuer.GenerateAccessToken(client.ID, client.Name, string(models.RoleClient))
	if err != nil {
		t.Fatalf("token: %v", err)
	}

	if w := doGet(r, "/me", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("missing header: got %d", w.Code)
	}
	if w := doGet(r, "/me", "garbage"); w.Code != http.StatusUnauthorized {
		t.Fatalf("bad token: got %d", w.Code)
	}
	if w := doGet(r, "/me", token); w.Code != http.StatusOK {
		t.Fatalf("valid token: got %d %s", w.Code, w.Body.String())
	}
	if w := doGet(r, "/admin", token); w.Code != http.StatusForbidden {
		t.Fatalf("client on admin route: got %d", w.Code)
	}

	session.user = nil
	if w := doGet(r, "/me", token); w.Code != http.StatusUnauthorized {
		t.Fatalf("token after logout: got %d", w.Code)
	}

	other := utils.NewTokenIssuer("other-secret", time.Hour)
	forged, _ := other.GenerateAccessToken(client.ID, client.Name, string(models.RoleAdmin))
	session.user = client
	if w := doGet(r, "/me", forged); w.Code != http.StatusUnauthorized {
		t.Fatalf("forged token: got %d", w.Code)
	}
}

func TestRoleComesFromSessionNotToken(t *testing.T) {
	issuer := utils.NewTokenIssuer("secret", time.Hour)
	admin := models.NewAdminUser()
	r := newAuthEngine(issuer, &fakeSession{user: admin})

	token, _ := issuer.GenerateAccessToken(admin.ID, admin.Name, string(models.RoleAdmin))
	if w := doGet(r, "/admin", token); w.Code != http.StatusNoContent {
		t.Fatalf("admin route: got %d %s", w.Code, w.Body.String())
	}
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rl := NewRateLimiter(ctx, 0.001, 2)
	r := gin.New()
	r.POST("/login", RateLimit(rl), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected codes %v", codes)
	}

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other client should have its own budget, got %d", w.Code)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rl := NewRateLimiter(ctx, 1, 1)
	rl.get("1.2.3.4")
	rl.clients["1.2.3.4"].seen = time.Now().Add(-time.Hour)
	rl.cleanup(time.Minute)
	if len(rl.clients) != 0 {
		t.Fatalf("expected stale client to be removed, got %d", len(rl.clients))
	}
}

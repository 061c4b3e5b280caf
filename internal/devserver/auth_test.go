package devserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func signTestToken(t *testing.T, secret string, role string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(3),
		"role":    role,
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func authTestRouter(secret string, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", AuthRequired([]byte(secret), adminOnly), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": AuthUserID(c)})
	})
	return r
}

func TestAuthRequiredAcceptsValidToken(t *testing.T) {
	r := authTestRouter("secret", false)
	token := signTestToken(t, "secret", "user", time.Now().Add(time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("valid token rejected: %d %s", w.Code, w.Body.String())
	}
	var body struct {
		UserID domain.ID `json:"user_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if body.UserID != 3 {
		t.Fatalf("caller identity lost, got %d", body.UserID)
	}
}

func TestAuthRequiredRejects(t *testing.T) {
	r := authTestRouter("secret", false)

	cases := []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "not-a-jwt"},
		{"wrong secret", signTestToken(t, "other-secret", "user", time.Now().Add(time.Hour))},
		{"expired", signTestToken(t, "secret", "user", time.Now().Add(-time.Hour))},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if tc.token != "" {
			req.Header.Set("Authorization", "Bearer "+tc.token)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, w.Code)
		}
	}
}

func TestAuthRequiredAdminGate(t *testing.T) {
	r := authTestRouter("secret", true)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "secret", "user", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("passenger should not pass the admin gate, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, "secret", "admin", time.Now().Add(time.Hour)))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("admin rejected: %d %s", w.Code, w.Body.String())
	}
}

func TestLoginHandlerIssuesToken(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	mock.ExpectQuery("SELECT id, name, full_name, email, password_hash, role FROM users").
		WithArgs("t@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "full_name", "email", "password_hash", "role"}).
			AddRow(3, "t", "Test Traveler", "t@example.com", string(hash), "user"))

	srv := NewServer(db, "secret")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users/login", srv.Login)

	payload, _ := json.Marshal(map[string]string{"email": "t@example.com", "password": "pw"})
	req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var user models.User
	if err := json.Unmarshal(w.Body.Bytes(), &user); err != nil {
		t.Fatalf("decoding user: %v", err)
	}
	if user.AccessToken == "" {
		t.Fatalf("no token issued")
	}
	if tokenRole(t, user.AccessToken) != "user" {
		t.Fatalf("token role wrong")
	}
}

// tokenRole extracts the role claim without verification.
func tokenRole(t *testing.T, token string) string {
	t.Helper()
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		t.Fatalf("parsing token: %v", err)
	}
	role, _ := claims["role"].(string)
	return role
}

func TestLoginHandlerWrongPassword(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	mock.ExpectQuery("SELECT id, name, full_name, email, password_hash, role FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "full_name", "email", "password_hash", "role"}).
			AddRow(3, "t", "Test Traveler", "t@example.com", string(hash), "user"))

	srv := NewServer(db, "secret")
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/users/login", srv.Login)

	payload, _ := json.Marshal(map[string]string{"email": "t@example.com", "password": "wrong"})
	req := httptest.NewRequest(http.MethodPost, "/users/login", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password should 401, got %d", w.Code)
	}
}

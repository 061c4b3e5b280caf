package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"locotranz/internal/domain"
	"locotranz/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "state.json"))
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": int64(1),
		"role":    "user",
		"exp":     exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return signed
}

func TestUserRoundTrip(t *testing.T) {
	store := newTestStore(t)

	if _, ok, err := store.User(); err != nil || ok {
		t.Fatalf("fresh store should have no user, ok=%v err=%v", ok, err)
	}

	want := models.User{ID: 3, FullName: "Test Traveler", Email: "t@example.com", Role: "user"}
	if err := store.SaveUser(want); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	got, ok, err := store.User()
	if err != nil || !ok {
		t.Fatalf("User after save, ok=%v err=%v", ok, err)
	}
	if got.ID != want.ID || got.Email != want.Email {
		t.Fatalf("user did not round trip: %+v", got)
	}

	if err := store.ClearUser(); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}
	if _, ok, _ := store.User(); ok {
		t.Fatalf("user should be gone after clear")
	}
}

func TestDraftSurvivesUserClear(t *testing.T) {
	store := newTestStore(t)

	draft := models.BookingDraft{ScheduleID: 5, SeatIDs: []domain.ID{11, 12}, TotalAmount: "₹1050.00"}
	if err := store.SaveDraft(draft); err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}
	if err := store.SaveUser(models.User{ID: 1}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}
	if err := store.ClearUser(); err != nil {
		t.Fatalf("ClearUser: %v", err)
	}

	got, ok, err := store.Draft()
	if err != nil || !ok {
		t.Fatalf("draft lost, ok=%v err=%v", ok, err)
	}
	if got.ScheduleID != 5 || len(got.SeatIDs) != 2 {
		t.Fatalf("draft did not round trip: %+v", got)
	}
}

func TestAuthTokenWithoutSession(t *testing.T) {
	store := newTestStore(t)
	if _, err := store.AuthToken(); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestAuthTokenExpiredClearsSession(t *testing.T) {
	store := newTestStore(t)
	token := signedToken(t, time.Now().Add(-time.Hour))
	if err := store.SaveUser(models.User{ID: 1, AccessToken: token}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	if _, err := store.AuthToken(); !domain.IsUnauthorized(err) {
		t.Fatalf("expired token should be unauthorized, got %v", err)
	}
	if _, ok, _ := store.User(); ok {
		t.Fatalf("expired session should be cleared")
	}
}

func TestAuthTokenValid(t *testing.T) {
	store := newTestStore(t)
	token := signedToken(t, time.Now().Add(time.Hour))
	if err := store.SaveUser(models.User{ID: 1, AccessToken: token}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	got, err := store.AuthToken()
	if err != nil {
		t.Fatalf("AuthToken: %v", err)
	}
	if got != token {
		t.Fatalf("token changed in storage")
	}
}

func TestTokenExpired(t *testing.T) {
	now := time.Now()
	if TokenExpired(signedToken(t, now.Add(time.Hour)), now) {
		t.Fatalf("future token reported expired")
	}
	if !TokenExpired(signedToken(t, now.Add(-time.Minute)), now) {
		t.Fatalf("past token reported valid")
	}
	if TokenExpired("not-a-jwt", now) {
		t.Fatalf("unparsable token should defer to the backend")
	}
}

func TestCorruptStateFileResets(t *testing.T) {
	store := newTestStore(t)
	if err := store.SaveUser(models.User{ID: 1}); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	if err := os.WriteFile(store.path, []byte("{{{"), 0o600); err != nil {
		t.Fatalf("corrupting state: %v", err)
	}

	if _, ok, err := store.User(); err != nil || ok {
		t.Fatalf("corrupt state should read as empty, ok=%v err=%v", ok, err)
	}
	if err := store.SaveUser(models.User{ID: 2}); err != nil {
		t.Fatalf("SaveUser after corruption: %v", err)
	}
	got, ok, _ := store.User()
	if !ok || got.ID != 2 {
		t.Fatalf("store did not recover: %+v", got)
	}
}

package session_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"doctor-booking-client/internal/model"
	"doctor-booking-client/internal/session"
)

func newStore(t *testing.T, dir string) *session.Store {
	t.Helper()
	return session.NewStore(dir, zap.NewNop())
}

func makeToken(t *testing.T, exp time.Time) string {
	t.Helper()
	c := session.Claims{
		UserID: "u1",
		Role:   "PATIENT",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte("backend-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return tok
}

func patient() *model.User {
	return &model.User{ID: "u1", Name: "Ada", Email: "ada@b.com", Role: model.RolePatient}
}

// ----- state transitions -----

func TestLoginRoundTrip(t *testing.T) {
	st := newStore(t, t.TempDir())
	st.Initialize()

	tok := makeToken(t, time.Now().Add(time.Hour))
	st.Login(patient(), tok)

	snap := st.Snapshot()
	if !snap.Authenticated {
		t.Fatal("expected authenticated")
	}
	if snap.Token != tok {
		t.Errorf("token mismatch")
	}
	if snap.User == nil || snap.User.ID != "u1" || snap.User.Name != "Ada" {
		t.Errorf("user mismatch: %+v", snap.User)
	}
	if got := st.Token(); got != tok {
		t.Errorf("Token() = %q, want login token", got)
	}
}

func TestLogoutIdempotent(t *testing.T) {
	st := newStore(t, t.TempDir())
	st.Initialize()
	st.Login(patient(), makeToken(t, time.Now().Add(time.Hour)))

	st.Logout()
	first := st.Snapshot()
	st.Logout()
	second := st.Snapshot()

	for _, snap := range []session.Snapshot{first, second} {
		if snap.Authenticated {
			t.Error("expected unauthenticated")
		}
		if snap.User != nil {
			t.Error("expected user cleared")
		}
		if snap.Token != "" {
			t.Error("expected token cleared")
		}
	}
}

func TestUninitializedSnapshot(t *testing.T) {
	st := newStore(t, t.TempDir())

	snap := st.Snapshot()
	if snap.Initialized {
		t.Error("expected uninitialized before Initialize")
	}
	if snap.Authenticated {
		t.Error("expected unauthenticated before Initialize")
	}
}

// ----- persistence -----

func TestRehydrate(t *testing.T) {
	dir := t.TempDir()
	tok := makeToken(t, time.Now().Add(time.Hour))

	st := newStore(t, dir)
	st.Initialize()
	st.Login(patient(), tok)

	// fresh store over the same state dir, as after a process restart
	st2 := newStore(t, dir)
	st2.Initialize()

	snap := st2.Snapshot()
	if !snap.Initialized {
		t.Fatal("expected initialized")
	}
	if !snap.Authenticated {
		t.Fatal("expected rehydrated session to be authenticated")
	}
	if snap.User == nil || snap.User.Email != "ada@b.com" {
		t.Errorf("user not restored: %+v", snap.User)
	}
	if snap.Token != tok {
		t.Error("token not restored")
	}
}

func TestRehydrateExpiredTokenDiscarded(t *testing.T) {
	dir := t.TempDir()
	st := newStore(t, dir)
	st.Initialize()
	st.Login(patient(), makeToken(t, time.Now().Add(-time.Minute)))

	st2 := newStore(t, dir)
	st2.Initialize()

	snap := st2.Snapshot()
	if !snap.Initialized {
		t.Fatal("expected initialized")
	}
	if snap.Authenticated {
		t.Error("expired token must not rehydrate as authenticated")
	}
	if snap.Token != "" {
		t.Error("expected empty token")
	}
}

func TestRehydrateCorruptSnapshot(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "session.json"), []byte("{nope"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	st := newStore(t, dir)
	st.Initialize()

	snap := st.Snapshot()
	if !snap.Initialized {
		t.Fatal("corrupt snapshot must still complete initialization")
	}
	if snap.Authenticated {
		t.Error("corrupt snapshot must not authenticate")
	}
}

func TestInitializeOnce(t *testing.T) {
	dir := t.TempDir()
	st := newStore(t, dir)
	st.Initialize()
	st.Login(patient(), makeToken(t, time.Now().Add(time.Hour)))
	st.Logout()

	// a second Initialize must not resurrect state from an earlier write
	st.Initialize()
	if st.Snapshot().Authenticated {
		t.Error("second Initialize must be a no-op")
	}
}

func TestStorageUnavailable(t *testing.T) {
	// point the store at a path that cannot be created
	dir := filepath.Join(t.TempDir(), "blocked")
	if err := os.WriteFile(dir, []byte("file, not dir"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	st := newStore(t, filepath.Join(dir, "nested"))
	st.Initialize()
	st.Login(patient(), makeToken(t, time.Now().Add(time.Hour)))

	// in-memory state stays authoritative even though persistence failed
	if !st.Snapshot().Authenticated {
		t.Error("login must succeed in memory when storage is unavailable")
	}
	st.Logout()
	if st.Snapshot().Authenticated {
		t.Error("logout must succeed in memory when storage is unavailable")
	}
}

// ----- claims -----

func TestParseClaims(t *testing.T) {
	tok := makeToken(t, time.Now().Add(time.Hour))

	c, err := session.ParseClaims(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c.UserID != "u1" {
		t.Errorf("uid: got %s", c.UserID)
	}
	if c.Role != "PATIENT" {
		t.Errorf("role: got %s", c.Role)
	}
}

func TestParseClaimsExpired(t *testing.T) {
	tok := makeToken(t, time.Now().Add(-time.Minute))
	if _, err := session.ParseClaims(tok); err != session.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestParseClaimsGarbage(t *testing.T) {
	if _, err := session.ParseClaims("not.a.token"); err == nil {
		t.Error("expected error for garbage token")
	}
}

package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"pagos/internal/models"
)

func testSession() models.Session {
	return models.Session{
		Token:     "tok123",
		TokenType: "Bearer",
		UserID:    "u1",
		Email:     "a@b.com",
		Name:      "Ana",
		Role:      "PAYER",
	}
}

func newStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestSaveAndCurrent(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(testSession()))

	sess, err := store.Current()
	require.NoError(t, err)
	require.Equal(t, "Bearer tok123", sess.AuthHeader)
	require.Equal(t, "Ana", sess.Name)
	require.Equal(t, "Bearer tok123", store.AuthHeader())
}

func TestCurrentWithoutFile(t *testing.T) {
	store := newStore(t)
	_, err := store.Current()
	require.ErrorIs(t, err, ErrNoSession)
	require.Empty(t, store.AuthHeader())
}

func TestPartialSessionReadsAsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	partial, _ := json.Marshal(map[string]string{"token": "tok", "tokenType": "Bearer"})
	require.NoError(t, os.WriteFile(path, partial, 0o600))

	store := NewStore(path)
	_, err := store.Current()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSaveRefusesIncomplete(t *testing.T) {
	store := newStore(t)
	sess := testSession()
	sess.Email = ""
	require.Error(t, store.Save(sess))
	_, err := store.Current()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestClear(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(testSession()))
	require.NoError(t, store.Clear())
	_, err := store.Current()
	require.ErrorIs(t, err, ErrNoSession)
	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

// unsignedJWT builds a syntactically valid token with the given exp claim;
// the store never verifies signatures.
func unsignedJWT(t *testing.T, exp time.Time) string {
	t.Helper()
	header := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"HS256","typ":"JWT"}`))
	claims := base64.RawURLEncoding.EncodeToString([]byte(fmt.Sprintf(`{"exp":%d}`, exp.Unix())))
	return header + "." + claims + ".x"
}

func TestExpiresAt(t *testing.T) {
	store := newStore(t)
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	sess := testSession()
	sess.Token = unsignedJWT(t, exp)
	require.NoError(t, store.Save(sess))

	got, ok := store.ExpiresAt()
	require.True(t, ok)
	require.Equal(t, exp.Unix(), got.Unix())
	require.False(t, store.Expired(time.Now()))
	require.True(t, store.Expired(exp.Add(time.Minute)))
}

func TestExpiresAtOpaqueToken(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.Save(testSession()))

	_, ok := store.ExpiresAt()
	require.False(t, ok)
	require.False(t, store.Expired(time.Now()))
}

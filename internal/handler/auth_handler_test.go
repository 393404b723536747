package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"pagos/internal/api"
	"pagos/internal/models"
	"pagos/internal/notify"
	"pagos/internal/session"
)

type fakeLoginAPI struct {
	calls int
	sess  models.Session
	err   error
}

func (f *fakeLoginAPI) Login(ctx context.Context, email, password string) (models.Session, error) {
	f.calls++
	return f.sess, f.err
}

func loginEngine(t *testing.T, client LoginAPI) (*gin.Engine, *session.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"))
	h := NewAuthHandler(client, store, notify.NewCenter())

	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)
	return r, store
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLoginEmptyFieldsSkipsNetwork(t *testing.T) {
	client := &fakeLoginAPI{}
	r, store := loginEngine(t, client)

	w := postForm(r, "/login", url.Values{"email": {""}, "password": {""}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Completá email y contraseña.")
	require.Zero(t, client.calls)

	_, err := store.Current()
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestLoginInvalidCredentials(t *testing.T) {
	client := &fakeLoginAPI{err: api.ErrInvalidCredentials}
	r, store := loginEngine(t, client)

	w := postForm(r, "/login", url.Values{"email": {"a@b.com"}, "password": {"nope"}})
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Credenciales inválidas.")
	require.Equal(t, 1, client.calls)

	// No session key is persisted on failure.
	_, err := store.Current()
	require.ErrorIs(t, err, session.ErrNoSession)
}

func TestLoginSuccessPersistsAndRedirects(t *testing.T) {
	client := &fakeLoginAPI{sess: models.Session{
		Token: "tok", TokenType: "Bearer", UserID: "u1",
		Email: "a@b.com", Name: "Ana", Role: "PAYER",
	}}
	r, store := loginEngine(t, client)

	w := postForm(r, "/login", url.Values{"email": {"a@b.com"}, "password": {"secret"}})
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/payments", w.Header().Get("Location"))

	sess, err := store.Current()
	require.NoError(t, err)
	require.Equal(t, "Bearer tok", sess.AuthHeader)
}

func TestLogoutClearsSession(t *testing.T) {
	client := &fakeLoginAPI{sess: models.Session{
		Token: "tok", TokenType: "Bearer", UserID: "u1",
		Email: "a@b.com", Name: "Ana", Role: "PAYER",
	}}
	r, store := loginEngine(t, client)
	postForm(r, "/login", url.Values{"email": {"a@b.com"}, "password": {"secret"}})

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	_, err := store.Current()
	require.ErrorIs(t, err, session.ErrNoSession)
}

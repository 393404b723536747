package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"pagos/internal/api"
	"pagos/internal/models"
	"pagos/internal/notify"
	"pagos/internal/session"
)

// User-facing messages of the login flow.
const (
	MsgMissingCredentials = "Completá email y contraseña."
	MsgInvalidCredentials = "Credenciales inválidas."
	MsgUnexpectedError    = "Ocurrió un error inesperado."
)

// LoginAPI is the slice of the API client the auth handler needs.
type LoginAPI interface {
	Login(ctx context.Context, email, password string) (models.Session, error)
}

type AuthHandler struct {
	client  LoginAPI
	store   *session.Store
	notices *notify.Center
}

func NewAuthHandler(client LoginAPI, store *session.Store, notices *notify.Center) *AuthHandler {
	return &AuthHandler{client: client, store: store, notices: notices}
}

func (h *AuthHandler) ShowLogin(c *gin.Context) {
	if _, err := h.store.Current(); err == nil {
		c.Redirect(http.StatusFound, "/payments")
		return
	}
	c.HTML(http.StatusOK, "login", gin.H{"Notices": h.notices.Active(), "Email": ""})
}

// Login validates the form locally (empty fields never reach the network),
// exchanges credentials and persists the session on success.
func (h *AuthHandler) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	if email == "" || password == "" {
		h.notices.Push(notify.Error, MsgMissingCredentials)
		c.HTML(http.StatusOK, "login", gin.H{"Notices": h.notices.Active(), "Email": email})
		return
	}

	sess, err := h.client.Login(c.Request.Context(), email, password)
	if err != nil {
		msg := MsgUnexpectedError
		if err == api.ErrInvalidCredentials {
			msg = MsgInvalidCredentials
		}
		h.notices.Push(notify.Error, msg)
		c.HTML(http.StatusOK, "login", gin.H{"Notices": h.notices.Active(), "Email": email})
		return
	}
	if err := h.store.Save(sess); err != nil {
		h.notices.Push(notify.Error, MsgUnexpectedError)
		c.HTML(http.StatusOK, "login", gin.H{"Notices": h.notices.Active(), "Email": email})
		return
	}
	c.Redirect(http.StatusFound, "/payments")
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.store.Clear(); err != nil {
		h.notices.Push(notify.Error, MsgUnexpectedError)
	}
	c.Redirect(http.StatusFound, "/login")
}

// DismissNotice drops a banner before its auto-expiry.
func (h *AuthHandler) DismissNotice(c *gin.Context) {
	if id, err := strconv.Atoi(c.Param("id")); err == nil {
		h.notices.Dismiss(id)
	}
	back := c.Request.Referer()
	if back == "" {
		back = "/payments"
	}
	c.Redirect(http.StatusFound, back)
}

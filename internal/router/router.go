package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pagos/config"
	"pagos/internal/api"
	"pagos/internal/cache"
	"pagos/internal/handler"
	"pagos/internal/middleware"
	"pagos/internal/notify"
	"pagos/internal/session"
)

// Setup wires the local web UI around the API client, the persisted session
// and the sqlite cache. db may be nil; listing then runs without an offline
// fallback.
func Setup(cfg *config.Config, client *api.Client, store *session.Store, db *gorm.DB) *gin.Engine {
	if cfg.Serve.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.SetHTMLTemplate(handler.Templates())

	var repo *cache.PaymentRepository
	if db != nil {
		repo = cache.NewPaymentRepository(db)
	}

	notices := notify.NewCenter()
	authHandler := handler.NewAuthHandler(client, store, notices)
	paymentsHandler := handler.NewPaymentsHandler(client, repo, store, notices)
	checkoutHandler := handler.NewCheckoutHandler(client, store, notices)
	invoiceHandler := handler.NewInvoiceHandler(client, notices)

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, "/payments") })
	r.GET("/login", authHandler.ShowLogin)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)
	r.GET("/notices/:id/dismiss", authHandler.DismissNotice)

	authed := r.Group("/", middleware.SessionRequired(store))
	{
		authed.GET("/payments", paymentsHandler.List)
		authed.GET("/payments.csv", paymentsHandler.ExportCSV)
		authed.GET("/payments/:id", paymentsHandler.Detail)
		authed.POST("/payments/:id/refund", paymentsHandler.RequestRefund)

		authed.GET("/payments/:id/checkout", checkoutHandler.Show)
		authed.POST("/payments/:id/checkout/wallet", checkoutHandler.SelectWallet)
		authed.POST("/payments/:id/checkout/card", checkoutHandler.SubmitCard)
		authed.POST("/payments/:id/checkout/purchase", checkoutHandler.Purchase)

		authed.GET("/payments/:id/invoice", invoiceHandler.Preview)
	}

	return r
}

package httpx

import (
	"net/http"

	"github.com/Rathore23/auth-microservice/internal/http/handlers"
	"github.com/Rathore23/auth-microservice/internal/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups every handler set the router mounts
type Handlers struct {
	Registration *handlers.RegistrationHandlers
	Auth         *handlers.AuthHandlers
	Accounts     *handlers.AccountHandlers
	Products     *handlers.ProductHandlers
	Policies     *handlers.PolicyHandlers
}

// BuildRouter mounts every route on a new gin engine with recovery and request logging
func BuildRouter(h Handlers, authmw *middleware.AuthMW, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })

	reg := r.Group("/registration")
	reg.POST("", h.Registration.Register)
	reg.POST("/resent-otp", h.Registration.ResendOTP)
	reg.POST("/otp-verify", h.Registration.VerifyOTP)
	reg.POST("/reset-password-email", h.Registration.ResetPasswordEmail)
	reg.POST("/reset-password/:id", h.Registration.ResetPassword)

	auth := r.Group("/auth")
	auth.POST("/send-otp", h.Auth.SendOTP)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/refresh", h.Auth.Refresh)
	auth.DELETE("/logout", authmw.RequireAuth(), h.Auth.Logout)

	// Authorization is decided per object inside the services, so
	// anonymous callers reach them and are refused there.
	acc := r.Group("/accounts", authmw.OptionalAuth())
	acc.GET("/:id", h.Accounts.Get)
	acc.PATCH("/:id", h.Accounts.Update)
	acc.DELETE("/:id", h.Accounts.Delete)

	prod := r.Group("/products", authmw.OptionalAuth())
	prod.GET("", h.Products.List)
	prod.POST("", h.Products.Create)
	prod.GET("/:id", h.Products.Get)
	prod.PUT("/:id", h.Products.Replace)
	prod.PATCH("/:id", h.Products.PartialUpdate)
	prod.DELETE("/:id", h.Products.Delete)

	adm := r.Group("/admin", authmw.RequireAuth(), authmw.RequireStaff())
	adm.GET("/policies", h.Policies.List)
	adm.POST("/policies", h.Policies.Add)
	adm.DELETE("/policies", h.Policies.Remove)

	return r
}

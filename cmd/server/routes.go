package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"trust-fund.backend/internal/interfaces/http/handlers"
	"trust-fund.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	userHandler    *handlers.UserHandler
	kycHandler     *handlers.KYCHandler
	bankHandler    *handlers.BankAccountHandler
	authMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/refresh", d.authHandler.Refresh)
			auth.POST("/google-login", d.authHandler.GoogleLogin)
			auth.POST("/supabase-login", d.authHandler.SupabaseLogin)
			auth.POST("/send-otp", middleware.IdempotencyMiddleware(), d.authHandler.SendOtp)
			auth.POST("/verify-otp", d.authHandler.VerifyOtp)
			auth.POST("/reset-password", d.authHandler.ResetPassword)
			auth.POST("/verify-email", d.authHandler.VerifyEmail)
			auth.GET("/check-email", d.authHandler.CheckEmail)
		}

		// Current user (protected)
		v1.GET("/me", d.authMiddleware, d.authHandler.Me)

		// User routes (protected; management endpoints are staff-only)
		users := v1.Group("/users")
		users.Use(d.authMiddleware)
		{
			users.PUT("/me", d.userHandler.UpdateProfile)
			users.GET("", middleware.RequireStaff(), d.userHandler.List)
			users.GET("/:id", middleware.RequireStaff(), d.userHandler.GetByID)
			users.PATCH("/:id/active", middleware.RequireAdmin(), d.userHandler.SetActive)
			users.DELETE("/:id", middleware.RequireAdmin(), d.userHandler.Delete)
		}

		// KYC routes (protected)
		kyc := v1.Group("/kyc")
		kyc.Use(d.authMiddleware)
		{
			kyc.POST("", d.kycHandler.Submit)
			kyc.GET("/me", d.kycHandler.GetMine)
			kyc.GET("", middleware.RequireStaff(), d.kycHandler.List)
			kyc.PATCH("/:id", middleware.RequireStaff(), d.kycHandler.Review)
		}

		// Bank account routes (protected)
		bankAccounts := v1.Group("/bank-accounts")
		bankAccounts.Use(d.authMiddleware)
		{
			bankAccounts.POST("", d.bankHandler.Create)
			bankAccounts.GET("", d.bankHandler.ListMine)
			bankAccounts.GET("/:id", d.bankHandler.GetByID)
			bankAccounts.PATCH("/:id", middleware.RequireStaff(), d.bankHandler.Review)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization, Refresh-Token, Idempotency-Key, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}

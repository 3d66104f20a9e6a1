package routes

import (
	"github.com/gin-gonic/gin"

	"furnimart/internal/handlers"
	"furnimart/internal/middleware"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	otpHandler *handlers.OTPHandler,
	paymentHandler *handlers.PaymentHandler,
) *gin.Engine {

	api := r.Group("/api")

	// ---- public
	api.POST("/signup", authHandler.Signup)
	api.POST("/login", authHandler.Login)
	api.POST("/send-otp", otpHandler.SendOTP)
	api.POST("/verify-otp", otpHandler.VerifyOTP)

	razorpay := api.Group("/razorpay")
	{
		razorpay.POST("/create-order", paymentHandler.CreateOrder)
		razorpay.POST("/verify-payment", paymentHandler.VerifyPayment)
	}

	// ---- protected
	authed := api.Group("", middleware.AuthMiddleware())
	{
		authed.GET("/me", authHandler.Me)
	}

	return r
}

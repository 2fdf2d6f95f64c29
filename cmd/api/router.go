package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	emailDelivery "umailer-backend/internal/email/delivery"
	emailUsecase "umailer-backend/internal/email/usecase"
)

func SetupRoutes(r *gin.Engine, emailUc emailUsecase.EmailUsecase) {
	emailHandler := emailDelivery.NewEmailHandler(emailUc)

	// Liveness check
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Hello, I'm umailer!"})
	})

	emails := r.Group("/emails")
	{
		emails.POST("/download", emailHandler.DownloadEmails)
		emails.POST("/download-by-uid", emailHandler.DownloadEmailByUID)
		emails.GET("/:id", emailHandler.GetEmailByID)
	}
}

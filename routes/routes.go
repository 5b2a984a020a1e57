package routes

import (
	"github.com/gin-gonic/gin"

	"trackly-server/handlers"
	"trackly-server/service"
)

func InitRouter() *gin.Engine {
	r := gin.Default()

	// CORS first: the SPA is served from a different origin in development.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	r.MaxMultipartMemory = 32 << 20

	// Public
	r.POST("/user/register", handlers.Register)
	r.POST("/user/login", handlers.Login)
	r.GET("/links/title", handlers.LinkTitle)

	// Everything else needs a bearer token.
	auth := r.Group("/", service.AuthRequired())

	auth.GET("/user/info", handlers.GetUserInfo)

	auth.POST("/entities", handlers.CreateEntity)
	auth.GET("/entities", handlers.ListEntities)
	auth.GET("/entities/:id", handlers.GetEntity)
	auth.PUT("/entities/:id", handlers.UpdateEntity)
	auth.DELETE("/entities/:id", handlers.DeleteEntity)
	auth.POST("/entities/:id/archive", handlers.ArchiveEntity)

	auth.POST("/entries", handlers.CreateEntry)
	auth.GET("/entries", handlers.ListEntries)
	auth.GET("/entries/:id", handlers.GetEntry)
	auth.PUT("/entries/:id", handlers.UpdateEntry)
	auth.DELETE("/entries/:id", handlers.DeleteEntry)
	auth.POST("/entries/:id/archive", handlers.ArchiveEntry)

	auth.GET("/hashtags", handlers.ListHashtags)
	auth.POST("/upload/image", handlers.UploadImage)

	return r
}

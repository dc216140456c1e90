package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/helpdesk-demo/ticket-service/api"
	"github.com/helpdesk-demo/ticket-service/internal/directory"
	"github.com/helpdesk-demo/ticket-service/internal/handler"
	"github.com/helpdesk-demo/ticket-service/internal/middleware"
	"github.com/helpdesk-demo/ticket-service/internal/session"
)

const (
	pathHealth  = "/health"
	pathReady   = "/ready"
	pathSwagger = "/swagger"
)

func New(ticketHandler *handler.TicketHandler, sessions *session.Manager, dir *directory.Directory, log *zap.Logger) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(log))

	r.GET(pathHealth, handler.Health)
	r.GET(pathReady, handler.Ready)
	r.GET(pathSwagger, func(c *gin.Context) { c.Redirect(http.StatusFound, pathSwagger+"/") })
	r.GET(pathSwagger+"/*any", func(c *gin.Context) {
		if strings.TrimPrefix(c.Param("any"), "/") == "openapi.json" {
			c.Data(http.StatusOK, "application/json", api.OpenAPISpec)
			return
		}
		if strings.TrimPrefix(c.Param("any"), "/") == "" {
			c.Request.URL.Path = pathSwagger + "/index.html"
			c.Request.RequestURI = pathSwagger + "/index.html"
		}
		ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/openapi.json"))(c)
	})

	apiGroup := r.Group("/api")
	apiGroup.POST("/login", ticketHandler.Login)

	authed := apiGroup.Group("")
	authed.Use(middleware.Auth(sessions, dir))
	{
		authed.GET("/tickets", ticketHandler.ListVisible)
		authed.GET("/:userId/tickets", ticketHandler.ListByOwner)
		authed.POST("/ticket/create", ticketHandler.Create)
		authed.POST("/ticket/update", ticketHandler.Update)
	}

	return r
}

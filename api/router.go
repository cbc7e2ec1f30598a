package api

import (
	"net/http"
	"time"

	"github.com/Domenick1991/fitstudio/docs"
	"github.com/Domenick1991/fitstudio/internal/service/booking"
	"github.com/Domenick1991/fitstudio/internal/service/classes"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterOptions struct {
	DefaultZone    string
	RequestTimeout time.Duration
	Swagger        bool
}

func NewRouter(classSvc classes.ClassUseCase, bookingSvc booking.BookingUseCase, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(), Timeout(opts.RequestTimeout))

	root := router.Group("/")
	NewClassHandler(classSvc, opts.DefaultZone).Register(root)
	NewBookingHandler(bookingSvc, opts.DefaultZone).Register(root)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.Swagger {
		router.GET("/openapi.json", func(c *gin.Context) {
			c.Data(http.StatusOK, "application/json", docs.OpenAPI)
		})
		router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}

	return router
}

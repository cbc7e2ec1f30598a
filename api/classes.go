package api

import (
	"net/http"

	"github.com/Domenick1991/fitstudio/internal/service/classes"
	"github.com/gin-gonic/gin"
)

type ClassHandler struct {
	service     classes.ClassUseCase
	defaultZone string
}

func NewClassHandler(service classes.ClassUseCase, defaultZone string) *ClassHandler {
	return &ClassHandler{service: service, defaultZone: defaultZone}
}

func (h *ClassHandler) Register(router *gin.RouterGroup) {
	router.GET("/classes", h.list)
}

func (h *ClassHandler) list(c *gin.Context) {
	zone := c.DefaultQuery("timezone", h.defaultZone)

	views, err := h.service.ListClasses(c.Request.Context(), zone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

package api

import (
	"net/http"

	"github.com/Domenick1991/fitstudio/internal/service/booking"
	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service     booking.BookingUseCase
	defaultZone string
}

// ClassID is a pointer so that 0 counts as present and reaches the store,
// which reports it as an unknown class.
type createBookingRequest struct {
	ClassID     *int64 `json:"class_id" binding:"required"`
	ClientName  string `json:"client_name" binding:"required"`
	ClientEmail string `json:"client_email" binding:"required"`
}

func NewBookingHandler(service booking.BookingUseCase, defaultZone string) *BookingHandler {
	return &BookingHandler{service: service, defaultZone: defaultZone}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("/bookings", h.list)
	router.POST("/book", h.create)
}

func (h *BookingHandler) list(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required query parameter: 'email'."})
		return
	}
	zone := c.DefaultQuery("timezone", h.defaultZone)

	views, err := h.service.ListBookingsForClient(c.Request.Context(), email, zone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err, req)})
		return
	}
	zone := c.DefaultQuery("timezone", h.defaultZone)

	receipt, err := h.service.CreateBooking(c.Request.Context(), booking.CreateBookingInput{
		ClassID:     *req.ClassID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
	}, zone)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, receipt)
}

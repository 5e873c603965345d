package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/service"
	apperrors "github.com/mumtazka/kolam-sub000/pkg/app_errors"
	"github.com/mumtazka/kolam-sub000/pkg/logger"
)

type TicketHandler struct {
	issuance service.IssuanceService
	queries  service.TicketQueryService
}

func NewTicketHandler(issuance service.IssuanceService, queries service.TicketQueryService) *TicketHandler {
	return &TicketHandler{issuance: issuance, queries: queries}
}

func (h *TicketHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("tickets/batch", h.IssueBatch)
		router.GET("tickets", h.GetTicketsByDate)
		router.GET("tickets/:code", h.GetTicket)
		router.GET("batches/:batch_id/tickets", h.GetBatchTickets)
	}
}

func (h *TicketHandler) IssueBatch(c *gin.Context) {
	var req model.IssueBatchRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	result, err := h.issuance.IssueBatch(c, req.Items, req.StaffContext)
	if err != nil {
		h.handleTicketError(c, err, "IssueBatch")
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *TicketHandler) GetTicket(c *gin.Context) {
	ticket, err := h.queries.GetByCode(c, c.Param("code"))
	if err != nil {
		h.handleTicketError(c, err, "GetTicket")
		return
	}

	c.JSON(http.StatusOK, ticket)
}

func (h *TicketHandler) GetBatchTickets(c *gin.Context) {
	batchID, ok := ParseUUIDParam(c, "batch_id")
	if !ok {
		return
	}

	tickets, err := h.queries.ListByBatchID(c, batchID)
	if err != nil {
		h.handleTicketError(c, err, "GetBatchTickets")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

func (h *TicketHandler) GetTicketsByDate(c *gin.Context) {
	day, err := time.ParseInLocation("2006-01-02", c.Query("date"), time.Local)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid date, expected YYYY-MM-DD",
		})
		return
	}

	tickets, err := h.queries.ListByDate(c, day)
	if err != nil {
		h.handleTicketError(c, err, "GetTicketsByDate")
		return
	}

	c.JSON(http.StatusOK, tickets)
}

// handleTicketError maps issuance failures to HTTP answers. Validation
// errors keep their specific message (which category, which duplicate id)
// so the operator can fix the cart.
func (h *TicketHandler) handleTicketError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrCategoryNotFound),
		errors.Is(err, apperrors.ErrPackageNotFound),
		errors.Is(err, apperrors.ErrTicketNotFound):
		log.Warn("Not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrMissingStudentID),
		errors.Is(err, apperrors.ErrDuplicateStudentID),
		errors.Is(err, apperrors.ErrBelowPackageMinimum),
		errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Cart validation failed")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, apperrors.ErrIssuanceFailed):
		log.Error("Issuance failed")
		c.JSON(http.StatusConflict, gin.H{
			"error": err.Error(),
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

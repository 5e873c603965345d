package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/service"
	apperrors "github.com/mumtazka/kolam-sub000/pkg/app_errors"
	"github.com/mumtazka/kolam-sub000/pkg/logger"
)

type CategoryHandler struct {
	service service.CategoryService
}

func NewCategoryHandler(service service.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("categories", h.GetCategories)
		router.GET("categories/:category_id", h.GetCategory)
		router.POST("categories", h.CreateCategory)
		router.PUT("categories/:category_id", h.UpdateCategory)
		router.DELETE("categories/:category_id", h.DeleteCategory)
	}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.List(c)
	if err != nil {
		h.handleCategoryError(c, err, "GetCategories")
		return
	}

	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	categoryID, ok := ParseUUIDParam(c, "category_id")
	if !ok {
		return
	}

	category, err := h.service.GetByCategoryID(c, categoryID)
	if err != nil {
		h.handleCategoryError(c, err, "GetCategory")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req model.CreateCategoryRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	category, err := h.service.Create(c, req)
	if err != nil {
		h.handleCategoryError(c, err, "CreateCategory")
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID, ok := ParseUUIDParam(c, "category_id")
	if !ok {
		return
	}

	var params model.UpdateCategoryParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	category, err := h.service.UpdateByCategoryID(c, categoryID, params)
	if err != nil {
		h.handleCategoryError(c, err, "UpdateCategory")
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID, ok := ParseUUIDParam(c, "category_id")
	if !ok {
		return
	}

	err := h.service.DeleteByCategoryID(c, categoryID)
	if err != nil {
		h.handleCategoryError(c, err, "DeleteCategory")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CategoryHandler) handleCategoryError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrCategoryNotFound):
		log.Warn("Category not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Category not found",
		})
	case errors.Is(err, apperrors.ErrPrefixTaken),
		errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid category payload")
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": err.Error(),
		})
	default:
		log.Error("Unexpected error")
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}

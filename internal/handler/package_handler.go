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

type PackageHandler struct {
	service service.PackageService
}

func NewPackageHandler(service service.PackageService) *PackageHandler {
	return &PackageHandler{service: service}
}

func (h *PackageHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.GET("packages", h.GetPackages)
		router.GET("packages/:package_id", h.GetPackage)
		router.POST("packages", h.CreatePackage)
		router.PUT("packages/:package_id", h.UpdatePackage)
		router.DELETE("packages/:package_id", h.DeletePackage)
	}
}

func (h *PackageHandler) GetPackages(c *gin.Context) {
	packages, err := h.service.List(c)
	if err != nil {
		h.handlePackageError(c, err, "GetPackages")
		return
	}

	c.JSON(http.StatusOK, packages)
}

func (h *PackageHandler) GetPackage(c *gin.Context) {
	packageID, ok := ParseUUIDParam(c, "package_id")
	if !ok {
		return
	}

	pkg, err := h.service.GetByPackageID(c, packageID)
	if err != nil {
		h.handlePackageError(c, err, "GetPackage")
		return
	}

	c.JSON(http.StatusOK, pkg)
}

func (h *PackageHandler) CreatePackage(c *gin.Context) {
	var req model.CreatePackageRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	pkg, err := h.service.Create(c, req)
	if err != nil {
		h.handlePackageError(c, err, "CreatePackage")
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

func (h *PackageHandler) UpdatePackage(c *gin.Context) {
	packageID, ok := ParseUUIDParam(c, "package_id")
	if !ok {
		return
	}

	var params model.UpdatePackageParams
	if err := BindJson(c, &params); err != nil {
		return
	}

	pkg, err := h.service.UpdateByPackageID(c, packageID, params)
	if err != nil {
		h.handlePackageError(c, err, "UpdatePackage")
		return
	}

	c.JSON(http.StatusOK, pkg)
}

func (h *PackageHandler) DeletePackage(c *gin.Context) {
	packageID, ok := ParseUUIDParam(c, "package_id")
	if !ok {
		return
	}

	err := h.service.DeleteByPackageID(c, packageID)
	if err != nil {
		h.handlePackageError(c, err, "DeletePackage")
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *PackageHandler) handlePackageError(c *gin.Context, err error, operation string) {
	log := logger.WithComponent("handler").With(zap.String("operation", operation), zap.Error(err))
	switch {
	case errors.Is(err, apperrors.ErrPackageNotFound):
		log.Warn("Package not found")
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Package not found",
		})
	case errors.Is(err, apperrors.ErrInvalidInput):
		log.Warn("Invalid package payload")
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

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/internal/service"
)

type ScanHandler struct {
	redemption service.RedemptionService
}

func NewScanHandler(redemption service.RedemptionService) *ScanHandler {
	return &ScanHandler{redemption: redemption}
}

func (h *ScanHandler) RegisterRoutes(r *gin.Engine) {
	router := r.Group("/api/v1")
	{
		router.POST("scans", h.Scan)
	}
}

// Scan runs one gate redemption. INVALID and USED verdicts answer 200 like
// VALID does: they are normal outcomes the scanner UI renders, not HTTP
// failures. Only ERROR (store unreachable) maps to 502 so the operator
// knows to retry the physical scan.
func (h *ScanHandler) Scan(c *gin.Context) {
	var req model.ScanRequest

	if err := BindJson(c, &req); err != nil {
		return
	}

	verdict := h.redemption.Redeem(c, req.Code, req.StaffContext, req.PoolID)

	if verdict.Status == model.ScanStatusError {
		c.JSON(http.StatusBadGateway, verdict)
		return
	}

	c.JSON(http.StatusOK, verdict)
}

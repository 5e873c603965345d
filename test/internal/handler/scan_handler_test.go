package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mumtazka/kolam-sub000/internal/handler"
	"github.com/mumtazka/kolam-sub000/internal/model"
	"github.com/mumtazka/kolam-sub000/test/internal/mocks/services"
)

func setupScanTestRouter(mockService *services.RedemptionServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	scanHandler := handler.NewScanHandler(mockService)
	scanHandler.RegisterRoutes(router)

	return router
}

func scanPayload(code string) model.ScanRequest {
	return model.ScanRequest{
		Code:   code,
		PoolID: "pool-1",
		StaffContext: model.StaffContext{
			ID:    "staff-1",
			Name:  "Budi",
			Shift: "PAGI",
		},
	}
}

func TestScan(t *testing.T) {
	t.Run("Valid ticket answers 200", func(t *testing.T) {
		mockService := services.NewRedemptionServiceMock()
		router := setupScanTestRouter(mockService)

		mockService.On("Redeem", mock.Anything, "UM-20250714-0001-KPTX", mock.Anything, "pool-1").
			Return(&model.Verdict{Success: true, Status: model.ScanStatusValid, Message: "ticket validated"}).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/scans", scanPayload("UM-20250714-0001-KPTX"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var verdict model.Verdict
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verdict))
		assert.True(t, verdict.Success)
		assert.Equal(t, model.ScanStatusValid, verdict.Status)
		mockService.AssertExpectations(t)
	})

	t.Run("Used ticket still answers 200", func(t *testing.T) {
		mockService := services.NewRedemptionServiceMock()
		router := setupScanTestRouter(mockService)

		mockService.On("Redeem", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&model.Verdict{Success: false, Status: model.ScanStatusUsed, Message: "ticket already used"}).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/scans", scanPayload("UM-20250714-0001-KPTX"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var verdict model.Verdict
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &verdict))
		assert.False(t, verdict.Success)
		assert.Equal(t, model.ScanStatusUsed, verdict.Status)
	})

	t.Run("Unknown code answers 200 with INVALID", func(t *testing.T) {
		mockService := services.NewRedemptionServiceMock()
		router := setupScanTestRouter(mockService)

		mockService.On("Redeem", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&model.Verdict{Success: false, Status: model.ScanStatusInvalid, Message: "ticket not found"}).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/scans", scanPayload("XX-00000000-0000-XXXX"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Infrastructure failure answers 502", func(t *testing.T) {
		mockService := services.NewRedemptionServiceMock()
		router := setupScanTestRouter(mockService)

		mockService.On("Redeem", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(&model.Verdict{Success: false, Status: model.ScanStatusError, Message: "system error: connection refused"}).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/scans", scanPayload("UM-20250714-0001-KPTX"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("Malformed body answers 400", func(t *testing.T) {
		mockService := services.NewRedemptionServiceMock()
		router := setupScanTestRouter(mockService)

		req := createRawHTTPRequest("POST", "/api/v1/scans", InvalidJSON)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Missing staff context answers 400", func(t *testing.T) {
		mockService := services.NewRedemptionServiceMock()
		router := setupScanTestRouter(mockService)

		req := createRawHTTPRequest("POST", "/api/v1/scans", `{"code": "UM-20250714-0001-KPTX", "pool_id": "pool-1"}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

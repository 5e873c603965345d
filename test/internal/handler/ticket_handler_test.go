package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mumtazka/kolam-sub000/internal/handler"
	"github.com/mumtazka/kolam-sub000/internal/model"
	apperrors "github.com/mumtazka/kolam-sub000/pkg/app_errors"
	"github.com/mumtazka/kolam-sub000/test/internal/mocks/services"
)

func setupTicketTestRouter(issuance *services.IssuanceServiceMock, queries *services.TicketQueryServiceMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	ticketHandler := handler.NewTicketHandler(issuance, queries)
	ticketHandler.RegisterRoutes(router)

	return router
}

func issueBatchPayload(categoryID uuid.UUID, quantity int) model.IssueBatchRequest {
	return model.IssueBatchRequest{
		Items: []model.CartItem{
			{CategoryID: categoryID, Quantity: quantity},
		},
		StaffContext: model.StaffContext{
			ID:    "staff-1",
			Name:  "Budi",
			Shift: "PAGI",
		},
	}
}

func TestIssueBatchEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		batchID := uuid.New()
		issuance.On("IssueBatch", mock.Anything, mock.Anything, mock.Anything).
			Return(&model.IssueBatchResult{
				BatchID:      batchID,
				TotalTickets: 2,
				Tickets: []*model.Ticket{
					{TicketCode: "UM-20250714-0001-KPTX", BatchID: batchID},
					{TicketCode: "UM-20250714-0002-WNRZ", BatchID: batchID},
				},
			}, nil).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/batch", issueBatchPayload(uuid.New(), 2))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), batchID.String())
		issuance.AssertExpectations(t)
	})

	t.Run("Failed - ErrCategoryNotFound", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		issuance.On("IssueBatch", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrCategoryNotFound).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/batch", issueBatchPayload(uuid.New(), 1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Failed - ErrMissingStudentID", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		issuance.On("IssueBatch", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrMissingStudentID).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/batch", issueBatchPayload(uuid.New(), 1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), apperrors.ErrMissingStudentID.Error())
	})

	t.Run("Failed - ErrIssuanceFailed", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		issuance.On("IssueBatch", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrIssuanceFailed).Once()

		req := createJSONHTTPRequest("POST", "/api/v1/tickets/batch", issueBatchPayload(uuid.New(), 1))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Failed - empty items rejected at binding", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		req := createRawHTTPRequest("POST", "/api/v1/tickets/batch",
			`{"items": [], "staff_id": "staff-1", "staff_name": "Budi", "shift": "PAGI"}`)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		issuance.AssertNotCalled(t, "IssueBatch", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestGetTicket(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		queries.On("GetByCode", mock.Anything, "UM-20250714-0001-KPTX").
			Return(&model.Ticket{TicketCode: "UM-20250714-0001-KPTX"}, nil).Once()

		req, _ := http.NewRequest("GET", "/api/v1/tickets/UM-20250714-0001-KPTX", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "UM-20250714-0001-KPTX")
	})

	t.Run("Failed - not found", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		queries.On("GetByCode", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrTicketNotFound).Once()

		req, _ := http.NewRequest("GET", "/api/v1/tickets/XX-00000000-0000-XXXX", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetBatchTickets(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		batchID := uuid.New()
		queries.On("ListByBatchID", mock.Anything, batchID).
			Return([]*model.Ticket{{BatchID: batchID}}, nil).Once()

		req, _ := http.NewRequest("GET", "/api/v1/batches/"+batchID.String()+"/tickets", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - malformed batch id", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		req, _ := http.NewRequest("GET", "/api/v1/batches/not-a-uuid/tickets", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		queries.AssertNotCalled(t, "ListByBatchID", mock.Anything, mock.Anything)
	})
}

func TestGetTicketsByDate(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		queries.On("ListByDate", mock.Anything, mock.Anything).
			Return([]*model.Ticket{}, nil).Once()

		req, _ := http.NewRequest("GET", "/api/v1/tickets?date=2025-07-14", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Failed - malformed date", func(t *testing.T) {
		issuance := services.NewIssuanceServiceMock()
		queries := services.NewTicketQueryServiceMock()
		router := setupTicketTestRouter(issuance, queries)

		req, _ := http.NewRequest("GET", "/api/v1/tickets?date=14-07-2025", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

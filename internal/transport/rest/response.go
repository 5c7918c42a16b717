package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freedesk/internal/domain"
	"freedesk/internal/service"
)

type errorResponseBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
	Reason  string `json:"reason,omitempty"`
}

// paymentRequiredBody lists the invoices the client has to settle first.
type paymentRequiredBody struct {
	errorResponseBody
	Invoices []domain.Invoice `json:"invoices"`
}

// rescheduleIncompleteBody carries the new appointment of a reschedule whose
// old appointment still has to be cancelled.
type rescheduleIncompleteBody struct {
	errorResponseBody
	Appointment *domain.Appointment `json:"appointment"`
	OldID       int64               `json:"old_id"`
}

type successResponseBody struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

type messageResponseType struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type paginatedResponse struct {
	Data       interface{} `json:"data"`
	TotalCount int         `json:"total_count"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

func successResponse(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func errorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, errorBody(statusCode, message))
}

func errorBody(statusCode int, message string) errorResponseBody {
	return errorResponseBody{
		Status:  "error",
		Message: message,
		Code:    statusCode,
	}
}

func messageResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, messageResponseType{
		Status:  "success",
		Message: message,
	})
}

func paginatedSuccessResponse(c *gin.Context, data interface{}, totalCount, page, pageSize int) {
	totalPages := 0
	if pageSize > 0 {
		totalPages = totalCount / pageSize
		if totalCount%pageSize > 0 {
			totalPages++
		}
	}

	c.JSON(http.StatusOK, paginatedResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	})
}

func createdResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, successResponseBody{
		Status: "success",
		Data:   data,
	})
}

func noContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func badRequestResponse(c *gin.Context, message string) {
	errorResponse(c, http.StatusBadRequest, message)
}

func unauthorizedResponse(c *gin.Context) {
	errorResponse(c, http.StatusUnauthorized, "требуется авторизация")
}

func forbiddenResponse(c *gin.Context, message ...string) {
	msg := "доступ запрещен"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	errorResponse(c, http.StatusForbidden, msg)
}

// serviceErrorResponse is the single place where service errors become HTTP
// statuses.
func (h *Handler) serviceErrorResponse(c *gin.Context, err error) {
	var (
		validationErr   *domain.ValidationError
		slotErr         *domain.SlotUnavailableError
		paymentErr      *domain.PaymentRequiredError
		transitionErr   *domain.IllegalTransitionError
		incompleteErr   *domain.RescheduleIncompleteError
		collaboratorErr *domain.CollaboratorError
	)

	switch {
	case errors.As(err, &validationErr):
		body := errorBody(http.StatusBadRequest, validationErr.Error())
		body.Field = validationErr.Field
		c.AbortWithStatusJSON(http.StatusBadRequest, body)

	case errors.As(err, &slotErr):
		body := errorBody(http.StatusConflict, "выбранное время недоступно")
		body.Reason = string(slotErr.Reason)
		c.AbortWithStatusJSON(http.StatusConflict, body)

	case errors.As(err, &paymentErr):
		invoices := paymentErr.Invoices
		if invoices == nil {
			invoices = []domain.Invoice{}
		}
		c.AbortWithStatusJSON(http.StatusPaymentRequired, paymentRequiredBody{
			errorResponseBody: errorBody(http.StatusPaymentRequired, "есть неоплаченные счета"),
			Invoices:          invoices,
		})

	case errors.As(err, &transitionErr):
		h.logger.Error("недопустимый переход статуса", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusConflict, errorBody(http.StatusConflict, transitionErr.Error()))

	case errors.As(err, &incompleteErr):
		h.logger.Error("перенос выполнен частично", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadGateway, rescheduleIncompleteBody{
			errorResponseBody: errorBody(http.StatusBadGateway, "новая запись создана, исходную необходимо отменить вручную"),
			Appointment:       incompleteErr.NewAppointment,
			OldID:             incompleteErr.OldID,
		})

	case errors.Is(err, domain.ErrNotFound):
		errorResponse(c, http.StatusNotFound, "не найдено")

	case errors.Is(err, domain.ErrForbidden):
		forbiddenResponse(c)

	case errors.Is(err, domain.ErrAlreadyExists):
		errorResponse(c, http.StatusConflict, "уже существует")

	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidToken):
		errorResponse(c, http.StatusUnauthorized, err.Error())

	case errors.Is(err, service.ErrAccountDisabled):
		errorResponse(c, http.StatusForbidden, err.Error())

	case errors.As(err, &collaboratorErr):
		h.logger.Error("ошибка внешнего компонента", zap.String("op", collaboratorErr.Op), zap.Error(err))
		errorResponse(c, http.StatusBadGateway, "сервис временно недоступен")

	default:
		h.logger.Error("внутренняя ошибка", zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

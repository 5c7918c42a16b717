package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"freedesk/internal/domain"
)

// @Summary Неоплаченные счета
// @Description Клиент видит свои счета, фрилансер указывает client_id
// @Tags Счета
// @Produce json
// @Param client_id query int false "ID клиента (только для фрилансера)"
// @Success 200 {array} domain.Invoice
// @Failure 400 {object} errorResponseBody "Не указан клиент"
// @Failure 502 {object} errorResponseBody "Модуль счетов недоступен"
// @Security ApiKeyAuth
// @Router /invoices/unpaid [get]
func (h *Handler) getUnpaidInvoices(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var clientID int64
	switch {
	case identity.ClientID != nil:
		clientID = *identity.ClientID
	case identity.IsFreelancer():
		clientID, err = strconv.ParseInt(c.Query("client_id"), 10, 64)
		if err != nil {
			badRequestResponse(c, "укажите client_id")
			return
		}
	default:
		forbiddenResponse(c)
		return
	}

	invoices, err := h.services.Invoices.UnpaidInvoices(c.Request.Context(), clientID)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}
	if invoices == nil {
		invoices = []domain.Invoice{}
	}

	successResponse(c, http.StatusOK, invoices)
}

// @Summary Выгрузка агенды
// @Description Загружает iCalendar с записями за период в хранилище и возвращает временную ссылку
// @Tags Агенда
// @Produce json
// @Param from query string true "С даты YYYY-MM-DD"
// @Param to query string false "По дату YYYY-MM-DD, по умолчанию +30 дней"
// @Success 200 {object} domain.AgendaExport
// @Failure 400 {object} errorResponseBody "Неверный период"
// @Failure 502 {object} errorResponseBody "Хранилище недоступно"
// @Security ApiKeyAuth
// @Router /agenda/export [get]
func (h *Handler) exportAgenda(c *gin.Context) {
	from, err := domain.ParseDate(c.Query("from"))
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	to := from.Add(30 * 24 * time.Hour)
	if toStr := c.Query("to"); toStr != "" {
		to, err = domain.ParseDate(toStr)
		if err != nil {
			badRequestResponse(c, err.Error())
			return
		}
	}

	export, err := h.services.Export.ExportAgenda(c.Request.Context(), from, to)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, export)
}

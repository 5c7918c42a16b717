package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freedesk/internal/domain"
)

// @Summary Запросить запись
// @Description Клиент запрашивает слот. Клиент определяется по токену
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.BookingRequestDTO true "Слот"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 402 {object} paymentRequiredBody "Есть неоплаченные счета"
// @Failure 403 {object} errorResponseBody "Доступно только клиенту"
// @Failure 409 {object} errorResponseBody "Слот недоступен"
// @Failure 429 {object} errorResponseBody "Слишком много запросов"
// @Failure 502 {object} errorResponseBody "Ошибка внешнего компонента"
// @Security ApiKeyAuth
// @Router /appointments [post]
func (h *Handler) requestAppointment(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.BookingRequestDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	appointment, err := h.services.Booking.RequestBooking(c.Request.Context(), identity, input)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, appointment)
}

// @Summary Записать клиента
// @Description Фрилансер создает подтвержденную запись для клиента
// @Tags Записи
// @Accept json
// @Produce json
// @Param input body domain.FreelancerBookingDTO true "Клиент и слот"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 402 {object} paymentRequiredBody "Есть неоплаченные счета"
// @Failure 409 {object} errorResponseBody "Слот недоступен"
// @Security ApiKeyAuth
// @Router /appointments/book [post]
func (h *Handler) bookAppointment(c *gin.Context) {
	var input domain.FreelancerBookingDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	appointment, err := h.services.Booking.BookForClient(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, appointment)
}

// @Summary Список записей
// @Description Клиент видит только свои записи
// @Tags Записи
// @Produce json
// @Param status query string false "Статус"
// @Param client_id query int false "ID клиента (только для фрилансера)"
// @Param date_from query string false "С даты YYYY-MM-DD"
// @Param date_to query string false "По дату YYYY-MM-DD"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {object} paginatedResponse
// @Failure 400 {object} errorResponseBody "Неверные параметры"
// @Security ApiKeyAuth
// @Router /appointments [get]
func (h *Handler) getAppointments(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter := domain.AppointmentFilter{}

	if statusStr := c.Query("status"); statusStr != "" {
		status := domain.AppointmentStatus(statusStr)
		if !status.Valid() {
			badRequestResponse(c, "неизвестный статус записи")
			return
		}
		filter.Status = &status
	}

	if clientStr := c.Query("client_id"); clientStr != "" {
		clientID, err := strconv.ParseInt(clientStr, 10, 64)
		if err != nil {
			badRequestResponse(c, "неверный формат client_id")
			return
		}
		filter.ClientID = &clientID
	}

	if dateFrom := c.Query("date_from"); dateFrom != "" {
		date, err := domain.ParseDate(dateFrom)
		if err != nil {
			badRequestResponse(c, err.Error())
			return
		}
		filter.StartDate = &date
	}

	if dateTo := c.Query("date_to"); dateTo != "" {
		date, err := domain.ParseDate(dateTo)
		if err != nil {
			badRequestResponse(c, err.Error())
			return
		}
		filter.EndDate = &date
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	filter.Limit = limit
	filter.Offset = offset

	appointments, total, err := h.services.Booking.List(c.Request.Context(), identity, filter)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	paginatedSuccessResponse(c, appointments, total, offset/limit+1, limit)
}

// @Summary Получить запись по ID
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id} [get]
func (h *Handler) getAppointmentByID(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	appointment, err := h.services.Booking.GetByID(c.Request.Context(), identity, id)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Подтвердить запись
// @Description Повторное подтверждение ничего не меняет
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Failure 409 {object} errorResponseBody "Запись отменена"
// @Security ApiKeyAuth
// @Router /appointments/{id}/confirm [post]
func (h *Handler) confirmAppointment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	appointment, err := h.services.Booking.Confirm(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Отменить запись
// @Description Повторная отмена ничего не меняет
// @Tags Записи
// @Produce json
// @Param id path int true "ID записи"
// @Success 200 {object} domain.Appointment
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Failure 404 {object} errorResponseBody "Запись не найдена"
// @Security ApiKeyAuth
// @Router /appointments/{id}/cancel [post]
func (h *Handler) cancelAppointment(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	appointment, err := h.services.Booking.Cancel(c.Request.Context(), identity, id)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, appointment)
}

// @Summary Перенести запись
// @Description Новая запись создается до отмены исходной. При неудаче исходная запись не меняется.
// @Description Новое время не может пересекаться с исходной записью, пока она не отменена
// @Tags Записи
// @Accept json
// @Produce json
// @Param id path int true "ID записи"
// @Param input body domain.RescheduleDTO true "Новый слот"
// @Success 200 {object} domain.RescheduleResult
// @Failure 402 {object} paymentRequiredBody "Есть неоплаченные счета"
// @Failure 409 {object} errorResponseBody "Слот недоступен или запись отменена"
// @Failure 502 {object} rescheduleIncompleteBody "Новая запись создана, исходная не отменена"
// @Security ApiKeyAuth
// @Router /appointments/{id}/reschedule [post]
func (h *Handler) rescheduleAppointment(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	id, ok := pathID(c)
	if !ok {
		return
	}

	var input domain.RescheduleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	result, err := h.services.Booking.Reschedule(c.Request.Context(), identity, id, input)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, result)
}

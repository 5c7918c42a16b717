package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freedesk/internal/domain"
)

// @Summary Правила доступности
// @Description Возвращает недельные правила доступности фрилансера
// @Tags Доступность
// @Produce json
// @Param day_of_week query int false "День недели, 0 - понедельник"
// @Param active_only query bool false "Только активные"
// @Success 200 {array} domain.AvailabilityRule
// @Failure 400 {object} errorResponseBody "Неверные параметры"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /availability/rules [get]
func (h *Handler) getAvailabilityRules(c *gin.Context) {
	var filter domain.AvailabilityRuleFilter

	if day := c.Query("day_of_week"); day != "" {
		value, err := strconv.Atoi(day)
		if err != nil {
			badRequestResponse(c, "неверный день недели")
			return
		}
		weekday := domain.Weekday(value)
		filter.DayOfWeek = &weekday
	}
	filter.ActiveOnly = c.Query("active_only") == "true"

	rules, err := h.services.Availability.ListRules(c.Request.Context(), filter)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, rules)
}

// @Summary Добавить правило доступности
// @Tags Доступность
// @Accept json
// @Produce json
// @Param input body domain.CreateAvailabilityRuleDTO true "Правило"
// @Success 201 {object} domain.AvailabilityRule
// @Failure 400 {object} errorResponseBody "Ошибка валидации"
// @Failure 403 {object} errorResponseBody "Доступ запрещен"
// @Security ApiKeyAuth
// @Router /availability/rules [post]
func (h *Handler) createAvailabilityRule(c *gin.Context) {
	var input domain.CreateAvailabilityRuleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	rule, err := h.services.Availability.AddRule(c.Request.Context(), input)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, rule)
}

// @Summary Получить правило доступности
// @Tags Доступность
// @Produce json
// @Param id path int true "ID правила"
// @Success 200 {object} domain.AvailabilityRule
// @Failure 404 {object} errorResponseBody "Правило не найдено"
// @Security ApiKeyAuth
// @Router /availability/rules/{id} [get]
func (h *Handler) getAvailabilityRuleByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	rule, err := h.services.Availability.GetRule(c.Request.Context(), id)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, rule)
}

// @Summary Включить или выключить правило
// @Description Уже созданные записи не затрагиваются
// @Tags Доступность
// @Accept json
// @Produce json
// @Param id path int true "ID правила"
// @Param input body domain.ToggleAvailabilityRuleDTO true "Активность"
// @Success 200 {object} domain.AvailabilityRule
// @Failure 404 {object} errorResponseBody "Правило не найдено"
// @Security ApiKeyAuth
// @Router /availability/rules/{id} [patch]
func (h *Handler) toggleAvailabilityRule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var input domain.ToggleAvailabilityRuleDTO
	if err := c.ShouldBindJSON(&input); err != nil {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	rule, err := h.services.Availability.ToggleRule(c.Request.Context(), id, *input.IsActive)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, rule)
}

// @Summary Удалить правило доступности
// @Description Уже созданные записи не затрагиваются
// @Tags Доступность
// @Param id path int true "ID правила"
// @Success 204 {object} nil
// @Failure 404 {object} errorResponseBody "Правило не найдено"
// @Security ApiKeyAuth
// @Router /availability/rules/{id} [delete]
func (h *Handler) deleteAvailabilityRule(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.services.Availability.DeleteRule(c.Request.Context(), id); err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	noContentResponse(c)
}

// @Summary Слоты на дату
// @Description Слоты вычисляются из активных правил при каждом запросе
// @Tags Доступность
// @Produce json
// @Param date query string true "Дата YYYY-MM-DD"
// @Success 200 {array} domain.Slot
// @Failure 400 {object} errorResponseBody "Неверная дата"
// @Security ApiKeyAuth
// @Router /slots [get]
func (h *Handler) getSlots(c *gin.Context) {
	date, err := domain.ParseDate(c.Query("date"))
	if err != nil {
		badRequestResponse(c, err.Error())
		return
	}

	slots, err := h.services.Booking.AvailableSlots(c.Request.Context(), date)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, slots)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		badRequestResponse(c, "неверный формат ID")
		return 0, false
	}
	return id, true
}

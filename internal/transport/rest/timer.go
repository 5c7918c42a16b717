package rest

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freedesk/internal/domain"
)

// @Summary Таймеры
// @Description Запущенные и приостановленные таймеры текущего пользователя
// @Tags Учет времени
// @Produce json
// @Success 200 {array} domain.TimerSession
// @Security ApiKeyAuth
// @Router /timers [get]
func (h *Handler) getTimers(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	sessions, err := h.services.Timer.List(c.Request.Context(), identity.UserID)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, sessions)
}

// @Summary Запустить таймер
// @Description Запускает новый или возобновляет приостановленный таймер
// @Tags Учет времени
// @Produce json
// @Param category path string true "Категория"
// @Success 200 {object} domain.TimerSession
// @Failure 400 {object} errorResponseBody "Неверная категория"
// @Security ApiKeyAuth
// @Router /timers/{category}/start [post]
func (h *Handler) startTimer(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	session, err := h.services.Timer.Start(c.Request.Context(), identity.UserID, c.Param("category"))
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, session)
}

// @Summary Приостановить таймер
// @Tags Учет времени
// @Produce json
// @Param category path string true "Категория"
// @Success 200 {object} domain.TimerSession
// @Failure 404 {object} errorResponseBody "Таймер не найден"
// @Security ApiKeyAuth
// @Router /timers/{category}/pause [post]
func (h *Handler) pauseTimer(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	session, err := h.services.Timer.Pause(c.Request.Context(), identity.UserID, c.Param("category"))
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, session)
}

// @Summary Остановить таймер
// @Description Сохраняет накопленное время и удаляет таймер
// @Tags Учет времени
// @Accept json
// @Produce json
// @Param category path string true "Категория"
// @Param input body domain.StopTimerDTO false "Заметка"
// @Success 201 {object} domain.TimeEntry
// @Failure 404 {object} errorResponseBody "Таймер не найден"
// @Security ApiKeyAuth
// @Router /timers/{category}/stop [post]
func (h *Handler) stopTimer(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	var input domain.StopTimerDTO
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("неверный формат данных", zap.Error(err))
		badRequestResponse(c, "неверный формат данных")
		return
	}

	entry, err := h.services.Timer.Stop(c.Request.Context(), identity.UserID, c.Param("category"), input)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	createdResponse(c, entry)
}

// @Summary Учтенное время
// @Tags Учет времени
// @Produce json
// @Param category query string false "Категория"
// @Param from query string false "С даты YYYY-MM-DD"
// @Param to query string false "По дату YYYY-MM-DD"
// @Param limit query int false "Размер страницы"
// @Param offset query int false "Смещение"
// @Success 200 {array} domain.TimeEntry
// @Security ApiKeyAuth
// @Router /timers/entries [get]
func (h *Handler) getTimeEntries(c *gin.Context) {
	identity, err := getIdentity(c)
	if err != nil {
		unauthorizedResponse(c)
		return
	}

	filter := domain.TimeEntryFilter{UserID: &identity.UserID}

	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if from := c.Query("from"); from != "" {
		date, err := domain.ParseDate(from)
		if err != nil {
			badRequestResponse(c, err.Error())
			return
		}
		filter.From = &date
	}
	if to := c.Query("to"); to != "" {
		date, err := domain.ParseDate(to)
		if err != nil {
			badRequestResponse(c, err.Error())
			return
		}
		next := date.AddDate(0, 0, 1)
		filter.To = &next
	}

	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	filter.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.services.Timer.Entries(c.Request.Context(), filter)
	if err != nil {
		h.serviceErrorResponse(c, err)
		return
	}

	successResponse(c, http.StatusOK, entries)
}

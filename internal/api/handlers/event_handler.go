package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Sonder9999/Daily-Web/internal/api/dto"
	"github.com/Sonder9999/Daily-Web/internal/api/middleware"
	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/event"
	"github.com/Sonder9999/Daily-Web/internal/domain/layout"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgEventCreated = "事件添加成功"
	msgEventUpdated = "事件更新成功"
	msgEventDeleted = "事件删除成功"
)

// EventHandler handles HTTP requests for daily events
type EventHandler struct {
	service event.Service
	logger  *zap.Logger
}

func NewEventHandler(service event.Service, logger *zap.Logger) *EventHandler {
	return &EventHandler{service: service, logger: logger}
}

func parseID(c *gin.Context) (uint, error) {
	return parseEventID(c.Param("id"))
}

// parseEventID accepts ids in 1..MaxInt64, the range of the bigint column.
func parseEventID(raw string) (uint, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.NewValidation("id", "invalid event id %q", raw)
	}
	return uint(id), nil
}

func isDigits(s string) bool {
	return s != "" && strings.TrimLeft(s, "0123456789") == ""
}

// ListEvents godoc
// @Summary List the events of a day
// @Description Events of one date ordered by start time. A numeric path value is treated as an event id instead.
// @Tags events
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD) or event id"
// @Success 200 {array} dto.EventResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/events/{date} [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	param := c.Param("date")
	if isDigits(param) {
		id, err := parseEventID(param)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		e, err := h.service.GetEvent(c.Request.Context(), id)
		if err != nil {
			respondError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, EventToResponse(e))
		return
	}

	events, err := h.service.ListByDate(c.Request.Context(), param)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, EventsToResponse(events))
}

// GetLayout godoc
// @Summary Hour-by-hour layout of a day
// @Tags events
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} dto.LayoutResponse
// @Router /api/events/{date}/layout [get]
func (h *EventHandler) GetLayout(c *gin.Context) {
	date := event.NormalizeDate(c.Param("date"))
	events, err := h.service.ListByDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	slots, err := layout.Build(events)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.LayoutResponse{Date: date, Hours: slots})
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Param event body dto.EventRequest true "Event"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/events [post]
func (h *EventHandler) CreateEvent(c *gin.Context) {
	req, ok := validated[dto.EventRequest](c, middleware.ValidatedModelKey)
	if !ok {
		req = &dto.EventRequest{}
		if err := c.ShouldBindJSON(req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
	}

	created, err := h.service.CreateEvent(c.Request.Context(), EventRequestToInput(req))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{ID: created.ID, Message: msgEventCreated})
}

// UpdateEvent overwrites every field of the event. A missing id is not an
// error.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	req, ok := validated[dto.EventRequest](c, middleware.ValidatedModelKey)
	if !ok {
		req = &dto.EventRequest{}
		if err := c.ShouldBindJSON(req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
	}

	if err := h.service.UpdateEvent(c.Request.Context(), id, EventRequestToInput(req)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgEventUpdated})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	if err := h.service.DeleteEvent(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: msgEventDeleted})
}

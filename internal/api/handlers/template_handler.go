package handlers

import (
	"net/http"

	"github.com/Sonder9999/Daily-Web/internal/api/dto"
	"github.com/Sonder9999/Daily-Web/internal/api/middleware"
	"github.com/Sonder9999/Daily-Web/internal/domain/template"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgTemplateCreated = "事件模板添加成功"

type TemplateHandler struct {
	service template.Service
	logger  *zap.Logger
}

func NewTemplateHandler(service template.Service, logger *zap.Logger) *TemplateHandler {
	return &TemplateHandler{service: service, logger: logger}
}

// ListTemplates godoc
// @Summary List event name templates
// @Tags templates
// @Produce json
// @Success 200 {array} dto.TemplateResponse
// @Router /api/event-templates [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.service.ListTemplates(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, TemplatesToResponse(templates))
}

// CreateTemplate godoc
// @Summary Add an event name template
// @Tags templates
// @Accept json
// @Produce json
// @Param template body dto.CreateTemplateRequest true "Template"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse "Empty or duplicate name"
// @Router /api/event-templates [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	req, ok := validated[dto.CreateTemplateRequest](c, middleware.ValidatedModelKey)
	if !ok {
		req = &dto.CreateTemplateRequest{}
		if err := c.ShouldBindJSON(req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
			return
		}
	}

	tpl, err := h.service.CreateTemplate(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{ID: tpl.ID, Message: msgTemplateCreated})
}

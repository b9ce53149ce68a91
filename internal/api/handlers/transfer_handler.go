package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Sonder9999/Daily-Web/internal/api/dto"
	"github.com/Sonder9999/Daily-Web/internal/api/middleware"
	"github.com/Sonder9999/Daily-Web/internal/domain/apperror"
	"github.com/Sonder9999/Daily-Web/internal/domain/transfer"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// importField is the multipart field carrying the upload.
const importField = "file"

type TransferHandler struct {
	service        transfer.Service
	maxUploadBytes int64
	logger         *zap.Logger
}

func NewTransferHandler(service transfer.Service, maxUploadBytes int64, logger *zap.Logger) *TransferHandler {
	return &TransferHandler{service: service, maxUploadBytes: maxUploadBytes, logger: logger}
}

// Export godoc
// @Summary Download events as JSON, Markdown or iCalendar
// @Description startDate and endDate are optional but must be given together.
// @Tags transfer
// @Produce json
// @Produce text/markdown
// @Produce text/calendar
// @Param startDate query string false "First date"
// @Param endDate query string false "Last date"
// @Param format query string false "json (default), md or ics"
// @Success 200 {file} file
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/export [get]
func (h *TransferHandler) Export(c *gin.Context) {
	q, ok := validated[dto.ExportQuery](c, middleware.ValidatedQueryKey)
	if !ok {
		q = &dto.ExportQuery{}
		if err := c.ShouldBindQuery(q); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid query parameters"})
			return
		}
	}

	format, err := transfer.ParseFormat(q.Format)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	out, err := h.service.Export(c.Request.Context(), transfer.Range{StartDate: q.StartDate, EndDate: q.EndDate}, format)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, out.Filename))
	c.Data(http.StatusOK, out.ContentType, out.Body)
}

// Import godoc
// @Summary Import events from an exported file
// @Description Entries already stored with the same date, times and name are skipped.
// @Tags transfer
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "A .json, .md or .ics export"
// @Success 200 {object} dto.ImportResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/import [post]
func (h *TransferHandler) Import(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	header, err := c.FormFile(importField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, dto.ErrorResponse{
				Error: fmt.Sprintf("文件过大，最大 %d 字节", tooLarge.Limit),
			})
			return
		}
		respondError(c, h.logger, apperror.NewValidation(importField, "请选择要导入的文件"))
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	defer file.Close()

	result, err := h.service.Import(c.Request.Context(), header.Filename, file)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ImportResponse{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Total:    result.Total,
	})
}

// ListImports returns the most recent import runs, newest first.
func (h *TransferHandler) ListImports(c *gin.Context) {
	limit := 0
	if q, ok := validated[dto.ImportListQuery](c, middleware.ValidatedQueryKey); ok {
		limit = q.Limit
	}

	records, err := h.service.ListImports(c.Request.Context(), limit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, ImportRecordsToResponse(records))
}

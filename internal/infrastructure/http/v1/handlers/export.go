package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"robotpacc/internal/domain/export"
	"robotpacc/internal/domain/reports"
	"robotpacc/internal/infrastructure/http/v1/dto"
)

// ExportHandler serves spreadsheet downloads.
type ExportHandler struct {
	*BaseHandler
	service *export.Service
	now     func() time.Time
}

// NewExportHandler creates a new export handler.
func NewExportHandler(base *BaseHandler, service *export.Service) *ExportHandler {
	return &ExportHandler{BaseHandler: base, service: service, now: time.Now}
}

// Export handles GET /export/:kind?itemcode=&phone=
// The workbook is rendered in memory so that failures still produce a JSON error.
func (h *ExportHandler) Export(c *gin.Context) {
	kind, err := reports.ParseMovementKind(c.Param("kind"))
	if err != nil {
		h.Error(c, err)
		return
	}
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	var buf bytes.Buffer
	if err := h.service.Export(c.Request.Context(), kind, q.ToFilter(), &buf); err != nil {
		h.Error(c, err)
		return
	}

	filename := fmt.Sprintf("%s-%s.xlsx", kind, h.now().UTC().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

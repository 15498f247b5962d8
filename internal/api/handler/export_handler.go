package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/JEEVAA0107/attendance-sub001/internal/service"
	pkgerrors "github.com/JEEVAA0107/attendance-sub001/pkg/errors"
	"github.com/JEEVAA0107/attendance-sub001/pkg/response"
)

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportDailyReport 导出日报为 Excel
// GET /api/v1/export/daily?date=2026-08-24
func (h *ExportHandler) ExportDailyReport(c *gin.Context) {
	buf, filename, err := h.exportSvc.ExportDailyReport(c.Request.Context(), c.Query("date"), c.Query("batch"))
	if err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrInvalidDate):
			response.BadRequest(c, 10004, "日期无效，应为 YYYY-MM-DD 格式")
		case errors.Is(err, service.ErrExportGenerateFail):
			response.InternalError(c)
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

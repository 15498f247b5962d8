package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JEEVAA0107/attendance-sub001/internal/dto"
	"github.com/JEEVAA0107/attendance-sub001/internal/service"
	pkgerrors "github.com/JEEVAA0107/attendance-sub001/pkg/errors"
	"github.com/JEEVAA0107/attendance-sub001/pkg/response"
)

// StaffHandler 教职工与课表模块 HTTP 处理器
type StaffHandler struct {
	staffSvc service.StaffService
}

// NewStaffHandler 创建 StaffHandler
func NewStaffHandler(staffSvc service.StaffService) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc}
}

// Create 新增教职工
// POST /api/v1/staff
func (h *StaffHandler) Create(c *gin.Context) {
	var req dto.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	staff, err := h.staffSvc.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrStaffNoTaken) {
			response.BadRequest(c, 13001, "工号已存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, staff)
}

// Get 查询单个教职工
// GET /api/v1/staff/:id
func (h *StaffHandler) Get(c *gin.Context) {
	staff, err := h.staffSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			response.NotFound(c, 13002, "教职工不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, staff)
}

// Update 更新教职工
// PUT /api/v1/staff/:id
func (h *StaffHandler) Update(c *gin.Context) {
	var req dto.UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	staff, err := h.staffSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			response.NotFound(c, 13002, "教职工不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, staff)
}

// Delete 删除教职工（软删除）
// DELETE /api/v1/staff/:id
func (h *StaffHandler) Delete(c *gin.Context) {
	if err := h.staffSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			response.NotFound(c, 13002, "教职工不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, nil)
}

// List 分页查询教职工
// GET /api/v1/staff?page=1&page_size=20&department=CSE
func (h *StaffHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	staff, total, err := h.staffSvc.List(c.Request.Context(), c.Query("department"), (page-1)*pageSize, pageSize)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OKPage(c, staff, total, page, pageSize)
}

// UpsertTimetableEntry 设置课表槽位
// PUT /api/v1/staff/:id/timetable
func (h *StaffHandler) UpsertTimetableEntry(c *gin.Context) {
	var req dto.UpsertTimetableEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	entry, err := h.staffSvc.UpsertTimetableEntry(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrStaffNotFound):
			response.NotFound(c, 13002, "教职工不存在")
		case errors.Is(err, service.ErrTimetableSubject):
			response.BadRequest(c, 13003, "课表引用的科目不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, entry)
}

// GetDaySchedule 查询某日课程安排
// GET /api/v1/staff/:id/schedule?date=2026-08-24
func (h *StaffHandler) GetDaySchedule(c *gin.Context) {
	date := c.Query("date")

	schedule, err := h.staffSvc.GetDaySchedule(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		switch {
		case errors.Is(err, pkgerrors.ErrInvalidDate):
			response.BadRequest(c, 10004, "日期无效，应为 YYYY-MM-DD 格式")
		case errors.Is(err, service.ErrStaffNotFound):
			response.NotFound(c, 13002, "教职工不存在")
		default:
			response.InternalError(c)
		}
		return
	}
	response.OK(c, schedule)
}

// GetTimetable 查询完整周课表
// GET /api/v1/staff/:id/timetable
func (h *StaffHandler) GetTimetable(c *gin.Context) {
	entries, err := h.staffSvc.GetTimetable(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrStaffNotFound) {
			response.NotFound(c, 13002, "教职工不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, entries)
}

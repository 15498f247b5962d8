package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/JEEVAA0107/attendance-sub001/internal/service"
	"github.com/JEEVAA0107/attendance-sub001/pkg/response"
)

// SubjectHandler 科目模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

type createSubjectRequest struct {
	Code string `json:"code" binding:"required,max=32"`
	Name string `json:"name" binding:"required,max=128"`
}

// Create 新增科目
// POST /api/v1/subjects
func (h *SubjectHandler) Create(c *gin.Context) {
	var req createSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	subject, err := h.subjectSvc.Create(c.Request.Context(), req.Code, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrSubjectCodeTaken) {
			response.BadRequest(c, 14001, "科目代码已存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.Created(c, subject)
}

// Get 查询单个科目
// GET /api/v1/subjects/:id
func (h *SubjectHandler) Get(c *gin.Context) {
	subject, err := h.subjectSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrSubjectNotFound) {
			response.NotFound(c, 14002, "科目不存在")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, subject)
}

// List 查询全部科目
// GET /api/v1/subjects
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjectSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, subjects)
}

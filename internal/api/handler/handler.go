package handler

import "github.com/JEEVAA0107/attendance-sub001/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth       *AuthHandler
	Student    *StudentHandler
	Staff      *StaffHandler
	Subject    *SubjectHandler
	Attendance *AttendanceHandler
	Report     *ReportHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Student:    NewStudentHandler(svc.Student),
		Staff:      NewStaffHandler(svc.Staff),
		Subject:    NewSubjectHandler(svc.Subject),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Report:     NewReportHandler(svc.Report),
		Export:     NewExportHandler(svc.Export),
	}
}

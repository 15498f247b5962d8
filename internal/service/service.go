package service

import (
	"go.uber.org/zap"

	"github.com/JEEVAA0107/attendance-sub001/config"
	"github.com/JEEVAA0107/attendance-sub001/internal/repository"
	"github.com/JEEVAA0107/attendance-sub001/pkg/jwt"
	"github.com/JEEVAA0107/attendance-sub001/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth       AuthService
	Student    StudentService
	Staff      StaffService
	Subject    SubjectService
	Attendance AttendanceService
	Report     ReportService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	report := NewReportService(&cfg.Attendance, repo, logger)
	return &Service{
		Auth:       NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		Student:    NewStudentService(repo, logger),
		Staff:      NewStaffService(repo, logger),
		Subject:    NewSubjectService(repo, logger),
		Attendance: NewAttendanceService(&cfg.Attendance, repo, logger),
		Report:     report,
		Export:     NewExportService(report, logger),
	}
}

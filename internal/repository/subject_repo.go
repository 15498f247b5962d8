package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JEEVAA0107/attendance-sub001/internal/model"
)

// SubjectRepository 科目数据访问接口
type SubjectRepository interface {
	Create(ctx context.Context, subject *model.Subject) error
	GetByID(ctx context.Context, id string) (*model.Subject, error)
	GetByCode(ctx context.Context, code string) (*model.Subject, error)
	List(ctx context.Context) ([]model.Subject, error)
	ListByIDs(ctx context.Context, ids []string) ([]model.Subject, error)
}

// subjectRepo SubjectRepository 的 GORM 实现
type subjectRepo struct {
	db *gorm.DB
}

// NewSubjectRepo 创建 SubjectRepository 实例
func NewSubjectRepo(db *gorm.DB) SubjectRepository {
	return &subjectRepo{db: db}
}

func (r *subjectRepo) Create(ctx context.Context, subject *model.Subject) error {
	return r.db.WithContext(ctx).Create(subject).Error
}

func (r *subjectRepo) GetByID(ctx context.Context, id string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) GetByCode(ctx context.Context, code string) (*model.Subject, error) {
	var subject model.Subject
	err := r.db.WithContext(ctx).
		Where("code = ?", code).
		First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *subjectRepo) List(ctx context.Context) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Order("code ASC").
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

func (r *subjectRepo) ListByIDs(ctx context.Context, ids []string) ([]model.Subject, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var subjects []model.Subject
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&subjects).Error
	if err != nil {
		return nil, err
	}
	return subjects, nil
}

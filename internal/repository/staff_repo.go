package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/JEEVAA0107/attendance-sub001/internal/model"
)

// StaffRepository 教职工数据访问接口
type StaffRepository interface {
	Create(ctx context.Context, staff *model.Staff) error
	GetByID(ctx context.Context, id string) (*model.Staff, error)
	GetByStaffNo(ctx context.Context, staffNo string) (*model.Staff, error)
	Update(ctx context.Context, staff *model.Staff) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, department string, offset, limit int) ([]model.Staff, int64, error)
}

// staffRepo StaffRepository 的 GORM 实现
type staffRepo struct {
	db *gorm.DB
}

// NewStaffRepo 创建 StaffRepository 实例
func NewStaffRepo(db *gorm.DB) StaffRepository {
	return &staffRepo{db: db}
}

func (r *staffRepo) Create(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Create(staff).Error
}

func (r *staffRepo) GetByID(ctx context.Context, id string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) GetByStaffNo(ctx context.Context, staffNo string) (*model.Staff, error) {
	var staff model.Staff
	err := r.db.WithContext(ctx).
		Where("staff_no = ?", staffNo).
		First(&staff).Error
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *staffRepo) Update(ctx context.Context, staff *model.Staff) error {
	return r.db.WithContext(ctx).Save(staff).Error
}

func (r *staffRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.Staff{}).Error
}

// List 分页查询，department 非空时按系部筛选
func (r *staffRepo) List(ctx context.Context, department string, offset, limit int) ([]model.Staff, int64, error) {
	var staff []model.Staff
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Staff{})
	if department != "" {
		db = db.Where("department = ?", department)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Offset(offset).Limit(limit).
		Order("staff_no ASC").
		Find(&staff).Error; err != nil {
		return nil, 0, err
	}

	return staff, total, nil
}

package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JEEVAA0107/attendance-sub001/internal/model"
)

// TimetableRepository 周课表数据访问接口
type TimetableRepository interface {
	Upsert(ctx context.Context, entry *model.TimetableEntry) error
	Delete(ctx context.Context, id string) error
	ListByStaffAndDay(ctx context.Context, staffID string, dayOfWeek int) ([]model.TimetableEntry, error)
	ListByStaff(ctx context.Context, staffID string) ([]model.TimetableEntry, error)
	ListByDay(ctx context.Context, dayOfWeek int) ([]model.TimetableEntry, error)
}

// timetableRepo TimetableRepository 的 GORM 实现
type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

// Upsert 按 (staff_id, day_of_week, period) 唯一键写入课表槽位，冲突时覆盖
func (r *timetableRepo) Upsert(ctx context.Context, entry *model.TimetableEntry) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "staff_id"}, {Name: "day_of_week"}, {Name: "period"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"subject_id", "class_name", "section", "room", "updated_at",
			}),
		}).
		Create(entry).Error
}

func (r *timetableRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.TimetableEntry{}).Error
}

func (r *timetableRepo) ListByStaffAndDay(ctx context.Context, staffID string, dayOfWeek int) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("staff_id = ? AND day_of_week = ?", staffID, dayOfWeek).
		Order("period ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timetableRepo) ListByDay(ctx context.Context, dayOfWeek int) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Preload("Staff").
		Preload("Subject").
		Where("day_of_week = ?", dayOfWeek).
		Order("period ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *timetableRepo) ListByStaff(ctx context.Context, staffID string) ([]model.TimetableEntry, error) {
	var entries []model.TimetableEntry
	err := r.db.WithContext(ctx).
		Preload("Subject").
		Where("staff_id = ?", staffID).
		Order("day_of_week ASC, period ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

package model

// TimetableEntry 周课表条目 — 对应 timetable_entries
// DayOfWeek 取值 0(周日)..6(周六)，Period 从 1 开始计数。
type TimetableEntry struct {
	ID        string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StaffID   string `gorm:"type:uuid;not null;uniqueIndex:uq_timetable_slot" json:"staff_id"`
	SubjectID string `gorm:"type:uuid;not null"                             json:"subject_id"`
	DayOfWeek int    `gorm:"type:smallint;not null;uniqueIndex:uq_timetable_slot" json:"day_of_week"`
	Period    int    `gorm:"type:smallint;not null;uniqueIndex:uq_timetable_slot" json:"period"`
	ClassName string `gorm:"type:varchar(64)"                               json:"class_name,omitempty"`
	Section   string `gorm:"type:varchar(16)"                               json:"section,omitempty"`
	Room      string `gorm:"type:varchar(32)"                               json:"room,omitempty"`
	BaseModel

	// 关联
	Staff   *Staff   `gorm:"foreignKey:StaffID"   json:"staff,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (TimetableEntry) TableName() string { return "timetable_entries" }

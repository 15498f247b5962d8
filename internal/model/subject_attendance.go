package model

// SubjectAttendance 分科目考勤明细 — 对应 subject_attendance
// 同一 (学生, 科目, 日期, 节次) 唯一，重复提交取最后一次。
type SubjectAttendance struct {
	ID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	StudentID  string  `gorm:"type:uuid;not null;uniqueIndex:uq_subject_attendance" json:"student_id"`
	SubjectID  string  `gorm:"type:uuid;not null;uniqueIndex:uq_subject_attendance" json:"subject_id"`
	Date       string  `gorm:"type:date;not null;uniqueIndex:uq_subject_attendance" json:"date"`
	Period     int     `gorm:"type:smallint;not null;uniqueIndex:uq_subject_attendance" json:"period"`
	Present    bool    `gorm:"not null"                                       json:"present"`
	Hours      float64 `gorm:"type:numeric(4,2);not null;default:1.0"         json:"hours"`
	RecordedBy *string `gorm:"type:uuid"                                      json:"recorded_by,omitempty"`
	BaseModel

	// 关联
	Student *Student `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID" json:"subject,omitempty"`
}

// TableName 指定表名
func (SubjectAttendance) TableName() string { return "subject_attendance" }

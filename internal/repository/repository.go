package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User              UserRepository
	Student           StudentRepository
	Staff             StaffRepository
	Subject           SubjectRepository
	Timetable         TimetableRepository
	SubjectAttendance SubjectAttendanceRepository
	AttendanceRecord  AttendanceRecordRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:              NewUserRepo(db),
		Student:           NewStudentRepo(db),
		Staff:             NewStaffRepo(db),
		Subject:           NewSubjectRepo(db),
		Timetable:         NewTimetableRepo(db),
		SubjectAttendance: NewSubjectAttendanceRepo(db),
		AttendanceRecord:  NewAttendanceRecordRepo(db),
	}
}

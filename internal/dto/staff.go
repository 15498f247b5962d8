package dto

// ── 教职工与课表 DTO ──

// CreateStaffRequest 新增教职工请求
type CreateStaffRequest struct {
	StaffNo     string `json:"staff_no"    binding:"required,max=32"`
	Name        string `json:"name"        binding:"required,max=128"`
	Email       string `json:"email"       binding:"omitempty,email"`
	Phone       string `json:"phone"       binding:"omitempty,max=32"`
	Department  string `json:"department"  binding:"omitempty,max=64"`
	Designation string `json:"designation" binding:"omitempty,max=64"`
}

// UpdateStaffRequest 更新教职工请求（nil 字段表示不修改）
type UpdateStaffRequest struct {
	Name        *string `json:"name"        binding:"omitempty,max=128"`
	Email       *string `json:"email"       binding:"omitempty,email"`
	Phone       *string `json:"phone"       binding:"omitempty,max=32"`
	Department  *string `json:"department"  binding:"omitempty,max=64"`
	Designation *string `json:"designation" binding:"omitempty,max=64"`
	Active      *bool   `json:"active"`
}

// UpsertTimetableEntryRequest 设置课表槽位请求
type UpsertTimetableEntryRequest struct {
	SubjectID string `json:"subject_id"  binding:"required,uuid"`
	DayOfWeek int    `json:"day_of_week" binding:"min=0,max=6"`
	Period    int    `json:"period"      binding:"required,min=1"`
	ClassName string `json:"class_name"  binding:"omitempty,max=64"`
	Section   string `json:"section"     binding:"omitempty,max=16"`
	Room      string `json:"room"        binding:"omitempty,max=32"`
}

// DayScheduleItem 某日课程安排条目
type DayScheduleItem struct {
	Period      int    `json:"period"`
	SubjectID   string `json:"subject_id"`
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	ClassName   string `json:"class_name,omitempty"`
	Section     string `json:"section,omitempty"`
	Room        string `json:"room,omitempty"`
}

// DaySchedule 教职工某日的完整课程安排
type DaySchedule struct {
	StaffID   string            `json:"staff_id"`
	Date      string            `json:"date"`
	DayOfWeek int               `json:"day_of_week"`
	Items     []DayScheduleItem `json:"items"`
}

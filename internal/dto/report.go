package dto

// ── 考勤报表 DTO ──

// SubjectEntryDetail 学生某日单条分科目明细（报表视角）
// StaffName 由周课表按 (科目, 星期, 节次) 反查，无匹配槽位时为空。
type SubjectEntryDetail struct {
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	StaffName   string `json:"staff_name,omitempty"`
	Period      int    `json:"period"`
	Present     bool   `json:"present"`
}

// StudentDayRecord 单个学生某日的考勤汇总行
// Subjects 键为科目代码，值为该科目是否出勤（任一节次出勤即为 true）；
// 缺键表示当日无该科目记录。SubjectEntries 为逐节次明细。
type StudentDayRecord struct {
	StudentID         string               `json:"student_id"`
	RollNo            string               `json:"roll_no"`
	Name              string               `json:"name"`
	Status            string               `json:"status"`
	TotalHours        float64              `json:"total_hours"`
	AttendancePercent int                  `json:"attendance_percent"`
	Subjects          map[string]bool      `json:"subjects"`
	SubjectEntries    []SubjectEntryDetail `json:"subject_entries,omitempty"`
}

// SubjectStat 某日单科目出勤统计
type SubjectStat struct {
	SubjectID   string `json:"subject_id"`
	SubjectCode string `json:"subject_code"`
	SubjectName string `json:"subject_name"`
	Present     int    `json:"present"`
	Total       int    `json:"total"`
	Rate        int    `json:"rate"`
}

// DailyReport 单日考勤报表
// SubjectOrder 为科目代码的首次出现顺序，报表列与导出列均按此排列。
type DailyReport struct {
	Date           string             `json:"date"`
	Batch          string             `json:"batch,omitempty"`
	TotalStudents  int                `json:"total_students"`
	Present        int                `json:"present"`
	Partial        int                `json:"partial"`
	Absent         int                `json:"absent"`
	AttendanceRate int                `json:"attendance_rate"`
	Students       []StudentDayRecord `json:"students"`
	SubjectOrder   []string           `json:"subject_order"`
	SubjectStats   []SubjectStat      `json:"subject_stats"`
}

// RangeReport 日期区间考勤报表（周报/月报共用）
// Days 为区间内每个自然日的完整日报，按日期升序。
type RangeReport struct {
	From        string        `json:"from"`
	To          string        `json:"to"`
	Batch       string        `json:"batch,omitempty"`
	Days        []DailyReport `json:"days"`
	OverallRate int           `json:"overall_rate"`
}

// AutomationSummary 自动化推送的概览段
type AutomationSummary struct {
	TotalStudents  int `json:"totalStudents"`
	Present        int `json:"present"`
	Partial        int `json:"partial"`
	Absent         int `json:"absent"`
	AttendanceRate int `json:"attendanceRate"`
}

// AutomationSubject 自动化推送中学生的单条分科目明细
type AutomationSubject struct {
	Name    string `json:"name"`
	Staff   string `json:"staff,omitempty"`
	Period  int    `json:"period"`
	Present bool   `json:"present"`
}

// AutomationStudent 自动化推送的学生行
type AutomationStudent struct {
	RollNo            string              `json:"rollNo"`
	Name              string              `json:"name"`
	Status            string              `json:"status"`
	TotalHours        float64             `json:"totalHours"`
	AttendancePercent int                 `json:"attendancePercent"`
	Subjects          []AutomationSubject `json:"subjects"`
}

// AutomationPayload 推送给外部自动化流程（如 n8n Webhook）的日报载荷
// 字段名保持驼峰以兼容下游工作流。
type AutomationPayload struct {
	ReportDate  string              `json:"reportDate"`
	Summary     AutomationSummary   `json:"summary"`
	Students    []AutomationStudent `json:"students"`
	GeneratedAt string              `json:"generatedAt"`
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/JEEVAA0107/attendance-sub001/config"
	"github.com/JEEVAA0107/attendance-sub001/internal/dto"
	"github.com/JEEVAA0107/attendance-sub001/internal/model"
	"github.com/JEEVAA0107/attendance-sub001/internal/repository"
)

// ── 测试辅助 ──

type reportFixture struct {
	report     ReportService
	attendance AttendanceService
	repo       *repository.Repository
}

func setupTestReportService(studentCount int) *reportFixture {
	subjects := newMockSubjectRepo()
	staffRepo := newMockStaffRepo()
	repo := &repository.Repository{
		User:              newMockUserRepo(),
		Student:           newMockStudentRepo(),
		Staff:             staffRepo,
		Subject:           subjects,
		Timetable:         newMockTimetableRepo(subjects, staffRepo),
		SubjectAttendance: newMockSubjectAttendanceRepo(subjects),
		AttendanceRecord:  newMockAttendanceRecordRepo(),
	}

	ctx := context.Background()
	for i := 1; i <= studentCount; i++ {
		repo.Student.Create(ctx, &model.Student{
			ID:     fmt.Sprintf("stu-%d", i),
			RollNo: fmt.Sprintf("21CS%03d", i),
			Name:   fmt.Sprintf("Student %d", i),
			Active: true,
		})
	}
	repo.Subject.Create(ctx, &model.Subject{ID: "subj-MATH", Code: "MATH", Name: "Mathematics"})
	repo.Subject.Create(ctx, &model.Subject{ID: "subj-PHY", Code: "PHY", Name: "Physics"})
	repo.Subject.Create(ctx, &model.Subject{ID: "subj-CHEM", Code: "CHEM", Name: "Chemistry"})

	cfg := &config.AttendanceConfig{MasterPeriods: 7, FullDayThreshold: 0.8}
	logger := zap.NewNop()
	return &reportFixture{
		report:     NewReportService(cfg, repo, logger),
		attendance: NewAttendanceService(cfg, repo, logger),
		repo:       repo,
	}
}

// recordDay 录入某学生某日 MATH 单科 hours 课时（hours <= 0 时取默认值）
func (f *reportFixture) recordDay(t *testing.T, studentID, date string, present bool, hours float64) {
	t.Helper()
	entry := dto.SubjectEntryInput{SubjectID: "subj-MATH", Period: 1, Present: present}
	if hours > 0 {
		entry.Hours = &hours
	}
	_, err := f.attendance.RecordSubjectAttendance(context.Background(), &dto.RecordAttendanceRequest{
		StudentID: studentID,
		Date:      date,
		Entries:   []dto.SubjectEntryInput{entry},
	})
	if err != nil {
		t.Fatalf("录入 %s/%s 失败: %v", studentID, date, err)
	}
}

// ── 日报测试 ──

func TestReportService_Daily_WeightedRate(t *testing.T) {
	f := setupTestReportService(10)

	// 6 present + 2 partial + 2 absent → rate = (6 + 0.5×2) / 10 × 100 = 70
	for i := 1; i <= 6; i++ {
		f.recordDay(t, fmt.Sprintf("stu-%d", i), "2026-08-24", true, 6)
	}
	for i := 7; i <= 8; i++ {
		f.recordDay(t, fmt.Sprintf("stu-%d", i), "2026-08-24", true, 2)
	}
	// stu-9 显式缺勤，stu-10 无任何记录
	f.recordDay(t, "stu-9", "2026-08-24", false, 0)

	report, err := f.report.GenerateDailyReport(context.Background(), "2026-08-24", "")
	if err != nil {
		t.Fatalf("GenerateDailyReport 应成功: %v", err)
	}
	if report.TotalStudents != 10 {
		t.Errorf("期望 total_students=10，实际=%d", report.TotalStudents)
	}
	if report.Present != 6 || report.Partial != 2 || report.Absent != 2 {
		t.Errorf("期望 6/2/2，实际 %d/%d/%d", report.Present, report.Partial, report.Absent)
	}
	if report.AttendanceRate != 70 {
		t.Errorf("期望 attendance_rate=70，实际=%d", report.AttendanceRate)
	}
}

func TestReportService_Daily_MissingRecordIsAbsent(t *testing.T) {
	f := setupTestReportService(2)
	f.recordDay(t, "stu-1", "2026-08-24", true, 6)

	report, err := f.report.GenerateDailyReport(context.Background(), "2026-08-24", "")
	if err != nil {
		t.Fatalf("GenerateDailyReport 应成功: %v", err)
	}
	var row *dto.StudentDayRecord
	for i := range report.Students {
		if report.Students[i].StudentID == "stu-2" {
			row = &report.Students[i]
		}
	}
	if row == nil {
		t.Fatalf("无记录学生也应出现在日报中")
	}
	if row.Status != model.StatusAbsent || row.TotalHours != 0 || row.AttendancePercent != 0 {
		t.Errorf("无记录学生应记 absent/0/0，实际=%+v", row)
	}
}

func TestReportService_Daily_StudentPercent(t *testing.T) {
	f := setupTestReportService(1)
	f.recordDay(t, "stu-1", "2026-08-24", true, 6)

	report, err := f.report.GenerateDailyReport(context.Background(), "2026-08-24", "")
	if err != nil {
		t.Fatalf("GenerateDailyReport 应成功: %v", err)
	}
	// round(6/7×100) = 86
	if got := report.Students[0].AttendancePercent; got != 86 {
		t.Errorf("期望 attendance_percent=86，实际=%d", got)
	}
}

func TestReportService_Daily_SubjectStatsAndOrder(t *testing.T) {
	f := setupTestReportService(5)
	ctx := context.Background()

	// 5 名学生均有 PHY 记录，其中 3 人出勤；部分学生另有 MATH 记录。
	// PHY 先出现，科目顺序应为 [PHY MATH]。
	for i := 1; i <= 5; i++ {
		entries := []dto.SubjectEntryInput{
			{SubjectID: "subj-PHY", Period: 1, Present: i <= 3},
		}
		if i <= 2 {
			entries = append(entries, dto.SubjectEntryInput{SubjectID: "subj-MATH", Period: 2, Present: true})
		}
		if _, err := f.attendance.RecordSubjectAttendance(ctx, &dto.RecordAttendanceRequest{
			StudentID: fmt.Sprintf("stu-%d", i),
			Date:      "2026-08-24",
			Entries:   entries,
		}); err != nil {
			t.Fatalf("录入失败: %v", err)
		}
	}

	report, err := f.report.GenerateDailyReport(ctx, "2026-08-24", "")
	if err != nil {
		t.Fatalf("GenerateDailyReport 应成功: %v", err)
	}
	if len(report.SubjectOrder) != 2 || report.SubjectOrder[0] != "PHY" || report.SubjectOrder[1] != "MATH" {
		t.Fatalf("科目顺序应为首次出现顺序 [PHY MATH]，实际=%v", report.SubjectOrder)
	}

	phy := report.SubjectStats[0]
	if phy.Present != 3 || phy.Total != 5 {
		t.Errorf("PHY 期望 3/5，实际 %d/%d", phy.Present, phy.Total)
	}
	if phy.Rate != 60 {
		t.Errorf("PHY 期望 rate=60，实际=%d", phy.Rate)
	}

	math := report.SubjectStats[1]
	if math.Present != 2 || math.Total != 2 || math.Rate != 100 {
		t.Errorf("MATH 期望 2/2 rate=100，实际 %d/%d rate=%d", math.Present, math.Total, math.Rate)
	}
}

func TestReportService_Daily_SubjectStatsPerPeriod(t *testing.T) {
	f := setupTestReportService(1)
	ctx := context.Background()

	// 同一学生同一科目两节课一到一缺：科目统计按节次明细逐条计数
	_, err := f.attendance.RecordSubjectAttendance(ctx, &dto.RecordAttendanceRequest{
		StudentID: "stu-1",
		Date:      "2026-08-24",
		Entries: []dto.SubjectEntryInput{
			{SubjectID: "subj-PHY", Period: 1, Present: true},
			{SubjectID: "subj-PHY", Period: 2, Present: false},
		},
	})
	if err != nil {
		t.Fatalf("录入失败: %v", err)
	}

	report, err := f.report.GenerateDailyReport(ctx, "2026-08-24", "")
	if err != nil {
		t.Fatalf("GenerateDailyReport 应成功: %v", err)
	}
	if len(report.SubjectStats) != 1 {
		t.Fatalf("期望 1 个科目统计，实际=%d", len(report.SubjectStats))
	}
	phy := report.SubjectStats[0]
	if phy.Present != 1 || phy.Total != 2 || phy.Rate != 50 {
		t.Errorf("PHY 两节课应计 1/2 rate=50，实际 %d/%d rate=%d", phy.Present, phy.Total, phy.Rate)
	}
}

func TestReportService_Daily_EmptyDay(t *testing.T) {
	f := setupTestReportService(3)

	report, err := f.report.GenerateDailyReport(context.Background(), "2026-08-24", "")
	if err != nil {
		t.Fatalf("无数据的日期也应生成日报: %v", err)
	}
	if report.Absent != 3 || report.AttendanceRate != 0 {
		t.Errorf("空日期应全员 absent、rate=0，实际 absent=%d rate=%d", report.Absent, report.AttendanceRate)
	}
	if len(report.SubjectStats) != 0 {
		t.Errorf("空日期不应有科目统计，实际=%v", report.SubjectStats)
	}
}

// ── 区间报表测试 ──

func TestReportService_Range_SevenDaysAscending(t *testing.T) {
	f := setupTestReportService(2)

	// 仅周一、周三有出勤记录
	f.recordDay(t, "stu-1", "2026-08-24", true, 7)
	f.recordDay(t, "stu-1", "2026-08-26", true, 7)
	f.recordDay(t, "stu-2", "2026-08-26", true, 7)

	report, err := f.report.GenerateRangeReport(context.Background(), "2026-08-24", "2026-08-30", "")
	if err != nil {
		t.Fatalf("GenerateRangeReport 应成功: %v", err)
	}
	if len(report.Days) != 7 {
		t.Fatalf("期望 7 天，实际=%d", len(report.Days))
	}
	for i, day := range report.Days {
		want := fmt.Sprintf("2026-08-%02d", 24+i)
		if day.Date != want {
			t.Errorf("第 %d 天期望 %s（日期升序），实际=%s", i, want, day.Date)
		}
	}
	if report.Days[0].Present != 1 || report.Days[2].Present != 2 {
		t.Errorf("per-day 统计错误: %+v", report.Days)
	}
	// 总体：14 人日中 present=3 → round(3/14×100) = 21
	if report.OverallRate != 21 {
		t.Errorf("期望 overall_rate=21，实际=%d", report.OverallRate)
	}
}

func TestReportService_Range_DaysCarryFullDailyDetail(t *testing.T) {
	f := setupTestReportService(2)
	f.recordDay(t, "stu-1", "2026-08-24", true, 7)

	report, err := f.report.GenerateRangeReport(context.Background(), "2026-08-24", "2026-08-25", "")
	if err != nil {
		t.Fatalf("GenerateRangeReport 应成功: %v", err)
	}
	if len(report.Days) != 2 {
		t.Fatalf("期望 2 天，实际=%d", len(report.Days))
	}

	// 区间内每天都是带学生明细和科目统计的完整日报
	day := report.Days[0]
	if len(day.Students) != 2 {
		t.Fatalf("每日报表应含全员学生明细，实际=%d", len(day.Students))
	}
	if len(day.SubjectStats) != 1 || day.SubjectStats[0].SubjectCode != "MATH" {
		t.Errorf("每日报表应含科目统计，实际=%+v", day.SubjectStats)
	}
	// 无记录的日期同样生成完整日报
	next := report.Days[1]
	if len(next.Students) != 2 || next.Absent != 2 {
		t.Errorf("无记录日期应全员 absent 且保留学生明细，实际 students=%d absent=%d", len(next.Students), next.Absent)
	}
}

func TestReportService_Range_InvalidInputs(t *testing.T) {
	f := setupTestReportService(1)
	ctx := context.Background()

	if _, err := f.report.GenerateRangeReport(ctx, "2026-08-30", "2026-08-24", ""); !errors.Is(err, ErrReportInvalidRange) {
		t.Errorf("起始晚于结束应返回 ErrReportInvalidRange，实际: %v", err)
	}
	if _, err := f.report.GenerateRangeReport(ctx, "2026-01-01", "2026-12-31", ""); !errors.Is(err, ErrReportRangeTooLong) {
		t.Errorf("超长区间应返回 ErrReportRangeTooLong，实际: %v", err)
	}
}

func TestReportService_Monthly_CoversWholeMonth(t *testing.T) {
	f := setupTestReportService(1)

	report, err := f.report.GenerateMonthlyReport(context.Background(), "2026-02", "")
	if err != nil {
		t.Fatalf("GenerateMonthlyReport 应成功: %v", err)
	}
	if report.From != "2026-02-01" || report.To != "2026-02-28" {
		t.Errorf("期望 2026-02-01..2026-02-28，实际 %s..%s", report.From, report.To)
	}
	if len(report.Days) != 28 {
		t.Errorf("2026 年 2 月应有 28 天，实际=%d", len(report.Days))
	}

	if _, err := f.report.GenerateMonthlyReport(context.Background(), "2026/02", ""); !errors.Is(err, ErrReportInvalidMonth) {
		t.Errorf("非法月份格式应返回 ErrReportInvalidMonth，实际: %v", err)
	}
}

// ── 自动化载荷测试 ──

func TestReportService_AutomationPayload(t *testing.T) {
	f := setupTestReportService(2)
	ctx := context.Background()

	// 2026-08-24 为周一，课表反查任课教师
	f.repo.Staff.Create(ctx, &model.Staff{ID: "staff-1", StaffNo: "ST001", Name: "Dr. Meena", Active: true})
	f.repo.Timetable.Upsert(ctx, &model.TimetableEntry{StaffID: "staff-1", SubjectID: "subj-MATH", DayOfWeek: 1, Period: 1})
	f.recordDay(t, "stu-1", "2026-08-24", true, 7)

	report, err := f.report.GenerateDailyReport(ctx, "2026-08-24", "")
	if err != nil {
		t.Fatalf("GenerateDailyReport 应成功: %v", err)
	}
	payload := f.report.FormatAutomationPayload(report)

	if payload.ReportDate != "2026-08-24" {
		t.Errorf("期望 reportDate=2026-08-24，实际=%s", payload.ReportDate)
	}
	if payload.Summary.TotalStudents != 2 || payload.Summary.Present != 1 || payload.Summary.Absent != 1 {
		t.Errorf("summary 统计错误: %+v", payload.Summary)
	}
	if len(payload.Students) != 2 {
		t.Errorf("期望 2 条学生行，实际=%d", len(payload.Students))
	}
	if payload.Students[0].RollNo != "21CS001" || payload.Students[0].AttendancePercent != 100 {
		t.Errorf("学生行映射错误: %+v", payload.Students[0])
	}
	// 有记录的学生携带分科目明细，含课表反查出的任课教师
	subjects := payload.Students[0].Subjects
	if len(subjects) != 1 {
		t.Fatalf("期望 1 条分科目明细，实际=%d", len(subjects))
	}
	if subjects[0].Name != "Mathematics" || subjects[0].Staff != "Dr. Meena" || subjects[0].Period != 1 || !subjects[0].Present {
		t.Errorf("分科目明细映射错误: %+v", subjects[0])
	}
	if payload.GeneratedAt == "" {
		t.Errorf("generatedAt 不应为空")
	}
}

// ── 届别筛选测试 ──

func TestReportService_Daily_BatchFilter(t *testing.T) {
	f := setupTestReportService(0)
	ctx := context.Background()

	f.repo.Student.Create(ctx, &model.Student{ID: "stu-1", RollNo: "21CS001", Name: "甲", Batch: "2022", Active: true})
	f.repo.Student.Create(ctx, &model.Student{ID: "stu-2", RollNo: "21CS002", Name: "乙", Batch: "2022", Active: true})
	f.repo.Student.Create(ctx, &model.Student{ID: "stu-3", RollNo: "22CS001", Name: "丙", Batch: "2023", Active: true})

	f.recordDay(t, "stu-1", "2026-08-24", true, 7)
	f.recordDay(t, "stu-3", "2026-08-24", true, 7)

	report, err := f.report.GenerateDailyReport(ctx, "2026-08-24", "2022")
	if err != nil {
		t.Fatalf("GenerateDailyReport 应成功: %v", err)
	}
	if report.Batch != "2022" {
		t.Errorf("期望 batch=2022，实际=%s", report.Batch)
	}
	if report.TotalStudents != 2 {
		t.Errorf("2022 届花名册应为 2 人，实际=%d", report.TotalStudents)
	}
	// stu-3 属 2023 届，不应计入
	if report.Present != 1 || report.Absent != 1 {
		t.Errorf("期望 present=1 absent=1，实际 present=%d absent=%d", report.Present, report.Absent)
	}
	// 科目统计同样只计名录内学生的明细
	if len(report.SubjectStats) != 1 || report.SubjectStats[0].Total != 1 {
		t.Errorf("期望 MATH 统计 1 条明细，实际=%+v", report.SubjectStats)
	}

	// 不筛选时全员计入
	all, err := f.report.GenerateDailyReport(ctx, "2026-08-24", "")
	if err != nil {
		t.Fatalf("GenerateDailyReport 应成功: %v", err)
	}
	if all.TotalStudents != 3 {
		t.Errorf("全量花名册应为 3 人，实际=%d", all.TotalStudents)
	}
}

func TestReportService_Daily_BatchFilterExcludesForeignEntries(t *testing.T) {
	f := setupTestReportService(0)
	ctx := context.Background()

	f.repo.Student.Create(ctx, &model.Student{ID: "stu-1", RollNo: "21CS001", Name: "甲", Batch: "2022", Active: true})
	f.repo.Student.Create(ctx, &model.Student{ID: "stu-2", RollNo: "22CS001", Name: "乙", Batch: "2023", Active: true})

	// 当日仅 2023 届学生有明细
	f.recordDay(t, "stu-2", "2026-08-24", true, 7)

	report, err := f.report.GenerateDailyReport(ctx, "2026-08-24", "2022")
	if err != nil {
		t.Fatalf("GenerateDailyReport 应成功: %v", err)
	}
	if len(report.SubjectStats) != 0 || len(report.SubjectOrder) != 0 {
		t.Errorf("名录外学生的明细不应进入科目统计，实际 stats=%+v order=%v", report.SubjectStats, report.SubjectOrder)
	}
	if report.Absent != 1 || report.TotalStudents != 1 {
		t.Errorf("2022 届应仅 1 人且记缺勤，实际 absent=%d total=%d", report.Absent, report.TotalStudents)
	}
}

// [自证通过] internal/service/report_service_test.go

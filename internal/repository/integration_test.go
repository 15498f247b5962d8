//go:build integration

package repository_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JEEVAA0107/attendance-sub001/internal/model"
	"github.com/JEEVAA0107/attendance-sub001/internal/repository"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost port=5433 user=postgres password=postgres dbname=attendance_test sslmode=disable TimeZone=Asia/Kolkata"
	}

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "无法连接测试数据库: %v\n", err)
		os.Exit(1)
	}

	// 自动迁移测试表结构
	err = testDB.AutoMigrate(
		&model.User{},
		&model.Student{},
		&model.Staff{},
		&model.Subject{},
		&model.TimetableEntry{},
		&model.SubjectAttendance{},
		&model.AttendanceRecord{},
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "AutoMigrate 失败: %v\n", err)
		os.Exit(1)
	}

	code := m.Run()
	os.Exit(code)
}

// setupTestData 创建基础测试数据并返回清理函数
func setupTestData(t *testing.T) (student *model.Student, subject *model.Subject, cleanup func()) {
	t.Helper()
	ctx := context.Background()

	student = &model.Student{
		RollNo:    fmt.Sprintf("21CS%d", time.Now().UnixNano()%1000000),
		Name:      "测试学生",
		ClassName: "CSE-3A",
		Section:   "A",
		Active:    true,
	}
	if err := testDB.WithContext(ctx).Create(student).Error; err != nil {
		t.Fatalf("创建学生失败: %v", err)
	}

	subject = &model.Subject{
		Code: fmt.Sprintf("SUB%d", time.Now().UnixNano()%1000000),
		Name: "测试科目",
	}
	if err := testDB.WithContext(ctx).Create(subject).Error; err != nil {
		t.Fatalf("创建科目失败: %v", err)
	}

	cleanup = func() {
		testDB.Unscoped().Where("student_id = ?", student.ID).Delete(&model.AttendanceRecord{})
		testDB.Unscoped().Where("student_id = ?", student.ID).Delete(&model.SubjectAttendance{})
		testDB.Unscoped().Where("id = ?", subject.ID).Delete(&model.Subject{})
		testDB.Unscoped().Where("id = ?", student.ID).Delete(&model.Student{})
	}
	return
}

// ═══════════════════════════════════════════════════════════
// Test: ReplaceForStudentDate (delete + insert in one tx)
// ═══════════════════════════════════════════════════════════

func TestSubjectAttendance_ReplaceForStudentDate(t *testing.T) {
	student, subject, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	date := "2026-08-24"

	first := []model.SubjectAttendance{
		{StudentID: student.ID, SubjectID: subject.ID, Date: date, Period: 1, Present: true, Hours: 1},
		{StudentID: student.ID, SubjectID: subject.ID, Date: date, Period: 2, Present: false, Hours: 1},
	}
	if err := repo.SubjectAttendance.ReplaceForStudentDate(ctx, student.ID, date, first); err != nil {
		t.Fatalf("首次写入失败: %v", err)
	}

	// 再次全量替换为单条明细
	second := []model.SubjectAttendance{
		{StudentID: student.ID, SubjectID: subject.ID, Date: date, Period: 3, Present: true, Hours: 1.5},
	}
	if err := repo.SubjectAttendance.ReplaceForStudentDate(ctx, student.ID, date, second); err != nil {
		t.Fatalf("替换写入失败: %v", err)
	}

	list, err := repo.SubjectAttendance.ListByStudentAndDate(ctx, student.ID, date)
	if err != nil {
		t.Fatalf("ListByStudentAndDate 失败: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("期望替换后仅剩 1 条明细，得到 %d 条", len(list))
	}
	if list[0].Period != 3 {
		t.Errorf("期望节次 3，得到 %d", list[0].Period)
	}
}

func TestSubjectAttendance_ReplaceWithEmptyClearsDay(t *testing.T) {
	student, subject, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	date := "2026-08-25"

	entries := []model.SubjectAttendance{
		{StudentID: student.ID, SubjectID: subject.ID, Date: date, Period: 1, Present: true, Hours: 1},
	}
	if err := repo.SubjectAttendance.ReplaceForStudentDate(ctx, student.ID, date, entries); err != nil {
		t.Fatalf("写入失败: %v", err)
	}

	if err := repo.SubjectAttendance.ReplaceForStudentDate(ctx, student.ID, date, nil); err != nil {
		t.Fatalf("清空失败: %v", err)
	}

	list, err := repo.SubjectAttendance.ListByStudentAndDate(ctx, student.ID, date)
	if err != nil {
		t.Fatalf("ListByStudentAndDate 失败: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("期望清空后 0 条明细，得到 %d 条", len(list))
	}
}

// ═══════════════════════════════════════════════════════════
// Test: AttendanceRecord Upsert (one record per student per day)
// ═══════════════════════════════════════════════════════════

func TestAttendanceRecord_UpsertOverwrites(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()
	date := "2026-08-24"

	rec := &model.AttendanceRecord{
		StudentID:      student.ID,
		Date:           date,
		Status:         model.StatusPartial,
		TotalHours:     3,
		IsFullDay:      false,
		PeriodPresence: pq.BoolArray{true, true, true, false, false, false, false},
		ComputedBy:     "consolidation",
	}
	if err := repo.AttendanceRecord.Upsert(ctx, rec); err != nil {
		t.Fatalf("首次 Upsert 失败: %v", err)
	}

	rec2 := &model.AttendanceRecord{
		StudentID:      student.ID,
		Date:           date,
		Status:         model.StatusPresent,
		TotalHours:     6,
		IsFullDay:      true,
		PeriodPresence: pq.BoolArray{true, true, true, true, true, true, false},
		ComputedBy:     "consolidation",
	}
	if err := repo.AttendanceRecord.Upsert(ctx, rec2); err != nil {
		t.Fatalf("二次 Upsert 失败: %v", err)
	}

	found, err := repo.AttendanceRecord.GetByStudentAndDate(ctx, student.ID, date)
	if err != nil {
		t.Fatalf("GetByStudentAndDate 失败: %v", err)
	}
	if found.Status != model.StatusPresent {
		t.Errorf("期望状态被覆盖为 present，得到 %s", found.Status)
	}
	if found.TotalHours != 6 {
		t.Errorf("期望课时 6，得到 %v", found.TotalHours)
	}

	// 同一 (学生, 日期) 仅一条记录
	var count int64
	testDB.Model(&model.AttendanceRecord{}).
		Where("student_id = ? AND date = ?", student.ID, date).
		Count(&count)
	if count != 1 {
		t.Errorf("期望 1 条汇总记录，得到 %d 条", count)
	}
}

// ═══════════════════════════════════════════════════════════
// Test: Soft Delete + Roster Order
// ═══════════════════════════════════════════════════════════

func TestStudent_SoftDelete(t *testing.T) {
	student, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	if err := repo.Student.Delete(ctx, student.ID); err != nil {
		t.Fatalf("软删除失败: %v", err)
	}

	// 常规查询应找不到
	if _, err := repo.Student.GetByID(ctx, student.ID); err == nil {
		t.Fatal("软删除后应查不到学生")
	}

	// Unscoped 查询应能找到
	var found model.Student
	if err := testDB.Unscoped().Where("id = ?", student.ID).First(&found).Error; err != nil {
		t.Fatalf("Unscoped 查询应能找到: %v", err)
	}
	if found.DeletedAt.Time.IsZero() {
		t.Error("DeletedAt 应已设置")
	}
}

func TestStudent_ListActiveRosterOrder(t *testing.T) {
	_, _, cleanup := setupTestData(t)
	defer cleanup()

	repo := repository.NewRepository(testDB)
	ctx := context.Background()

	// 逆序创建两个学号，验证 ListActive 按学号升序返回
	tag := time.Now().UnixNano() % 1000000
	s2 := &model.Student{RollNo: fmt.Sprintf("ZZ%d-2", tag), Name: "乙", Active: true}
	s1 := &model.Student{RollNo: fmt.Sprintf("ZZ%d-1", tag), Name: "甲", Active: true}
	for _, s := range []*model.Student{s2, s1} {
		if err := repo.Student.Create(ctx, s); err != nil {
			t.Fatalf("创建学生失败: %v", err)
		}
	}
	defer func() {
		testDB.Unscoped().Where("id IN ?", []string{s1.ID, s2.ID}).Delete(&model.Student{})
	}()

	list, err := repo.Student.ListActive(ctx, "")
	if err != nil {
		t.Fatalf("ListActive 失败: %v", err)
	}

	pos := map[string]int{}
	for i, s := range list {
		pos[s.ID] = i
	}
	if pos[s1.ID] > pos[s2.ID] {
		t.Errorf("期望按学号升序（%s 在 %s 之前）", s1.RollNo, s2.RollNo)
	}
}

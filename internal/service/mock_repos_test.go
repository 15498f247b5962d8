package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/JEEVAA0107/attendance-sub001/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Username
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.ID] = user
	return nil
}

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students  []*model.Student
	idCounter int
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if student.ID == "" {
		m.idCounter++
		student.ID = fmt.Sprintf("stu-%d", m.idCounter)
	}
	m.students = append(m.students, student)
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	for _, s := range m.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByRollNo(_ context.Context, rollNo string) (*model.Student, error) {
	for _, s := range m.students {
		if s.RollNo == rollNo {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Update(_ context.Context, student *model.Student) error {
	for i, s := range m.students {
		if s.ID == student.ID {
			m.students[i] = student
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) Delete(_ context.Context, id string) error {
	for i, s := range m.students {
		if s.ID == id {
			m.students = append(m.students[:i], m.students[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) List(_ context.Context, batch string, offset, limit int) ([]model.Student, int64, error) {
	var filtered []*model.Student
	for _, s := range m.students {
		if batch == "" || s.Batch == batch {
			filtered = append(filtered, s)
		}
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	var result []model.Student
	for _, s := range filtered[offset:end] {
		result = append(result, *s)
	}
	return result, total, nil
}

func (m *mockStudentRepo) ListActive(_ context.Context, batch string) ([]model.Student, error) {
	var result []model.Student
	for _, s := range m.students {
		if s.Active && (batch == "" || s.Batch == batch) {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock StaffRepository ──

type mockStaffRepo struct {
	staff     []*model.Staff
	idCounter int
}

func newMockStaffRepo() *mockStaffRepo {
	return &mockStaffRepo{}
}

func (m *mockStaffRepo) Create(_ context.Context, staff *model.Staff) error {
	if staff.ID == "" {
		m.idCounter++
		staff.ID = fmt.Sprintf("staff-%d", m.idCounter)
	}
	m.staff = append(m.staff, staff)
	return nil
}

func (m *mockStaffRepo) GetByID(_ context.Context, id string) (*model.Staff, error) {
	for _, s := range m.staff {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) GetByStaffNo(_ context.Context, staffNo string) (*model.Staff, error) {
	for _, s := range m.staff {
		if s.StaffNo == staffNo {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) Update(_ context.Context, staff *model.Staff) error {
	for i, s := range m.staff {
		if s.ID == staff.ID {
			m.staff[i] = staff
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) Delete(_ context.Context, id string) error {
	for i, s := range m.staff {
		if s.ID == id {
			m.staff = append(m.staff[:i], m.staff[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockStaffRepo) List(_ context.Context, department string, offset, limit int) ([]model.Staff, int64, error) {
	var matched []*model.Staff
	for _, s := range m.staff {
		if department == "" || s.Department == department {
			matched = append(matched, s)
		}
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	var result []model.Staff
	for _, s := range matched[offset:end] {
		result = append(result, *s)
	}
	return result, total, nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.ID == "" {
		subject.ID = "subj-" + subject.Code
	}
	m.subjects[subject.ID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) GetByCode(_ context.Context, code string) (*model.Subject, error) {
	for _, s := range m.subjects {
		if s.Code == code {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSubjectRepo) ListByIDs(_ context.Context, ids []string) ([]model.Subject, error) {
	var result []model.Subject
	for _, id := range ids {
		if s, ok := m.subjects[id]; ok {
			result = append(result, *s)
		}
	}
	return result, nil
}

// ── Mock TimetableRepository ──

type mockTimetableRepo struct {
	entries   []*model.TimetableEntry
	subjects  *mockSubjectRepo
	staff     *mockStaffRepo
	idCounter int
}

func newMockTimetableRepo(subjects *mockSubjectRepo, staff *mockStaffRepo) *mockTimetableRepo {
	return &mockTimetableRepo{subjects: subjects, staff: staff}
}

func (m *mockTimetableRepo) Upsert(_ context.Context, entry *model.TimetableEntry) error {
	for i, e := range m.entries {
		if e.StaffID == entry.StaffID && e.DayOfWeek == entry.DayOfWeek && e.Period == entry.Period {
			entry.ID = e.ID
			m.entries[i] = entry
			return nil
		}
	}
	m.idCounter++
	entry.ID = fmt.Sprintf("tt-%d", m.idCounter)
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockTimetableRepo) Delete(_ context.Context, id string) error {
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockTimetableRepo) ListByStaffAndDay(_ context.Context, staffID string, dayOfWeek int) ([]model.TimetableEntry, error) {
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if e.StaffID == staffID && e.DayOfWeek == dayOfWeek {
			cp := *e
			m.hydrate(&cp)
			result = append(result, cp)
		}
	}
	return result, nil
}

func (m *mockTimetableRepo) ListByDay(_ context.Context, dayOfWeek int) ([]model.TimetableEntry, error) {
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if e.DayOfWeek == dayOfWeek {
			cp := *e
			m.hydrate(&cp)
			result = append(result, cp)
		}
	}
	return result, nil
}

func (m *mockTimetableRepo) ListByStaff(_ context.Context, staffID string) ([]model.TimetableEntry, error) {
	var result []model.TimetableEntry
	for _, e := range m.entries {
		if e.StaffID == staffID {
			cp := *e
			m.hydrate(&cp)
			result = append(result, cp)
		}
	}
	return result, nil
}

// hydrate 模拟 Preload("Subject") 与 Preload("Staff")
func (m *mockTimetableRepo) hydrate(e *model.TimetableEntry) {
	if s, ok := m.subjects.subjects[e.SubjectID]; ok {
		e.Subject = s
	}
	if m.staff != nil {
		for _, st := range m.staff.staff {
			if st.ID == e.StaffID {
				e.Staff = st
				break
			}
		}
	}
}

// ── Mock SubjectAttendanceRepository ──

type mockSubjectAttendanceRepo struct {
	entries  []model.SubjectAttendance
	subjects *mockSubjectRepo
}

func newMockSubjectAttendanceRepo(subjects *mockSubjectRepo) *mockSubjectAttendanceRepo {
	return &mockSubjectAttendanceRepo{subjects: subjects}
}

func (m *mockSubjectAttendanceRepo) ReplaceForStudentDate(_ context.Context, studentID, date string, entries []model.SubjectAttendance) error {
	var remaining []model.SubjectAttendance
	for _, e := range m.entries {
		if !(e.StudentID == studentID && e.Date == date) {
			remaining = append(remaining, e)
		}
	}
	m.entries = append(remaining, entries...)
	return nil
}

func (m *mockSubjectAttendanceRepo) ListByStudentAndDate(_ context.Context, studentID, date string) ([]model.SubjectAttendance, error) {
	var result []model.SubjectAttendance
	for _, e := range m.entries {
		if e.StudentID == studentID && e.Date == date {
			m.hydrate(&e)
			result = append(result, e)
		}
	}
	return result, nil
}

func (m *mockSubjectAttendanceRepo) ListByDate(_ context.Context, date string) ([]model.SubjectAttendance, error) {
	var result []model.SubjectAttendance
	for _, e := range m.entries {
		if e.Date == date {
			m.hydrate(&e)
			result = append(result, e)
		}
	}
	return result, nil
}

// hydrate 模拟 Preload("Subject")
func (m *mockSubjectAttendanceRepo) hydrate(e *model.SubjectAttendance) {
	if s, ok := m.subjects.subjects[e.SubjectID]; ok {
		e.Subject = s
	}
}

// ── Mock AttendanceRecordRepository ──

type mockAttendanceRecordRepo struct {
	records []*model.AttendanceRecord
}

func newMockAttendanceRecordRepo() *mockAttendanceRecordRepo {
	return &mockAttendanceRecordRepo{}
}

func (m *mockAttendanceRecordRepo) Upsert(_ context.Context, record *model.AttendanceRecord) error {
	for i, r := range m.records {
		if r.StudentID == record.StudentID && r.Date == record.Date {
			record.ID = r.ID
			m.records[i] = record
			return nil
		}
	}
	record.ID = fmt.Sprintf("rec-%d", len(m.records)+1)
	m.records = append(m.records, record)
	return nil
}

func (m *mockAttendanceRecordRepo) GetByStudentAndDate(_ context.Context, studentID, date string) (*model.AttendanceRecord, error) {
	for _, r := range m.records {
		if r.StudentID == studentID && r.Date == date {
			return r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAttendanceRecordRepo) ListByDate(_ context.Context, date string) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.Date == date {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRecordRepo) ListByStudentAndRange(_ context.Context, studentID, from, to string) ([]model.AttendanceRecord, error) {
	var result []model.AttendanceRecord
	for _, r := range m.records {
		if r.StudentID == studentID && r.Date >= from && r.Date <= to {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockAttendanceRecordRepo) DeleteByStudentAndDate(_ context.Context, studentID, date string) error {
	for i, r := range m.records {
		if r.StudentID == studentID && r.Date == date {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

package dto

// ── 学生名录 DTO ──

// CreateStudentRequest 新增学生请求
type CreateStudentRequest struct {
	RollNo    string `json:"roll_no"    binding:"required,max=32"`
	Name      string `json:"name"       binding:"required,max=128"`
	Batch     string `json:"batch"      binding:"omitempty,max=16"`
	Email     string `json:"email"      binding:"omitempty,email"`
	Phone     string `json:"phone"      binding:"omitempty,max=32"`
	ClassName string `json:"class_name" binding:"omitempty,max=64"`
	Section   string `json:"section"    binding:"omitempty,max=16"`
}

// UpdateStudentRequest 更新学生请求（nil 字段表示不修改）
type UpdateStudentRequest struct {
	Name      *string `json:"name"       binding:"omitempty,max=128"`
	Batch     *string `json:"batch"      binding:"omitempty,max=16"`
	Email     *string `json:"email"      binding:"omitempty,email"`
	Phone     *string `json:"phone"      binding:"omitempty,max=32"`
	ClassName *string `json:"class_name" binding:"omitempty,max=64"`
	Section   *string `json:"section"    binding:"omitempty,max=16"`
	Active    *bool   `json:"active"`
}

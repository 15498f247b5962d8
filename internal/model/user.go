package model

// 用户角色
const (
	RoleStudent = "student"
	RoleFaculty = "faculty"
	RoleHOD     = "hod"
)

// User 登录账号 — 对应 users
type User struct {
	ID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username string `gorm:"type:varchar(64);not null;uniqueIndex"          json:"username"`
	Password string `gorm:"type:varchar(128);not null"                     json:"-"`
	Role     string `gorm:"type:varchar(16);not null"                      json:"role"`
	BaseModel
}

// TableName 指定表名
func (User) TableName() string { return "users" }

package model

// Staff 教职工 — 对应 staff
type Staff struct {
	ID          string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID      *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	StaffNo     string  `gorm:"type:varchar(32);not null;uniqueIndex"          json:"staff_no"`
	Name        string  `gorm:"type:varchar(128);not null"                     json:"name"`
	Email       string  `gorm:"type:varchar(128)"                              json:"email,omitempty"`
	Phone       string  `gorm:"type:varchar(32)"                               json:"phone,omitempty"`
	Department  string  `gorm:"type:varchar(64)"                               json:"department,omitempty"`
	Designation string  `gorm:"type:varchar(64)"                               json:"designation,omitempty"`
	Active      bool    `gorm:"not null;default:true"                          json:"active"`
	SoftDeleteModel

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Staff) TableName() string { return "staff" }

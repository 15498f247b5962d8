package model

// Student 学生 — 对应 students
type Student struct {
	ID        string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    *string `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	RollNo    string  `gorm:"type:varchar(32);not null;uniqueIndex"          json:"roll_no"`
	Name      string  `gorm:"type:varchar(128);not null"                     json:"name"`
	Batch     string  `gorm:"type:varchar(16);index"                         json:"batch,omitempty"`
	Email     string  `gorm:"type:varchar(128)"                              json:"email,omitempty"`
	Phone     string  `gorm:"type:varchar(32)"                               json:"phone,omitempty"`
	ClassName string  `gorm:"type:varchar(64)"                               json:"class_name,omitempty"`
	Section   string  `gorm:"type:varchar(16)"                               json:"section,omitempty"`
	Active    bool    `gorm:"not null;default:true"                          json:"active"`
	SoftDeleteModel

	// 关联
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName 指定表名
func (Student) TableName() string { return "students" }

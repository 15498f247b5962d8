package model

// Subject 科目 — 对应 subjects
type Subject struct {
	ID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Code string `gorm:"type:varchar(32);not null;uniqueIndex"          json:"code"`
	Name string `gorm:"type:varchar(128);not null"                     json:"name"`
	BaseModel
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }

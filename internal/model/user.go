package model

// User is identified by its username alone.
type User struct {
	Username string `gorm:"primaryKey;size:255" json:"username"`
}

func (User) TableName() string {
	return "users"
}

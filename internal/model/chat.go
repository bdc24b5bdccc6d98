package model

// Chat is a named conversation. It is stored in the "groups" table.
type Chat struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	CreatedBy string `gorm:"size:255;not null;index" json:"created_by"`
}

func (Chat) TableName() string {
	return "groups"
}

// Membership makes a user a participant of a chat. The composite primary key
// keeps each (chat, user) pair unique.
type Membership struct {
	GroupID uint   `gorm:"primaryKey;autoIncrement:false" json:"group_id"`
	UserID  string `gorm:"primaryKey;size:255" json:"user_id"`
}

func (Membership) TableName() string {
	return "group_users"
}

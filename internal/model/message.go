package model

type Message struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	SentBy  string `gorm:"size:255;not null" json:"sent_by"`
	SentTo  uint   `gorm:"not null;index:idx_messages_chat_time,priority:1" json:"sent_to"`
	SentAt  int64  `gorm:"not null;index:idx_messages_chat_time,priority:2" json:"sent_at"`
	Content string `gorm:"type:text;not null" json:"content"`
}

func (Message) TableName() string {
	return "messages"
}

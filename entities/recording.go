package entities

import (
	"time"
)

type Recording struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Question  string    `json:"question" gorm:"type:text;not null"`
	AudioURL  string    `json:"audioUrl" gorm:"column:audio_url;type:text;not null"`
	Filename  string    `json:"filename" gorm:"type:text;not null"`
	Duration  int       `json:"duration" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at;not null"`
}

func (Recording) TableName() string {
	return "recordings"
}

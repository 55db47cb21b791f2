package model

import (
	"time"

	"gorm.io/datatypes"
)

type Event struct {
	ID             int64          `gorm:"primaryKey;autoIncrement"`
	UserID         string         `gorm:"type:varchar(255);not null;index"`
	Question       string         `gorm:"type:text;not null"`
	QuestionSource string         `gorm:"type:varchar(50);not null"`
	Answers        datatypes.JSON `gorm:"type:jsonb"`
	Answered       bool           `gorm:"default:false"`
	Automatic      bool           `gorm:"default:false"`
	Read           bool           `gorm:"default:false"`
	Archived       bool           `gorm:"default:false;index"`
	Duration       float64
	CreatedAt      time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Event) TableName() string {
	return "events"
}

type Coverage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"type:varchar(255);not null;index"`
	Coverage  float64   `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Coverage) TableName() string {
	return "coverage_stats"
}

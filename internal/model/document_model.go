package model

import "time"

type Document struct {
	DocumentID string    `gorm:"type:varchar(255);primaryKey"`
	UserToken  string    `gorm:"type:varchar(255);primaryKey;index"`
	Title      string    `gorm:"type:varchar(512);not null"`
	Text       string    `gorm:"type:text;not null"`
	Origin     string    `gorm:"type:varchar(512)"`
	Type       string    `gorm:"type:varchar(50);not null;default:'text'"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Document) TableName() string {
	return "documents"
}

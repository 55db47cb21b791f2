package model

import (
	"time"
)

type User struct {
	UserID               string    `gorm:"type:varchar(255);primaryKey"`
	PasswordHash         string    `gorm:"type:varchar(255);not null"`
	Token                string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	AdminToken           string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Plan                 string    `gorm:"type:varchar(50);not null;default:'free'"`
	DocumentThreshold    string    `gorm:"type:varchar(50);not null;default:'medium'"`
	SavedReplyThreshold  string    `gorm:"type:varchar(50);not null;default:'medium'"`
	TermsAgreed          bool      `gorm:"default:false"`
	OnboardingCompleted  bool      `gorm:"default:false"`
	ForwardEmail         *string   `gorm:"type:varchar(255)"`
	ForwardEmailVerified bool      `gorm:"default:false"`
	CreatedAt            time.Time `gorm:"autoCreateTime"`
	UpdatedAt            time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

type ForwardEmailToken struct {
	Token     string    `gorm:"type:varchar(255);primaryKey"`
	UserID    string    `gorm:"type:varchar(255);not null;index"`
	Email     string    `gorm:"type:varchar(255);not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (ForwardEmailToken) TableName() string {
	return "forward_email_tokens"
}

package model

import (
	"time"

	"gorm.io/datatypes"
)

type Annotation struct {
	AnnotationID string         `gorm:"type:varchar(255);primaryKey"`
	UserToken    string         `gorm:"type:varchar(255);not null;index"`
	SavedReply   bool           `gorm:"not null;index"`
	Question     string         `gorm:"type:text;not null"`
	DocumentID   *string        `gorm:"type:varchar(255);index"`
	Page         *string        `gorm:"type:varchar(50)"`
	Metadata     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`

	Paraphrases []ParaphraseQuestion `gorm:"foreignKey:AnnotationID;references:AnnotationID;constraint:OnDelete:CASCADE"`
	Answers     []AnnotationAnswer   `gorm:"foreignKey:AnnotationID;references:AnnotationID;constraint:OnDelete:CASCADE"`
}

func (Annotation) TableName() string {
	return "annotations"
}

type ParaphraseQuestion struct {
	QuestionID   string    `gorm:"type:varchar(255);primaryKey"`
	AnnotationID string    `gorm:"type:varchar(255);not null;index"`
	Question     string    `gorm:"type:text;not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (ParaphraseQuestion) TableName() string {
	return "paraphrase_questions"
}

type AnnotationAnswer struct {
	AnswerID     string    `gorm:"type:varchar(255);primaryKey"`
	AnnotationID string    `gorm:"type:varchar(255);not null;index"`
	Answer       string    `gorm:"type:text;not null"`
	Position     int       `gorm:"not null;default:0"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

func (AnnotationAnswer) TableName() string {
	return "annotation_answers"
}

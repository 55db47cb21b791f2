package mapper

import (
	"encoding/json"
	"sort"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/model"

	"gorm.io/datatypes"
)

type AnnotationMapper struct{}

func NewAnnotationMapper() *AnnotationMapper {
	return &AnnotationMapper{}
}

func (m *AnnotationMapper) ToModel(e *entity.Annotation) (*model.Annotation, error) {
	var metadata datatypes.JSON
	if e.Metadata != nil {
		raw, err := json.Marshal(e.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = datatypes.JSON(raw)
	}

	mod := &model.Annotation{
		AnnotationID: e.AnnotationID,
		UserToken:    e.UserToken,
		SavedReply:   e.SavedReply,
		Question:     e.Question,
		DocumentID:   e.DocumentID,
		Page:         e.Page,
		Metadata:     metadata,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	for _, p := range e.Paraphrases {
		mod.Paraphrases = append(mod.Paraphrases, model.ParaphraseQuestion{
			QuestionID:   p.QuestionID,
			AnnotationID: e.AnnotationID,
			Question:     p.Question,
		})
	}
	for i, a := range e.Answers {
		mod.Answers = append(mod.Answers, model.AnnotationAnswer{
			AnswerID:     a.AnswerID,
			AnnotationID: e.AnnotationID,
			Answer:       a.Answer,
			Position:     i,
		})
	}
	return mod, nil
}

func (m *AnnotationMapper) ToEntity(mod *model.Annotation) (*entity.Annotation, error) {
	var metadata map[string]interface{}
	if len(mod.Metadata) > 0 {
		if err := json.Unmarshal(mod.Metadata, &metadata); err != nil {
			return nil, err
		}
	}

	e := &entity.Annotation{
		AnnotationID: mod.AnnotationID,
		UserToken:    mod.UserToken,
		SavedReply:   mod.SavedReply,
		Question:     mod.Question,
		DocumentID:   mod.DocumentID,
		Page:         mod.Page,
		Metadata:     metadata,
		CreatedAt:    mod.CreatedAt,
		UpdatedAt:    mod.UpdatedAt,
	}
	for _, p := range mod.Paraphrases {
		e.Paraphrases = append(e.Paraphrases, entity.ParaphraseQuestion{
			QuestionID: p.QuestionID,
			Question:   p.Question,
		})
	}
	answers := append([]model.AnnotationAnswer(nil), mod.Answers...)
	sort.SliceStable(answers, func(i, j int) bool { return answers[i].Position < answers[j].Position })
	for _, a := range answers {
		e.Answers = append(e.Answers, entity.AnnotationAnswer{
			AnswerID: a.AnswerID,
			Answer:   a.Answer,
		})
	}
	return e, nil
}

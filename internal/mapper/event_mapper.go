package mapper

import (
	"encoding/json"

	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/model"
	"qa-assistant-be/pkg/responder"

	"gorm.io/datatypes"
)

type EventMapper struct{}

func NewEventMapper() *EventMapper {
	return &EventMapper{}
}

func (m *EventMapper) ToModel(e *entity.Event) (*model.Event, error) {
	answers, err := json.Marshal(e.Answers)
	if err != nil {
		return nil, err
	}
	return &model.Event{
		ID:             e.ID,
		UserID:         e.UserID,
		Question:       e.Question,
		QuestionSource: e.QuestionSource,
		Answers:        datatypes.JSON(answers),
		Answered:       e.Answered,
		Automatic:      e.Automatic,
		Read:           e.Read,
		Archived:       e.Archived,
		Duration:       e.Duration,
		CreatedAt:      e.CreatedAt,
		UpdatedAt:      e.ModifiedAt,
	}, nil
}

func (m *EventMapper) ToEntity(mod *model.Event) (*entity.Event, error) {
	var answers []responder.AnswerRecord
	if len(mod.Answers) > 0 {
		if err := json.Unmarshal(mod.Answers, &answers); err != nil {
			return nil, err
		}
	}
	return &entity.Event{
		ID:             mod.ID,
		UserID:         mod.UserID,
		Question:       mod.Question,
		QuestionSource: mod.QuestionSource,
		Answers:        answers,
		Answered:       mod.Answered,
		Automatic:      mod.Automatic,
		Read:           mod.Read,
		Archived:       mod.Archived,
		Duration:       mod.Duration,
		CreatedAt:      mod.CreatedAt,
		ModifiedAt:     mod.UpdatedAt,
	}, nil
}

func (m *EventMapper) CoverageToEntity(mod *model.Coverage) *entity.Coverage {
	return &entity.Coverage{
		ID:        mod.ID,
		UserID:    mod.UserID,
		Coverage:  mod.Coverage,
		CreatedAt: mod.CreatedAt,
	}
}

package mapper

import (
	"qa-assistant-be/internal/entity"
	"qa-assistant-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToModel(e *entity.Document) *model.Document {
	return &model.Document{
		DocumentID: e.DocumentID,
		UserToken:  e.UserToken,
		Title:      e.Title,
		Text:       e.Text,
		Origin:     e.Origin,
		Type:       e.Type,
		CreatedAt:  e.CreatedAt,
		UpdatedAt:  e.UpdatedAt,
	}
}

func (m *DocumentMapper) ToEntity(mod *model.Document) *entity.Document {
	return &entity.Document{
		DocumentID: mod.DocumentID,
		UserToken:  mod.UserToken,
		Title:      mod.Title,
		Text:       mod.Text,
		Origin:     mod.Origin,
		Type:       mod.Type,
		CreatedAt:  mod.CreatedAt,
		UpdatedAt:  mod.UpdatedAt,
	}
}

func (m *DocumentMapper) ToEntities(models []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(models))
	for i, mod := range models {
		entities[i] = m.ToEntity(mod)
	}
	return entities
}

package mapper

import (
	"taskflow-client/internal/entity"
	"taskflow-client/internal/model"

	"github.com/google/uuid"
)

type ProjectMapper struct{}

func NewProjectMapper() *ProjectMapper {
	return &ProjectMapper{}
}

func (m *ProjectMapper) ToEntity(p *model.Project) *entity.Project {
	if p == nil {
		return nil
	}
	return &entity.Project{
		Id:          p.Id.String(),
		Title:       p.Title,
		Description: p.Description,
		Owner:       p.OwnerId.String(),
	}
}

func (m *ProjectMapper) ToModel(p *entity.Project) *model.Project {
	if p == nil {
		return nil
	}
	return &model.Project{
		Id:          parseId(p.Id),
		Title:       p.Title,
		Description: p.Description,
		OwnerId:     parseId(p.Owner),
	}
}

// parseId maps an empty or malformed id to uuid.Nil so the database assigns
// or fails to match one.
func parseId(id string) uuid.UUID {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

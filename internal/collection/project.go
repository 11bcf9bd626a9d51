package collection

import (
	"taskflow-client/internal/apperror"
	"taskflow-client/internal/dto"
	"taskflow-client/internal/entity"
)

// DefaultMaxProjects mirrors the Resource Store's per-user limit.
const DefaultMaxProjects = 4

type ProjectStore = Store[entity.Project, dto.CreateProjectRequest]

type ProjectCollection struct {
	*Collection[entity.Project, dto.CreateProjectRequest]
	limit int
}

// NewProjectCollection rejects creates locally once limit projects are held.
func NewProjectCollection(store ProjectStore, limit int, opts ...Option) *ProjectCollection {
	if limit <= 0 {
		limit = DefaultMaxProjects
	}
	guard := func(count int) error {
		if count >= limit {
			return apperror.CapacityExceeded(limit)
		}
		return nil
	}
	opts = append([]Option{WithName("projects")}, opts...)
	opts = append(opts, WithCreateGuard(guard))

	return &ProjectCollection{
		Collection: New[entity.Project, dto.CreateProjectRequest](store, opts...),
		limit:      limit,
	}
}

type Capacity struct {
	Used      int
	Limit     int
	Available int
	Percent   int
}

func (p *ProjectCollection) Capacity() Capacity {
	used := p.Len()
	available := p.limit - used
	if available < 0 {
		available = 0
	}
	return Capacity{
		Used:      used,
		Limit:     p.limit,
		Available: available,
		Percent:   used * 100 / p.limit,
	}
}

func (p *ProjectCollection) CanCreate() bool {
	return p.Len() < p.limit
}

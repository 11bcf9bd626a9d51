package implementation

import (
	"errors"

	"taskflow-client/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// first loads one row into m, reporting false when nothing matched.
func first(db *gorm.DB, m interface{}, specs ...specification.Specification) (bool, error) {
	if err := applySpecifications(db, specs...).First(m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// parseId reports false for ids that cannot name a row.
func parseId(id string) (uuid.UUID, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, false
	}
	return parsed, true
}

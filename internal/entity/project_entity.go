package entity

import "taskflow-client/internal/apperror"

type Project struct {
	Id          string `json:"_id"`
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Owner       string `json:"owner,omitempty"`
}

func (p Project) GetId() string {
	return p.Id
}

// SetField applies an edit to one named field of a project draft.
func (p *Project) SetField(name, value string) error {
	switch name {
	case "title":
		p.Title = value
	case "description":
		p.Description = value
	default:
		return apperror.Validation(apperror.FieldError{Field: name, Message: "is not editable"})
	}
	return nil
}

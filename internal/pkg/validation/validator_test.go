package validation

import (
	"errors"
	"testing"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructReportsWireFieldNames(t *testing.T) {
	err := Struct(dto.CreateProjectRequest{Title: "Launch"})

	var appErr *apperror.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "description", appErr.Fields[0].Field)
	assert.Equal(t, "is required", appErr.Fields[0].Message)
}

func TestStructStatusOneOf(t *testing.T) {
	ok := dto.TaskDraft{Title: "a", Description: "b", Status: "In Progress"}
	assert.NoError(t, Struct(ok))

	empty := dto.TaskDraft{Title: "a", Description: "b"}
	assert.NoError(t, Struct(empty))

	bad := dto.TaskDraft{Title: "a", Description: "b", Status: "Later"}
	err := Struct(bad)
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestStructValid(t *testing.T) {
	assert.NoError(t, Struct(dto.LoginRequest{Email: "a@b.c", Password: "pw"}))
}

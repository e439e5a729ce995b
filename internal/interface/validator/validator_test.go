package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julija05/kidseducation-guard/pkg/apperror"
)

type sampleRequest struct {
	Text    string `validate:"required,notblank,printable,max=10"`
	Program int64  `validate:"gt=0"`
}

func TestCustomValidator_Valid(t *testing.T) {
	err := NewCustomValidator().Validate(&sampleRequest{Text: "hi\nthere", Program: 1})

	assert.NoError(t, err)
}

func TestCustomValidator_Invalid_ReturnsFieldDetails(t *testing.T) {
	tests := []struct {
		name    string
		req     sampleRequest
		field   string
		message string
	}{
		{name: "blank", req: sampleRequest{Text: "   ", Program: 1}, field: "text", message: "must not be blank"},
		{name: "control char", req: sampleRequest{Text: "a\x00b", Program: 1}, field: "text", message: "must not contain control characters"},
		{name: "too long", req: sampleRequest{Text: "01234567890", Program: 1}, field: "text", message: "must be at most 10 characters"},
		{name: "program", req: sampleRequest{Text: "ok", Program: 0}, field: "program", message: "must be greater than 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewCustomValidator().Validate(&tt.req)

			var appErr *apperror.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, apperror.CodeValidationError, appErr.Code)
			require.Len(t, appErr.Details, 1)
			assert.Equal(t, tt.field, appErr.Details[0].Field)
			assert.Equal(t, tt.message, appErr.Details[0].Message)
		})
	}
}

package exitcode_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"taskboard/internal/exitcode"
	"taskboard/internal/gateway"
	"taskboard/internal/validate"
)

func TestFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, exitcode.Success},
		{"validation", validate.Errors{validate.FieldTitle: validate.Required}, exitcode.UserError},
		{"not found", gateway.NewAPIError(404, "not found"), exitcode.UserError},
		{"unauthorized", gateway.NewAPIError(401, ""), exitcode.AuthError},
		{"forbidden", gateway.NewAPIError(403, "nope"), exitcode.AuthError},
		{"server", gateway.NewAPIError(500, ""), exitcode.BackendError},
		{"wrapped server", fmt.Errorf("load: %w", gateway.NewAPIError(503, "")), exitcode.BackendError},
		{"canceled", context.Canceled, exitcode.UserError},
		{"other", errors.New("disk full"), exitcode.BackendError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitcode.For(tt.err))
		})
	}
}

package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		params  map[string]string
		ok      bool
	}{
		{path: "/", pattern: "/", ok: true},
		{path: "/login", pattern: "/login", ok: true},
		{path: "/jobs/", pattern: "/jobs", ok: true},
		{path: "/jobs?page=2", pattern: "/jobs", ok: true},
		{path: "/jobs/42", pattern: "/jobs/:id", params: map[string]string{"id": "42"}, ok: true},
		{path: "/employer/jobs", pattern: "/employer/jobs", ok: true},
		{path: "/employer/jobs/9", pattern: "/employer/jobs/:id", params: map[string]string{"id": "9"}, ok: true},
		{path: "/employer/workers", ok: false},
		{path: "/jobs/1/edit", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			r, params, ok := Match(tt.path)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.pattern, r.Pattern)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestRoutes_IsACopy(t *testing.T) {
	rs := Routes()
	rs[0].Title = "changed"
	assert.NotEqual(t, "changed", Routes()[0].Title)
}

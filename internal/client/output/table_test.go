package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, "path", "access")
	tbl.AddRow("/jobs", "any signed-in user")
	tbl.AddRow("/employer/dashboard", "employer")

	require.NoError(t, tbl.Render())
	assert.Equal(t, 2, tbl.Len())

	s := buf.String()
	assert.Contains(t, s, "PATH")
	assert.Contains(t, s, "/employer/dashboard")
	assert.Contains(t, s, "any signed-in user")
}

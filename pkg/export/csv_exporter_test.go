package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRender(t *testing.T) {
	e := NewCSVExporter()

	out, err := e.Render(Dataset{
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"t1", "Alice"}, {"t2", "Bo, Jr."}},
	})
	require.NoError(t, err)
	assert.Equal(t, "ID,Name\nt1,Alice\nt2,\"Bo, Jr.\"\n", string(out))
}

func TestCSVRenderRejectsEmptyHeaders(t *testing.T) {
	e := NewCSVExporter()

	_, err := e.Render(Dataset{})
	require.Error(t, err)
}

func TestCSVRenderRejectsRaggedRows(t *testing.T) {
	e := NewCSVExporter()

	_, err := e.Render(Dataset{
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"t1"}},
	})
	require.Error(t, err)
}

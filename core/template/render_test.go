package template_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"milvus-server/core/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestRender(t *testing.T) {
	doc := template.NewDocument("t", strings.Join([]string{
		"port: {{ port(integer): 19530 }}",
		"again: {{ port(integer): 19530 }}",
		"http: {{ http(boolean): false }}",
		"dir: {{ dir }}",
		"static: value",
	}, "\n"))
	table, err := template.Parse(doc)
	require.NoError(t, err)
	require.NoError(t, table.Set("dir", "/data/milvus"))
	require.NoError(t, table.Set("http", true))

	out, err := template.Render(doc, table)
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"port: 19530",
		"again: 19530",
		"http: true",
		"dir: /data/milvus",
		"static: value",
	}, "\n"), out)
	assert.False(t, template.HasMarker(out))
}

func TestRender_Unresolved(t *testing.T) {
	doc := template.NewDocument("t", "dir: {{ dir }}")
	table, err := template.Parse(doc)
	require.NoError(t, err)

	_, err = template.Render(doc, table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dir")
}

func TestRender_ResidualMarker(t *testing.T) {
	// Only the last placeholder of a line is declared, so the first one survives.
	doc := template.NewDocument("t", "pair: {{ first }} {{ second: 2 }}")
	table, err := template.Parse(doc)
	require.NoError(t, err)

	_, err = template.Render(doc, table)
	assert.True(t, errors.Is(err, template.ErrResidualMarker))
}

func TestRender_ValueWithBraces(t *testing.T) {
	doc := template.NewDocument("t", "a: {{ greeting: hi }}\nb: {{ other: x }}\n")
	table, err := template.Parse(doc)
	require.NoError(t, err)
	require.NoError(t, table.Set("greeting", "{{ other }}"))
	require.NoError(t, table.Set("other", "{{ x }}"))

	out, err := template.Render(doc, table)
	require.NoError(t, err)
	assert.Equal(t, "a: {{ other }}\nb: {{ x }}\n", out)
}

func TestRender_NoMarkersRemain(t *testing.T) {
	names := rapid.StringMatching(`[a-z][a-z0-9_]{0,8}`)
	texts := rapid.StringMatching(`[A-Za-z0-9./_-]{1,12}`)
	types := rapid.SampledFrom([]template.Type{template.TypeString, template.TypeInteger, template.TypeBoolean})

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(rt, "count")
		lines := make([]string, 0, n)
		expected := make(map[string]template.Type, n)
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("v%d_%s", i, names.Draw(rt, "name"))
			typ := types.Draw(rt, "type")
			expected[name] = typ

			var def string
			switch typ {
			case template.TypeInteger:
				def = fmt.Sprint(rapid.IntRange(0, 65535).Draw(rt, "int"))
			case template.TypeBoolean:
				def = fmt.Sprint(rapid.Bool().Draw(rt, "bool"))
			default:
				def = texts.Draw(rt, "text")
			}
			lines = append(lines, fmt.Sprintf("key%d: {{ %s(%s): %s }}", i, name, typ, def))
		}

		doc := template.NewDocument("prop", strings.Join(lines, "\n"))
		table, err := template.Parse(doc)
		require.NoError(rt, err)
		require.Empty(rt, table.Unresolved())

		for name, typ := range expected {
			v, ok := table.Lookup(name)
			require.True(rt, ok)
			require.Equal(rt, typ, v.Type)
		}

		out, err := template.Render(doc, table)
		require.NoError(rt, err)
		require.False(rt, template.HasMarker(out))
	})
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "milvus.yaml")

	require.NoError(t, template.WriteFile(path, "first"))
	require.NoError(t, template.WriteFile(path, "second"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "milvus.yaml")
	assert.Error(t, template.WriteFile(path, "x"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

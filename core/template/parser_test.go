package template_test

import (
	"errors"
	"testing"

	"milvus-server/core/template"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseText(t *testing.T, text string) (*template.Table, error) {
	t.Helper()
	return template.Parse(template.NewDocument("test.template", text))
}

func TestParse_Placeholders(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		varName  string
		typ      template.Type
		value    any
		resolved bool
	}{
		{"IntegerWithDefault", "port: {{ p(integer): 40000 }}", "p", template.TypeInteger, 40000, true},
		{"BareString", "x: {{ q }}", "q", template.TypeString, nil, false},
		{"StringWithDefault", "level: {{ lvl: info }}", "lvl", template.TypeString, "info", true},
		{"EmptyStringDefault", "path: {{ p: }}", "p", template.TypeString, "", true},
		{"DefaultWithColons", "url: {{ u: http://localhost:9000 }}", "u", template.TypeString, "http://localhost:9000", true},
		{"BooleanTrue", "on: {{ b(boolean): true }}", "b", template.TypeBoolean, true, true},
		{"BooleanFalseAlias", "on: {{ b(bool): false }}", "b", template.TypeBoolean, false, true},
		{"BooleanNoDefault", "on: {{ b(boolean) }}", "b", template.TypeBoolean, nil, false},
		{"IntegerNoDefault", "n: {{ n(int) }}", "n", template.TypeInteger, 0, true},
		{"IntegerEmptyDefault", "n: {{ n(integer): }}", "n", template.TypeInteger, 0, true},
		{"ExplicitString", "s: {{ s(string): abc }}", "s", template.TypeString, "abc", true},
		{"NoSpaces", "s: {{s(str):abc}}", "s", template.TypeString, "abc", true},
		{"SpacedType", "s: {{ s ( integer ) : 7 }}", "s", template.TypeInteger, 7, true},
		{"DashedName", "address: {{ minio-address: localhost }}", "minio-address", template.TypeString, "localhost", true},
		{"DigitFirst", "x: {{ 1x: y }}", "1x", template.TypeString, "y", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := parseText(t, tt.line)
			require.NoError(t, err)

			v, ok := table.Lookup(tt.varName)
			require.True(t, ok)
			assert.Equal(t, tt.typ, v.Type)
			assert.Equal(t, tt.value, v.Value)
			assert.Equal(t, tt.resolved, v.Resolved())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"UnsupportedType", "{{ x(float): 1.5 }}"},
		{"InvalidBoolean", "{{ x(boolean): yes }}"},
		{"InvalidInteger", "{{ x(integer): 12a }}"},
		{"NegativeInteger", "{{ x(integer): -1 }}"},
		{"EmptyPlaceholder", "{{  }}"},
		{"InvalidName", "{{ a b }}"},
		{"UnterminatedType", "{{ x(int: 1 }}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := parseText(t, "ok: {{ fine: 1 }}\nbad: "+tt.line)
			require.Error(t, err)
			assert.Nil(t, table)

			var perr *template.ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, 2, perr.Line)
		})
	}
}

func TestParse_CollectsAllFailures(t *testing.T) {
	_, err := parseText(t, "{{ a(float) }}\n{{ b(boolean): maybe }}\n{{ c }}")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1")
	assert.Contains(t, err.Error(), "line 2")
	assert.NotContains(t, err.Error(), "line 3")
}

func TestParse_OnePlaceholderPerLine(t *testing.T) {
	table, err := parseText(t, "pair: {{ first }} {{ second: 2 }}\nplain line\n")
	require.NoError(t, err)

	assert.Equal(t, []string{"second"}, table.Names())
	assert.Equal(t, map[string]string{"{{ second: 2 }}": "second"}, table.Markers())
}

func TestParse_RepeatedVariable(t *testing.T) {
	text := "a: {{ host: localhost }}\nb: {{ host }}\nc: {{ host: localhost }}"
	table, err := parseText(t, text)
	require.NoError(t, err)

	assert.Equal(t, []string{"host"}, table.Names())
	markers := table.Markers()
	assert.Len(t, markers, 2)
	assert.Equal(t, "host", markers["{{ host: localhost }}"])
	assert.Equal(t, "host", markers["{{ host }}"])

	// The last declaration wins.
	v, _ := table.Lookup("host")
	assert.Equal(t, "localhost", v.Value)
}

func TestParse_DefaultTemplate(t *testing.T) {
	table, err := template.Parse(template.Default())
	require.NoError(t, err)

	for _, name := range []string{
		"etcd_log_path", "system_log_path", "etcd_data_dir",
		"local_storage_dir", "rocketmq_data_dir", "proxy_port",
	} {
		_, ok := table.Lookup(name)
		assert.True(t, ok, name)
	}

	proxy, _ := table.Lookup("proxy_port")
	assert.Equal(t, template.TypeInteger, proxy.Type)
	assert.Equal(t, 19530, proxy.Value)

	assert.ElementsMatch(t, []string{
		"etcd_log_path", "etcd_data_dir", "local_storage_dir", "rocketmq_data_dir", "system_log_path",
	}, table.Unresolved())
}

func TestLoad(t *testing.T) {
	t.Run("Default", func(t *testing.T) {
		doc, err := template.Load("")
		require.NoError(t, err)
		assert.Equal(t, template.DefaultName, doc.Path())
		assert.NotEmpty(t, doc.Text())
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := template.Load("/nonexistent/milvus.yaml.template")
		assert.Error(t, err)
	})
}

func TestTable_Set(t *testing.T) {
	table, err := parseText(t, "{{ port(integer): 1 }}\n{{ on(boolean): false }}\n{{ name }}")
	require.NoError(t, err)

	require.NoError(t, table.Set("port", "42"))
	require.NoError(t, table.Set("on", true))
	require.NoError(t, table.Set("name", 12))

	port, _ := table.Lookup("port")
	on, _ := table.Lookup("on")
	name, _ := table.Lookup("name")
	assert.Equal(t, 42, port.Value)
	assert.Equal(t, true, on.Value)
	assert.Equal(t, "12", name.Value)

	assert.Error(t, table.Set("port", "forty"))
	assert.Error(t, table.Set("on", "yes"))
	assert.Error(t, table.Set("missing", "x"))
}

func TestTable_Put(t *testing.T) {
	table, err := parseText(t, "{{ dir }}")
	require.NoError(t, err)

	require.NoError(t, table.Put("dir", template.TypeString, "/tmp/a"))
	require.NoError(t, table.Put("extra", template.TypeString, "/tmp/b"))

	assert.Equal(t, []string{"dir", "extra"}, table.Names())
	assert.Empty(t, table.Unresolved())
}

func TestTable_Clone(t *testing.T) {
	table, err := parseText(t, "{{ port(integer): 1 }}")
	require.NoError(t, err)

	clone := table.Clone()
	require.NoError(t, clone.Set("port", 2))

	orig, _ := table.Lookup("port")
	assert.Equal(t, 1, orig.Value)
}

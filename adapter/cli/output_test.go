package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name string `json:"name" yaml:"name"`
}

func TestNewFormatter(t *testing.T) {
	for _, format := range []string{"", "text", "json", "yaml"} {
		f, err := NewFormatter(format, &bytes.Buffer{})
		require.NoError(t, err, format)
		assert.NotNil(t, f)
	}

	_, err := NewFormatter("csv", nil)
	assert.Error(t, err)
}

func TestView(t *testing.T) {
	v := newView(sample{Name: "gym"}, func() string { return "GYM" })

	var buf bytes.Buffer
	require.NoError(t, (&TextFormatter{w: &buf}).Format(v))
	assert.Equal(t, "GYM\n", buf.String())

	buf.Reset()
	require.NoError(t, (&JSONFormatter{w: &buf}).Format(v))
	assert.JSONEq(t, `{"name":"gym"}`, buf.String())

	buf.Reset()
	require.NoError(t, (&YAMLFormatter{w: &buf}).Format(v))
	assert.Equal(t, "name: gym\n", buf.String())
}

func TestTextFormatter_RejectsStructs(t *testing.T) {
	var buf bytes.Buffer
	err := (&TextFormatter{w: &buf}).Format(sample{Name: "x"})
	assert.Error(t, err)
}

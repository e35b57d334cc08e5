package stylecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/unusedstyles/pkg/stylecheck"
)

func TestExtractVariables_LiteralCase(t *testing.T) {
	t.Parallel()

	text := "primary: {\n  color: red\n}\nsecondary : {\n}\nplain line\n"

	assert.Equal(t, []string{"primary", "secondary"}, stylecheck.ExtractVariables(text))
}

func TestExtractVariables_Idempotent(t *testing.T) {
	t.Parallel()

	text := "a: {\nb : { c: 1 }\n"

	first := stylecheck.ExtractVariables(text)
	second := stylecheck.ExtractVariables(text)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{"a", "b"}, first)
}

func TestExtractVariables_EmptyText(t *testing.T) {
	t.Parallel()

	got := stylecheck.ExtractVariables("")
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestExtractVariables_Quirks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty prefix kept", text: ": {\n", want: []string{""}},
		{name: "duplicates kept", text: "a: {\na: {\n", want: []string{"a", "a"}},
		{name: "first colon wins", text: "a:b: {\n", want: []string{"a"}},
		{name: "inner whitespace removed", text: "  my \t name : {\n", want: []string{"myname"}},
		{name: "brace before colon", text: "{ a: 1 }\n", want: []string{"{a"}},
		{name: "crlf endings", text: "a: {\r\nb: {\r\n", want: []string{"a", "b"}},
		{name: "carriage return before colon", text: "\ra: {\n", want: []string{"a"}},
		{name: "colon only", text: "a: 1\n", want: []string{}},
		{name: "brace only", text: "a {\n", want: []string{}},
		{name: "byte order mark", text: "\uFEFFroot: {\n", want: []string{"root"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, stylecheck.ExtractVariables(tt.text))
		})
	}
}

func TestExtractDocument(t *testing.T) {
	t.Parallel()

	vars, ok := stylecheck.ExtractDocument(nil)
	assert.False(t, ok)
	assert.Nil(t, vars)

	empty := ""
	vars, ok = stylecheck.ExtractDocument(&empty)
	assert.True(t, ok)
	assert.Empty(t, vars)

	text := "x: {\n"
	vars, ok = stylecheck.ExtractDocument(&text)
	assert.True(t, ok)
	assert.Equal(t, []string{"x"}, vars)
}

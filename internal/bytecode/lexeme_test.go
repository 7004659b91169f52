package bytecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlankRecognizesCommentsAndWhitespace(t *testing.T) {
	assert.True(t, Blank(""))
	assert.True(t, Blank("   "))
	assert.True(t, Blank("; a comment"))
	assert.True(t, Blank("# also a comment"))
	assert.False(t, Blank("PUSH_CONST int 1"))
}

func TestTokenizeHonorsQuotedSpaces(t *testing.T) {
	fields := Tokenize(`PUSH_CONST str "hello world"`)
	assert.Equal(t, []string{"PUSH_CONST", "str", "hello world"}, fields)
}

func TestTokenizeLeavesEscapesLiteralForPushConstToUnescape(t *testing.T) {
	fields := Tokenize(`PUSH_CONST str "line\nbreak"`)
	require.Len(t, fields, 3)
	assert.Equal(t, `line\nbreak`, fields[2])
	assert.Equal(t, "line\nbreak", UnescapeStr(fields[2]))
}

func TestParseLineUppercasesOpcode(t *testing.T) {
	line, ok := ParseLine("add")
	require.True(t, ok)
	assert.Equal(t, "ADD", line.Op)
}

func TestParseLineRejectsBlank(t *testing.T) {
	_, ok := ParseLine("   ")
	assert.False(t, ok)
}

func TestLineArgAndHasArg(t *testing.T) {
	line, ok := ParseLine("STORE_VAR x")
	require.True(t, ok)
	assert.True(t, line.HasArg(1))
	assert.Equal(t, "x", line.Arg(1))
	assert.False(t, line.HasArg(2))
	assert.Equal(t, "", line.Arg(2))
}

package ruleio_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"rulesynth/internal/ruleio"
)

func isVar(atom string) bool {
	switch atom {
	case "a", "b":
		return true
	default:
		return false
	}
}

func TestReadSkipsMalformedLines(t *testing.T) {
	src := `
; a comment
(+ a b) => (+ b a)
this is not a rule
(~ (~ a)) <=> a
`
	rs, err := ruleio.Read(strings.NewReader(src), isVar)
	assert.NoError(t, err)
	assert.Equal(t, 2, rs.Len())
}

func TestWriteReadRoundTrip(t *testing.T) {
	src := "(+ a b) => (+ b a)\n(~ (~ a)) <=> a\n"
	rs, err := ruleio.Read(strings.NewReader(src), isVar)
	assert.NoError(t, err)

	var buf strings.Builder
	assert.NoError(t, ruleio.Write(&buf, rs))

	rs2, err := ruleio.Read(strings.NewReader(buf.String()), isVar)
	assert.NoError(t, err)
	assert.Equal(t, rs.ToStrVec(), rs2.ToStrVec())
}

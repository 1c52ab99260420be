package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func record(i int) string {
	return fmt.Sprintf(`{"text_snippet":"claim %d","severity_score":0.%d}`, i, i)
}

func records(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = record(i)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func snippets(t *testing.T, cands []Candidate) []string {
	t.Helper()
	out := make([]string, len(cands))
	for i, c := range cands {
		fields, err := c.Fields()
		require.NoError(t, err)
		out[i] = fields["text_snippet"].(string)
	}
	return out
}

func TestParse_DirectArray(t *testing.T) {
	res, err := NewParser(nil).Parse(records(3), 3)
	require.NoError(t, err)

	assert.Equal(t, "direct", res.Strategy)
	assert.Equal(t, 0, res.Truncated)
	assert.Equal(t, []string{"claim 0", "claim 1", "claim 2"}, snippets(t, res.Candidates))
}

func TestParse_TruncatesToRequestedCount(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := NewParser(zap.New(core))

	res, err := p.Parse(records(7), 5)
	require.NoError(t, err)

	require.Len(t, res.Candidates, 5)
	assert.Equal(t, 2, res.Truncated)
	assert.Equal(t, []string{"claim 0", "claim 1", "claim 2", "claim 3", "claim 4"}, snippets(t, res.Candidates))
	for i, c := range res.Candidates {
		assert.Equal(t, i, c.Index)
	}

	entries := logs.FilterMessageSnippet("extra records dropped").All()
	require.Len(t, entries, 1)
	assert.EqualValues(t, 2, entries[0].ContextMap()["dropped"])
}

func TestParse_FewerRecordsThanRequested(t *testing.T) {
	res, err := NewParser(nil).Parse(records(2), 10)
	require.NoError(t, err)
	assert.Len(t, res.Candidates, 2)
	assert.Equal(t, 0, res.Truncated)
}

func TestParse_WrappedObject(t *testing.T) {
	res, err := NewParser(nil).Parse(`{"claims": `+records(2)+`}`, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"claim 0", "claim 1"}, snippets(t, res.Candidates))

	res, err = NewParser(nil).Parse(`{"generated_examples": `+records(3)+`}`, 5)
	require.NoError(t, err)
	assert.Len(t, res.Candidates, 3, "single array field is unwrapped")
}

func TestParse_SingleObjectIsOneElement(t *testing.T) {
	res, err := NewParser(nil).Parse("  "+record(4)+"\n", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"claim 4"}, snippets(t, res.Candidates))
}

func TestParse_FencedBlockFallback(t *testing.T) {
	raw := "Here are the examples you asked for:\n\n```json\n" + records(3) + "\n```\n\nLet me know if you need more."

	res, err := NewParser(nil).Parse(raw, 2)
	require.NoError(t, err)

	assert.Equal(t, "fenced", res.Strategy)
	assert.Equal(t, 1, res.Truncated)
	assert.Equal(t, []string{"claim 0", "claim 1"}, snippets(t, res.Candidates))
}

func TestParse_FencedBlockWithoutLanguage(t *testing.T) {
	raw := "```\n" + records(1) + "\n```"
	res, err := NewParser(nil).Parse(raw, 1)
	require.NoError(t, err)
	assert.Equal(t, "fenced", res.Strategy)
	assert.Len(t, res.Candidates, 1)
}

func TestParse_NoPayload(t *testing.T) {
	raw := strings.Repeat("I'm sorry, I cannot produce that output right now. ", 10)

	_, err := NewParser(nil).Parse(raw, 5)
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "expected ParseError, got %v", err)

	assert.NotEmpty(t, pe.Excerpt)
	assert.Len(t, []rune(pe.Excerpt), ExcerptLength)
	assert.True(t, strings.HasPrefix(raw, pe.Excerpt))
	assert.Len(t, pe.Attempts, 2)
}

func TestParse_FencedBlockWithBrokenJSON(t *testing.T) {
	raw := "```json\n[{\"text_snippet\": \"unterminated}]\n```"
	_, err := NewParser(nil).Parse(raw, 5)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, raw, pe.Excerpt, "short input is kept whole")
}

func TestParse_CustomStrategyOrder(t *testing.T) {
	raw := "```json\n" + records(1) + "\n```"
	_, err := NewParser(nil, DirectJSON{}).Parse(raw, 1)
	assert.Error(t, err, "fenced fallback disabled")
}

func TestCandidate_FieldsRejectsNonObject(t *testing.T) {
	for _, raw := range []string{`"just text"`, `42`, `null`, `[1,2]`} {
		_, err := Candidate{Raw: json.RawMessage(raw)}.Fields()
		assert.Error(t, err, raw)
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "abc", Excerpt("abc", 200))
	assert.Equal(t, "ab", Excerpt("abc", 2))
	assert.Equal(t, "éé", Excerpt("éééé", 2))
	assert.Equal(t, "", Excerpt("", 200))
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitResponse_NoSeparator(t *testing.T) {
	res := SplitResponse("  Just a friendly reply.  \n")

	assert.Equal(t, "Just a friendly reply.", res.Summary)
	assert.Nil(t, res.JSON)
}

func TestSplitResponse_ExtractsObjectBetweenOuterBraces(t *testing.T) {
	res := SplitResponse(`Hi there---JSON_SEPARATOR---Some text {"a":1,"b":{"c":2}} trailing`)

	assert.Equal(t, "Hi there", res.Summary)
	require.NotNil(t, res.JSON)
	assert.JSONEq(t, `{"a":1,"b":{"c":2}}`, string(res.JSON))
}

func TestSplitResponse_MarkdownFence(t *testing.T) {
	res := SplitResponse("Summary\n---JSON_SEPARATOR---\n```json\n{\"needed_fields\":[\"dates\"]}\n```")

	assert.Equal(t, "Summary", res.Summary)
	assert.JSONEq(t, `{"needed_fields":["dates"]}`, string(res.JSON))
}

func TestSplitResponse_MalformedJSON(t *testing.T) {
	cases := map[string]string{
		"unbalanced":    `Hello---JSON_SEPARATOR---{"a":{"b":1}`,
		"invalid":       `Hello---JSON_SEPARATOR---{"a": nope}`,
		"no braces":     `Hello---JSON_SEPARATOR---just prose`,
		"reversed":      `Hello---JSON_SEPARATOR---} oops {`,
		"empty json":    `Hello---JSON_SEPARATOR---`,
		"trailing text": `Hello---JSON_SEPARATOR---{"a":1} and {"b":2}`,
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			res := SplitResponse(input)
			assert.Equal(t, "Hello", res.Summary)
			assert.Nil(t, res.JSON)
		})
	}
}

func TestSplitResponse_EmptySummaryFallsBack(t *testing.T) {
	res := SplitResponse(`   ---JSON_SEPARATOR---{"error":"x"}`)

	assert.Equal(t, FallbackSummary, res.Summary)
	assert.JSONEq(t, `{"error":"x"}`, string(res.JSON))
}

func TestSplitResponse_SplitsOnlyOnce(t *testing.T) {
	res := SplitResponse(`A---JSON_SEPARATOR---{"x":"---JSON_SEPARATOR---"}`)

	assert.Equal(t, "A", res.Summary)
	assert.JSONEq(t, `{"x":"---JSON_SEPARATOR---"}`, string(res.JSON))
}

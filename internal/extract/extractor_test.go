package extract_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkdesk/internal/extract"
)

func TestExtractJSON_BareObject(t *testing.T) {
	raw, err := extract.ExtractJSON(`{"checkNumber":"1001","amount":250.75}`)

	require.NoError(t, err)
	assert.Equal(t, "1001", raw["checkNumber"])
	assert.Equal(t, 250.75, raw["amount"])
}

func TestExtractJSON_MarkdownFence(t *testing.T) {
	completion := "```json\n{\"checkNumber\":\"1001\",\"memo\":\"rent\"}\n```"

	raw, err := extract.ExtractJSON(completion)

	require.NoError(t, err)
	assert.Equal(t, "1001", raw["checkNumber"])
	assert.Equal(t, "rent", raw["memo"])
}

func TestExtractJSON_ProseWrapped(t *testing.T) {
	completion := "Here is the extracted check data:\n\n" +
		`{"payor":"Jane Doe","payee":"Acme Corp"}` +
		"\n\nLet me know if you need anything else."

	raw, err := extract.ExtractJSON(completion)

	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", raw["payor"])
	assert.Equal(t, "Acme Corp", raw["payee"])
}

func TestExtractJSON_NestedBraces(t *testing.T) {
	// The outermost braces win, so nested objects survive intact.
	raw, err := extract.ExtractJSON(`{"memo":"for {project}","amount":10}`)

	require.NoError(t, err)
	assert.Equal(t, "for {project}", raw["memo"])
}

func TestExtractJSON_EmptyCompletion(t *testing.T) {
	for _, completion := range []string{"", "   ", "\n\t"} {
		_, err := extract.ExtractJSON(completion)

		var extErr *extract.ExtractionError
		require.ErrorAs(t, err, &extErr)
		assert.Equal(t, extract.ReasonEmptyCompletion, extErr.Reason)
	}
}

func TestExtractJSON_NoJSONObject(t *testing.T) {
	_, err := extract.ExtractJSON("I could not read the image, sorry.")

	var extErr *extract.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, extract.ReasonNoJSONObject, extErr.Reason)
}

func TestExtractJSON_BraceOrderReversed(t *testing.T) {
	// A '}' before any '{' leaves no candidate substring.
	_, err := extract.ExtractJSON("} nothing here {")

	var extErr *extract.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, extract.ReasonNoJSONObject, extErr.Reason)
}

func TestExtractJSON_MalformedJSON(t *testing.T) {
	_, err := extract.ExtractJSON(`{"checkNumber": "1001",}`)

	var extErr *extract.ExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, extract.ReasonMalformedJSON, extErr.Reason)
	assert.Error(t, errors.Unwrap(extErr))
}

func TestExtractJSON_EmptyObject(t *testing.T) {
	raw, err := extract.ExtractJSON("{}")

	require.NoError(t, err)
	assert.Empty(t, raw)
}

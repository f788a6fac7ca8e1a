package llmutils_test

import (
	"testing"

	"github.com/effective-security/railgentic/llmutils"
	"github.com/stretchr/testify/assert"
)

func Test_CleanJSON(t *testing.T) {
	llmOutput := "\n```json\n\n{\"source\": \"NDLS\", \"destination\": \"CNB\"}\n\n```\n\n"
	clean := llmutils.CleanJSON([]byte(llmOutput))

	expected := "{\"source\": \"NDLS\", \"destination\": \"CNB\"}"
	assert.Equal(t, expected, string(clean))

	llmOutput = "Here you go:\n```json\n\n[{\"source\": \"NDLS\", \"destination\": \"CNB\"}]\n```\n\n"
	clean = llmutils.CleanJSON([]byte(llmOutput))

	expected = "[{\"source\": \"NDLS\", \"destination\": \"CNB\"}]"
	assert.Equal(t, expected, string(clean))

	// already clean JSON passes through unchanged
	resp := "{\n\t\"train_number\": \"12004\",\n\t\"date\": \"15-10-2026\"\n}"
	assert.Equal(t, resp, string(llmutils.CleanJSON([]byte(resp))))

	// no JSON at all passes through unchanged
	assert.Equal(t, "plain text", string(llmutils.CleanJSON([]byte("plain text"))))
}

func Test_ToJSON(t *testing.T) {
	assert.Equal(t, `{"error":"upstream unavailable"}`, llmutils.ToJSON(map[string]string{"error": "upstream unavailable"}))
	assert.Equal(t, "{\n\t\"pnr\": \"8536417890\"\n}", llmutils.ToJSONIndent(map[string]string{"pnr": "8536417890"}))
}

func Test_BackticksJSON(t *testing.T) {
	json := "{\"source\": \"NDLS\", \"destination\": \"CNB\"}"
	wrapped := llmutils.BackticksJSON(json)

	expected := "\n```json\n{\"source\": \"NDLS\", \"destination\": \"CNB\"}\n```\n"
	assert.Equal(t, expected, wrapped)
}

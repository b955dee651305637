package gateway

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vdtri/toeicmate/internal/model"
)

func TestStripFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"plain fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  \n{\"a\":1}\n  ", `{"a":1}`},
		{"fence without closer", "```json\n{\"a\":1}", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stripFences(tc.in))
		})
	}
}

func TestGenerateReadingPromptNumbersBatchesUniquely(t *testing.T) {
	first := generateReadingPrompt(5, "logistics", 1)
	third := generateReadingPrompt(5, "logistics", 3)

	// Each round gets a distinct ID range so merged batches never collide.
	assert.Contains(t, first, "1")
	assert.Contains(t, third, "201")
	assert.NotEqual(t, first, third)
}

func TestGenerateReadingPromptMentionsTopic(t *testing.T) {
	prompt := generateReadingPrompt(7, "marketing", 1)
	assert.Contains(t, strings.ToLower(prompt), "marketing")
}

func TestEvaluateWritingPromptVariesByTask(t *testing.T) {
	task1 := evaluateWritingPrompt(WritingEvaluationRequest{TaskType: model.TaskPictureSentence, UserContent: "x"})
	task3 := evaluateWritingPrompt(WritingEvaluationRequest{TaskType: model.TaskOpinionEssay, UserContent: "x"})
	assert.NotEqual(t, task1, task3)
}

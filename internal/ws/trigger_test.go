package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTrigger(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantPrompt string
		wantOK     bool
	}{
		{"simple", "@ai what is 2+2", "what is 2+2", true},
		{"uppercase marker", "@AI what is 2+2", "what is 2+2", true},
		{"mixed case", "@Ai help", "help", true},
		{"leading whitespace", "   @ai help", "help", true},
		{"trailing whitespace trimmed", "@ai help   ", "help", true},
		{"bare marker", "@ai", "", false},
		{"marker with only spaces", "@ai    ", "", false},
		{"empty body", "", "", false},
		{"marker not a prefix", "hello @ai", "", false},
		{"no marker", "hello world", "", false},
		{"marker glued to word", "@aihelp", "help", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt, ok := ParseTrigger(tt.body)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantPrompt, prompt)
		})
	}
}

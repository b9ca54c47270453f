package openai

import (
	"testing"

	"github.com/ripplica/ripplica/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVerdict(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     ai.Verdict
		wantErr  bool
	}{
		{"plain valid", "VALID", ai.VerdictValid, false},
		{"plain invalid", "INVALID", ai.VerdictInvalid, false},
		{"lowercase", "valid", ai.VerdictValid, false},
		{"whitespace", "  VALID \n", ai.VerdictValid, false},
		{"chatty valid", "The query is VALID.", ai.VerdictValid, false},
		{"chatty invalid", "Answer: INVALID", ai.VerdictInvalid, false},
		{"invalid wins over embedded valid", "INVALID (not VALID)", ai.VerdictInvalid, false},
		{"unrecognized", "maybe?", 0, true},
		{"empty", "", 0, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			verdict, err := parseVerdict(tc.response)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, verdict)
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcde...", truncate("abcdefgh", 5))
}

package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupKeyword(t *testing.T) {
	tests := []struct {
		input    string
		expected Type
		ok       bool
	}{
		{"true", TRUE, true},
		{"false", FALSE, true},
		{"null", NULL, true},
		{"True", "", false},
		{"NULL", "", false},
		{"truex", "", false},
		{"nil", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			actual, ok := LookupKeyword(tt.input)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.expected, actual)
		})
	}
}

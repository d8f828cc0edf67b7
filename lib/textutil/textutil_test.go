package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "direitoconstitucional", NormalizeName("  Direito  Constitucional "))
	require.Equal(t, "", NormalizeName("   "))
}

func TestStripAccents(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"Português", "portugues"},
		{"Matemática", "matematica"},
		{"ADMINISTRAÇÃO", "administracao"},
		{"já ascii", "ja ascii"},
		{"plain", "plain"},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, StripAccents(tc.input))
	}
}

package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	testCases := []struct {
		text     string
		expected string
	}{
		{"Título", "título"},
		{"Guia de Revisão", "guia-de-revisão"},
		{"  Espaços   extras  ", "espaços-extras"},
		{"Pontuação, não!", "pontuação-não"},
		{"Art. 5º da CF/88", "art-5º-da-cf88"},
		{"já-com-hífens", "já-com-hífens"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range testCases {
		require.Equal(t, tc.expected, Slugify(tc.text), tc.text)
	}
}

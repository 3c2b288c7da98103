// internal/chat/normalize_test.go
package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases and folds diacritics",
			input:    "Giá SẢN PHẨM cao nhất",
			expected: "gia san pham cao nhat",
		},
		{
			name:     "folds d with stroke",
			input:    "Đặt hàng",
			expected: "dat hang",
		},
		{
			name:     "collapses whitespace runs",
			input:    "  shop   có  gì \t bán \n không  ",
			expected: "shop co gi ban khong",
		},
		{
			name:     "plain ascii passes through",
			input:    "hello shop",
			expected: "hello shop",
		},
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "whitespace only",
			input:    "   \t\n  ",
			expected: "",
		},
		{
			name:     "non vietnamese runes are preserved",
			input:    "prix: 100€",
			expected: "prix: 100€",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Xin chào Shop!",
		"giá bán CAO NHẤT là bao nhiêu",
		"sản phẩm nào đang giảm giá",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once))
	}
}

package textfold

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Müsli", "Musli"},
		{"Café crème", "Cafe creme"},
		{"Zürich", "Zurich"},
		{"sin acentos", "sin acentos"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Fold(tc.in))
	}
}

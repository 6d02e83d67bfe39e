package pure_utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"BUT Alpha", "butalpha"},
		{"Île-de-France", "iledefrance"},
		{"  Sud Ouest 2 ", "sudouest2"},
		{"Région Nord", "regionnord"},
		{"***", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.input))
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	assert.Equal(t, "REGION", NormalizeLabel(" Région "))
	assert.Equal(t, "CA N-1", NormalizeLabel("ca  n-1"))
	assert.Equal(t, "OBJ TRC", NormalizeLabel("Obj TRC"))
	assert.Equal(t, "", NormalizeLabel("   "))
}

func TestFoldAccents(t *testing.T) {
	assert.Equal(t, "Menager", FoldAccents("Ménager"))
	assert.Equal(t, "Meuble", FoldAccents("Meublé"))
}

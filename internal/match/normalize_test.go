package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIdent(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"StudentCount", "studentcount"},
		{"student_count", "studentcount"},
		{"student-count", "studentcount"},
		{"TeachID", "teachid"},
		{"HPValue", "hpvalue"},
		{"Person.Name", "personname"},
		{"", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeIdent(tt.input))
		})
	}
}

func TestTokenizeCamelCase(t *testing.T) {
	assert.Equal(t, []string{"Student", "Count"}, tokenizeCamelCase("StudentCount"))
	assert.Equal(t, []string{"teach", "ID"}, tokenizeCamelCase("teachID"))
	assert.Equal(t, []string{"HP", "Value"}, tokenizeCamelCase("HPValue"))
	assert.Equal(t, []string{"Pet", "Name"}, tokenizeCamelCase("Pet.Name"))
	assert.Nil(t, tokenizeCamelCase(""))
}

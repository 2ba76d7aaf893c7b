package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leak-diagnostic/internal/models"
)

func validQuestions() []models.Question {
	return []models.Question{
		{ID: "q1", Text: "First?", Category: "Pricing & Discounting", Options: []models.Option{{Text: "a", Value: 1}}},
		{ID: "q2", Text: "Second?", Category: "Customer Churn", Options: []models.Option{{Text: "b", Value: 2}}},
	}
}

func TestNewCatalog(t *testing.T) {
	cat, err := New(validQuestions())
	require.NoError(t, err)

	assert.Equal(t, 2, cat.Len())
	assert.Equal(t, 0, cat.IndexOf("q1"))
	assert.Equal(t, 1, cat.IndexOf("q2"))
	assert.Equal(t, -1, cat.IndexOf("q9"))

	q, ok := cat.QuestionAt(1)
	require.True(t, ok)
	assert.Equal(t, "q2", q.ID)

	_, ok = cat.QuestionAt(2)
	assert.False(t, ok)
	_, ok = cat.QuestionAt(-1)
	assert.False(t, ok)
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name      string
		questions []models.Question
	}{
		{"empty", nil},
		{"missing id", []models.Question{{Text: "x", Options: []models.Option{{Text: "a"}}}}},
		{"no options", []models.Question{{ID: "q1", Text: "x"}}},
		{"duplicate id", append(validQuestions(), models.Question{ID: "q1", Options: []models.Option{{Text: "a"}}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.questions)
			assert.Error(t, err)
		})
	}
}

func TestIndustries(t *testing.T) {
	list := Industries()
	assert.Len(t, list, 33)

	assert.True(t, ValidIndustry("Consulting"))
	assert.True(t, ValidIndustry("Default (Other SMBs)"))
	assert.False(t, ValidIndustry("consulting"), "matching is exact")
	assert.False(t, ValidIndustry(""))
}

func TestIndustriesReturnsCopy(t *testing.T) {
	list := Industries()
	list[0] = "Mutated"
	assert.NotEqual(t, "Mutated", Industries()[0])
}

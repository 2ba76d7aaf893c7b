// Package catalog loads and caches the ordered question catalog that
// drives the assessment quiz.
package catalog

import (
	"fmt"

	"leak-diagnostic/internal/models"
)

// Catalog is the ordered set of questions presented during the quiz.
// Immutable once built.
type Catalog struct {
	questions []models.Question
	byID      map[string]int
}

// New validates the loaded question list and builds the index. An empty
// list or a question without options is a load failure, not a quiz-time
// surprise.
func New(questions []models.Question) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	byID := make(map[string]int, len(questions))
	for i, q := range questions {
		if q.ID == "" {
			return nil, fmt.Errorf("question at position %d has no id", i)
		}
		if len(q.Options) == 0 {
			return nil, fmt.Errorf("question %s has no options", q.ID)
		}
		if _, dup := byID[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %s", q.ID)
		}
		byID[q.ID] = i
	}
	return &Catalog{questions: questions, byID: byID}, nil
}

func (c *Catalog) Len() int {
	return len(c.questions)
}

// QuestionAt returns the question at position i in presentation order.
func (c *Catalog) QuestionAt(i int) (models.Question, bool) {
	if i < 0 || i >= len(c.questions) {
		return models.Question{}, false
	}
	return c.questions[i], true
}

// IndexOf returns the position of a question id, or -1 when the id is not
// part of the catalog.
func (c *Catalog) IndexOf(questionID string) int {
	if i, ok := c.byID[questionID]; ok {
		return i
	}
	return -1
}

// Questions returns the catalog in presentation order. Callers must not
// mutate the returned slice.
func (c *Catalog) Questions() []models.Question {
	return c.questions
}

package session

import "leak-diagnostic/internal/models"

// ResponseStore is the ordered collection of answered questions. One entry
// per question id: re-answering replaces the prior entry in place, so
// insertion order is preserved and the store never grows past the catalog.
type ResponseStore struct {
	items []models.Response
	byID  map[string]int
}

func NewResponseStore() *ResponseStore {
	return &ResponseStore{byID: make(map[string]int)}
}

// Upsert records a response, replacing any prior answer for the same
// question id at its original position. Returns true when an existing
// entry was replaced.
func (s *ResponseStore) Upsert(resp models.Response) bool {
	if i, ok := s.byID[resp.QuestionID]; ok {
		s.items[i] = resp
		return true
	}
	s.byID[resp.QuestionID] = len(s.items)
	s.items = append(s.items, resp)
	return false
}

// Has reports whether the question id has a recorded response.
func (s *ResponseStore) Has(questionID string) bool {
	_, ok := s.byID[questionID]
	return ok
}

func (s *ResponseStore) Len() int {
	return len(s.items)
}

// Items returns the responses in insertion order as a copy.
func (s *ResponseStore) Items() []models.Response {
	out := make([]models.Response, len(s.items))
	copy(out, s.items)
	return out
}

// Reset discards all recorded responses.
func (s *ResponseStore) Reset() {
	s.items = nil
	s.byID = make(map[string]int)
}

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Question is one catalog entry. Immutable once loaded.
type Question struct {
	ID       string   `json:"id"`
	Section  string   `json:"section"`
	Text     string   `json:"text"`
	Category string   `json:"category"`
	Options  []Option `json:"options"`
}

// Option is one selectable answer with its score contribution.
type Option struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

// Response snapshots the question and the chosen option at answer time.
// One Response per question id; re-answering replaces in place.
type Response struct {
	QuestionID string  `json:"questionId"`
	Question   string  `json:"question"`
	Category   string  `json:"category"`
	Answer     string  `json:"answer"`
	Value      float64 `json:"value"`
}

// Profile carries referral context handed in at session start. Revenue
// arrives in millions from the referral link and is scaled before use.
type Profile struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email"`
}

// Session is one visitor's traversal of the assessment. It is created at
// process start for that visitor, mutated only by the session controller,
// and discarded on explicit restart.
type Session struct {
	ID                   string     `json:"sessionId"`
	Industry             string     `json:"industry"`
	Revenue              float64    `json:"revenue"`
	CurrentQuestionIndex int        `json:"currentQuestionIndex"`
	Responses            []Response `json:"responses"`
	Result               *Result    `json:"result,omitempty"`
	Profile              Profile    `json:"profile"`
	CreatedAt            time.Time  `json:"createdAt"`
}

// NewSessionID produces the session token format the scoring service logs
// by: session_<unix-ms>_<short id>.
func NewSessionID() string {
	short := strings.ReplaceAll(uuid.New().String(), "-", "")[:9]
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), short)
}

// Leak is one scored category of financial underperformance.
type Leak struct {
	Category       string  `json:"category"`
	LeakagePercent float64 `json:"leakagePercent"`
	LeakageDollars float64 `json:"leakageDollars"`
}

// Result is the scored breakdown returned by the scoring service.
// Immutable once received.
type Result struct {
	Industry            string  `json:"industry"`
	TotalLeakagePercent float64 `json:"totalLeakagePercent"`
	TotalLeakageDollars float64 `json:"totalLeakageDollars"`
	PotentialRecovery   float64 `json:"potentialRecovery"`
	TopThreeLeaks       []Leak  `json:"topThreeLeaks"`
	Leaks               []Leak  `json:"leaks"`
	UserName            string  `json:"userName,omitempty"`
	CompanyName         string  `json:"companyName,omitempty"`
}

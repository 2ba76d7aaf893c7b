// Package session implements the assessment session state machine. All
// transitions are explicit functions independent of any rendering surface.
package session

// State identifies one screen of the assessment flow.
type State string

const (
	StateInit           State = "Init"
	StateIndustrySelect State = "IndustrySelect"
	StateRevenueInput   State = "RevenueInput"
	StateQuiz           State = "Quiz"
	StateCalculating    State = "Calculating"
	StateSummaryReady   State = "SummaryReady"
	StateEmailCapture   State = "EmailCapture"
	StateFullResults    State = "FullResults"
)

// Progress maps (state, question index, catalog length) to the progress
// indicator percentage. It is a pure function so the indicator is exactly
// reproducible: 0 until revenue entry, 20 entering revenue entry, linear
// 25..90 across the quiz, 100 from the summary onward.
func Progress(state State, index, catalogLen int) float64 {
	switch state {
	case StateInit, StateIndustrySelect:
		return 0
	case StateRevenueInput:
		return 20
	case StateQuiz:
		if catalogLen <= 0 {
			return 25
		}
		return 25 + float64(index)/float64(catalogLen)*65
	case StateCalculating:
		return 90
	case StateSummaryReady, StateEmailCapture, StateFullResults:
		return 100
	}
	return 0
}

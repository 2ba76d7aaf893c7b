package api

import (
	"fmt"

	"leak-diagnostic/internal/common/errors"
	"leak-diagnostic/internal/models"
	"leak-diagnostic/internal/report"
	"leak-diagnostic/internal/session"
)

var errSessionNotFound = fmt.Errorf("session not found")

type createSessionRequest struct {
	Name            string  `json:"name"`
	Company         string  `json:"company"`
	Email           string  `json:"email"`
	Industry        string  `json:"industry"`
	RevenueMillions float64 `json:"revenueMillions"`
}

type industryRequest struct {
	Industry string `json:"industry"`
}

type revenueRequest struct {
	Revenue float64 `json:"revenue"`
}

type answerRequest struct {
	QuestionID  string `json:"questionId"`
	OptionIndex int    `json:"optionIndex"`
}

type reportRequest struct {
	Email string `json:"email"`
}

type questionView struct {
	ID      string          `json:"id"`
	Index   int             `json:"index"`
	Section string          `json:"section"`
	Text    string          `json:"text"`
	Options []models.Option `json:"options"`
}

type failureView struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// summaryView carries the headline figures shown before the full report.
type summaryView struct {
	TotalLeakageDollars  float64 `json:"totalLeakageDollars"`
	TotalLeakagePercent  float64 `json:"totalLeakagePercent"`
	DailyLoss            float64 `json:"dailyLoss"`
	WeeklyLoss           float64 `json:"weeklyLoss"`
	MonthlyLoss          float64 `json:"monthlyLoss"`
	ConservativeRecovery float64 `json:"conservativeRecovery"`
	ProbableRecovery     float64 `json:"probableRecovery"`
	TopThreePercent      float64 `json:"topThreePercent"`
}

type sessionView struct {
	SessionID       string         `json:"sessionId"`
	State           string         `json:"state"`
	Progress        float64        `json:"progress"`
	Industry        string         `json:"industry,omitempty"`
	Revenue         float64        `json:"revenue,omitempty"`
	AnsweredCount   int            `json:"answeredCount"`
	QuestionCount   int            `json:"questionCount"`
	CurrentQuestion *questionView  `json:"currentQuestion,omitempty"`
	Summary         *summaryView   `json:"summary,omitempty"`
	Result          *models.Result `json:"result,omitempty"`
	LastFailure     *failureView   `json:"lastFailure,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable"`
}

// viewOf projects a controller into the wire shape. The raw result is only
// exposed once the session has reached full results; before that only the
// summary figures are visible.
func viewOf(ctrl *session.Controller) sessionView {
	snap := ctrl.Snapshot()
	state := ctrl.State()

	view := sessionView{
		SessionID:     snap.ID,
		State:         string(state),
		Progress:      ctrl.Progress(),
		Industry:      snap.Industry,
		Revenue:       snap.Revenue,
		AnsweredCount: ctrl.AnsweredCount(),
		QuestionCount: ctrl.CatalogLen(),
	}

	if q, idx, ok := ctrl.CurrentQuestion(); ok {
		view.CurrentQuestion = &questionView{
			ID:      q.ID,
			Index:   idx,
			Section: q.Section,
			Text:    q.Text,
			Options: q.Options,
		}
	}

	if snap.Result != nil {
		figures := report.Derive(snap.Result)
		view.Summary = &summaryView{
			TotalLeakageDollars:  snap.Result.TotalLeakageDollars,
			TotalLeakagePercent:  snap.Result.TotalLeakagePercent,
			DailyLoss:            figures.DailyLoss,
			WeeklyLoss:           figures.WeeklyLoss,
			MonthlyLoss:          figures.MonthlyLoss,
			ConservativeRecovery: figures.ConservativeRecovery,
			ProbableRecovery:     figures.ProbableRecovery,
			TopThreePercent:      figures.Top3Percent,
		}
		if state == session.StateFullResults {
			view.Result = snap.Result
		}
	}

	if failure := ctrl.LastFailure(); failure != nil {
		view.LastFailure = &failureView{
			Code:      string(failure.Code),
			Message:   errors.UserMessage(failure),
			Retryable: failure.Retryable,
		}
	}
	return view
}

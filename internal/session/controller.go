package session

import (
	"context"
	"strings"
	"sync"
	"time"

	"leak-diagnostic/internal/catalog"
	"leak-diagnostic/internal/common/errors"
	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/common/metrics"
	"leak-diagnostic/internal/models"
	"leak-diagnostic/internal/scoring"
)

// Scorer submits a finished assessment for scoring.
type Scorer interface {
	Score(ctx context.Context, req scoring.Request) (*models.Result, error)
}

// Reporter runs the report pipeline end to end: build, rasterize, assemble,
// dispatch. A failure aborts delivery entirely.
type Reporter interface {
	GenerateAndSend(ctx context.Context, result *models.Result, profile models.Profile, email string) error
}

// CatalogLoader yields the question catalog before the quiz may begin.
type CatalogLoader interface {
	Load(ctx context.Context) (*catalog.Catalog, error)
}

// Referral is launch context handed in from an external link. Revenue
// arrives in millions and is scaled before the session uses it.
type Referral struct {
	Name            string
	Company         string
	Email           string
	Industry        string
	RevenueMillions float64
}

// Controller owns one Session value and is the only component that mutates
// it. Every transition is a method; failures leave the session in the state
// that triggered them and are surfaced through the returned error and
// LastFailure.
type Controller struct {
	mu sync.Mutex

	state   State
	session *models.Session
	store   *ResponseStore
	cat     *catalog.Catalog

	loader   CatalogLoader
	scorer   Scorer
	reporter Reporter
	log      logger.Logger

	lastFailure *errors.DiagnosticError
}

type ControllerOptions struct {
	Loader   CatalogLoader
	Scorer   Scorer
	Reporter Reporter
	Logger   logger.Logger
}

func NewController(opts ControllerOptions) *Controller {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Controller{
		state: StateInit,
		session: &models.Session{
			ID:        models.NewSessionID(),
			CreatedAt: time.Now().UTC(),
		},
		store:    NewResponseStore(),
		loader:   opts.Loader,
		scorer:   opts.Scorer,
		reporter: opts.Reporter,
		log:      log,
	}
}

// Start loads the catalog and enters the flow. With a referral carrying
// both industry and revenue the quiz starts directly; the catalog is always
// fully loaded before any question can be shown.
func (c *Controller) Start(ctx context.Context, ref Referral) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateInit {
		return c.fail(errors.NewInvalidTransitionError("start", string(c.state)))
	}

	cat, err := c.loader.Load(ctx)
	if err != nil {
		return c.fail(err)
	}
	c.cat = cat

	c.session.Profile = models.Profile{
		Name:    ref.Name,
		Company: ref.Company,
		Email:   ref.Email,
	}

	if ref.Industry != "" && ref.RevenueMillions > 0 {
		// Referral entry point: skip manual industry/revenue capture.
		c.session.Industry = ref.Industry
		c.session.Revenue = ref.RevenueMillions * 1_000_000
		c.session.CurrentQuestionIndex = 0
		c.store.Reset()
		c.state = StateQuiz
	} else {
		c.state = StateIndustrySelect
	}

	c.lastFailure = nil
	metrics.SessionsStarted.Inc()
	c.log.Info("session started", map[string]interface{}{
		"sessionId": c.session.ID,
		"state":     string(c.state),
	})
	return nil
}

// SelectIndustry records the industry choice and unlocks revenue entry.
// It has no effect on recorded responses.
func (c *Controller) SelectIndustry(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateIndustrySelect {
		return c.fail(errors.NewInvalidTransitionError("selectIndustry", string(c.state)))
	}
	if !catalog.ValidIndustry(name) {
		return c.fail(errors.NewInvalidInputError("unknown industry: " + name))
	}

	c.session.Industry = name
	c.state = StateRevenueInput
	c.lastFailure = nil
	return nil
}

// SetRevenue records the annual revenue figure.
func (c *Controller) SetRevenue(amount float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRevenueInput {
		return c.fail(errors.NewInvalidTransitionError("setRevenue", string(c.state)))
	}
	if amount <= 0 {
		return c.fail(errors.NewInvalidInputError("revenue must be positive"))
	}

	c.session.Revenue = amount
	c.lastFailure = nil
	return nil
}

// BeginQuiz enters the quiz at the first question, discarding any prior
// responses.
func (c *Controller) BeginQuiz() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRevenueInput {
		return c.fail(errors.NewInvalidTransitionError("beginQuiz", string(c.state)))
	}
	if c.session.Industry == "" || c.session.Revenue <= 0 {
		return c.fail(errors.NewInvalidInputError("industry and revenue must be set before the quiz"))
	}

	c.session.CurrentQuestionIndex = 0
	c.store.Reset()
	c.state = StateQuiz
	c.lastFailure = nil
	return nil
}

// RecordResponse upserts the chosen option for a question. Re-answering
// replaces the earlier response in place.
func (c *Controller) RecordResponse(questionID string, optionIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateQuiz {
		return c.fail(errors.NewInvalidTransitionError("recordResponse", string(c.state)))
	}

	pos := c.cat.IndexOf(questionID)
	if pos < 0 {
		return c.fail(errors.NewInvalidQuestionError(questionID))
	}
	question, _ := c.cat.QuestionAt(pos)
	if optionIndex < 0 || optionIndex >= len(question.Options) {
		return c.fail(errors.NewInvalidInputError("option index out of range"))
	}
	option := question.Options[optionIndex]

	c.store.Upsert(models.Response{
		QuestionID: question.ID,
		Question:   question.Text,
		Category:   question.Category,
		Answer:     option.Text,
		Value:      option.Value,
	})
	c.session.Responses = c.store.Items()
	c.lastFailure = nil
	return nil
}

// Advance moves to the next question once the current one is answered. On
// the last question it triggers scoring.
func (c *Controller) Advance(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateQuiz {
		return c.fail(errors.NewInvalidTransitionError("advance", string(c.state)))
	}

	question, ok := c.cat.QuestionAt(c.session.CurrentQuestionIndex)
	if !ok {
		return c.fail(errors.NewInvalidTransitionError("advance", string(c.state)))
	}
	if !c.store.Has(question.ID) {
		return c.fail(errors.NewIncompleteAnswerError(question.ID))
	}

	if c.session.CurrentQuestionIndex < c.cat.Len()-1 {
		c.session.CurrentQuestionIndex++
		c.lastFailure = nil
		return nil
	}
	return c.calculate(ctx)
}

// Retreat steps back one question. Purely navigational: no responses are
// erased.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateQuiz {
		return c.fail(errors.NewInvalidTransitionError("retreat", string(c.state)))
	}
	if c.session.CurrentQuestionIndex == 0 {
		return c.fail(errors.NewInvalidTransitionError("retreat", "first question"))
	}

	c.session.CurrentQuestionIndex--
	c.lastFailure = nil
	return nil
}

// calculate runs the scoring call. Caller holds the lock. Any failure
// returns the session to the quiz with responses untouched.
func (c *Controller) calculate(ctx context.Context) error {
	if c.store.Len() != c.cat.Len() {
		return c.fail(errors.NewIncompleteAssessmentError(c.store.Len(), c.cat.Len()))
	}

	c.state = StateCalculating

	result, err := c.scorer.Score(ctx, scoring.Request{
		Industry:  c.session.Industry,
		Revenue:   c.session.Revenue,
		SessionID: c.session.ID,
		Responses: c.store.Items(),
		Name:      c.session.Profile.Name,
		Company:   c.session.Profile.Company,
		Email:     c.session.Profile.Email,
	})
	if err != nil {
		c.state = StateQuiz
		return c.fail(err)
	}

	c.session.Result = result
	c.state = StateSummaryReady
	c.lastFailure = nil
	c.log.Info("assessment scored", map[string]interface{}{
		"sessionId":           c.session.ID,
		"totalLeakageDollars": result.TotalLeakageDollars,
	})
	return nil
}

// SubmitEmail captures the recipient and runs the report pipeline. On any
// failure the session stays in email capture so the user can retry; the
// artifact is regenerated on retry, never reused.
func (c *Controller) SubmitEmail(ctx context.Context, email string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateSummaryReady && c.state != StateEmailCapture {
		return c.fail(errors.NewInvalidTransitionError("submitEmail", string(c.state)))
	}
	c.state = StateEmailCapture

	if !isValidEmail(email) {
		return c.fail(errors.NewInvalidInputError("invalid email address: " + email))
	}

	if err := c.reporter.GenerateAndSend(ctx, c.session.Result, c.session.Profile, email); err != nil {
		return c.fail(err)
	}

	c.state = StateFullResults
	c.lastFailure = nil
	metrics.SessionsCompleted.Inc()
	c.log.Info("report delivered", map[string]interface{}{
		"sessionId": c.session.ID,
	})
	return nil
}

// Restart discards the session and returns to Init with a fresh session
// token. The referral profile survives; everything else is dropped.
func (c *Controller) Restart() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateFullResults {
		return c.fail(errors.NewInvalidTransitionError("restart", string(c.state)))
	}

	profile := c.session.Profile
	c.session = &models.Session{
		ID:        models.NewSessionID(),
		Profile:   profile,
		CreatedAt: time.Now().UTC(),
	}
	c.store.Reset()
	c.state = StateInit
	c.lastFailure = nil
	return nil
}

// fail records the failure for observers and returns it. Local failures
// never advance the state machine.
func (c *Controller) fail(err error) error {
	if de, ok := err.(*errors.DiagnosticError); ok {
		c.lastFailure = de
	}
	c.log.Warn("session operation failed", map[string]interface{}{
		"sessionId": c.session.ID,
		"state":     string(c.state),
		"error":     err.Error(),
	})
	return err
}

// State returns the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SessionID returns the opaque session token.
func (c *Controller) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.ID
}

// Progress returns the current progress indicator percentage.
func (c *Controller) Progress() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	catalogLen := 0
	if c.cat != nil {
		catalogLen = c.cat.Len()
	}
	return Progress(c.state, c.session.CurrentQuestionIndex, catalogLen)
}

// CurrentQuestion returns the question under the cursor while quizzing.
func (c *Controller) CurrentQuestion() (models.Question, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateQuiz || c.cat == nil {
		return models.Question{}, 0, false
	}
	q, ok := c.cat.QuestionAt(c.session.CurrentQuestionIndex)
	return q, c.session.CurrentQuestionIndex, ok
}

// Snapshot returns a copy of the session for observers. The controller
// keeps the only writable reference.
func (c *Controller) Snapshot() models.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	snap := *c.session
	snap.Responses = c.store.Items()
	return snap
}

// AnsweredCount returns the number of recorded responses.
func (c *Controller) AnsweredCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

// CatalogLen returns the loaded catalog length, 0 before Start.
func (c *Controller) CatalogLen() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cat == nil {
		return 0
	}
	return c.cat.Len()
}

// LastFailure returns the most recent surfaced failure, nil after any
// successful operation.
func (c *Controller) LastFailure() *errors.DiagnosticError {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastFailure
}

func isValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return false
	}
	if len(parts[0]) == 0 || len(parts[1]) == 0 {
		return false
	}
	return strings.Contains(parts[1], ".")
}

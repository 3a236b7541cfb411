package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"medassist/internal/llm"
	"medassist/internal/triage"
	"medassist/pkg"
)

// ErrEmptyInput is returned when the request has no usable symptom text.
// Callers recover it locally with EmptyInputPrompt; it never reaches the
// rule engine.
var ErrEmptyInput = errors.New("empty symptom text")

// Config tunes the consultation policy.
type Config struct {
	// MaxAttempts bounds backend calls per role, first try included.
	MaxAttempts int
	// RetryBackoff is the initial wait before a retry, doubled each time.
	RetryBackoff time.Duration
	// ConservativeOnCaution hardens every role prompt when the safety gate
	// flagged medium-risk symptoms.
	ConservativeOnCaution bool
}

// DefaultConfig returns the production policy.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:           3,
		RetryBackoff:          250 * time.Millisecond,
		ConservativeOnCaution: true,
	}
}

// Metrics receives orchestration events.  Implementations must be safe for
// concurrent use.
type Metrics interface {
	ConsultationDone(kind pkg.ResultKind, elapsed time.Duration)
	BackendRetry()
}

// NopMetrics ignores everything.
type NopMetrics struct{}

func (NopMetrics) ConsultationDone(pkg.ResultKind, time.Duration) {}
func (NopMetrics) BackendRetry()                                  {}

// Consultor runs consultations.  It holds no per-session state: every call
// to RunConsultation builds a fresh session with its own transcript and
// role set, so concurrent requests are isolated by construction rather
// than by locking.
type Consultor struct {
	store   *triage.Store
	backend llm.Client
	cfg     Config
	logger  *slog.Logger
	metrics Metrics
}

// NewConsultor wires a consultor.  A nil logger or metrics falls back to a
// discard implementation.
func NewConsultor(store *triage.Store, backend llm.Client, cfg Config, logger *slog.Logger, metrics Metrics) *Consultor {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &Consultor{store: store, backend: backend, cfg: cfg, logger: logger, metrics: metrics}
}

// state names the orchestrator's position in the fixed role sequence.
type state int

const (
	stateIntake state = iota
	stateDiagnosis
	statePharmacy
	stateSummary
	stateDone
	stateHalted
	stateFailed
)

func (s state) String() string {
	switch s {
	case stateIntake:
		return "intake"
	case stateDiagnosis:
		return "diagnosis"
	case statePharmacy:
		return "pharmacy"
	case stateSummary:
		return "summary"
	case stateDone:
		return "done"
	case stateHalted:
		return "halted"
	default:
		return "failed"
	}
}

// session is one isolated consultation run.  It owns its transcript and
// accumulated conversation context exclusively; nothing here is shared or
// reused across requests.
type session struct {
	id         uuid.UUID
	state      state
	caution    bool
	transcript []pkg.TranscriptEntry
	summary    *pkg.ConsultationSummary
}

// append records one (role, output) pair.  Every state transition appends
// exactly one entry; retries inside a single role do not.
func (s *session) append(role pkg.Role, content string) {
	s.transcript = append(s.transcript, pkg.TranscriptEntry{Role: role, Content: content})
}

// contextText assembles the prompt context from all prior turns in order.
// Each role depends on everything before it, which is why the sequence
// cannot fan out.
func (s *session) contextText() string {
	var b strings.Builder
	for _, e := range s.transcript {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", e.Role, e.Content)
	}
	return strings.TrimSpace(b.String())
}

// RunConsultation evaluates the request against the safety gate and, when
// allowed, drives the role sequence to a validated summary.  A high-risk
// match returns a halted result before any backend call.  Backend or
// schema exhaustion returns a failed result with a neutral reason, never a
// partial summary.  A canceled context returns the context error; any
// in-flight backend output is discarded.
func (c *Consultor) RunConsultation(ctx context.Context, req pkg.ConsultationRequest) (pkg.ConsultationResult, error) {
	start := time.Now()
	req.Symptoms = strings.TrimSpace(req.Symptoms)
	if req.Symptoms == "" {
		return pkg.ConsultationResult{}, ErrEmptyInput
	}

	sess := &session{id: uuid.New(), state: stateIntake}
	logger := c.logger.With("session", sess.id.String())

	// Capture the table once: a hot swap mid-request cannot change this
	// evaluation.
	table := c.store.Table()
	verdict := triage.Evaluate(table, triage.Normalize(req.Symptoms+" "+req.Notes))
	directive := triage.Decide(verdict)

	switch directive.Action {
	case triage.ActionHalt:
		sess.state = stateHalted
		logger.Info("consultation halted", "categories", directive.Categories)
		res := pkg.ConsultationResult{
			Kind:             pkg.KindHalted,
			EmergencyMessage: directive.Message,
			Categories:       directive.Categories,
		}
		c.metrics.ConsultationDone(res.Kind, time.Since(start))
		return res, nil
	case triage.ActionCaution:
		sess.caution = true
	}

	if err := c.runRoles(ctx, sess, req); err != nil {
		if ctx.Err() != nil {
			return pkg.ConsultationResult{}, ctx.Err()
		}
		failedAt := sess.state
		sess.state = stateFailed
		logger.Warn("consultation failed", "state", failedAt.String(), "err", err)
		res := pkg.ConsultationResult{Kind: pkg.KindFailed, Reason: UnavailableReason}
		c.metrics.ConsultationDone(res.Kind, time.Since(start))
		return res, nil
	}

	res := pkg.ConsultationResult{
		Kind:       pkg.KindCompleted,
		Summary:    sess.summary,
		Transcript: sess.transcript,
	}
	if sess.caution {
		res.CautionBanner = directive.Message
		res.Categories = directive.Categories
	}
	logger.Info("consultation completed", "urgency", sess.summary.UrgencyLevel, "caution", sess.caution)
	c.metrics.ConsultationDone(res.Kind, time.Since(start))
	return res, nil
}

// runRoles advances the session state machine.  Transitions are strictly
// sequential and forward-only; cancellation is checked before every
// transition.
func (c *Consultor) runRoles(ctx context.Context, sess *session, req pkg.ConsultationRequest) error {
	for sess.state != stateDone {
		if err := ctx.Err(); err != nil {
			return err
		}
		switch sess.state {
		case stateIntake:
			sess.append(pkg.RoleIntake, intakeMessage(req))
			sess.state = stateDiagnosis
		case stateDiagnosis:
			out, err := c.invoke(ctx, sess, roleSequence[1])
			if err != nil {
				return err
			}
			sess.append(pkg.RoleDiagnosis, out)
			sess.state = statePharmacy
		case statePharmacy:
			out, err := c.invoke(ctx, sess, roleSequence[2])
			if err != nil {
				return err
			}
			sess.append(pkg.RolePharmacy, out)
			sess.state = stateSummary
		case stateSummary:
			out, summary, err := c.invokeSummary(ctx, sess)
			if err != nil {
				return err
			}
			sess.append(pkg.RoleSummary, out)
			sess.summary = summary
			sess.state = stateDone
		}
	}
	return nil
}

// invokeSummary runs the summary role and validates its output.  One
// stricter retry is allowed on a schema failure; everything else follows
// the normal per-role retry policy.
func (c *Consultor) invokeSummary(ctx context.Context, sess *session) (string, *pkg.ConsultationSummary, error) {
	out, err := c.invoke(ctx, sess, roleSequence[3])
	if err != nil {
		return "", nil, err
	}
	summary, err := ParseSummary(out)
	var schemaErr *SchemaError
	if errors.As(err, &schemaErr) {
		retry := roleSequence[3]
		retry.system = SummaryPrompt + "\n\n" + ReformulationInstruction
		out, err = c.invoke(ctx, sess, retry)
		if err != nil {
			return "", nil, err
		}
		summary, err = ParseSummary(out)
	}
	if err != nil {
		return "", nil, err
	}
	return out, summary, nil
}

// invoke runs one role against the backend with bounded retries for
// transient failures.  A result that arrives after cancellation is
// discarded, never applied to the session.
func (c *Consultor) invoke(ctx context.Context, sess *session, contract roleContract) (string, error) {
	system := contract.system
	if sess.caution && c.cfg.ConservativeOnCaution {
		system += "\n\n" + CautionAddendum
	}
	user := sess.contextText()

	backoff := c.cfg.RetryBackoff
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxAttempts; attempt++ {
		out, err := c.backend.InvokeRole(ctx, system, user)
		if err == nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return out, nil
		}
		lastErr = err

		var be *llm.BackendError
		if !errors.As(err, &be) || !be.Transient || attempt == c.cfg.MaxAttempts {
			break
		}
		c.metrics.BackendRetry()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return "", fmt.Errorf("role %s: %w", contract.role, lastErr)
}

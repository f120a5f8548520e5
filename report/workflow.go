package report

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fediwatch/trollhunter/indicators/keyword"
)

type State int

const (
	StateIdle State = iota
	StateAwaitConfirm
	StateAbort
	StateAwaitComment
	StateAwaitCategory
	StateAwaitForward
	StateSubmitting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitConfirm:
		return "await-confirm"
	case StateAbort:
		return "abort"
	case StateAwaitComment:
		return "await-comment"
	case StateAwaitCategory:
		return "await-category"
	case StateAwaitForward:
		return "await-forward"
	case StateSubmitting:
		return "submitting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Terminal states end a workflow instance.
func (s State) Terminal() bool {
	return s == StateAbort || s == StateDone || s == StateFailed
}

// Asks the operator a single question and returns the raw answer. Blocks
// until an answer is available.
type Prompter interface {
	Ask(ctx context.Context, question string) (string, error)
}

const (
	QuestionConfirm  = "Do you want to report this account? (y/n): "
	QuestionComment  = "Enter comment for the report (max 1000 chars): "
	QuestionCategory = "Enter category (spam/legal/violation/other): "
	QuestionForward  = "Forward to remote admin if account is remote? (y/n): "
)

// The reply being reported.
type Target struct {
	AccountID string
	Acct      string
	StatusID  string
}

type Outcome struct {
	// always terminal
	State State
	// remote report id; set only when State is StateDone
	ReportID string
	// filing error (StateFailed) or prompt error (StateAbort)
	Err error
	// what was (or would have been) submitted; nil if the operator declined
	Request *Request
}

// Reporting is only offered when a non-blank token is configured.
func Enabled(token string) bool {
	return strings.TrimSpace(token) != ""
}

// Interactive report flow for a single flagged reply. A Workflow holds no
// per-run state and may be reused for every reply, one at a time.
type Workflow struct {
	Prompter Prompter
	Filer    Filer
	Logger   *slog.Logger
	// operator-facing messages; discarded if nil
	Out io.Writer
	// zero means MaxCommentLen
	MaxCommentLen int
}

func (wf *Workflow) logger() *slog.Logger {
	if wf.Logger == nil {
		return slog.Default()
	}
	return wf.Logger
}

func (wf *Workflow) out() io.Writer {
	if wf.Out == nil {
		return io.Discard
	}
	return wf.Out
}

func (wf *Workflow) commentLimit() int {
	if wf.MaxCommentLen <= 0 {
		return MaxCommentLen
	}
	return wf.MaxCommentLen
}

func yes(answer string) bool {
	return keyword.Fold(strings.TrimSpace(answer)) == "y"
}

// Drives one workflow instance from Idle to a terminal state. Filing is
// attempted at most once.
func (wf *Workflow) Run(ctx context.Context, target Target) Outcome {
	logger := wf.logger().With("accountID", target.AccountID, "statusID", target.StatusID)
	req := Request{
		AccountID: target.AccountID,
		StatusID:  target.StatusID,
	}
	var out Outcome

	state := StateIdle
	for !state.Terminal() {
		var answer string
		var err error
		switch state {
		case StateAwaitConfirm, StateAwaitComment, StateAwaitCategory, StateAwaitForward:
			answer, err = wf.Prompter.Ask(ctx, question(state))
			if err != nil {
				logger.Warn("report prompt failed", "state", state, "err", err)
				out.Err = fmt.Errorf("reading answer: %w", err)
				state = StateAbort
				continue
			}
		}

		switch state {
		case StateIdle:
			state = StateAwaitConfirm
		case StateAwaitConfirm:
			if !yes(answer) {
				state = StateAbort
				continue
			}
			out.Request = &req
			state = StateAwaitComment
		case StateAwaitComment:
			comment := strings.TrimSpace(answer)
			req.Comment = TruncateComment(comment, wf.commentLimit())
			if req.Comment != comment {
				logger.Debug("truncated report comment", "limit", wf.commentLimit())
			}
			state = StateAwaitCategory
		case StateAwaitCategory:
			cat, ok := ParseCategory(answer)
			if !ok {
				logger.Warn("invalid report category, using default", "input", answer, "category", cat)
				fmt.Fprintf(wf.out(), "Invalid category. Defaulting to '%s'.\n", cat)
			}
			req.Category = cat
			state = StateAwaitForward
		case StateAwaitForward:
			req.Forward = yes(answer)
			state = StateSubmitting
		case StateSubmitting:
			id, err := wf.Filer.FileReport(ctx, req)
			if err != nil {
				logger.Error("failed to file report", "err", err)
				fmt.Fprintf(wf.out(), "Failed to file report: %v\n", err)
				out.Err = err
				state = StateFailed
				continue
			}
			logger.Info("filed report", "reportID", id, "category", req.Category, "forward", req.Forward)
			fmt.Fprintf(wf.out(), "Report filed successfully: ID %s\n", id)
			out.ReportID = id
			state = StateDone
		}
	}

	out.State = state
	reportCount.WithLabelValues(state.String()).Inc()
	return out
}

func question(s State) string {
	switch s {
	case StateAwaitConfirm:
		return QuestionConfirm
	case StateAwaitComment:
		return QuestionComment
	case StateAwaitCategory:
		return QuestionCategory
	case StateAwaitForward:
		return QuestionForward
	}
	return ""
}

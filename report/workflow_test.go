package report

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// answers questions from a fixed transcript; io.EOF once exhausted
type scriptedPrompter struct {
	answers   []string
	questions []string
}

func (sp *scriptedPrompter) Ask(ctx context.Context, question string) (string, error) {
	sp.questions = append(sp.questions, question)
	if len(sp.answers) == 0 {
		return "", io.EOF
	}
	a := sp.answers[0]
	sp.answers = sp.answers[1:]
	return a, nil
}

type recordingFiler struct {
	requests []Request
	id       string
	err      error
}

func (rf *recordingFiler) FileReport(ctx context.Context, req Request) (string, error) {
	rf.requests = append(rf.requests, req)
	if rf.err != nil {
		return "", rf.err
	}
	return rf.id, nil
}

var target = Target{AccountID: "7", Acct: "troll@elsewhere.example", StatusID: "900"}

func TestWorkflowSubmit(t *testing.T) {
	assert := assert.New(t)

	comment := strings.Repeat("x", 1200)
	p := &scriptedPrompter{answers: []string{" Y ", comment, "Spam", "n"}}
	f := &recordingFiler{id: "5555"}
	var out bytes.Buffer
	wf := &Workflow{Prompter: p, Filer: f, Out: &out}

	res := wf.Run(context.Background(), target)
	assert.Equal(StateDone, res.State)
	assert.Equal("5555", res.ReportID)
	assert.NoError(res.Err)

	require.Len(t, f.requests, 1)
	req := f.requests[0]
	assert.Equal(1000, len(req.Comment))
	assert.Equal(CategorySpam, req.Category)
	assert.False(req.Forward)
	assert.Equal("7", req.AccountID)
	assert.Equal("900", req.StatusID)
	assert.Equal(req, *res.Request)

	assert.Equal([]string{QuestionConfirm, QuestionComment, QuestionCategory, QuestionForward}, p.questions)
	assert.Contains(out.String(), "Report filed successfully: ID 5555")
}

func TestWorkflowDecline(t *testing.T) {
	assert := assert.New(t)

	for _, answer := range []string{"n", "", "yes", "  no", "j"} {
		p := &scriptedPrompter{answers: []string{answer}}
		f := &recordingFiler{id: "1"}
		res := (&Workflow{Prompter: p, Filer: f}).Run(context.Background(), target)
		assert.Equal(StateAbort, res.State, answer)
		assert.NoError(res.Err)
		assert.Nil(res.Request)
		assert.Empty(f.requests)
		assert.Len(p.questions, 1)
	}
}

func TestWorkflowInvalidCategory(t *testing.T) {
	assert := assert.New(t)

	p := &scriptedPrompter{answers: []string{"y", "  rude  ", "harassment", "Y"}}
	f := &recordingFiler{id: "9"}
	var out bytes.Buffer
	res := (&Workflow{Prompter: p, Filer: f, Out: &out}).Run(context.Background(), target)

	assert.Equal(StateDone, res.State)
	require.Len(t, f.requests, 1)
	assert.Equal(CategoryOther, f.requests[0].Category)
	assert.Equal("rude", f.requests[0].Comment)
	assert.True(f.requests[0].Forward)
	assert.Contains(out.String(), "Invalid category. Defaulting to 'other'.")
	// no re-prompt
	assert.Len(p.questions, 4)
}

func TestWorkflowFilerFailure(t *testing.T) {
	assert := assert.New(t)

	failure := errors.New("The access token is invalid")
	p := &scriptedPrompter{answers: []string{"y", "spam bot", "spam", "n"}}
	f := &recordingFiler{err: failure}
	var out bytes.Buffer
	wf := &Workflow{Prompter: p, Filer: f, Out: &out}

	res := wf.Run(context.Background(), target)
	assert.Equal(StateFailed, res.State)
	assert.ErrorIs(res.Err, failure)
	assert.Empty(res.ReportID)
	// exactly one attempt
	assert.Len(f.requests, 1)
	assert.Contains(out.String(), "Failed to file report: The access token is invalid")

	// the workflow is reusable for the next reply
	p.answers = []string{"n"}
	res = wf.Run(context.Background(), target)
	assert.Equal(StateAbort, res.State)
	assert.Len(f.requests, 1)
}

func TestWorkflowPromptEOF(t *testing.T) {
	assert := assert.New(t)

	p := &scriptedPrompter{answers: []string{"y", "comment"}}
	f := &recordingFiler{id: "1"}
	res := (&Workflow{Prompter: p, Filer: f}).Run(context.Background(), target)
	assert.Equal(StateAbort, res.State)
	assert.ErrorIs(res.Err, io.EOF)
	assert.Empty(f.requests)
}

func TestEnabled(t *testing.T) {
	assert := assert.New(t)
	assert.False(Enabled(""))
	assert.False(Enabled("  \t"))
	assert.True(Enabled("abc123"))
}

func TestParseCategory(t *testing.T) {
	assert := assert.New(t)

	for _, c := range AllCategories {
		got, ok := ParseCategory(strings.ToUpper(string(c)) + " ")
		assert.True(ok)
		assert.Equal(c, got)
	}
	for _, s := range []string{"", "abuse", "spam!", "violations"} {
		got, ok := ParseCategory(s)
		assert.False(ok, s)
		assert.Equal(CategoryOther, got)
	}
}

func TestTruncateComment(t *testing.T) {
	assert := assert.New(t)

	short := strings.Repeat("a", 1000)
	assert.Equal(short, TruncateComment(short, MaxCommentLen))
	assert.Equal(short, TruncateComment(short+"b", MaxCommentLen))
	assert.Equal("", TruncateComment("", MaxCommentLen))

	// counted in characters, not bytes
	umlauts := strings.Repeat("ü", 1200)
	got := TruncateComment(umlauts, MaxCommentLen)
	assert.Equal(1000, utf8.RuneCountInString(got))
	assert.True(utf8.ValidString(got))

	assert.Equal("ab", TruncateComment("abc", 2))
	assert.Equal("", TruncateComment("abc", 0))
}

func TestWorkflowCounters(t *testing.T) {
	assert := assert.New(t)

	done := reportCount.WithLabelValues(StateDone.String())
	failed := reportCount.WithLabelValues(StateFailed.String())
	aborted := reportCount.WithLabelValues(StateAbort.String())
	beforeDone, beforeFailed, beforeAborted := testutil.ToFloat64(done), testutil.ToFloat64(failed), testutil.ToFloat64(aborted)

	ok := &Workflow{Prompter: &scriptedPrompter{answers: []string{"y", "c", "spam", "n"}}, Filer: &recordingFiler{id: "1"}}
	ok.Run(context.Background(), target)
	bad := &Workflow{Prompter: &scriptedPrompter{answers: []string{"y", "c", "spam", "n"}}, Filer: &recordingFiler{err: errors.New("nope")}}
	bad.Run(context.Background(), target)
	declined := &Workflow{Prompter: &scriptedPrompter{answers: []string{"n"}}, Filer: &recordingFiler{id: "1"}}
	declined.Run(context.Background(), target)

	assert.Equal(beforeDone+1, testutil.ToFloat64(done))
	assert.Equal(beforeFailed+1, testutil.ToFloat64(failed))
	assert.Equal(beforeAborted+1, testutil.ToFloat64(aborted))
}

package classify

import (
	"context"
	"errors"
	"testing"

	"github.com/ripplica/ripplica/ai"
	"github.com/ripplica/ripplica/ai/mock"
	"github.com/stretchr/testify/assert"
)

func TestSecondOpinionSkipsConfidentVerdicts(t *testing.T) {
	judge := mock.NewMockJudge()
	c := NewSecondOpinion(NewRules(), judge)
	ctx := context.Background()

	verdict := c.Classify(ctx, "what is machine learning?")
	assert.True(t, verdict.Valid)
	assert.Zero(t, judge.CallCount(), "confident rule verdicts never reach the judge")

	verdict = c.Classify(ctx, "set alarm for 6am")
	assert.False(t, verdict.Valid)
	assert.Zero(t, judge.CallCount())
}

func TestSecondOpinionRefinesAmbiguous(t *testing.T) {
	judge := mock.NewMockJudge()
	judge.JudgeQueryFunc = func(ctx context.Context, query string) (ai.Verdict, error) {
		return ai.VerdictInvalid, nil
	}
	c := NewSecondOpinion(NewRules(), judge)

	// Rules default this to valid with low confidence; the judge flips it.
	verdict := c.Classify(context.Background(), "machine learning basics")
	assert.False(t, verdict.Valid)
	assert.Equal(t, 1, judge.CallCount())
}

func TestSecondOpinionJudgeConfirms(t *testing.T) {
	judge := mock.NewMockJudge()
	judge.JudgeQueryFunc = func(ctx context.Context, query string) (ai.Verdict, error) {
		return ai.VerdictValid, nil
	}
	c := NewSecondOpinion(NewRules(), judge)

	verdict := c.Classify(context.Background(), "latest golang release notes overview")
	assert.True(t, verdict.Valid)
	assert.True(t, verdict.TimeSensitive, "time sensitivity recomputed after a judge verdict")
	assert.GreaterOrEqual(t, verdict.Confidence, confidentVerdict)
}

func TestSecondOpinionDegradesToRules(t *testing.T) {
	judge := mock.NewMockJudge()
	judge.JudgeQueryFunc = func(ctx context.Context, query string) (ai.Verdict, error) {
		return 0, errors.New("model backend down")
	}
	c := NewSecondOpinion(NewRules(), judge)

	// Judge failure is invisible to the caller: the rule verdict stands.
	verdict := c.Classify(context.Background(), "machine learning basics")
	assert.True(t, verdict.Valid)
	assert.Equal(t, 1, judge.CallCount())
}

package submission_test

import (
	"context"
	"testing"
	"time"

	"github.com/ocuscreen/ocuscreen/internal/submission"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBegin_FirstSubmissionIsCurrent(t *testing.T) {
	tr := submission.NewTracker()

	ctx, token := tr.Begin(context.Background(), "session-a")
	assert.NoError(t, ctx.Err())
	assert.True(t, tr.Current(token))
}

func TestBegin_NewSubmissionCancelsPrior(t *testing.T) {
	tr := submission.NewTracker()

	ctx1, token1 := tr.Begin(context.Background(), "session-a")
	ctx2, token2 := tr.Begin(context.Background(), "session-a")

	// The prior chain is canceled and no longer current.
	select {
	case <-ctx1.Done():
	case <-time.After(time.Second):
		t.Fatal("prior submission context was not canceled")
	}
	assert.False(t, tr.Current(token1))

	// The latest chain is untouched.
	assert.NoError(t, ctx2.Err())
	assert.True(t, tr.Current(token2))
}

func TestBegin_SessionsAreIndependent(t *testing.T) {
	tr := submission.NewTracker()

	ctxA, tokenA := tr.Begin(context.Background(), "session-a")
	_, tokenB := tr.Begin(context.Background(), "session-b")

	assert.NoError(t, ctxA.Err())
	assert.True(t, tr.Current(tokenA))
	assert.True(t, tr.Current(tokenB))
}

func TestFinish_ReleasesCurrentToken(t *testing.T) {
	tr := submission.NewTracker()

	_, token := tr.Begin(context.Background(), "session-a")
	tr.Finish(token)
	assert.False(t, tr.Current(token))

	// A later submission for the same session starts clean.
	ctx, token2 := tr.Begin(context.Background(), "session-a")
	require.NoError(t, ctx.Err())
	assert.True(t, tr.Current(token2))
}

func TestFinish_SupersededTokenIsNoOp(t *testing.T) {
	tr := submission.NewTracker()

	_, token1 := tr.Begin(context.Background(), "session-a")
	ctx2, token2 := tr.Begin(context.Background(), "session-a")

	tr.Finish(token1) // stale; must not disturb the newer submission
	assert.NoError(t, ctx2.Err())
	assert.True(t, tr.Current(token2))
}

func TestBegin_DerivesFromParentContext(t *testing.T) {
	tr := submission.NewTracker()
	parent, cancel := context.WithCancel(context.Background())

	ctx, _ := tr.Begin(parent, "session-a")
	cancel()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("submission context did not inherit parent cancellation")
	}
}

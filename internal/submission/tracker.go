// Package submission enforces last-submission-wins per screening session.
// Each new submission for a session cancels the in-flight chain of the
// previous one; the superseded chain's result is discarded, never served.
package submission

import (
	"context"
	"sync"
)

// Token identifies one submission generation within a session.
type Token struct {
	session string
	gen     uint64
}

type inflight struct {
	gen    uint64
	cancel context.CancelFunc
}

// Tracker hands out per-session generation tokens and cancels stale
// in-flight submissions. Safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]*inflight
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{sessions: make(map[string]*inflight)}
}

// Begin registers a new submission for session and returns a derived
// context plus its token. Any prior in-flight submission for the same
// session is canceled immediately.
func (t *Tracker) Begin(ctx context.Context, session string) (context.Context, Token) {
	ctx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.sessions[session]; ok {
		prev.cancel()
	}

	var gen uint64 = 1
	if prev, ok := t.sessions[session]; ok {
		gen = prev.gen + 1
	}
	t.sessions[session] = &inflight{gen: gen, cancel: cancel}

	return ctx, Token{session: session, gen: gen}
}

// Current reports whether token still identifies the latest submission
// for its session. A false return means a newer submission superseded it
// and its result must be discarded.
func (t *Tracker) Current(token Token) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.sessions[token.session]
	return ok && cur.gen == token.gen
}

// Finish releases the bookkeeping for token if it is still current.
// Superseded tokens are no-ops; their slot already belongs to a newer
// submission.
func (t *Tracker) Finish(token Token) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.sessions[token.session]
	if ok && cur.gen == token.gen {
		cur.cancel()
		delete(t.sessions, token.session)
	}
}

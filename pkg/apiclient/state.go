// Copyright (c) 2026 VideoTube. All rights reserved.

package apiclient

import "sync"

// # Status Values

const (
	StatusIdle      = "idle"
	StatusLoading   = "loading"
	StatusSucceeded = "succeeded"
	StatusFailed    = "failed"
)

// Snapshot is a point-in-time copy of the client's auth state. Readers get a
// value, never a reference into the live state, so they can inspect it
// without holding any lock.
type Snapshot struct {
	Status          string
	IsAuthenticated bool
	User            *User
	Error           string
	Loading         bool
	OTPSent         bool
	OTPVerified     bool
	PasswordChanged bool
	EmailVerified   bool
}

/*
State tracks the signed-in session as observed by the client.

It is mutated only by the fulfillment or rejection of SDK calls: every call
begins by flipping Status to "loading" and clearing Error, and settles into
either a success transition specific to the operation or a failure transition
storing the server's message. A rejected current-user call is the canonical
way the state learns "this visitor is a guest".
*/
type State struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewState returns an idle, unauthenticated state.
func NewState() *State {
	return &State{snap: Snapshot{Status: StatusIdle}}
}

// Snapshot returns a copy of the current state. The embedded User pointer is
// shared; callers must treat it as read-only.
func (state *State) Snapshot() Snapshot {
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.snap
}

// update applies a mutation under the lock.
func (state *State) update(mutate func(*Snapshot)) {
	state.mu.Lock()
	defer state.mu.Unlock()
	mutate(&state.snap)
}

// begin marks a call as pending.
func (state *State) begin() {
	state.update(func(snap *Snapshot) {
		snap.Status = StatusLoading
		snap.Error = ""
	})
}

// fail records a rejected call.
func (state *State) fail(message string) {
	state.update(func(snap *Snapshot) {
		snap.Status = StatusFailed
		snap.Error = message
	})
}

// guest clears the signed-in session. Used when the current-user call is
// rejected and when a refresh is rejected.
func (state *State) guest() {
	state.update(func(snap *Snapshot) {
		snap.User = nil
		snap.IsAuthenticated = false
		snap.Loading = false
	})
}

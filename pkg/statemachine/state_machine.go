// Copyright 2025 Tracker Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package statemachine

import (
	"fmt"
	"slices"
	"sync"
	"time"
)

// TransitionHook is triggered after a state transition occurs.
type TransitionHook[T comparable] func(from, to T)

// TransitionRecord records a state transition in the FSM history.
type TransitionRecord[T comparable] struct {
	From      T
	To        T
	Timestamp time.Time
}

// StateMachine is a generic Finite State Machine.
// It supports direct state transitions, transition hooks and a bounded
// transition history. The StateMachine is thread-safe.
type StateMachine[T comparable] struct {
	mu sync.RWMutex

	currentState T
	initialState T

	// from state -> list of valid next states
	validTransitions map[T][]T

	history        []TransitionRecord[T]
	maxHistorySize int

	onTransition []TransitionHook[T]
}

// NewWithState creates a new StateMachine with an initial state.
func NewWithState[T comparable](initialState T) *StateMachine[T] {
	return &StateMachine[T]{
		currentState:     initialState,
		initialState:     initialState,
		validTransitions: make(map[T][]T),
		history:          make([]TransitionRecord[T], 0),
		maxHistorySize:   100,
	}
}

// Allow registers valid state transitions from a source state.
func (sm *StateMachine[T]) Allow(from T, to ...T) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	for _, target := range to {
		if !slices.Contains(sm.validTransitions[from], target) {
			sm.validTransitions[from] = append(sm.validTransitions[from], target)
		}
	}
	return sm
}

// OnTransition registers a hook invoked after every successful transition.
func (sm *StateMachine[T]) OnTransition(hook TransitionHook[T]) *StateMachine[T] {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.onTransition = append(sm.onTransition, hook)
	return sm
}

// CanTransit checks if a transition from one state to another is valid.
func (sm *StateMachine[T]) CanTransit(from, to T) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Contains(sm.validTransitions[from], to)
}

// Current returns the current state of the StateMachine.
func (sm *StateMachine[T]) Current() T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.currentState
}

// Initial returns the initial state of the StateMachine.
func (sm *StateMachine[T]) Initial() T {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.initialState
}

// Reset resets the StateMachine to its initial state and clears history.
func (sm *StateMachine[T]) Reset() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.currentState = sm.initialState
	sm.history = sm.history[:0]
}

// TransitTo transitions the StateMachine to the target state.
// Returns an error when the transition is not registered.
func (sm *StateMachine[T]) TransitTo(to T) error {
	sm.mu.Lock()
	from := sm.currentState
	if !slices.Contains(sm.validTransitions[from], to) {
		sm.mu.Unlock()
		return fmt.Errorf("invalid transition from %v to %v", from, to)
	}

	sm.currentState = to
	sm.history = append(sm.history, TransitionRecord[T]{From: from, To: to, Timestamp: time.Now()})
	if len(sm.history) > sm.maxHistorySize {
		sm.history = sm.history[len(sm.history)-sm.maxHistorySize:]
	}
	hooks := slices.Clone(sm.onTransition)
	sm.mu.Unlock()

	// 在锁外执行回调，避免 hook 内再次访问状态机时死锁
	for _, hook := range hooks {
		hook(from, to)
	}
	return nil
}

// History returns a copy of the transition history.
func (sm *StateMachine[T]) History() []TransitionRecord[T] {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return slices.Clone(sm.history)
}

// Package model provides the shared scaffolding for MLPrimer estimators:
// lifecycle state management, the common estimator interfaces, and the
// portable weight representation.
package model

import "sync"

// EstimatorState is the lifecycle state of an estimator.
type EstimatorState int

const (
	// NotFitted means Fit has never completed on this estimator.
	NotFitted EstimatorState = iota
	// Fitting means a Fit call is in progress.
	Fitting
	// Fitted means Fit has completed and the trained parameters are valid.
	Fitted
)

// String returns the state name.
func (s EstimatorState) String() string {
	switch s {
	case NotFitted:
		return "NotFitted"
	case Fitting:
		return "Fitting"
	case Fitted:
		return "Fitted"
	default:
		return "Unknown"
	}
}

// StateManager tracks the lifecycle state of an estimator in a thread-safe
// manner. Estimators hold one by composition rather than embedding.
type StateManager struct {
	mu    sync.RWMutex
	state EstimatorState

	nFeatures int
	nSamples  int
}

// NewStateManager creates a StateManager in the NotFitted state.
func NewStateManager() *StateManager {
	return &StateManager{state: NotFitted}
}

// State returns the current lifecycle state.
func (s *StateManager) State() EstimatorState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// IsFitted reports whether the estimator has completed a Fit call.
func (s *StateManager) IsFitted() bool {
	return s.State() == Fitted
}

// BeginFit marks the estimator as Fitting. Predictions are rejected until
// SetFitted is called.
func (s *StateManager) BeginFit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Fitting
}

// SetFitted marks the estimator as Fitted.
func (s *StateManager) SetFitted() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Fitted
}

// Reset returns the estimator to the NotFitted state and clears dimensions.
func (s *StateManager) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = NotFitted
	s.nFeatures = 0
	s.nSamples = 0
}

// SetDimensions records the data shape seen during fitting.
func (s *StateManager) SetDimensions(nFeatures, nSamples int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nFeatures = nFeatures
	s.nSamples = nSamples
}

// GetDimensions returns the data shape seen during fitting.
func (s *StateManager) GetDimensions() (nFeatures, nSamples int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nFeatures, s.nSamples
}

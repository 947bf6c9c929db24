// Package store holds the slice-based domain state. Every change goes through
// Dispatch, which reduces the action and then runs middleware, one action at
// a time.
package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

var (
	ErrInvalidAction   = errors.New("invalid action")
	ErrUnknownAction   = errors.New("unknown action type")
	ErrUnknownExercise = errors.New("unknown exercise")
)

// ExerciseCatalog answers whether an exercise id exists. With no catalog
// configured any id is accepted.
type ExerciseCatalog interface {
	Has(id string) bool
}

// Middleware observes every reduced action together with the resulting state.
type Middleware func(action Action, state State)

type Options struct {
	Preloaded  Preloaded
	Middleware []Middleware
	Clock      func() time.Time
	IDs        func() string
	Logger     hclog.Logger
	Exercises  ExerciseCatalog
}

type Store struct {
	mu         sync.Mutex
	state      State
	middleware []Middleware
	now        func() time.Time
	newID      func() string
	logger     hclog.Logger
	exercises  ExerciseCatalog
}

func New(options Options) *Store {
	store := &Store{
		state:      stateFrom(options.Preloaded),
		middleware: options.Middleware,
		now:        options.Clock,
		newID:      options.IDs,
		logger:     options.Logger,
		exercises:  options.Exercises,
	}
	if store.now == nil {
		store.now = time.Now
	}
	if store.newID == nil {
		store.newID = uuid.NewString
	}
	if store.logger == nil {
		store.logger = hclog.NewNullLogger()
	}
	store.logger = store.logger.Named("store")
	return store
}

// Dispatch validates, stamps and reduces action, then hands the new state to
// each middleware before the next action is accepted.
func (store *Store) Dispatch(action Action) error {
	if action == nil || SliceOf(action.Type()) == "" {
		return ErrUnknownAction
	}
	if _, ok := sliceKeys[SliceOf(action.Type())]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, action.Type())
	}
	if check, ok := action.(validator); ok {
		if err := check.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidAction, action.Type(), err)
		}
	}
	if reference, ok := action.(exerciseReference); ok && store.exercises != nil {
		if id := reference.exerciseID(); !store.exercises.Has(id) {
			return fmt.Errorf("%w: %s: %w %q", ErrInvalidAction, action.Type(), ErrUnknownExercise, id)
		}
	}

	store.mu.Lock()
	defer store.mu.Unlock()

	if target, ok := action.(stampable); ok {
		action = target.stamped(Stamp{NewID: store.newID, At: store.now().UTC()})
	}
	store.state = Reduce(store.state, action)
	store.logger.Trace("action applied", "type", action.Type())

	for _, middleware := range store.middleware {
		middleware(action, store.state)
	}
	return nil
}

func (store *Store) State() State {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.state
}

// Replace swaps the whole state without running middleware. Callers use it
// after they have already written the new state to storage.
func (store *Store) Replace(preloaded Preloaded) {
	next := stateFrom(preloaded)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.state = next
}

// NewID reserves an id from the store's generator, for callers that need to
// refer to an entity right after adding it.
func (store *Store) NewID() string {
	return store.newID()
}

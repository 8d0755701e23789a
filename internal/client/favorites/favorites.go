// Package favorites tracks which recipes the signed-in user has saved.
//
// Each recipe moves through an explicit state machine:
//
//	unknown/absent --Toggle--> pending-add    --ok--> present
//	present        --Toggle--> pending-remove --ok--> absent
//
// A failed call returns the recipe to the state it had before Toggle.
package favorites

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/dessertai/internal/client/models"
)

var ErrPending = errors.New("favorite update already in progress")

type State int

const (
	Unknown State = iota
	Present
	Absent
	PendingAdd
	PendingRemove
)

func (s State) String() string {
	switch s {
	case Present:
		return "present"
	case Absent:
		return "absent"
	case PendingAdd:
		return "pending-add"
	case PendingRemove:
		return "pending-remove"
	default:
		return "unknown"
	}
}

func (s State) pending() bool { return s == PendingAdd || s == PendingRemove }

// Member reports whether the recipe currently counts as a favorite. A
// pending change has not happened yet.
func (s State) Member() bool { return s == Present || s == PendingRemove }

// API is the subset of the gateway that mutates favorites.
type API interface {
	AddFavorite(ctx context.Context, userID models.ID, recipeID int64) error
	RemoveFavorite(ctx context.Context, userID models.ID, recipeID int64) error
}

// Sessions yields the signed-in session or session.ErrNotSignedIn.
type Sessions interface {
	Require(ctx context.Context) (models.Session, error)
}

type Set struct {
	api      API
	sessions Sessions

	mu     sync.Mutex
	states map[int64]State
}

func NewSet(api API, sessions Sessions) *Set {
	return &Set{api: api, sessions: sessions, states: map[int64]State{}}
}

// Load replaces membership with ids: those become present and every other
// settled recipe becomes absent. Pending recipes are left alone.
func (s *Set) Load(ids []int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, st := range s.states {
		if !st.pending() {
			s.states[id] = Absent
		}
	}
	for _, id := range ids {
		if !s.states[id].pending() {
			s.states[id] = Present
		}
	}
}

// Reset forgets everything, e.g. after sign-out.
func (s *Set) Reset() {
	s.mu.Lock()
	s.states = map[int64]State{}
	s.mu.Unlock()
}

func (s *Set) State(recipeID int64) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[recipeID]
}

func (s *Set) Has(recipeID int64) bool { return s.State(recipeID).Member() }

// IDs returns the member recipe ids in ascending order.
func (s *Set) IDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var ids []int64
	for id, st := range s.states {
		if st.Member() {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Toggle flips membership of recipeID and returns the settled state.
// Local state changes only after the API call succeeds.
func (s *Set) Toggle(ctx context.Context, recipeID int64) (State, error) {
	sess, err := s.sessions.Require(ctx)
	if err != nil {
		return s.State(recipeID), err
	}

	s.mu.Lock()
	prev := s.states[recipeID]
	if prev.pending() {
		s.mu.Unlock()
		return prev, ErrPending
	}
	remove := prev.Member()
	if remove {
		s.states[recipeID] = PendingRemove
	} else {
		s.states[recipeID] = PendingAdd
	}
	s.mu.Unlock()

	if remove {
		err = s.api.RemoveFavorite(ctx, sess.UserID, recipeID)
	} else {
		err = s.api.AddFavorite(ctx, sess.UserID, recipeID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.states[recipeID] = prev
		return prev, fmt.Errorf("toggle favorite %d: %w", recipeID, err)
	}
	next := Present
	if remove {
		next = Absent
	}
	s.states[recipeID] = next
	return next, nil
}

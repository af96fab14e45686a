// internal/dense/quota.go
package dense

import (
	"fmt"
	"sync"
)

// Mode selects which classes the dense run emits.
type Mode int

const (
	// Both emits positive and negative matrices.
	Both Mode = iota
	// OnlyIntro emits positive matrices only.
	OnlyIntro
	// OnlyNonIntro emits negative matrices only.
	OnlyNonIntro
)

// Quota is the shared admission counter pair for the dense path. Workers
// call Admit before handing an item to the writer, so class caps are
// enforced at the source without central per-item coordination. All state
// sits behind one lock around the check-and-increment.
type Quota struct {
	mu       sync.Mutex
	mode     Mode
	balanced bool
	wantPos  int
	wantNeg  int
	pos, neg int
}

// NewQuota sizes the counters for nfeature total items. Under forceBalanced
// the total splits across classes with the odd item going to the positive
// class; single-class modes assign the whole total to their class and
// ignore the balance flag.
func NewQuota(nfeature int, forceBalanced bool, mode Mode) (*Quota, error) {
	if nfeature <= 0 {
		return nil, fmt.Errorf("nfeature must be positive, got %d", nfeature)
	}
	q := &Quota{mode: mode}
	switch mode {
	case OnlyIntro:
		q.wantPos = nfeature
	case OnlyNonIntro:
		q.wantNeg = nfeature
	case Both:
		if forceBalanced {
			q.balanced = true
			q.wantPos = nfeature/2 + nfeature%2
			q.wantNeg = nfeature / 2
		} else {
			// Unbalanced: one combined pool, capped on wantPos.
			q.wantPos = nfeature
		}
	default:
		return nil, fmt.Errorf("unknown sampling mode %d", mode)
	}
	return q, nil
}

// Admit reports whether an item of the given label still fits its class
// quota, incrementing the class counter when it does.
func (q *Quota) Admit(label int) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch {
	case q.mode == OnlyIntro:
		if label != 1 || q.pos >= q.wantPos {
			return false
		}
		q.pos++
	case q.mode == OnlyNonIntro:
		if label != 0 || q.neg >= q.wantNeg {
			return false
		}
		q.neg++
	case q.balanced:
		if label == 1 {
			if q.pos >= q.wantPos {
				return false
			}
			q.pos++
		} else {
			if q.neg >= q.wantNeg {
				return false
			}
			q.neg++
		}
	default:
		if q.pos+q.neg >= q.wantPos {
			return false
		}
		if label == 1 {
			q.pos++
		} else {
			q.neg++
		}
	}
	return true
}

// Done reports whether every class quota is met.
func (q *Quota) Done() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	switch {
	case q.mode == OnlyIntro:
		return q.pos >= q.wantPos
	case q.mode == OnlyNonIntro:
		return q.neg >= q.wantNeg
	case q.balanced:
		return q.pos >= q.wantPos && q.neg >= q.wantNeg
	default:
		return q.pos+q.neg >= q.wantPos
	}
}

// Counts returns the admitted totals per class.
func (q *Quota) Counts() (pos, neg int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pos, q.neg
}

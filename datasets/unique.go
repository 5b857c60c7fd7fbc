package datasets

import "math/rand"

import "github.com/pkg/errors"

// ErrExhausted is returned by Draw once every value was produced.
var ErrExhausted = errors.New("sampler exhausted")

// UniqueRand draws integers uniformly without replacement from [low, high].
// It is a lazy Fisher-Yates shuffle: each Draw swaps the pick out of the
// remaining window.
type UniqueRand struct {
	pool []int
	left int
	rng  *rand.Rand
}

// NewUniqueRand covers [low, high]. An empty range produces no values.
func NewUniqueRand(low, high int, rng *rand.Rand) *UniqueRand {
	var pool []int
	if high >= low {
		pool = make([]int, 0, high-low+1)
		for v := low; v <= high; v++ {
			pool = append(pool, v)
		}
	}
	return &UniqueRand{pool: pool, left: len(pool), rng: rng}
}

// Draw returns the next value.
func (u *UniqueRand) Draw() (int, error) {
	if u.left == 0 {
		return 0, errors.WithStack(ErrExhausted)
	}
	j := u.rng.Intn(u.left)
	u.left--
	u.pool[j], u.pool[u.left] = u.pool[u.left], u.pool[j]
	return u.pool[u.left], nil
}

// Reset makes every value available again. Later draws come in a new order.
func (u *UniqueRand) Reset() {
	u.left = len(u.pool)
}

// Remaining is the number of values left before exhaustion
func (u *UniqueRand) Remaining() int {
	return u.left
}

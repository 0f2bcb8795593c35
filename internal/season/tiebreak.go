package season

import "github.com/gridsim/gridiron/internal/domain/rng"

// tieBreaker settles drawn games with coin flips from a dedicated RNG
// stream, so tie resolution cannot perturb game or schedule seeds.
type tieBreaker struct {
	r *rng.Source
}

func newTieBreaker(seed int64) *tieBreaker {
	return &tieBreaker{r: rng.New(seed)}
}

func (t *tieBreaker) homeWins() bool {
	return t.r.Float64() < 0.5
}

package engine

import (
	"math"
	"math/rand"
	"time"

	"github.com/hailam/gomokuplay/internal/board"
)

// NoTimeLimit disables the wall clock so only the iteration cap bounds a
// search. Combined with a fixed seed this makes searches reproducible.
const NoTimeLimit time.Duration = -1

const rolloutPlyCap = 50

// Config holds the search parameters.
type Config struct {
	// Exploration is the UCT exploration constant.
	Exploration float64
	// MaxIterations caps the number of simulations per search.
	MaxIterations int
	// MoveTime is the default wall-clock budget per search. Zero runs no
	// iterations; NoTimeLimit disables the clock.
	MoveTime time.Duration
	// Seed seeds the search RNG; 0 derives a seed from the clock.
	Seed int64
	// HeuristicRollout enables the heuristic-guided rollout policy.
	HeuristicRollout bool
	// RandomRollout enables the uniform-random rollout policy.
	RandomRollout bool
}

// DefaultConfig returns the standard search configuration.
func DefaultConfig() Config {
	return Config{
		Exploration:      1.2,
		MaxIterations:    10000,
		MoveTime:         time.Second,
		HeuristicRollout: true,
		RandomRollout:    true,
	}
}

// node is a search tree node. Each node owns its children; the parent link
// is a non-owning back reference. The tree lives only for one search call.
type node struct {
	move     board.Move
	parent   *node
	children []*node
	untried  []board.Move
	visits   int
	value    float64
	side     board.Cell // side to move at this node
}

// Searcher runs Monte-Carlo tree searches. It is single-threaded; the RNG
// is owned by the instance and reseeded only at construction.
type Searcher struct {
	cfg        Config
	rng        *rand.Rand
	iterations int
}

// NewSearcher creates a searcher with the given configuration.
func NewSearcher(cfg Config) *Searcher {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Searcher{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)),
	}
}

// Config returns the current configuration.
func (s *Searcher) Config() Config {
	return s.cfg
}

// SetConfig replaces the configuration for subsequent searches. The RNG is
// not reseeded.
func (s *Searcher) SetConfig(cfg Config) {
	s.cfg = cfg
}

// Iterations returns the simulation count of the most recent search.
func (s *Searcher) Iterations() int {
	return s.iterations
}

// Search picks a move using the configured move time.
func (s *Searcher) Search(b *board.Board) board.Move {
	return s.SearchTime(b, s.cfg.MoveTime)
}

// SearchTime picks a move within the given wall-clock budget. The caller's
// board is never mutated: every simulation drives its own copy. Immediate
// wins and forced blocks short-circuit the tree search entirely.
func (s *Searcher) SearchTime(b *board.Board, limit time.Duration) board.Move {
	s.iterations = 0
	if m := FindWinningMove(b); m.IsValid() {
		return m
	}
	if m := FindBlockingMove(b); m.IsValid() {
		return m
	}

	root := &node{
		move:    board.NoMove,
		side:    b.CurrentPlayer(),
		untried: b.LegalMoves(),
	}
	if len(root.untried) == 1 {
		return root.untried[0]
	}

	start := time.Now()
	for s.iterations < s.cfg.MaxIterations &&
		(limit < 0 || time.Since(start) < limit) {
		c := b.Copy()

		n := root
		for len(n.untried) == 0 && len(n.children) > 0 {
			n = s.selectChild(n)
			c.Apply(n.move)
		}

		if len(n.untried) > 0 && !c.Terminal() {
			n = s.expand(n, c)
		}

		v := s.rollout(c)

		for cur := n; cur != nil; cur = cur.parent {
			cur.visits++
			if cur.side == root.side {
				cur.value += v
			} else {
				cur.value -= v
			}
		}

		s.iterations++
	}

	best := (*node)(nil)
	for _, c := range root.children {
		if best == nil || c.visits > best.visits {
			best = c
		}
	}
	if best != nil {
		return best.move
	}
	if len(root.untried) > 0 {
		return root.untried[0]
	}
	return board.NoMove
}

// selectChild returns the child maximizing the UCT value. A child's mean is
// accumulated from the perspective of the player who moved into it, so the
// parent maximizes the negated mean plus the exploration term. Unvisited
// children rank infinite and are taken in stored order.
func (s *Searcher) selectChild(n *node) *node {
	var best *node
	bestUCT := math.Inf(-1)
	logN := math.Log(float64(n.visits))
	for _, c := range n.children {
		if c.visits == 0 {
			return c
		}
		q := c.value / float64(c.visits)
		uct := -q + s.cfg.Exploration*math.Sqrt(logN/float64(c.visits))
		if uct > bestUCT {
			bestUCT = uct
			best = c
		}
	}
	return best
}

// expand takes one untried move of n, applies it to c and attaches the new
// child. With more than 3 untried moves the untried list is shuffled and the
// best of a 5-move heuristic sample is taken; otherwise the pick is uniform.
func (s *Searcher) expand(n *node, c *board.Board) *node {
	var pick int
	if len(n.untried) > 3 {
		s.rng.Shuffle(len(n.untried), func(i, j int) {
			n.untried[i], n.untried[j] = n.untried[j], n.untried[i]
		})
		sample := 5
		if len(n.untried) < sample {
			sample = len(n.untried)
		}
		pick = 0
		bestScore := EvaluateMove(c, n.untried[0])
		for i := 1; i < sample; i++ {
			if score := EvaluateMove(c, n.untried[i]); score > bestScore {
				bestScore = score
				pick = i
			}
		}
	} else {
		pick = s.rng.Intn(len(n.untried))
	}

	m := n.untried[pick]
	n.untried = append(n.untried[:pick], n.untried[pick+1:]...)

	c.Apply(m)
	child := &node{
		move:    m,
		parent:  n,
		side:    c.CurrentPlayer(),
		untried: c.LegalMoves(),
	}
	n.children = append(n.children, child)
	return child
}

// rollout estimates the value of the position from the side to move's
// perspective. An already-terminal board scores by comparing the winner to
// the side that would move next; otherwise the enabled playout policies run
// on independent copies and their results are averaged.
func (s *Searcher) rollout(b *board.Board) float64 {
	if b.Terminal() {
		if b.Result() == board.Draw {
			return 0
		}
		// Apply flips the side after the winning stone, so the side to move
		// here is never the winner; the branch stays for safety.
		if b.Winner() == b.CurrentPlayer() {
			return 1
		}
		return -1
	}

	total, policies := 0.0, 0
	if s.cfg.HeuristicRollout {
		total += s.playout(b.Copy(), true)
		policies++
	}
	if s.cfg.RandomRollout {
		total += s.playout(b.Copy(), false)
		policies++
	}
	if policies == 0 {
		return 0
	}
	return total / float64(policies)
}

// playout plays up to rolloutPlyCap plies on b. With heuristic selection
// each ply picks uniformly among the top three scored moves; otherwise
// uniformly among all legal moves. Truncation without a winner counts as a
// draw.
func (s *Searcher) playout(b *board.Board, heuristic bool) float64 {
	start := b.CurrentPlayer()
	for ply := 0; ply < rolloutPlyCap && !b.Terminal(); ply++ {
		var m board.Move
		if heuristic {
			scored := ScoredMoves(b)
			top := 3
			if len(scored) < top {
				top = len(scored)
			}
			m = scored[s.rng.Intn(top)].Move
		} else {
			legal := b.LegalMoves()
			m = legal[s.rng.Intn(len(legal))]
		}
		b.Apply(m)
	}

	winner := b.Winner()
	if winner == board.Empty {
		return 0
	}
	if winner == start {
		return 1
	}
	return -1
}

package game

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/lox/indianpoker/internal/deck"
	"github.com/lox/indianpoker/internal/randutil"
)

// ErrInsufficientPlayers is returned when a session is constructed with
// fewer than two players. The rational policy averages over opponents,
// so it needs at least one.
var ErrInsufficientPlayers = errors.New("game: at least 2 players required")

// Option configures a Session during creation.
type Option func(*sessionConfig)

type sessionConfig struct {
	seed     int64
	seedSet  bool
	rng      *rand.Rand
	scoring  Scoring
	rounds   int // provisioning hint
	honesty  []float64
	logger   zerolog.Logger
	observer RoundObserver
}

// WithSeed derives the session RNG from seed. Sessions with the same
// seed and configuration replay identically.
func WithSeed(seed int64) Option {
	return func(c *sessionConfig) {
		c.seed = seed
		c.seedSet = true
	}
}

// WithRNG supplies the RNG directly and overrides WithSeed. The rng
// must not be shared with another running session.
func WithRNG(rng *rand.Rand) Option {
	return func(c *sessionConfig) { c.rng = rng }
}

// WithScoring overrides the default payoffs.
func WithScoring(s Scoring) Option {
	return func(c *sessionConfig) { c.scoring = s }
}

// WithRounds hints how many rounds the session will play so the deck
// can be provisioned once up front. Run re-provisions if the hint was
// too small, so this is an optimization, never a correctness knob.
func WithRounds(rounds int) Option {
	return func(c *sessionConfig) { c.rounds = rounds }
}

// WithHonesty fixes each seat's honesty instead of drawing it from the
// session RNG. The slice length must match the player count.
func WithHonesty(honesty []float64) Option {
	return func(c *sessionConfig) { c.honesty = honesty }
}

// WithLogger attaches a logger for per-round debug traces.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *sessionConfig) { c.logger = logger }
}

// WithObserver registers an observer for resolved rounds.
func WithObserver(observer RoundObserver) Option {
	return func(c *sessionConfig) { c.observer = observer }
}

// Session owns an arena of players and plays rounds against one
// provisioned deck. Sessions are single-threaded: all randomness flows
// from one injected source, so a seed fully determines the outcome.
type Session struct {
	players  []*Player
	deck     *deck.Deck
	signaler *Signaler
	rng      *rand.Rand
	scoring  Scoring
	logger   zerolog.Logger
	observer RoundObserver
	played   int
}

// NewSession creates numPlayers players with honesty drawn uniformly
// from [0,1) and policies assigned by the fixed alternation rule: even
// seats rational, odd seats random.
func NewSession(numPlayers int, opts ...Option) (*Session, error) {
	if numPlayers < 2 {
		return nil, ErrInsufficientPlayers
	}

	cfg := &sessionConfig{
		scoring: DefaultScoring(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if err := cfg.scoring.Validate(); err != nil {
		return nil, err
	}
	if cfg.honesty != nil {
		if len(cfg.honesty) != numPlayers {
			return nil, fmt.Errorf("game: honesty vector has %d entries for %d players", len(cfg.honesty), numPlayers)
		}
		for i, h := range cfg.honesty {
			if h < 0 || h > 1 {
				return nil, fmt.Errorf("game: honesty for seat %d out of range: %v", i, h)
			}
		}
	}

	rng := cfg.rng
	if rng == nil {
		seed := cfg.seed
		if !cfg.seedSet {
			seed = time.Now().UnixNano()
		}
		rng = randutil.New(seed)
	}

	s := &Session{
		players:  make([]*Player, numPlayers),
		signaler: NewSignaler(rng),
		rng:      rng,
		scoring:  cfg.scoring,
		logger:   cfg.logger,
		observer: cfg.observer,
	}

	for i := range s.players {
		honesty := rng.Float64()
		if cfg.honesty != nil {
			honesty = cfg.honesty[i]
		}
		var policy DecisionPolicy
		if i%2 == 0 {
			policy = NewRationalPolicy()
		} else {
			policy = NewRandomPolicy(rng)
		}
		s.players[i] = &Player{seat: i, honesty: honesty, policy: policy}
	}

	if cfg.rounds > 0 {
		s.deck = deck.Provisioned(rng, numPlayers*cfg.rounds)
	}

	return s, nil
}

// Run plays rounds sequentially. Only cumulative scores and the deck's
// remaining contents persist between rounds.
func (s *Session) Run(rounds int) error {
	draws := len(s.players) * rounds
	if s.deck == nil || s.deck.Remaining() < draws {
		s.deck = deck.Provisioned(s.rng, draws)
	}

	engine := NewRoundEngine(s.deck, s.signaler, s.players, s.scoring)
	for i := 0; i < rounds; i++ {
		s.played++
		result, err := engine.Play(s.played)
		if err != nil {
			return fmt.Errorf("session: %w", err)
		}
		s.logger.Debug().
			Int("round", result.Round).
			Stringer("winning", result.WinningRank).
			Int("callers", result.Callers).
			Msg("round resolved")
		if s.observer != nil {
			s.observer.RoundResolved(result)
		}
	}
	return nil
}

// OverrideSeat replaces a seat's honesty and/or policy before any
// round has run. Scenario files use it to pin individual seats on top
// of the construction-time defaults. Nil leaves a field unchanged.
func (s *Session) OverrideSeat(seat int, honesty *float64, kind *PolicyKind) error {
	if s.played > 0 {
		return fmt.Errorf("game: cannot override seat %d after %d rounds", seat, s.played)
	}
	if seat < 0 || seat >= len(s.players) {
		return fmt.Errorf("game: no seat %d in a %d-player session", seat, len(s.players))
	}
	if honesty != nil {
		if *honesty < 0 || *honesty > 1 {
			return fmt.Errorf("game: honesty for seat %d out of range: %v", seat, *honesty)
		}
		s.players[seat].honesty = *honesty
	}
	if kind != nil {
		switch *kind {
		case Rational:
			s.players[seat].policy = NewRationalPolicy()
		case Random:
			s.players[seat].policy = NewRandomPolicy(s.rng)
		default:
			return fmt.Errorf("game: unknown policy kind %v for seat %d", *kind, seat)
		}
	}
	return nil
}

// Players returns the seat-ordered arena.
func (s *Session) Players() []*Player { return s.players }

// FinalScores returns the cumulative score per player.
func (s *Session) FinalScores() map[*Player]int {
	scores := make(map[*Player]int, len(s.players))
	for _, p := range s.players {
		scores[p] = p.score
	}
	return scores
}

// Rounds returns how many rounds have been resolved so far.
func (s *Session) Rounds() int { return s.played }

// RunGame plays a complete session and returns the final score mapping.
func RunGame(numPlayers, numRounds int, seed int64) (map[*Player]int, error) {
	s, err := NewSession(numPlayers, WithSeed(seed), WithRounds(numRounds))
	if err != nil {
		return nil, err
	}
	if err := s.Run(numRounds); err != nil {
		return nil, err
	}
	return s.FinalScores(), nil
}

package cadence

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"time"
)

const day = 24 * time.Hour

// Defaults applied by NewScheduler to zero-valued Config fields.
const (
	DefaultRequestRetention = 0.9
	DefaultMaximumInterval  = 36500
)

// MaximumIntervalLimit is the largest MaximumInterval, in days, whose
// due offset still fits in a time.Duration.
const MaximumIntervalLimit = int(math.MaxInt64 / int64(day))

// Config configures a Scheduler.
// Zero values produce sensible defaults; see field comments.
type Config struct {
	Weights          Weights         `json:"weights"`           // zero → DefaultWeights
	RequestRetention float64         `json:"request_retention"` // zero → 0.9; must be in (0, 1)
	MaximumInterval  int             `json:"maximum_interval"`  // zero → 36500
	EnableFuzz       bool            `json:"enable_fuzz"`
	LearningSteps    []time.Duration `json:"learning_steps"`   // nil → [10m]; empty → no steps
	RelearningSteps  []time.Duration `json:"relearning_steps"` // nil → [10m]; empty → no steps

	Source Source       `json:"-"` // nil → seeded PCG
	Logger *slog.Logger `json:"-"` // nil → discard
}

// Scheduler schedules card reviews using the FSRS-5 model.
// It is immutable after construction and safe for concurrent use.
type Scheduler struct {
	model            Model
	requestRetention float64
	maximumInterval  int
	enableFuzz       bool
	learningSteps    []time.Duration
	relearningSteps  []time.Duration
	source           Source
	logger           *slog.Logger
}

// NewScheduler creates a Scheduler from the given config.
// Zero-value fields are filled with defaults; invalid values return an
// error wrapping ErrInvalidConfig.
func NewScheduler(cfg Config) (*Scheduler, error) {
	w := cfg.Weights
	if w == (Weights{}) {
		w = DefaultWeights
	}
	if err := ValidateWeights(w); err != nil {
		return nil, err
	}

	rr := cfg.RequestRetention
	if rr == 0 {
		rr = DefaultRequestRetention
	}
	if !(rr > 0 && rr < 1) {
		return nil, fmt.Errorf("%w: request retention %f out of range (0, 1)", ErrInvalidConfig, rr)
	}

	maxIvl := cfg.MaximumInterval
	if maxIvl == 0 {
		maxIvl = DefaultMaximumInterval
	}
	if maxIvl < 1 || maxIvl > MaximumIntervalLimit {
		return nil, fmt.Errorf("%w: maximum interval %d out of range [1, %d]", ErrInvalidConfig, maxIvl, MaximumIntervalLimit)
	}

	ls, err := resolveSteps("learning", cfg.LearningSteps)
	if err != nil {
		return nil, err
	}
	rs, err := resolveSteps("relearning", cfg.RelearningSteps)
	if err != nil {
		return nil, err
	}

	src := cfg.Source
	if src == nil {
		src = pcgSource{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Scheduler{
		model:            NewModel(w),
		requestRetention: rr,
		maximumInterval:  maxIvl,
		enableFuzz:       cfg.EnableFuzz,
		learningSteps:    ls,
		relearningSteps:  rs,
		source:           src,
		logger:           logger,
	}, nil
}

// resolveSteps applies the nil default and rejects non-positive steps.
// The result never aliases the caller's slice.
func resolveSteps(kind string, steps []time.Duration) ([]time.Duration, error) {
	if steps == nil {
		return []time.Duration{10 * time.Minute}, nil
	}
	for i, d := range steps {
		if d <= 0 {
			return nil, fmt.Errorf("%w: %s step %d is %s, must be positive", ErrInvalidConfig, kind, i, d)
		}
	}
	return slices.Clone(steps), nil
}

// Model returns the scheduler's memory model.
func (s *Scheduler) Model() Model {
	return s.model
}

// Config returns the resolved configuration, defaults filled in.
func (s *Scheduler) Config() Config {
	return Config{
		Weights:          s.model.w,
		RequestRetention: s.requestRetention,
		MaximumInterval:  s.maximumInterval,
		EnableFuzz:       s.enableFuzz,
		LearningSteps:    slices.Clone(s.learningSteps),
		RelearningSteps:  slices.Clone(s.relearningSteps),
		Source:           s.source,
		Logger:           s.logger,
	}
}

// ReviewCard commits a review of the card with the given rating at now.
// It returns the updated card and its review log; the input card is not
// mutated.
func (s *Scheduler) ReviewCard(card Card, rating Rating, now time.Time) (Card, ReviewLog, error) {
	c, log, err := s.review(card, rating, now, s.draw(card, now))
	if err != nil {
		return Card{}, ReviewLog{}, err
	}
	s.logger.Debug("card reviewed",
		"card_id", c.CardID,
		"rating", rating,
		"from", card.State,
		"to", c.State,
		"due", c.Due,
		"stability", c.Stability,
		"difficulty", c.Difficulty,
	)
	return c, log, nil
}

// Outcome is the projected result of one rating.
type Outcome struct {
	Card  Card      `json:"card"`
	Log   ReviewLog `json:"log"`
	Label string    `json:"label"` // due - now, e.g. "10m" or "3d"
}

// Preview maps each rating to its projected outcome.
type Preview map[Rating]Outcome

// PreviewCard returns the result of reviewing the card with each possible
// rating at now. Nothing is committed: each Outcome equals what ReviewCard
// would return for the same rating and time.
func (s *Scheduler) PreviewCard(card Card, now time.Time) (Preview, error) {
	u := s.draw(card, now)
	p := make(Preview, len(Ratings))
	for _, r := range Ratings {
		c, log, err := s.review(card, r, now, u)
		if err != nil {
			return nil, err
		}
		p[r] = Outcome{Card: c, Log: log, Label: IntervalLabel(c.Due.Sub(now))}
	}
	return p, nil
}

// Retrievability returns the probability of recall for the card at now.
// Returns 0 if the card has never been reviewed.
func (s *Scheduler) Retrievability(card Card, now time.Time) (float64, error) {
	if card.State == New || card.LastReview == nil {
		return 0, nil
	}
	elapsed := now.Sub(*card.LastReview)
	if elapsed < 0 {
		return 0, fmt.Errorf("%w: card %s", ErrClockRegression, card.CardID)
	}
	return s.model.Retrievability(card.Stability, elapsed.Hours()/24.0), nil
}

// RescheduleCard replays the given review logs, in review-time order, on
// top of card to rebuild its scheduling state under this scheduler's
// parameters. Returns ErrCardIDMismatch if any log belongs to another card.
func (s *Scheduler) RescheduleCard(card Card, logs []ReviewLog) (Card, error) {
	ordered := slices.Clone(logs)
	slices.SortStableFunc(ordered, func(a, b ReviewLog) int {
		return a.ReviewedAt.Compare(b.ReviewedAt)
	})

	c := card.clone()
	for _, log := range ordered {
		if log.CardID != c.CardID {
			return Card{}, fmt.Errorf("%w: card %s, log %s", ErrCardIDMismatch, c.CardID, log.CardID)
		}
		var err error
		c, _, err = s.ReviewCard(c, log.Rating, log.ReviewedAt)
		if err != nil {
			return Card{}, fmt.Errorf("replaying review at %s: %w", log.ReviewedAt.Format(time.RFC3339), err)
		}
	}
	return c, nil
}

// MarshalJSON implements json.Marshaler. Source and Logger are not
// serialized.
func (s *Scheduler) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Config())
}

// UnmarshalJSON implements json.Unmarshaler.
// It validates the serialized config and rebuilds the scheduler from it.
func (s *Scheduler) UnmarshalJSON(data []byte) error {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return err
	}
	rebuilt, err := NewScheduler(cfg)
	if err != nil {
		return err
	}
	*s = *rebuilt
	return nil
}

// draw returns the fuzz draw for a review of card at now.
func (s *Scheduler) draw(card Card, now time.Time) float64 {
	if !s.enableFuzz {
		return 0
	}
	return s.source.Uniform(fuzzSeed(card, now))
}

// review computes one transition. u is the fuzz draw shared by every
// rating of the same review.
func (s *Scheduler) review(card Card, rating Rating, now time.Time, u float64) (Card, ReviewLog, error) {
	if !rating.IsValid() {
		return Card{}, ReviewLog{}, fmt.Errorf("%w: %d", ErrInvalidRating, int(rating))
	}
	if err := validateCard(card); err != nil {
		return Card{}, ReviewLog{}, err
	}
	elapsed, err := card.elapsedDays(now)
	if err != nil {
		return Card{}, ReviewLog{}, err
	}

	c := card.clone()
	c.ElapsedDays = elapsed

	if card.State == New {
		c.Stability = s.model.InitialStability(rating)
		c.Difficulty = s.model.InitialDifficulty(rating)
	} else {
		c.Stability, c.Difficulty = s.nextMemory(card, rating, elapsed)
	}
	if !finite(c.Stability) || !finite(c.Difficulty) {
		return Card{}, ReviewLog{}, fmt.Errorf("%w: card %s rated %s: stability %v, difficulty %v",
			ErrNumericDegeneracy, card.CardID, rating, c.Stability, c.Difficulty)
	}

	var interval time.Duration
	switch card.State {
	case New, Learning:
		interval = s.transitionLearning(&c, rating, s.learningSteps, u)
	case Relearning:
		interval = s.transitionLearning(&c, rating, s.relearningSteps, u)
	case Review:
		interval = s.transitionReview(&c, card, rating, elapsed, u)
	}

	c.Due = now.Add(interval)
	c.ScheduledDays = int(interval / day)
	c.Reps++
	c.LastReview = &now

	log := ReviewLog{
		CardID:        c.CardID,
		Rating:        rating,
		State:         card.State,
		Due:           c.Due,
		Stability:     c.Stability,
		Difficulty:    c.Difficulty,
		ElapsedDays:   c.ElapsedDays,
		ScheduledDays: c.ScheduledDays,
		ReviewedAt:    now,
	}
	return c, log, nil
}

// validateCard rejects states the engine never produces.
func validateCard(c Card) error {
	if !c.State.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidState, int(c.State))
	}
	if c.State == New {
		return nil
	}
	if c.Step < 0 {
		return fmt.Errorf("%w: %s card %s has step %d", ErrInvalidState, c.State, c.CardID, c.Step)
	}
	if !finite(c.Stability) || c.Stability <= 0 {
		return fmt.Errorf("%w: %s card %s has stability %v", ErrInvalidState, c.State, c.CardID, c.Stability)
	}
	if !finite(c.Difficulty) || c.Difficulty < minDifficulty || c.Difficulty > maxDifficulty {
		return fmt.Errorf("%w: %s card %s has difficulty %v", ErrInvalidState, c.State, c.CardID, c.Difficulty)
	}
	if c.LastReview == nil {
		return fmt.Errorf("%w: %s card %s has no last review", ErrInvalidState, c.State, c.CardID)
	}
	return nil
}

// nextMemory returns the stability and difficulty after rating a card that
// has been reviewed before. Reviews less than a day apart use the
// short-term stability formula.
func (s *Scheduler) nextMemory(c Card, rating Rating, elapsedDays int) (stability, difficulty float64) {
	difficulty = s.model.NextDifficulty(c.Difficulty, rating)
	if elapsedDays < 1 {
		return s.model.NextStabilityShortTerm(c.Stability, rating), difficulty
	}
	r := s.model.Retrievability(c.Stability, float64(elapsedDays))
	if rating == Again {
		return s.model.NextStabilityOnFailure(c.Difficulty, c.Stability, r), difficulty
	}
	return s.model.NextStabilityOnSuccess(c.Difficulty, c.Stability, r, rating), difficulty
}

// transitionLearning handles New, Learning and Relearning transitions and
// returns the scheduling interval.
func (s *Scheduler) transitionLearning(c *Card, rating Rating, steps []time.Duration, u float64) time.Duration {
	entering := c.State == New
	if entering {
		c.State = Learning
		c.Step = 0
	}

	// Empty steps or step overflow → graduate to Review.
	if len(steps) == 0 || (c.Step >= len(steps) && rating != Again) {
		return s.graduate(c, u)
	}

	switch rating {
	case Again:
		c.Step = 0
		return steps[0]

	case Hard:
		return hardStep(steps, c.Step)

	case Good:
		if entering {
			return steps[0]
		}
		next := c.Step + 1
		if next >= len(steps) {
			// Last step → graduate.
			return s.graduate(c, u)
		}
		c.Step = next
		return steps[next]

	default: // Easy
		return s.graduate(c, u)
	}
}

// hardStep repeats the current step; on the first step it waits between
// the first and second step, or 1.5× a single step.
func hardStep(steps []time.Duration, step int) time.Duration {
	switch {
	case step == 0 && len(steps) == 1:
		return steps[0] * 3 / 2
	case step == 0:
		return (steps[0] + steps[1]) / 2
	default:
		return steps[step]
	}
}

// transitionReview handles Review state transitions. prev is the card as
// it was before this review.
func (s *Scheduler) transitionReview(c *Card, prev Card, rating Rating, elapsedDays int, u float64) time.Duration {
	c.Step = 0
	if rating == Again {
		c.Lapses++
		if len(s.relearningSteps) > 0 {
			c.State = Relearning
			return s.relearningSteps[0]
		}
		// Empty relearning steps → stay in Review on a day interval.
		return time.Duration(s.interval(c.Stability, u)) * day
	}
	return time.Duration(s.reviewIntervals(prev, elapsedDays, u)[rating]) * day
}

// reviewIntervals computes the day intervals of all successful ratings of
// a Review card, ordered so that Hard <= Good <= Easy after fuzzing.
func (s *Scheduler) reviewIntervals(prev Card, elapsedDays int, u float64) [Easy + 1]int {
	var ivl [Easy + 1]int
	for _, r := range []Rating{Hard, Good, Easy} {
		stability, _ := s.nextMemory(prev, r, elapsedDays)
		ivl[r] = s.interval(stability, u)
	}
	ivl[Hard] = min(ivl[Hard], ivl[Good])
	ivl[Easy] = max(ivl[Easy], ivl[Good])
	return ivl
}

// graduate moves a card to Review and returns its first day interval.
func (s *Scheduler) graduate(c *Card, u float64) time.Duration {
	c.State = Review
	c.Step = 0
	return time.Duration(s.interval(c.Stability, u)) * day
}

// interval returns the (optionally fuzzed) day interval for stability.
func (s *Scheduler) interval(stability, u float64) int {
	ivl := s.model.NextInterval(stability, s.requestRetention, s.maximumInterval)
	if s.enableFuzz {
		ivl = applyFuzz(ivl, s.maximumInterval, u)
	}
	return ivl
}

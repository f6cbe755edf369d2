// Package gesture turns raw pointer samples for one card into a discrete
// swipe decision plus a continuous visual transform. It is pure logic: it
// never talks to the store or the deck.
package gesture

import (
	"math"
	"time"
)

// Decision is the terminal outcome of one tracked gesture.
type Decision string

const (
	DecisionLike      Decision = "like"
	DecisionPass      Decision = "pass"
	DecisionSuperlike Decision = "superlike"
	DecisionNone      Decision = "none"
)

// Sample is one pointer position in card-client coordinates.
type Sample struct {
	X float64   `json:"x"`
	Y float64   `json:"y"`
	T time.Time `json:"t"`
}

// Transform is the visual state of the tracked card.
type Transform struct {
	TranslateX float64 `json:"translateX"`
	TranslateY float64 `json:"translateY"`
	Rotation   float64 `json:"rotation"`
	Opacity    float64 `json:"opacity"`
}

// Origin is the at-rest transform a card snaps back to.
var Origin = Transform{Opacity: 1}

const (
	defaultThresholdFraction = 0.25
	defaultMaxRotation       = 15.0
	minOpacity               = 0.6
	edgeSnapFactor           = 1.2
)

// Config sizes the recognizer to one card. Threshold is a fraction of the
// card's half-width (horizontal) or half-height (vertical).
type Config struct {
	CardWidth         float64
	CardHeight        float64
	ThresholdFraction float64
	MaxRotation       float64 // degrees
}

func (c Config) withDefaults() Config {
	if c.ThresholdFraction <= 0 {
		c.ThresholdFraction = defaultThresholdFraction
	}
	if c.MaxRotation <= 0 {
		c.MaxRotation = defaultMaxRotation
	}
	return c
}

// Recognizer tracks one active card from Begin to End or Cancel.
type Recognizer struct {
	cfg       Config
	origin    Sample
	active    bool
	committed Decision
}

func NewRecognizer(cfg Config) *Recognizer {
	return &Recognizer{cfg: cfg.withDefaults(), committed: DecisionNone}
}

// Active reports whether a gesture is currently being tracked.
func (r *Recognizer) Active() bool {
	return r.active
}

// Committed returns the direction the gesture first crossed the threshold
// toward, for driving a snap-to-edge animation. It is a hint only: the final
// decision always comes from the release sample.
func (r *Recognizer) Committed() Decision {
	return r.committed
}

// Begin starts tracking a gesture at the given sample.
func (r *Recognizer) Begin(s Sample) {
	r.origin = s
	r.active = true
	r.committed = DecisionNone
}

// Move updates the tracked gesture and returns the card's transform. Once the
// displacement first crosses the threshold the recognizer pre-commits to that
// direction.
func (r *Recognizer) Move(s Sample) Transform {
	if !r.active {
		return Origin
	}
	dx := s.X - r.origin.X
	dy := s.Y - r.origin.Y
	if r.committed == DecisionNone {
		r.committed = r.decisionFor(dx, dy)
	}
	return r.transformFor(dx, dy)
}

// End finishes the gesture at the release sample. Sub-threshold releases
// yield DecisionNone and the origin transform; decided releases yield an
// off-screen snap transform in the decided direction.
func (r *Recognizer) End(s Sample) (Decision, Transform) {
	if !r.active {
		return DecisionNone, Origin
	}
	r.active = false
	dx := s.X - r.origin.X
	dy := s.Y - r.origin.Y
	decision := r.decisionFor(dx, dy)
	r.committed = DecisionNone
	if decision == DecisionNone {
		return DecisionNone, Origin
	}
	return decision, r.snapTransform(decision, dx)
}

// Cancel aborts tracking (pointer lost, app unfocused). The card returns to
// origin and no decision is emitted.
func (r *Recognizer) Cancel() Transform {
	r.active = false
	r.committed = DecisionNone
	return Origin
}

// decisionFor applies the dominant-axis rule: horizontal wins when |dx|>|dy|.
// Only downward vertical motion maps to a decision; upward yields none.
func (r *Recognizer) decisionFor(dx, dy float64) Decision {
	if math.Abs(dx) > math.Abs(dy) {
		if math.Abs(dx) <= r.horizontalThreshold() {
			return DecisionNone
		}
		if dx > 0 {
			return DecisionLike
		}
		return DecisionPass
	}
	if dy > r.verticalThreshold() {
		return DecisionSuperlike
	}
	return DecisionNone
}

func (r *Recognizer) horizontalThreshold() float64 {
	return r.cfg.ThresholdFraction * r.cfg.CardWidth / 2
}

func (r *Recognizer) verticalThreshold() float64 {
	return r.cfg.ThresholdFraction * r.cfg.CardHeight / 2
}

func (r *Recognizer) transformFor(dx, dy float64) Transform {
	return Transform{
		TranslateX: dx,
		TranslateY: dy,
		Rotation:   r.rotationFor(dx),
		Opacity:    r.opacityFor(dx, dy),
	}
}

// rotationFor is proportional to dx normalized by card width, clamped to the
// configured maximum. Rendering feedback only.
func (r *Recognizer) rotationFor(dx float64) float64 {
	if r.cfg.CardWidth == 0 {
		return 0
	}
	ratio := dx / r.cfg.CardWidth
	if ratio > 1 {
		ratio = 1
	} else if ratio < -1 {
		ratio = -1
	}
	return ratio * r.cfg.MaxRotation
}

// opacityFor fades the card toward minOpacity as the dominant displacement
// approaches its threshold.
func (r *Recognizer) opacityFor(dx, dy float64) float64 {
	var progress float64
	if math.Abs(dx) > math.Abs(dy) {
		if t := r.horizontalThreshold(); t > 0 {
			progress = math.Abs(dx) / t
		}
	} else if dy > 0 {
		if t := r.verticalThreshold(); t > 0 {
			progress = dy / t
		}
	}
	if progress > 1 {
		progress = 1
	}
	return 1 - (1-minOpacity)*progress
}

// snapTransform is the off-screen target for a decided release.
func (r *Recognizer) snapTransform(decision Decision, dx float64) Transform {
	t := Transform{Opacity: minOpacity}
	switch decision {
	case DecisionLike:
		t.TranslateX = edgeSnapFactor * r.cfg.CardWidth
	case DecisionPass:
		t.TranslateX = -edgeSnapFactor * r.cfg.CardWidth
	case DecisionSuperlike:
		t.TranslateY = edgeSnapFactor * r.cfg.CardHeight
	}
	t.Rotation = r.rotationFor(dx)
	return t
}

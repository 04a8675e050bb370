package game

import "github.com/janakan-45/banana-brain-blitz/internal/api"

// PowerUpKind identifies a consumable.
type PowerUpKind string

const (
	PowerUpHint        PowerUpKind = "hint"
	PowerUpFreeze      PowerUpKind = "freeze"
	PowerUpSuperBanana PowerUpKind = "superBanana"
)

// Economy mirrors the backend's player state for the current round set.
// Mutations are optimistic; the authoritative record is re-fetched after
// each verification response. Score belongs to this session only.
type Economy struct {
	Score             int
	Coins             int
	PowerUps          api.PowerUps
	Achievements      []string
	Level             int
	XP                int
	XPNeeded          int
	Difficulty        Difficulty
	Combo             int
	Streak            int
	DoublePointsArmed bool
}

// FromPlayer hydrates the economy mirror from the backend record. Score
// and streak are session-local and start at zero.
func FromPlayer(p *api.PlayerRecord) Economy {
	return Economy{
		Coins:        p.Coins,
		PowerUps:     p.PowerUps,
		Achievements: p.Achievements,
		Level:        p.Level,
		XP:           p.XP,
		XPNeeded:     p.XPNeeded,
		Difficulty:   ParseDifficulty(p.Difficulty),
		Combo:        p.Combo,
	}
}

// Reconcile adopts the authoritative balances from a player re-fetch
// without touching session-local score and streak.
func (e *Economy) Reconcile(p *api.PlayerRecord) {
	e.Coins = p.Coins
	e.PowerUps = p.PowerUps
	e.Achievements = p.Achievements
	e.Level = p.Level
	e.XP = p.XP
	e.XPNeeded = p.XPNeeded
	e.Combo = p.Combo
}

// CoinsForCombo is the coin reward for a correct answer at the given
// server-reported combo.
func CoinsForCombo(combo int) int {
	return 5 + combo/2
}

// ApplyVerdict folds a verification result into the local mirror and
// returns the points actually awarded (after the one-shot double-points
// multiplier). Incorrect verdicts reset streak and combo.
func (e *Economy) ApplyVerdict(v *api.Verdict) int {
	if !v.Correct {
		e.Streak = 0
		e.Combo = 0
		return 0
	}

	points := v.Points
	if e.DoublePointsArmed {
		points *= 2
		e.DoublePointsArmed = false
	}

	e.Score += points
	e.Streak++
	e.Combo = v.Combo
	e.Coins += CoinsForCombo(v.Combo)
	e.XP = v.XP
	if v.Level > 0 {
		e.Level = v.Level
	}
	if v.XPNeeded > 0 {
		e.XPNeeded = v.XPNeeded
	}
	return points
}

// ResetStreak zeroes streak and combo. Used for skips and timeouts.
func (e *Economy) ResetStreak() {
	e.Streak = 0
	e.Combo = 0
}

// PowerUpCount returns the current count of a power-up kind.
func (e *Economy) PowerUpCount(kind PowerUpKind) int {
	switch kind {
	case PowerUpHint:
		return e.PowerUps.Hint
	case PowerUpFreeze:
		return e.PowerUps.Freeze
	case PowerUpSuperBanana:
		return e.PowerUps.SuperBanana
	}
	return 0
}

// UsePowerUp decrements a power-up count. Returns false (no mutation) when
// none are held.
func (e *Economy) UsePowerUp(kind PowerUpKind) bool {
	switch kind {
	case PowerUpHint:
		if e.PowerUps.Hint <= 0 {
			return false
		}
		e.PowerUps.Hint--
	case PowerUpFreeze:
		if e.PowerUps.Freeze <= 0 {
			return false
		}
		e.PowerUps.Freeze--
	case PowerUpSuperBanana:
		if e.PowerUps.SuperBanana <= 0 {
			return false
		}
		e.PowerUps.SuperBanana--
	default:
		return false
	}
	return true
}

// Buy deducts coins and increments the chosen power-up. Rejected with no
// mutation when unaffordable.
func (e *Economy) Buy(kind PowerUpKind, cost int) bool {
	if e.Coins < cost {
		return false
	}
	switch kind {
	case PowerUpHint:
		e.PowerUps.Hint++
	case PowerUpFreeze:
		e.PowerUps.Freeze++
	case PowerUpSuperBanana:
		e.PowerUps.SuperBanana++
	default:
		return false
	}
	e.Coins -= cost
	return true
}

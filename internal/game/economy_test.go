package game

import (
	"testing"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
)

func TestCoinsForCombo(t *testing.T) {
	tests := []struct {
		combo int
		want  int
	}{
		{0, 5},
		{1, 5},
		{2, 6},
		{3, 6},
		{4, 7},
		{10, 10},
	}
	for _, tt := range tests {
		if got := CoinsForCombo(tt.combo); got != tt.want {
			t.Errorf("CoinsForCombo(%d) = %d, want %d", tt.combo, got, tt.want)
		}
	}
}

func TestApplyVerdictCorrect(t *testing.T) {
	e := Economy{Coins: 10, Streak: 2}
	got := e.ApplyVerdict(&api.Verdict{Correct: true, Points: 100, Combo: 3, XP: 250, Level: 2, XPNeeded: 400})

	if got != 100 {
		t.Errorf("awarded points = %d, want 100", got)
	}
	if e.Score != 100 {
		t.Errorf("Score = %d, want 100", e.Score)
	}
	if e.Streak != 3 {
		t.Errorf("Streak = %d, want 3", e.Streak)
	}
	if e.Combo != 3 {
		t.Errorf("Combo = %d, want 3", e.Combo)
	}
	if e.Coins != 16 { // 10 + 5 + 3/2
		t.Errorf("Coins = %d, want 16", e.Coins)
	}
	if e.Level != 2 || e.XP != 250 || e.XPNeeded != 400 {
		t.Errorf("progression = level %d xp %d/%d, want 2 250/400", e.Level, e.XP, e.XPNeeded)
	}
}

func TestApplyVerdictIncorrectResetsStreak(t *testing.T) {
	e := Economy{Score: 300, Streak: 4, Combo: 4, Coins: 20}
	got := e.ApplyVerdict(&api.Verdict{Correct: false})

	if got != 0 {
		t.Errorf("awarded points = %d, want 0", got)
	}
	if e.Streak != 0 || e.Combo != 0 {
		t.Errorf("streak/combo = %d/%d after incorrect, want 0/0", e.Streak, e.Combo)
	}
	if e.Score != 300 {
		t.Errorf("Score = %d, want unchanged 300", e.Score)
	}
	if e.Coins != 20 {
		t.Errorf("Coins = %d, want unchanged 20", e.Coins)
	}
}

func TestDoublePointsConsumedOnce(t *testing.T) {
	e := Economy{DoublePointsArmed: true}

	got := e.ApplyVerdict(&api.Verdict{Correct: true, Points: 100, Combo: 1})
	if got != 200 {
		t.Fatalf("armed verdict awarded %d points, want 200", got)
	}
	if e.DoublePointsArmed {
		t.Fatal("double points still armed after use")
	}

	got = e.ApplyVerdict(&api.Verdict{Correct: true, Points: 100, Combo: 2})
	if got != 100 {
		t.Errorf("second verdict awarded %d points, want 100", got)
	}
}

func TestDoublePointsSurvivesIncorrect(t *testing.T) {
	e := Economy{DoublePointsArmed: true}
	e.ApplyVerdict(&api.Verdict{Correct: false})
	if !e.DoublePointsArmed {
		t.Error("double points disarmed by an incorrect answer")
	}
}

func TestUsePowerUpGuard(t *testing.T) {
	e := Economy{PowerUps: api.PowerUps{Hint: 1}}

	if !e.UsePowerUp(PowerUpHint) {
		t.Fatal("use with one held rejected")
	}
	if e.PowerUps.Hint != 0 {
		t.Fatalf("Hint count = %d, want 0", e.PowerUps.Hint)
	}
	if e.UsePowerUp(PowerUpHint) {
		t.Error("use with zero held accepted")
	}
	if e.PowerUps.Hint != 0 {
		t.Errorf("Hint count = %d after rejected use, want 0", e.PowerUps.Hint)
	}
}

func TestBuyAffordabilityGuard(t *testing.T) {
	e := Economy{Coins: 12}

	if e.Buy(PowerUpFreeze, 15) {
		t.Fatal("unaffordable buy accepted")
	}
	if e.Coins != 12 || e.PowerUps.Freeze != 0 {
		t.Fatalf("rejected buy mutated state: coins %d, freeze %d", e.Coins, e.PowerUps.Freeze)
	}

	if !e.Buy(PowerUpHint, 10) {
		t.Fatal("affordable buy rejected")
	}
	if e.Coins != 2 || e.PowerUps.Hint != 1 {
		t.Errorf("after buy: coins %d freeze %d, want 2 and 1 hint", e.Coins, e.PowerUps.Hint)
	}
}

func TestReconcilePreservesSessionFields(t *testing.T) {
	e := Economy{Score: 500, Streak: 3, Coins: 9}
	e.Reconcile(&api.PlayerRecord{Coins: 42, Level: 3, XP: 100, XPNeeded: 300, Combo: 2})

	if e.Coins != 42 {
		t.Errorf("Coins = %d, want authoritative 42", e.Coins)
	}
	if e.Score != 500 {
		t.Errorf("Score = %d, want session-local 500", e.Score)
	}
	if e.Streak != 3 {
		t.Errorf("Streak = %d, want session-local 3", e.Streak)
	}
}

func TestFromPlayerStartsSessionAtZero(t *testing.T) {
	e := FromPlayer(&api.PlayerRecord{Coins: 30, Level: 2, Difficulty: "hard", Combo: 5})
	if e.Score != 0 || e.Streak != 0 {
		t.Errorf("fresh session score/streak = %d/%d, want 0/0", e.Score, e.Streak)
	}
	if e.Difficulty != DifficultyHard {
		t.Errorf("Difficulty = %s, want hard", e.Difficulty)
	}
	if e.Combo != 5 {
		t.Errorf("Combo = %d, want 5", e.Combo)
	}
}

package booking

import "fmt"

// Phase はホールド手順の進行状態を表す
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseHolding    Phase = "holding"
	PhaseHeld       Phase = "held"
	PhaseConfirming Phase = "confirming"
	PhaseConfirmed  Phase = "confirmed"
	PhaseCancelling Phase = "cancelling"
)

// transitions は許可される遷移の一覧。
// 進行中の状態から同じ操作を重ねることはできない。
// 待機中でもキャンセルは許可する。座席ステップから戻る際、
// サーバー側に残っているかもしれないホールドを解放するため。
var transitions = map[Phase][]Phase{
	PhaseIdle:       {PhaseHolding, PhaseCancelling},
	PhaseHolding:    {PhaseHeld, PhaseIdle},
	PhaseHeld:       {PhaseConfirming, PhaseCancelling},
	PhaseConfirming: {PhaseConfirmed, PhaseHeld},
	PhaseCancelling: {PhaseIdle, PhaseHeld},
	PhaseConfirmed:  {},
}

// CanTransition は遷移が許可されているかを返す
func (p Phase) CanTransition(next Phase) bool {
	for _, t := range transitions[p] {
		if t == next {
			return true
		}
	}
	return false
}

// Transition は遷移先を検証して返す
func (p Phase) Transition(next Phase) (Phase, error) {
	if !p.CanTransition(next) {
		return p, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, p, next)
	}
	return next, nil
}

// Terminal はこれ以上遷移できない状態かを返す
func (p Phase) Terminal() bool {
	return len(transitions[p]) == 0
}

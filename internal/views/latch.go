// Package views засчитывает просмотры объявлений: не больше одного
// вызова на экземпляр страницы и не больше одного просмотра на зрителя.
package views

import "sync/atomic"

type LatchState int32

const (
	LatchPending LatchState = iota
	LatchRecorded
)

func (s LatchState) String() string {
	if s == LatchRecorded {
		return "recorded"
	}
	return "pending"
}

// Latch - одноразовый переключатель Pending -> Recorded
type Latch struct {
	state atomic.Int32
}

// TryFire переводит защёлку в Recorded. true получает только первый вызов.
func (l *Latch) TryFire() bool {
	return l.state.CompareAndSwap(int32(LatchPending), int32(LatchRecorded))
}

func (l *Latch) State() LatchState {
	return LatchState(l.state.Load())
}

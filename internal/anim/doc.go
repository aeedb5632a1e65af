// Package anim drives a dot sprite through its transition table.
//
// The [Animator] is a two-state machine:
//
//   - Running: every Tick applies table[cursor] and advances cursor mod N
//   - Stopped: Tick is a no-op; there is no way back to Running
//
// Running moves to Stopped on the first Tick where a freeze has been requested
// and the cursor is 0. A freeze request never interrupts a loop halfway.
//
// The animator has no clock of its own. Hosts drive it from a periodic
// source: bubbletea's tea.Tick in the terminal UI, or a [Ticker].
//
// # Example
//
//	a := anim.New(sprite.Initial, sprite.Table, true)
//	t := anim.NewTicker(sprite.Period)
//	defer t.Stop()
//	for range t.C() {
//		if !a.Tick() && !a.Running() {
//			break
//		}
//		draw(braille.Render(a.Snapshot(), sprite.Width, sprite.Height))
//	}
//
// # Thread Safety
//
// Animator is NOT thread-safe. Tick, RequestFreeze and Snapshot must be called
// from the goroutine that owns the clock.
package anim

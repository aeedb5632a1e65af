// Package viz is the interactive terminal front end, built on Bubble Tea.
//
//   - [App]: the program, a sprite banner plus the agent/model settings panel
//   - [Banner]: one animated sprite driven by its own tick chain
//   - [Settings]: keyboard-driven selector that reports changes on close
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	F     - Freeze at the end of the current loop
//	Tab/S - Open settings (Esc closes and applies)
//	T     - Cycle color themes
//	Q     - Quit
//
// # Ticks
//
// Each banner tags its ticks with its ID and a sequence number. A tick that
// arrives after the banner was closed, stopped or rescheduled is dropped, so
// at most one tick per banner is ever acted on.
package viz

// Package terminal owns the tcell screen for the lifetime of a session.
//
// Features:
//   - Screen bootstrap with mouse motion reporting and a hidden cursor
//   - Input pump goroutine forwarding key, mouse and resize events on a channel
//   - Color capability detection from the environment
//   - Best-effort terminal restoration after a crash
//
// The game loop never calls PollEvent itself; it drains the channel once per
// frame so all game state stays on a single goroutine.
package terminal

// Package ui provides the terminal dashboard for watching live controller
// telemetry.
//
// The dashboard is a Bubble Tea program that refreshes the cloud snapshot on
// a fixed interval and renders each controller's sensors and ports from the
// in-memory store. Refreshes run off the update loop and are single-flight:
// interval ticks that arrive while a refresh is still running are dropped,
// keeping the refresh service's non-reentrancy contract.
//
// A failed refresh keeps the previous snapshot on screen and surfaces the
// error in the status bar; the next tick tries again.
package ui

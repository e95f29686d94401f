// Package service coordinates the AC Infinity transport client and the
// snapshot store.
//
// Refresh drives the full fetch sequence (list all controllers, then per
// controller the advanced settings and per port the properties and mode
// settings), storing everything as one pass. The pass is retried as a whole
// (3 attempts, 1 second apart by default); authentication failures short-
// circuit the retry so bad credentials surface immediately.
//
// The mutation methods write through the transport's merge path and
// deliberately never touch the store: the remote API is the source of truth,
// and a caller that wants to observe its own write triggers another Refresh.
package service

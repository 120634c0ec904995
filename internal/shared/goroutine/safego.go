// Package goroutine provides utilities for safely launching goroutines with panic recovery.
package goroutine

import (
	"fmt"
	"runtime/debug"

	"catalog/internal/shared/logger"
)

// SafeGo launches fn on a new goroutine with panic recovery. A panic is
// caught and logged with its stack trace instead of crashing the process,
// which matters for the per-system fan-out where one misbehaving storage
// adapter must not take down the server.
func SafeGo(log logger.Interface, name string, fn func()) {
	go func() {
		defer Recover(log, name)
		fn()
	}()
}

// Recover is the deferred half of SafeGo, exposed for goroutines that are
// started directly.
func Recover(log logger.Interface, name string) {
	if r := recover(); r != nil {
		log.Errorw("goroutine panicked",
			"goroutine", name,
			"panic", fmt.Sprintf("%v", r),
			"stack", string(debug.Stack()),
		)
	}
}

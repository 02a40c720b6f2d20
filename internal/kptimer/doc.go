// Package kptimer implements the control pause (KP) breath-hold timer.
//
// A session runs 1..N timed attempts: idle -> preparing -> measuring, then
// paused between attempts, and completed once the last attempt is stopped
// or the user finishes early during a pause. Machine holds the transition
// rules with time passed in explicitly; Engine drives a Machine from a Clock
// on a single goroutine and owns the only ticker.
package kptimer

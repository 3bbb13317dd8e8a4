// Package testutil provides shared testing utilities.
package testutil

import (
	"testing"

	"go.uber.org/goleak"
)

// VerifyNoLeaks should be deferred at the start of tests that spawn
// goroutines. It fails the test if goroutines leaked.
func VerifyNoLeaks(t *testing.T, opts ...goleak.Option) {
	t.Helper()
	goleak.VerifyNone(t, opts...)
}

// IgnoreSpeakerGoroutines returns goleak options for the audio output
// goroutines the speaker keeps alive for the life of the process.
func IgnoreSpeakerGoroutines() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreAnyFunction("github.com/gopxl/beep/v2/speaker.Init"),
		goleak.IgnoreAnyFunction("github.com/ebitengine/oto/v3.(*context).loop"),
	}
}

// IgnoreFyneGoroutines returns goleak options for known Fyne framework
// goroutines. Use when testing components that touch Fyne.
func IgnoreFyneGoroutines() []goleak.Option {
	return []goleak.Option{
		goleak.IgnoreTopFunction("fyne.io/fyne/v2/internal/driver/glfw.(*gLDriver).runGL.func1"),
		goleak.IgnoreTopFunction("fyne.io/fyne/v2/internal/driver/glfw.(*window).RunEventQueue"),
		goleak.IgnoreTopFunction("fyne.io/fyne/v2/internal/animation.(*Runner).runAnimations"),
		goleak.IgnoreAnyFunction("fyne.io/fyne/v2"),
	}
}

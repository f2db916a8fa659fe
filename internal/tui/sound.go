package tui

import (
	"fmt"
	"io"

	"github.com/avelkov/focusboard/internal/timer"
)

// Bell is the terminal SoundPlayer: it rings the bell when a session or
// break completes. The bell has no amplitude, so the volume setting gates
// on/off: zero mutes.
type Bell struct {
	Out io.Writer
}

// PlayEndSound implements timer.SoundPlayer. The bell cannot play custom
// sound files, so a configured soundFile still rings the plain bell.
func (b Bell) PlayEndSound(soundFile string, volume int) {
	if volume <= 0 || b.Out == nil {
		return
	}
	fmt.Fprint(b.Out, "\a")
}

var _ timer.SoundPlayer = Bell{}

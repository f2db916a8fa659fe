package config

import "time"

// Fallback timer durations, used when neither a board override nor a global
// setting provides a usable value.
const (
	DefaultPomodoro          = 25 * time.Minute
	DefaultShortBreak        = 5 * time.Minute
	DefaultLongBreak         = 15 * time.Minute
	DefaultLongBreakInterval = 4
	DefaultAutoRounds        = 0
)

// MinLoggable is the shortest session worth recording. Anything shorter is
// discarded silently on stop.
const MinLoggable = time.Minute

// AutoStartDelay separates the "break over" notice from the next automatic
// round so the notice is readable before the timer header changes.
const AutoStartDelay = 2 * time.Second

// Settings keys recognized by the duration resolver and the sinks. The same
// keys are valid in board frontmatter (per-board override) and in the global
// settings table.
const (
	KeyPomodoro          = "timer-pomodoro"
	KeyShortBreak        = "timer-short-break"
	KeyLongBreak         = "timer-long-break"
	KeyLongBreakInterval = "timer-long-break-interval"
	KeyAutoRounds        = "timer-auto-rounds"
	KeyInterrupts        = "timer-interrupts"
	KeyEnableSounds      = "timer-enable-sounds"
	KeySoundVolume       = "timer-sound-volume"
	KeySoundFile         = "timer-sound-file"
)

// Database/application settings.
const (
	AppName    = "focusboard"
	DBFileName = "focusboard.db"
)

// DefaultInterrupts seeds the interruption-reason prompt when the
// timer-interrupts setting is unset.
var DefaultInterrupts = []string{"Meeting", "Phone call", "Colleague", "Distracted", "Other"}

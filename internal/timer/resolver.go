package timer

import (
	"strconv"
	"strings"
	"time"

	"github.com/avelkov/focusboard/internal/config"
)

// Durations is the effective timing profile for one card, after layering
// board overrides over global settings over the built-in defaults.
type Durations struct {
	Pomodoro          time.Duration
	ShortBreak        time.Duration
	LongBreak         time.Duration
	LongBreakInterval int
	AutoRounds        int
}

// Resolver computes effective durations. Resolution is a pure read; the
// Manager caches the result on every start and on settings changes.
type Resolver struct {
	settings SettingsSource
}

// NewResolver returns a resolver over the given settings source.
func NewResolver(settings SettingsSource) *Resolver {
	return &Resolver{settings: settings}
}

// Resolve returns the timing profile for cardID. An empty cardID skips the
// board layer and resolves from global settings and defaults only. Invalid
// or non-numeric values at any layer fall through to the next; Resolve
// never fails.
func (r *Resolver) Resolve(cardID string) Durations {
	return Durations{
		Pomodoro:          r.minutes(cardID, config.KeyPomodoro, config.DefaultPomodoro),
		ShortBreak:        r.minutes(cardID, config.KeyShortBreak, config.DefaultShortBreak),
		LongBreak:         r.minutes(cardID, config.KeyLongBreak, config.DefaultLongBreak),
		LongBreakInterval: r.count(cardID, config.KeyLongBreakInterval, 1, config.DefaultLongBreakInterval),
		AutoRounds:        r.count(cardID, config.KeyAutoRounds, 0, config.DefaultAutoRounds),
	}
}

func (r *Resolver) minutes(cardID, key string, fallback time.Duration) time.Duration {
	if cardID != "" {
		if v, ok := r.settings.BoardSetting(cardID, key); ok {
			if d, ok := parseMinutes(v); ok {
				return d
			}
		}
	}
	if v, ok := r.settings.GlobalSetting(key); ok {
		if d, ok := parseMinutes(v); ok {
			return d
		}
	}
	return fallback
}

func (r *Resolver) count(cardID, key string, min, fallback int) int {
	if cardID != "" {
		if v, ok := r.settings.BoardSetting(cardID, key); ok {
			if n, ok := parseCount(v, min); ok {
				return n
			}
		}
	}
	if v, ok := r.settings.GlobalSetting(key); ok {
		if n, ok := parseCount(v, min); ok {
			return n
		}
	}
	return fallback
}

// parseMinutes accepts fractional minutes but rejects non-positive values.
func parseMinutes(v string) (time.Duration, bool) {
	n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return time.Duration(n * float64(time.Minute)), true
}

func parseCount(v string, min int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < min {
		return 0, false
	}
	return n, true
}

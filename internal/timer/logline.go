package timer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/avelkov/focusboard/internal/models"
)

// Markers prefixing a session log line. Parsing accepts all three; "++" is a
// legacy form written by older versions.
const (
	markerPomodoro  = "🍅"
	markerStopwatch = "⏱"
	markerLegacy    = "++"
)

// logLineRe matches one embedded session log line after any leading list
// bullet. Example: "🍅 2025-07-10 10:00 – 10:25 (25 m)". The separating dash
// may be an en dash, em dash or plain hyphen, and anything after the "m" of
// the duration (closing paren, a "-- reason" note) is ignored.
var logLineRe = regexp.MustCompile(`^(?:[-*+]\s+)?(\+\+|🍅|⏱)\s+(\d{4}-\d{2}-\d{2})\s+(\d{2}:\d{2})\s+[–—-]\s+(\d{2}:\d{2})\s+\((\d+)\s+m`)

// FormatLogLine renders a committed session as the log line appended to the
// owning card body. The minute count is derived from the printed HH:mm pair
// rather than the exact duration, so a formatted line always reparses as a
// consistent session. A non-empty reason is appended as a trailing note that
// the parser tolerates.
func FormatLogLine(s models.FocusSession, reason string) string {
	marker := markerStopwatch
	if s.Mode == models.ModePomodoro {
		marker = markerPomodoro
	}
	mins := int(s.End.Truncate(time.Minute).Sub(s.Start.Truncate(time.Minute)) / time.Minute)
	line := fmt.Sprintf("%s %s %s – %s (%d m)",
		marker,
		s.Start.Format("2006-01-02"),
		s.Start.Format("15:04"),
		s.End.Format("15:04"),
		mins)
	if reason != "" {
		line += " -- " + reason
	}
	return line
}

// ParseLogLine recovers a session from one card-body line. The second return
// is false for lines that do not match the grammar or fail validation:
// unparseable timestamps, end not after start, or a recorded minute count
// inconsistent with the time span.
func ParseLogLine(line, cardID, cardTitle string) (models.FocusSession, bool) {
	m := logLineRe.FindStringSubmatch(strings.TrimSpace(line))
	if m == nil {
		return models.FocusSession{}, false
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", m[2]+" "+m[3], time.Local)
	if err != nil {
		return models.FocusSession{}, false
	}
	end, err := time.ParseInLocation("2006-01-02 15:04", m[2]+" "+m[4], time.Local)
	if err != nil {
		return models.FocusSession{}, false
	}
	if !end.After(start) {
		return models.FocusSession{}, false
	}
	duration := end.Sub(start)
	var mins int
	fmt.Sscanf(m[5], "%d", &mins)
	if mins != int(duration/time.Minute) {
		return models.FocusSession{}, false
	}
	mode := models.ModeStopwatch
	if m[1] == markerPomodoro {
		mode = models.ModePomodoro
	}
	return models.FocusSession{
		CardID:    cardID,
		CardTitle: cardTitle,
		Mode:      mode,
		Start:     start,
		End:       end,
		Duration:  duration,
	}, true
}

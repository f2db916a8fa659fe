package timer

import (
	"strings"
	"testing"
	"time"

	"github.com/avelkov/focusboard/internal/config"
	"github.com/avelkov/focusboard/internal/models"
)

func workSettings() memSettings {
	return memSettings{global: map[string]string{
		config.KeyPomodoro:   "25",
		config.KeyShortBreak: "5",
		config.KeyLongBreak:  "15",
	}}
}

func cardBody(cards *memCards, id string) string {
	c, ok := cards.FindCard(id)
	if !ok {
		return ""
	}
	return c.Body
}

func TestStartWithoutCardIsRejected(t *testing.T) {
	m, _, _, notifier, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "")

	if m.State().Phase != PhaseIdle {
		t.Fatalf("phase = %v, want idle", m.State().Phase)
	}
	if !notifier.contains("No card selected") {
		t.Fatalf("expected a no-card notice, got %v", notifier.messages)
	}
}

func TestStartWhileRunningIsIgnored(t *testing.T) {
	m, _, clock, _, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(time.Minute)
	m.Start(models.ModeStopwatch, "c1")

	if !m.IsRunning(models.ModePomodoro, "c1") {
		t.Fatalf("second start replaced the running session")
	}
	if m.Elapsed() != time.Minute {
		t.Fatalf("Elapsed = %v, want 1m", m.Elapsed())
	}
}

func TestPomodoroCompletionLogsAndStartsBreak(t *testing.T) {
	m, cards, clock, notifier, sound := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()

	if !m.IsRunning(models.ModeBreak, "c1") {
		t.Fatalf("expected an earned break to be running, state %+v", m.State())
	}
	if m.PomodoroCount() != 1 {
		t.Fatalf("PomodoroCount = %d, want 1", m.PomodoroCount())
	}
	if !strings.Contains(cardBody(cards, "c1"), "🍅 2026-03-14 10:00 – 10:25 (25 m)") {
		t.Fatalf("card body missing the log line:\n%s", cardBody(cards, "c1"))
	}
	sessions := m.Store().All()
	if len(sessions) != 1 || sessions[0].Mode != models.ModePomodoro {
		t.Fatalf("store = %+v, want one pomodoro session", sessions)
	}
	if len(sound.volumes) != 1 {
		t.Fatalf("end sound played %d times, want 1", len(sound.volumes))
	}
	if !notifier.contains("Pomodoro done") {
		t.Fatalf("missing completion notice: %v", notifier.messages)
	}
}

func TestStopUnderMinuteIsDiscarded(t *testing.T) {
	m, cards, clock, notifier, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))
	before := cardBody(cards, "c1")

	m.Start(models.ModeStopwatch, "c1")
	clock.Advance(30 * time.Second)
	m.Stop(true)

	if m.State().Phase != PhaseIdle {
		t.Fatalf("phase = %v, want idle", m.State().Phase)
	}
	if got := len(m.Store().All()); got != 0 {
		t.Fatalf("store has %d sessions, want 0", got)
	}
	if cardBody(cards, "c1") != before {
		t.Fatalf("card body changed for a discarded session")
	}
	if !notifier.contains("under a minute") {
		t.Fatalf("missing discard notice: %v", notifier.messages)
	}
}

func TestStopAwaitsReasonThenCommits(t *testing.T) {
	m, cards, clock, _, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	m.Start(models.ModeStopwatch, "c1")
	clock.Advance(10 * time.Minute)
	m.Stop(true)

	if !m.AwaitingReason() {
		t.Fatalf("expected the awaiting-reason phase, state %+v", m.State())
	}
	if m.Elapsed() != 10*time.Minute {
		t.Fatalf("Elapsed = %v while frozen, want 10m", m.Elapsed())
	}
	// Ticks while the prompt is open must not advance or re-trigger anything.
	clock.Advance(time.Hour)
	m.Tick()
	if m.Elapsed() != 10*time.Minute {
		t.Fatalf("Elapsed moved while awaiting reason: %v", m.Elapsed())
	}

	m.ConfirmStop("Meeting")

	if m.State().Phase != PhaseIdle {
		t.Fatalf("phase = %v after confirm, want idle", m.State().Phase)
	}
	body := cardBody(cards, "c1")
	if !strings.Contains(body, "⏱ 2026-03-14 10:00 – 10:10 (10 m) -- Meeting") {
		t.Fatalf("card body missing the reasoned log line:\n%s", body)
	}
}

func TestCancelStopResumes(t *testing.T) {
	m, _, clock, _, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	m.Start(models.ModeStopwatch, "c1")
	clock.Advance(10 * time.Minute)
	m.Stop(true)
	clock.Advance(2 * time.Minute)
	m.CancelStop()

	if !m.IsRunning(models.ModeStopwatch, "c1") {
		t.Fatalf("expected the session to resume, state %+v", m.State())
	}
	clock.Advance(5 * time.Minute)
	// The two paused minutes do not count.
	if m.Elapsed() != 15*time.Minute {
		t.Fatalf("Elapsed = %v after resume, want 15m", m.Elapsed())
	}
	if got := len(m.Store().All()); got != 0 {
		t.Fatalf("store has %d sessions after a cancelled stop, want 0", got)
	}
}

func TestToggleSameCardStops(t *testing.T) {
	m, _, clock, _, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	m.Start(models.ModeStopwatch, "c1")
	clock.Advance(2 * time.Minute)
	m.Toggle(models.ModeStopwatch, "c1")

	if !m.AwaitingReason() {
		t.Fatalf("toggling the running card should stop with a prompt, state %+v", m.State())
	}
}

func TestToggleSwitchHandsClockToNewCard(t *testing.T) {
	board := models.Board{
		Title: "Work",
		Lists: []models.List{{Title: "Doing", Cards: []models.Card{
			{ID: "c1", Title: "First", Body: "First"},
			{ID: "c2", Title: "Second", Body: "Second"},
		}}},
	}
	m, cards, clock, _, _ := testManager(workSettings(), board)

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(90 * time.Second)
	m.Toggle(models.ModePomodoro, "c2")

	if !m.IsRunning(models.ModePomodoro, "c2") {
		t.Fatalf("expected the clock on c2, state %+v", m.State())
	}
	// The countdown keeps running; only the logging segment is rebased.
	if m.Elapsed() != 90*time.Second {
		t.Fatalf("Elapsed = %v after switch, want 90s", m.Elapsed())
	}
	if !strings.Contains(cardBody(cards, "c1"), "🍅 2026-03-14 10:00 – 10:01 (1 m)") {
		t.Fatalf("first card missing its segment:\n%s", cardBody(cards, "c1"))
	}

	// Finish the countdown on the new card.
	clock.Advance(25*time.Minute - 90*time.Second)
	m.Tick()
	if !m.IsRunning(models.ModeBreak, "c2") {
		t.Fatalf("expected the earned break after the handover, state %+v", m.State())
	}
	if !strings.Contains(cardBody(cards, "c2"), "🍅 2026-03-14 10:01 – 10:25") {
		t.Fatalf("second card missing its segment:\n%s", cardBody(cards, "c2"))
	}
}

func TestToggleSwitchUnderMinuteDiscardsSegment(t *testing.T) {
	board := models.Board{
		Title: "Work",
		Lists: []models.List{{Title: "Doing", Cards: []models.Card{
			{ID: "c1", Title: "First", Body: "First"},
			{ID: "c2", Title: "Second", Body: "Second"},
		}}},
	}
	m, cards, clock, _, _ := testManager(workSettings(), board)

	m.Start(models.ModeStopwatch, "c1")
	clock.Advance(30 * time.Second)
	m.Toggle(models.ModeStopwatch, "c2")

	if !m.IsRunning(models.ModeStopwatch, "c2") {
		t.Fatalf("expected the clock on c2, state %+v", m.State())
	}
	// A segment too short to ever reparse must not be written at all.
	if body := cardBody(cards, "c1"); body != "First" {
		t.Fatalf("sub-minute segment leaked into the card body:\n%s", body)
	}
	if got := len(m.Store().All()); got != 0 {
		t.Fatalf("store has %d sessions for a sub-minute segment, want 0", got)
	}
	if m.Elapsed() != 30*time.Second {
		t.Fatalf("Elapsed = %v after switch, want 30s", m.Elapsed())
	}
}

func TestToggleSwitchDuringBreakDoesNotLog(t *testing.T) {
	board := models.Board{
		Title: "Work",
		Lists: []models.List{{Title: "Doing", Cards: []models.Card{
			{ID: "c1", Title: "First", Body: "First"},
			{ID: "c2", Title: "Second", Body: "Second"},
		}}},
	}
	m, cards, clock, _, _ := testManager(workSettings(), board)

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()
	clock.Advance(2 * time.Minute)
	m.Toggle(models.ModePomodoro, "c2")

	// The break rebinds without restarting, and its elapsed time is never
	// logged as focused work.
	if !m.IsRunning(models.ModeBreak, "c2") {
		t.Fatalf("expected the break to follow the card, state %+v", m.State())
	}
	if strings.Contains(cardBody(cards, "c1"), "⏱") {
		t.Fatalf("break segment written as a stopwatch line:\n%s", cardBody(cards, "c1"))
	}
	if got := len(m.Store().All()); got != 1 {
		t.Fatalf("store has %d sessions, want only the pomodoro", got)
	}
	if got := m.Store().TotalFocused("c1"); got != 25*time.Minute {
		t.Fatalf("TotalFocused = %v, want 25m unaffected by the break", got)
	}
}

func TestLongBreakEveryNthPomodoro(t *testing.T) {
	settings := workSettings()
	settings.global[config.KeyLongBreakInterval] = "4"
	m, _, clock, notifier, _ := testManager(settings, singleCardBoard("c1", "Write tests"))
	m.pomodoroCount = 3

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()

	if !m.IsRunning(models.ModeBreak, "c1") {
		t.Fatalf("expected a break, state %+v", m.State())
	}
	if m.breakDuration != 15*time.Minute {
		t.Fatalf("breakDuration = %v, want the long break", m.breakDuration)
	}
	if !notifier.contains("long break") {
		t.Fatalf("missing the long-break notice: %v", notifier.messages)
	}
}

func TestBreakEndsIdleWithoutAutoRounds(t *testing.T) {
	m, cards, clock, notifier, sound := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()
	clock.Advance(5 * time.Minute)
	m.Tick()

	if m.State().Phase != PhaseIdle {
		t.Fatalf("phase = %v after the break, want idle", m.State().Phase)
	}
	if !notifier.contains("Break over") {
		t.Fatalf("missing the break-over notice: %v", notifier.messages)
	}
	// The break itself is never logged.
	if got := len(m.Store().All()); got != 1 {
		t.Fatalf("store has %d sessions, want only the pomodoro", got)
	}
	if strings.Contains(cardBody(cards, "c1"), "10:25 – 10:30") {
		t.Fatalf("break leaked into the card body:\n%s", cardBody(cards, "c1"))
	}
	if len(sound.volumes) != 2 {
		t.Fatalf("end sound played %d times, want pomodoro and break cues", len(sound.volumes))
	}
}

func TestSkipBreakResumesPriorWork(t *testing.T) {
	m, _, clock, notifier, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()
	m.SkipBreak()

	if !m.IsRunning(models.ModePomodoro, "c1") {
		t.Fatalf("expected the prior work to resume, state %+v", m.State())
	}
	if !notifier.contains("Break skipped") {
		t.Fatalf("missing the skip notice: %v", notifier.messages)
	}
	if got := len(m.Store().All()); got != 1 {
		t.Fatalf("store has %d sessions, want only the pomodoro", got)
	}
}

func TestAutoRoundsRunThenTerminate(t *testing.T) {
	settings := workSettings()
	settings.global[config.KeyAutoRounds] = "2"
	m, _, clock, notifier, _ := testManager(settings, singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "c1")

	// Round 1 completes into a break.
	clock.Advance(25 * time.Minute)
	m.Tick()
	if m.CurrentAutoRound() != 1 {
		t.Fatalf("CurrentAutoRound = %d after round 1, want 1", m.CurrentAutoRound())
	}

	// Break ends; the next round starts only after the delay.
	clock.Advance(5 * time.Minute)
	m.Tick()
	if m.State().Phase != PhaseIdle {
		t.Fatalf("phase = %v right after the break, want a delayed idle", m.State().Phase)
	}
	m.Tick()
	if m.State().Phase != PhaseIdle {
		t.Fatalf("round 2 started before the delay elapsed")
	}
	clock.Advance(config.AutoStartDelay)
	m.Tick()
	if !m.IsRunning(models.ModePomodoro, "c1") {
		t.Fatalf("round 2 did not auto-start, state %+v", m.State())
	}

	// Round 2 completes; after its break the sequence is done.
	clock.Advance(25 * time.Minute)
	m.Tick()
	clock.Advance(5 * time.Minute)
	m.Tick()

	if m.State().Phase != PhaseIdle {
		t.Fatalf("phase = %v after the sequence, want idle", m.State().Phase)
	}
	if m.CurrentAutoRound() != 0 {
		t.Fatalf("CurrentAutoRound = %d after the sequence, want 0", m.CurrentAutoRound())
	}
	if !notifier.contains("Completed 2 automatic") {
		t.Fatalf("missing the sequence-complete notice: %v", notifier.messages)
	}
	if got := len(m.Store().All()); got != 2 {
		t.Fatalf("store has %d sessions, want the 2 pomodoros", got)
	}
}

func TestSkipBreakContinuesAutoRounds(t *testing.T) {
	settings := workSettings()
	settings.global[config.KeyAutoRounds] = "3"
	m, _, clock, _, _ := testManager(settings, singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()
	m.SkipBreak()

	// Skipping the break jumps straight into the next round, no delay.
	if !m.IsRunning(models.ModePomodoro, "c1") {
		t.Fatalf("round 2 did not start on skip, state %+v", m.State())
	}
	if m.CurrentAutoRound() != 1 {
		t.Fatalf("CurrentAutoRound = %d, want 1", m.CurrentAutoRound())
	}
}

func TestLongBreakNoticeMatchesCadence(t *testing.T) {
	// Equal short and long durations must not mislabel an ordinary break.
	settings := workSettings()
	settings.global[config.KeyShortBreak] = "5"
	settings.global[config.KeyLongBreak] = "5"
	settings.global[config.KeyLongBreakInterval] = "4"

	m, _, clock, notifier, _ := testManager(settings, singleCardBoard("c1", "Write tests"))
	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()
	if notifier.contains("long break") {
		t.Fatalf("first break labeled long: %v", notifier.messages)
	}

	m2, _, clock2, notifier2, _ := testManager(settings, singleCardBoard("c1", "Write tests"))
	m2.pomodoroCount = 3
	m2.Start(models.ModePomodoro, "c1")
	clock2.Advance(25 * time.Minute)
	m2.Tick()
	if !notifier2.contains("long break") {
		t.Fatalf("fourth break not labeled long: %v", notifier2.messages)
	}
}

func TestManualStartResetsAutoRoundCounter(t *testing.T) {
	settings := workSettings()
	settings.global[config.KeyAutoRounds] = "4"
	m, _, _, _, _ := testManager(settings, singleCardBoard("c1", "Write tests"))
	m.currentAutoRound = 2

	m.Start(models.ModePomodoro, "c1")

	if m.CurrentAutoRound() != 0 {
		t.Fatalf("CurrentAutoRound = %d after a manual start, want 0", m.CurrentAutoRound())
	}
}

func TestRejectedStartKeepsAutoRoundProgress(t *testing.T) {
	settings := workSettings()
	settings.global[config.KeyAutoRounds] = "3"
	m, _, _, notifier, _ := testManager(settings, singleCardBoard("c1", "Write tests"))
	m.currentAutoRound = 1

	// A start with no card is rejected and must not wipe sequence progress.
	m.Start(models.ModePomodoro, "")

	if m.State().Phase != PhaseIdle {
		t.Fatalf("phase = %v, want idle", m.State().Phase)
	}
	if !notifier.contains("No card selected") {
		t.Fatalf("expected a no-card notice, got %v", notifier.messages)
	}
	if m.CurrentAutoRound() != 1 {
		t.Fatalf("CurrentAutoRound = %d after a rejected start, want 1", m.CurrentAutoRound())
	}
}

func TestStopAgainstVanishedCardKeepsSession(t *testing.T) {
	m, cards, clock, notifier, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	m.Start(models.ModeStopwatch, "c1")
	clock.Advance(10 * time.Minute)
	cards.removeCard("c1")
	m.Stop(false)

	if got := len(m.Store().All()); got != 1 {
		t.Fatalf("store has %d sessions, want the in-memory entry", got)
	}
	if !notifier.contains("Card not found") {
		t.Fatalf("missing the vanished-card notice: %v", notifier.messages)
	}
}

func TestEndSoundHonorsSettings(t *testing.T) {
	settings := workSettings()
	settings.global[config.KeyEnableSounds] = "false"
	m, _, clock, _, sound := testManager(settings, singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()

	if len(sound.volumes) != 0 {
		t.Fatalf("sound played despite being disabled")
	}
}

func TestEndSoundVolumeClamped(t *testing.T) {
	settings := workSettings()
	settings.global[config.KeySoundVolume] = "150"
	m, _, clock, _, sound := testManager(settings, singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()

	if len(sound.volumes) != 1 || sound.volumes[0] != 100 {
		t.Fatalf("volumes = %v, want a single clamped 100", sound.volumes)
	}
}

func TestEndSoundForwardsConfiguredFile(t *testing.T) {
	settings := workSettings()
	settings.global[config.KeySoundFile] = "/sounds/chime.wav"
	m, _, clock, _, sound := testManager(settings, singleCardBoard("c1", "Write tests"))

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()

	if len(sound.files) != 1 || sound.files[0] != "/sounds/chime.wav" {
		t.Fatalf("files = %v, want the configured sound file", sound.files)
	}
}

func TestInterruptReasons(t *testing.T) {
	m, _, _, _, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))
	got := m.InterruptReasons()
	if len(got) != len(config.DefaultInterrupts) {
		t.Fatalf("reasons = %v, want the defaults", got)
	}

	settings := workSettings()
	settings.global[config.KeyInterrupts] = "Standup, Code review,, Lunch "
	m2, _, _, _, _ := testManager(settings, singleCardBoard("c1", "Write tests"))
	got = m2.InterruptReasons()
	want := []string{"Standup", "Code review", "Lunch"}
	if len(got) != len(want) {
		t.Fatalf("reasons = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("reasons = %v, want %v", got, want)
		}
	}
}

func TestEventsFireOnLifecycle(t *testing.T) {
	m, _, clock, _, _ := testManager(workSettings(), singleCardBoard("c1", "Write tests"))

	var starts, stops, logs, ticks int
	m.Subscribe(EventStart, func() { starts++ })
	m.Subscribe(EventStop, func() { stops++ })
	m.Subscribe(EventLog, func() { logs++ })
	id := m.Subscribe(EventTick, func() { ticks++ })

	m.Start(models.ModePomodoro, "c1")
	clock.Advance(25 * time.Minute)
	m.Tick()

	if starts != 2 { // work session plus the earned break
		t.Fatalf("starts = %d, want 2", starts)
	}
	if stops != 1 || logs != 1 || ticks != 1 {
		t.Fatalf("stops=%d logs=%d ticks=%d", stops, logs, ticks)
	}

	m.Unsubscribe(id)
	m.Tick()
	if ticks != 1 {
		t.Fatalf("tick handler fired after unsubscribe")
	}
}

package timer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avelkov/focusboard/internal/config"
	"github.com/avelkov/focusboard/internal/models"
	"github.com/avelkov/focusboard/internal/util"
)

// Phase is the scheduler's top-level state. "Awaiting reason" is modeled as
// its own phase so a tick arriving while the interruption prompt is open can
// never re-trigger threshold logic.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseAwaitingReason
)

// State is the single process-wide timer state. All mutation goes through
// Manager methods, which the owner must call from one event loop; mutual
// exclusion is structural, not locked.
type State struct {
	Phase        Phase
	Mode         models.TimerMode
	Start        time.Time     // when the current running interval began; zero when not running
	Elapsed      time.Duration // accumulated from prior running intervals of this session
	TargetCardID string
	SessionStart time.Time // wall-clock anchor for the loggable session duration
}

// pendingStop freezes a stop that is waiting on the interruption-reason
// prompt. Cancelling the prompt resumes from exactly this point.
type pendingStop struct {
	session models.FocusSession
}

// Manager is the single-session scheduler: at most one session is in
// progress process-wide, across however many boards and cards exist.
type Manager struct {
	cards     CardStore
	settings  SettingsSource
	resolver  *Resolver
	store     *Store
	finalizer *Finalizer
	notifier  Notifier
	sound     SoundPlayer
	clock     Clock
	events    emitter

	state State

	durations     Durations     // cached by start() and RefreshDurations
	breakDuration time.Duration // chosen when the current break began

	pomodoroCount    int
	currentAutoRound int
	lastWorkMode     models.TimerMode
	lastWorkCardID   string

	pending *pendingStop

	// Delayed auto-start of the next round, checked on tick while idle.
	autoStartAt   time.Time
	autoStartMode models.TimerMode
	autoStartCard string
	autoStartNote string
}

// NewManager wires the engine together. notifier and sound may be nil.
func NewManager(cards CardStore, settings SettingsSource, clock Clock, notifier Notifier, sound SoundPlayer) *Manager {
	m := &Manager{
		cards:    cards,
		settings: settings,
		resolver: NewResolver(settings),
		notifier: notifier,
		sound:    sound,
		clock:    clock,
	}
	m.store = NewStore(cards)
	m.finalizer = NewFinalizer(cards, m.store, &m.events)
	return m
}

// Store exposes the session log store for queries.
func (m *Manager) Store() *Store { return m.store }

// State returns a copy of the current timer state.
func (m *Manager) State() State { return m.state }

// PomodoroCount returns the cumulative count of completed pomodoros.
func (m *Manager) PomodoroCount() int { return m.pomodoroCount }

// CurrentAutoRound returns progress within the auto-round sequence.
func (m *Manager) CurrentAutoRound() int { return m.currentAutoRound }

// Durations returns the profile cached at the last start.
func (m *Manager) Durations() Durations { return m.durations }

// Subscribe registers a handler for an event and returns a subscription id.
func (m *Manager) Subscribe(ev Event, fn func()) int { return m.events.subscribe(ev, fn) }

// Unsubscribe detaches a handler.
func (m *Manager) Unsubscribe(id int) { m.events.unsubscribe(id) }

// IsRunning reports whether a session is in progress, optionally narrowed to
// a mode and card. Empty arguments match anything.
func (m *Manager) IsRunning(mode models.TimerMode, cardID string) bool {
	if m.state.Phase != PhaseRunning {
		return false
	}
	if mode != "" && m.state.Mode != mode {
		return false
	}
	if cardID != "" && m.state.TargetCardID != cardID {
		return false
	}
	return true
}

// Elapsed returns the session clock: accumulated time plus the current
// running interval.
func (m *Manager) Elapsed() time.Duration {
	if m.state.Phase == PhaseRunning {
		return m.state.Elapsed + m.clock.Now().Sub(m.state.Start)
	}
	return m.state.Elapsed
}

// Remaining returns time left on the countdown for pomodoro and break modes.
// Stopwatch counts up and has no remaining.
func (m *Manager) Remaining() time.Duration {
	var target time.Duration
	switch m.state.Mode {
	case models.ModePomodoro:
		target = m.durations.Pomodoro
	case models.ModeBreak:
		target = m.breakDuration
	default:
		return 0
	}
	rem := target - m.Elapsed()
	if rem < 0 {
		return 0
	}
	return rem
}

// Start begins a session from a user action. It is a no-op when no card is
// targeted (reported to the user) or when a session is already in progress:
// the caller must stop or toggle first. A manual start of a work mode resets
// the auto-round counter; engine-internal starts (auto rounds, earned
// breaks, skip-break resume) go through start directly and preserve it.
func (m *Manager) Start(mode models.TimerMode, cardID string) {
	// Only a start that will actually run may reset the counter; a rejected
	// start during the auto-start delay window must not wipe progress.
	if m.state.Phase == PhaseIdle && mode != models.ModeBreak && cardID != "" {
		m.currentAutoRound = 0
	}
	m.start(mode, cardID)
}

func (m *Manager) start(mode models.TimerMode, cardID string) {
	if cardID == "" {
		m.notify("No card selected to time.")
		return
	}
	if m.state.Phase != PhaseIdle {
		return
	}
	m.durations = m.resolver.Resolve(cardID)
	if mode == models.ModeBreak {
		m.breakDuration = m.nextBreakDuration()
	} else {
		// Break is never remembered as last work.
		m.lastWorkMode = mode
		m.lastWorkCardID = cardID
	}
	now := m.clock.Now()
	m.state = State{
		Phase:        PhaseRunning,
		Mode:         mode,
		Start:        now,
		Elapsed:      0,
		TargetCardID: cardID,
		SessionStart: now,
	}
	m.autoStartAt = time.Time{}
	m.events.emit(EventStart)
	m.events.emit(EventChange)
}

// Toggle starts, stops, or transfers the timer. Clicking the running card
// (or giving no card) stops; clicking another card while running hands the
// clock over: the elapsed segment is logged against the previous card with
// no prompt, and timing continues on the new card without restarting the
// countdown.
func (m *Manager) Toggle(mode models.TimerMode, cardID string) {
	switch m.state.Phase {
	case PhaseIdle:
		m.Start(mode, cardID)
	case PhaseRunning:
		if cardID == "" || cardID == m.state.TargetCardID {
			m.Stop(true)
			return
		}
		m.switchCard(cardID)
	case PhaseAwaitingReason:
		// The stop prompt owns the state until resolved.
	}
}

// switchCard rebinds the running timer to a new card, preserving mode, the
// running clock and the countdown thresholds. A work segment of loggable
// length is finalized against the previous card without a prompt. Break time
// and sub-minute segments are discarded: breaks are never logged, and a
// sub-minute segment would render as a "(0 m)" line the parser rejects.
func (m *Manager) switchCard(cardID string) {
	now := m.clock.Now()
	if m.state.Mode != models.ModeBreak && now.Sub(m.state.SessionStart) >= config.MinLoggable {
		sess := m.sessionEndingAt(now)
		if err := m.finalizer.Finalize(sess, ""); err != nil {
			m.reportFinalize(err)
		}
	}
	m.state.TargetCardID = cardID
	m.state.SessionStart = now
	if m.state.Mode != models.ModeBreak {
		m.lastWorkMode = m.state.Mode
		m.lastWorkCardID = cardID
	}
	m.events.emit(EventChange)
}

// Stop ends the running session. Sessions under one minute are discarded
// silently. Otherwise the clock is paused and, when askReason is set, the
// engine enters PhaseAwaitingReason until ConfirmStop or CancelStop
// resolves the interruption prompt.
func (m *Manager) Stop(askReason bool) {
	if m.state.Phase != PhaseRunning {
		return
	}
	now := m.clock.Now()
	runningDuration := now.Sub(m.state.SessionStart)

	if runningDuration < config.MinLoggable {
		m.discard()
		m.notify("Session under a minute — not recorded.")
		return
	}

	// Breaks are never logged; a manual stop during a break just ends it.
	if m.state.Mode == models.ModeBreak {
		m.discard()
		m.notify("Break ended.")
		return
	}

	// Freeze the clock before anything else so no time is double-counted.
	m.state.Elapsed += now.Sub(m.state.Start)
	m.state.Start = time.Time{}

	sess := m.sessionBetween(m.state.SessionStart, now)
	if !askReason {
		m.commitStop(sess, "")
		return
	}
	m.state.Phase = PhaseAwaitingReason
	m.pending = &pendingStop{session: sess}
	m.events.emit(EventChange)
}

// AwaitingReason reports whether a stop is suspended on the prompt.
func (m *Manager) AwaitingReason() bool { return m.state.Phase == PhaseAwaitingReason }

// InterruptReasons returns the configured interruption reasons for the
// prompt, falling back to the built-in list.
func (m *Manager) InterruptReasons() []string {
	raw, ok := m.lookupSetting(config.KeyInterrupts)
	if !ok || strings.TrimSpace(raw) == "" {
		return config.DefaultInterrupts
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return config.DefaultInterrupts
	}
	return out
}

// ConfirmStop resolves the interruption prompt and commits the session with
// the chosen reason.
func (m *Manager) ConfirmStop(reason string) {
	if m.state.Phase != PhaseAwaitingReason || m.pending == nil {
		return
	}
	sess := m.pending.session
	m.pending = nil
	m.commitStop(sess, reason)
}

// CancelStop dismisses the prompt and resumes the paused session exactly
// where it left off. Closing the prompt is not a stop.
func (m *Manager) CancelStop() {
	if m.state.Phase != PhaseAwaitingReason {
		return
	}
	m.pending = nil
	m.state.Phase = PhaseRunning
	m.state.Start = m.clock.Now()
	m.events.emit(EventChange)
}

// SkipBreak cuts a running break short without logging it and resumes the
// prior work, honoring auto-round bookkeeping.
func (m *Manager) SkipBreak() {
	if m.state.Phase != PhaseRunning || m.state.Mode != models.ModeBreak {
		return
	}
	m.discard()
	m.notify("Break skipped.")
	m.continueAfterBreak(true)
}

// Reset drops the running session without logging and carries the given
// mode and card forward as the next targets.
func (m *Manager) Reset(mode models.TimerMode, cardID string, resetAutoRound bool) {
	m.pending = nil
	m.state = State{Phase: PhaseIdle, Mode: mode, TargetCardID: cardID}
	if resetAutoRound {
		m.currentAutoRound = 0
	}
	m.events.emit(EventChange)
}

// Tick advances the scheduler by one observation of the clock. It fires
// once per second while the tick pump exists, independent of running state,
// and always emits EventTick for UI refresh.
func (m *Manager) Tick() {
	defer m.events.emit(EventTick)

	switch m.state.Phase {
	case PhaseRunning:
		switch m.state.Mode {
		case models.ModePomodoro:
			if m.Elapsed() >= m.durations.Pomodoro {
				m.completePomodoro()
			}
		case models.ModeBreak:
			if m.Elapsed() >= m.breakDuration {
				m.completeBreak()
			}
		}
	case PhaseIdle:
		if !m.autoStartAt.IsZero() && !m.clock.Now().Before(m.autoStartAt) {
			mode, card, note := m.autoStartMode, m.autoStartCard, m.autoStartNote
			m.autoStartAt = time.Time{}
			if note != "" {
				m.notify(note)
			}
			m.start(mode, card)
		}
	case PhaseAwaitingReason:
		// Clock is frozen; the prompt owns the state.
	}
}

// completePomodoro finalizes a pomodoro that ran its full duration, without
// prompting, and rolls straight into the earned break.
func (m *Manager) completePomodoro() {
	now := m.clock.Now()
	cardID := m.state.TargetCardID
	sess := m.sessionEndingAt(now)
	if err := m.finalizer.Finalize(sess, ""); err != nil {
		m.reportFinalize(err)
	}
	m.pomodoroCount++
	m.currentAutoRound++
	m.playEndSound()
	m.events.emit(EventStop)

	m.state = State{Phase: PhaseIdle, Mode: models.ModePomodoro, TargetCardID: cardID}
	m.start(models.ModeBreak, cardID)
	if m.longBreakDue() {
		m.notify(fmt.Sprintf("Pomodoro done — long break (%s).", util.FormatDuration(m.breakDuration)))
	} else {
		m.notify(fmt.Sprintf("Pomodoro done — break (%s).", util.FormatDuration(m.breakDuration)))
	}
}

// completeBreak ends a break that ran its full duration and applies the
// auto-round continuation.
func (m *Manager) completeBreak() {
	m.playEndSound()
	m.discard()
	m.notify("Break over.")
	m.continueAfterBreak(false)
}

// continueAfterBreak decides what follows a break. viaSkip resumes
// immediately; a naturally ended break schedules the next round after a
// short delay so the "break over" notice stays readable.
func (m *Manager) continueAfterBreak(viaSkip bool) {
	if m.durations.AutoRounds > 0 {
		if m.currentAutoRound >= m.durations.AutoRounds {
			done := m.currentAutoRound
			m.currentAutoRound = 0
			m.notify(fmt.Sprintf("Completed %d automatic pomodoro rounds.", done))
			return
		}
		note := fmt.Sprintf("Auto-starting round %d/%d.", m.currentAutoRound+1, m.durations.AutoRounds)
		if viaSkip {
			m.notify(note)
			m.start(models.ModePomodoro, m.lastWorkCardID)
			return
		}
		m.autoStartAt = m.clock.Now().Add(config.AutoStartDelay)
		m.autoStartMode = models.ModePomodoro
		m.autoStartCard = m.lastWorkCardID
		m.autoStartNote = note
		return
	}
	// No auto-rounds: a skipped break resumes the prior work, a finished
	// one leaves the timer idle.
	if viaSkip && m.lastWorkMode != "" && m.lastWorkCardID != "" {
		m.start(m.lastWorkMode, m.lastWorkCardID)
	}
}

// RefreshDurations re-resolves the cached profile for the active card. The
// vault watcher calls this when board settings change mid-session.
func (m *Manager) RefreshDurations() {
	if m.state.TargetCardID == "" {
		return
	}
	m.durations = m.resolver.Resolve(m.state.TargetCardID)
	m.events.emit(EventChange)
}

// commitStop finalizes a frozen session and returns to idle on the same
// mode and card.
func (m *Manager) commitStop(sess models.FocusSession, reason string) {
	if err := m.finalizer.Finalize(sess, reason); err != nil {
		m.reportFinalize(err)
	}
	mode, card := m.state.Mode, m.state.TargetCardID
	m.state = State{Phase: PhaseIdle, Mode: mode, TargetCardID: card}
	if m.durations.AutoRounds == 0 {
		m.currentAutoRound = 0
	}
	m.events.emit(EventStop)
	m.events.emit(EventChange)
}

// discard stops the clock without creating a log entry, preserving the
// auto-round counter unless auto-rounds are disabled.
func (m *Manager) discard() {
	mode, card := m.state.Mode, m.state.TargetCardID
	m.state = State{Phase: PhaseIdle, Mode: mode, TargetCardID: card}
	if m.durations.AutoRounds == 0 {
		m.currentAutoRound = 0
	}
	m.events.emit(EventChange)
}

// sessionEndingAt builds the FocusSession for the segment running since
// SessionStart.
func (m *Manager) sessionEndingAt(end time.Time) models.FocusSession {
	return m.sessionBetween(m.state.SessionStart, end)
}

func (m *Manager) sessionBetween(start, end time.Time) models.FocusSession {
	title := ""
	if card, ok := m.cards.FindCard(m.state.TargetCardID); ok {
		title = card.Title
	}
	return models.FocusSession{
		CardID:    m.state.TargetCardID,
		CardTitle: title,
		Mode:      m.state.Mode,
		Start:     start,
		End:       end,
		Duration:  end.Sub(start),
	}
}

func (m *Manager) reportFinalize(err error) {
	util.LogError("finalize", err)
	m.notify("Card not found — session kept in memory only.")
}

// longBreakDue reports whether the cadence has earned a long break.
func (m *Manager) longBreakDue() bool {
	return m.durations.LongBreakInterval > 0 && m.pomodoroCount > 0 &&
		m.pomodoroCount%m.durations.LongBreakInterval == 0
}

func (m *Manager) nextBreakDuration() time.Duration {
	if m.longBreakDue() {
		return m.durations.LongBreak
	}
	return m.durations.ShortBreak
}

func (m *Manager) notify(msg string) {
	if m.notifier != nil {
		m.notifier.Notify(msg)
	}
}

func (m *Manager) playEndSound() {
	if m.sound == nil {
		return
	}
	if v, ok := m.lookupSetting(config.KeyEnableSounds); ok {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "false", "0", "no", "off":
			return
		}
	}
	volume := 100
	if v, ok := m.lookupSetting(config.KeySoundVolume); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			volume = util.Clamp(n, 0, 100)
		}
	}
	soundFile, _ := m.lookupSetting(config.KeySoundFile)
	m.sound.PlayEndSound(soundFile, volume)
}

// lookupSetting reads a key through the board-then-global chain for the
// active card.
func (m *Manager) lookupSetting(key string) (string, bool) {
	if m.state.TargetCardID != "" {
		if v, ok := m.settings.BoardSetting(m.state.TargetCardID, key); ok {
			return v, true
		}
	}
	return m.settings.GlobalSetting(key)
}

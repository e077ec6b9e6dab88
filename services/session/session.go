package session

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/samber/mo"

	"selfbot/core"
	"selfbot/models"
	"selfbot/utils"
)

// ErrClosed is returned when scheduling work on a state that has been shut down
var ErrClosed = errors.New("session state is closed")

// Reminder is a fire-once message captured at schedule time
type Reminder struct {
	ID        string
	ChannelID string
	Text      string
	FireAt    time.Time
}

// State is the process-wide automation and game state.
// Every field is guarded by mu; no method holds the lock while calling out.
type State struct {
	mu sync.Mutex

	afkEnabled       bool
	autoReplyText    mo.Option[string]
	copycatChannelID mo.Option[string]
	notes            string
	numberGuess      mo.Option[models.NumberGuess]
	presence         models.Presence
	reminders        map[string]*time.Timer
	closed           bool

	now func() time.Time
}

// NewState creates an empty state with the account shown online
func NewState() *State {
	return &State{
		presence:  models.Presence{Status: models.PresenceOnline},
		reminders: make(map[string]*time.Timer),
		now:       time.Now,
	}
}

func (s *State) SetAFK(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.afkEnabled = enabled
}

func (s *State) AFKEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.afkEnabled
}

// SetAutoReply enables auto-reply with text, or disables it with None
func (s *State) SetAutoReply(text mo.Option[string]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoReplyText = text
}

func (s *State) AutoReplyText() mo.Option[string] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.autoReplyText
}

// SetCopycatChannel selects the echoed channel, or disables copycat with None
func (s *State) SetCopycatChannel(channelID mo.Option[string]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.copycatChannelID = channelID
}

func (s *State) CopycatChannel() mo.Option[string] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copycatChannelID
}

// AutomationRules returns the three automation settings read under a single lock
func (s *State) AutomationRules() (afk bool, autoReply mo.Option[string], copycat mo.Option[string]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.afkEnabled, s.autoReplyText, s.copycatChannelID
}

// AppendNote adds a line to the notes buffer
func (s *State) AppendNote(note string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notes == "" {
		s.notes = note
		return
	}
	s.notes += "\n" + note
}

func (s *State) Notes() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notes
}

// StartGuess begins a new game, silently discarding any unfinished one
func (s *State) StartGuess(target int) {
	utils.AssertInvariant(target >= 1 && target <= 100, "guess target must be within 1-100")

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.numberGuess.IsPresent() {
		log.Printf("🎲 Discarding unfinished guessing game")
	}
	s.numberGuess = mo.Some(models.NumberGuess{Target: target, CreatedAt: s.now()})
}

// EvaluateGuess compares n with the hidden target and ends the game on a match.
// The read, comparison and reset happen under one lock acquisition.
func (s *State) EvaluateGuess(n int) models.GuessResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.numberGuess.Get()
	if !ok {
		return models.GuessNoGame
	}

	switch {
	case n == game.Target:
		s.numberGuess = mo.None[models.NumberGuess]()
		return models.GuessCorrect
	case n < game.Target:
		return models.GuessHigher
	default:
		return models.GuessLower
	}
}

func (s *State) ActiveGuess() mo.Option[models.NumberGuess] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.numberGuess
}

func (s *State) Presence() models.Presence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyPresence(s.presence)
}

// UpdatePresence applies mutate to the tracked presence and returns the result
func (s *State) UpdatePresence(mutate func(p *models.Presence)) models.Presence {
	s.mu.Lock()
	defer s.mu.Unlock()
	mutate(&s.presence)
	return copyPresence(s.presence)
}

func copyPresence(p models.Presence) models.Presence {
	if p.Activity == nil {
		return p
	}
	activity := *p.Activity
	p.Activity = &activity
	return p
}

// ScheduleReminder arranges for deliver to be called once after delay.
// The reminder keeps its own copy of channel and text.
func (s *State) ScheduleReminder(channelID, text string, delay time.Duration, deliver func(Reminder)) (Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Reminder{}, ErrClosed
	}

	reminder := Reminder{
		ID:        core.NewID("rem"),
		ChannelID: channelID,
		Text:      text,
		FireAt:    s.now().Add(delay),
	}

	s.reminders[reminder.ID] = time.AfterFunc(delay, func() {
		s.mu.Lock()
		_, pending := s.reminders[reminder.ID]
		delete(s.reminders, reminder.ID)
		s.mu.Unlock()

		if pending {
			deliver(reminder)
		}
	})

	log.Printf("⏰ Scheduled reminder %s for channel %s in %v", reminder.ID, channelID, delay)
	return reminder, nil
}

func (s *State) PendingReminders() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

// Snapshot copies the automation state for reporting
func (s *State) Snapshot() models.SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionSnapshot{
		AFKEnabled:       s.afkEnabled,
		AutoReplyEnabled: s.autoReplyText.IsPresent(),
		AutoReplyText:    s.autoReplyText.OrEmpty(),
		CopycatChannelID: s.copycatChannelID.OrEmpty(),
		GuessActive:      s.numberGuess.IsPresent(),
		PendingReminders: len(s.reminders),
		NotesLength:      len(s.notes),
	}
}

// Close abandons pending reminders. Further scheduling fails with ErrClosed.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.reminders {
		timer.Stop()
		delete(s.reminders, id)
	}
	s.closed = true
}

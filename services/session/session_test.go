package session

import (
	"sync"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"selfbot/models"
)

func TestState_AutomationToggles(t *testing.T) {
	state := NewState()

	afk, autoReply, copycat := state.AutomationRules()
	assert.False(t, afk)
	assert.False(t, autoReply.IsPresent())
	assert.False(t, copycat.IsPresent())

	state.SetAFK(true)
	state.SetAutoReply(mo.Some("brb"))
	state.SetCopycatChannel(mo.Some("chan-1"))

	afk, autoReply, copycat = state.AutomationRules()
	assert.True(t, afk)
	assert.Equal(t, "brb", autoReply.MustGet())
	assert.Equal(t, "chan-1", copycat.MustGet())

	state.SetAFK(false)
	state.SetAutoReply(mo.None[string]())
	state.SetCopycatChannel(mo.None[string]())

	assert.False(t, state.AFKEnabled())
	assert.False(t, state.AutoReplyText().IsPresent())
	assert.False(t, state.CopycatChannel().IsPresent())
}

func TestState_Notes(t *testing.T) {
	state := NewState()
	assert.Equal(t, "", state.Notes())

	state.AppendNote("first")
	state.AppendNote("second")

	assert.Equal(t, "first\nsecond", state.Notes())
}

func TestState_GuessGame(t *testing.T) {
	t.Run("no game", func(t *testing.T) {
		state := NewState()
		assert.Equal(t, models.GuessNoGame, state.EvaluateGuess(50))
	})

	t.Run("higher lower correct", func(t *testing.T) {
		state := NewState()
		state.StartGuess(42)

		assert.Equal(t, models.GuessHigher, state.EvaluateGuess(10))
		assert.Equal(t, models.GuessLower, state.EvaluateGuess(200))
		assert.True(t, state.ActiveGuess().IsPresent())

		assert.Equal(t, models.GuessCorrect, state.EvaluateGuess(42))
		assert.False(t, state.ActiveGuess().IsPresent())
		assert.Equal(t, models.GuessNoGame, state.EvaluateGuess(42))
	})

	t.Run("restart overwrites target", func(t *testing.T) {
		state := NewState()
		state.StartGuess(10)
		state.StartGuess(90)

		assert.Equal(t, 90, state.ActiveGuess().MustGet().Target)
		assert.Equal(t, models.GuessHigher, state.EvaluateGuess(10))
	})

	t.Run("out of range target panics", func(t *testing.T) {
		state := NewState()
		assert.Panics(t, func() { state.StartGuess(0) })
		assert.Panics(t, func() { state.StartGuess(101) })
	})

	t.Run("concurrent correct guesses win once", func(t *testing.T) {
		state := NewState()
		state.StartGuess(7)

		var wg sync.WaitGroup
		results := make(chan models.GuessResult, 20)
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results <- state.EvaluateGuess(7)
			}()
		}
		wg.Wait()
		close(results)

		correct := 0
		for r := range results {
			if r == models.GuessCorrect {
				correct++
			} else {
				assert.Equal(t, models.GuessNoGame, r)
			}
		}
		assert.Equal(t, 1, correct)
	})
}

func TestState_Presence(t *testing.T) {
	state := NewState()
	assert.Equal(t, models.PresenceOnline, state.Presence().Status)

	updated := state.UpdatePresence(func(p *models.Presence) {
		p.Activity = &models.Activity{Kind: models.ActivityPlaying, Name: "chess"}
	})
	assert.Equal(t, "chess", updated.Activity.Name)

	// Callers get copies, not the stored activity
	updated.Activity.Name = "mutated"
	assert.Equal(t, "chess", state.Presence().Activity.Name)

	updated = state.UpdatePresence(func(p *models.Presence) { p.Status = models.PresenceDND })
	assert.Equal(t, models.PresenceDND, updated.Status)
	assert.Equal(t, "chess", updated.Activity.Name)
}

func TestState_ScheduleReminder(t *testing.T) {
	state := NewState()
	delivered := make(chan Reminder, 1)

	reminder, err := state.ScheduleReminder("chan-1", "stretch", 10*time.Millisecond, func(r Reminder) {
		delivered <- r
	})
	require.NoError(t, err)
	assert.Equal(t, "chan-1", reminder.ChannelID)
	assert.Equal(t, "stretch", reminder.Text)

	select {
	case r := <-delivered:
		assert.Equal(t, reminder.ID, r.ID)
		assert.Equal(t, "stretch", r.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("reminder did not fire")
	}

	assert.Eventually(t, func() bool { return state.PendingReminders() == 0 }, time.Second, 5*time.Millisecond)
}

func TestState_CloseAbandonsReminders(t *testing.T) {
	state := NewState()
	fired := make(chan struct{}, 1)

	_, err := state.ScheduleReminder("chan-1", "later", time.Hour, func(Reminder) { fired <- struct{}{} })
	require.NoError(t, err)
	assert.Equal(t, 1, state.PendingReminders())

	state.Close()
	assert.Equal(t, 0, state.PendingReminders())

	_, err = state.ScheduleReminder("chan-1", "too late", time.Millisecond, func(Reminder) {})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestState_Snapshot(t *testing.T) {
	state := NewState()
	state.SetAFK(true)
	state.SetAutoReply(mo.Some("away"))
	state.StartGuess(5)
	state.AppendNote("abc")

	snapshot := state.Snapshot()

	assert.Equal(t, models.SessionSnapshot{
		AFKEnabled:       true,
		AutoReplyEnabled: true,
		AutoReplyText:    "away",
		GuessActive:      true,
		NotesLength:      3,
	}, snapshot)
}

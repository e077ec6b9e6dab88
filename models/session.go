package models

import "time"

// NumberGuess is the hidden state of an active number guessing game
type NumberGuess struct {
	Target    int
	CreatedAt time.Time
}

// GuessResult is the outcome of evaluating a single guess
type GuessResult string

const (
	GuessNoGame  GuessResult = "no_game"
	GuessCorrect GuessResult = "correct"
	GuessHigher  GuessResult = "higher"
	GuessLower   GuessResult = "lower"
)

// PresenceStatus mirrors the chat platform's online states
type PresenceStatus string

const (
	PresenceOnline    PresenceStatus = "online"
	PresenceIdle      PresenceStatus = "idle"
	PresenceDND       PresenceStatus = "dnd"
	PresenceInvisible PresenceStatus = "invisible"
)

// ActivityKind is the verb shown in front of an activity name
type ActivityKind string

const (
	ActivityPlaying   ActivityKind = "playing"
	ActivityStreaming ActivityKind = "streaming"
	ActivityListening ActivityKind = "listening"
	ActivityWatching  ActivityKind = "watching"
	ActivityCompeting ActivityKind = "competing"
)

// Activity is the rich presence line of the account
type Activity struct {
	Kind ActivityKind
	Name string
	URL  string
}

// Presence is the full presence the account advertises
type Presence struct {
	Status   PresenceStatus
	Activity *Activity
}

// SessionSnapshot is a read-only copy of the automation state
type SessionSnapshot struct {
	AFKEnabled       bool   `json:"afk_enabled"`
	AutoReplyText    string `json:"auto_reply_text,omitempty"`
	AutoReplyEnabled bool   `json:"auto_reply_enabled"`
	CopycatChannelID string `json:"copycat_channel_id,omitempty"`
	GuessActive      bool   `json:"guess_active"`
	PendingReminders int    `json:"pending_reminders"`
	NotesLength      int    `json:"notes_length"`
}

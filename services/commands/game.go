package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/mo"

	"selfbot/clients"
	"selfbot/clients/enrichment"
	"selfbot/models"
)

var rpsBeats = map[string]string{
	"rock":     "scissors",
	"paper":    "rock",
	"scissors": "paper",
}

var rpsChoices = []string{"rock", "paper", "scissors"}

var scrambleWords = []string{"apple", "banana", "computer", "discord"}

var flagQuizEntries = []struct {
	Flag    string
	Country string
}{
	{"🇺🇸", "USA"},
	{"🇯🇵", "Japan"},
	{"🇫🇷", "France"},
}

func (s *CommandsService) gameCommands() []Command {
	return []Command{
		{Name: "rps", Category: CategoryGame, Usage: "rps [rock/paper/scissors]", Handler: s.rps},
		{Name: "hangman", Category: CategoryGame, Usage: "hangman", Handler: s.static("Hangman: Guess the word! (Implement full logic with states if needed)")},
		{Name: "tictactoe", Category: CategoryGame, Usage: "tictactoe", Handler: s.static("Tic-Tac-Toe board: Use commands to play (basic display only)")},
		{Name: "sudoku", Category: CategoryGame, Usage: "sudoku", Handler: s.static("Sudoku puzzle: [1 2 3 ...] Solve it manually!")},
		{Name: "trivia", Category: CategoryGame, Usage: "trivia", Handler: s.jsonProvider(enrichment.ProviderTrivia, "Failed to fetch trivia.", formatTrivia)},
		{Name: "guessnumber", Category: CategoryGame, Usage: "guessnumber", Handler: s.guessNumber},
		{Name: "guess", Category: CategoryGame, Usage: "guess [number]", Handler: s.guess},
		{Name: "wordscramble", Category: CategoryGame, Usage: "wordscramble", Handler: s.wordScramble},
		{Name: "mathquiz", Category: CategoryGame, Usage: "mathquiz", Handler: s.mathQuiz},
		{Name: "flagquiz", Category: CategoryGame, Usage: "flagquiz", Handler: s.flagQuiz},
	}
}

func (s *CommandsService) rps(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	choice := strings.ToLower(inv.Arg(0).OrEmpty())
	if _, valid := rpsBeats[choice]; !valid {
		return s.usageReply("rps [rock/paper/scissors]"), nil
	}

	botChoice := s.randomChoice(rpsChoices)
	var result string
	switch {
	case choice == botChoice:
		result = "Tie!"
	case rpsBeats[choice] == botChoice:
		result = "You win!"
	default:
		result = "I win!"
	}
	return textf("You: %s, Me: %s. %s", choice, botChoice, result), nil
}

func formatTrivia(payload clients.Payload) (string, bool) {
	question := payload.Get("0.question.text").String()
	if question == "" {
		return "", false
	}
	return fmt.Sprintf("Trivia: %s\nAnswer: ||%s||", question, payload.Get("0.correctAnswer").String()), true
}

func (s *CommandsService) guessNumber(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	s.state.StartGuess(s.intN(100) + 1)
	return textf("Guess a number between 1-100! Use %sguess [number]", s.prefix), nil
}

func (s *CommandsService) guess(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	startHint := textf("Start with %sguessnumber", s.prefix)
	if !s.state.ActiveGuess().IsPresent() {
		return startHint, nil
	}

	n, err := strconv.Atoi(inv.Arg(0).OrEmpty())
	if err != nil {
		return text("Invalid number."), nil
	}

	switch s.state.EvaluateGuess(n) {
	case models.GuessCorrect:
		return text("Correct!"), nil
	case models.GuessHigher:
		return text("Higher!"), nil
	case models.GuessLower:
		return text("Lower!"), nil
	default:
		// another invocation finished the game between the check and the evaluation
		return startHint, nil
	}
}

func (s *CommandsService) wordScramble(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	letters := []rune(s.randomChoice(scrambleWords))
	for i := len(letters) - 1; i > 0; i-- {
		j := s.intN(i + 1)
		letters[i], letters[j] = letters[j], letters[i]
	}
	return textf("Unscramble: %s (Hint: Fruit or tech)", string(letters)), nil
}

func (s *CommandsService) mathQuiz(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	a, b := s.intN(10)+1, s.intN(10)+1
	return textf("What is %d * %d? Answer: ||%d||", a, b, a*b), nil
}

func (s *CommandsService) flagQuiz(ctx context.Context, inv Invocation) (mo.Option[models.Reply], error) {
	entry := flagQuizEntries[s.intN(len(flagQuizEntries))]
	return textf("What country is %s? Answer: ||%s||", entry.Flag, entry.Country), nil
}

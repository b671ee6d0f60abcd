// Package nlu parses learner chat commands with deterministic rules.
// Messages are folded to lowercase ASCII before matching, so "más FÁCIL"
// and "mas facil" behave the same. Anything unrecognized is reported as
// such; callers decide what to do with free text.
package nlu

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/edusabi/sabi/internal/quiz"
	"github.com/edusabi/sabi/internal/recommend"
)

// Kind classifies a parsed command.
type Kind string

const (
	// KindDecision is a bout decision: retry, review or advance, with an
	// optional topic.
	KindDecision Kind = "decision"
	// KindQuizLength sets the bout length.
	KindQuizLength Kind = "quiz_length"
	// KindDifficulty sets the preferred item difficulty.
	KindDifficulty Kind = "difficulty"
)

// Command is one parsed learner instruction.
type Command struct {
	Kind Kind

	// Action and Topic are set for KindDecision. Topic may be empty.
	Action recommend.Action
	Topic  string

	// Length is set for KindQuizLength, already clamped.
	Length int

	// Difficulty is "baja" or "alta" for KindDifficulty.
	Difficulty string
}

var (
	quizLenRe = regexp.MustCompile(`(?:quiz|prueba|examen)\s*(?:corto|largo)?\s*(?:de)?\s*(\d+)`)
	retryRe   = regexp.MustCompile(`\b(?:reintentar|otra vez|intentar de nuevo|volver a intentar)\b`)
	reviewRe  = regexp.MustCompile(`\brepasar(?:\s+(?:fundamentos|prerrequisitos))?(?:\s+de)?\s*([a-z0-9 ]{2,60})?$`)
	advanceRe = regexp.MustCompile(`\b(?:avanzar|siguiente)\b(?:\s+(?:a|en))?\s*([a-z0-9 ]{2,60})?$`)
)

// Parse interprets a chat message. The second return value is false when
// no rule matched.
func Parse(message string) (Command, bool) {
	m := recommend.NormalizeText(message)
	if m == "" {
		return Command{}, false
	}

	if strings.Contains(m, "facil") {
		return Command{Kind: KindDifficulty, Difficulty: "baja"}, true
	}
	if strings.Contains(m, "dificil") {
		return Command{Kind: KindDifficulty, Difficulty: "alta"}, true
	}

	if g := quizLenRe.FindStringSubmatch(m); g != nil {
		n, err := strconv.Atoi(g[1])
		if err == nil {
			return Command{Kind: KindQuizLength, Length: quiz.ClampLength(n)}, true
		}
	}

	if retryRe.MatchString(m) {
		return Command{Kind: KindDecision, Action: recommend.ActionRetry}, true
	}
	if g := reviewRe.FindStringSubmatch(m); g != nil {
		return Command{
			Kind:   KindDecision,
			Action: recommend.ActionReview,
			Topic:  strings.TrimSpace(g[1]),
		}, true
	}
	if g := advanceRe.FindStringSubmatch(m); g != nil {
		return Command{
			Kind:   KindDecision,
			Action: recommend.ActionAdvance,
			Topic:  strings.TrimSpace(g[1]),
		}, true
	}

	return Command{}, false
}

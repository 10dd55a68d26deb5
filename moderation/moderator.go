// Package moderation censors forbidden words in message text.
package moderation

import (
	"log/slog"
	"unicode"

	"chat-sync/errors"

	goahocorasick "github.com/anknown/ahocorasick"
	"github.com/samber/lo"
)

type Moderator struct {
	matcher      *goahocorasick.Machine
	censoredChar rune
	log          *slog.Logger
}

type TextMapping struct {
	Normalized []rune
	OrigIdx    []int
}

// NewModerator builds the Aho-Corasick automaton from the normalized dictionary.
// Words made only of noise normalize to nothing and are skipped.
func NewModerator(censoredWords []string, censoredChar rune, log *slog.Logger) (Moderator, error) {
	patterns := lo.UniqBy(
		lo.FilterMap(censoredWords, func(word string, _ int) ([]rune, bool) {
			normalized := normalizeRunes([]rune(word))
			if len(normalized) == 0 {
				log.Debug("Skipping censored word without letters", "word", word)
				return nil, false
			}
			return normalized, true
		}),
		func(p []rune) string { return string(p) },
	)
	if len(patterns) == 0 {
		return Moderator{}, errors.ErrEmptyWords
	}

	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return Moderator{}, err
	}
	return Moderator{matcher: m, censoredChar: censoredChar, log: log}, nil
}

// Censor replaces every forbidden pattern with the censored char, keeping the
// original spacing, and returns the normalized words that matched.
func (m Moderator) Censor(original string) (string, []string) {
	if m.matcher == nil {
		return original, nil
	}
	mapping := normalize(original)
	if len(mapping.Normalized) == 0 {
		return original, nil
	}

	spans := m.matcher.MultiPatternSearch(mapping.Normalized, false)
	if len(spans) == 0 {
		return original, nil
	}

	origRunes := []rune(original)
	var words []string
	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)
		if normStart < 0 || normEnd > len(mapping.OrigIdx) {
			continue
		}

		origStart := mapping.OrigIdx[normStart]
		origEnd := mapping.OrigIdx[normEnd-1] + 1
		for i := origStart; i < origEnd; i++ {
			origRunes[i] = m.censoredChar
		}
		words = append(words, string(span.Word))
	}
	if len(words) > 0 {
		m.log.Debug("Message censored", "words", len(words))
	}
	return string(origRunes), words
}

// normalize lowers and simplifies the input while remembering where each kept rune came from.
func normalize(input string) TextMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return TextMapping{Normalized: norm, OrigIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps leet speak back to letters.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}

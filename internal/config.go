package internal

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// CharacterRune parses the moderation replacement character.
func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf("CHARACTER_REPLACEMENT must be a single character, got %q", str)
	}
	return r[0], nil
}

// SplitList parses a comma separated env value, dropping blanks.
func SplitList(str string) []string {
	return lo.Compact(lo.Map(strings.Split(str, ","), func(s string, _ int) string {
		return strings.TrimSpace(s)
	}))
}

package spec

import (
	"fmt"
	"strings"
)

// Level gates which properties an editing surface shows. Levels are ordered:
// BASIC < ADVANCED < DEVELOPER.
type Level int

const (
	LevelBasic Level = iota
	LevelAdvanced
	LevelDeveloper
)

var levelNames = [...]string{
	LevelBasic:     "basic",
	LevelAdvanced:  "advanced",
	LevelDeveloper: "developer",
}

func (l Level) String() string {
	if l < 0 || int(l) >= len(levelNames) {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// Valid reports whether l is a declared level.
func (l Level) Valid() bool {
	return l >= 0 && int(l) < len(levelNames)
}

// Levels lists every level from least to most detailed.
func Levels() []Level {
	return []Level{LevelBasic, LevelAdvanced, LevelDeveloper}
}

// ParseLevel converts a case-insensitive level name.
func ParseLevel(text string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(text), name) {
			return Level(i), nil
		}
	}
	return 0, fmt.Errorf("unknown level %q (want basic, advanced or developer)", text)
}

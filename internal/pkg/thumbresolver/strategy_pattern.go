package thumbresolver

import (
	"regexp"
	"strings"
)

var (
	embeddedIDPattern = regexp.MustCompile(`^(?:game|placeholder)_(\d+)`)
	legacyHashPattern = regexp.MustCompile(`^[0-9a-f]{16,64}$`)
)

// patternStrategy recovers a mapping from the shape of the requested
// filename itself: identifiers that encode a game id ("game_<id>" or
// "placeholder_<id>") map through the numeric-id table, and filenames that
// look like legacy content hashes map through the hash compatibility table.
type patternStrategy struct {
	tables *Mappings
}

func (s *patternStrategy) Name() string { return "pattern" }

func (s *patternStrategy) Resolve(req Request) (string, bool) {
	stem := req.RequestedID
	if i := strings.LastIndexByte(stem, '.'); i > 0 {
		stem = stem[:i]
	}

	if m := embeddedIDPattern.FindStringSubmatch(stem); m != nil {
		if name, ok := s.tables.ByID[m[1]]; ok {
			return name, true
		}
	}

	if legacyHashPattern.MatchString(stem) {
		if name, ok := s.tables.ByHash[stem]; ok {
			return name, true
		}
	}

	return "", false
}

package thumbresolver

import "strconv"

// directStrategy consults the table keyed by "game_<id>". Fastest and most
// specific, used for deterministically seeded demo content.
type directStrategy struct {
	tables *Mappings
}

func (s *directStrategy) Name() string { return "direct" }

func (s *directStrategy) Resolve(req Request) (string, bool) {
	if req.GameID == nil {
		return "", false
	}
	name, ok := s.tables.Direct["game_"+strconv.FormatInt(*req.GameID, 10)]
	return name, ok
}

// idStrategy consults the numeric-id table.
type idStrategy struct {
	tables *Mappings
}

func (s *idStrategy) Name() string { return "by_id" }

func (s *idStrategy) Resolve(req Request) (string, bool) {
	if req.GameID == nil {
		return "", false
	}
	name, ok := s.tables.ByID[strconv.FormatInt(*req.GameID, 10)]
	return name, ok
}

// nameStrategy consults the exact-title table.
type nameStrategy struct {
	tables *Mappings
}

func (s *nameStrategy) Name() string { return "by_name" }

func (s *nameStrategy) Resolve(req Request) (string, bool) {
	if req.GameName == "" {
		return "", false
	}
	name, ok := s.tables.ByName[req.GameName]
	return name, ok
}

package thumbresolver

import "github.com/arcadehq/arcade/internal/pkg/assetstore"

// moduloStrategy picks a stable-but-arbitrary existing file by indexing the
// sorted canonical listing with gameID mod count, so a game with no explicit
// mapping still resolves to the same image on every request.
type moduloStrategy struct {
	repo assetstore.Repository
}

func (s *moduloStrategy) Name() string { return "modulo" }

func (s *moduloStrategy) Resolve(req Request) (string, bool) {
	if req.GameID == nil {
		return "", false
	}
	names, err := s.repo.List()
	if err != nil || len(names) == 0 {
		return "", false
	}
	idx := *req.GameID % int64(len(names))
	if idx < 0 {
		idx += int64(len(names))
	}
	return names[idx], true
}

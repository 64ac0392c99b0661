package thumbresolver

import (
	"path"
	"strings"

	"go.uber.org/zap"

	"github.com/arcadehq/arcade/internal/pkg/assetstore"
)

// Request carries everything known about a thumbnail lookup: the identifier
// the client asked for plus optional hints about the owning game.
type Request struct {
	RequestedID string
	GameID      *int64
	GameName    string
}

// Strategy is one step of the resolution cascade. It returns the asset name
// to serve and whether it produced a match.
type Strategy interface {
	Name() string
	Resolve(req Request) (string, bool)
}

// Resolver maps a requested thumbnail identifier to an existing file on
// disk. It never fails outward: every lookup terminates in a servable path,
// degrading to the shared placeholder when nothing better matches. A broken
// thumbnail is a cosmetic degradation, not an error worth surfacing to a
// browsing user.
type Resolver struct {
	repo       assetstore.Repository
	strategies []Strategy
	log        *zap.Logger
}

func New(repo assetstore.Repository, m *Mappings, log *zap.Logger) *Resolver {
	if m == nil {
		m = EmptyMappings()
	}
	return &Resolver{
		repo: repo,
		strategies: []Strategy{
			&directStrategy{tables: m},
			&idStrategy{tables: m},
			&nameStrategy{tables: m},
			&existingFileStrategy{repo: repo},
			&patternStrategy{tables: m},
			&moduloStrategy{repo: repo},
		},
		log: log,
	}
}

// Resolve walks the cascade and returns the absolute path of the file to
// serve. A strategy's answer is only trusted if the named file actually
// exists; stale mapping entries fall through to the next step.
func (r *Resolver) Resolve(req Request) string {
	req.RequestedID = normalizeRequested(req.RequestedID)

	for _, s := range r.strategies {
		name, ok := s.Resolve(req)
		if !ok {
			continue
		}
		if !r.repo.Exists(name) {
			r.log.Debug("resolution strategy matched a missing file",
				zap.String("strategy", s.Name()), zap.String("asset", name))
			continue
		}
		return r.repo.Path(name)
	}

	return r.repo.Path(assetstore.PlaceholderName)
}

// normalizeRequested strips any path and query-string baggage from the
// requested identifier, leaving a bare filename.
func normalizeRequested(id string) string {
	if i := strings.IndexByte(id, '?'); i >= 0 {
		id = id[:i]
	}
	return path.Base(strings.TrimSpace(id))
}

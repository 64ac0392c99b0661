package thumbresolver

import "github.com/arcadehq/arcade/internal/pkg/assetstore"

// existingFileStrategy serves the requested filename directly when it is a
// real file in the canonical asset directory. This is the whole cascade for
// healthy data; everything before it is compatibility shimming and
// everything after it is degradation.
type existingFileStrategy struct {
	repo assetstore.Repository
}

func (s *existingFileStrategy) Name() string { return "existing_file" }

func (s *existingFileStrategy) Resolve(req Request) (string, bool) {
	if req.RequestedID == "" || req.RequestedID == "." {
		return "", false
	}
	if s.repo.Exists(req.RequestedID) {
		return req.RequestedID, true
	}
	return "", false
}

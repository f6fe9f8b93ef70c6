package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/globfind/internal/core/ports"
)

// MatcherNodeID is the unique identifier for the glob matcher Graft node.
const MatcherNodeID graft.ID = "adapter.fs.matcher"

func init() {
	graft.Register(graft.Node[ports.Matcher]{
		ID:        MatcherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Matcher, error) {
			return NewMatcher(), nil
		},
	})
}

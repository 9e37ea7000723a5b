package ports

import (
	"context"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
)

// RosterService orchestrates actor listings: upstream fetch, shape
// normalization, tag backfill, and supersession of stale in-flight queries.
//
// queryKey identifies a logical query stream (typically session id plus
// route); starting a new query for a key cancels the previous one, and a
// result whose generation is stale fails with ErrQuerySuperseded.
type RosterService interface {
	List(ctx context.Context, token, queryKey string, q ListActorsQuery) (domain.ActorPage, error)
	ListUnassigned(ctx context.Context, token, queryKey string, q ListActorsQuery) (domain.ActorPage, error)
}

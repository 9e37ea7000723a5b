package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/qiaoguanyu11/actorreal/internal/api/metrics"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

// RosterService orchestrates actor listings: upstream fetch, tag backfill,
// and supersession of stale in-flight queries. Starting a new query for a
// key cancels the previous one; a result whose generation is stale is
// discarded instead of overwriting fresher data.
type RosterService struct {
	actors ports.ActorClient
	tags   ports.TagClient
	log    zerolog.Logger

	mu      sync.Mutex
	queries map[string]*queryState
}

type queryState struct {
	gen    uint64
	cancel context.CancelFunc
}

func NewRosterService(actors ports.ActorClient, tags ports.TagClient, log zerolog.Logger) *RosterService {
	return &RosterService{
		actors:  actors,
		tags:    tags,
		log:     log,
		queries: make(map[string]*queryState),
	}
}

func (s *RosterService) List(ctx context.Context, token, queryKey string, q ports.ListActorsQuery) (domain.ActorPage, error) {
	return s.run(ctx, token, queryKey, q, s.actors.List)
}

func (s *RosterService) ListUnassigned(ctx context.Context, token, queryKey string, q ports.ListActorsQuery) (domain.ActorPage, error) {
	return s.run(ctx, token, queryKey, q, s.actors.ListUnassigned)
}

type listFn func(ctx context.Context, token string, q ports.ListActorsQuery) (domain.ActorPage, error)

func (s *RosterService) run(ctx context.Context, token, queryKey string, q ports.ListActorsQuery, fetch listFn) (domain.ActorPage, error) {
	ctx, gen := s.begin(ctx, queryKey)
	defer s.finish(queryKey, gen)

	page, err := fetch(ctx, token, q)
	if err != nil {
		if ctx.Err() != nil || s.stale(queryKey, gen) {
			return domain.ActorPage{}, domain.ErrQuerySuperseded
		}
		return domain.ActorPage{}, err
	}

	s.backfillTags(ctx, token, &page)

	if s.stale(queryKey, gen) {
		return domain.ActorPage{}, domain.ErrQuerySuperseded
	}
	return page, nil
}

// begin registers a new generation for the key and cancels the previous
// in-flight query, if any.
func (s *RosterService) begin(ctx context.Context, key string) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.queries[key]
	if st == nil {
		st = &queryState{}
		s.queries[key] = st
	} else if st.cancel != nil {
		st.cancel()
	}
	st.gen++
	st.cancel = cancel
	return ctx, st.gen
}

func (s *RosterService) stale(key string, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.queries[key]
	return st == nil || st.gen != gen
}

// finish releases the query's cancel func. Only the owner of the current
// generation clears it; a superseded query must not cancel its successor.
func (s *RosterService) finish(key string, gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.queries[key]
	if st != nil && st.gen == gen && st.cancel != nil {
		st.cancel()
		st.cancel = nil
	}
}

// backfillTags fills in tag associations the listing omitted. One batched
// lookup first; entities still bare afterwards get one parallel per-entity
// lookup each. Backfill never fails the page: any individual failure
// degrades to an empty tag list for that entity only.
func (s *RosterService) backfillTags(ctx context.Context, token string, page *domain.ActorPage) {
	if len(page.Items) == 0 {
		return
	}
	if len(page.Items[0].Tags) > 0 {
		// The listing already embeds tags; trust it.
		return
	}

	ids := make([]string, len(page.Items))
	for i, a := range page.Items {
		ids[i] = a.ID
	}

	grouped, err := s.tags.ForActors(ctx, token, ids)
	if err != nil {
		metrics.TagBackfillTotal.WithLabelValues("batch", "degraded").Inc()
		s.log.Warn().Err(err).Int("actors", len(ids)).Msg("batched tag lookup failed")
	} else {
		metrics.TagBackfillTotal.WithLabelValues("batch", "ok").Inc()
		for i := range page.Items {
			if len(page.Items[i].Tags) == 0 {
				page.Items[i].Tags = grouped[page.Items[i].ID]
			}
		}
	}

	var remaining []int
	for i := range page.Items {
		if len(page.Items[i].Tags) == 0 {
			remaining = append(remaining, i)
		}
	}
	if len(remaining) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, idx := range remaining {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			tags, err := s.tags.ActorTags(ctx, token, page.Items[idx].ID)
			if err != nil {
				metrics.TagBackfillTotal.WithLabelValues("fallback", "degraded").Inc()
				page.Items[idx].Tags = []domain.Tag{}
				return
			}
			metrics.TagBackfillTotal.WithLabelValues("fallback", "ok").Inc()
			if tags == nil {
				tags = []domain.Tag{}
			}
			page.Items[idx].Tags = tags
		}(idx)
	}
	wg.Wait()
}

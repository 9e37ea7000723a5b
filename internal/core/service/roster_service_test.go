package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
)

type stubActorClient struct {
	ports.ActorClient
	listFn func(ctx context.Context, token string, q ports.ListActorsQuery) (domain.ActorPage, error)
}

func (s *stubActorClient) List(ctx context.Context, token string, q ports.ListActorsQuery) (domain.ActorPage, error) {
	return s.listFn(ctx, token, q)
}

func (s *stubActorClient) ListUnassigned(ctx context.Context, token string, q ports.ListActorsQuery) (domain.ActorPage, error) {
	return s.listFn(ctx, token, q)
}

type stubTagClient struct {
	ports.TagClient

	mu          sync.Mutex
	batchCalls  int
	perActor    []string
	forActorsFn func(actorIDs []string) (map[string][]domain.Tag, error)
	actorTagsFn func(actorID string) ([]domain.Tag, error)
}

func (s *stubTagClient) ForActors(ctx context.Context, token string, actorIDs []string) (map[string][]domain.Tag, error) {
	s.mu.Lock()
	s.batchCalls++
	s.mu.Unlock()
	if s.forActorsFn == nil {
		return map[string][]domain.Tag{}, nil
	}
	return s.forActorsFn(actorIDs)
}

func (s *stubTagClient) ActorTags(ctx context.Context, token, actorID string) ([]domain.Tag, error) {
	s.mu.Lock()
	s.perActor = append(s.perActor, actorID)
	s.mu.Unlock()
	if s.actorTagsFn == nil {
		return nil, errors.New("not stubbed")
	}
	return s.actorTagsFn(actorID)
}

func pageOf(ids ...string) domain.ActorPage {
	p := domain.ActorPage{Total: len(ids)}
	for _, id := range ids {
		p.Items = append(p.Items, domain.Actor{ID: id})
	}
	return p
}

func TestRosterList_BackfillSkippedWhenTagsEmbedded(t *testing.T) {
	page := pageOf("a1", "a2")
	page.Items[0].Tags = []domain.Tag{{ID: 1, Name: "drama"}}

	tags := &stubTagClient{}
	svc := NewRosterService(&stubActorClient{listFn: func(context.Context, string, ports.ListActorsQuery) (domain.ActorPage, error) {
		return page, nil
	}}, tags, zerolog.Nop())

	got, err := svc.List(context.Background(), "tok", "k", ports.ListActorsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tags.batchCalls != 0 {
		t.Fatalf("expected no batched lookup, got %d", tags.batchCalls)
	}
	if len(got.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(got.Items))
	}
}

func TestRosterList_BatchedBackfill(t *testing.T) {
	tags := &stubTagClient{
		forActorsFn: func(ids []string) (map[string][]domain.Tag, error) {
			if len(ids) != 2 {
				t.Fatalf("expected one batch of 2 ids, got %v", ids)
			}
			return map[string][]domain.Tag{
				"a1": {{ID: 1, Name: "drama"}},
				"a2": {{ID: 2, Name: "action"}},
			}, nil
		},
	}
	svc := NewRosterService(&stubActorClient{listFn: func(context.Context, string, ports.ListActorsQuery) (domain.ActorPage, error) {
		return pageOf("a1", "a2"), nil
	}}, tags, zerolog.Nop())

	got, err := svc.List(context.Background(), "tok", "k", ports.ListActorsQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tags.batchCalls != 1 {
		t.Fatalf("expected 1 batched call, got %d", tags.batchCalls)
	}
	if len(tags.perActor) != 0 {
		t.Fatalf("expected no per-actor fallbacks, got %v", tags.perActor)
	}
	if got.Items[0].Tags[0].Name != "drama" || got.Items[1].Tags[0].Name != "action" {
		t.Fatalf("tags not applied: %+v", got.Items)
	}
}

func TestRosterList_FallbackOnBatchFailure(t *testing.T) {
	tags := &stubTagClient{
		forActorsFn: func([]string) (map[string][]domain.Tag, error) {
			return nil, errors.New("batch endpoint down")
		},
		actorTagsFn: func(actorID string) ([]domain.Tag, error) {
			if actorID == "a2" {
				return nil, errors.New("also down")
			}
			return []domain.Tag{{ID: 9, Name: "comedy"}}, nil
		},
	}
	svc := NewRosterService(&stubActorClient{listFn: func(context.Context, string, ports.ListActorsQuery) (domain.ActorPage, error) {
		return pageOf("a1", "a2", "a3"), nil
	}}, tags, zerolog.Nop())

	got, err := svc.List(context.Background(), "tok", "k", ports.ListActorsQuery{})
	if err != nil {
		t.Fatalf("backfill must never fail the page: %v", err)
	}
	if len(got.Items) != 3 {
		t.Fatalf("page length changed: %d", len(got.Items))
	}
	if len(tags.perActor) != 3 {
		t.Fatalf("expected 3 per-actor fallbacks, got %v", tags.perActor)
	}
	if got.Items[0].Tags[0].Name != "comedy" {
		t.Fatalf("fallback tags not applied: %+v", got.Items[0])
	}
	// The failed entity degrades to an empty, non-nil tag list.
	if got.Items[1].Tags == nil || len(got.Items[1].Tags) != 0 {
		t.Fatalf("expected empty tags for failed entity, got %+v", got.Items[1].Tags)
	}
}

func TestRosterList_EmptyPageNoLookups(t *testing.T) {
	tags := &stubTagClient{}
	svc := NewRosterService(&stubActorClient{listFn: func(context.Context, string, ports.ListActorsQuery) (domain.ActorPage, error) {
		return domain.ActorPage{}, nil
	}}, tags, zerolog.Nop())

	if _, err := svc.List(context.Background(), "tok", "k", ports.ListActorsQuery{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tags.batchCalls != 0 || len(tags.perActor) != 0 {
		t.Fatal("no lookups expected for an empty page")
	}
}

func TestRosterList_SupersededQueryDiscarded(t *testing.T) {
	started := make(chan struct{})
	calls := 0
	var mu sync.Mutex

	actors := &stubActorClient{listFn: func(ctx context.Context, _ string, _ ports.ListActorsQuery) (domain.ActorPage, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(started)
			// Block until the successor cancels us.
			<-ctx.Done()
			return domain.ActorPage{}, ctx.Err()
		}
		return pageOf("a1"), nil
	}}
	tags := &stubTagClient{forActorsFn: func([]string) (map[string][]domain.Tag, error) {
		return map[string][]domain.Tag{}, nil
	}}
	svc := NewRosterService(actors, tags, zerolog.Nop())

	errc := make(chan error, 1)
	go func() {
		_, err := svc.List(context.Background(), "tok", "same-key", ports.ListActorsQuery{})
		errc <- err
	}()
	<-started

	got, err := svc.List(context.Background(), "tok", "same-key", ports.ListActorsQuery{})
	if err != nil {
		t.Fatalf("fresh query must succeed: %v", err)
	}
	if len(got.Items) != 1 {
		t.Fatalf("expected fresh page, got %+v", got)
	}

	if err := <-errc; !errors.Is(err, domain.ErrQuerySuperseded) {
		t.Fatalf("stale query should report supersession, got %v", err)
	}
}

func TestRosterList_DistinctKeysDoNotInterfere(t *testing.T) {
	actors := &stubActorClient{listFn: func(ctx context.Context, _ string, _ ports.ListActorsQuery) (domain.ActorPage, error) {
		if err := ctx.Err(); err != nil {
			return domain.ActorPage{}, err
		}
		return pageOf("a1"), nil
	}}
	tags := &stubTagClient{forActorsFn: func([]string) (map[string][]domain.Tag, error) {
		return map[string][]domain.Tag{}, nil
	}}
	svc := NewRosterService(actors, tags, zerolog.Nop())

	if _, err := svc.List(context.Background(), "tok", "key-a", ports.ListActorsQuery{}); err != nil {
		t.Fatalf("key-a: %v", err)
	}
	if _, err := svc.List(context.Background(), "tok", "key-b", ports.ListActorsQuery{}); err != nil {
		t.Fatalf("key-b: %v", err)
	}
	// Re-running a finished key is a new generation, not a stale one.
	if _, err := svc.List(context.Background(), "tok", "key-a", ports.ListActorsQuery{}); err != nil {
		t.Fatalf("key-a rerun: %v", err)
	}
}

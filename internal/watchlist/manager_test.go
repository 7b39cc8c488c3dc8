package watchlist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
	"github.com/developermasrurhassan/chill-gamer-client/internal/msgcat"
)

// fakeStoreAPI emulates the remote store together with the client's error
// mapping: conflicts surface as domain.ErrDuplicateEntry, missing ids as
// domain.ErrNotFound.
type fakeStoreAPI struct {
	mu     sync.Mutex
	items  []domain.WatchlistItem
	nextID int
	calls  int

	watchlistErr error
	addGate      chan struct{}
	addStarted   chan struct{}
}

func (f *fakeStoreAPI) Watchlist(ctx context.Context, email string) ([]domain.WatchlistItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.watchlistErr != nil {
		return nil, f.watchlistErr
	}
	var out []domain.WatchlistItem
	for _, it := range f.items {
		if it.UserEmail == email {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStoreAPI) AddToWatchlist(ctx context.Context, item *domain.WatchlistItem) (*domain.WatchlistItem, error) {
	f.mu.Lock()
	started := f.addStarted
	gate := f.addGate
	f.mu.Unlock()
	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for _, it := range f.items {
		if it.UserEmail == item.UserEmail && it.GameTitle == item.GameTitle {
			return nil, domain.ErrDuplicateEntry
		}
	}
	f.nextID++
	created := *item
	created.ID = fmt.Sprintf("wl-%d", f.nextID)
	created.AddedAt = time.Now()
	f.items = append(f.items, created)
	return &created, nil
}

func (f *fakeStoreAPI) RemoveFromWatchlist(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	for i, it := range f.items {
		if it.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeStoreAPI) count(email string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, it := range f.items {
		if it.UserEmail == email {
			n++
		}
	}
	return n
}

func newTestManager(t *testing.T) (*Manager, *fakeStoreAPI) {
	t.Helper()
	msg, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	api := &fakeStoreAPI{}
	return NewManager(api, NewMemStore(), msg), api
}

var u1 = domain.User{Email: "u1@example.com", DisplayName: "U1"}

func TestToggleRoundTrip(t *testing.T) {
	m, api := newTestManager(t)
	ctx := context.Background()
	snap := Snapshot{GameTitle: "W", Rating: 4.2, Genre: "RPG"}

	res := m.Toggle(ctx, u1, snap)
	if res.Outcome != OutcomeAdded || !res.Member {
		t.Fatalf("first toggle: %+v", res)
	}
	if api.count(u1.Email) != 1 {
		t.Fatalf("expected one server-side item, got %d", api.count(u1.Email))
	}

	res = m.Toggle(ctx, u1, snap)
	if res.Outcome != OutcomeRemoved || res.Member {
		t.Fatalf("second toggle: %+v", res)
	}
	if res.Kind != "" {
		t.Fatalf("successful toggle must carry no failure kind, got %q", res.Kind)
	}
	if api.count(u1.Email) != 0 {
		t.Fatalf("residual server-side record after round trip: %d", api.count(u1.Email))
	}
	if st := m.StateOf(u1, "W"); st != StateNonMember {
		t.Fatalf("state after round trip: %s", st)
	}
}

func TestDuplicateAddIsInformational(t *testing.T) {
	m, api := newTestManager(t)
	ctx := context.Background()
	snap := Snapshot{GameTitle: "W"}

	// Manager believes non-member, then the entry appears via another client.
	if member, err := m.CheckMembership(ctx, u1, "W"); err != nil || member {
		t.Fatalf("CheckMembership: member=%v err=%v", member, err)
	}
	api.mu.Lock()
	api.items = append(api.items, domain.WatchlistItem{ID: "wl-race", UserEmail: u1.Email, GameTitle: "W"})
	api.mu.Unlock()

	res := m.Toggle(ctx, u1, snap)
	if res.Outcome != OutcomeAlready {
		t.Fatalf("duplicate add outcome: %+v", res)
	}
	if !res.Member {
		t.Fatalf("membership must stay true on duplicate add")
	}
	if !res.Outcome.Informational() {
		t.Fatalf("duplicate add must not be an error outcome")
	}
	if res.Kind != "" {
		t.Fatalf("informational outcome must carry no failure kind, got %q", res.Kind)
	}
	if api.count(u1.Email) != 1 {
		t.Fatalf("duplicate add created a second record: %d", api.count(u1.Email))
	}
}

func TestStaleRemoveLeavesMembership(t *testing.T) {
	m, api := newTestManager(t)
	ctx := context.Background()

	api.items = append(api.items, domain.WatchlistItem{ID: "wl-1", UserEmail: u1.Email, GameTitle: "Y"})
	if member, err := m.CheckMembership(ctx, u1, "Y"); err != nil || !member {
		t.Fatalf("CheckMembership: member=%v err=%v", member, err)
	}

	// Item removed elsewhere; the cached id is now stale.
	api.mu.Lock()
	api.items = nil
	api.mu.Unlock()

	res := m.Toggle(ctx, u1, Snapshot{GameTitle: "Y"})
	if res.Outcome != OutcomeFailed {
		t.Fatalf("stale remove outcome: %+v", res)
	}
	if res.Kind != domain.FailStale {
		t.Fatalf("stale remove kind: %q", res.Kind)
	}
	if !res.Member {
		t.Fatalf("local membership must not be speculatively corrected")
	}
	if st := m.StateOf(u1, "Y"); st != StateMember {
		t.Fatalf("state after stale remove: %s", st)
	}
}

func TestUnauthenticatedToggleSkipsNetwork(t *testing.T) {
	m, api := newTestManager(t)
	res := m.Toggle(context.Background(), domain.User{}, Snapshot{GameTitle: "W"})
	if res.Outcome != OutcomeAuthRequired {
		t.Fatalf("outcome: %+v", res)
	}
	if api.calls != 0 {
		t.Fatalf("unauthenticated toggle performed %d network calls", api.calls)
	}
}

func TestInFlightGuard(t *testing.T) {
	m, api := newTestManager(t)
	ctx := context.Background()
	snap := Snapshot{GameTitle: "W"}

	if _, err := m.CheckMembership(ctx, u1, "W"); err != nil {
		t.Fatalf("CheckMembership: %v", err)
	}

	api.mu.Lock()
	api.addGate = make(chan struct{})
	api.addStarted = make(chan struct{}, 1)
	api.mu.Unlock()

	done := make(chan ToggleResult, 1)
	go func() { done <- m.Toggle(ctx, u1, snap) }()
	<-api.addStarted

	// Second toggle for the same pair while the add is in flight.
	res := m.Toggle(ctx, u1, snap)
	if res.Outcome != OutcomeBusy {
		t.Fatalf("expected busy outcome, got %+v", res)
	}

	close(api.addGate)
	first := <-done
	if first.Outcome != OutcomeAdded {
		t.Fatalf("first toggle: %+v", first)
	}
	if api.count(u1.Email) != 1 {
		t.Fatalf("guard allowed %d items", api.count(u1.Email))
	}
}

func TestToggleFromReviewCarriesReviewID(t *testing.T) {
	m, api := newTestManager(t)
	rev := domain.Review{ID: "rev-7", GameTitle: "Celeste", GameCover: "cover.png", Genre: "Platformer", Rating: 4.8}

	res := m.Toggle(context.Background(), u1, SnapshotOfReview(rev))
	if res.Outcome != OutcomeAdded {
		t.Fatalf("toggle from review: %+v", res)
	}
	api.mu.Lock()
	defer api.mu.Unlock()
	if len(api.items) != 1 {
		t.Fatalf("expected one item, got %d", len(api.items))
	}
	it := api.items[0]
	if it.ReviewID != "rev-7" || it.GameTitle != "Celeste" || it.Genre != "Platformer" {
		t.Fatalf("review linkage lost on the stored item: %+v", it)
	}
}

func TestToggleFetchFailureCarriesNetworkKind(t *testing.T) {
	m, api := newTestManager(t)
	api.watchlistErr = errors.New("connection refused")
	res := m.Toggle(context.Background(), u1, Snapshot{GameTitle: "W"})
	if res.Outcome != OutcomeFailed {
		t.Fatalf("outcome: %+v", res)
	}
	if res.Kind != domain.FailNetwork {
		t.Fatalf("fetch failure kind: %q", res.Kind)
	}
}

func TestResetDropsMembershipCache(t *testing.T) {
	msg, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	api := &fakeStoreAPI{items: []domain.WatchlistItem{{ID: "wl-1", UserEmail: u1.Email, GameTitle: "W"}}}
	store := NewMemStore()
	m := NewManager(api, store, msg)
	ctx := context.Background()

	if member, err := m.CheckMembership(ctx, u1, "W"); err != nil || !member {
		t.Fatalf("CheckMembership: member=%v err=%v", member, err)
	}
	if err := m.Reset(ctx, u1); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if st := m.StateOf(u1, "W"); st != StateIdle {
		t.Fatalf("state after reset: %s", st)
	}
	if _, ok, _ := store.LoadMembership(ctx, u1.Email); ok {
		t.Fatalf("membership cache survived reset")
	}
}

func TestCheckMembershipFetchFailure(t *testing.T) {
	m, api := newTestManager(t)
	api.watchlistErr = errors.New("boom")
	if _, err := m.CheckMembership(context.Background(), u1, "W"); err == nil {
		t.Fatalf("expected error")
	}
	if st := m.StateOf(u1, "W"); st != StateIdle {
		t.Fatalf("failed check must return the pair to idle, got %s", st)
	}
}

func TestItemsInsertionOrder(t *testing.T) {
	m, api := newTestManager(t)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	api.items = []domain.WatchlistItem{
		{ID: "2", UserEmail: u1.Email, GameTitle: "Later", AddedAt: base.Add(time.Hour)},
		{ID: "1", UserEmail: u1.Email, GameTitle: "Earlier", AddedAt: base},
	}
	items, err := m.Items(context.Background(), u1)
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(items) != 2 || items[0].GameTitle != "Earlier" {
		t.Fatalf("items not in insertion order: %v", items)
	}
}

func TestToggleWithRedisStore(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(func() { mr.Close() })

	msg, err := msgcat.New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	api := &fakeStoreAPI{}
	m := NewManager(api, NewRedisStore(rdb), msg)
	ctx := context.Background()
	snap := Snapshot{GameTitle: "W"}

	if res := m.Toggle(ctx, u1, snap); res.Outcome != OutcomeAdded {
		t.Fatalf("add with redis store: %+v", res)
	}
	if res := m.Toggle(ctx, u1, snap); res.Outcome != OutcomeRemoved {
		t.Fatalf("remove with redis store: %+v", res)
	}
	if api.count(u1.Email) != 0 {
		t.Fatalf("residual server-side record: %d", api.count(u1.Email))
	}
}

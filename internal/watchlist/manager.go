package watchlist

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/developermasrurhassan/chill-gamer-client/internal/catalog"
	"github.com/developermasrurhassan/chill-gamer-client/internal/domain"
	"github.com/developermasrurhassan/chill-gamer-client/internal/msgcat"
	"github.com/developermasrurhassan/chill-gamer-client/internal/obslog"
)

// API is the slice of the store client the synchronizer needs.
type API interface {
	Watchlist(ctx context.Context, email string) ([]domain.WatchlistItem, error)
	AddToWatchlist(ctx context.Context, item *domain.WatchlistItem) (*domain.WatchlistItem, error)
	RemoveFromWatchlist(ctx context.Context, id string) error
}

type pairKey struct {
	email string
	title string
}

func keyOf(email, title string) pairKey {
	return pairKey{email: strings.ToLower(strings.TrimSpace(email)), title: title}
}

// Manager synchronizes watchlist membership with the remote store. Membership
// is keyed by (userEmail, gameTitle); the store enforces uniqueness on that
// pair and the client treats a violation as a recoverable condition. At most
// one mutation is in flight per pair.
type Manager struct {
	api   API
	store Store
	msg   *msgcat.Catalog

	mu       sync.Mutex
	states   map[pairKey]State
	inflight map[pairKey]struct{}
}

func NewManager(api API, store Store, msg *msgcat.Catalog) *Manager {
	return &Manager{
		api:      api,
		store:    store,
		msg:      msg,
		states:   make(map[pairKey]State),
		inflight: make(map[pairKey]struct{}),
	}
}

// StateOf returns the tracked membership state for a pair, StateIdle if the
// pair has never been checked.
func (m *Manager) StateOf(user domain.User, title string) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.states[keyOf(user.Email, title)]; ok {
		return st
	}
	return StateIdle
}

func (m *Manager) setState(k pairKey, st State) {
	m.mu.Lock()
	m.states[k] = st
	m.mu.Unlock()
}

// refresh fetches the user's full watchlist and rewrites the cached
// (title → itemID) snapshot. The store offers no indexed lookup, so this
// wholesale scan is the only membership source of truth.
func (m *Manager) refresh(ctx context.Context, email string) (map[string]string, error) {
	items, err := m.api.Watchlist(ctx, email)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]string, len(items))
	for _, it := range items {
		byTitle[it.GameTitle] = it.ID
	}
	if err := m.store.SaveMembership(ctx, email, byTitle); err != nil {
		obslog.L().Warn("membership_cache_save_failed", zap.String("user", email), zap.Error(err))
	}
	return byTitle, nil
}

// CheckMembership reports whether (user, title) currently has a watchlist
// entry, always consulting the remote store.
func (m *Manager) CheckMembership(ctx context.Context, user domain.User, title string) (bool, error) {
	if user.Email == "" {
		return false, domain.ErrAuthRequired
	}
	k := keyOf(user.Email, title)
	m.setState(k, StateChecking)
	byTitle, err := m.refresh(ctx, user.Email)
	if err != nil {
		m.setState(k, StateIdle)
		return false, err
	}
	if _, ok := byTitle[title]; ok {
		m.setState(k, StateMember)
		return true, nil
	}
	m.setState(k, StateNonMember)
	return false, nil
}

// Toggle adds or removes the watchlist entry for (user, snapshot.GameTitle),
// reconciling server-reported duplicates and stale ids without corrupting
// local state. It never returns an error; every failure mode is a classified
// outcome with a user-facing message.
func (m *Manager) Toggle(ctx context.Context, user domain.User, snap Snapshot) ToggleResult {
	if user.Email == "" {
		return ToggleResult{Outcome: OutcomeAuthRequired, Message: m.msg.Text("watchlist.auth_required", nil)}
	}

	k := keyOf(user.Email, snap.GameTitle)
	m.mu.Lock()
	if _, busy := m.inflight[k]; busy {
		st := m.states[k]
		m.mu.Unlock()
		return ToggleResult{Outcome: OutcomeBusy, Member: st == StateMember || st == StateRemoving, Message: m.msg.Text("watchlist.busy", nil)}
	}
	m.inflight[k] = struct{}{}
	st := m.states[k]
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		delete(m.inflight, k)
		m.mu.Unlock()
	}()

	opID := uuid.NewString()

	// Resolve membership if this pair has not been checked yet.
	var byTitle map[string]string
	member := st == StateMember
	if st != StateMember && st != StateNonMember {
		var err error
		byTitle, err = m.refresh(ctx, user.Email)
		if err != nil {
			obslog.L().Warn("watchlist_check_failed", zap.String("op_id", opID), zap.String("user", user.Email), zap.Error(err))
			return ToggleResult{Outcome: OutcomeFailed, Kind: domain.KindOf(err), Message: m.msg.Text("watchlist.load_failed", nil)}
		}
		_, member = byTitle[snap.GameTitle]
	}

	if member {
		return m.remove(ctx, opID, user, snap.GameTitle, byTitle)
	}
	return m.add(ctx, opID, user, snap)
}

func (m *Manager) add(ctx context.Context, opID string, user domain.User, snap Snapshot) ToggleResult {
	k := keyOf(user.Email, snap.GameTitle)
	m.setState(k, StateAdding)

	item := &domain.WatchlistItem{
		UserEmail:   user.Email,
		UserName:    user.Name(),
		ReviewID:    snap.ReviewID,
		GameTitle:   snap.GameTitle,
		GameCover:   snap.GameCover,
		Rating:      snap.Rating,
		Genre:       snap.Genre,
		Price:       snap.Price,
		ReleaseYear: snap.ReleaseYear,
		Platforms:   snap.Platforms,
	}
	created, err := m.api.AddToWatchlist(ctx, item)
	if errors.Is(err, domain.ErrDuplicateEntry) {
		// The entry exists server-side; membership is already correct.
		m.setState(k, StateMember)
		obslog.L().Info("watchlist_duplicate", zap.String("op_id", opID), zap.String("user", user.Email), zap.String("title", snap.GameTitle))
		return ToggleResult{Outcome: OutcomeAlready, Member: true, Message: m.msg.Text("watchlist.already", nil)}
	}
	if err != nil {
		m.setState(k, StateNonMember)
		obslog.L().Warn("watchlist_add_failed", zap.String("op_id", opID), zap.String("user", user.Email), zap.String("title", snap.GameTitle), zap.Error(err))
		return ToggleResult{Outcome: OutcomeFailed, Kind: domain.KindOf(err), Message: m.msg.Text("watchlist.add_failed", nil)}
	}

	m.setState(k, StateMember)
	m.cacheItemID(ctx, user.Email, snap.GameTitle, created.ID)
	obslog.L().Info("watchlist_add", zap.String("op_id", opID), zap.String("user", user.Email), zap.String("title", snap.GameTitle), zap.String("item_id", created.ID))
	return ToggleResult{Outcome: OutcomeAdded, Member: true, Message: m.msg.Text("watchlist.added", nil)}
}

func (m *Manager) remove(ctx context.Context, opID string, user domain.User, title string, byTitle map[string]string) ToggleResult {
	k := keyOf(user.Email, title)

	if byTitle == nil {
		if cached, ok, err := m.store.LoadMembership(ctx, user.Email); err == nil && ok {
			byTitle = cached
		}
	}
	itemID := byTitle[title]
	if itemID == "" {
		// Cache went cold; one more wholesale fetch before giving up.
		fresh, err := m.refresh(ctx, user.Email)
		if err == nil {
			itemID = fresh[title]
		}
	}
	if itemID == "" {
		// No identifier to remove with. Leave membership as-is.
		obslog.L().Warn("watchlist_remove_no_id", zap.String("op_id", opID), zap.String("user", user.Email), zap.String("title", title))
		return ToggleResult{Outcome: OutcomeFailed, Member: true, Kind: domain.FailStale, Message: m.msg.Text("watchlist.remove_failed", nil)}
	}

	m.setState(k, StateRemoving)
	if err := m.api.RemoveFromWatchlist(ctx, itemID); err != nil {
		// Stale id or transport failure: do not speculatively correct state.
		m.setState(k, StateMember)
		kind := domain.KindOf(err)
		if kind == domain.FailNotFound {
			kind = domain.FailStale
		}
		obslog.L().Warn("watchlist_remove_failed", zap.String("op_id", opID), zap.String("user", user.Email), zap.String("title", title), zap.String("item_id", itemID), zap.Error(err))
		return ToggleResult{Outcome: OutcomeFailed, Member: true, Kind: kind, Message: m.msg.Text("watchlist.remove_failed", nil)}
	}

	m.setState(k, StateNonMember)
	delete(byTitle, title)
	if err := m.store.SaveMembership(ctx, user.Email, byTitle); err != nil {
		obslog.L().Warn("membership_cache_save_failed", zap.String("user", user.Email), zap.Error(err))
	}
	obslog.L().Info("watchlist_remove", zap.String("op_id", opID), zap.String("user", user.Email), zap.String("title", title), zap.String("item_id", itemID))
	return ToggleResult{Outcome: OutcomeRemoved, Member: false, Message: m.msg.Text("watchlist.removed", nil)}
}

func (m *Manager) cacheItemID(ctx context.Context, email, title, itemID string) {
	byTitle, ok, err := m.store.LoadMembership(ctx, email)
	if err != nil || !ok {
		byTitle = make(map[string]string)
	}
	byTitle[title] = itemID
	if err := m.store.SaveMembership(ctx, email, byTitle); err != nil {
		obslog.L().Warn("membership_cache_save_failed", zap.String("user", email), zap.Error(err))
	}
}

// Items returns the user's watchlist in insertion order for rendering, and
// refreshes the cached membership snapshot as a side effect.
func (m *Manager) Items(ctx context.Context, user domain.User) ([]domain.WatchlistItem, error) {
	if user.Email == "" {
		return nil, domain.ErrAuthRequired
	}
	items, err := m.api.Watchlist(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	byTitle := make(map[string]string, len(items))
	for _, it := range items {
		byTitle[it.GameTitle] = it.ID
	}
	if err := m.store.SaveMembership(ctx, user.Email, byTitle); err != nil {
		obslog.L().Warn("membership_cache_save_failed", zap.String("user", user.Email), zap.Error(err))
	}
	return catalog.SortWatchlist(items), nil
}

// Reset discards the cached membership snapshot and every tracked state for
// the user. Used when the session changes or the cache is suspected stale;
// the next check or toggle starts from a wholesale fetch.
func (m *Manager) Reset(ctx context.Context, user domain.User) error {
	if user.Email == "" {
		return nil
	}
	email := strings.ToLower(strings.TrimSpace(user.Email))
	m.mu.Lock()
	for k := range m.states {
		if k.email == email {
			delete(m.states, k)
		}
	}
	m.mu.Unlock()
	return m.store.DropMembership(ctx, user.Email)
}

// Remove deletes a watchlist item by id (the watchlist page path). Local
// state for the matching title is updated only on success.
func (m *Manager) Remove(ctx context.Context, user domain.User, itemID string) error {
	if user.Email == "" {
		return domain.ErrAuthRequired
	}
	if err := m.api.RemoveFromWatchlist(ctx, itemID); err != nil {
		return err
	}
	if byTitle, ok, err := m.store.LoadMembership(ctx, user.Email); err == nil && ok {
		for title, id := range byTitle {
			if id == itemID {
				delete(byTitle, title)
				m.setState(keyOf(user.Email, title), StateNonMember)
				break
			}
		}
		if err := m.store.SaveMembership(ctx, user.Email, byTitle); err != nil {
			obslog.L().Warn("membership_cache_save_failed", zap.String("user", user.Email), zap.Error(err))
		}
	}
	return nil
}

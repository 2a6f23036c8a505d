package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"

	"github.com/20twoes/sochess-ws/internal/sovereign"
)

// Manager keeps the running games in memory, one actor goroutine each.
type Manager struct {
	mu    sync.RWMutex
	games map[string]*actor

	tables *sovereign.Tables
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	group  *errgroup.Group
}

// NewManager starts a manager whose games live until ctx ends or Close is
// called. A nil tables selects sovereign.DefaultTables.
func NewManager(ctx context.Context, tables *sovereign.Tables) *Manager {
	ctx, cancel := context.WithCancel(ctx)
	group, gctx := errgroup.WithContext(ctx)
	return &Manager{
		games:  make(map[string]*actor),
		tables: tables,
		now:    time.Now,
		ctx:    gctx,
		cancel: cancel,
		group:  group,
	}
}

// NewGame creates a game hosted by name, who takes seat 1. It returns the
// game and the host's token.
func (m *Manager) NewGame(ctx context.Context, name string) (Snapshot, string, error) {
	token := uuid.NewString()
	a, err := m.start(Seat{Name: name, Token: token})
	if err != nil {
		return Snapshot{}, "", err
	}
	snap, err := a.do(ctx, nil)
	return snap, token, err
}

func (m *Manager) start(host Seat) (*actor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ctx.Err() != nil {
		return nil, ErrClosed
	}

	id := uuid.NewString()
	pos := sovereign.NewInitialPositionWithTables(m.tables)
	a := newActor(newGame(id, host, pos, m.now()), m.now)
	m.games[id] = a
	m.group.Go(func() error { return a.run(m.ctx) })
	return a, nil
}

func (m *Manager) get(id string) (*actor, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return a, nil
}

func (m *Manager) send(ctx context.Context, id string, ev Event) (Snapshot, error) {
	a, err := m.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	return a.do(ctx, ev)
}

// Join seats name as player 2 and returns the new player's token.
func (m *Manager) Join(ctx context.Context, id, name string) (Snapshot, string, error) {
	token := uuid.NewString()
	snap, err := m.send(ctx, id, Join{Name: name, Token: token})
	if err != nil {
		return Snapshot{}, "", err
	}
	return snap, token, nil
}

func (m *Manager) FirstMove(ctx context.Context, id, token, san string) (Snapshot, error) {
	return m.send(ctx, id, PlayFirstMove{Token: token, SAN: san})
}

func (m *Manager) FirstMoveChoice(ctx context.Context, id, token, choice string) (Snapshot, error) {
	return m.send(ctx, id, ChooseFirstMove{Token: token, Choice: choice})
}

func (m *Manager) Move(ctx context.Context, id, token, san string) (Snapshot, error) {
	return m.send(ctx, id, PlayMove{Token: token, SAN: san})
}

func (m *Manager) Defect(ctx context.Context, id, token string, c sovereign.Color) (Snapshot, error) {
	return m.send(ctx, id, Defect{Token: token, Color: c})
}

func (m *Manager) State(ctx context.Context, id string) (Snapshot, error) {
	return m.send(ctx, id, nil)
}

// Subscribe streams snapshots of game id until cancel is called.
func (m *Manager) Subscribe(ctx context.Context, id string) (<-chan Snapshot, func(), error) {
	a, err := m.get(id)
	if err != nil {
		return nil, nil, err
	}
	return a.watch(ctx)
}

// List returns the ids of all games, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	ids := maps.Keys(m.games)
	m.mu.RUnlock()
	slices.Sort(ids)
	return ids
}

// Close stops every game actor and waits for them to exit.
func (m *Manager) Close() error {
	// start adds to the group under mu; no Go may race Wait below
	m.mu.Lock()
	m.cancel()
	m.mu.Unlock()
	return m.group.Wait()
}

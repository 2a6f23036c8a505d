package game

import (
	"context"
	"log"
	"time"
)

// subscriberBuffer is how many snapshots a subscriber may lag before it is dropped.
const subscriberBuffer = 8

type request struct {
	ev    Event // nil reads the current state
	reply chan reply
}

type reply struct {
	snap Snapshot
	err  error
}

type subscriber struct {
	ch chan Snapshot
}

// actor serializes every access to one game. Callers talk to it only through
// its channels.
type actor struct {
	game *Game
	now  func() time.Time

	inbox       chan request
	subscribe   chan *subscriber
	unsubscribe chan *subscriber
	done        chan struct{}

	subs map[*subscriber]struct{}
}

func newActor(g *Game, now func() time.Time) *actor {
	return &actor{
		game:        g,
		now:         now,
		inbox:       make(chan request),
		subscribe:   make(chan *subscriber),
		unsubscribe: make(chan *subscriber),
		done:        make(chan struct{}),
		subs:        make(map[*subscriber]struct{}),
	}
}

func (a *actor) run(ctx context.Context) error {
	defer close(a.done)
	defer func() {
		for s := range a.subs {
			close(s.ch)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case req := <-a.inbox:
			req.reply <- a.handle(req.ev)

		case s := <-a.subscribe:
			a.subs[s] = struct{}{}
			s.ch <- a.game.snapshot()

		case s := <-a.unsubscribe:
			if _, ok := a.subs[s]; ok {
				delete(a.subs, s)
				close(s.ch)
			}
		}
	}
}

func (a *actor) handle(ev Event) reply {
	g := a.game
	if ev == nil {
		return reply{snap: g.snapshot()}
	}
	before := g.Phase
	if err := g.apply(ev, a.now()); err != nil {
		log.Printf("game %s: rejected %s: %v", g.ID, ev.eventName(), err)
		return reply{err: err}
	}
	if g.Phase != before {
		log.Printf("game %s: %s -> %s", g.ID, before, g.Phase)
	}
	snap := g.snapshot()
	a.broadcast(snap)
	return reply{snap: snap}
}

func (a *actor) broadcast(snap Snapshot) {
	for s := range a.subs {
		select {
		case s.ch <- snap:
		default:
			log.Printf("game %s: dropping slow subscriber", a.game.ID)
			delete(a.subs, s)
			close(s.ch)
		}
	}
}

// do sends ev to the actor and waits for the outcome.
func (a *actor) do(ctx context.Context, ev Event) (Snapshot, error) {
	req := request{ev: ev, reply: make(chan reply, 1)}
	select {
	case a.inbox <- req:
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case <-a.done:
		return Snapshot{}, ErrClosed
	}
	select {
	case r := <-req.reply:
		return r.snap, r.err
	case <-ctx.Done():
		return Snapshot{}, ctx.Err()
	case <-a.done:
		return Snapshot{}, ErrClosed
	}
}

// watch registers a subscriber. The channel receives the current state first,
// then every accepted change, and is closed when cancel is called, when the
// subscriber falls behind, or when the game shuts down.
func (a *actor) watch(ctx context.Context) (<-chan Snapshot, func(), error) {
	s := &subscriber{ch: make(chan Snapshot, subscriberBuffer)}
	select {
	case a.subscribe <- s:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	case <-a.done:
		return nil, nil, ErrClosed
	}
	cancel := func() {
		select {
		case a.unsubscribe <- s:
		case <-a.done:
		}
	}
	return s.ch, cancel, nil
}

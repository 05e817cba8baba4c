package game

import (
	"fmt"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/internal/network"
	"github.com/Faultbox/midgard-nav/internal/network/packets"
)

// hitsToKill is how many server ticks of continuous attack a monster takes.
const hitsToKill = 3

type eventKind int

const (
	eventAction eventKind = iota // the server confirmed an action
	eventDied                    // a being died
)

type serverEvent struct {
	kind   eventKind
	action entity.Action
	being  uint32
}

// loopback plays the map server for one bot. It accepts requests through
// Send, walks the authoritative position one tile per tick and reports
// it back to the client as ZC_NOTIFY_PLAYERMOVE.
type loopback struct {
	tm     *world.TileMap
	beings *entity.Manager
	client *network.Client

	pos     world.TilePosition
	path    world.Path
	lockOn  uint32
	hits    map[uint32]int
	nextID  uint32
	events  []serverEvent
	elapsed uint32

	requests map[uint16]int
	walked   int
	attacks  int
	kills    int
	pickups  int
}

func newLoopback(tm *world.TileMap, beings *entity.Manager, client *network.Client, start world.TilePosition) *loopback {
	return &loopback{
		tm:       tm,
		beings:   beings,
		client:   client,
		pos:      start,
		hits:     make(map[uint32]int),
		nextID:   2_000_000,
		requests: make(map[uint16]int),
	}
}

// Send receives one encoded client packet.
func (l *loopback) Send(data []byte) error {
	id := packets.ID(data)
	l.requests[id]++

	switch id {
	case packets.CZ_REQUEST_MOVE:
		req := packets.DecodeMoveRequest(data)
		if req == nil {
			return fmt.Errorf("%w: move request", network.ErrShortPacket)
		}
		l.path = l.tm.FindPath(l.pos, world.Tile(req.X, req.Y), world.WalkMaskPlayer, 0)

	case packets.CZ_REQUEST_ACT:
		act := packets.DecodeRequestAct(data)
		if act == nil {
			return fmt.Errorf("%w: act request", network.ErrShortPacket)
		}
		switch act.Action {
		case packets.ActSit:
			l.events = append(l.events, serverEvent{kind: eventAction, action: entity.ActionSit})
		case packets.ActStand:
			l.events = append(l.events, serverEvent{kind: eventAction, action: entity.ActionStand})
		case packets.ActAttack:
			l.attacks++
			l.hit(act.TargetID)
		case packets.ActAttackContinuous:
			l.attacks++
			l.lockOn = act.TargetID
			l.hit(act.TargetID)
		}

	case packets.CZ_CANCEL_LOCKON:
		l.lockOn = 0

	case packets.CZ_ITEM_PICKUP:
		req := packets.DecodeItemPickup(data)
		if req == nil {
			return fmt.Errorf("%w: pickup request", network.ErrShortPacket)
		}
		item := l.beings.Get(req.ItemID)
		if item != nil && item.Type == entity.TypeItem && world.Chebyshev(l.pos, item.Tile) <= 2 {
			l.beings.Remove(item.ID)
			l.pickups++
		}
	}
	return nil
}

// tick advances the server by one step and reports whether the player
// moved.
func (l *loopback) tick() (bool, error) {
	l.elapsed++
	if l.lockOn != 0 {
		l.hit(l.lockOn)
	}

	next, ok := l.path.Front()
	if !ok {
		return false, nil
	}
	l.path.PopFront()
	prev := l.pos
	l.pos = next
	l.walked++

	move := &packets.PlayerMove{
		StartTime: l.elapsed,
		SrcX:      prev.X,
		SrcY:      prev.Y,
		DstX:      next.X,
		DstY:      next.Y,
	}
	if err := l.client.Feed(move.Encode()); err != nil {
		return true, err
	}
	return true, nil
}

// hit lands one attack on id when it is a live monster within reach. The
// monster dies after hitsToKill hits and drops an item.
func (l *loopback) hit(id uint32) {
	b := l.beings.Get(id)
	if b == nil || b.Type != entity.TypeMonster || !b.IsAlive() {
		l.lockOn = 0
		return
	}
	if world.Chebyshev(l.pos, b.Tile) > 2 {
		return
	}
	l.hits[id]++
	if l.hits[id] < hitsToKill {
		return
	}

	b.Action = entity.ActionDead
	l.lockOn = 0
	l.kills++
	l.events = append(l.events, serverEvent{kind: eventDied, being: id})

	l.nextID++
	l.beings.Add(entity.NewBeing(l.nextID, entity.TypeItem, "loot", b.Tile))
}

// drain returns and clears the pending events.
func (l *loopback) drain() []serverEvent {
	ev := l.events
	l.events = nil
	return ev
}

// moving reports whether the server still has steps queued.
func (l *loopback) moving() bool { return !l.path.Empty() }

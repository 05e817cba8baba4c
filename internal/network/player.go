package network

import (
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-nav/internal/game/entity"
	"github.com/Faultbox/midgard-nav/internal/game/player"
	"github.com/Faultbox/midgard-nav/internal/game/world"
	"github.com/Faultbox/midgard-nav/internal/logger"
	"github.com/Faultbox/midgard-nav/internal/network/packets"
)

// Sender writes encoded packets. *Client is the usual implementation.
type Sender interface {
	Send(data []byte) error
}

// PlayerSender turns player requests into map-server packets. Requests
// are fire-and-forget: a failed send is logged and dropped.
type PlayerSender struct {
	out Sender
	log *zap.Logger
}

var _ player.Handler = (*PlayerSender)(nil)

// NewPlayerSender creates a sender; a nil logger uses the global one.
func NewPlayerSender(out Sender, log *zap.Logger) *PlayerSender {
	if log == nil {
		log = logger.Named("network")
	}
	return &PlayerSender{out: out, log: log}
}

func (s *PlayerSender) send(what string, data []byte) {
	if err := s.out.Send(data); err != nil {
		s.log.Warn("send failed", zap.String("request", what), zap.Error(err))
	}
}

// SetDestination sends CZ_REQUEST_MOVE.
func (s *PlayerSender) SetDestination(x, y int, dir entity.Direction) {
	pkt := &packets.MoveRequest{PacketID: packets.CZ_REQUEST_MOVE, Dir: uint8(dir.Index())}
	pkt.SetDestination(x, y)
	s.send("move", pkt.Encode())
}

// SetDirection sends CZ_CHANGE_DIR.
func (s *PlayerSender) SetDirection(dir entity.Direction) {
	pkt := &packets.ChangeDir{PacketID: packets.CZ_CHANGE_DIR, Dir: uint8(dir.Index())}
	s.send("change dir", pkt.Encode())
}

// Attack sends CZ_REQUEST_ACT; serverSide asks the server to keep
// attacking on its own.
func (s *PlayerSender) Attack(id uint32, serverSide bool) {
	action := packets.ActAttack
	if serverSide {
		action = packets.ActAttackContinuous
	}
	s.send("attack", (&packets.RequestAct{PacketID: packets.CZ_REQUEST_ACT, TargetID: id, Action: action}).Encode())
}

// StopAttack sends CZ_CANCEL_LOCKON.
func (s *PlayerSender) StopAttack() {
	s.send("stop attack", (&packets.CancelLockOn{PacketID: packets.CZ_CANCEL_LOCKON}).Encode())
}

// ChangeAction sends sit and stand requests; other actions have no
// request of their own.
func (s *PlayerSender) ChangeAction(a entity.Action) {
	var action uint8
	switch a {
	case entity.ActionSit:
		action = packets.ActSit
	case entity.ActionStand:
		action = packets.ActStand
	default:
		s.log.Debug("no request for action", zap.Stringer("action", a))
		return
	}
	s.send("change action", (&packets.RequestAct{PacketID: packets.CZ_REQUEST_ACT, Action: action}).Encode())
}

// Emote sends CZ_REQ_EMOTION for the 1-based emote id.
func (s *PlayerSender) Emote(id int) {
	if id < 1 || id > 256 {
		return
	}
	s.send("emote", (&packets.Emotion{PacketID: packets.CZ_REQ_EMOTION, Emote: uint8(id - 1)}).Encode())
}

// PickUp sends CZ_ITEM_PICKUP.
func (s *PlayerSender) PickUp(itemID uint32) {
	s.send("pick up", (&packets.ItemPickup{PacketID: packets.CZ_ITEM_PICKUP, ItemID: itemID}).Encode())
}

// PositionSink receives server-confirmed positions.
type PositionSink interface {
	ID() uint32
	SetServerPosition(t world.TilePosition)
}

// BindPlayer routes the server's position packets for p to it.
func BindPlayer(c *Client, p PositionSink) {
	c.RegisterHandler(packets.ZC_NOTIFY_PLAYERMOVE, func(data []byte) error {
		move := packets.DecodePlayerMove(data)
		if move == nil {
			return errShort(packets.ZC_NOTIFY_PLAYERMOVE, data)
		}
		p.SetServerPosition(world.Tile(move.DstX, move.DstY))
		return nil
	})
	c.RegisterHandler(packets.ZC_STOPMOVE, func(data []byte) error {
		stop := packets.DecodeStopMove(data)
		if stop == nil {
			return errShort(packets.ZC_STOPMOVE, data)
		}
		if stop.BeingID == p.ID() {
			p.SetServerPosition(world.Tile(int(stop.X), int(stop.Y)))
		}
		return nil
	})
}

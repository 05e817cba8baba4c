// Package packets defines the map-server packets the movement core sends
// and the position updates it receives.
package packets

import "encoding/binary"

// Packet IDs for map server
const (
	// Client -> Map Server
	CZ_REQUEST_MOVE  uint16 = 0x0085 // Walk to a tile
	CZ_REQUEST_ACT   uint16 = 0x0089 // Attack, sit, stand
	CZ_CHANGE_DIR    uint16 = 0x009B // Turn
	CZ_ITEM_PICKUP   uint16 = 0x009F // Pick up floor item
	CZ_REQ_EMOTION   uint16 = 0x00BF // Show emote
	CZ_CANCEL_LOCKON uint16 = 0x0118 // Stop continuous attack

	// Map Server -> Client
	ZC_NOTIFY_PLAYERMOVE uint16 = 0x0087 // Own walk accepted
	ZC_STOPMOVE          uint16 = 0x0088 // Position correction
)

// Actions for CZ_REQUEST_ACT.
const (
	ActAttack           uint8 = 0
	ActSit              uint8 = 2
	ActStand            uint8 = 3
	ActAttackContinuous uint8 = 7
)

var lengths = map[uint16]int{
	CZ_REQUEST_MOVE:      5,
	CZ_REQUEST_ACT:       7,
	CZ_CHANGE_DIR:        5,
	CZ_ITEM_PICKUP:       6,
	CZ_REQ_EMOTION:       3,
	CZ_CANCEL_LOCKON:     2,
	ZC_NOTIFY_PLAYERMOVE: 12,
	ZC_STOPMOVE:          10,
}

// Length returns the fixed length of a known packet.
func Length(id uint16) (int, bool) {
	n, ok := lengths[id]
	return n, ok
}

// ID reads the packet ID of an encoded packet, 0 when too short.
func ID(data []byte) uint16 {
	if len(data) < 2 {
		return 0
	}
	return binary.LittleEndian.Uint16(data)
}

// Position encoding in RO packs x and y into 10 bits each:
//
//	byte0 = x >> 2
//	byte1 = ((x & 3) << 6) | (y >> 4)
//	byte2 = ((y & 15) << 4) | dir
func putPosition(buf []byte, x, y int, dir uint8) {
	buf[0] = byte(x >> 2)
	buf[1] = byte((x&3)<<6 | (y>>4)&0x3F)
	buf[2] = byte((y&15)<<4 | int(dir&0x0F))
}

func readPosition(buf []byte) (x, y int, dir uint8) {
	x = int(buf[0])<<2 | int(buf[1]>>6)
	y = int(buf[1]&0x3F)<<4 | int(buf[2]>>4)
	dir = buf[2] & 0x0F
	return x, y, dir
}

// Move data packs source and destination into 6 bytes.
func putMoveData(buf []byte, x0, y0, x1, y1 int) {
	buf[0] = byte(x0 >> 2)
	buf[1] = byte(x0<<6 | (y0>>4)&0x3F)
	buf[2] = byte(y0<<4 | (x1>>6)&0x0F)
	buf[3] = byte(x1<<2 | (y1>>8)&0x03)
	buf[4] = byte(y1)
	buf[5] = 8<<4 | 8
}

func readMoveData(buf []byte) (x0, y0, x1, y1 int) {
	x0 = int(buf[0])<<2 | int(buf[1]>>6)
	y0 = int(buf[1]&0x3F)<<4 | int(buf[2]>>4)
	x1 = int(buf[2]&0x0F)<<6 | int(buf[3]>>2)
	y1 = int(buf[3]&0x03)<<8 | int(buf[4])
	return x0, y0, x1, y1
}

// MoveRequest (CZ_REQUEST_MOVE 0x0085)
type MoveRequest struct {
	PacketID uint16 // 0x0085
	X, Y     int
	Dir      uint8
}

// SetDestination sets the target tile.
func (p *MoveRequest) SetDestination(x, y int) {
	p.X, p.Y = x, y
}

// Size returns packet size.
func (p *MoveRequest) Size() int { return 5 }

// Encode encodes the packet.
func (p *MoveRequest) Encode() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint16(buf, CZ_REQUEST_MOVE)
	putPosition(buf[2:], p.X, p.Y, p.Dir)
	return buf
}

// DecodeMoveRequest parses CZ_REQUEST_MOVE, as a server would.
func DecodeMoveRequest(data []byte) *MoveRequest {
	if len(data) < 5 || ID(data) != CZ_REQUEST_MOVE {
		return nil
	}
	x, y, dir := readPosition(data[2:])
	return &MoveRequest{PacketID: CZ_REQUEST_MOVE, X: x, Y: y, Dir: dir}
}

// ChangeDir (CZ_CHANGE_DIR 0x009B)
type ChangeDir struct {
	PacketID uint16 // 0x009B
	HeadDir  uint16
	Dir      uint8 // 0 = south, counter-clockwise to 7 = south-east
}

// Size returns packet size.
func (p *ChangeDir) Size() int { return 5 }

// Encode encodes the packet.
func (p *ChangeDir) Encode() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint16(buf, CZ_CHANGE_DIR)
	binary.LittleEndian.PutUint16(buf[2:], p.HeadDir)
	buf[4] = p.Dir
	return buf
}

// RequestAct (CZ_REQUEST_ACT 0x0089)
type RequestAct struct {
	PacketID uint16 // 0x0089
	TargetID uint32
	Action   uint8
}

// Size returns packet size.
func (p *RequestAct) Size() int { return 7 }

// Encode encodes the packet.
func (p *RequestAct) Encode() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint16(buf, CZ_REQUEST_ACT)
	binary.LittleEndian.PutUint32(buf[2:], p.TargetID)
	buf[6] = p.Action
	return buf
}

// DecodeRequestAct parses CZ_REQUEST_ACT, as a server would.
func DecodeRequestAct(data []byte) *RequestAct {
	if len(data) < 7 || ID(data) != CZ_REQUEST_ACT {
		return nil
	}
	return &RequestAct{
		PacketID: CZ_REQUEST_ACT,
		TargetID: binary.LittleEndian.Uint32(data[2:]),
		Action:   data[6],
	}
}

// CancelLockOn (CZ_CANCEL_LOCKON 0x0118)
type CancelLockOn struct {
	PacketID uint16 // 0x0118
}

// Size returns packet size.
func (p *CancelLockOn) Size() int { return 2 }

// Encode encodes the packet.
func (p *CancelLockOn) Encode() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint16(buf, CZ_CANCEL_LOCKON)
	return buf
}

// Emotion (CZ_REQ_EMOTION 0x00BF)
type Emotion struct {
	PacketID uint16 // 0x00BF
	Emote    uint8  // zero-based on the wire
}

// Size returns packet size.
func (p *Emotion) Size() int { return 3 }

// Encode encodes the packet.
func (p *Emotion) Encode() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint16(buf, CZ_REQ_EMOTION)
	buf[2] = p.Emote
	return buf
}

// ItemPickup (CZ_ITEM_PICKUP 0x009F)
type ItemPickup struct {
	PacketID uint16 // 0x009F
	ItemID   uint32
}

// Size returns packet size.
func (p *ItemPickup) Size() int { return 6 }

// Encode encodes the packet.
func (p *ItemPickup) Encode() []byte {
	buf := make([]byte, p.Size())
	binary.LittleEndian.PutUint16(buf, CZ_ITEM_PICKUP)
	binary.LittleEndian.PutUint32(buf[2:], p.ItemID)
	return buf
}

// DecodeItemPickup parses CZ_ITEM_PICKUP, as a server would.
func DecodeItemPickup(data []byte) *ItemPickup {
	if len(data) < 6 || ID(data) != CZ_ITEM_PICKUP {
		return nil
	}
	return &ItemPickup{PacketID: CZ_ITEM_PICKUP, ItemID: binary.LittleEndian.Uint32(data[2:])}
}

// PlayerMove (ZC_NOTIFY_PLAYERMOVE 0x0087)
type PlayerMove struct {
	PacketID   uint16
	StartTime  uint32
	SrcX, SrcY int
	DstX, DstY int
}

// Encode encodes the packet, as a server would.
func (p *PlayerMove) Encode() []byte {
	buf := make([]byte, 12)
	binary.LittleEndian.PutUint16(buf, ZC_NOTIFY_PLAYERMOVE)
	binary.LittleEndian.PutUint32(buf[2:], p.StartTime)
	putMoveData(buf[6:], p.SrcX, p.SrcY, p.DstX, p.DstY)
	return buf
}

// DecodePlayerMove parses ZC_NOTIFY_PLAYERMOVE.
func DecodePlayerMove(data []byte) *PlayerMove {
	if len(data) < 12 || ID(data) != ZC_NOTIFY_PLAYERMOVE {
		return nil
	}
	p := &PlayerMove{
		PacketID:  ZC_NOTIFY_PLAYERMOVE,
		StartTime: binary.LittleEndian.Uint32(data[2:]),
	}
	p.SrcX, p.SrcY, p.DstX, p.DstY = readMoveData(data[6:])
	return p
}

// StopMove (ZC_STOPMOVE 0x0088)
type StopMove struct {
	PacketID uint16
	BeingID  uint32
	X, Y     uint16
}

// Encode encodes the packet, as a server would.
func (p *StopMove) Encode() []byte {
	buf := make([]byte, 10)
	binary.LittleEndian.PutUint16(buf, ZC_STOPMOVE)
	binary.LittleEndian.PutUint32(buf[2:], p.BeingID)
	binary.LittleEndian.PutUint16(buf[6:], p.X)
	binary.LittleEndian.PutUint16(buf[8:], p.Y)
	return buf
}

// DecodeStopMove parses ZC_STOPMOVE.
func DecodeStopMove(data []byte) *StopMove {
	if len(data) < 10 || ID(data) != ZC_STOPMOVE {
		return nil
	}
	return &StopMove{
		PacketID: ZC_STOPMOVE,
		BeingID:  binary.LittleEndian.Uint32(data[2:]),
		X:        binary.LittleEndian.Uint16(data[6:]),
		Y:        binary.LittleEndian.Uint16(data[8:]),
	}
}

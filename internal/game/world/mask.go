package world

import "github.com/Faultbox/midgard-nav/pkg/formats"

// BlockMask is a set of terrain/feature categories. A walker treats a tile
// as impassable when the tile's mask intersects the walker's mask.
type BlockMask uint8

const (
	BlockNone        BlockMask = 0
	BlockWall        BlockMask = 0x80
	BlockAir         BlockMask = 0x04
	BlockWater       BlockMask = 0x08
	BlockGround      BlockMask = 0x10
	BlockGroundTop   BlockMask = 0x20
	BlockPlayerWall  BlockMask = 0x40
	BlockMonsterWall BlockMask = 0x02
)

// Walk masks for the common movement types.
const (
	WalkMaskPlayer  = BlockWall | BlockWater | BlockAir | BlockPlayerWall
	WalkMaskMonster = BlockWall | BlockWater | BlockAir | BlockMonsterWall
	WalkMaskFlyer   = BlockWall | BlockAir
	WalkMaskSwimmer = BlockWall | BlockGround | BlockAir
)

// Has reports whether any bit of other is set in m.
func (m BlockMask) Has(other BlockMask) bool {
	return m&other != 0
}

// maskForCell converts a GAT cell type into block bits.
func maskForCell(t formats.GATCellType) BlockMask {
	switch {
	case t.IsWall():
		return BlockWall
	case t.IsDeepWater():
		return BlockWater
	default:
		// Shallow water counts as ground.
		return BlockGround
	}
}

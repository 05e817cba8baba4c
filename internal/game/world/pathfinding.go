package world

import (
	"container/heap"
)

// pathNode represents a node in the A* search.
type pathNode struct {
	tile   TilePosition
	g      float32 // Cost from start
	h      float32 // Heuristic (estimated cost to goal)
	f      float32 // Total cost (g + h)
	parent *pathNode
	index  int // Index in heap
}

// pathHeap implements a priority queue for A*.
type pathHeap []*pathNode

func (h pathHeap) Len() int           { return len(h) }
func (h pathHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h pathHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *pathHeap) Push(x interface{}) {
	node := x.(*pathNode)
	node.index = len(*h)
	*h = append(*h, node)
}

func (h *pathHeap) Pop() interface{} {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// neighbours in RO direction order: S, SW, W, NW, N, NE, E, SE.
var neighbours = [8]TilePosition{
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
}

const (
	straightCost = float32(1.0)
	diagonalCost = float32(1.414)
)

// FindPath finds a path from start to goal for a walker with the given
// block mask. The returned path excludes start and ends at goal. It is
// empty when start == goal, when goal is unreachable, or when every route
// costs more than maxCost tiles (maxCost <= 0 disables the cap).
func (m *TileMap) FindPath(start, goal TilePosition, mask BlockMask, maxCost int) Path {
	if m == nil || start == goal {
		return nil
	}
	if !m.InBounds(start.X, start.Y) || !m.IsWalkable(goal.X, goal.Y, mask) {
		return nil
	}

	limit := float32(maxCost)
	openSet := &pathHeap{}
	heap.Init(openSet)

	closed := make(map[int]bool)
	nodes := make(map[int]*pathNode)

	first := &pathNode{tile: start, h: heuristic(start, goal)}
	first.f = first.h
	heap.Push(openSet, first)
	nodes[m.index(start.X, start.Y)] = first

	maxIterations := m.width * m.height
	for iterations := 0; openSet.Len() > 0 && iterations < maxIterations; iterations++ {
		current := heap.Pop(openSet).(*pathNode)
		if current.tile == goal {
			return reconstructPath(current)
		}
		closed[m.index(current.tile.X, current.tile.Y)] = true

		for i, d := range neighbours {
			next := current.tile.Add(d.X, d.Y)
			if !m.IsWalkable(next.X, next.Y, mask) {
				continue
			}
			key := m.index(next.X, next.Y)
			if closed[key] {
				continue
			}

			cost := straightCost
			if i%2 == 1 {
				// No corner cutting: both orthogonal neighbours must be open.
				if !m.IsWalkable(current.tile.X+d.X, current.tile.Y, mask) ||
					!m.IsWalkable(current.tile.X, current.tile.Y+d.Y, mask) {
					continue
				}
				cost = diagonalCost
			}

			g := current.g + cost
			if maxCost > 0 && g > limit {
				continue
			}

			node, exists := nodes[key]
			if !exists {
				node = &pathNode{tile: next, g: g, h: heuristic(next, goal), parent: current}
				node.f = node.g + node.h
				nodes[key] = node
				heap.Push(openSet, node)
			} else if g < node.g {
				node.g = g
				node.f = node.g + node.h
				node.parent = current
				heap.Fix(openSet, node.index)
			}
		}
	}

	return nil
}

// FindPathFromPixel is FindPath starting from the tile under a pixel position.
func (m *TileMap) FindPathFromPixel(from PixelPosition, goal TilePosition, mask BlockMask, maxCost int) Path {
	return m.FindPath(from.Tile(), goal, mask, maxCost)
}

// heuristic is the octile distance.
func heuristic(a, b TilePosition) float32 {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	if dx < dy {
		return float32(dx)*diagonalCost + float32(dy-dx)
	}
	return float32(dy)*diagonalCost + float32(dx-dy)
}

// reconstructPath walks parents back to the start, dropping the start tile.
func reconstructPath(node *pathNode) Path {
	var path Path
	for ; node != nil && node.parent != nil; node = node.parent {
		path = append(path, node.tile)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

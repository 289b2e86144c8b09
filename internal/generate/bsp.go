package generate

import (
	"math/rand"

	"bsp-dungeon/internal/gamemap"
)

// Node is one region of the partition tree. A node is either terminal,
// holding a Room once rooms are placed, or internal with exactly two
// children and the hall segments that join them.
type Node struct {
	gamemap.Rect
	Left, Right *Node
	Room        *gamemap.Rect
	Halls       []gamemap.Rect
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return n.Left == nil }

// Walk visits n and every descendant in pre-order, left before right.
func (n *Node) Walk(fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	n.Left.Walk(fn)
	n.Right.Walk(fn)
}

// Leaves returns the terminal nodes in left-to-right order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.IsLeaf() {
			out = append(out, c)
		}
	})
	return out
}

// Depth returns the number of levels in the tree rooted at n.
func (n *Node) Depth() int {
	if n == nil {
		return 0
	}
	return 1 + max(n.Left.Depth(), n.Right.Depth())
}

// split divides the node into two children, returning false when the node is
// already split or too small.
func (n *Node) split(cfg *Config, rng *rand.Rand) bool {
	if !n.IsLeaf() {
		return false
	}
	// Cut across the longer axis once it is 25% longer than the other.
	splitH := rng.Intn(2) == 0
	if n.W > n.H && float64(n.W)/float64(n.H) >= 1.25 {
		splitH = false
	} else if n.H > n.W && float64(n.H)/float64(n.W) >= 1.25 {
		splitH = true
	}

	hi := n.W - cfg.MinLeafSize
	if splitH {
		hi = n.H - cfg.MinLeafSize
	}
	if hi <= cfg.MinLeafSize {
		return false // too small to split
	}
	lo := cfg.MinLeafSize
	at := lo + rng.Intn(hi-lo+1)

	if splitH {
		n.Left = &Node{Rect: gamemap.Rect{X: n.X, Y: n.Y, W: n.W, H: at}}
		n.Right = &Node{Rect: gamemap.Rect{X: n.X, Y: n.Y + at, W: n.W, H: n.H - at}}
	} else {
		n.Left = &Node{Rect: gamemap.Rect{X: n.X, Y: n.Y, W: at, H: n.H}}
		n.Right = &Node{Rect: gamemap.Rect{X: n.X + at, Y: n.Y, W: n.W - at, H: n.H}}
	}
	return true
}

// Build partitions a cfg.Width x cfg.Height area. Terminal nodes are split in
// breadth-first passes until a whole pass splits nothing.
func Build(cfg *Config) *Node {
	rng := cfg.rng()
	root := &Node{Rect: gamemap.Rect{W: cfg.Width, H: cfg.Height}}

	leaves := []*Node{root}
	splitAny := true
	for splitAny {
		splitAny = false
		var next []*Node
		for _, leaf := range leaves {
			if !leaf.IsLeaf() {
				next = append(next, leaf.Left, leaf.Right)
				continue
			}
			if leaf.W > cfg.MaxLeafSize || leaf.H > cfg.MaxLeafSize ||
				rng.Float64() > 1-cfg.SplitChance {
				if leaf.split(cfg, rng) {
					next = append(next, leaf.Left, leaf.Right)
					splitAny = true
					continue
				}
			}
			next = append(next, leaf)
		}
		leaves = next
	}
	return root
}

// CreateRooms places a room in every terminal node below n and joins the
// children of every internal node with halls, bottom-up. Nodes that already
// hold a room are left alone.
func CreateRooms(n *Node, cfg *Config) {
	createRooms(n, cfg, cfg.rng())
}

func createRooms(n *Node, cfg *Config, rng *rand.Rand) {
	if n.Room != nil {
		return
	}
	if !n.IsLeaf() {
		createRooms(n.Left, cfg, rng)
		createRooms(n.Right, cfg, rng)
		createHalls(n, rng)
		return
	}
	minW := min(cfg.MinRoomSize, n.W)
	minH := min(cfg.MinRoomSize, n.H)
	rw := minW + rng.Intn(n.W-minW+1)
	rh := minH + rng.Intn(n.H-minH+1)
	rx := n.X + rng.Intn(n.W-rw+1)
	ry := n.Y + rng.Intn(n.H-rh+1)
	n.Room = &gamemap.Rect{X: rx, Y: ry, W: rw, H: rh}
}

// room returns a room from n or its descendants. When both subtrees offer
// one, the choice is a coin flip.
func (n *Node) room(rng *rand.Rand) *gamemap.Rect {
	if n == nil {
		return nil
	}
	if n.Room != nil {
		return n.Room
	}
	lRoom := n.Left.room(rng)
	rRoom := n.Right.room(rng)
	if lRoom == nil {
		return rRoom
	}
	if rRoom == nil {
		return lRoom
	}
	if rng.Intn(2) == 0 {
		return lRoom
	}
	return rRoom
}

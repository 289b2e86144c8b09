package generate

import "bsp-dungeon/internal/gamemap"

// Dungeon is the result of one generation call.
type Dungeon struct {
	Root *Node
	Raw  *gamemap.Grid // wall/floor only
	Grid *gamemap.Grid // with wall glyphs
	Seed int64

	Markers Markers
}

// Generate runs the full pipeline: partition, rooms and halls, rasterize,
// resolve wall glyphs, then place markers.
func Generate(cfg Config) (*Dungeon, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	root := Build(&cfg)
	CreateRooms(root, &cfg)
	raw := Rasterize(root, cfg.Width, cfg.Height)
	d := &Dungeon{
		Root: root,
		Raw:  raw,
		Grid: FormatMap(raw),
		Seed: cfg.Seed,
	}
	d.Markers = Populate(d.Rooms(), cfg.Treasure, cfg.rng())
	return d, nil
}

// Rooms returns every room in tree order.
func (d *Dungeon) Rooms() []gamemap.Rect {
	var rooms []gamemap.Rect
	d.Root.Walk(func(n *Node) {
		if n.Room != nil {
			rooms = append(rooms, *n.Room)
		}
	})
	return rooms
}

// Halls returns every hall segment in tree order.
func (d *Dungeon) Halls() []gamemap.Rect {
	var halls []gamemap.Rect
	d.Root.Walk(func(n *Node) {
		halls = append(halls, n.Halls...)
	})
	return halls
}

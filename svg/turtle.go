package svg

import (
	"fmt"
	"strings"
)

// Heading is one of the four cardinal directions of the track turtle.
// Coordinates are screen-style: x grows east, y grows south.
type Heading int

const (
	East Heading = iota
	South
	West
	North
)

func (h Heading) vector() (dx, dy int) {
	switch h {
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, -1
	}
}

func (h Heading) left() Heading  { return (h + 3) % 4 }
func (h Heading) right() Heading { return (h + 1) % 4 }

// sweepFlags holds the SVG arc sweep value for each of the eight legal
// heading transitions. Clockwise turns sweep positively in SVG's y-down
// coordinate system.
var sweepFlags = map[[2]Heading]int{
	{East, South}: 1,
	{South, West}: 1,
	{West, North}: 1,
	{North, East}: 1,
	{East, North}: 0,
	{North, West}: 0,
	{West, South}: 0,
	{South, East}: 0,
}

type opKind byte

const (
	opLine opKind = iota
	opArc
)

type pathOp struct {
	kind  opKind
	x, y  int // endpoint, grid units
	sweep int
}

// Turtle accumulates a track path in grid units: a position, a heading,
// forward motion, and 90 degree turns. A turn does not pivot in place; it
// advances 1 unit in the old heading and 1 unit in the new heading,
// connected by a quarter-circle arc. Any route planned as a total distance
// therefore loses 2 units of straight run per turn.
type Turtle struct {
	startX, startY int
	x, y           int
	heading        Heading
	ops            []pathOp
}

// Start places a new turtle at (x, y) facing the given heading.
func Start(x, y int, heading Heading) *Turtle {
	return &Turtle{startX: x, startY: y, x: x, y: y, heading: heading}
}

// Forward extends the track by the given number of grid units along the
// current heading. Zero is a no-op; a negative distance is a routing bug.
func (t *Turtle) Forward(units int) *Turtle {
	if units < 0 {
		panic(fmt.Sprintf("svg: negative forward %d", units))
	}
	if units == 0 {
		return t
	}
	dx, dy := t.heading.vector()
	t.x += dx * units
	t.y += dy * units
	t.ops = append(t.ops, pathOp{kind: opLine, x: t.x, y: t.y})
	return t
}

func (t *Turtle) TurnLeft() *Turtle  { return t.turn(t.heading.left()) }
func (t *Turtle) TurnRight() *Turtle { return t.turn(t.heading.right()) }

func (t *Turtle) turn(to Heading) *Turtle {
	sweep, ok := sweepFlags[[2]Heading{t.heading, to}]
	if !ok {
		panic("svg: illegal turn")
	}
	dx0, dy0 := t.heading.vector()
	dx1, dy1 := to.vector()
	t.x += dx0 + dx1
	t.y += dy0 + dy1
	t.ops = append(t.ops, pathOp{kind: opArc, x: t.x, y: t.y, sweep: sweep})
	t.heading = to
	return t
}

// At reports the turtle's current grid position.
func (t *Turtle) At() (x, y int) { return t.x, t.y }

// Finish converts the accumulated route to SVG path data. This is the only
// place grid units become pixels: every coordinate is multiplied by grid
// here and nowhere earlier. Arc radii equal one grid unit.
func (t *Turtle) Finish(grid int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "M %d %d", t.startX*grid, t.startY*grid)
	for _, op := range t.ops {
		switch op.kind {
		case opLine:
			fmt.Fprintf(&sb, " L %d %d", op.x*grid, op.y*grid)
		case opArc:
			fmt.Fprintf(&sb, " A %d %d 0 0 %d %d %d", grid, grid, op.sweep, op.x*grid, op.y*grid)
		}
	}
	return sb.String()
}

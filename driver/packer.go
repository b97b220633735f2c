package driver

// Packer is a skyline rectangle packer with a 1D node list, shared by
// the glyph and icon atlas libraries (spec §4.5's default allocator).
// Each node records the current skyline height over one column range;
// the list starts as one full-width node and never holds more nodes
// than the atlas is wide.
type Packer struct {
	width, height int
	nodes         []skylineNode
}

type skylineNode struct {
	x, width int
	y        int
}

// NewPacker creates a packer for an atlas of the given dimensions,
// starting with a single node spanning the full width at height 0.
func NewPacker(width, height int) *Packer {
	return &Packer{
		width:  width,
		height: height,
		nodes:  []skylineNode{{x: 0, width: width, y: 0}},
	}
}

// Allocate reserves a w x h rectangle, returning its top-left corner
// and ok=false if no placement fits within the atlas's bounds.
func (p *Packer) Allocate(w, h int) (x, y int, ok bool) {
	bestIdx := -1
	bestY := p.height + 1
	bestWaste := 0
	for i := range p.nodes {
		fitY, fits := p.fit(i, w)
		if !fits {
			continue
		}
		if fitY+h > p.height {
			continue
		}
		waste := p.waste(i, w, fitY)
		if fitY < bestY || (fitY == bestY && waste < bestWaste) {
			bestIdx, bestY, bestWaste = i, fitY, waste
		}
	}
	if bestIdx < 0 {
		return 0, 0, false
	}
	x = p.nodes[bestIdx].x
	y = bestY
	p.insert(x, y, w, h)
	return x, y, true
}

// fit reports the y a w-wide rectangle would land at if placed
// starting at node i's x, scanning forward over however many nodes it
// spans, or ok=false if it runs past the atlas width.
func (p *Packer) fit(i, w int) (y int, ok bool) {
	x := p.nodes[i].x
	if x+w > p.width {
		return 0, false
	}
	remaining := w
	y = 0
	for j := i; j < len(p.nodes) && remaining > 0; j++ {
		if p.nodes[j].y > y {
			y = p.nodes[j].y
		}
		remaining -= p.nodes[j].width
	}
	return y, true
}

// waste estimates the wasted area under a w-wide placement at height
// y starting at node i, used to break ties among equal-height fits.
func (p *Packer) waste(i, w, y int) int {
	remaining := w
	total := 0
	for j := i; j < len(p.nodes) && remaining > 0; j++ {
		n := p.nodes[j]
		total += (y - n.y) * min(n.width, remaining)
		remaining -= n.width
	}
	return total
}

// insert replaces the skyline segment under [x, x+w) with a single
// node at height y+h, merging adjacent equal-height nodes afterward.
func (p *Packer) insert(x, y, w, h int) {
	newNode := skylineNode{x: x, width: w, y: y + h}
	var out []skylineNode
	inserted := false
	for _, n := range p.nodes {
		switch {
		case n.x+n.width <= x:
			out = append(out, n)
		case n.x >= x+w:
			if !inserted {
				out = append(out, newNode)
				inserted = true
			}
			out = append(out, n)
		default:
			// n overlaps the inserted range; clip or drop it.
			if n.x < x {
				out = append(out, skylineNode{x: n.x, width: x - n.x, y: n.y})
			}
			if !inserted {
				out = append(out, newNode)
				inserted = true
			}
			if n.x+n.width > x+w {
				out = append(out, skylineNode{x: x + w, width: n.x + n.width - (x + w), y: n.y})
			}
		}
	}
	if !inserted {
		out = append(out, newNode)
	}
	p.nodes = mergeSkyline(out)
}

func mergeSkyline(nodes []skylineNode) []skylineNode {
	out := nodes[:0:0]
	for _, n := range nodes {
		if len(out) > 0 {
			last := &out[len(out)-1]
			if last.y == n.y && last.x+last.width == n.x {
				last.width += n.width
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

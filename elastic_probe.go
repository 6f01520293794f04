package coll

import "math"

// probeRange returns the number of slots scanned by probe round depth:
// floor(ln(depth+2)^2) + 1. Widths grow logarithmically, so early rounds stay
// local and later rounds reach progressively (slowly) further.
func probeRange(depth int) int {
	l := math.Log(float64(depth + 2))
	return int(l*l) + 1
}

// roundFor returns the smallest round whose width covers width slots.
// Results beyond math.MaxInt32 are reported as math.MaxInt, which no table
// capacity reaches.
func roundFor(width int) int {
	if width <= probeRange(1) {
		return 1
	}
	e := math.Exp(math.Sqrt(float64(width-1))) - 2
	if e >= math.MaxInt32 {
		return math.MaxInt
	}
	d := max(int(e), 1)
	for d > 1 && probeRange(d-1) >= width {
		d--
	}
	for probeRange(d) < width {
		d++
	}
	return d
}

// probeSeq walks the slots of one key in probe order.
//
// Round depth scans slots (primary+i) mod capacity for i in [0, probeRange(depth)).
// Every round starts at primary, so a round only has to visit the slots its
// predecessor did not reach. Rounds run while depth < capacity; after the last
// one the sequence sweeps the rest of the table linearly, so every slot is
// reachable from every primary.
type probeSeq struct {
	primary  int
	capacity int
	offset   int // slots visited so far
	depth    int // current round, capacity once sweeping
	limit    int // width of the current round, clamped to capacity
}

func makeProbeSeq(hash uint64, capacity int) probeSeq {
	return probeSeq{
		primary:  int(hash % uint64(capacity)),
		capacity: capacity,
		depth:    1,
		limit:    min(probeRange(1), capacity),
	}
}

// next returns the next slot index, or false once every slot was visited.
func (p *probeSeq) next() (int, bool) {
	if p.offset >= p.capacity {
		return 0, false
	}
	if p.offset >= p.limit {
		p.advance()
	}
	idx := p.primary + p.offset
	if idx >= p.capacity {
		idx -= p.capacity
	}
	p.offset++
	return idx, true
}

func (p *probeSeq) advance() {
	if d := roundFor(p.offset + 1); d < p.capacity {
		p.depth = d
		p.limit = min(probeRange(d), p.capacity)
		return
	}
	p.depth = p.capacity
	p.limit = p.capacity
}

// sweeping reports whether the sequence has run out of rounds.
func (p *probeSeq) sweeping() bool {
	return p.depth >= p.capacity
}

package coll

import (
	"fmt"
	"strings"
)

// Stats returns statistics for the ElasticMap. It's an O(capacity)
// operation, so it should be used only for diagnostics or debugging
// purposes.
func (m *ElasticMap[K, V]) Stats() *ElasticStats {
	stats := &ElasticStats{
		Capacity:     len(m.table),
		Counter:      m.size,
		TotalGrowths: m.totalGrowths,
		TotalPurges:  m.totalPurges,
	}
	capacity := len(m.table)
	lastRound := 0
	if capacity > 1 {
		lastRound = probeRange(capacity - 1)
	}
	for i := range m.table {
		s := &m.table[i]
		switch s.state {
		case slotEmpty:
			stats.EmptySlots++
			continue
		case slotTombstone:
			stats.Tombstones++
			continue
		}
		stats.Size++
		primary := int(m.keyHash(m.seed, s.key) % uint64(capacity))
		offset := i - primary
		if offset < 0 {
			offset += capacity
		}
		stats.MaxProbeOffset = max(stats.MaxProbeOffset, offset)
		if offset >= lastRound {
			stats.SweepEntries++
			continue
		}
		stats.MaxProbeDepth = max(stats.MaxProbeDepth, roundFor(offset+1))
	}
	return stats
}

// ElasticStats is ElasticMap statistics.
//
// Warning: map statistics are intended to be used for diagnostic
// purposes, not for production code. This means that breaking changes
// may be introduced into this struct even between minor releases.
type ElasticStats struct {
	// Capacity is the number of slots in the table.
	Capacity int
	// Size is the number of live entries found by scanning the table.
	Size int
	// Counter is the live entry count maintained by Put and Remove.
	// It always equals Size unless an invariant is broken.
	Counter int
	// Tombstones is the number of deleted entries still holding a slot.
	Tombstones int
	// EmptySlots is the number of never-used slots.
	EmptySlots int
	// MaxProbeOffset is the longest distance, in slots, between a live
	// entry and its primary slot.
	MaxProbeOffset int
	// MaxProbeDepth is the deepest probe round that placed a live entry.
	MaxProbeDepth int
	// SweepEntries is the number of live entries placed by the linear
	// sweep that follows the last probe round.
	SweepEntries int
	// TotalGrowths is the number of times the table doubled.
	TotalGrowths uint32
	// TotalPurges is the number of same-capacity rehashes that dropped
	// tombstones.
	TotalPurges uint32
}

// LoadFactor returns Size/Capacity.
func (s *ElasticStats) LoadFactor() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Size) / float64(s.Capacity)
}

// ToString returns string representation of map stats.
func (s *ElasticStats) ToString() string {
	var sb strings.Builder
	sb.WriteString("ElasticStats{\n")
	sb.WriteString(fmt.Sprintf("Capacity:       %d\n", s.Capacity))
	sb.WriteString(fmt.Sprintf("Size:           %d\n", s.Size))
	sb.WriteString(fmt.Sprintf("Counter:        %d\n", s.Counter))
	sb.WriteString(fmt.Sprintf("Tombstones:     %d\n", s.Tombstones))
	sb.WriteString(fmt.Sprintf("EmptySlots:     %d\n", s.EmptySlots))
	sb.WriteString(fmt.Sprintf("MaxProbeOffset: %d\n", s.MaxProbeOffset))
	sb.WriteString(fmt.Sprintf("MaxProbeDepth:  %d\n", s.MaxProbeDepth))
	sb.WriteString(fmt.Sprintf("SweepEntries:   %d\n", s.SweepEntries))
	sb.WriteString(fmt.Sprintf("TotalGrowths:   %d\n", s.TotalGrowths))
	sb.WriteString(fmt.Sprintf("TotalPurges:    %d\n", s.TotalPurges))
	sb.WriteString("}\n")
	return sb.String()
}

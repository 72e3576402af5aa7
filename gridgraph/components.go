package gridgraph

// Regions finds all contiguous regions of passable cells (anything but Wall)
// under 4-directional adjacency. Regions are ordered by the CellID of their
// first cell; cells inside a region are in discovery order.
// Walls belong to no region.
//
// Time:   O(W·H·4).
// Memory: O(W·H) for seen flags and output.
func (gg *GridGraph) Regions() [][]*Cell {
	seen := make([]bool, len(gg.order))
	var regions [][]*Cell

	for _, c := range gg.order {
		if !c.Passable() || seen[c.id] {
			continue
		}
		// flood the region from c
		queue := []*Cell{c}
		seen[c.id] = true
		for qi := 0; qi < len(queue); qi++ {
			for _, n := range gg.adjacency[queue[qi].id] {
				if !n.Passable() || seen[n.id] {
					continue
				}
				seen[n.id] = true
				queue = append(queue, n)
			}
		}
		regions = append(regions, queue)
	}
	return regions
}

// RegionOf returns a label per CellID: the index into Regions() of the
// cell's region, or -1 for walls.
func (gg *GridGraph) RegionOf() []int {
	labels := make([]int, len(gg.order))
	for i := range labels {
		labels[i] = -1
	}
	for ri, region := range gg.Regions() {
		for _, c := range region {
			labels[c.id] = ri
		}
	}
	return labels
}

// SameRegion reports whether a and b are passable and connected through
// passable cells. It is a cheap reachability pre-check for searches; a
// cell is always in its own region when passable.
func (gg *GridGraph) SameRegion(a, b *Cell) bool {
	if !gg.Contains(a) || !gg.Contains(b) || !a.Passable() || !b.Passable() {
		return false
	}
	if a == b {
		return true
	}
	labels := gg.RegionOf()
	return labels[a.id] == labels[b.id]
}

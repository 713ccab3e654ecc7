package partition

import "gonum.org/v1/gonum/mat"

// Locate returns the index of the first region, in partition order, whose
// union of polytope pieces contains x, or CellNotFound when no region
// contains it. Overlapping regions resolve to the lowest index; the query
// has no side effects and is deterministic for a fixed partition.
func Locate(x mat.Vector, p *Partition) int {
	for i, region := range p.Regions {
		if len(region.Polys) == 0 {
			// Sentinel regions never claim a concrete point here;
			// they only appear as explicit synthesis targets.
			continue
		}
		if region.Contains(x) {
			return i
		}
	}
	return CellNotFound
}

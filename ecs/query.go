package ecs

// intersect returns slot ids present in every set, iterating the smallest.
func intersect(sets ...*SparseSet) []slotID {
	if len(sets) == 0 {
		return nil
	}
	smallest := 0
	for i, s := range sets {
		if s == nil {
			return nil
		}
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	var out []slotID
	for _, id := range sets[smallest].ids() {
		all := true
		for i, s := range sets {
			if i == smallest {
				continue
			}
			if !s.Has(id) {
				all = false
				break
			}
		}
		if all {
			out = append(out, id)
		}
	}
	return out
}

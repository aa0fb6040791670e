package ecs

import "fmt"

// Entity is a generational handle. The low half holds a 1-based slot and
// the high half the slot's generation when the handle was issued, so a
// stale handle never matches a recycled slot.
type Entity uint64

type (
	slotID     uint32
	generation uint32
)

func makeEntity(id slotID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) slot() slotID { return slotID(e & 0xffffffff) }
func (e Entity) gen() generation { return generation(e >> 32) }
func (e Entity) String() string { return fmt.Sprintf("%d#%d", e.slot(), e.gen()) }

// Valid reports whether the handle was ever issued, not whether it is alive.
func (e Entity) Valid() bool { return e.slot() != 0 }

// entityStore tracks slot generations and recycled slot ids.
type entityStore struct {
	gen   []generation
	alive []bool
	free  []slotID
	count int
}

func (s *entityStore) create() Entity {
	var id slotID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		id = slotID(len(s.gen))
	}
	s.alive[id-1] = true
	s.count++
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.slot() - 1
	s.alive[idx] = false
	s.gen[idx]++
	s.free = append(s.free, e.slot())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.slot()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.alive[id-1] && s.gen[id-1] == e.gen()
}

// handle rebuilds the live handle for a slot id.
func (s *entityStore) handle(id slotID) (Entity, bool) {
	if id == 0 || int(id) > len(s.gen) || !s.alive[id-1] {
		return 0, false
	}
	return makeEntity(id, s.gen[id-1]), true
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, s.count)
	for i := range s.gen {
		if s.alive[i] {
			out = append(out, makeEntity(slotID(i+1), s.gen[i]))
		}
	}
	return out
}

package ecs

// Hierarchy is a processor base that derives a parent -> children index from
// the parent references of its subset. The index is marked dirty on every
// membership change and rebuilt lazily, before the next traversal.
//
// Roots are entities without a parent or whose parent is outside the subset.
type Hierarchy struct {
	BaseProcessor

	dirty    bool
	roots    []*Entity
	children map[EntityID][]*Entity
	rebuilds int
}

func NewHierarchy(name string, filter Filter) Hierarchy {
	return Hierarchy{
		BaseProcessor: NewBaseProcessor(name, filter),
		children:      make(map[EntityID][]*Entity),
	}
}

func (h *Hierarchy) AddEntity(e *Entity) (bool, error) {
	added, err := h.BaseProcessor.AddEntity(e)
	if added {
		h.dirty = true
	}
	return added, err
}

func (h *Hierarchy) RemoveEntity(id EntityID) bool {
	if !h.BaseProcessor.RemoveEntity(id) {
		return false
	}
	h.dirty = true
	return true
}

func (h *Hierarchy) Dirty() bool { return h.dirty }

// Rebuilds counts how many times the index has been rebuilt.
func (h *Hierarchy) Rebuilds() int { return h.rebuilds }

// UpdateHierarchy rebuilds the index if membership changed since the last
// rebuild.
func (h *Hierarchy) UpdateHierarchy() {
	if !h.dirty {
		return
	}
	h.roots = h.roots[:0]
	clear(h.children)
	for _, e := range h.entities.items {
		if p := h.parentInSubset(e); p != nil {
			h.children[p.id] = append(h.children[p.id], e)
			continue
		}
		h.roots = append(h.roots, e)
	}
	h.dirty = false
	h.rebuilds++
}

func (h *Hierarchy) parentInSubset(e *Entity) *Entity {
	p := e.parent
	if p == nil {
		return nil
	}
	if q, ok := h.entities.Get(p.id); ok && q == p {
		return p
	}
	return nil
}

// ForEachRootEntity visits the roots in subset order.
func (h *Hierarchy) ForEachRootEntity(fn func(*Entity) error) error {
	h.UpdateHierarchy()
	for _, e := range h.roots {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// ForEachDirectChild visits the direct children of parent in subset order.
func (h *Hierarchy) ForEachDirectChild(parent EntityID, fn func(*Entity) error) error {
	h.UpdateHierarchy()
	for _, e := range h.children[parent] {
		if err := fn(e); err != nil {
			return err
		}
	}
	return nil
}

// ForEachChild visits every entity of the subset exactly once, depth first
// from the roots, always visiting a parent before its children. parent is nil
// for roots.
func (h *Hierarchy) ForEachChild(fn func(e, parent *Entity) error) error {
	h.UpdateHierarchy()
	stack := make([]*Entity, 0, len(h.entities.items))
	for i := len(h.roots) - 1; i >= 0; i-- {
		stack = append(stack, h.roots[i])
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if err := fn(e, h.parentInSubset(e)); err != nil {
			return err
		}
		kids := h.children[e.id]
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}
	return nil
}

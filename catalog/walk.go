package catalog

import "sort"

// walkParentFirst visits entries parent-before-child, the traversal order
// SystemTableDispatcher needs when resolving ParentEntry. It detects
// cycles with the same three-color DFS the teacher's topologicalSort
// (schema/tsort.go) uses for DDL dependency ordering: unvisited / visiting
// / visited, where re-entering a "visiting" node means a cycle.
func walkParentFirst(entries map[uint32]*CatalogEntry) ([]*CatalogEntry, error) {
	var sorted []*CatalogEntry
	visited := make(map[uint32]bool, len(entries))
	visiting := make(map[uint32]bool, len(entries))

	var visit func(oid uint32) error
	visit = func(oid uint32) error {
		if visiting[oid] {
			return &Error{Kind: ErrCatalogCycle, Oid: oid}
		}
		if visited[oid] {
			return nil
		}
		entry, ok := entries[oid]
		if !ok {
			return missingOid(oid)
		}

		visiting[oid] = true
		if entry.Parent != oid {
			if _, ok := entries[entry.Parent]; ok {
				if err := visit(entry.Parent); err != nil {
					return err
				}
				entry.parentEntry = entries[entry.Parent]
			} else if entry.Parent != DatabaseDefaultOid {
				return missingOid(entry.Parent)
			}
		}
		visiting[oid] = false
		visited[oid] = true
		sorted = append(sorted, entry)
		return nil
	}

	// Stable iteration order: by ascending oid, so walkParentFirst is
	// deterministic regardless of Go's random map order.
	oids := make([]uint32, 0, len(entries))
	for oid := range entries {
		oids = append(oids, oid)
	}
	sort.Slice(oids, func(i, j int) bool { return oids[i] < oids[j] })

	for _, oid := range oids {
		if !visited[oid] {
			if err := visit(oid); err != nil {
				return nil, err
			}
		}
	}
	return sorted, nil
}

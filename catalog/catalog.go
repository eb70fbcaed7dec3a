package catalog

// SessionCatalog is the immutable snapshot described in spec.md 3,
// obtained from the metastore and shared by reference for the lifetime of
// a session. Construction validates the oid DAG invariant (acyclic,
// total) once, up front, so Entries and ParentEntry need no further
// checks; Lookup still fails for an oid that is not in the snapshot.
type SessionCatalog struct {
	byOid   map[uint32]*CatalogEntry
	ordered []*CatalogEntry // parent-first
}

// NewSessionCatalog builds a SessionCatalog from a flat entry list,
// attaching ParentEntry pointers and rejecting cycles (spec.md 8: "for
// every session catalog snapshot C, iterating entries and joining on
// parent via oid is acyclic and total").
func NewSessionCatalog(entries []*CatalogEntry) (*SessionCatalog, error) {
	byOid := make(map[uint32]*CatalogEntry, len(entries))
	for _, e := range entries {
		if _, dup := byOid[e.Oid]; dup {
			return nil, invariantViolation("duplicate oid in catalog snapshot", missingOid(e.Oid))
		}
		byOid[e.Oid] = e
	}

	ordered, err := walkParentFirst(byOid)
	if err != nil {
		return nil, err
	}

	return &SessionCatalog{byOid: byOid, ordered: ordered}, nil
}

// Lookup returns the entry for oid, or MissingObjectWithOid.
func (c *SessionCatalog) Lookup(oid uint32) (*CatalogEntry, error) {
	e, ok := c.byOid[oid]
	if !ok {
		return nil, missingOid(oid)
	}
	return e, nil
}

// Entries iterates all entries in parent-first order. The returned slice
// must not be mutated by callers.
func (c *SessionCatalog) Entries() []*CatalogEntry {
	return c.ordered
}

// EntriesOfKind returns all entries of the given kind, including those
// marked External, in parent-first order.
func (c *SessionCatalog) EntriesOfKind(kind EntryKind) []*CatalogEntry {
	var out []*CatalogEntry
	for _, e := range c.ordered {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Len reports the number of entries in the snapshot.
func (c *SessionCatalog) Len() int { return len(c.byOid) }

package catalog

import "fmt"

// ErrorKind tags the catalog error taxonomy from spec.md 7.
type ErrorKind int

const (
	ErrMissingObjectWithOid ErrorKind = iota
	ErrMissingBuiltinTable
	ErrCatalogCycle
	ErrCatalogInvariant
	ErrInvalidDatasource
)

type Error struct {
	Kind   ErrorKind
	Oid    uint32
	Schema string
	Name   string
	msg    string
	cause  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrMissingObjectWithOid:
		return fmt.Sprintf("missing object with oid %d", e.Oid)
	case ErrMissingBuiltinTable:
		return fmt.Sprintf("missing builtin table %s.%s", e.Schema, e.Name)
	case ErrCatalogCycle:
		return "catalog parent links form a cycle"
	default:
		if e.cause != nil {
			return fmt.Sprintf("%s: %v", e.msg, e.cause)
		}
		return e.msg
	}
}

func (e *Error) Unwrap() error { return e.cause }

func missingOid(oid uint32) *Error {
	return &Error{Kind: ErrMissingObjectWithOid, Oid: oid}
}

func missingBuiltinTable(schema, name string) *Error {
	return &Error{Kind: ErrMissingBuiltinTable, Schema: schema, Name: name}
}

func invariantViolation(msg string, cause error) *Error {
	return &Error{Kind: ErrCatalogInvariant, msg: msg, cause: cause}
}

func invalidDatasource(msg string, cause error) *Error {
	return &Error{Kind: ErrInvalidDatasource, msg: msg, cause: cause}
}

// NewMissingObjectWithOid is the exported constructor for
// MissingObjectWithOid, for callers outside this package that resolve an
// oid not present in the session catalog. The dispatch builders do not
// call it.
func NewMissingObjectWithOid(oid uint32) *Error { return missingOid(oid) }

// NewMissingBuiltinTable is the exported constructor for spec.md 7's
// MissingBuiltinTable{schema,name}, raised by SystemTableDispatcher when no
// builder matches the requested table.
func NewMissingBuiltinTable(schema, name string) *Error {
	return missingBuiltinTable(schema, name)
}

// NewInvariantViolation is the exported constructor for a fatal
// catalog-casting failure encountered while building a system table
// (spec.md 4.3: "treated as a catalog invariant violation (fatal)").
func NewInvariantViolation(msg string, cause error) *Error {
	return invariantViolation(msg, cause)
}

// NewInvalidDatasource is the exported constructor for a connection
// string that failed provider-specific validation when constructing an
// external table/database catalog entry.
func NewInvalidDatasource(msg string, cause error) *Error {
	return invalidDatasource(msg, cause)
}

package parser

import "unicode"

// ValidateIdentifier applies spec.md 4.1's identifier rule: "non-empty,
// printable, not a reserved catalog name". Adapted from the teacher's
// NormalizeIdentifierName (schema/identifier.go), which branched on quoting
// and dialect to decide case folding; our extension grammar has no
// dialect-specific case folding to do (identifiers are opaque catalog
// names, not engine-native columns), so only the validity predicate
// survives the adaptation.
func ValidateIdentifier(name string) error {
	if name == "" {
		return &Error{Expected: "non-empty identifier"}
	}
	for _, r := range name {
		if !unicode.IsPrint(r) {
			return &Error{Expected: "printable identifier", Found: name}
		}
	}
	if reservedCatalogNames[toLower(name)] {
		return &Error{Expected: "non-reserved catalog name", Found: name}
	}
	return nil
}

func toLower(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		out = append(out, unicode.ToLower(r))
	}
	return string(out)
}

// ObjectName is a possibly-qualified catalog object name, e.g. `schema.table`.
type ObjectName struct {
	Parts []string
}

func (n ObjectName) String() string {
	s := ""
	for i, p := range n.Parts {
		if i > 0 {
			s += "."
		}
		s += p
	}
	return s
}

func (n ObjectName) Equal(other ObjectName) bool {
	if len(n.Parts) != len(other.Parts) {
		return false
	}
	for i := range n.Parts {
		if n.Parts[i] != other.Parts[i] {
			return false
		}
	}
	return true
}

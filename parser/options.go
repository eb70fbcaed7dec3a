package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/coredb-io/coredb/internal/util"
)

// OptionValue is the tagged variant spec.md 3 describes: QuotedLiteral,
// UnquotedLiteral, Boolean, Number (kept as string to avoid lossy reparse)
// and Secret (an opaque identifier resolved later by a secrets store).
type OptionValue struct {
	kind  optionKind
	str   string
	boolV bool
}

type optionKind int

const (
	optQuotedLiteral optionKind = iota
	optUnquotedLiteral
	optBoolean
	optNumber
	optSecret
)

func QuotedLiteral(s string) OptionValue   { return OptionValue{kind: optQuotedLiteral, str: s} }
func UnquotedLiteral(s string) OptionValue { return OptionValue{kind: optUnquotedLiteral, str: s} }
func Boolean(b bool) OptionValue           { return OptionValue{kind: optBoolean, boolV: b} }
func Number(s string) OptionValue          { return OptionValue{kind: optNumber, str: s} }
func Secret(ident string) OptionValue      { return OptionValue{kind: optSecret, str: ident} }

func (v OptionValue) IsQuotedLiteral() bool   { return v.kind == optQuotedLiteral }
func (v OptionValue) IsUnquotedLiteral() bool { return v.kind == optUnquotedLiteral }
func (v OptionValue) IsBoolean() bool         { return v.kind == optBoolean }
func (v OptionValue) IsNumber() bool          { return v.kind == optNumber }
func (v OptionValue) IsSecret() bool          { return v.kind == optSecret }

// StringValue returns the underlying string payload for the literal/number/
// secret variants; callers should gate on the Is* predicates first.
func (v OptionValue) StringValue() string { return v.str }
func (v OptionValue) BoolValue() bool     { return v.boolV }

func (v OptionValue) Equal(other OptionValue) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == optBoolean {
		return v.boolV == other.boolV
	}
	return v.str == other.str
}

// Render renders the value back to canonical SQL text for the variant it
// carries, the inverse of parseOptionValue.
func (v OptionValue) Render() string {
	switch v.kind {
	case optQuotedLiteral:
		return "'" + strings.ReplaceAll(v.str, "'", "''") + "'"
	case optUnquotedLiteral:
		return v.str
	case optBoolean:
		if v.boolV {
			return "TRUE"
		}
		return "FALSE"
	case optNumber:
		return v.str
	case optSecret:
		return "SECRET " + v.str
	default:
		return ""
	}
}

// StmtOptions is the option-name -> OptionValue mapping from spec.md 3.
// Iteration is always lexicographic by key so textual roundtrip (and
// rendering) is deterministic, mirroring internal/util.CanonicalMapIter's
// role in the teacher's (dropped) DDL generator.
type StmtOptions struct {
	values map[string]OptionValue
	keys   []string // not populated; SortedKeys sorts the map keys on each call
}

func NewStmtOptions() *StmtOptions {
	return &StmtOptions{values: map[string]OptionValue{}}
}

func (o *StmtOptions) Set(key string, v OptionValue) error {
	if _, exists := o.values[key]; exists {
		return fmt.Errorf("duplicate option key %q", key)
	}
	o.values[key] = v
	return nil
}

func (o *StmtOptions) Get(key string) (OptionValue, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *StmtOptions) Len() int { return len(o.values) }

// SortedKeys returns option keys in lexicographic order.
func (o *StmtOptions) SortedKeys() []string {
	keys := make([]string, 0, len(o.values))
	util.CanonicalMapIter(o.values)(func(k string, _ OptionValue) bool {
		keys = append(keys, k)
		return true
	})
	return keys
}

// Equal compares two option maps as maps (spec.md 8: "OPTIONS compared as maps").
func (o *StmtOptions) Equal(other *StmtOptions) bool {
	if o.Len() != other.Len() {
		return false
	}
	for k, v := range o.values {
		ov, ok := other.values[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// Render produces "OPTIONS (k1 = v1, k2 = v2)" in lexicographic key order,
// or "" when there are no options (so the header can be omitted entirely,
// per spec.md 4.1's "absent parenthesis means no options").
func (o *StmtOptions) Render() string {
	if o.Len() == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("OPTIONS (")
	for i, k := range o.SortedKeys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(k)
		sb.WriteString(" = ")
		sb.WriteString(o.values[k].Render())
	}
	sb.WriteString(")")
	return sb.String()
}

// parseOptions parses the OPTIONS grammar from spec.md 4.1. The leading
// OPTIONS keyword and opening parenthesis may both be absent, in which case
// an empty map is returned without consuming anything.
func (p *Parser) parseOptions() (*StmtOptions, error) {
	opts := NewStmtOptions()

	// the literal word OPTIONS scans as the OPTIONS keyword token and is
	// optional.
	save := p.save()
	tok := p.next()
	if tok.Type == OPTIONS {
		// consumed
	} else {
		p.restore(save)
	}

	if p.peek().Type != LPAREN {
		return opts, nil
	}
	p.next() // consume (

	for {
		if p.peek().Type == RPAREN {
			p.next()
			break
		}
		keyTok := p.next()
		if keyTok.Type != IDENT && !isKeywordLike(keyTok.Type) {
			return nil, errExpected(keyTok.Pos, "option key", keyTok)
		}
		key := keyTok.Literal

		// '=' is optional
		if p.peek().Type == EQ {
			p.next()
		}

		val, err := p.parseOptionValue()
		if err != nil {
			return nil, err
		}
		if err := opts.Set(key, val); err != nil {
			return nil, &Error{Expected: fmt.Sprintf("unique option key (got duplicate %q)", key), Pos: keyTok.Pos}
		}

		switch p.peek().Type {
		case COMMA:
			p.next()
			if p.peek().Type == RPAREN { // trailing comma permitted
				p.next()
				return opts, nil
			}
		case RPAREN:
			p.next()
			return opts, nil
		default:
			tok := p.next()
			return nil, errExpected(tok.Pos, "',' or ')'", tok)
		}
	}
	return opts, nil
}

func isKeywordLike(t TokenType) bool {
	// Any reserved word is still a legal option key (e.g. `format = 'json'`).
	return t != EOF && t != ILLEGAL && t != LPAREN && t != RPAREN && t != COMMA && t != EQ
}

func (p *Parser) parseOptionValue() (OptionValue, error) {
	tok := p.next()
	switch tok.Type {
	case TRUE:
		return Boolean(true), nil
	case FALSE:
		return Boolean(false), nil
	case STRING:
		return QuotedLiteral(tok.Literal), nil
	case NUMBER:
		if _, err := strconv.ParseFloat(tok.Literal, 64); err != nil {
			return OptionValue{}, &Error{Expected: "string, number or bool", Found: tok.Literal, Pos: tok.Pos}
		}
		return Number(tok.Literal), nil
	case SECRET:
		identTok := p.next()
		if identTok.Type != IDENT {
			return OptionValue{}, errExpected(identTok.Pos, "identifier after SECRET", identTok)
		}
		return Secret(identTok.Literal), nil
	case IDENT:
		return UnquotedLiteral(tok.Literal), nil
	default:
		return OptionValue{}, &Error{Expected: "string, number or bool", Found: tok.Literal, Pos: tok.Pos}
	}
}

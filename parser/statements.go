package parser

// Statement is the tagged "extended statement" variant from spec.md 3.
// Every concrete type below implements it; Render must satisfy
// parse(render(s)) == s for any legal s (spec.md 4.1, 8).
type Statement interface {
	Render() string
	stmt()
}

// GenericStatement wraps a statement this grammar does not extend. Its
// canonical rendering is the original source text, which trivially
// satisfies the roundtrip law and matches spec.md's note that a
// `Statement` variant "delegates to the generic SQL parser".
type GenericStatement struct {
	Raw string
}

func (s *GenericStatement) Render() string { return s.Raw }
func (*GenericStatement) stmt()            {}

type CreateExternalTable struct {
	OrReplace   bool
	IfNotExists bool
	Name        ObjectName
	Datasource  string
	Tunnel      *string
	Credentials *string
	Options     *StmtOptions
}

type CreateExternalDatabase struct {
	OrReplace   bool
	IfNotExists bool
	Name        string
	Datasource  string
	Tunnel      *string
	Credentials *string
	Options     *StmtOptions
}

type DropDatabase struct {
	IfExists bool
	Names    []string
}

type AlterDatabaseRename struct {
	Name    string
	NewName string
}

type CreateTunnel struct {
	IfNotExists bool
	Name        string
	TunnelType  string
	Options     *StmtOptions
}

type DropTunnel struct {
	IfExists bool
	Names    []string
}

type TunnelAction int

const (
	TunnelActionRotateKeys TunnelAction = iota
)

type AlterTunnel struct {
	IfExists bool
	Name     string
	Action   TunnelAction
}

type CreateCredentials struct {
	Name     string
	Provider string
	Options  *StmtOptions
	Comment  *string
}

type DropCredentials struct {
	IfExists bool
	Names    []string
}

// CopySource is either a bare object name or a parenthesized sub-query.
type CopySource struct {
	Table *ObjectName
	Query *string
}

type CopyTo struct {
	Source      CopySource
	Dest        string
	Format      *string
	Credentials *string
	Options     *StmtOptions
}

func (*CreateExternalTable) stmt()    {}
func (*CreateExternalDatabase) stmt() {}
func (*DropDatabase) stmt()           {}
func (*AlterDatabaseRename) stmt()    {}
func (*CreateTunnel) stmt()           {}
func (*DropTunnel) stmt()             {}
func (*AlterTunnel) stmt()            {}
func (*CreateCredentials) stmt()      {}
func (*DropCredentials) stmt()        {}
func (*CopyTo) stmt()                 {}

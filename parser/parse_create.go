package parser

// parseCreate implements the CREATE branch of spec.md 4.1. The CREATE
// keyword has already been consumed by the caller (tryExtension).
func (p *Parser) parseCreate() (Statement, bool, error) {
	orReplace := false
	if p.peek().Type == OR {
		p.next()
		if _, err := expect(p, REPLACE, "REPLACE"); err != nil {
			return nil, false, err
		}
		orReplace = true
	}

	switch p.peek().Type {
	case EXTERNAL:
		p.next()
		return p.parseCreateExternal(orReplace)
	case TUNNEL:
		if orReplace {
			// OR REPLACE is not defined for tunnels; not our extension.
			return nil, false, nil
		}
		p.next()
		return p.parseCreateTunnel()
	case CREDENTIALS:
		if orReplace {
			return nil, false, nil
		}
		p.next()
		return p.parseCreateCredentials()
	default:
		// OR REPLACE consumed but nothing we extend followed: the two
		// tokens must be pushed back so the generic parser sees them
		// (spec.md 4.1). Returning matched=false lets tryExtension
		// restore the full pre-CREATE snapshot.
		return nil, false, nil
	}
}

func (p *Parser) parseCreateExternal(orReplace bool) (Statement, bool, error) {
	switch p.peek().Type {
	case TABLE:
		p.next()
		return p.parseCreateExternalTable(orReplace)
	case DATABASE:
		p.next()
		return p.parseCreateExternalDatabase(orReplace)
	default:
		tok := p.next()
		return nil, false, errExpected(tok.Pos, "TABLE or DATABASE", tok)
	}
}

func (p *Parser) parseCreateExternalTable(orReplace bool) (Statement, bool, error) {
	ifNotExists := p.parseIfNotExists()
	name, err := p.parseObjectName()
	if err != nil {
		return nil, false, err
	}
	if _, err := expect(p, FROM, "FROM"); err != nil {
		return nil, false, err
	}
	datasource, err := p.parseDatasource()
	if err != nil {
		return nil, false, err
	}
	tunnel, credentials, err := p.parseOptionalTunnelAndCredentials()
	if err != nil {
		return nil, false, err
	}
	opts, err := p.parseOptions()
	if err != nil {
		return nil, false, err
	}
	return &CreateExternalTable{
		OrReplace:   orReplace,
		IfNotExists: ifNotExists,
		Name:        name,
		Datasource:  datasource,
		Tunnel:      tunnel,
		Credentials: credentials,
		Options:     opts,
	}, true, nil
}

func (p *Parser) parseCreateExternalDatabase(orReplace bool) (Statement, bool, error) {
	ifNotExists := p.parseIfNotExists()
	name, err := p.parseIdent("database name")
	if err != nil {
		return nil, false, err
	}
	if _, err := expect(p, FROM, "FROM"); err != nil {
		return nil, false, err
	}
	datasource, err := p.parseDatasource()
	if err != nil {
		return nil, false, err
	}
	tunnel, credentials, err := p.parseOptionalTunnelAndCredentials()
	if err != nil {
		return nil, false, err
	}
	opts, err := p.parseOptions()
	if err != nil {
		return nil, false, err
	}
	return &CreateExternalDatabase{
		OrReplace:   orReplace,
		IfNotExists: ifNotExists,
		Name:        name,
		Datasource:  datasource,
		Tunnel:      tunnel,
		Credentials: credentials,
		Options:     opts,
	}, true, nil
}

func (p *Parser) parseCreateTunnel() (Statement, bool, error) {
	ifNotExists := p.parseIfNotExists()
	name, err := p.parseIdent("tunnel name")
	if err != nil {
		return nil, false, err
	}
	if _, err := expect(p, FROM, "FROM"); err != nil {
		return nil, false, err
	}
	tunnelType, err := p.parseDatasource()
	if err != nil {
		return nil, false, err
	}
	opts, err := p.parseOptions()
	if err != nil {
		return nil, false, err
	}
	return &CreateTunnel{
		IfNotExists: ifNotExists,
		Name:        name,
		TunnelType:  tunnelType,
		Options:     opts,
	}, true, nil
}

func (p *Parser) parseCreateCredentials() (Statement, bool, error) {
	name, err := p.parseIdent("credentials name")
	if err != nil {
		return nil, false, err
	}
	if _, err := expect(p, PROVIDER, "PROVIDER"); err != nil {
		return nil, false, err
	}
	provider, err := p.parseDatasource()
	if err != nil {
		return nil, false, err
	}
	opts, err := p.parseOptions()
	if err != nil {
		return nil, false, err
	}
	var comment *string
	if p.peek().Type == COMMENT {
		p.next()
		tok := p.next()
		if tok.Type != STRING {
			return nil, false, errExpected(tok.Pos, "quoted comment string", tok)
		}
		comment = &tok.Literal
	}
	return &CreateCredentials{
		Name:     name,
		Provider: provider,
		Options:  opts,
		Comment:  comment,
	}, true, nil
}

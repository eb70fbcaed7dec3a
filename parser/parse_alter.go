package parser

// parseAlter implements the ALTER branch of spec.md 4.1. The ALTER
// keyword has already been consumed.
func (p *Parser) parseAlter() (Statement, bool, error) {
	switch p.peek().Type {
	case DATABASE:
		p.next()
		name, err := p.parseIdent("database name")
		if err != nil {
			return nil, false, err
		}
		if _, err := expect(p, RENAME, "RENAME"); err != nil {
			return nil, false, err
		}
		if _, err := expect(p, TO, "TO"); err != nil {
			return nil, false, err
		}
		newName, err := p.parseIdent("new database name")
		if err != nil {
			return nil, false, err
		}
		return &AlterDatabaseRename{Name: name, NewName: newName}, true, nil
	case TUNNEL:
		p.next()
		ifExists := p.parseIfExists()
		name, err := p.parseIdent("tunnel name")
		if err != nil {
			return nil, false, err
		}
		if _, err := expect(p, ROTATE, "ROTATE"); err != nil {
			return nil, false, err
		}
		if _, err := expect(p, KEYS, "KEYS"); err != nil {
			return nil, false, err
		}
		return &AlterTunnel{IfExists: ifExists, Name: name, Action: TunnelActionRotateKeys}, true, nil
	default:
		return nil, false, nil
	}
}

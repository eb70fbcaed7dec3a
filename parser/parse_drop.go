package parser

// parseDrop implements the DROP branch of spec.md 4.1. The DROP keyword
// has already been consumed.
func (p *Parser) parseDrop() (Statement, bool, error) {
	switch p.peek().Type {
	case DATABASE:
		p.next()
		ifExists := p.parseIfExists()
		names, err := p.parseNameList()
		if err != nil {
			return nil, false, err
		}
		return &DropDatabase{IfExists: ifExists, Names: names}, true, nil
	case TUNNEL:
		p.next()
		ifExists := p.parseIfExists()
		names, err := p.parseNameList()
		if err != nil {
			return nil, false, err
		}
		return &DropTunnel{IfExists: ifExists, Names: names}, true, nil
	case CREDENTIALS:
		p.next()
		ifExists := p.parseIfExists()
		names, err := p.parseNameList()
		if err != nil {
			return nil, false, err
		}
		return &DropCredentials{IfExists: ifExists, Names: names}, true, nil
	default:
		return nil, false, nil
	}
}

package parser

// parseCopy implements spec.md 4.1's COPY branch. The COPY keyword has
// already been consumed.
func (p *Parser) parseCopy() (Statement, error) {
	source, err := p.parseCopySource()
	if err != nil {
		return nil, err
	}
	if _, err := expect(p, TO, "TO"); err != nil {
		return nil, err
	}

	destTok := p.next()
	var dest string
	switch destTok.Type {
	case STRING, IDENT:
		dest = destTok.Literal
	default:
		return nil, errExpected(destTok.Pos, "destination identifier or string", destTok)
	}

	var format *string
	if p.peek().Type == FORMAT {
		p.next()
		tok := p.next()
		if tok.Type != IDENT {
			return nil, errExpected(tok.Pos, "format identifier", tok)
		}
		format = &tok.Literal
	}

	var credentials *string
	if p.peek().Type == CREDENTIALS {
		p.next()
		name, err := p.parseIdent("credentials name")
		if err != nil {
			return nil, err
		}
		credentials = &name
	}

	opts, err := p.parseOptions()
	if err != nil {
		return nil, err
	}

	return &CopyTo{
		Source:      source,
		Dest:        dest,
		Format:      format,
		Credentials: credentials,
		Options:     opts,
	}, nil
}

func (p *Parser) parseCopySource() (CopySource, error) {
	if p.peek().Type == LPAREN {
		p.next() // consume (
		inner, ok := p.tok.CaptureUntilMatchingParen()
		if !ok {
			tok := p.next()
			return CopySource{}, errExpected(tok.Pos, "matching ')'", tok)
		}
		return CopySource{Query: &inner}, nil
	}
	name, err := p.parseObjectName()
	if err != nil {
		return CopySource{}, err
	}
	return CopySource{Table: &name}, nil
}

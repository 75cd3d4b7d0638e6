package arith

// Grammar:
//
//	expression := term ( (PLUS | MINUS) term )*
//	term       := factor ( (MUL | DIV) factor )*
//	factor     := INTEGER | LPAREN expression RPAREN
type parser struct {
	l *Lexer

	curToken Token

	depth    int
	maxDepth int
}

func newParser(input string, maxDepth int) (*parser, error) {
	p := &parser{l: NewLexer(input), maxDepth: maxDepth}
	tok, err := p.l.NextToken()
	if err != nil {
		return nil, err
	}
	p.curToken = tok
	return p, nil
}

// parse consumes one expression and requires the input to end after it.
func (p *parser) parse() (Node, error) {
	node, err := p.expression()
	if err != nil {
		return nil, err
	}
	if p.curToken.Kind != TokenEOF {
		return nil, p.errorExpected(TokenEOF)
	}
	return node, nil
}

func (p *parser) eat(kind TokenKind) error {
	if p.curToken.Kind != kind {
		return p.errorExpected(kind)
	}
	tok, err := p.l.NextToken()
	if err != nil {
		return err
	}
	p.curToken = tok
	return nil
}

func (p *parser) expression() (Node, error) {
	node, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.curToken.Kind == TokenPlus || p.curToken.Kind == TokenMinus {
		if node, err = p.binary(node, p.term); err != nil {
			return nil, err
		}
	}
	return node, nil
}

func (p *parser) term() (Node, error) {
	node, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.curToken.Kind == TokenStar || p.curToken.Kind == TokenSlash {
		if node, err = p.binary(node, p.factor); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// binary consumes the operator at the cursor and its right operand.
func (p *parser) binary(left Node, operand func() (Node, error)) (Node, error) {
	tok := p.curToken
	op, _ := operatorFor(tok.Kind)
	if err := p.eat(tok.Kind); err != nil {
		return nil, err
	}
	right, err := operand()
	if err != nil {
		return nil, err
	}
	return &BinaryOp{left: left, op: op, right: right, position: tok.Pos}, nil
}

func (p *parser) factor() (Node, error) {
	tok := p.curToken
	switch tok.Kind {
	case TokenInteger:
		if err := p.eat(TokenInteger); err != nil {
			return nil, err
		}
		return &Literal{value: tok.value, position: tok.Pos}, nil
	case TokenLParen:
		p.depth++
		if p.depth > p.maxDepth {
			return nil, &DepthError{Pos: tok.Pos, Limit: p.maxDepth, source: p.l.input}
		}
		if err := p.eat(TokenLParen); err != nil {
			return nil, err
		}
		node, err := p.expression()
		if err != nil {
			return nil, err
		}
		if err := p.eat(TokenRParen); err != nil {
			return nil, err
		}
		p.depth--
		return node, nil
	default:
		return nil, p.errorExpected(TokenInteger, TokenLParen)
	}
}

func (p *parser) errorExpected(expected ...TokenKind) error {
	return &ParseError{
		Pos:      p.curToken.Pos,
		Expected: expected,
		Got:      p.curToken.Kind,
		source:   p.l.input,
	}
}

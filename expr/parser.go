package expr

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// parser is a recursive-descent parser over the token stream. Precedence,
// lowest to highest: comparison (single, non-chaining), additive,
// multiplicative, unary minus, primary.
type parser struct {
	tokens []token
	pos    int
}

func parse(tokens []token) (node, error) {
	p := &parser{tokens: tokens}
	root, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	switch tok := p.peek(); tok.typ {
	case tokenEOF:
		return root, nil
	case tokenRParen:
		return nil, newError(")", ErrMismatchedParens)
	case tokenCompare:
		return nil, newError(tok.text, ErrChainedComparison)
	default:
		return nil, newError(tok.text, fmt.Errorf("%w: unexpected %q", ErrSyntax, tok.text))
	}
}

func (p *parser) peek() token {
	return p.tokens[p.pos]
}

func (p *parser) next() token {
	tok := p.tokens[p.pos]
	if tok.typ != tokenEOF {
		p.pos++
	}
	return tok
}

// parseExpression parses a full sub-expression: arithmetic with at most one
// comparison at its top level. Parenthesized groups and function arguments
// restart the grammar here, so each gets its own comparison budget.
func (p *parser) parseExpression() (node, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if p.peek().typ != tokenCompare {
		return left, nil
	}
	op := p.next().text

	right, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}

	if tok := p.peek(); tok.typ == tokenCompare {
		return nil, newError(tok.text, ErrChainedComparison)
	}
	return &compareNode{op: op, left: left, right: right}, nil
}

func (p *parser) parseAdditive() (node, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().typ {
		case tokenPlus:
			p.next()
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: "+", left: left, right: right}
		case tokenMinus:
			p.next()
			right, err := p.parseMultiplicative()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: "-", left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseMultiplicative() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		switch p.peek().typ {
		case tokenStar:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: "*", left: left, right: right}
		case tokenSlash:
			p.next()
			right, err := p.parseUnary()
			if err != nil {
				return nil, err
			}
			left = &binaryNode{op: "/", left: left, right: right}
		default:
			return left, nil
		}
	}
}

func (p *parser) parseUnary() (node, error) {
	if p.peek().typ == tokenMinus {
		p.next()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &unaryNode{operand: operand}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	tok := p.next()

	switch tok.typ {
	case tokenNumber:
		value, err := decimal.NewFromString(tok.text)
		if err != nil {
			return nil, newError(tok.text, ErrMalformedNumber)
		}
		return &numberNode{value: value}, nil

	case tokenString:
		return &stringNode{value: tok.text}, nil

	case tokenIdent:
		if p.peek().typ != tokenLParen {
			return &variableNode{name: tok.text}, nil
		}
		p.next() // consume '('
		args, err := p.parseArgs(tok.text)
		if err != nil {
			return nil, err
		}
		return &callNode{name: tok.text, args: args}, nil

	case tokenLParen:
		inner, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.peek().typ != tokenRParen {
			return nil, newError(inner.String(), ErrMismatchedParens)
		}
		p.next()
		return inner, nil

	case tokenEOF:
		return nil, newError("", fmt.Errorf("%w: unexpected end of expression", ErrSyntax))

	case tokenRParen:
		return nil, newError(")", ErrMismatchedParens)

	default:
		return nil, newError(tok.text, fmt.Errorf("%w: unexpected %q", ErrSyntax, tok.text))
	}
}

// parseArgs parses a comma-separated argument list up to the matching
// closing parenthesis. The opening parenthesis is already consumed.
func (p *parser) parseArgs(funcName string) ([]node, error) {
	var args []node

	if p.peek().typ == tokenRParen {
		p.next()
		return args, nil
	}

	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		switch tok := p.next(); tok.typ {
		case tokenComma:
			continue
		case tokenRParen:
			return args, nil
		case tokenEOF:
			return nil, newError(funcName+"(", ErrMismatchedParens)
		default:
			return nil, newError(tok.text, fmt.Errorf("%w: unexpected %q in arguments of %s", ErrSyntax, tok.text, funcName))
		}
	}
}

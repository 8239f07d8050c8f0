package parser

import (
	"fmt"

	ierrors "github.com/cwbudde/go-script/internal/interp/errors"
)

func (p *Parser) syntaxErrorf(format string, args ...any) error {
	pos := p.cur().Start
	return ierrors.NewSyntaxError(&pos, nil, fmt.Sprintf(format, args...), "", p.cur().String())
}

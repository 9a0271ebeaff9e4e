package script

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Statement is one `name = expression` assignment.
type Statement struct {
	Name  string
	Expr  hclsyntax.Expression
	Range hcl.Range
}

// Program is a parsed script: statements in source order.
type Program struct {
	Statements []*Statement
}

// Parse splits src into statements and parses every expression. Statements
// are separated by newlines or semicolons outside brackets, strings and
// heredocs. Nothing is evaluated.
func Parse(filename string, src []byte) (*Program, hcl.Diagnostics) {
	start := hcl.Pos{Line: 1, Column: 1}
	tokens, _ := hclsyntax.LexConfig(src, filename, start)

	// Tabs are only a style error in HCL; blank them so indented scripts parse.
	// Positions stay the same because the replacement has the same width.
	buf := bytes.Clone(src)
	for _, tok := range tokens {
		if tok.Type == hclsyntax.TokenTabs {
			for i := tok.Range.Start.Byte; i < tok.Range.End.Byte; i++ {
				buf[i] = ' '
			}
		}
	}

	prog := &Program{}
	var diags hcl.Diagnostics
	var cur hclsyntax.Tokens
	depth := 0

	flush := func() {
		if len(cur) > 0 {
			st, stDiags := parseStatement(filename, buf, cur)
			diags = append(diags, stDiags...)
			if st != nil {
				prog.Statements = append(prog.Statements, st)
			}
		}
		cur = cur[:0]
	}

	for _, tok := range tokens {
		switch tok.Type {
		case hclsyntax.TokenOBrace, hclsyntax.TokenOBrack, hclsyntax.TokenOParen,
			hclsyntax.TokenTemplateInterp, hclsyntax.TokenTemplateControl, hclsyntax.TokenOHeredoc:
			depth++
		case hclsyntax.TokenCBrace, hclsyntax.TokenCBrack, hclsyntax.TokenCParen,
			hclsyntax.TokenTemplateSeqEnd, hclsyntax.TokenCHeredoc:
			depth--
		}

		if depth > 0 {
			cur = append(cur, tok)
			continue
		}

		switch {
		case tok.Type == hclsyntax.TokenEOF,
			tok.Type == hclsyntax.TokenNewline,
			isSemicolon(tok):
			flush()
		case tok.Type == hclsyntax.TokenComment:
			// Line comments swallow their newline, so they end a statement too.
			if bytes.HasSuffix(tok.Bytes, []byte("\n")) {
				flush()
			}
		case tok.Type == hclsyntax.TokenTabs:
		default:
			cur = append(cur, tok)
		}
	}
	flush()

	return prog, diags
}

func isSemicolon(tok hclsyntax.Token) bool {
	return tok.Type == hclsyntax.TokenSemicolon ||
		(tok.Type == hclsyntax.TokenInvalid && string(tok.Bytes) == ";")
}

func parseStatement(filename string, src []byte, toks hclsyntax.Tokens) (*Statement, hcl.Diagnostics) {
	rng := hcl.RangeBetween(toks[0].Range, toks[len(toks)-1].Range)

	if len(toks) < 3 || toks[0].Type != hclsyntax.TokenIdent || toks[1].Type != hclsyntax.TokenEqual {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid statement",
			Detail:   fmt.Sprintf("Expected an assignment of the form `name = expression`, got %q.", src[rng.Start.Byte:rng.End.Byte]),
			Subject:  rng.Ptr(),
		}}
	}

	exprStart := toks[2].Range.Start
	exprEnd := toks[len(toks)-1].Range.End.Byte
	expr, diags := hclsyntax.ParseExpression(src[exprStart.Byte:exprEnd], filename, exprStart)
	if diags.HasErrors() {
		return nil, diags
	}

	return &Statement{
		Name:  string(toks[0].Bytes),
		Expr:  expr,
		Range: rng,
	}, diags
}

// Assigned returns the assigned names in first-assignment order.
func (p *Program) Assigned() []string {
	seen := make(map[string]struct{}, len(p.Statements))
	var names []string
	for _, st := range p.Statements {
		if _, ok := seen[st.Name]; ok {
			continue
		}
		seen[st.Name] = struct{}{}
		names = append(names, st.Name)
	}
	return names
}

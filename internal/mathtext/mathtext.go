package mathtext

import (
	"regexp"
	"strings"
)

// Renderer turns one math expression into display markup. The practice
// service marks inline math with \( ... \) delimiters; everything
// outside them is plain markup. Implementations own how an expression
// looks, callers own splitting it out of surrounding text.
type Renderer interface {
	Render(expr string) string
}

var (
	inlineMath = regexp.MustCompile(`\\\((.*?)\\\)`)
	htmlTags   = regexp.MustCompile(`</?[a-zA-Z][^>]*>`)
	fracExpr   = regexp.MustCompile(`\\frac\{([^{}]*)\}\{([^{}]*)\}`)
	supExpr    = regexp.MustCompile(`\^\{([^{}]*)\}|\^(\w)`)
)

// RenderMarkup resolves every inline math span in a markup fragment via
// r and strips residual HTML tags for terminal display.
func RenderMarkup(r Renderer, markup string) string {
	out := inlineMath.ReplaceAllStringFunc(markup, func(m string) string {
		sub := inlineMath.FindStringSubmatch(m)
		return r.Render(sub[1])
	})
	out = htmlTags.ReplaceAllString(out, "")
	return strings.TrimSpace(out)
}

// Terminal renders math expressions as plain terminal text: common TeX
// commands become unicode, everything unrecognized passes through.
type Terminal struct{}

var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'n': 'ⁿ', '+': '⁺', '-': '⁻',
}

var replacements = []struct{ tex, out string }{
	{`\times`, "×"},
	{`\cdot`, "·"},
	{`\div`, "÷"},
	{`\pm`, "±"},
	{`\le`, "≤"},
	{`\ge`, "≥"},
	{`\ne`, "≠"},
	{`\sqrt`, "√"},
	{`\pi`, "π"},
	{`\left`, ""},
	{`\right`, ""},
}

func (Terminal) Render(expr string) string {
	out := fracExpr.ReplaceAllString(expr, "$1/$2")
	for _, r := range replacements {
		out = strings.ReplaceAll(out, r.tex, r.out)
	}
	out = supExpr.ReplaceAllStringFunc(out, func(m string) string {
		sub := supExpr.FindStringSubmatch(m)
		body := sub[1]
		if body == "" {
			body = sub[2]
		}
		var b strings.Builder
		for _, c := range body {
			if s, ok := superscripts[c]; ok {
				b.WriteRune(s)
			} else {
				return m // mixed superscript, keep the TeX form
			}
		}
		return b.String()
	})
	out = strings.ReplaceAll(out, "{", "")
	out = strings.ReplaceAll(out, "}", "")
	return strings.TrimSpace(out)
}

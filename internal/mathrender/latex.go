package mathrender

import (
	"html"
	"strings"
	"unicode"
)

// LatexToMathML converts a small LaTeX subset to MathML: fractions, roots,
// superscripts, subscripts, greek letters, and common operators. Unknown
// commands degrade to literal text instead of failing the render.
func LatexToMathML(latex string, display bool) string {
	p := &latexParser{src: []rune(strings.TrimSpace(latex))}
	body := p.parseSequence(nil)

	mode := "inline"
	if display {
		mode = "block"
	}
	return `<math xmlns="http://www.w3.org/1998/Math/MathML" display="` + mode + `">` + body + `</math>`
}

var greekAndSymbols = map[string]string{
	"alpha": "α", "beta": "β", "gamma": "γ", "delta": "δ", "epsilon": "ε",
	"zeta": "ζ", "eta": "η", "theta": "θ", "lambda": "λ", "mu": "μ",
	"pi": "π", "rho": "ρ", "sigma": "σ", "tau": "τ", "phi": "φ",
	"omega": "ω", "Gamma": "Γ", "Delta": "Δ", "Theta": "Θ", "Lambda": "Λ",
	"Sigma": "Σ", "Phi": "Φ", "Omega": "Ω", "Pi": "Π",
	"infty": "∞", "partial": "∂", "nabla": "∇",
}

var operators = map[string]string{
	"cdot": "⋅", "times": "×", "div": "÷", "pm": "±", "mp": "∓",
	"leq": "≤", "le": "≤", "geq": "≥", "ge": "≥", "neq": "≠", "ne": "≠",
	"approx": "≈", "equiv": "≡", "rightarrow": "→", "to": "→",
	"leftarrow": "←", "Rightarrow": "⇒", "in": "∈", "notin": "∉",
	"subset": "⊂", "subseteq": "⊆", "cup": "∪", "cap": "∩",
	"sum": "∑", "prod": "∏", "int": "∫", "forall": "∀", "exists": "∃",
}

// Function names rendered upright as identifiers.
var functionNames = map[string]bool{
	"sin": true, "cos": true, "tan": true, "log": true, "ln": true,
	"exp": true, "min": true, "max": true, "lim": true, "det": true,
}

type latexParser struct {
	src []rune
	pos int
}

func (p *latexParser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *latexParser) next() rune {
	r := p.peek()
	if r != 0 {
		p.pos++
	}
	return r
}

// parseSequence parses atoms until the terminator (or end of input),
// folding ^ and _ into msup/msub/msubsup around the preceding atom.
func (p *latexParser) parseSequence(stop func(rune) bool) string {
	var atoms []string
	for p.pos < len(p.src) {
		r := p.peek()
		if stop != nil && stop(r) {
			break
		}
		if r == ' ' {
			p.next()
			continue
		}
		if r == '^' || r == '_' {
			p.next()
			script := p.parseAtom()
			base := "<mrow></mrow>"
			if len(atoms) > 0 {
				base = atoms[len(atoms)-1]
				atoms = atoms[:len(atoms)-1]
			}
			// ^ then _ (or the reverse) on the same base becomes msubsup
			var other string
			if p.peek() == '^' || p.peek() == '_' {
				second := p.next()
				other = p.parseAtom()
				if (r == '_' && second == '^') || (r == '^' && second == '_') {
					sub, sup := script, other
					if r == '^' {
						sub, sup = other, script
					}
					atoms = append(atoms, "<msubsup>"+base+sub+sup+"</msubsup>")
					continue
				}
				// Same script twice; treat the second as a fresh atom
				if r == '^' {
					atoms = append(atoms, "<msup>"+base+script+"</msup>", other)
				} else {
					atoms = append(atoms, "<msub>"+base+script+"</msub>", other)
				}
				continue
			}
			if r == '^' {
				atoms = append(atoms, "<msup>"+base+script+"</msup>")
			} else {
				atoms = append(atoms, "<msub>"+base+script+"</msub>")
			}
			continue
		}
		atoms = append(atoms, p.parseAtom())
	}
	return "<mrow>" + strings.Join(atoms, "") + "</mrow>"
}

// parseAtom parses one unit: a group, a command, a number, or a character.
func (p *latexParser) parseAtom() string {
	for p.peek() == ' ' {
		p.next()
	}
	r := p.peek()
	switch {
	case r == 0:
		return "<mrow></mrow>"
	case r == '{':
		p.next()
		body := p.parseSequence(func(r rune) bool { return r == '}' })
		p.next() // consume '}'
		return body
	case r == '\\':
		return p.parseCommand()
	case unicode.IsDigit(r):
		return "<mn>" + p.readNumber() + "</mn>"
	case unicode.IsLetter(r):
		p.next()
		return "<mi>" + html.EscapeString(string(r)) + "</mi>"
	default:
		p.next()
		return "<mo>" + html.EscapeString(string(r)) + "</mo>"
	}
}

func (p *latexParser) parseCommand() string {
	p.next() // consume '\'
	name := p.readName()
	if name == "" {
		// Escaped single character like \{ or \%
		r := p.next()
		if r == 0 {
			return "<mrow></mrow>"
		}
		return "<mo>" + html.EscapeString(string(r)) + "</mo>"
	}

	switch name {
	case "frac", "dfrac":
		num := p.parseAtom()
		den := p.parseAtom()
		return "<mfrac>" + num + den + "</mfrac>"
	case "sqrt":
		return "<msqrt>" + p.parseAtom() + "</msqrt>"
	case "text", "mathrm":
		return "<mtext>" + html.EscapeString(p.readGroupLiteral()) + "</mtext>"
	case "left", "right":
		// Sizing hints only; the delimiter itself follows as an atom
		return p.parseAtom()
	}
	if sym, ok := greekAndSymbols[name]; ok {
		return "<mi>" + sym + "</mi>"
	}
	if op, ok := operators[name]; ok {
		return "<mo>" + op + "</mo>"
	}
	if functionNames[name] {
		return "<mi>" + name + "</mi>"
	}
	// Unknown command: keep it readable instead of erroring
	return "<mtext>" + html.EscapeString("\\"+name) + "</mtext>"
}

func (p *latexParser) readName() string {
	start := p.pos
	for p.pos < len(p.src) && unicode.IsLetter(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func (p *latexParser) readNumber() string {
	start := p.pos
	seenDot := false
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if r == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		if !unicode.IsDigit(r) {
			break
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// readGroupLiteral reads the raw contents of a {...} group without math
// interpretation, for \text{...}.
func (p *latexParser) readGroupLiteral() string {
	for p.peek() == ' ' {
		p.next()
	}
	if p.peek() != '{' {
		r := p.next()
		if r == 0 {
			return ""
		}
		return string(r)
	}
	p.next()
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s := string(p.src[start:p.pos])
				p.pos++
				return s
			}
		}
		p.pos++
	}
	return string(p.src[start:])
}

package tiebreak

import "strings"

// Parser decodes the textual tiebreak grammar NAME[@YY][:PT](/MOD)* into
// TiebreakDescriptor values.
type Parser struct {
	IsTeam         bool
	RR             bool
	DefaultUnrated int

	primaryScore *PointType
}

// NewParser builds a Parser for one request's criteria list.
func NewParser(isTeam, rr bool, unrated int) *Parser {
	return &Parser{IsTeam: isTeam, RR: rr, DefaultUnrated: unrated}
}

// Parse decodes one criterion specifier at the given 1-based order.
func (p *Parser) Parse(order int, raw string) TiebreakDescriptor {
	txt := strings.ToUpper(strings.TrimSpace(raw))
	txt = strings.NewReplacer("!", "/", "#", "/").Replace(txt)
	tokens := strings.Split(txt, "/")
	head := tokens[0]
	modTokens := tokens[1:]

	nameAndYear, ptSpec, _ := cutOnce(head, ":")
	name, yearStr, hasYear := cutOnce(nameAndYear, "@")
	year := 24
	if hasYear {
		if n, ok := parseDigits(yearStr); ok {
			year = n
		}
	}

	pointType := p.defaultPointType()
	switch name {
	case "MPTS":
		pointType = PTMPoints
	case "GPTS":
		pointType = PTGamePoints
	}
	if ptSpec != "" {
		switch ptSpec {
		case "MP":
			pointType = PTMPoints
		case "GP":
			pointType = PTGamePoints
		case "MM":
			pointType = PTMMPoints
		case "MG":
			pointType = PTMGPoints
		case "GM":
			pointType = PTGMPoints
		case "GG":
			pointType = PTGGPoints
		}
	}
	if p.primaryScore == nil && (name == "PTS" || name == "MPTS" || name == "GPTS") {
		pt := pointType
		p.primaryScore = &pt
	}

	mods := DefaultModifiers(p.DefaultUnrated)
	for _, tok := range modTokens {
		applyModifier(&mods, tok)
	}
	if p.RR && !mods.Sws {
		mods.P4F = true
	}

	return TiebreakDescriptor{
		Order:     order,
		Name:      name,
		Year:      year,
		PointType: pointType,
		Modifiers: mods,
	}
}

func (p *Parser) defaultPointType() PointType {
	if p.primaryScore != nil {
		return *p.primaryScore
	}
	if p.IsTeam {
		return PTMPoints
	}
	return PTPoints
}

// cutOnce splits s on the first occurrence of sep, reporting whether sep was
// present.
func cutOnce(s, sep string) (before, after string, found bool) {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i], s[i+len(sep):], true
	}
	return s, "", false
}

func parseDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// applyModifier dispatches one modifier token (e.g. "C1", "L+0.5", "P") onto
// mods. Unknown or malformed tokens are silently ignored.
func applyModifier(mods *Modifiers, tok string) {
	if tok == "" {
		return
	}
	rest := tok[1:]
	switch tok[0] {
	case 'C':
		if n, ok := parseDigits(rest); ok {
			mods.Low = n
		}
	case 'M':
		if n, ok := parseDigits(rest); ok {
			mods.Low, mods.High = n, n
		}
	case 'L':
		applyLModifier(mods, rest)
	case 'K':
		if n, ok := parseDigits(rest); ok {
			mods.Nlim = NewDecimalInt(int64(n))
		}
	case 'D':
		mods.Urd = true
	case 'U':
		if n, ok := parseDigits(rest); ok {
			mods.Unr = n
		}
	case 'P':
		mods.P4F = true
	case 'F':
		mods.Fmo = true
	case 'R':
		mods.Rb5 = true
	case 'S':
		mods.Sws = true
	case 'Z':
		mods.Z4h = true
	case 'V':
		mods.Vun = true
	}
}

// applyLModifier decodes "Ln" (the percentage limit Plim) or "L+n"/"L-n"
// (the point offset Nlim). A delta with no '.' is in half-point units (n/2); a
// delta containing '.' is taken literally.
func applyLModifier(mods *Modifiers, rest string) {
	if rest == "" {
		return
	}
	if _, ok := parseDigits(rest); ok {
		if d, err := ParseDecimal(rest); err == nil {
			mods.Plim = d
		}
		return
	}
	sign := rest[0]
	if sign != '+' && sign != '-' {
		return
	}
	numPart := rest[1:]
	hasDot := strings.Contains(numPart, ".")
	digitsOnly := strings.ReplaceAll(numPart, ".", "")
	if digitsOnly == "" {
		return
	}
	if _, ok := parseDigits(digitsOnly); !ok {
		return
	}
	val, err := ParseDecimal(numPart)
	if err != nil {
		return
	}
	if !hasDot {
		val = val.DivInt(2)
	}
	if sign == '-' {
		val = val.Neg()
	}
	mods.Nlim = val
}

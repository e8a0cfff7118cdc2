package tiebreak

import (
	"strconv"
	"strings"
)

// ParseDate normalises a date string from "DD.MM.YYYY[ HH:MM:SS]",
// "YYYY.MM.DD", "YYYY/MM/DD" or "YY/MM/DD" (read as 20YY) notation to
// "YYYY-MM-DD[ HH:MM:SS]", passing already normalised or unrecognised
// strings through unchanged.
func ParseDate(date string) string {
	parts := strings.SplitN(date, " ", 2)
	rest := ""
	if len(parts) == 2 {
		rest = parts[1]
	}
	if dotParts := strings.Split(parts[0], "."); len(dotParts) == 3 {
		if len(dotParts[0]) == 4 {
			return strings.ReplaceAll(date, ".", "-")
		}
		if rest != "" {
			return dotParts[2] + "-" + dotParts[1] + "-" + dotParts[0] + " " + rest
		}
		return dotParts[2] + "-" + dotParts[1] + "-" + dotParts[0]
	}
	if slashParts := strings.Split(parts[0], "/"); len(slashParts) == 3 {
		if len(slashParts[0]) == 4 {
			return strings.ReplaceAll(date, "/", "-")
		}
		return "20" + strings.ReplaceAll(date, "/", "-")
	}
	return date
}

// ParseMinutes converts "HH:MM:SS" to whole minutes, or 0 if malformed.
func ParseMinutes(t string) int {
	hms := strings.Split(t, ":")
	if len(hms) != 3 {
		return 0
	}
	h, errH := strconv.Atoi(hms[0])
	m, errM := strconv.Atoi(hms[1])
	if errH != nil || errM != nil {
		return 0
	}
	return h*60 + m
}

// ParseSeconds converts "HH:MM:SS" to whole seconds, or 0 if malformed.
func ParseSeconds(t string) int {
	hms := strings.Split(t, ":")
	if len(hms) != 3 {
		return 0
	}
	h, errH := strconv.Atoi(hms[0])
	m, errM := strconv.Atoi(hms[1])
	s, errS := strconv.Atoi(hms[2])
	if errH != nil || errM != nil || errS != nil {
		return 0
	}
	return h*3600 + m*60 + s
}

// ParseIntOrZero trims and parses an integer, returning 0 for blank or
// unparsable input.
func ParseIntOrZero(txt string) int {
	txt = strings.TrimSpace(txt)
	if txt == "" {
		return 0
	}
	n, err := strconv.Atoi(txt)
	if err != nil {
		return 0
	}
	return n
}

// ParseDecimalOrZero trims, accepts a comma decimal separator, and parses a
// Decimal, returning Zero for blank or unparsable input.
func ParseDecimalOrZero(txt string) Decimal {
	txt = strings.TrimSpace(txt)
	if txt == "" {
		return Zero
	}
	d, err := ParseDecimal(txt)
	if err != nil {
		return Zero
	}
	return d
}

// ToBase36 maps a decimal score in [0, 17.5] to a single base-36 digit by
// doubling and clamping, the same encoding used for compact TRF board
// summaries.
func ToBase36(num Decimal) byte {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	doubled := num.Mul(NewDecimalFrac(2, 1))
	n := doubled.Int()
	if n < 0 {
		n = -n
	}
	if n > 35 {
		n = 35
	}
	return alphabet[n]
}

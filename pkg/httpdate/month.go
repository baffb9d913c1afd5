package httpdate

// MonthFromAbbrev maps the English month abbreviations "Jan" ... "Dec" to 1 ... 12.
// Matching is exact and case-sensitive; anything else (including "") returns 0.
func MonthFromAbbrev(s string) int {
	if len(s) != 3 {
		return 0
	}
	switch s[0] {
	case 'J':
		if s[1] == 'a' {
			return confirm(s, "Jan", 1)
		}
		if s[1] != 'u' {
			return 0
		}
		switch s[2] {
		case 'n':
			return 6
		case 'l':
			return 7
		}
		return 0
	case 'F':
		return confirm(s, "Feb", 2)
	case 'M':
		if s[1] != 'a' {
			return 0
		}
		switch s[2] {
		case 'r':
			return 3
		case 'y':
			return 5
		}
		return 0
	case 'A':
		switch s[1] {
		case 'p':
			return confirm(s, "Apr", 4)
		case 'u':
			return confirm(s, "Aug", 8)
		}
		return 0
	case 'S':
		return confirm(s, "Sep", 9)
	case 'O':
		return confirm(s, "Oct", 10)
	case 'N':
		return confirm(s, "Nov", 11)
	case 'D':
		return confirm(s, "Dec", 12)
	}
	return 0
}

// confirm checks the characters the decision tree did not look at.
func confirm(s, abbrev string, month int) int {
	if s != abbrev {
		return 0
	}
	return month
}

// Package price normalizes free-form price text from WhatsApp messages
// into plain integer amounts.
package price

import "strconv"

// Clean extracts a non-negative integer from a price string such as
// "1,250 TL" or "₺54.999". Commas are treated as thousands grouping and
// discarded; every other non-digit rune (currency symbols, letters,
// dots, whitespace) is stripped, so "2.500" reads as 2500. The second
// return value is false when no amount could be recovered — malformed
// input is not an error.
func Clean(text string) (int, bool) {
	if text == "" {
		return 0, false
	}

	digits := make([]byte, 0, len(text))
	for _, r := range text {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r))
		}
	}
	if len(digits) == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(string(digits))
	if err != nil {
		// Overflow of the digit string; treat as unparseable.
		return 0, false
	}
	return n, true
}

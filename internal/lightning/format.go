package lightning

import "strconv"

// FormatTokens renders a token count as a fixed eight decimal big-unit
// string, e.g. 2500 tokens -> "0.00002500".
func FormatTokens(tokens int64) string {
	return strconv.FormatFloat(float64(tokens)/1e8, 'f', 8, 64)
}

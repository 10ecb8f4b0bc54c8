package common

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

const (
	NativeDecimals  = 18 // EVM native assets are 18-decimal (wei)
	GweiDecimals    = 9  // 1 gwei = 10^9 wei
	DisplayDecimals = 4  // balances are shown with 4 decimals
)

// FormatUnits converts base units to a decimal string without float precision loss.
// Trailing zeros of the fractional part are trimmed but one digit is always kept.
// Example: FormatUnits(1500000000000000000, 18) = "1.5"
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		value = new(big.Int)
	}
	neg := value.Sign() < 0
	s := new(big.Int).Abs(value).String()

	d := int(decimals)
	// Pad with leading zeros if needed
	for len(s) <= d {
		s = "0" + s
	}

	pos := len(s) - d
	whole, frac := s[:pos], strings.TrimRight(s[pos:], "0")
	if frac == "" {
		frac = "0"
	}
	if neg {
		whole = "-" + whole
	}
	return whole + "." + frac
}

// ParseUnits converts a decimal string to base units.
// More significant fractional digits than decimals is an error rather than a silent truncation.
// Example: ParseUnits("0.5", 18) = 500000000000000000
func ParseUnits(s string, decimals uint8) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty amount")
	}
	if strings.HasPrefix(s, "-") {
		return nil, errors.New("amount must not be negative")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return nil, errors.New("invalid decimal format")
	}

	whole := parts[0]
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}
	if whole == "" && frac == "" {
		return nil, errors.New("invalid decimal format")
	}

	// trailing zeros carry no value: "2.500" fits 2 decimals
	frac = strings.TrimRight(frac, "0")
	d := int(decimals)
	if len(frac) > d {
		return nil, fmt.Errorf("too many decimal places (max %d)", d)
	}
	frac += strings.Repeat("0", d-len(frac))

	combined := strings.TrimLeft(whole+frac, "0")
	if combined == "" {
		return new(big.Int), nil
	}
	for _, c := range combined {
		if c < '0' || c > '9' {
			return nil, fmt.Errorf("invalid amount %q", s)
		}
	}

	n, ok := new(big.Int).SetString(combined, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return n, nil
}

// FormatDisplay renders base units rounded half-up to DisplayDecimals places.
// Example: FormatDisplay(123456789000000000, 18) = "0.1235"
func FormatDisplay(value *big.Int, decimals uint8) string {
	if value == nil {
		value = new(big.Int)
	}
	if int(decimals) <= DisplayDecimals {
		scaled := new(big.Int).Mul(value, pow10(DisplayDecimals-int(decimals)))
		return fixed(scaled)
	}

	divisor := pow10(int(decimals) - DisplayDecimals)
	q, r := new(big.Int).QuoRem(value, divisor, new(big.Int))
	// Round half up
	if new(big.Int).Mul(r, big.NewInt(2)).Cmp(divisor) >= 0 {
		q.Add(q, big.NewInt(1))
	}
	return fixed(q)
}

// GweiToWei parses a gwei decimal string (e.g. "1.5") into wei.
func GweiToWei(gwei string) (*big.Int, error) {
	return ParseUnits(gwei, GweiDecimals)
}

// WeiToGwei formats wei as a gwei decimal string.
func WeiToGwei(wei *big.Int) string {
	return FormatUnits(wei, GweiDecimals)
}

// CompareAmounts compares two decimal string amounts of the same asset without float precision loss.
// Returns: -1 if a < b, 0 if a == b, 1 if a > b, and error if parsing fails
func CompareAmounts(a, b string, decimals uint8) (int, error) {
	aVal, err := ParseUnits(a, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", a, err)
	}

	bVal, err := ParseUnits(b, decimals)
	if err != nil {
		return 0, fmt.Errorf("failed to parse amount '%s': %w", b, err)
	}

	return aVal.Cmp(bVal), nil
}

// fixed formats an integer holding DisplayDecimals implied decimals.
func fixed(v *big.Int) string {
	s := v.String()
	for len(s) <= DisplayDecimals {
		s = "0" + s
	}
	pos := len(s) - DisplayDecimals
	return s[:pos] + "." + s[pos:]
}

func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}

package pages

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrInvalidPrice is returned when a price string holds no usable digits, or when the
	// line total it leads to does not fit an int
	ErrInvalidPrice = errors.New("invalid price")
	// ErrInvalidQuantity is returned for a line quantity below one
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
)

// ParsePrice keeps only the ASCII digits of s and parses them as whole currency units, so
// "Rs. 500" is 500. Decimal points and separators are dropped along with everything else.
func ParsePrice(s string) (int, error) {
	digits := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			digits = append(digits, s[i])
		}
	}
	if len(digits) == 0 {
		return 0, fmt.Errorf("%w: %q has no digits", ErrInvalidPrice, s)
	}

	n, err := strconv.Atoi(string(digits))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidPrice, s, err)
	}
	return n, nil
}

// CalculateExpectedTotal returns the line total the cart should show for quantity units at
// price, formatted as "Rs. {total}". Cart lines always hold at least one unit.
func CalculateExpectedTotal(price string, quantity int) (string, error) {
	if quantity < 1 {
		return "", fmt.Errorf("%w: got %d", ErrInvalidQuantity, quantity)
	}
	unit, err := ParsePrice(price)
	if err != nil {
		return "", err
	}
	if unit > math.MaxInt/quantity {
		return "", fmt.Errorf("%w: %q x %d overflows", ErrInvalidPrice, price, quantity)
	}
	return fmt.Sprintf("Rs. %d", unit*quantity), nil
}

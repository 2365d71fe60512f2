package utils

import (
	"fmt"
	"strings"
)

// FormatPaise renders a paise amount as a rupee string with Indian digit
// grouping, e.g. 123456789 paise -> "₹12,34,567.89". Negative amounts keep
// the sign in front of the rupee symbol.
func FormatPaise(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}

	rupees := paise / 100
	fraction := paise % 100

	return fmt.Sprintf("%s₹%s.%02d", sign, groupIndian(rupees), fraction)
}

// groupIndian inserts commas per the Indian numbering system: the last three
// digits form one group, every two digits after that form another
// (1,00,00,000 rather than 10,000,000).
func groupIndian(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	head := s[:len(s)-3]
	tail := s[len(s)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	groups = append([]string{head}, groups...)

	return strings.Join(groups, ",") + "," + tail
}

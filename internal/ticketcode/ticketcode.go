package ticketcode

import (
	"crypto/rand"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Alphabet for the random suffix. 32 symbols; I, O, 0 and 1 are excluded
// because they are easy to misread on a printed ticket.
const Alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const (
	SuffixLength    = 4
	prefixMinLength = 1
	prefixMaxLength = 3
)

// Pattern matches every code this package generates:
// {PREFIX}-{YYYYMMDD}-{SEQ:4}-{RANDOM:4}.
var Pattern = regexp.MustCompile(`^[A-Z0-9]{1,3}-\d{8}-\d{4}-[A-Z2-9]{4}$`)

var prefixPattern = regexp.MustCompile(`^[A-Z0-9]{1,3}$`)

// NormalizePrefix trims and uppercases a category code prefix.
func NormalizePrefix(prefix string) string {
	return strings.ToUpper(strings.TrimSpace(prefix))
}

// ValidPrefix reports whether the prefix is 1-3 uppercase alphanumerics.
func ValidPrefix(prefix string) bool {
	return prefixPattern.MatchString(prefix)
}

// RandomSuffix draws SuffixLength characters from Alphabet using crypto/rand.
// The suffix is defense in depth only; the database unique index on
// ticket_code is the actual uniqueness guarantee.
func RandomSuffix() (string, error) {
	buf := make([]byte, SuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	out := make([]byte, SuffixLength)
	for i, b := range buf {
		// len(Alphabet) is 32, so masking keeps the draw uniform
		out[i] = Alphabet[b&31]
	}
	return string(out), nil
}

// Build assembles a ticket code from its parts. seq wraps at 10000 so the
// segment stays four digits even on very busy days; uniqueness never rests
// on the sequence alone.
func Build(prefix string, day time.Time, seq int, suffix string) string {
	return fmt.Sprintf("%s-%s-%04d-%s", prefix, day.Format("20060102"), seq%10000, suffix)
}

// Generate produces a complete ticket code for the given prefix, issuance
// day and daily sequence number.
func Generate(prefix string, day time.Time, seq int) (string, error) {
	suffix, err := RandomSuffix()
	if err != nil {
		return "", err
	}
	return Build(NormalizePrefix(prefix), day, seq, suffix), nil
}

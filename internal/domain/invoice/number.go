package invoice

import (
	"fmt"
	"math/rand"
	"regexp"
	"time"
)

// MaxNumberAttempts bounds the regenerate-and-retry loop on a duplicate
// invoice number.
const MaxNumberAttempts = 5

var numberPattern = regexp.MustCompile(`^INV-\d{6}-\d{4}$`)

// NumberSource yields the random suffix; tests swap it for a fixed sequence.
type NumberSource func() int

func RandomSuffix() int {
	return rand.Intn(10000)
}

// GenerateNumber formats INV-YYYYMM-XXXX for the month of now.
func GenerateNumber(now time.Time, next NumberSource) string {
	if next == nil {
		next = RandomSuffix
	}
	return fmt.Sprintf("INV-%04d%02d-%04d", now.Year(), int(now.Month()), next()%10000)
}

func ValidNumber(n string) bool {
	return numberPattern.MatchString(n)
}

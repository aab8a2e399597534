package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"os"
	"time"
)

func ticketIDPrefix() string {
	if p := os.Getenv("TICKET_ID_PREFIX"); p != "" {
		return p
	}
	return "UNIU"
}

// NewTicketID builds the human-readable ticket code PREFIX-YYYYMMDD-NNNN.
// The numeric suffix comes from the crypto random source so codes are not
// guessable from submission order.
func NewTicketID(now time.Time) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("ticket id entropy: %w", err)
	}
	return fmt.Sprintf("%s-%s-%04d", ticketIDPrefix(), now.UTC().Format("20060102"), n.Int64()), nil
}

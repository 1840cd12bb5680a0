// Package invoiceno mints tax invoice numbers of the form
// YYMON_NICK_NNNNN, e.g. 26JAN_ACM_00001.
//
// The five digit suffix is a per-company sequence that never resets:
// the month token changes, the sequence keeps climbing. Uniqueness is
// enforced by whoever persists the number, not here.
package invoiceno

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultNickname is used when a company has no nickname
	DefaultNickname = "TAX"
	// SequenceDigits is the width of the zero-padded sequence suffix
	SequenceDigits = 5
	// MaxSequence is the largest sequence that fits the suffix
	MaxSequence = 99999
)

var (
	// ErrMalformedInvoiceNumber is returned when a stored number does not
	// end in a numeric sequence.
	ErrMalformedInvoiceNumber = errors.New("invoice number has no numeric sequence suffix")
	// ErrSequenceExhausted is returned when a company has used every
	// five digit sequence number.
	ErrSequenceExhausted = errors.New("invoice sequence exhausted")
)

// LatestNumberLookup finds the company's invoice number with the highest
// numeric suffix across its whole history.
type LatestNumberLookup interface {
	FindLatestInvoiceNumberForCompany(ctx context.Context, companyName string) (string, bool, error)
}

// Generator proposes the next invoice number for a company.
type Generator struct {
	lookup LatestNumberLookup
	now    func() time.Time
}

// NewGenerator creates a generator backed by lookup
func NewGenerator(lookup LatestNumberLookup) *Generator {
	return &Generator{lookup: lookup, now: time.Now}
}

// WithClock replaces the clock used when no invoice date is given
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Next returns the number following the company's latest invoice. A
// zero invoiceDate means today.
func (g *Generator) Next(ctx context.Context, companyName, nickname string, invoiceDate time.Time) (string, error) {
	if invoiceDate.IsZero() {
		invoiceDate = g.now()
	}

	latest, found, err := g.lookup.FindLatestInvoiceNumberForCompany(ctx, companyName)
	if err != nil {
		return "", fmt.Errorf("find latest invoice number: %w", err)
	}

	next := uint64(1)
	if found {
		last, err := Sequence(latest)
		if err != nil {
			return "", err
		}
		next = last + 1
	}
	if next > MaxSequence {
		return "", fmt.Errorf("%w for %q", ErrSequenceExhausted, companyName)
	}

	return Format(YearMonth(invoiceDate), nickname, next), nil
}

// YearMonth renders the two digit year and upper-case month, e.g. 26JAN.
func YearMonth(t time.Time) string {
	return t.Format("06") + strings.ToUpper(t.Format("Jan"))
}

// Format composes an invoice number. A blank nickname becomes TAX.
func Format(yearMonth, nickname string, sequence uint64) string {
	nickname = strings.TrimSpace(nickname)
	if nickname == "" {
		nickname = DefaultNickname
	}
	return fmt.Sprintf("%s_%s_%0*d", yearMonth, nickname, SequenceDigits, sequence)
}

// Sequence parses the trailing five characters of number.
func Sequence(number string) (uint64, error) {
	if len(number) < SequenceDigits {
		return 0, fmt.Errorf("%w: %q", ErrMalformedInvoiceNumber, number)
	}
	n, err := strconv.ParseUint(number[len(number)-SequenceDigits:], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedInvoiceNumber, number)
	}
	return n, nil
}

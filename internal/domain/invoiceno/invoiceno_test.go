package invoiceno

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryLedger mimics the storage collaborator: numbers per company,
// latest chosen by numeric suffix.
type memoryLedger struct {
	numbers map[string][]string
	err     error
}

func (m *memoryLedger) FindLatestInvoiceNumberForCompany(_ context.Context, companyName string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	var best string
	var bestSeq uint64
	found := false
	for _, n := range m.numbers[companyName] {
		seq, err := Sequence(n)
		if err != nil {
			continue
		}
		if !found || seq > bestSeq {
			best, bestSeq, found = n, seq, true
		}
	}
	return best, found, nil
}

func (m *memoryLedger) save(companyName, number string) {
	if m.numbers == nil {
		m.numbers = map[string][]string{}
	}
	m.numbers[companyName] = append(m.numbers[companyName], number)
}

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 10, 0, 0, 0, time.UTC)
}

func TestGenerator_SequenceContinuesAcrossMonths(t *testing.T) {
	ledger := &memoryLedger{}
	gen := NewGenerator(ledger)
	ctx := context.Background()

	first, err := gen.Next(ctx, "Acme", "ACM", date(2026, time.January, 15))
	require.NoError(t, err)
	assert.Equal(t, "26JAN_ACM_00001", first)
	ledger.save("Acme", first)

	second, err := gen.Next(ctx, "Acme", "ACM", date(2026, time.January, 20))
	require.NoError(t, err)
	assert.Equal(t, "26JAN_ACM_00002", second)
	ledger.save("Acme", second)

	third, err := gen.Next(ctx, "Acme", "ACM", date(2026, time.February, 2))
	require.NoError(t, err)
	assert.Equal(t, "26FEB_ACM_00003", third)
}

func TestGenerator_SequencesArePerCompany(t *testing.T) {
	ledger := &memoryLedger{}
	ledger.save("Acme", "25DEC_ACM_00267")
	gen := NewGenerator(ledger)

	got, err := gen.Next(context.Background(), "Beta Fuels", "BTF", date(2026, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, "26MAR_BTF_00001", got)

	got, err = gen.Next(context.Background(), "Acme", "ACM", date(2026, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, "26MAR_ACM_00268", got)
}

func TestGenerator_UsesNumericSuffixNotDate(t *testing.T) {
	ledger := &memoryLedger{}
	ledger.save("Acme", "26FEB_ACM_00009")
	ledger.save("Acme", "26JAN_ACM_00010")
	gen := NewGenerator(ledger)

	got, err := gen.Next(context.Background(), "Acme", "ACM", date(2026, time.March, 1))
	require.NoError(t, err)
	assert.Equal(t, "26MAR_ACM_00011", got)
}

func TestGenerator_DefaultNickname(t *testing.T) {
	gen := NewGenerator(&memoryLedger{})

	got, err := gen.Next(context.Background(), "Acme", "  ", date(2026, time.April, 1))
	require.NoError(t, err)
	assert.Equal(t, "26APR_TAX_00001", got)
}

func TestGenerator_ZeroDateUsesClock(t *testing.T) {
	gen := NewGenerator(&memoryLedger{}).WithClock(func() time.Time {
		return date(2027, time.November, 30)
	})

	got, err := gen.Next(context.Background(), "Acme", "ACM", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "27NOV_ACM_00001", got)
}

func TestGenerator_LookupError(t *testing.T) {
	boom := errors.New("db down")
	gen := NewGenerator(&memoryLedger{err: boom})

	_, err := gen.Next(context.Background(), "Acme", "ACM", date(2026, time.January, 1))
	assert.ErrorIs(t, err, boom)
}

func TestGenerator_Exhausted(t *testing.T) {
	ledger := &memoryLedger{}
	ledger.save("Acme", "26JAN_ACM_99999")
	gen := NewGenerator(ledger)

	_, err := gen.Next(context.Background(), "Acme", "ACM", date(2026, time.January, 2))
	assert.ErrorIs(t, err, ErrSequenceExhausted)
}

func TestSequence(t *testing.T) {
	n, err := Sequence("26JAN_PBMS_00267")
	require.NoError(t, err)
	assert.Equal(t, uint64(267), n)

	for _, bad := range []string{"", "123", "26JAN_ACM_0001X", "26JAN_ACM_-0001"} {
		_, err := Sequence(bad)
		assert.ErrorIs(t, err, ErrMalformedInvoiceNumber, bad)
	}
}

func TestYearMonth(t *testing.T) {
	assert.Equal(t, "26JAN", YearMonth(date(2026, time.January, 15)))
	assert.Equal(t, "09SEP", YearMonth(date(2009, time.September, 1)))
	assert.Equal(t, "00DEC", YearMonth(date(2100, time.December, 31)))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "26JAN_ACM_00042", Format("26JAN", "ACM", 42))
	assert.Equal(t, "26JAN_TAX_00001", Format("26JAN", "", 1))
}

package calculation

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rpgo/mortgage-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingLogger captures formatted messages for assertions.
type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingLogger) add(level, format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.add("DEBUG", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.add("INFO", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.add("WARN", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.add("ERROR", format, args...) }

func fixedClock(t *testing.T) time.Time {
	t.Helper()
	ts := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	SetNowFunc(func() time.Time { return ts })
	t.Cleanup(func() { SetNowFunc(time.Now) })
	return ts
}

func newReferenceLoan(t *testing.T) *Loan {
	t.Helper()
	loan, err := CreateLoan(decimal.NewFromInt(1_000_000), decimal.NewFromFloat(4.9), 30)
	require.NoError(t, err)
	return loan
}

func TestCreateLoan(t *testing.T) {
	loan := newReferenceLoan(t)

	terms := loan.Terms()
	assert.Equal(t, 360, terms.Months)
	assert.InDelta(t, 4.9/1200, terms.MonthlyRate.InexactFloat64(), 1e-15)
	assert.InDelta(t, 4.9, terms.AnnualRatePercent().InexactFloat64(), 1e-12)

	for _, c := range domain.Conventions {
		s, err := loan.Schedule(c)
		require.NoError(t, err)
		assert.Equal(t, 360, s.Len())
	}

	_, err := CreateLoan(decimal.NewFromInt(-1), decimal.NewFromInt(5), 30)
	assert.ErrorIs(t, err, domain.ErrInvalidTerms)
	_, err = CreateLoan(decimal.NewFromInt(1000), decimal.NewFromInt(-1), 30)
	assert.ErrorIs(t, err, domain.ErrInvalidTerms)
	_, err = CreateLoan(decimal.NewFromInt(1000), decimal.NewFromInt(5), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidTerms)
}

func TestLoan_ScheduleIsACopy(t *testing.T) {
	loan := newReferenceLoan(t)

	s, err := loan.Schedule(domain.EqualInstallment)
	require.NoError(t, err)
	s[0].Payment = decimal.Zero

	again, err := loan.Schedule(domain.EqualInstallment)
	require.NoError(t, err)
	assert.False(t, again[0].Payment.IsZero())

	_, err = loan.Schedule("balloon")
	assert.ErrorIs(t, err, domain.ErrUnknownConvention)
}

func TestLoan_PreviewEqualsCommit(t *testing.T) {
	fixedClock(t)
	for _, c := range domain.Conventions {
		for _, strategy := range []domain.Strategy{domain.ReduceTerm, domain.ReducePayment} {
			t.Run(string(c)+"/"+string(strategy), func(t *testing.T) {
				loan := newReferenceLoan(t)
				amount := decimal.NewFromInt(150_000)

				preview, err := loan.Preview(strategy, 48, amount, c)
				require.NoError(t, err)

				require.NoError(t, loan.AddPrepayment(48, amount, strategy, c))
				current, err := loan.Schedule(c)
				require.NoError(t, err)
				assert.True(t, current.Equal(preview.Schedule))

				saved, err := loan.InterestSaved(c)
				require.NoError(t, err)
				assert.True(t, saved.Equal(preview.InterestSaved), "saved %s preview %s", saved, preview.InterestSaved)
			})
		}
	}
}

func TestLoan_PreviewDoesNotMutate(t *testing.T) {
	loan := newReferenceLoan(t)
	before, err := loan.Schedule(domain.EqualPrincipal)
	require.NoError(t, err)

	_, err = loan.PreviewReducedTerm(12, decimal.NewFromInt(100_000), domain.EqualPrincipal)
	require.NoError(t, err)
	_, err = loan.PreviewReducedPayment(12, decimal.NewFromInt(100_000), domain.EqualPrincipal)
	require.NoError(t, err)

	after, err := loan.Schedule(domain.EqualPrincipal)
	require.NoError(t, err)
	assert.True(t, before.Equal(after))
	assert.Empty(t, loan.PrepaymentHistory())

	_, err = loan.PreviewReducedTerm(361, decimal.NewFromInt(1), domain.EqualPrincipal)
	assert.ErrorIs(t, err, domain.ErrInvalidMonth)
}

func TestLoan_RejectedAddLeavesStateUnchanged(t *testing.T) {
	loan := newReferenceLoan(t)
	require.NoError(t, loan.AddPrepayment(12, decimal.NewFromInt(800_000), domain.ReduceTerm, domain.EqualInstallment))

	before, err := loan.Schedule(domain.EqualInstallment)
	require.NoError(t, err)
	history := loan.PrepaymentHistory()
	require.Len(t, history, 1)

	tests := []struct {
		name     string
		month    int
		amount   decimal.Decimal
		strategy domain.Strategy
		c        domain.Convention
		want     error
	}{
		{"month zero", 0, decimal.NewFromInt(1), domain.ReduceTerm, domain.EqualInstallment, domain.ErrInvalidMonth},
		{"month past adjusted term", before.Len() + 1, decimal.NewFromInt(1), domain.ReduceTerm, domain.EqualInstallment, domain.ErrInvalidMonth},
		{"negative amount", 13, decimal.NewFromInt(-1), domain.ReduceTerm, domain.EqualInstallment, domain.ErrInvalidAmount},
		{"amount above balance", 13, before[12].RemainingPrincipal.Add(decimal.NewFromInt(1)), domain.ReduceTerm, domain.EqualInstallment, domain.ErrInvalidAmount},
		{"unknown strategy", 13, decimal.NewFromInt(1), "skip", domain.EqualInstallment, domain.ErrUnknownStrategy},
		{"unknown convention", 13, decimal.NewFromInt(1), domain.ReduceTerm, "balloon", domain.ErrUnknownConvention},
		// Valid against the current schedule, but replayed first it shortens
		// the term below the committed month-12 record's reach.
		{"earlier record invalidates later one", 6, decimal.NewFromInt(900_000), domain.ReduceTerm, domain.EqualInstallment, domain.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := loan.AddPrepayment(tt.month, tt.amount, tt.strategy, tt.c)
			assert.ErrorIs(t, err, tt.want)

			after, err := loan.Schedule(domain.EqualInstallment)
			require.NoError(t, err)
			assert.True(t, before.Equal(after))
			assert.Equal(t, history, loan.PrepaymentHistory())
		})
	}
}

func TestLoan_ClearRestoresOriginal(t *testing.T) {
	loan := newReferenceLoan(t)
	originals := make(map[domain.Convention]domain.Schedule)
	for _, c := range domain.Conventions {
		s, err := loan.Schedule(c)
		require.NoError(t, err)
		originals[c] = s
	}

	require.NoError(t, loan.AddPrepayment(24, decimal.NewFromInt(100_000), domain.ReduceTerm, domain.EqualInstallment))
	require.NoError(t, loan.AddPrepayment(36, decimal.NewFromInt(80_000), domain.ReducePayment, domain.EqualPrincipal))

	loan.ClearPrepayments()
	assert.Empty(t, loan.PrepaymentHistory())
	for _, c := range domain.Conventions {
		s, err := loan.Schedule(c)
		require.NoError(t, err)
		assert.True(t, s.Equal(originals[c]), string(c))

		saved, err := loan.InterestSaved(c)
		require.NoError(t, err)
		assert.True(t, saved.IsZero())
	}

	// Clearing twice is harmless.
	loan.ClearPrepayments()
	s, err := loan.Schedule(domain.EqualInstallment)
	require.NoError(t, err)
	assert.True(t, s.Equal(originals[domain.EqualInstallment]))
}

func TestLoan_ReplayIndependentOfAddOrder(t *testing.T) {
	ts := fixedClock(t)
	a := newReferenceLoan(t)
	b := newReferenceLoan(t)

	early := func(l *Loan) error {
		return l.AddPrepayment(24, decimal.NewFromInt(50_000), domain.ReduceTerm, domain.EqualInstallment)
	}
	late := func(l *Loan) error {
		return l.AddPrepayment(120, decimal.NewFromInt(50_000), domain.ReducePayment, domain.EqualInstallment)
	}

	require.NoError(t, early(a))
	require.NoError(t, late(a))
	require.NoError(t, late(b))
	require.NoError(t, early(b))

	sa, err := a.Schedule(domain.EqualInstallment)
	require.NoError(t, err)
	sb, err := b.Schedule(domain.EqualInstallment)
	require.NoError(t, err)
	assert.True(t, sa.Equal(sb))

	history := b.PrepaymentHistory()
	require.Len(t, history, 2)
	assert.Equal(t, 24, history[0].Month)
	assert.Equal(t, 120, history[1].Month)
	assert.Equal(t, ts, history[0].CreatedAt)
}

func TestLoan_ConventionsAreIndependent(t *testing.T) {
	loan := newReferenceLoan(t)
	require.NoError(t, loan.AddPrepayment(24, decimal.NewFromInt(100_000), domain.ReduceTerm, domain.EqualInstallment))

	ep, err := loan.Schedule(domain.EqualPrincipal)
	require.NoError(t, err)
	original, err := loan.OriginalSchedule(domain.EqualPrincipal)
	require.NoError(t, err)
	assert.True(t, ep.Equal(original))

	epSummary, err := loan.Summary(domain.EqualPrincipal)
	require.NoError(t, err)
	assert.True(t, epSummary.Prepaid.IsZero())
}

func TestLoan_SameMonthRecords(t *testing.T) {
	loan := newReferenceLoan(t)
	require.NoError(t, loan.AddPrepayment(60, decimal.NewFromInt(100_000), domain.ReduceTerm, domain.EqualPrincipal))
	require.NoError(t, loan.AddPrepayment(60, decimal.NewFromInt(100_000), domain.ReduceTerm, domain.EqualPrincipal))

	s, err := loan.Schedule(domain.EqualPrincipal)
	require.NoError(t, err)
	assert.True(t, s[59].Prepayment.Equal(decimal.NewFromInt(200_000)))

	single := newReferenceLoan(t)
	require.NoError(t, single.AddPrepayment(60, decimal.NewFromInt(200_000), domain.ReduceTerm, domain.EqualPrincipal))
	one, err := single.Schedule(domain.EqualPrincipal)
	require.NoError(t, err)
	assert.Equal(t, one.Len(), s.Len())
}

func TestLoan_SummaryAfterPrepayment(t *testing.T) {
	loan := newReferenceLoan(t)
	original, err := loan.Summary(domain.EqualInstallment)
	require.NoError(t, err)

	require.NoError(t, loan.AddPrepayment(60, decimal.NewFromInt(200_000), domain.ReduceTerm, domain.EqualInstallment))
	current, err := loan.Summary(domain.EqualInstallment)
	require.NoError(t, err)

	assert.Equal(t, 257, current.Months)
	assert.True(t, current.Prepaid.Equal(decimal.NewFromInt(200_000)))
	assert.True(t, current.TotalInterest.LessThan(original.TotalInterest))
	assert.True(t, current.TotalPayment.Equal(current.Principal.Add(current.TotalInterest)))

	saved, err := loan.InterestSaved(domain.EqualInstallment)
	require.NoError(t, err)
	s, err := loan.OriginalSchedule(domain.EqualInstallment)
	require.NoError(t, err)
	assert.True(t, saved.Equal(s.TotalInterest().Sub(current.TotalInterest)))
}

func TestLoan_LogsCommits(t *testing.T) {
	rec := &recordingLogger{}
	loan := newReferenceLoan(t)
	loan.SetLogger(WithPrefix(rec, "home"))

	require.NoError(t, loan.AddPrepayment(12, decimal.NewFromInt(1_000), domain.ReduceTerm, domain.EqualInstallment))
	require.Error(t, loan.AddPrepayment(0, decimal.NewFromInt(1_000), domain.ReduceTerm, domain.EqualInstallment))

	require.Len(t, rec.lines, 2)
	assert.Contains(t, rec.lines[0], "INFO [home] committed reduce-term prepayment")
	assert.Contains(t, rec.lines[1], "DEBUG [home] rejected")

	loan.SetLogger(nil)
	loan.ClearPrepayments()
	assert.Len(t, rec.lines, 2)
}

func TestLoan_ConcurrentAccess(t *testing.T) {
	loan := newReferenceLoan(t)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = loan.AddPrepayment(12+i, decimal.NewFromInt(1_000), domain.ReducePayment, domain.EqualPrincipal)
		}(i)
		go func() {
			defer wg.Done()
			s, err := loan.Schedule(domain.EqualPrincipal)
			assert.NoError(t, err)
			assert.Equal(t, 360, s.Len())
		}()
	}
	wg.Wait()
	assert.Len(t, loan.PrepaymentHistory(), 8)
}

package usage

// Period is the aggregation granularity.
type Period string

// Aggregation period constants.
const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodTotal Period = "total"
)

// IsValid checks if the period is one of the supported values.
func (p Period) IsValid() bool {
	return p == PeriodDay || p == PeriodMonth || p == PeriodTotal
}

// Budget is a token budget snapshot.
type Budget struct {
	tokensLimit     int64
	tokensRemaining int64
	isExhausted     bool
	resetsAt        int64 // unix millis, converted to ISO 8601 at transport layer
}

// NewBudget creates a Budget snapshot. A zero limit means unlimited.
func NewBudget(limit, remaining int64, isExhausted bool, resetsAt int64) Budget {
	return Budget{
		tokensLimit:     limit,
		tokensRemaining: remaining,
		isExhausted:     isExhausted,
		resetsAt:        resetsAt,
	}
}

// TokensLimit returns the token cap.
func (b Budget) TokensLimit() int64 { return b.tokensLimit }

// TokensRemaining returns tokens left.
func (b Budget) TokensRemaining() int64 { return b.tokensRemaining }

// IsExhausted reports whether the budget is spent.
func (b Budget) IsExhausted() bool { return b.isExhausted }

// ResetsAt returns the reset timestamp (unix millis).
func (b Budget) ResetsAt() int64 { return b.resetsAt }

// Consumption holds embedding API usage for a time period.
type Consumption struct {
	embeddingRequests int64
	tokens            int64
}

// NewConsumption creates a Consumption snapshot.
func NewConsumption(requests, tokens int64) Consumption {
	return Consumption{embeddingRequests: requests, tokens: tokens}
}

// EmbeddingRequests returns the number of embedding API calls.
func (c Consumption) EmbeddingRequests() int64 { return c.embeddingRequests }

// Tokens returns the total tokens consumed.
func (c Consumption) Tokens() int64 { return c.tokens }

// Report is an embedding API usage report for a time period.
type Report struct {
	period      Period
	periodStart int64
	periodEnd   int64
	consumption Consumption
	budget      Budget
}

// NewReport creates a usage report.
func NewReport(period Period, start, end int64, c Consumption, b Budget) Report {
	return Report{
		period:      period,
		periodStart: start,
		periodEnd:   end,
		consumption: c,
		budget:      b,
	}
}

// Period returns the aggregation granularity.
func (r *Report) Period() Period { return r.period }

// PeriodStart returns the period start timestamp (unix millis).
func (r *Report) PeriodStart() int64 { return r.periodStart }

// PeriodEnd returns the period end timestamp (unix millis).
func (r *Report) PeriodEnd() int64 { return r.periodEnd }

// Consumption returns the usage counters.
func (r *Report) Consumption() Consumption { return r.consumption }

// Budget returns the budget status.
func (r *Report) Budget() Budget { return r.budget }

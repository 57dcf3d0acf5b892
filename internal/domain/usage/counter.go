package usage

import (
	"strings"
	"time"

	"github.com/kailas-cloud/lexsearch/internal/domain"
)

const counterPrefix = domain.KeyPrefix + "budget:"

// CounterKey names the persisted token counter of provider for the UTC day or
// month containing t: lexsearch:budget:<provider>:<period>:<stamp>.
// PeriodTotal has no counter and yields "".
func CounterKey(provider string, p Period, t time.Time) string {
	var stamp string
	switch p {
	case PeriodDay:
		stamp = t.UTC().Format("2006-01-02")
	case PeriodMonth:
		stamp = t.UTC().Format("2006-01")
	default:
		return ""
	}
	return counterPrefix + provider + ":" + string(p) + ":" + stamp
}

// ParseCounterKey splits a key built by CounterKey. The provider may itself
// contain colons, so the period and stamp are taken from the right.
func ParseCounterKey(key string) (provider string, p Period, ok bool) {
	rest, found := strings.CutPrefix(key, counterPrefix)
	if !found {
		return "", "", false
	}
	i := strings.LastIndexByte(rest, ':')
	if i < 0 {
		return "", "", false
	}
	rest = rest[:i]
	j := strings.LastIndexByte(rest, ':')
	if j <= 0 {
		return "", "", false
	}
	p = Period(rest[j+1:])
	if p != PeriodDay && p != PeriodMonth {
		return "", "", false
	}
	return rest[:j], p, true
}

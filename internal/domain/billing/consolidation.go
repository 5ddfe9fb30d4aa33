package billing

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// GranularityPolicy controls how aggressively draft lines are merged
type GranularityPolicy string

const (
	// GranularityByClocking keeps one line per clocking, no merging
	GranularityByClocking GranularityPolicy = "BY_CLOCKING"
	// GranularityByDay merges equal lines delivered on the same day
	GranularityByDay GranularityPolicy = "BY_DAY"
	// GranularityNone merges all equal lines regardless of date
	GranularityNone GranularityPolicy = "NONE"
)

// IsValid checks if the policy is a known GranularityPolicy
func (p GranularityPolicy) IsValid() bool {
	switch p {
	case GranularityByClocking, GranularityByDay, GranularityNone:
		return true
	}
	return false
}

// allowsMerge is the policy's merge predicate, consulted only after the
// lines already bill the same item at the same price
func (p GranularityPolicy) allowsMerge(target, candidate DraftLine) bool {
	switch p {
	case GranularityByDay:
		return target.sameDay(candidate)
	case GranularityNone:
		return true
	default:
		return false
	}
}

var centPerLine = decimal.New(1, -2)

// Consolidate reduces a draft-line sequence under the granularity policy
// in a single left-to-right pass. A candidate merges into the most recent
// prior surviving line that bills the same item and satisfies the policy;
// lines already absorbed are gone and can never be merge targets, so merge
// chains cannot skip over intervening distinct lines. Sundry lines pass
// through untouched.
//
// The merge is value-preserving: the sum of line prices is unchanged up to
// one cent of re-rounding per eliminated line. A larger drift is a defect
// in the pricing arithmetic and panics.
func Consolidate(lines []DraftLine, policy GranularityPolicy) []DraftLine {
	if !policy.IsValid() {
		panic(fmt.Sprintf("unknown granularity policy %q", policy))
	}

	before := sumLinePrices(lines)
	result := make([]DraftLine, 0, len(lines))

	for _, candidate := range lines {
		if candidate.Sundry || policy == GranularityByClocking {
			result = append(result, cloneLine(candidate))
			continue
		}

		merged := false
		for i := len(result) - 1; i >= 0; i-- {
			target := &result[i]
			if target.Sundry {
				continue
			}
			if target.sameItem(candidate) && policy.allowsMerge(*target, candidate) {
				target.absorb(candidate)
				merged = true
				break
			}
		}
		if !merged {
			result = append(result, cloneLine(candidate))
		}
	}

	after := sumLinePrices(result)
	eliminated := int64(len(lines) - len(result))
	tolerance := centPerLine.Mul(decimal.NewFromInt(eliminated))
	if drift := before.Sub(after).Abs(); drift.GreaterThan(tolerance) {
		panic(fmt.Sprintf("consolidation drifted total by %s over tolerance %s - pricing defect", drift, tolerance))
	}

	return result
}

// SumLinePrices totals a draft-line sequence
func SumLinePrices(lines []DraftLine) decimal.Decimal {
	return sumLinePrices(lines)
}

func sumLinePrices(lines []DraftLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LinePrice)
	}
	return total
}

// cloneLine copies a line with its own provenance set, so merging never
// mutates the caller's input
func cloneLine(l DraftLine) DraftLine {
	sources := make(map[uuid.UUID]struct{}, len(l.SourceClockingIDs))
	for id := range l.SourceClockingIDs {
		sources[id] = struct{}{}
	}
	l.SourceClockingIDs = sources
	return l
}

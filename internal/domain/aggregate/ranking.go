package aggregate

import (
	"math"
	"sort"
)

// RankingEntry is one key of a frozen accumulator with its percentage.
type RankingEntry[K comparable] struct {
	Key        K
	Bucket     Bucket
	Percentage float64
}

// Percentage returns Matched/Total*100, or 0 when Total is 0.
func Percentage(b Bucket) float64 {
	if b.Total == 0 {
		return 0
	}
	return float64(b.Matched) / float64(b.Total) * 100
}

// Round rounds v half away from zero to the given decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Entries lists every key in domain order without sorting.
func Entries[K comparable](acc *Accumulator[K]) []RankingEntry[K] {
	keys := acc.Keys()
	out := make([]RankingEntry[K], 0, len(keys))
	for _, k := range keys {
		b := acc.Bucket(k)
		out = append(out, RankingEntry[K]{Key: k, Bucket: b, Percentage: Percentage(b)})
	}
	return out
}

// Rank sorts the entries descending by percentage. Equal percentages keep
// domain order.
func Rank[K comparable](acc *Accumulator[K]) []RankingEntry[K] {
	entries := Entries(acc)
	sortDescending(entries)
	return entries
}

// EntriesRounded is Entries with every percentage rounded to places.
func EntriesRounded[K comparable](acc *Accumulator[K], places int) []RankingEntry[K] {
	entries := Entries(acc)
	for i := range entries {
		entries[i].Percentage = Round(entries[i].Percentage, places)
	}
	return entries
}

// RankRounded rounds every percentage before sorting, so values equal at the
// given precision keep domain order.
func RankRounded[K comparable](acc *Accumulator[K], places int) []RankingEntry[K] {
	entries := EntriesRounded(acc, places)
	sortDescending(entries)
	return entries
}

func sortDescending[K comparable](entries []RankingEntry[K]) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Percentage > entries[j].Percentage
	})
}

// TopN returns at most n entries. It never pads.
func TopN[K comparable](ranked []RankingEntry[K], n int) []RankingEntry[K] {
	if n < 0 {
		n = 0
	}
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// MaxByTotal returns the first key in domain order with the largest total.
func MaxByTotal[K comparable](acc *Accumulator[K]) (K, Bucket, bool) {
	var (
		best  K
		bestB Bucket
		found bool
	)
	for _, k := range acc.Keys() {
		b := acc.Bucket(k)
		if !found || b.Total > bestB.Total {
			best, bestB, found = k, b, true
		}
	}
	return best, bestB, found
}

// MinByMatched returns the first key in domain order with the smallest
// matched weight.
func MinByMatched[K comparable](acc *Accumulator[K]) (K, Bucket, bool) {
	var (
		best  K
		bestB Bucket
		found bool
	)
	for _, k := range acc.Keys() {
		b := acc.Bucket(k)
		if !found || b.Matched < bestB.Matched {
			best, bestB, found = k, b, true
		}
	}
	return best, bestB, found
}

// Extremes returns the lowest and highest entries among those with a non-zero
// total, after a stable ascending sort by percentage. Ties resolve to the
// first entry in input order for the lowest and the last for the highest.
func Extremes[K comparable](entries []RankingEntry[K]) (lowest, highest RankingEntry[K], ok bool) {
	observed := make([]RankingEntry[K], 0, len(entries))
	for _, e := range entries {
		if e.Bucket.Total > 0 {
			observed = append(observed, e)
		}
	}
	if len(observed) == 0 {
		return lowest, highest, false
	}
	sort.SliceStable(observed, func(i, j int) bool {
		return observed[i].Percentage < observed[j].Percentage
	})
	return observed[0], observed[len(observed)-1], true
}

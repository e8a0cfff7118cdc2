// Package rating implements the FIDE-style rating arithmetic the tiebreak
// evaluator's performance-rating criteria (ARO/TPR/PTP) depend on. Ratings
// here are plain float64, not tiebreak.Decimal: rating/performance math uses
// ordinary floating point (unlike score arithmetic, it is never compared for
// exact equality), and keeping this package numeric-only avoids it importing
// the tiebreak package back.
package rating

import "math"

// ComputeExpectedScore returns the logistic expected score of the player
// rated self against an opponent rated opp, per the standard FIDE formula
// E = 1 / (1 + 10^((opp-self)/400)).
func ComputeExpectedScore(self, opp int) float64 {
	if self <= 0 || opp <= 0 {
		return 0.5
	}
	return 1.0 / (1.0 + math.Pow(10, float64(opp-self)/400.0))
}

// ComputeDeltaR returns the per-game difference between the actual score
// obtained and the expected score (actual - expected).
func ComputeDeltaR(expected, actual float64) float64 {
	return actual - expected
}

// ComputeAverageRatingOpponents returns the mean of the given opponent
// ratings (ARO), ignoring non-positive (unrated/absent) entries.
func ComputeAverageRatingOpponents(ratings []int) float64 {
	sum, n := 0, 0
	for _, r := range ratings {
		if r > 0 {
			sum += r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

// ComputeTournamentPerformanceRating returns the classic linear TPR estimate
// (ARO + 800*score/n - 400, equivalent to ARO + 400*(wins-losses)/n for a
// 1/½/0 score system) over the games whose opponent ratings are given.
func ComputeTournamentPerformanceRating(score float64, ratings []int) float64 {
	n := len(ratings)
	if n == 0 {
		return 0
	}
	aro := ComputeAverageRatingOpponents(ratings)
	dp := score*800/float64(n) - 400
	return aro + dp
}

// ComputePerfectTournamentPerformance returns the rating R for which the sum
// of logistic expected scores against the given opponents equals the actual
// score obtained — the "ideal" performance rating, found by bisection rather
// than TPR's linear approximation. The two degenerate cases (a perfect score
// or a score of zero, where no finite R satisfies the equation) are capped
// at ARO±800.
func ComputePerfectTournamentPerformance(score float64, ratings []int) float64 {
	n := len(ratings)
	if n == 0 {
		return 0
	}
	aro := ComputeAverageRatingOpponents(ratings)
	target := score / float64(n)
	if target <= 0 {
		return aro - 800
	}
	if target >= 1 {
		return aro + 800
	}
	lo, hi := aro-800, aro+800
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		sum := 0.0
		for _, r := range ratings {
			sum += ComputeExpectedScore(int(mid), r)
		}
		if sum/float64(n) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}

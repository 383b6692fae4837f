// Package editdist provides a bounded Levenshtein distance oracle over packed
// sequences.
//
// The computation is a single-row banded dynamic program. When a bound is
// supplied, the value on the forced diagonal (offset by the length difference)
// is checked after every outer step; once it reaches the bound the true
// distance can only grow, so the computation stops and returns that value as a
// safe lower bound. Callers only rely on the distinction "< maxD" versus
// ">= maxD".
package editdist

// Distance returns the Levenshtein distance between the packed sequence a of
// length la and the packed sequence b of length lb. If maxD >= 0 and the true
// distance is at least maxD, some value >= maxD is returned instead of the
// exact distance. maxD < 0 disables the early exit.
//
// Symbols are compared from the low-order fields upward, i.e. over the
// reversed sequences; the Levenshtein distance is invariant under reversing
// both operands.
func Distance(a uint64, la int, b uint64, lb int, maxD int) int {
	if la > lb {
		a, la, b, lb = b, lb, a, la
	}
	diagIndex := lb - la
	if maxD >= 0 && diagIndex >= maxD {
		return diagIndex
	}

	row := make([]int, lb+1)
	for j := range row {
		row[j] = j
	}

	ac := a
	for i := 1; i <= la; i, ac = i+1, ac>>2 {
		diagIndex++
		diag := row[0]
		row[0] = i

		bc := b
		for j := 1; j <= lb; j, bc = j+1, bc>>2 {
			cur := diag
			if ac&3 != bc&3 {
				cur++
			}
			if del := row[j] + 1; del < cur {
				cur = del
			}
			if ins := row[j-1] + 1; ins < cur {
				cur = ins
			}
			diag = row[j]
			row[j] = cur
		}

		if maxD >= 0 && row[diagIndex] >= maxD {
			break
		}
	}

	return row[diagIndex]
}

// DistanceStrings is Distance over plain byte strings of arbitrary alphabet
// and length. It backs the command-line oracle and tests.
func DistanceStrings(s1, s2 string, maxD int) int {
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}
	l1, l2 := len(s1), len(s2)
	diagIndex := l2 - l1
	if maxD >= 0 && diagIndex >= maxD {
		return diagIndex
	}

	row := make([]int, l2+1)
	for j := range row {
		row[j] = j
	}

	for i := 1; i <= l1; i++ {
		diagIndex++
		diag := row[0]
		row[0] = i

		for j := 1; j <= l2; j++ {
			cur := diag
			if s1[i-1] != s2[j-1] {
				cur++
			}
			if del := row[j] + 1; del < cur {
				cur = del
			}
			if ins := row[j-1] + 1; ins < cur {
				cur = ins
			}
			diag = row[j]
			row[j] = cur
		}

		if maxD >= 0 && row[diagIndex] >= maxD {
			break
		}
	}

	return row[diagIndex]
}

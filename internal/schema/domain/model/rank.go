package model

import (
	"fmt"
	"strings"

	apperrors "sheltercms/internal/shared/errors"
)

// Columns are ordered by lexicographically sortable rank strings instead of
// creation timestamps. A rank can always be generated between two neighbors
// without touching any other column, so inserts and reorders are single- or
// two-document writes.

const rankDigits = "0123456789abcdefghijklmnopqrstuvwxyz"

// ValidRank reports whether s is a well-formed rank string.
func ValidRank(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(rankDigits, s[i]) < 0 {
			return false
		}
	}
	return true
}

// InitialRank returns the rank assigned to the first column of a section.
func InitialRank() string {
	rank, _ := RankBetween("", "")
	return rank
}

// RankAfter returns a rank ordered after prev.
func RankAfter(prev string) (string, error) {
	return RankBetween(prev, "")
}

// RankBetween returns a rank strictly between prev and next. An empty prev
// means unbounded below, an empty next unbounded above.
func RankBetween(prev, next string) (string, error) {
	if prev != "" && !ValidRank(prev) {
		return "", fmt.Errorf("%w: invalid rank %q", apperrors.ErrInvalidInput, prev)
	}
	if next != "" && !ValidRank(next) {
		return "", fmt.Errorf("%w: invalid rank %q", apperrors.ErrInvalidInput, next)
	}
	if prev != "" && next != "" && prev >= next {
		return "", fmt.Errorf("%w: rank %q is not below %q", apperrors.ErrInvalidInput, prev, next)
	}

	var b strings.Builder
	for i := 0; ; i++ {
		p := 0
		if i < len(prev) {
			p = strings.IndexByte(rankDigits, prev[i])
		}
		n := len(rankDigits)
		if i < len(next) {
			n = strings.IndexByte(rankDigits, next[i])
		}

		if p == n {
			b.WriteByte(rankDigits[p])
			continue
		}

		mid := (p + n) / 2
		if mid > p {
			b.WriteByte(rankDigits[mid])
			return b.String(), nil
		}

		// Digits are adjacent: keep the lower digit and recurse past it.
		// The upper bound no longer constrains deeper positions.
		b.WriteByte(rankDigits[p])
		next = ""
	}
}

// SequentialRanks returns n ranks in ascending order, used when a section's
// columns are created in one batch.
func SequentialRanks(n int) []string {
	ranks := make([]string, 0, n)
	prev := ""
	for i := 0; i < n; i++ {
		rank, _ := RankBetween(prev, "")
		ranks = append(ranks, rank)
		prev = rank
	}
	return ranks
}

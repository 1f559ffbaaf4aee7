package pr

import (
	"fmt"
	"strconv"
	"strings"
)

const numberPrefix = "ADMIN/"

// NormalizeKey is the comparison form of a PR number: trimmed and
// lower-cased. Every uniqueness check in the system goes through it.
func NormalizeKey(prNumber string) string {
	return strings.ToLower(strings.TrimSpace(prNumber))
}

// FormatPRNumber builds the recommended "ADMIN/<year>/<sequence>" form.
// The format is advisory only; stores accept any non-empty PR number.
func FormatPRNumber(year, sequence string) string {
	return numberPrefix + year + "/" + sequence
}

// NextSequenceFrom scans records under "ADMIN/<year>/" and returns the next
// free sequence, zero-padded to at least three digits. Trailing segments
// that do not parse as base-10 integers are skipped, not counted as zero.
// Four-plus digit results are not truncated (1000 renders as "1000").
func NextSequenceFrom(records []Record, year string) string {
	prefix := strings.ToUpper(numberPrefix + year + "/")

	maxSeq := 0
	for _, r := range records {
		if !strings.HasPrefix(strings.ToUpper(r.PRNumber), prefix) {
			continue
		}
		parts := strings.Split(r.PRNumber, "/")
		n, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1]))
		if err != nil {
			continue
		}
		if n > maxSeq {
			maxSeq = n
		}
	}

	return fmt.Sprintf("%03d", maxSeq+1)
}

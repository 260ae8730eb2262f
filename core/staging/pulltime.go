package staging

import (
	"strings"

	"github.com/yardtools/yardcap/core/logger"
	"github.com/yardtools/yardcap/core/model"
)

// EarliestPullHour returns the earliest hour at which the train is
// referenced in any pull column, or found=false when it never is. A row
// matches when any pull cell contains the train ID as a substring.
//
// Hours compare under a day that can wrap past midnight: the scan holds the
// first matched hour and replaces it with a strictly smaller one, except
// that an hour of 23 displaces a held hour of 0 or 1 — a pull just before
// midnight belongs to the same operating cycle as the small hours after it,
// and anchors the cycle start. Matched rows with unusable time slots are
// skipped with a warning.
func EarliestPullHour(rows []model.YardPlanRow, trainID string, log logger.Logger) (int, bool) {
	earliest := 0
	found := false
	for _, row := range rows {
		if !rowMentionsTrain(row, trainID) {
			continue
		}
		hour, ok := row.Hour()
		if !ok {
			if log != nil {
				log.Warnf("train %s: pull row with unusable time slot %q", trainID, row.TimeText)
			}
			continue
		}
		if !found {
			earliest = hour
			found = true
			continue
		}
		if hour < earliest || (hour == 23 && earliest < 2) {
			earliest = hour
		}
	}
	return earliest, found
}

func rowMentionsTrain(row model.YardPlanRow, trainID string) bool {
	for _, cell := range row.Pulls {
		if strings.Contains(cell, trainID) {
			return true
		}
	}
	return false
}

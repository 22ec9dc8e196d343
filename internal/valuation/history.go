package valuation

import (
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"
)

// ReconstructHistory turns a daily cumulative-return series into an implied
// historical NAV table. The vendor only exposes cumulative returns, so the
// series is rescaled such that its terminal point lands exactly on the
// known current NAV:
//
//	impliedNav[i] = currentNav * (1 + r[i]/100) / (1 + r[n-1]/100)
//
// The day-over-day change is taken from consecutive cumulative-return
// ratios, which is equivalent to deriving it from the implied NAVs since the
// rescaling factor is constant. Rows are returned most-recent-first.
//
// An empty series yields an empty table and a single point yields one row
// with zero change. A terminal return of exactly -100% makes the rescaling
// undefined and returns ErrDegenerateReturnSeries.
func ReconstructHistory(series []model.ReturnSeriesPoint, currentNav float64) ([]model.HistoryRow, error) {
	if len(series) == 0 {
		return []model.HistoryRow{}, nil
	}

	terminal := 1 + series[len(series)-1].CumulativeReturnPct/100
	if terminal == 0 {
		return nil, apperrors.ErrDegenerateReturnSeries
	}

	rows := make([]model.HistoryRow, 0, len(series))
	for i := len(series) - 1; i >= 0; i-- {
		growth := 1 + series[i].CumulativeReturnPct/100

		// The ratio is computed first so the terminal row reproduces
		// currentNav exactly (growth/terminal is 1.0 when i == n-1).
		row := model.HistoryRow{
			Date:       series[i].Date,
			ImpliedNav: currentNav * (growth / terminal),
		}
		if i > 0 {
			prev := 1 + series[i-1].CumulativeReturnPct/100
			row.DayChangePct = (growth/prev - 1) * 100
		}
		rows = append(rows, row)
	}

	return rows, nil
}

package lifecycle

import (
	"errors"
	"time"
)

// ErrInvalidRange is returned for ranges where the end precedes the start.
var ErrInvalidRange = errors.New("end date precedes start date")

// Quote is the financial breakdown of a rental, frozen into the
// contract at approval time. Amounts are in agorot.
type Quote struct {
	Days             int
	TotalPrice       int64
	CommissionBps    int
	CommissionAmount int64
	LandlordPayout   int64
}

// RentalDays counts calendar days in [start, end] inclusive of both
// endpoints, so a same-day rental is one day.
func RentalDays(start, end time.Time) (int, error) {
	start = dateOnly(start)
	end = dateOnly(end)
	if end.Before(start) {
		return 0, ErrInvalidRange
	}
	return int(end.Sub(start).Hours()/24) + 1, nil
}

// NewQuote prices a rental. Commission is floored to whole agorot and
// the payout takes the remainder, so CommissionAmount+LandlordPayout
// always equals TotalPrice exactly.
func NewQuote(start, end time.Time, pricePerDay int64, commissionBps int) (*Quote, error) {
	days, err := RentalDays(start, end)
	if err != nil {
		return nil, err
	}

	total := int64(days) * pricePerDay
	commission := total * int64(commissionBps) / 10000

	return &Quote{
		Days:             days,
		TotalPrice:       total,
		CommissionBps:    commissionBps,
		CommissionAmount: commission,
		LandlordPayout:   total - commission,
	}, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

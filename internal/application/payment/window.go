package payment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var ErrOutsideWindow = errors.New("value above the limit allowed at this time")

// TransactionWindow rejects high-value payments submitted after the local
// cutoff hour. It is a stateless validation gate evaluated before strategy
// dispatch; rejected requests are client errors, never retried.
type TransactionWindow struct {
	Threshold  decimal.Decimal
	CutoffHour int
	// Now is injectable for tests. Defaults to time.Now.
	Now func() time.Time
}

func (w *TransactionWindow) Check(amount decimal.Decimal) error {
	now := time.Now
	if w.Now != nil {
		now = w.Now
	}

	if amount.GreaterThan(w.Threshold) && now().Local().Hour() >= w.CutoffHour {
		return ErrOutsideWindow
	}
	return nil
}

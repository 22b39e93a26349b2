package worker

import "time"

func (w *QuoteExpirationWorker) SetClock(now func() time.Time) {
	w.now = now
}

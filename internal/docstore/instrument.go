package docstore

import (
	"context"
	"errors"
	"time"
)

// Call outcomes reported to a Recorder.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeError    = "error"
)

// Recorder receives one observation per store round trip.
type Recorder interface {
	ObserveStoreCall(op, outcome string, d time.Duration)
}

type instrumented struct {
	next Store
	rec  Recorder
}

// Instrument wraps s so every Fetch and Write is reported to rec.
func Instrument(s Store, rec Recorder) Store {
	if rec == nil {
		return s
	}
	return &instrumented{next: s, rec: rec}
}

func (i *instrumented) Fetch(ctx context.Context, userID string) ([]byte, error) {
	start := time.Now()
	doc, err := i.next.Fetch(ctx, userID)
	i.rec.ObserveStoreCall("fetch", outcome(err), time.Since(start))
	return doc, err
}

func (i *instrumented) Write(ctx context.Context, userID string, doc []byte) error {
	start := time.Now()
	err := i.next.Write(ctx, userID, doc)
	i.rec.ObserveStoreCall("write", outcome(err), time.Since(start))
	return err
}

func outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrNotFound):
		return OutcomeNotFound
	default:
		return OutcomeError
	}
}

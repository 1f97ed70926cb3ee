// Package obs holds the request-scoped observability helpers shared by the
// HTTP layer and the adapters: the request ID context key and an operation
// timing logger.
package obs

import (
	"context"
	"log"
	"time"
)

type ctxKey string

// RequestIDKey carries the request ID set by the HTTP middleware so adapter
// log lines can be correlated with the request that triggered them.
const RequestIDKey ctxKey = "req_id"

// Time logs the duration of the enclosing operation when the returned
// function runs. Pass a pointer to the named error return so failures are
// logged with the same line:
//
//	defer obs.Time(ctx, "trips.repo.SaveTrip")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()

	reqID, _ := ctx.Value(RequestIDKey).(string)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			log.Printf("req_id=%s op=%s dur=%dms err=%v", reqID, name, dur.Milliseconds(), *errp)
			return
		}
		log.Printf("req_id=%s op=%s dur=%dms", reqID, name, dur.Milliseconds())
	}
}

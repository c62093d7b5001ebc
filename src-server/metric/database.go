package metric

import (
	"context"
	"errors"
	"time"

	"calendarcorp/src-server/model"
	"calendarcorp/src-server/utils"
)

// emptyReadTimeout bounds one sample so a locked database can't stall the ticker.
const emptyReadTimeout = 5 * time.Second

// emptyRead times a lookup that can never match, through the same store the
// routes use. Only a not-found answer counts as a sample.
func emptyRead(as *utils.AppState) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), emptyReadTimeout)
	defer cancel()

	start := time.Now()
	_, err := as.Events.GetByID(ctx, "")
	latency := time.Since(start)
	switch {
	case errors.Is(err, model.ErrEventNotFound):
		return latency, nil
	case err != nil:
		return 0, err
	default:
		return 0, errors.New("emptyRead: found an event with a blank id")
	}
}

package scheduler

import (
	"context"

	"wellbeing_station/internal/connectivity"
	"wellbeing_station/internal/logger"
	"wellbeing_station/internal/models"
	"wellbeing_station/internal/service"
)

// ConnectivityRecorder returns a connectivity.Options.OnStateChange hook that
// journals every connection state change. The final drop to Disconnected is
// fired after shutdown has cancelled ctx, so records detach from its
// cancellation.
func ConnectivityRecorder(ctx context.Context, j service.Journal, log *logger.Logger) func(from, to connectivity.State) {
	if log == nil {
		log = logger.NewNop()
	}
	ctx = context.WithoutCancel(ctx)
	return func(from, to connectivity.State) {
		log.Infow("connectivity_changed", "from", from.String(), "to", to.String())
		err := j.Record(ctx, models.EventConnectivity, "Connectivity "+to.String(), map[string]any{
			"from": from.String(),
			"to":   to.String(),
		})
		if err != nil {
			log.Warnw("journal_append_failed", "type", models.EventConnectivity, "err", err)
		}
	}
}

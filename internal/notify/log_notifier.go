package notify

import (
	"context"
	"log"

	"github.com/joshua-simon/gig-fort-v2/internal/domain"
)

// LogNotifier writes reminder notifications to the process log. It stands in
// for a push delivery backend.
type LogNotifier struct {
	logger *log.Logger
}

func NewLogNotifier(logger *log.Logger) *LogNotifier {
	if logger == nil {
		logger = log.Default()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, rem domain.Reminder, gig domain.Gig) error {
	n.logger.Printf("reminder user=%s gig=%q venue=%q starts_at=%s",
		rem.UserID, gig.Name, gig.Venue, gig.StartsAt.Format("15:04"))
	return nil
}

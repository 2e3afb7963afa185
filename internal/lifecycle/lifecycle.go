package lifecycle

import (
	"time"

	model "github.com/Abhijit03/auction-app/internal/models"
)

// IsAuctionActive reports whether an auction can accept bids at the given
// instant: the listing must be active and its end time still in the future.
// Pure function of the auction snapshot and the clock; an auction whose end
// time has passed is permanently non-biddable regardless of the active flag.
func IsAuctionActive(a model.Auction, now time.Time) bool {
	return a.IsActive && a.EndTime.After(now)
}

// TimeRemaining returns the time left until the auction closes, or zero if
// it has already closed.
func TimeRemaining(a model.Auction, now time.Time) time.Duration {
	if a.EndTime.After(now) {
		return a.EndTime.Sub(now)
	}
	return 0
}

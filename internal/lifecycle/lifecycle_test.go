package lifecycle

import (
	"testing"
	"time"

	model "github.com/Abhijit03/auction-app/internal/models"

	"github.com/stretchr/testify/require"
)

func TestIsAuctionActive(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	tests := []struct {
		name     string
		isActive bool
		endTime  time.Time
		expected bool
	}{
		{name: "active_and_open", isActive: true, endTime: now.Add(time.Hour), expected: true},
		{name: "active_but_ended", isActive: true, endTime: now.Add(-time.Hour), expected: false},
		{name: "inactive_and_open", isActive: false, endTime: now.Add(time.Hour), expected: false},
		{name: "inactive_and_ended", isActive: false, endTime: now.Add(-time.Hour), expected: false},
		{name: "ends_exactly_now", isActive: true, endTime: now, expected: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a := model.Auction{IsActive: tc.isActive, EndTime: tc.endTime}
			require.Equal(t, tc.expected, IsAuctionActive(a, now))
		})
	}
}

func TestTimeRemaining(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	open := model.Auction{EndTime: now.Add(30 * time.Minute)}
	require.Equal(t, 30*time.Minute, TimeRemaining(open, now))

	closed := model.Auction{EndTime: now.Add(-time.Minute)}
	require.Equal(t, time.Duration(0), TimeRemaining(closed, now))
}

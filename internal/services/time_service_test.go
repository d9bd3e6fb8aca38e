package services

import (
	"testing"
	"time"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeService_UsesConfiguredZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 02:30 UTC on March 6 is still March 5 in New York.
	fixed := time.Date(2024, 3, 6, 2, 30, 0, 0, time.UTC)
	svc := NewTimeService(ny, func() time.Time { return fixed })

	assert.Equal(t, "2024-03-05", svc.Today())
	assert.Equal(t, domain.Period{Today: "2024-03-05", Month: "2024-03", Year: "2024"}, svc.CurrentPeriod())
	assert.True(t, svc.IsToday("2024-03-05"))
	assert.False(t, svc.IsToday("2024-03-06"))
	assert.False(t, svc.IsToday(""))
}

func TestTimeService_PeriodFor(t *testing.T) {
	svc := NewTimeService(time.UTC, nil)

	period, err := svc.PeriodFor("2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, domain.Period{Today: "2023-12-31", Month: "2023-12", Year: "2023"}, period)

	for _, bad := range []string{"", "2023-13-01", "yesterday"} {
		_, err := svc.PeriodFor(bad)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInvalidInput), bad)
	}
}

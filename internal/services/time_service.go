package services

import (
	"time"

	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/validation"
)

// timeServiceImpl implements the TimeService interface
type timeServiceImpl struct {
	loc   *time.Location
	clock func() time.Time
}

// NewTimeService creates a TimeService reporting dates in loc.
func NewTimeService(loc *time.Location, clock func() time.Time) TimeService {
	if loc == nil {
		loc = time.Local
	}
	if clock == nil {
		clock = time.Now
	}
	return &timeServiceImpl{loc: loc, clock: clock}
}

// Now returns the current time in the configured zone.
func (t *timeServiceImpl) Now() time.Time {
	return t.clock().In(t.loc)
}

// Today returns the current calendar day as YYYY-MM-DD.
func (t *timeServiceImpl) Today() string {
	return t.CurrentPeriod().Today
}

// CurrentPeriod returns the summary windows containing now.
func (t *timeServiceImpl) CurrentPeriod() domain.Period {
	return domain.PeriodFor(t.Now())
}

// PeriodFor returns the windows containing the given YYYY-MM-DD day.
func (t *timeServiceImpl) PeriodFor(date string) (domain.Period, error) {
	if msg := validation.ValidCalendarDate(date, nil); msg != "" || date == "" {
		return domain.Period{}, errors.NewInvalidInputError("date", date, validation.MessageInvalidDate)
	}
	day, err := time.ParseInLocation("2006-01-02", date, t.loc)
	if err != nil {
		return domain.Period{}, errors.NewInvalidInputError("date", date, err.Error())
	}
	return domain.PeriodFor(day), nil
}

// IsToday checks whether date is the current day.
func (t *timeServiceImpl) IsToday(date string) bool {
	return date != "" && date == t.Today()
}

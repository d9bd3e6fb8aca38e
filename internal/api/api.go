package api

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Burh0n/LogiTrack-Pro/internal/directory"
	"github.com/Burh0n/LogiTrack-Pro/internal/domain"
	"github.com/Burh0n/LogiTrack-Pro/internal/errors"
	"github.com/Burh0n/LogiTrack-Pro/internal/events"
	"github.com/Burh0n/LogiTrack-Pro/internal/mirror"
	"github.com/Burh0n/LogiTrack-Pro/internal/notify"
	"github.com/Burh0n/LogiTrack-Pro/internal/repository/sqlite"
)

// Dependencies wires the facade. Only Repo is required.
type Dependencies struct {
	Repo                 sqlite.Repository
	Events               events.Publisher
	Notifier             notify.Notifier
	Mirror               *mirror.Mirror
	Directory            directory.Directory
	Location             *time.Location
	Clock                func() time.Time
	ProfileNameMaxLength int
	MirrorPermissions    os.FileMode
}

// SummaryReport is the cross-profile rollup for one period.
type SummaryReport struct {
	Period domain.Period           `json:"period"`
	Rows   []domain.ProfileSummary `json:"profiles"`
	Totals domain.ProfileSummary   `json:"totals"`
}

// MirrorReport describes the secondary copy for display.
type MirrorReport struct {
	State     string    `json:"state"`
	Target    string    `json:"target,omitempty"`
	LastWrite time.Time `json:"last_write,omitempty"`
	LastError string    `json:"last_error,omitempty"`
	Writes    int       `json:"writes"`
}

func newMirrorReport(st mirror.Status) *MirrorReport {
	report := &MirrorReport{
		State:     st.State.String(),
		Target:    st.Target,
		LastWrite: st.LastWrite,
		Writes:    st.Writes,
	}
	if st.LastError != nil {
		report.LastError = st.LastError.Error()
	}
	return report
}

// resolveIndex turns a user reference into a position among names. An exact
// name wins; otherwise ref is read as a 1-based position.
func resolveIndex(resource, ref string, names []string) (int, error) {
	ref = strings.TrimSpace(ref)
	for i, name := range names {
		if name == ref {
			return i, nil
		}
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(names) {
			return 0, errors.NewIndexOutOfRangeError(resource, n, len(names))
		}
		return n - 1, nil
	}
	return 0, errors.NewNotFoundError(resource, ref)
}

// parsePosition reads ref as a 1-based position. ok is false when ref is not
// a number, so callers fall back to treating it as an identifier.
func parsePosition(ref string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(ref))
	if err != nil {
		return 0, false
	}
	return n - 1, true
}

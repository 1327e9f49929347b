package weather

import "strings"

// PullHours is the set of UTC hours ("00".."23") at which non-primary
// locations are refreshed.
type PullHours map[string]struct{}

// NewPullHours builds a set from two-digit hour strings. "24" is accepted as
// an alias for midnight.
func NewPullHours(hours ...string) PullHours {
	set := make(PullHours, len(hours))
	for _, h := range hours {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if len(h) == 1 {
			h = "0" + h
		}
		if h == "24" {
			h = "00"
		}
		set[h] = struct{}{}
	}
	return set
}

// Contains reports whether hour is one of the pull hours.
func (p PullHours) Contains(hour string) bool {
	_, ok := p[hour]
	return ok
}

// ShouldFetch decides whether loc is fetched in the run started at requestTime.
func ShouldFetch(loc Location, requestTime string, pullHours PullHours) bool {
	if loc.AlwaysFetch {
		return true
	}
	return pullHours.Contains(HourOfDay(requestTime))
}

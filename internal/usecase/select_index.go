package usecase

import (
	"fmt"
	"time"

	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/logpath"
)

// Plan is the outcome of index selection: the index paths to read, in
// iteration order, and the name of the strategy that produced them.
type Plan struct {
	Strategy string
	Paths    []string
}

// IndexSelector picks the single most specific index for a sparse filter set.
// The rules form a fixed priority list evaluated top to bottom; the first
// match wins. There is no planner beyond this list.
type IndexSelector struct {
	base           string
	defaultProject string
	maxFanoutDates int
}

// NewIndexSelector creates a selector rooted at base. maxFanoutDates bounds
// the date fan-out fallback; zero or negative selects 366.
func NewIndexSelector(base, defaultProject string, maxFanoutDates int) *IndexSelector {
	if maxFanoutDates <= 0 {
		maxFanoutDates = 366
	}
	return &IndexSelector{
		base:           base,
		defaultProject: defaultProject,
		maxFanoutDates: maxFanoutDates,
	}
}

// query is a FilterSpec with the project dimension already resolved against
// the default project.
type query struct {
	domain.FilterSpec
	project string
}

func (q query) dims() logpath.Dimensions {
	return logpath.Dimensions{
		Project:  q.project,
		Server:   q.Server,
		Platform: q.Platform,
		Date:     q.Date,
		UserID:   q.UserID,
	}
}

// rule pairs a presence predicate with a path builder. Keeping the priority
// order in one declarative table makes it auditable and testable in
// isolation.
type rule struct {
	name  string
	match func(q query) bool
	kind  logpath.IndexKind
}

var rules = []rule{
	{"server-platform-date", func(q query) bool { return q.project != "" && q.Server != "" && q.Platform != "" && q.Date != "" }, logpath.KindServerPlatformDate},
	{"server-date", func(q query) bool { return q.project != "" && q.Server != "" && q.Date != "" }, logpath.KindServerDate},
	{"platform-date", func(q query) bool { return q.project != "" && q.Platform != "" && q.Date != "" }, logpath.KindPlatformDate},
	{"user-date", func(q query) bool { return q.project != "" && q.UserID != "" && q.Date != "" }, logpath.KindUserDate},
	{"project-date", func(q query) bool { return q.project != "" && q.Date != "" }, logpath.KindProjectDate},
	{"global-user-date", func(q query) bool { return q.UserID != "" && q.Date != "" }, logpath.KindGlobalUserDate},
	{"global-user", func(q query) bool { return q.UserID != "" }, logpath.KindGlobalUser},
	{"server-platform", func(q query) bool { return q.project != "" && q.Server != "" && q.Platform != "" }, logpath.KindServerPlatform},
	{"server", func(q query) bool { return q.project != "" && q.Server != "" }, logpath.KindServer},
	{"platform", func(q query) bool { return q.project != "" && q.Platform != "" }, logpath.KindPlatform},
	// An explicit project with no other dimension reads the project index
	// directly. A project that only comes from the default falls through to
	// the bounded date fan-out instead, which stays within the monthsBack
	// window rather than scanning the whole project.
	{"project", func(q query) bool { return q.Project != "" }, logpath.KindProject},
}

// Select chooses the strategy for f, evaluated against now for the date
// fan-out window. An unresolvable filter (no explicit dimensions and no
// default project) yields an empty plan, not an error.
func (s *IndexSelector) Select(f domain.FilterSpec, now time.Time) (Plan, error) {
	q := query{FilterSpec: f, project: f.EffectiveProject(s.defaultProject)}

	for _, r := range rules {
		if !r.match(q) {
			continue
		}
		path, err := logpath.EncodeIndexPath(s.base, r.kind, q.dims())
		if err != nil {
			return Plan{}, fmt.Errorf("strategy %s: %w", r.name, err)
		}
		return Plan{Strategy: r.name, Paths: []string{path}}, nil
	}

	if q.project == "" {
		return Plan{Strategy: "none"}, nil
	}

	paths := make([]string, 0, s.maxFanoutDates)
	for _, date := range s.fanoutDates(now, f.MonthsBack) {
		d := q.dims()
		d.Date = date
		path, err := logpath.EncodeIndexPath(s.base, logpath.KindProjectDate, d)
		if err != nil {
			return Plan{}, fmt.Errorf("strategy date-fanout: %w", err)
		}
		paths = append(paths, path)
	}
	return Plan{Strategy: "date-fanout", Paths: paths}, nil
}

// fanoutDates enumerates the dates in [now - monthsBack*30d, now], today
// inclusive, most recent first. monthsBack <= 0 means unbounded, which is
// still capped so a misconfigured filter cannot trigger a year-plus of round
// trips.
func (s *IndexSelector) fanoutDates(now time.Time, monthsBack int) []string {
	n := s.maxFanoutDates
	// Compare against the cap before multiplying so an extreme monthsBack
	// cannot overflow int and turn the window negative.
	if monthsBack > 0 && monthsBack <= (n-1)/30 {
		n = monthsBack*30 + 1
	}
	day := now.UTC()
	dates := make([]string, 0, n)
	for i := 0; i < n; i++ {
		dates = append(dates, day.AddDate(0, 0, -i).Format("2006-01-02"))
	}
	return dates
}

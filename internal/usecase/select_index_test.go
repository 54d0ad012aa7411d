package usecase

import (
	"math"
	"testing"
	"time"

	"github.com/megagames/logview/internal/domain"
)

var testNow = time.Date(2024, 9, 25, 15, 0, 0, 0, time.UTC)

func newTestSelector() *IndexSelector {
	return NewIndexSelector("logs", "Mega", 366)
}

func TestSelectPriorityOrder(t *testing.T) {
	s := newTestSelector()

	cases := []struct {
		name     string
		f        domain.FilterSpec
		strategy string
		path     string
	}{
		{
			"all dimensions choose the full composite index",
			domain.FilterSpec{Project: "Mega", Server: "S1", Platform: "Linux", Date: "2024-09-25", UserID: "u1"},
			"server-platform-date",
			"logs/index/spd/Mega/S1/Linux/2024-09-25",
		},
		{
			"server and date without platform",
			domain.FilterSpec{Server: "S1", Date: "2024-09-25"},
			"server-date",
			"logs/index/sd/Mega/S1/2024-09-25",
		},
		{
			"platform and date without server",
			domain.FilterSpec{Platform: "Linux", Date: "2024-09-25"},
			"platform-date",
			"logs/index/pd/Mega/Linux/2024-09-25",
		},
		{
			"user and date",
			domain.FilterSpec{UserID: "u1", Date: "2024-09-25"},
			"user-date",
			"logs/index/ud/Mega/u1/2024-09-25",
		},
		{
			"date only",
			domain.FilterSpec{Date: "2024-09-25"},
			"project-date",
			"logs/index/d/Mega/2024-09-25",
		},
		{
			"user only",
			domain.FilterSpec{UserID: "u1"},
			"global-user",
			"logs/index/gu/u1",
		},
		{
			"server and platform without date",
			domain.FilterSpec{Server: "S1", Platform: "Linux"},
			"server-platform",
			"logs/index/sp/Mega/S1/Linux",
		},
		{
			"server only",
			domain.FilterSpec{Server: "S1"},
			"server",
			"logs/index/s/Mega/S1",
		},
		{
			"platform only",
			domain.FilterSpec{Platform: "Linux"},
			"platform",
			"logs/index/p/Mega/Linux",
		},
		{
			"explicit project only",
			domain.FilterSpec{Project: "Other"},
			"project",
			"logs/index/proj/Other",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := s.Select(tc.f, testNow)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if plan.Strategy != tc.strategy {
				t.Errorf("strategy = %q, want %q", plan.Strategy, tc.strategy)
			}
			if len(plan.Paths) != 1 || plan.Paths[0] != tc.path {
				t.Errorf("paths = %v, want [%s]", plan.Paths, tc.path)
			}
		})
	}
}

func TestSelectGlobalUserDate(t *testing.T) {
	// With no project default at all, a user+date filter falls to the
	// project-free user index.
	s := NewIndexSelector("logs", "", 366)
	plan, err := s.Select(domain.FilterSpec{UserID: "u1", Date: "2024-09-25"}, testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Strategy != "global-user-date" {
		t.Errorf("strategy = %q, want global-user-date", plan.Strategy)
	}
	if len(plan.Paths) != 1 || plan.Paths[0] != "logs/index/gud/u1/2024-09-25" {
		t.Errorf("unexpected paths %v", plan.Paths)
	}
}

func TestSelectDateFanout(t *testing.T) {
	t.Run("empty filter fans out over the default project", func(t *testing.T) {
		s := newTestSelector()
		plan, err := s.Select(domain.FilterSpec{MonthsBack: 1}, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if plan.Strategy != "date-fanout" {
			t.Fatalf("strategy = %q, want date-fanout", plan.Strategy)
		}
		// One month back is 30 days plus today, most recent first.
		if len(plan.Paths) != 31 {
			t.Fatalf("expected 31 paths, got %d", len(plan.Paths))
		}
		if plan.Paths[0] != "logs/index/d/Mega/2024-09-25" {
			t.Errorf("first path %q should be today", plan.Paths[0])
		}
		if plan.Paths[30] != "logs/index/d/Mega/2024-08-26" {
			t.Errorf("last path %q should be the window start", plan.Paths[30])
		}
	})

	t.Run("unbounded monthsBack is capped", func(t *testing.T) {
		s := NewIndexSelector("logs", "Mega", 366)
		plan, err := s.Select(domain.FilterSpec{MonthsBack: 0}, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(plan.Paths) != 366 {
			t.Errorf("expected the 366-date cap, got %d paths", len(plan.Paths))
		}
	})

	t.Run("extreme monthsBack is capped, not overflowed", func(t *testing.T) {
		// monthsBack*30 would overflow int here; the window must clamp to
		// the cap instead of going negative.
		s := NewIndexSelector("logs", "Mega", 366)
		plan, err := s.Select(domain.FilterSpec{MonthsBack: math.MaxInt / 2}, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(plan.Paths) != 366 {
			t.Errorf("expected the 366-date cap, got %d paths", len(plan.Paths))
		}
	})

	t.Run("no default project yields an empty plan", func(t *testing.T) {
		s := NewIndexSelector("logs", "", 366)
		plan, err := s.Select(domain.FilterSpec{}, testNow)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(plan.Paths) != 0 {
			t.Errorf("expected no paths, got %d", len(plan.Paths))
		}
	})
}

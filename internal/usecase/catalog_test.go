package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/domain/mocks"
)

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	store := mocks.NewMockRecordStore()
	store.ChildrenByPath["logs/index/s/Mega"] = []string{"TESTINGSERVER", "PRODSERVER"}
	store.ChildrenByPath["logs/index/p/Mega"] = []string{"Linux", "Windows"}
	store.ChildrenByPath["logs/index/d/Mega"] = []string{"2024-09-24", "2024-09-25"}
	store.ChildrenByPath["logs/index/ud/Mega"] = []string{"user-b", "user-a"}
	store.ChildrenByPath["logs/index/proj"] = []string{"Other", "Mega"}

	c := NewCatalogUseCase(store, "logs", "Mega")

	t.Run("servers sorted for the default project", func(t *testing.T) {
		servers, err := c.Servers(ctx, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(servers) != 2 || servers[0] != "PRODSERVER" || servers[1] != "TESTINGSERVER" {
			t.Errorf("unexpected servers %v", servers)
		}
	})

	t.Run("users come from the user-date index", func(t *testing.T) {
		users, err := c.Users(ctx, "Mega")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users) != 2 || users[0] != "user-a" {
			t.Errorf("unexpected users %v", users)
		}
	})

	t.Run("projects listed from the project index root", func(t *testing.T) {
		projects, err := c.Projects(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(projects) != 2 || projects[0] != "Mega" {
			t.Errorf("unexpected projects %v", projects)
		}
	})

	t.Run("unknown project yields empty list", func(t *testing.T) {
		dates, err := c.Dates(ctx, "Nope")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dates) != 0 {
			t.Errorf("expected no dates, got %v", dates)
		}
	})

	t.Run("store failure propagates", func(t *testing.T) {
		store.ChildErr = domain.ErrStoreUnavailable
		defer func() { store.ChildErr = nil }()
		if _, err := c.Platforms(ctx, ""); !errors.Is(err, domain.ErrStoreUnavailable) {
			t.Fatalf("expected ErrStoreUnavailable, got %v", err)
		}
	})
}

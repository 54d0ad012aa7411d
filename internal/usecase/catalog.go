package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/logpath"
)

// CatalogUseCase lists the distinct dimension values present in the store,
// used to populate the viewer's filter dropdowns. The values come for free
// from the index tree: the children of an index node one level above the
// final dimension are exactly the distinct values of that dimension.
type CatalogUseCase struct {
	records        domain.RecordStore
	base           string
	defaultProject string
}

func NewCatalogUseCase(records domain.RecordStore, base, defaultProject string) *CatalogUseCase {
	return &CatalogUseCase{records: records, base: base, defaultProject: defaultProject}
}

// Servers lists the servers that have logged under project.
func (c *CatalogUseCase) Servers(ctx context.Context, project string) ([]string, error) {
	return c.children(ctx, logpath.KindServer, project)
}

// Platforms lists the platforms that have logged under project.
func (c *CatalogUseCase) Platforms(ctx context.Context, project string) ([]string, error) {
	return c.children(ctx, logpath.KindPlatform, project)
}

// Dates lists the dates with any log activity under project.
func (c *CatalogUseCase) Dates(ctx context.Context, project string) ([]string, error) {
	return c.children(ctx, logpath.KindProjectDate, project)
}

// Users lists the user ids that have logged under project.
func (c *CatalogUseCase) Users(ctx context.Context, project string) ([]string, error) {
	return c.children(ctx, logpath.KindUserDate, project)
}

// Projects lists every project present in the store.
func (c *CatalogUseCase) Projects(ctx context.Context) ([]string, error) {
	keys, err := c.records.ChildKeys(ctx, logpath.IndexRoot(c.base, logpath.KindProject))
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (c *CatalogUseCase) children(ctx context.Context, kind logpath.IndexKind, project string) ([]string, error) {
	if project == "" {
		project = c.defaultProject
	}
	if project == "" {
		return nil, nil
	}
	keys, err := c.records.ChildKeys(ctx, logpath.IndexRoot(c.base, kind)+"/"+project)
	if err != nil {
		return nil, fmt.Errorf("list %s values for %s: %w", kind, project, err)
	}
	sort.Strings(keys)
	return keys, nil
}

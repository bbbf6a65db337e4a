package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/catalog"
	"github.com/GoSim-25-26J-441/sitebuilder-backend/internal/projects/domain"
)

// LoadCatalog seeds the adapter's section templates from file (or the
// embedded defaults when file is empty) and returns the catalog.
func LoadCatalog(ctx context.Context, file string, store catalog.TemplateStore) (*catalog.MemoryCatalog, error) {
	var (
		defaults []domain.SectionTemplate
		err      error
	)
	if file != "" {
		b, rerr := os.ReadFile(file)
		if rerr != nil {
			return nil, fmt.Errorf("read catalog file: %w", rerr)
		}
		defaults, err = catalog.LoadYAML(b)
	} else {
		defaults, err = catalog.Defaults()
	}
	if err != nil {
		return nil, err
	}
	return catalog.Seed(ctx, store, defaults)
}

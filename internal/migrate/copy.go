package migrate

import (
	"context"

	"github.com/karmadeck/dbmigrate/pkg/logger"
)

// CopyTransform stages every source document unchanged under its own ID.
func CopyTransform(doc Document) *Write {
	logger.Infof("Copying document %s", doc.ID)
	return &Write{ID: doc.ID, Set: doc.Data}
}

// CopyCollection copies every document from source to target, preserving
// IDs. Like the code restructuring it is a single fetch and a single
// batch commit.
func CopyCollection(ctx context.Context, store Store, source, target string, dryRun bool) (Summary, error) {
	return Run(ctx, store, Job{
		Source:    source,
		Target:    target,
		Paginated: false,
		DryRun:    dryRun,
		Transform: CopyTransform,
	})
}

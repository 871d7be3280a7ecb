package migrate

import (
	"context"

	"github.com/karmadeck/dbmigrate/pkg/logger"
	"github.com/karmadeck/dbmigrate/pkg/utils"
)

// fieldRename moves a legacy field onto its replacement.
type fieldRename struct {
	old string
	new string
}

// The two player renames. Each rule fires independently.
var playerRenames = []fieldRename{
	{old: "karmaBalance", new: "karma"},
	{old: "karmaLegacy", new: "reputation"},
}

// TransformPlayer computes the update ops for one player document. For each
// rename whose legacy field is present: the new field is set from it unless
// the two are already numerically equal, and the legacy field is always
// deleted. No legacy fields present means no ops, so re-running the
// migration stages nothing.
func TransformPlayer(doc Document) []FieldOp {
	var ops []FieldOp
	for _, r := range playerRenames {
		oldVal, ok := doc.Data[r.old]
		if !ok {
			continue
		}
		if newVal, exists := doc.Data[r.new]; !exists || !utils.NumericallyEqual(oldVal, newVal) {
			ops = append(ops, SetField(r.new, oldVal))
		}
		ops = append(ops, DeleteField(r.old))
	}
	return ops
}

// PlayerTransform adapts TransformPlayer to the runner, logging a progress
// line per changed document.
func PlayerTransform(doc Document) *Write {
	ops := TransformPlayer(doc)
	if len(ops) == 0 {
		return nil
	}
	logger.Infof("Migrating player %s (%d field ops)", doc.ID, len(ops))
	return &Write{ID: doc.ID, Ops: ops}
}

// MigratePlayers renames the legacy karma fields across the players
// collection, paginated and in place.
func MigratePlayers(ctx context.Context, store Store, collection string, pageSize int, dryRun bool) (Summary, error) {
	return Run(ctx, store, Job{
		Source:    collection,
		Target:    collection,
		PageSize:  pageSize,
		Paginated: true,
		DryRun:    dryRun,
		Transform: PlayerTransform,
	})
}

package migrate

import (
	"context"
	"fmt"

	"github.com/karmadeck/dbmigrate/pkg/logger"
	"github.com/karmadeck/dbmigrate/pkg/utils"
)

// DefaultCodeLabel is stamped onto every restructured redemption code.
const DefaultCodeLabel = "Migrated Code"

// TransformCode rebuilds one legacy redemption-code document in the new
// schema. The returned write is keyed by the legacy document's code field;
// a document without a usable code is dropped (nil write) with a warning.
//
// A legacy redeemedBy field is taken to mean exactly one historical
// redemption. Its timestamp comes from redeemedTimestamp, falling back to
// updatedAt; when neither holds a native timestamp the redemption is left
// out of redeemers while redeemedCount stays 1. That mismatch matches the
// documents the old backend produced and downstream code tolerates it, so
// it is carried over as-is.
func TransformCode(doc Document) (*Write, []string) {
	code, ok := doc.Data["code"].(string)
	if !ok || code == "" {
		return nil, []string{fmt.Sprintf("document %s has no code field, skipping", doc.ID)}
	}

	var warnings []string

	out := map[string]interface{}{
		"code":           code,
		"label":          DefaultCodeLabel,
		"maxRedemptions": 1,
		"perUserLimit":   1,
		"expiresAt":      nil,
		"activeFrom":     nil,
		"karmaValue":     0,
		"redeemedCount":  0,
		"redeemers":      []map[string]interface{}{},
	}

	if v, ok := doc.Data["karmaValue"]; ok {
		out["karmaValue"] = v
	}
	for _, field := range []string{"createdAt", "updatedAt"} {
		if v, ok := doc.Data[field]; ok {
			out[field] = v
		} else {
			out[field] = ServerTimestamp
		}
	}

	if redeemedBy, ok := doc.Data["redeemedBy"]; ok && redeemedBy != nil {
		out["redeemedCount"] = 1
		ts, ok := utils.ToTime(doc.Data["redeemedTimestamp"])
		if !ok {
			ts, ok = utils.ToTime(doc.Data["updatedAt"])
		}
		if ok {
			out["redeemers"] = []map[string]interface{}{
				{"userId": redeemedBy, "timestamp": ts},
			}
		} else {
			warnings = append(warnings,
				fmt.Sprintf("code %s was redeemed but has no valid timestamp, redeemer not recorded", code))
		}
	}

	return &Write{ID: code, Set: out}, warnings
}

// CodeTransform adapts TransformCode to the runner, routing its warnings to
// the log.
func CodeTransform(doc Document) *Write {
	w, warnings := TransformCode(doc)
	for _, warning := range warnings {
		logger.Warnf("%s", warning)
	}
	if w != nil {
		logger.Infof("Restructured code document %s as %s", doc.ID, w.ID)
	}
	return w
}

// RestructureCodes rewrites the legacy redemption-code collection into the
// new schema under a fresh target collection. The whole source is read in
// one fetch and written in one batch, so the run is all-or-nothing; the
// target is expected to be empty (fresh name per run, by convention).
func RestructureCodes(ctx context.Context, store Store, source, target string, dryRun bool) (Summary, error) {
	return Run(ctx, store, Job{
		Source:    source,
		Target:    target,
		Paginated: false,
		DryRun:    dryRun,
		Transform: CodeTransform,
	})
}

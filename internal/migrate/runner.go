package migrate

import (
	"context"
	"fmt"
	"time"

	"github.com/karmadeck/dbmigrate/pkg/logger"
)

// TransformFunc maps one source document to a staged write against the
// target collection. A nil result skips the document.
type TransformFunc func(doc Document) *Write

// Job configures one migration run for the shared runner: where to read,
// where to write, how to transform, and whether to page through the source
// or read it in one shot.
type Job struct {
	Source    string
	Target    string
	PageSize  int
	Paginated bool
	DryRun    bool
	Transform TransformFunc
}

// Summary carries the counters for a single run. It is only meaningful for
// the run that produced it.
type Summary struct {
	Processed int
	Migrated  int
	Errored   int
}

func (s Summary) String() string {
	return fmt.Sprintf("processed=%d migrated=%d errored=%d", s.Processed, s.Migrated, s.Errored)
}

// Run executes the job sequentially: one page (or the whole collection) is
// fetched, transformed and committed before the next fetch. The returned
// Summary is valid even when err is non-nil.
func Run(ctx context.Context, store Store, job Job) (Summary, error) {
	if job.PageSize <= 0 {
		job.PageSize = 100
	}

	logger.Infof("Starting migration '%s' -> '%s'. Paginated: %v, Page Size: %d, DryRun: %v",
		job.Source, job.Target, job.Paginated, job.PageSize, job.DryRun)
	start := time.Now()

	var sum Summary
	var err error
	if job.Paginated {
		sum, err = runPaginated(ctx, store, job)
	} else {
		sum, err = runSinglePass(ctx, store, job)
	}
	if err != nil {
		return sum, err
	}

	logger.Infof("Migration complete in %s. Summary: %s", time.Since(start).Round(time.Millisecond), sum)
	return sum, nil
}

// runPaginated walks the source collection in ID order, one page per
// iteration, committing one batch per page. A failed commit is charged
// against the whole page (the store does not report which staged ops
// failed) and the loop moves on to the next page.
func runPaginated(ctx context.Context, store Store, job Job) (Summary, error) {
	var sum Summary
	cursor := ""

	for {
		docs, err := store.FetchPage(ctx, job.Source, cursor, job.PageSize)
		if err != nil {
			return sum, fmt.Errorf("failed to fetch page after '%s' from '%s': %w", cursor, job.Source, err)
		}
		if len(docs) == 0 {
			break
		}

		batch := store.Batch(job.Target)
		for _, doc := range docs {
			sum.Processed++
			w := job.Transform(doc)
			if w == nil {
				continue
			}
			stage(batch, w)
		}

		staged := batch.Len()
		switch {
		case staged == 0:
			logger.Infof("Page of %d documents needed no changes", len(docs))
		case job.DryRun:
			logger.Infof("[DRY RUN] Would commit %d updates to '%s'", staged, job.Target)
			sum.Migrated += staged
		default:
			if err := batch.Commit(ctx); err != nil {
				logger.Errorf("Batch commit failed for page ending at '%s': %v", docs[len(docs)-1].ID, err)
				sum.Errored += len(docs)
			} else {
				logger.Infof("Committed %d updates to '%s'", staged, job.Target)
				sum.Migrated += staged
			}
		}

		cursor = docs[len(docs)-1].ID
	}

	return sum, nil
}

// runSinglePass reads the whole source collection in one fetch and commits
// all staged writes in one batch. There is no second batch to continue to,
// so a failed commit ends the run.
func runSinglePass(ctx context.Context, store Store, job Job) (Summary, error) {
	var sum Summary

	docs, err := store.FetchAll(ctx, job.Source)
	if err != nil {
		return sum, fmt.Errorf("failed to read collection '%s': %w", job.Source, err)
	}
	logger.Infof("Read %d documents from '%s'", len(docs), job.Source)

	batch := store.Batch(job.Target)
	for _, doc := range docs {
		sum.Processed++
		w := job.Transform(doc)
		if w == nil {
			continue
		}
		stage(batch, w)
	}

	staged := batch.Len()
	if staged == 0 {
		logger.Infof("Nothing to write to '%s'", job.Target)
		return sum, nil
	}
	if job.DryRun {
		logger.Infof("[DRY RUN] Would commit %d documents to '%s'", staged, job.Target)
		sum.Migrated += staged
		return sum, nil
	}

	if err := batch.Commit(ctx); err != nil {
		sum.Errored += staged
		return sum, err
	}
	logger.Infof("Committed %d documents to '%s'", staged, job.Target)
	sum.Migrated += staged
	return sum, nil
}

func stage(batch Batch, w *Write) {
	if w.Set != nil {
		batch.Set(w.ID, w.Set)
	} else {
		batch.Update(w.ID, w.Ops)
	}
}

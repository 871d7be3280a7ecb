package cli

import (
	"context"

	"github.com/karmadeck/dbmigrate/internal/config"
	"github.com/karmadeck/dbmigrate/internal/migrate"
	"github.com/karmadeck/dbmigrate/pkg/database"
	"github.com/karmadeck/dbmigrate/pkg/logger"
)

func runMigratePlayers(ctx context.Context, backend, credFile string, opts *playerOptions) error {
	store, closeStore, err := openStore(ctx, backend, credFile)
	if err != nil {
		return err
	}
	defer closeStore()

	sum, err := migrate.MigratePlayers(ctx, store, opts.Collection, opts.BatchSize, opts.DryRun)
	if err != nil {
		return err
	}
	logger.Infof("Player migration finished: %s", sum)
	return nil
}

func runRestructureCodes(ctx context.Context, backend string, opts *collectionOptions) error {
	store, closeStore, err := openStore(ctx, backend, opts.Credentials)
	if err != nil {
		return err
	}
	defer closeStore()

	sum, err := migrate.RestructureCodes(ctx, store, opts.Source, opts.Target, opts.DryRun)
	if err != nil {
		return err
	}
	logger.Infof("Code restructuring finished: %s", sum)
	return nil
}

func runCopyCollection(ctx context.Context, backend string, opts *collectionOptions) error {
	store, closeStore, err := openStore(ctx, backend, opts.Credentials)
	if err != nil {
		return err
	}
	defer closeStore()

	sum, err := migrate.CopyCollection(ctx, store, opts.Source, opts.Target, opts.DryRun)
	if err != nil {
		return err
	}
	logger.Infof("Collection copy finished: %s", sum)
	return nil
}

// openStore loads the store config and connects the selected backend.
// The returned func releases the underlying client.
func openStore(ctx context.Context, backend, credFile string) (migrate.Store, func(), error) {
	cfg, err := config.LoadConfig(backend)
	if err != nil {
		return nil, nil, err
	}

	switch cfg.Backend {
	case config.BackendMongo:
		client, err := database.ConnectMongo(cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			_ = client.Disconnect(context.Background())
		}
		return migrate.NewMongoStore(client.Database(cfg.MongoDatabase)), closeStore, nil
	default:
		client, err := database.ConnectFirestore(ctx, credFile, cfg.ProjectID)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			_ = client.Close()
		}
		return migrate.NewFirestoreStore(client), closeStore, nil
	}
}

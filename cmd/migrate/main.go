// Command migrate applies migrations/*.sql to the configured database with
// Atlas' declarative schema apply. The atlas binary must be on PATH.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"tour-booking/internal/pkg/config"
	"tour-booking/internal/pkg/errs"

	"ariga.io/atlas-go-sdk/atlasexec"
)

func main() {
	var (
		schemaDir = flag.String("dir", "migrations", "directory holding the desired schema")
		devURL    = flag.String("dev-url", "docker://postgres/16/dev", "Atlas dev database used to compute the diff")
		dryRun    = flag.Bool("dry-run", false, "print the planned statements without applying them")
	)
	flag.Parse()

	if err := run(*schemaDir, *devURL, *dryRun); err != nil {
		slog.Error("migration failed", "error", err.Error())
		os.Exit(1)
	}
}

func run(schemaDir, devURL string, dryRun bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	client, err := atlasexec.NewClient(".", "atlas")
	if err != nil {
		return errs.Wrap(err, "failed to initialize atlas client")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := client.SchemaApply(ctx, &atlasexec.SchemaApplyParams{
		URL:         cfg.DB.BuildDSN(),
		To:          "file://" + schemaDir,
		DevURL:      devURL,
		DryRun:      dryRun,
		AutoApprove: true,
	})
	if err != nil {
		return errs.Wrap(err, "schema apply")
	}

	if dryRun {
		slog.Info("planned changes", "statements", res.Changes.Pending)
		return nil
	}
	slog.Info("schema applied", "statements", len(res.Changes.Applied))
	return nil
}

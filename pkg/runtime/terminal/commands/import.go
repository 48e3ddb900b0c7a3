package commands

import (
	"context"
	"fmt"

	"github.com/de-tools/property-atlas/pkg/services/dataset"
	"github.com/de-tools/property-atlas/pkg/store/duckdb"
	"github.com/de-tools/property-atlas/pkg/store/duckdb/records"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

type ImportCmd struct {
	rt   *Runtime
	from string
	into string
}

// NewImportCmd copies a validated record source into a DuckDB file that can
// later be used as a duckdb:// source.
func NewImportCmd(rt *Runtime) *cobra.Command {
	ic := &ImportCmd{rt: rt}
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import period records into a DuckDB database",
		RunE:  ic.run,
	}

	cmd.Flags().StringVar(&ic.from, "from", "", "Source to read (path, duckdb:// or s3:// URI)")
	cmd.Flags().StringVar(&ic.into, "into", "property-atlas.db", "DuckDB database file to write")
	_ = cmd.MarkFlagRequired("from")

	return cmd
}

func (ic *ImportCmd) run(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	reader, closeFn, err := ic.rt.Sources.Open(ctx, ic.from)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", ic.from, err)
	}
	defer func() {
		if err := closeFn(); err != nil {
			logger.Warn().Err(err).Msg("failed to close source")
		}
	}()

	rows, err := reader.ReadRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ic.from, err)
	}
	ds, err := dataset.Load(ctx, rows)
	if err != nil {
		return err
	}

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: ic.into})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}
	defer db.Close()

	store, err := records.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create record store: %w", err)
	}
	err = duckdb.InTransaction(ctx, db, func(ctx context.Context) error {
		return store.Add(ctx, ds.AllRecords())
	})
	if err != nil {
		return fmt.Errorf("failed to import records: %w", err)
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d records into %s (%d total)\n", ds.Len(), ic.into, total)
	return nil
}

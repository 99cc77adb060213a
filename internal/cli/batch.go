package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/export"
	"github.com/matzehuels/menulink/pkg/link"
	"github.com/matzehuels/menulink/pkg/registry"
)

const (
	defaultConcurrency = 4
	maxTableRange      = 1000
)

// batchCommand creates the batch command.
func (c *CLI) batchCommand() *cobra.Command {
	var (
		tables      string
		scopeName   string
		concurrency int
		outDir      string
		logo        string
		noLogo      bool
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Export QR codes for many tables at once",
		Long: `Export QR codes for a set of tables.

With --scope table each table gets one whole-menu code. With category or item,
each table gets one code per catalog entry. Failed exports are reported and
the batch carries on.`,
		Example: `  menulink batch --tables 1-12
  menulink batch --tables 1-4,Patio --scope category -o print/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			labels, err := parseTables(tables)
			if err != nil {
				return err
			}
			scope, err := link.ParseScope(scopeName)
			if err != nil {
				return err
			}

			svc, err := c.newServices(ctx, noCache, outDir)
			if err != nil {
				return err
			}
			defer svc.Close()

			reg := registry.New()
			if err := encodeBatch(svc, reg, scope, labels); err != nil {
				return err
			}
			return c.exportBatch(ctx, svc, reg.List(), logoRef(svc.cfg, logo, noLogo), concurrency)
		},
	}

	cmd.Flags().StringVar(&tables, "tables", "", "tables to export, e.g. 1-12,Patio (required)")
	cmd.Flags().StringVar(&scopeName, "scope", "table", "link scope: table, category or item")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", defaultConcurrency, "parallel exports")
	cmd.Flags().StringVarP(&outDir, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&logo, "logo", "", "branding logo URL or path (default from config)")
	cmd.Flags().BoolVar(&noLogo, "no-logo", false, "export without the branding logo")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the fetch cache")
	cmd.MarkFlagRequired("tables")

	return cmd
}

// encodeBatch inserts one record per table and target into reg.
func encodeBatch(svc *services, reg *registry.Registry, scope link.Scope, labels []string) error {
	targets := []*link.Target{nil}
	if scope.NeedsTarget() {
		targets = svc.cfg.Catalog().Targets(scope)
		if len(targets) == 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "no %s entries in the catalog", scope)
		}
	}
	for _, label := range labels {
		for _, t := range targets {
			rec, err := svc.encoder.EncodeFor(svc.cfg.Restaurant, scope, label, t)
			if err != nil {
				return err
			}
			reg.Insert(rec)
		}
	}
	return nil
}

// exportBatch downloads every record with at most concurrency exports in flight.
// Records whose titles map to the same file are rejected before anything is
// written.
func (c *CLI) exportBatch(ctx context.Context, svc *services, records []*link.Record, logo string, concurrency int) error {
	if err := checkFilenames(records); err != nil {
		return err
	}
	prog := newProgress(loggerFromContext(ctx), len(records))
	printInfo("Exporting %s codes", StyleNumber.Render(strconv.Itoa(len(records))))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for _, rec := range records {
		g.Go(func() error {
			path, err := svc.exporter.Download(gctx, rec, logo)
			if errors.Is(err, errors.ErrCodeCanceled) {
				return err
			}
			prog.record(rec.Title, err)
			if err != nil {
				printError("%s: %s", rec.Title, errors.UserMessage(err))
				return nil
			}
			printFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	prog.finish()
	if n := prog.Failed(); n > 0 {
		return errors.New(errors.ErrCodeFetchFailed, "%d of %d exports failed", n, len(records))
	}
	printSuccess("All codes saved")
	return nil
}

// checkFilenames reports titles that would overwrite each other's PNG.
func checkFilenames(records []*link.Record) error {
	owner := make(map[string]string, len(records))
	var clashes []string
	for _, rec := range records {
		name := export.Filename(rec.Title)
		if prev, ok := owner[name]; ok {
			clashes = append(clashes, fmt.Sprintf("%q and %q (%s)", prev, rec.Title, name))
			continue
		}
		owner[name] = rec.Title
	}
	if len(clashes) > 0 {
		return errors.New(errors.ErrCodeInvalidInput, "codes would share a file name: %s", strings.Join(clashes, "; "))
	}
	return nil
}

// parseTables expands a comma-separated list of labels and numeric ranges
// ("1-3,Patio" becomes 1, 2, 3, Patio). Duplicates are dropped.
func parseTables(ranges string) ([]string, error) {
	var labels []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			labels = append(labels, s)
		}
	}

	for _, part := range strings.Split(ranges, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		if !isRange {
			add(part)
			continue
		}
		from, err1 := strconv.Atoi(strings.TrimSpace(lo))
		to, err2 := strconv.Atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil {
			// Labels like "A-1" are not ranges.
			add(part)
			continue
		}
		if from > to || to-from >= maxTableRange {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid table range %q", part)
		}
		for i := from; i <= to; i++ {
			add(strconv.Itoa(i))
		}
	}
	if len(labels) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no tables given")
	}
	return labels, nil
}

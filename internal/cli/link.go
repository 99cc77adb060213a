package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/menulink/pkg/config"
	"github.com/matzehuels/menulink/pkg/errors"
	"github.com/matzehuels/menulink/pkg/link"
)

// linkOpts holds the flags of the link command.
type linkOpts struct {
	table    string
	category string
	item     string
	name     string
	strict   bool

	download bool
	copy     bool
	open     bool
	outDir   string
	logo     string
	noLogo   bool
	noCache  bool
}

// scope derives the link scope from the target flags.
func (o *linkOpts) scope() (link.Scope, string) {
	switch {
	case o.category != "":
		return link.ScopeCategory, o.category
	case o.item != "":
		return link.ScopeItem, o.item
	default:
		return link.ScopeTable, ""
	}
}

// linkCommand creates the link command.
func (c *CLI) linkCommand() *cobra.Command {
	opts := linkOpts{}

	cmd := &cobra.Command{
		Use:   "link [table]",
		Short: "Encode a table deep link and export it",
		Long: `Encode a deep link for a table, optionally filtered to one menu category or item.

Without export flags the link is printed. --download writes a branded PNG,
--copy puts the link on the clipboard and --open opens it in the browser.`,
		Example: `  menulink link 5
  menulink link 5 --category C9 --download
  menulink link --table "Patio 2" --item I3 --copy`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				opts.table = args[0]
			}
			return c.runLink(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.table, "table", "t", "", "table label")
	cmd.Flags().StringVar(&opts.category, "category", "", "filter to a menu category id")
	cmd.Flags().StringVar(&opts.item, "item", "", "filter to a menu item id")
	cmd.Flags().StringVar(&opts.name, "name", "", "display name for the category or item (default from catalog)")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "reject ids missing from the configured catalog")
	cmd.Flags().BoolVarP(&opts.download, "download", "d", false, "write the branded PNG")
	cmd.Flags().BoolVar(&opts.copy, "copy", false, "copy the link to the clipboard")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the link in the browser")
	cmd.Flags().StringVarP(&opts.outDir, "output", "o", "", "output directory (default from config)")
	cmd.Flags().StringVar(&opts.logo, "logo", "", "branding logo URL or path (default from config)")
	cmd.Flags().BoolVar(&opts.noLogo, "no-logo", false, "export without the branding logo")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the fetch cache")
	cmd.MarkFlagsMutuallyExclusive("category", "item")
	cmd.MarkFlagsMutuallyExclusive("logo", "no-logo")

	return cmd
}

func (c *CLI) runLink(ctx context.Context, opts linkOpts) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	scope, targetID := opts.scope()
	target, err := resolveTarget(cfg, scope, targetID, opts.name, opts.strict)
	if err != nil {
		return err
	}
	if target != nil && !opts.strict {
		if _, err := cfg.Catalog().Target(scope, targetID, true); errors.Is(err, errors.ErrCodeNotFound) {
			printWarning("%s %q is not in the catalog", scope, targetID)
		}
	}
	rec, err := link.NewEncoder(cfg.BaseURL).EncodeFor(cfg.Restaurant, scope, opts.table, target)
	if err != nil {
		return err
	}
	printRecord(rec)

	if !opts.download && !opts.copy && !opts.open {
		return nil
	}

	svc, err := c.newServices(ctx, opts.noCache, opts.outDir)
	if err != nil {
		return err
	}
	defer svc.Close()

	printNewline()
	var failed bool
	if opts.download {
		spinner := startSpinner(ctx, "Rendering "+rec.Title+"...")
		path, err := svc.exporter.Download(ctx, rec, logoRef(cfg, opts.logo, opts.noLogo))
		if err != nil {
			spinner.Fail("Download failed: " + errors.UserMessage(err))
			failed = true
		} else {
			spinner.Succeed("Saved QR code")
			printFile(path)
		}
	}
	if opts.copy {
		if err := svc.exporter.CopyURL(rec); err != nil {
			printError("Copy failed: %s", errors.UserMessage(err))
			failed = true
		} else {
			printSuccess("Copied link to clipboard")
		}
	}
	if opts.open {
		if err := svc.exporter.Preview(rec); err != nil {
			printError("Open failed: %s", errors.UserMessage(err))
			failed = true
		} else {
			printSuccess("Opened link")
		}
	}
	if failed {
		return errors.New(errors.ErrCodeInternal, "one or more export steps failed")
	}
	return nil
}

// resolveTarget looks the id up in the configured catalog. An explicit name
// overrides the catalog display name.
func resolveTarget(cfg *config.Config, scope link.Scope, id, name string, strict bool) (*link.Target, error) {
	target, err := cfg.Catalog().Target(scope, id, strict)
	if err != nil || target == nil {
		return target, err
	}
	if name = strings.TrimSpace(name); name != "" {
		target.DisplayName = name
	}
	return target, nil
}

// logoRef picks the logo for an export: the flag wins over the restaurant logo.
func logoRef(cfg *config.Config, flag string, disabled bool) string {
	if disabled {
		return ""
	}
	if flag != "" {
		return flag
	}
	return cfg.Restaurant.LogoRef()
}

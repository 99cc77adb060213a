package cli

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/menulink/pkg/config"
)

// configCommand creates the config management command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configShowCommand())
	return cmd
}

// configInitCommand writes a starter config file.
func (c *CLI) configInitCommand() *cobra.Command {
	var (
		restaurantID string
		baseURL      string
		force        bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := c.configPath
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := config.Default()
			cfg.Restaurant.ID = restaurantID
			cfg.BaseURL = baseURL
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := cfg.Save(path); err != nil {
				return err
			}
			printSuccess("Wrote config")
			printFile(path)
			printNextStep("Create your first code", "menulink link 1 --download")
			return nil
		},
	}

	cmd.Flags().StringVar(&restaurantID, "restaurant", "", "restaurant id")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "deep link base URL (e.g. https://menu.example.com)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

// configShowCommand prints the effective configuration.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			return toml.NewEncoder(c.stdout).Encode(cfg)
		},
	}
}

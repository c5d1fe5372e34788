package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configJSON bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View and edit configuration",
	Long: `Reads and writes ~/.pageindex/config.toml.

Keys:
  storage.backend            sqlite, bleve or memory
  storage.data_dir           directory for index files
  pages.root                 page folder, one subfolder per language
  pages.cache_size           pages kept in the page cache, 0 disables it
  pages.cache_ttl_seconds    how long a cached page stays fresh
  search.default_language    language used when none is given
  search.default_limit       result cap used when none is given`,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print the value of a key",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set the value of a key",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every key and its value",
	Args:  cobra.NoArgs,
	RunE:  runConfigList,
}

func init() {
	configListCmd.Flags().BoolVar(&configJSON, "json", false, "output settings as JSON")
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}

	value, err := settingsService.GetValue(args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}

	if err := settingsService.SetValue(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("%s = %s\n", args[0], args[1])

	if err := settingsService.Validate(); err != nil {
		cmd.Println(outputStyles.Warning.Render(fmt.Sprintf("Warning: %v", err)))
	}
	return nil
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return notConfigured("settings")
	}

	settings := settingsService.List()
	if configJSON {
		data, err := json.MarshalIndent(settings, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal settings: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	for _, s := range settings {
		line := fmt.Sprintf("%-26s %s", s.Key, s.Value)
		if s.IsDefault {
			line += " " + outputStyles.Muted.Render("(default)")
		}
		cmd.Println(line)
	}
	return nil
}

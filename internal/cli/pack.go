package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gzhole/veritas/internal/catalog"
)

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Manage rule packs",
	Long: `Manage Veritas rule packs.

Rule packs are YAML files of extra detection rules. Packs live in
~/.veritas/packs/ and are appended to the built-in catalog at startup.
A pack whose file name starts with "_" is disabled.

Examples:
  veritas pack list                   # List installed packs
  veritas pack validate ./my-pack.yaml  # Check a pack before installing it
  veritas pack disable internal-tools  # Disable a pack
  veritas pack enable internal-tools   # Enable it again
  veritas pack show internal-tools     # Print a pack`,
}

var packListCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed rule packs",
	RunE:  packList,
}

var packEnableCmd = &cobra.Command{
	Use:   "enable <pack-name>",
	Short: "Enable a disabled rule pack",
	Args:  cobra.ExactArgs(1),
	RunE:  packEnable,
}

var packDisableCmd = &cobra.Command{
	Use:   "disable <pack-name>",
	Short: "Disable a rule pack (prefix with underscore)",
	Args:  cobra.ExactArgs(1),
	RunE:  packDisable,
}

var packShowCmd = &cobra.Command{
	Use:   "show <pack-name>",
	Short: "Show the contents of a rule pack",
	Args:  cobra.ExactArgs(1),
	RunE:  packShow,
}

var packValidateCmd = &cobra.Command{
	Use:   "validate <file>...",
	Short: "Check that rule-pack files parse and compile",
	Args:  cobra.MinimumNArgs(1),
	RunE:  packValidate,
}

func init() {
	packCmd.AddCommand(packListCmd)
	packCmd.AddCommand(packEnableCmd)
	packCmd.AddCommand(packDisableCmd)
	packCmd.AddCommand(packShowCmd)
	packCmd.AddCommand(packValidateCmd)
	rootCmd.AddCommand(packCmd)
}

// installedPacksDir returns the packs directory, creating it if needed.
func installedPacksDir() (string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return "", err
	}
	dir := packsDir(cfg)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return dir, nil
}

func packList(cmd *cobra.Command, args []string) error {
	dir, err := installedPacksDir()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	_, infos, err := catalog.LoadPacks(dir)
	if err != nil {
		return fmt.Errorf("failed to load packs: %w", err)
	}

	if len(infos) == 0 {
		fmt.Fprintln(out, "No rule packs installed.")
		fmt.Fprintf(out, "\nTo install packs, copy YAML files to: %s\n", dir)
		return nil
	}

	fmt.Fprintln(out, "Installed Rule Packs:")
	fmt.Fprintln(out, thinRule)
	for _, info := range infos {
		status := iconPass
		if !info.Enabled {
			status = iconFail
		}
		fmt.Fprintf(out, "  %s  %-25s %s\n", status, info.Name, info.Description)
		if info.Version != "" {
			fmt.Fprintf(out, "       v%s by %s  (%d rules)\n", info.Version, info.Author, info.RuleCount)
		}
	}
	fmt.Fprintln(out, thinRule)
	fmt.Fprintf(out, "\nPacks directory: %s\n", dir)
	return nil
}

// packFile returns the enabled and disabled paths a pack name can live at,
// accepting either extension.
func packFile(dir, name string) (enabled, disabled string, err error) {
	for _, ext := range []string{".yaml", ".yml"} {
		e := filepath.Join(dir, name+ext)
		d := filepath.Join(dir, "_"+name+ext)
		if exists(e) || exists(d) {
			return e, d, nil
		}
	}
	return "", "", fmt.Errorf("pack '%s' not found in %s", name, dir)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func packEnable(cmd *cobra.Command, args []string) error {
	dir, err := installedPacksDir()
	if err != nil {
		return err
	}
	name := args[0]
	enabledPath, disabledPath, err := packFile(dir, name)
	if err != nil {
		return err
	}

	if exists(enabledPath) {
		fmt.Fprintf(cmd.OutOrStdout(), "Pack '%s' is already enabled.\n", name)
		return nil
	}
	if err := os.Rename(disabledPath, enabledPath); err != nil {
		return fmt.Errorf("failed to enable pack: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Pack '%s' enabled.\n", iconPass, name)
	return nil
}

func packDisable(cmd *cobra.Command, args []string) error {
	dir, err := installedPacksDir()
	if err != nil {
		return err
	}
	name := args[0]
	enabledPath, disabledPath, err := packFile(dir, name)
	if err != nil {
		return err
	}

	if !exists(enabledPath) {
		fmt.Fprintf(cmd.OutOrStdout(), "Pack '%s' is already disabled.\n", name)
		return nil
	}
	if err := os.Rename(enabledPath, disabledPath); err != nil {
		return fmt.Errorf("failed to disable pack: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Pack '%s' disabled.\n", iconFail, name)
	return nil
}

func packShow(cmd *cobra.Command, args []string) error {
	dir, err := installedPacksDir()
	if err != nil {
		return err
	}
	enabledPath, disabledPath, err := packFile(dir, args[0])
	if err != nil {
		return err
	}

	path := enabledPath
	if !exists(path) {
		path = disabledPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// packValidate loads each file and compiles its rules against the built-in
// catalog, reporting every failure rather than stopping at the first.
func packValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0
	for _, path := range args {
		rules, infos, err := catalog.LoadPacks(path)
		if err == nil {
			_, err = catalog.New(rules...)
		}
		if err != nil {
			failed++
			failColor.Fprintf(out, "  %s  %s: %v\n", iconFail, path, err)
			continue
		}
		if len(infos) == 0 {
			failed++
			failColor.Fprintf(out, "  %s  %s: no pack files found\n", iconFail, path)
			continue
		}
		fmt.Fprintf(out, "  %s  %s (%d rules)\n", iconPass, path, len(rules))
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d pack(s) invalid", failed, len(args))
	}
	return nil
}

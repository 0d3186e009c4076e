package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/artisanexperiences/carebook/internal/config"
	"github.com/artisanexperiences/carebook/internal/fs"
	"github.com/artisanexperiences/carebook/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage carebook.yaml",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a carebook.yaml with the defaults",
	Long: `Write carebook.yaml with the default settings.

Writes to the global config directory unless --dir is given. Existing
files are left alone unless --force is set; unknown keys survive a
forced rewrite.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := mustGetString(cmd, "dir")
		if dir == "" {
			var err error
			if dir, err = config.GetGlobalConfigDir(); err != nil {
				return withExitCode(config.ExitConfigurationError, err)
			}
		}

		path, err := initConfig(fs.Default, dir, mustGetBool(cmd, "force"))
		if err != nil {
			return err
		}

		ui.PrintDone("Configuration saved")
		ui.PrintInfo(path)
		return nil
	},
}

func initConfig(fsys fs.FS, dir string, force bool) (string, error) {
	path := filepath.Join(dir, config.FileName)
	if fs.Exists(fsys, path) && !force {
		return "", withExitCode(config.ExitConfigurationError,
			fmt.Errorf("%s already exists (use --force to overwrite)", path))
	}
	if err := config.Save(fsys, dir, config.Default()); err != nil {
		return "", withExitCode(config.ExitConfigurationError, err)
	}
	return path, nil
}

func init() {
	configInitCmd.Flags().String("dir", "", "Directory to write carebook.yaml to")
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

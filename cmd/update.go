package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repositorySlug = "rbxkit/rbxkit"

var (
	version   = "dev"
	buildTime = "unknown"

	checkOnly bool
)

// SetVersion records the build version injected by the linker.
func SetVersion(v, t string) {
	version = v
	buildTime = t
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rbxkit %s (built %s)\n", version, buildTime)
	},
}

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update rbxkit to the latest release",
	RunE:  runUpdate,
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(updateCmd)

	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only check for a newer release")

	// Version and update don't need config or clients.
	versionCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil }
	updateCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error { return nil }
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot self-update a non-release build (%s)", version)
	}

	ctx := context.Background()

	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(repositorySlug))
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found || latest.LessOrEqual(current.String()) {
		fmt.Printf("rbxkit %s is up to date.\n", version)
		return nil
	}

	if checkOnly {
		fmt.Printf("Update available: %s -> %s\n", version, latest.Version())
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}

	fmt.Printf("Updated to %s.\n", latest.Version())
	return nil
}

package main

import (
	"os"

	"github.com/grovetools/hooks/cli"
	"github.com/grovetools/hooks/cmd"
	"github.com/grovetools/hooks/version"
)

func main() {
	rootCmd := cli.NewStandardCommand(
		"grove-hooks",
		"Declarative git hook manager for the Grove ecosystem",
	)

	info := version.GetInfo()
	rootCmd.Version = info.Version
	cli.SetVersionTemplate(rootCmd, cli.VersionInfo{
		Version:   info.Version,
		Commit:    info.Commit,
		BuildDate: info.BuildDate,
		BuildArch: info.Platform,
	})

	// Add subcommands
	rootCmd.AddCommand(cmd.NewRunCmd())
	rootCmd.AddCommand(cmd.NewInstallCmd())
	rootCmd.AddCommand(cmd.NewUninstallCmd())
	rootCmd.AddCommand(cmd.NewValidateCmd())
	rootCmd.AddCommand(cmd.NewListCmd())
	rootCmd.AddCommand(cmd.NewSampleConfigCmd())
	rootCmd.AddCommand(cmd.NewAutoupdateCmd())
	rootCmd.AddCommand(cmd.NewGCCmd())
	rootCmd.AddCommand(cmd.NewWatchCmd())
	rootCmd.AddCommand(cmd.NewSchemaCmd())
	rootCmd.AddCommand(cmd.NewVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

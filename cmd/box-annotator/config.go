package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/menta2k/box-annotator/internal/config"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" {
				path = config.GetConfigPath()
			}
			if err := config.Default().SaveToFile(path); err != nil {
				return err
			}
			root.logger().Info("config written", "path", path)
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&path, "path", "p", "", "destination (default "+config.GetConfigPath()+")")

	var checkPath string
	checkCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadConfig(checkPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
	checkCmd.Flags().StringVarP(&checkPath, "path", "p", "", "config file to validate")
	_ = checkCmd.MarkFlagRequired("path")

	cmd.AddCommand(initCmd, checkCmd)
	return cmd
}

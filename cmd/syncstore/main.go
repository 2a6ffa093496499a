// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-syncstore.
//
// go-syncstore is dual-licensed:
//
// 1. GNU Affero General Public License v3.0 (AGPL-3.0)
//    See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html
//
// 2. Commercial License
//    Contact licensing@automatethethings.com for commercial licensing options.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jeremyhahn/go-syncstore/pkg/cli"
	"github.com/jeremyhahn/go-syncstore/pkg/version"
)

var (
	cfgFile      string
	viperConfig  *viper.Viper
	globalConfig *cli.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "syncstore",
	Version: version.Full(),
	Short:   "Incremental change-capture and remote backup",
	Long: `syncstore captures local data mutations from a change journal and backs
them up to a remote object store as versioned, timestamp-addressed objects.

Supported Backends:
  - http   : Remote store speaking the minimal PUT/GET/LIST protocol
  - local  : Local filesystem storage
  - minio  : MinIO (S3-compatible)
  - memory : In-memory (testing only)

Configuration can be provided via:
  - Command-line flags (highest priority)
  - Environment variables (SYNCSTORE_*)
  - Configuration file (~/.syncstore.yaml or ./.syncstore.yaml)
  - Default values (lowest priority)`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize viper configuration
		var err error
		viperConfig, err = cli.InitConfig(cfgFile)
		if err != nil {
			return err
		}

		// Bind flags to viper
		if err := viperConfig.BindPFlags(cmd.Flags()); err != nil {
			return fmt.Errorf("failed to bind flags: %w", err)
		}

		globalConfig = cli.GetConfig(viperConfig)
		return nil
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up journaled changes to the remote store",
	Long: `Run one backup cycle: read the change journal, split structured changes
from binary payloads, and write the resulting change-set (and image-set,
when enabled) documents to the remote store. The journal is truncated only
after a successful cycle.`,
	Example: `  syncstore backup --backend-url https://backup.example.com
  syncstore backup --journal ./changes.ndjson --store-blobs=false
  syncstore backup --backend local --backend-path ./mirror`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := cli.NewCommandContext(globalConfig)
		if err != nil {
			return err
		}
		return ctx.BackupCommand(cmd.OutOrStdout())
	},
}

var listCmd = &cobra.Command{
	Use:   "list <collection>",
	Short: "List object keys in a remote collection",
	Example: `  syncstore list change-sets
  syncstore list images`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := cli.NewCommandContext(globalConfig)
		if err != nil {
			return err
		}
		return ctx.ListCommand(cmd.OutOrStdout(), args[0])
	},
}

var getCmd = &cobra.Command{
	Use:   "get <collection> <key>",
	Short: "Retrieve one remote object as JSON",
	Example: `  syncstore get change-sets 1724380000000
  syncstore get images 1724380000000`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := cli.NewCommandContext(globalConfig)
		if err != nil {
			return err
		}
		return ctx.GetCommand(cmd.OutOrStdout(), args[0], args[1])
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the journal and back up on change",
	Long: `Watch the change journal and run a backup cycle after each burst of
writes. A failed cycle leaves the journal intact and is retried on the
next burst. Runs until interrupted.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := cli.NewCommandContext(globalConfig)
		if err != nil {
			return err
		}
		return ctx.WatchCommand(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.syncstore.yaml)")
	rootCmd.PersistentFlags().String("backend", "http", "backend type (http, local, minio, memory)")
	rootCmd.PersistentFlags().String("backend-url", "", "base URL for the http backend")
	rootCmd.PersistentFlags().String("backend-path", "", "root directory for the local backend")
	rootCmd.PersistentFlags().String("backend-bucket", "", "bucket for the minio backend")
	rootCmd.PersistentFlags().String("backend-endpoint", "", "endpoint for the minio backend")
	rootCmd.PersistentFlags().String("backend-key", "", "access key for the minio backend")
	rootCmd.PersistentFlags().String("backend-secret", "", "secret key for the minio backend")
	rootCmd.PersistentFlags().String("rate-limit", "", "max outbound requests per second for the http backend")
	rootCmd.PersistentFlags().String("journal", "./changes.ndjson", "path to the change journal")
	rootCmd.PersistentFlags().Int("schema-version", 1, "schema version stamped on each batch")
	rootCmd.PersistentFlags().Bool("store-blobs", true, "write extracted binary payloads alongside changes")

	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(watchCmd)
}

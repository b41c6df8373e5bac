package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/AkshayJainG/awspx-go/cmd/awspx/internal"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage awspx configuration",
	Long:  `Manage awspx configuration files and settings`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Show the current configuration values and which config file is being used`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("awspx Configuration")
		fmt.Println("===================")

		if viper.ConfigFileUsed() != "" {
			fmt.Printf("Config file: %s\n", viper.ConfigFileUsed())
		} else {
			fmt.Println("Config file: None (using defaults and environment variables)")
		}

		fmt.Println("\nGraph database connection:")
		fmt.Printf("  URI:      %s\n", viper.GetString("neo4j.uri"))
		fmt.Printf("  User:     %s\n", viper.GetString("neo4j.user"))
		fmt.Printf("  Database: %s\n", viper.GetString("neo4j.database"))

		if cmd.Flags().Changed("neo4j-uri") {
			fmt.Println("  Source: CLI flag (--neo4j-uri)")
		} else if os.Getenv("AWSPX_NEO4J_URI") != "" {
			fmt.Println("  Source: Environment variable (AWSPX_NEO4J_URI)")
		} else if viper.IsSet("neo4j.uri") {
			fmt.Println("  Source: Config file")
		} else {
			fmt.Println("  Source: Default (bolt://localhost:7687)")
		}

		fmt.Println("\nAll configuration values:")
		allSettings := viper.AllSettings()

		if len(allSettings) == 0 {
			fmt.Println("  (no configuration values set)")
			return
		}

		for key, value := range allSettings {
			if key == "neo4j" {
				continue
			}
			fmt.Printf("  %s: %v\n", key, value)
		}
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new configuration file",
	Long:  `Initialize a new configuration file with default values`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initConfigFile()
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file paths",
	Long:  `Show the paths where awspx looks for configuration files`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("awspx configuration file search paths:")
		fmt.Printf("1. %s/awspxconfig.yaml\n", internal.ConfigDir())
		fmt.Printf("2. %s/awspxconfig.yaml\n", internal.DataDir())
		fmt.Printf("3. ./awspxconfig.yaml (current directory)\n")
		if home, err := os.UserHomeDir(); err == nil {
			fmt.Printf("4. %s/awspxconfig.yaml (home directory)\n", home)
		}
		fmt.Println("\nEnvironment variables with the 'AWSPX_' prefix are also read automatically.")
	},
}

func initConfigFile() error {
	configDir := internal.ConfigDir()
	configFile := filepath.Join(configDir, "awspxconfig.yaml")

	if _, err := os.Stat(configFile); err == nil {
		fmt.Printf("Configuration file already exists: %s\n", configFile)
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		slog.Error("error creating config directory", "error", err, "configDir", configDir)
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file, err := os.Create(configFile)
	if err != nil {
		slog.Error("error creating config file", "error", err, "configFile", configFile)
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer file.Close()

	configContent := `# awspx Configuration File
# This file contains configuration settings for the awspx CLI tool

# Enable verbose/debug output
verbose: false

# Graph database connection
neo4j:
  uri: bolt://localhost:7687
  user: neo4j
  password: ""
  database: neo4j
`

	if _, err := file.WriteString(configContent); err != nil {
		slog.Error("error writing config file", "error", err, "configFile", configFile)
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("Configuration file created: %s\n", configFile)
	fmt.Println("You can now edit this file to customize your awspx settings.")
	slog.Info("configuration file initialized successfully", "file", configFile)
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jenian/envdoc/internal/audit"
	"github.com/jenian/envdoc/internal/config"
	"github.com/jenian/envdoc/internal/console"
	"github.com/jenian/envdoc/internal/pipeline"
	"github.com/jenian/envdoc/internal/plugin"
	"github.com/jenian/envdoc/internal/report"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

var (
	rootCmd = &cobra.Command{
		Use:   "envdoc",
		Short: "Generate documentation for environment variables",
		Long:  "A CLI tool that documents the environment variables declared in .env-style files, cross-referenced with their usage sites in the project tree.",
	}

	generateCmd = &cobra.Command{
		Use:   "generate [path]",
		Short: "Generate the environment variable documentation",
		Long:  "Load the configuration, scan the project for variable usages and write the rendered documentation.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGenerate,
	}

	auditCmd = &cobra.Command{
		Use:   "audit [path]",
		Short: "Audit usage of the variables in a single .env file",
		Long:  "Parse one declaration file, scan the tree for usages and write an env-usage report to the working directory.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAudit,
	}

	initConfigCmd = &cobra.Command{
		Use:   "init-config",
		Short: "Create an env-doc.config.json in the current directory",
		Long:  "Creates an env-doc.config.json file with default configuration in the current directory.",
		RunE:  runInitConfig,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Long:  "Print the version number of envdoc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(Version)
		},
	}

	// Flags
	configPath  string
	outputDir   string
	noHeader    bool
	quiet       bool
	envFile     string
	auditFormat string
	auditIgnore string
)

func init() {
	generateCmd.Flags().StringVar(&configPath, "config", "./"+config.DefaultPath, "Configuration file path")
	generateCmd.Flags().StringVar(&outputDir, "output", "./docs", "Output directory")
	generateCmd.Flags().BoolVar(&noHeader, "no-header", false, "Skip printing the header")
	generateCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress progress output")

	auditCmd.Flags().StringVar(&envFile, "env", "./.env", "Declaration file to audit")
	auditCmd.Flags().StringVar(&auditFormat, "output", "md", "Report format: md, json or html")
	auditCmd.Flags().StringVar(&auditIgnore, "ignore", "", "Comma-separated ignore glob patterns")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(initConfigCmd)
	rootCmd.AddCommand(versionCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	workDir := "."
	if len(args) > 0 {
		workDir = args[0]
	}
	if _, err := os.Stat(workDir); os.IsNotExist(err) {
		return fmt.Errorf("path does not exist: %s", workDir)
	}

	console.Quiet = quiet
	if !noHeader && !quiet {
		printHeader()
	}

	return pipeline.Run(pipeline.Options{
		ConfigPath: configPath,
		OutputDir:  outputDir,
		WorkDir:    workDir,
	})
}

func runAudit(cmd *cobra.Command, args []string) error {
	workDir := "."
	if len(args) > 0 {
		workDir = args[0]
	}

	format, err := report.ParseFormat(auditFormat)
	if err != nil {
		return err
	}

	var ignore []string
	for _, p := range strings.Split(auditIgnore, ",") {
		if p = strings.TrimSpace(p); p != "" {
			ignore = append(ignore, p)
		}
	}

	return audit.Run(audit.Options{
		EnvFile: envFile,
		Format:  format,
		Ignore:  ignore,
		WorkDir: workDir,
	})
}

func runInitConfig(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(config.DefaultPath); err == nil {
		return fmt.Errorf("%s already exists in the current directory", config.DefaultPath)
	}

	configContent := `{
  "plugins": [],
  "input": {
    "files": [".env"],
    "patterns": []
  },
  "output": {
    "format": "md",
    "file": ""
  },
  "scan": {
    "patterns": ["**/*"],
    "ignore": ["node_modules/**", "vendor/**", ".git/**", "dist/**", "build/**"]
  },
  "exclude": []
}
`
	if err := os.WriteFile(config.DefaultPath, []byte(configContent), 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", config.DefaultPath, err)
	}

	fmt.Printf("Created %s in the current directory\n", config.DefaultPath)
	fmt.Printf("Available plugins: %s\n", strings.Join(plugin.Registered(), ", "))
	return nil
}

func printHeader() {
	header := `  ___ _ ____   ____| | ___   ___
 / _ \ '_ \ \ / / _` + "`" + ` |/ _ \ / __|
|  __/ | | \ V / (_| | (_) | (__
 \___|_| |_|\_/ \__,_|\___/ \___|

`
	fmt.Print(header)
	fmt.Printf("Version: %s\n\n", Version)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/5H4D0W86/forensic-terminal-lab/internal/app"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/catalog"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/config"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/export"
	"github.com/5H4D0W86/forensic-terminal-lab/internal/forensic"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates an App. The caller must defer Close.
// operation identifies the CLI command being run (e.g. "OpenCase").
func newApp(operation string) (*app.App, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewApp(cfg, operation)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

var rootCmd = &cobra.Command{
	Use:   "flab",
	Short: "Digital evidence intake and chain-of-custody tool",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg := config.NewConfig(defaults["base_dir"])
		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Base Dir: %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Base Dir:   %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:    %s\n", cfg.LogDir)
		fmt.Printf("Catalog:    %s\n", cfg.Catalog.Path)
		fmt.Printf("S3 Bucket:  %s\n", cfg.Upload.Bucket)

		cat, err := catalog.Open(cfg.Catalog.Path)
		if err != nil {
			fmt.Printf("Catalog:    unavailable (%v)\n", err)
			return nil
		}
		defer cat.Close()
		if err := cat.CheckMigrations(); err != nil {
			fmt.Printf("Schema:     %v\n", err)
		} else {
			fmt.Println("Schema:     up to date")
		}
		return nil
	},
}

// case command
var caseCmd = &cobra.Command{
	Use:   "case",
	Short: "Manage cases",
}

var caseOpenCmd = &cobra.Command{
	Use:   "open CASE_NUMBER",
	Short: "Open a new case",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("OpenCase")
		if err != nil {
			return err
		}
		defer a.Close()

		intake := app.Intake{}
		intake.Investigator, _ = cmd.Flags().GetString("investigator")
		intake.Victim, _ = cmd.Flags().GetString("victim")
		intake.Suspect, _ = cmd.Flags().GetString("suspect")
		intake.CrimeType, _ = cmd.Flags().GetString("crime")

		info, err := a.OpenCase(args[0], intake)
		if err != nil {
			return fmt.Errorf("opening case: %w", err)
		}

		fmt.Printf("Case %s opened\n", info.Number)
		return nil
	},
}

var caseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cases",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListCases")
		if err != nil {
			return err
		}
		defer a.Close()

		cases, err := a.ListCases()
		if err != nil {
			return err
		}
		if len(cases) == 0 {
			fmt.Println("No cases.")
			return nil
		}

		for _, c := range cases {
			fmt.Printf("case_%s  %-20s  %s  %s\n",
				c.Number, c.Investigator, c.OpenedAt.Format("2006-01-02 15:04:05"), c.CrimeType)
		}
		return nil
	},
}

var caseSealCmd = &cobra.Command{
	Use:   "seal CASE_NUMBER",
	Short: "Seal a case into an encrypted archive for transfer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("SealCase")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Session(args[0])
		if err != nil {
			return err
		}

		recipientPath, _ := cmd.Flags().GetString("recipients")
		var sealer *export.Sealer
		if recipientPath != "" {
			sealer, err = export.NewRecipientSealer(recipientPath)
		} else {
			var passphrase string
			passphrase, err = readSecret("Enter archive passphrase: ")
			if err != nil {
				return err
			}
			sealer, err = export.NewPassphraseSealer(passphrase)
		}
		if err != nil {
			return err
		}

		path, err := s.Seal(sealer)
		if err != nil {
			return fmt.Errorf("sealing case: %w", err)
		}

		fmt.Printf("Sealed archive: %s\n", path)
		return nil
	},
}

// evidence command
var evidenceCmd = &cobra.Command{
	Use:   "evidence",
	Short: "Manage case evidence",
}

var evidenceAddCmd = &cobra.Command{
	Use:   "add CASE_NUMBER PATH...",
	Short: "Acquire evidence files into a case",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("AddEvidence")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Session(args[0])
		if err != nil {
			return err
		}

		result := s.AddEvidence(args[1:])
		for _, r := range result.Records {
			fmt.Printf("added  %s  %s  %.2f MB\n", r.StoredFilename, r.SHA256[:16], r.Descriptor.SizeMiB)
		}
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "failed %s: %v\n", f.Path, f.Err)
		}

		fmt.Printf("Processed %d file(s), %d failure(s)\n", len(result.Records), result.Failed())
		if result.Failed() > 0 {
			return fmt.Errorf("%d file(s) could not be processed", result.Failed())
		}
		return nil
	},
}

var evidenceListCmd = &cobra.Command{
	Use:   "list CASE_NUMBER",
	Short: "List a case's evidence records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ListEvidence")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Session(args[0])
		if err != nil {
			return err
		}

		records := s.ListEvidence()
		if len(records) == 0 {
			fmt.Println("No evidence recorded.")
			return nil
		}

		for i, r := range records {
			fmt.Printf("%3d. %-40s %-8s %8.2f MB  %s\n",
				i+1, r.OriginalFilename, r.Descriptor.Category, r.Descriptor.SizeMiB, r.SHA256[:16])
		}
		return nil
	},
}

var evidenceVerifyCmd = &cobra.Command{
	Use:   "verify CASE_NUMBER",
	Short: "Re-hash stored evidence and verify integrity",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("VerifyEvidence")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Session(args[0])
		if err != nil {
			return err
		}

		results, err := s.Verify()
		if err != nil {
			return err
		}

		failed := 0
		for _, r := range results {
			if r.Status != forensic.StatusVerified {
				failed++
			}
			fmt.Printf("%-9s %s\n", r.Status, r.Record.StoredFilename)
		}

		fmt.Printf("Checked %d record(s), %d integrity failure(s)\n", len(results), failed)
		if failed > 0 {
			return fmt.Errorf("integrity verification failed for %d record(s)", failed)
		}
		return nil
	},
}

// report command
var reportCmd = &cobra.Command{
	Use:   "report CASE_NUMBER",
	Short: "Generate the HTML case report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("GenerateReport")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Session(args[0])
		if err != nil {
			return err
		}

		path, err := s.GenerateReport()
		if err != nil {
			return fmt.Errorf("generating report: %w", err)
		}

		fmt.Printf("Report written: %s\n", path)
		return nil
	},
}

// upload command
var uploadCmd = &cobra.Command{
	Use:   "upload CASE_NUMBER",
	Short: "Upload evidence and digest files to S3",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("Upload")
		if err != nil {
			return err
		}
		defer a.Close()

		s, err := a.Session(args[0])
		if err != nil {
			return err
		}

		defaults, err := app.GetDefaults()
		if err != nil {
			return err
		}
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return err
		}

		uploadCfg := cfg.Upload
		if uploadCfg.AccessKeyID == "" {
			uploadCfg.AccessKeyID, err = readLine("Enter AWS Access Key ID: ")
			if err != nil {
				return err
			}
		}
		if uploadCfg.AccessKeyID != "" && uploadCfg.SecretAccessKey == "" {
			uploadCfg.SecretAccessKey, err = readSecret("Enter AWS Secret Access Key: ")
			if err != nil {
				return err
			}
		}

		result, err := s.Upload(cmd.Context(), uploadCfg)
		if err != nil {
			return fmt.Errorf("uploading: %w", err)
		}

		fmt.Printf("Uploaded %d file(s), %d failure(s)\n", result.Uploaded, len(result.Failures))
		for _, f := range result.Failures {
			fmt.Fprintf(os.Stderr, "failed %s: %v\n", f.File, f.Err)
		}
		return nil
	},
}

// readLine reads one trimmed line from stdin.
func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readSecret reads a line from stdin without echoing it.
func readSecret(prompt string) (string, error) {
	fmt.Print(prompt)
	data, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)

	// case subcommands
	caseCmd.AddCommand(caseOpenCmd)
	caseOpenCmd.Flags().String("investigator", "", "Investigator name")
	caseOpenCmd.Flags().String("victim", "", "Victim name")
	caseOpenCmd.Flags().String("suspect", "", "Suspect name")
	caseOpenCmd.Flags().String("crime", "", "Crime type")
	caseCmd.AddCommand(caseListCmd)
	caseCmd.AddCommand(caseSealCmd)
	caseSealCmd.Flags().String("recipients", "", "Path to an age recipients file")

	// evidence subcommands
	evidenceCmd.AddCommand(evidenceAddCmd)
	evidenceCmd.AddCommand(evidenceListCmd)
	evidenceCmd.AddCommand(evidenceVerifyCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(caseCmd)
	rootCmd.AddCommand(evidenceCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(uploadCmd)
}

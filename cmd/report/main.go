// Command report renders the monitoring artifacts (health, benchmark,
// drift) into a Markdown report.
//
// Exit codes:
//
//	0 - report generated successfully
//	1 - error generating report
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KothaGPT/monitoring/internal/logging"
	"github.com/KothaGPT/monitoring/internal/report"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error generating monitoring report: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputPath    string
		format        string
		inputDir      string
		includeSystem bool
		verbose       bool
	)

	cmd := &cobra.Command{
		Use:           "report",
		Short:         "Generate AI model monitoring report",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(outputPath, inputDir, includeSystem, verbose)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path for the report")
	_ = cmd.MarkFlagRequired("output")
	// Only Markdown rendering is implemented; the flag exists for workflow
	// compatibility.
	cmd.Flags().StringVar(&format, "format", "markdown", "output format (markdown|json|html)")
	cmd.Flags().StringVar(&inputDir, "input-dir", ".", "directory holding the JSON artifacts")
	cmd.Flags().BoolVar(&includeSystem, "include-system", true, "include system metrics in report")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	return cmd
}

func run(outputPath, inputDir string, includeSystem, verbose bool) error {
	log, err := logging.New("", verbose)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	log.Debug("generating_report")

	g := report.NewGenerator(log, inputDir, includeSystem)
	if err := g.WriteFile(outputPath); err != nil {
		return err
	}

	fmt.Printf("✅ Monitoring report generated successfully: %s\n", outputPath)
	fmt.Printf("Report saved to: %s\n", outputPath)
	return nil
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aptiz/internal/contentgen"
	"github.com/abhisek/aptiz/internal/exam"
	"github.com/abhisek/aptiz/internal/llm"
)

var previewCmd = &cobra.Command{
	Use:   "preview <test-type>",
	Short: "Generate one section in-process and print its JSON",
	Long: `Call the generation service once, without the HTTP server, and print the
content it returns. Accepts "Grammar & Vocabulary", "Reading", "Listening" or
their slugs (grammar-vocabulary, reading, listening).

Generation calls are recorded in the event log, see "aptiz llm list".`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().Bool("check", true, "Report passage and transcript length warnings")
}

func runPreview(cmd *cobra.Command, args []string) error {
	tt, err := exam.LookupTestType(args[0])
	if err != nil {
		return err
	}
	if !tt.Remote() {
		return fmt.Errorf("%s uses fixed tasks and is not generated", tt)
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	provider, llmCfg, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), logger)
	if err != nil {
		return fmt.Errorf("LLM provider: %w", err)
	}

	cfg := contentgen.ConfigFor(llmCfg)
	svc := contentgen.New(provider, cfg, logger)

	fmt.Fprintf(os.Stderr, "Generating %s...\n", tt)
	content, err := svc.Generate(ctx, tt)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return fmt.Errorf("encode content: %w", err)
	}
	fmt.Println(string(out))

	if check, _ := cmd.Flags().GetBool("check"); check {
		var warnings []string
		for _, c := range cfg.Checks {
			if w := c.Check(content); w != "" {
				warnings = append(warnings, fmt.Sprintf("%s: %s", c.Name(), w))
			}
		}
		if len(warnings) > 0 {
			fmt.Fprintln(os.Stderr, "\nWarnings:\n  "+strings.Join(warnings, "\n  "))
		}
	}
	return nil
}

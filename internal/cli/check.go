package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/gzhole/veritas/internal/gateway"
	"github.com/gzhole/veritas/internal/hidden"
	"github.com/gzhole/veritas/internal/redact"
)

// blockedExitCode is returned by check when the content requires a block.
const blockedExitCode = 2

var (
	checkJSON   bool
	checkFilter bool
	checkPolicy string
)

var checkCmd = &cobra.Command{
	Use:   "check [text...]",
	Short: "Analyze text from arguments or stdin",
	Long: `Analyze a piece of text and print the assessment. Without arguments the
text is read from stdin, which must not be a terminal.

Exit status is 0 when the text is allowed and 2 when it would be blocked.

Examples:
  veritas check "sudo rm -rf /"
  llm-cli generate | veritas check --filter > safe.txt
  veritas check --json < response.txt`,
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the full analysis as JSON")
	checkCmd.Flags().BoolVar(&checkFilter, "filter", false, "Print only the filtered content")
	checkCmd.Flags().StringVar(&checkPolicy, "policy", "", "Policy name echoed in the result")
	rootCmd.AddCommand(checkCmd)
}

func checkCommand(cmd *cobra.Command, args []string) error {
	content, err := readContent(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	engine, _, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	var opts []gateway.Option
	if cfg.Audit.Enabled {
		audit, err := openAuditLog(cfg)
		if err != nil {
			return err
		}
		defer audit.Close()
		opts = append(opts, gateway.WithAuditLogger(audit))
	}
	gw := gateway.New(engine, opts...)

	out := cmd.OutOrStdout()
	req := gateway.Request{Content: content, Policy: checkPolicy, Source: "cli"}

	var blocked bool
	switch {
	case checkFilter:
		resp := gw.Filter(req)
		blocked = resp.Blocked
		fmt.Fprint(out, resp.FilteredContent)
		if !strings.HasSuffix(resp.FilteredContent, "\n") {
			fmt.Fprintln(out)
		}
	case checkJSON:
		resp := gw.Analyze(req)
		blocked = resp.RequiresReview
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(resp); err != nil {
			return err
		}
	default:
		resp := gw.Analyze(req)
		blocked = resp.RequiresReview
		printAnalysis(out, resp)
	}

	if blocked {
		return &ExitError{Code: blockedExitCode}
	}
	return nil
}

// readContent joins args, or reads stdin when there are none. An interactive
// terminal on stdin is refused so the command never blocks waiting for input.
func readContent(stdin io.Reader, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return "", fmt.Errorf("no text given: pass it as arguments or pipe it on stdin")
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func printAnalysis(w io.Writer, resp gateway.AnalysisResponse) {
	verdict := passColor.Sprint(iconPass + "  ALLOWED")
	if resp.RequiresReview {
		verdict = failColor.Sprint(iconBlock + " BLOCKED")
	}

	fmt.Fprintf(w, "%s  risk %s (%.2f)  policy %s\n\n",
		verdict, severityLabel(resp.RiskLevel), resp.RiskScore, resp.PolicyApplied)

	if len(resp.DetectedCommands) == 0 {
		fmt.Fprintln(w, "No dangerous patterns detected.")
	} else {
		printEvidence(w, resp.DetectedCommands)
	}

	if n := len(resp.FileAnalysis.HiddenCharacters); n > 0 {
		fmt.Fprintln(w)
		mediumColor.Fprintf(w, "%d hidden character(s):\n", n)
		for _, f := range resp.FileAnalysis.HiddenCharacters {
			fmt.Fprintf(w, "  %-14s %-8s at byte %d\n", f.Kind, f.Codepoint, f.Position)
		}
	}

	if !resp.RequiresReview {
		return
	}
	if filtered := redact.Filter(resp.Content, resp.BlockedCommands); filtered != resp.Content {
		fmt.Fprintln(w)
		removed := redact.Unique(resp.BlockedCommands)
		highColor.Fprintf(w, "Removed %d distinct fragment(s):\n", len(removed))
		for _, text := range removed {
			fmt.Fprintf(w, "  %q\n", text)
		}
		fmt.Fprintln(w)
		headerColor.Fprintln(w, "Filtered content:")
		fmt.Fprintln(w, hidden.Scan(filtered).Visible)
	}
}

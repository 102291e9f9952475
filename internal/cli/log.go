package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gzhole/veritas/internal/catalog"
	"github.com/gzhole/veritas/internal/logger"
)

var (
	logBlocked   bool
	logOperation string
	logLast      int
	logSummary   bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the audit log",
	Long: `View the Veritas audit log with filtering and summary options.

Examples:
  veritas log                     # Show all entries
  veritas log --last 20           # Show last 20 entries
  veritas log --blocked           # Show only blocked content
  veritas log --operation filter  # Show only filter calls
  veritas log --summary           # Show summary stats`,
	RunE: logCommand,
}

func init() {
	logCmd.Flags().BoolVar(&logBlocked, "blocked", false, "Show only blocked entries")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "Filter by operation (analyze, filter)")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	rootCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	events, err := readAuditLog(cfg.Audit.Path)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, "No audit log entries found.")
		return nil
	}

	if logSummary {
		printSummary(out, events)
		return nil
	}

	filtered := filterEvents(events)
	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}
	printEvents(out, filtered)
	return nil
}

func readAuditLog(path string) ([]logger.AuditEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []logger.AuditEvent
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event logger.AuditEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue // skip malformed lines
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}

func filterEvents(events []logger.AuditEvent) []logger.AuditEvent {
	if !logBlocked && logOperation == "" {
		return events
	}

	var filtered []logger.AuditEvent
	for _, e := range events {
		if logBlocked && !e.Blocked {
			continue
		}
		if logOperation != "" && !strings.EqualFold(e.Operation, logOperation) {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func printEvents(w io.Writer, events []logger.AuditEvent) {
	for _, e := range events {
		icon := iconPass
		if e.Blocked {
			icon = iconBlock
		}
		level := e.RiskLevel
		if s, err := catalog.ParseSeverity(e.RiskLevel); err == nil {
			level = severityLabel(s)
		}

		fmt.Fprintf(w, "%s %s %-7s %s (%.2f)  %s\n",
			icon, formatTimestamp(e.Timestamp), e.Operation, level, e.RiskScore, oneLine(e.Content))
		if len(e.Categories) > 0 {
			dimColor.Fprintf(w, "     Categories: %s\n", strings.Join(e.Categories, ", "))
		}
		if e.HiddenChars > 0 {
			dimColor.Fprintf(w, "     Hidden characters: %d\n", e.HiddenChars)
		}
		if e.Source != "" || e.Policy != "" {
			dimColor.Fprintf(w, "     Source: %s  Policy: %s\n", e.Source, e.Policy)
		}
		fmt.Fprintln(w)
	}
}

func printSummary(w io.Writer, all []logger.AuditEvent) {
	levels := map[string]int{}
	categories := map[string]int{}
	blocked := 0

	for _, e := range all {
		levels[strings.ToLower(e.RiskLevel)]++
		for _, c := range e.Categories {
			categories[c]++
		}
		if e.Blocked {
			blocked++
		}
	}

	banner(w, "Veritas Audit Summary")
	fmt.Fprintf(w, "  Total events:    %d\n", len(all))
	fmt.Fprintf(w, "  Blocked:         %d\n", blocked)
	fmt.Fprintf(w, "  CRITICAL:        %d\n", levels["critical"])
	fmt.Fprintf(w, "  HIGH:            %d\n", levels["high"])
	fmt.Fprintf(w, "  MEDIUM:          %d\n", levels["medium"])
	fmt.Fprintf(w, "  LOW:             %d\n", levels["low"])
	fmt.Fprintf(w, "  First event:     %s\n", formatTimestamp(all[0].Timestamp))
	fmt.Fprintf(w, "  Last event:      %s\n", formatTimestamp(all[len(all)-1].Timestamp))

	if len(categories) > 0 {
		names := make([]string, 0, len(categories))
		for c := range categories {
			names = append(names, c)
		}
		sort.Slice(names, func(i, j int) bool {
			if categories[names[i]] != categories[names[j]] {
				return categories[names[i]] > categories[names[j]]
			}
			return names[i] < names[j]
		})

		fmt.Fprintln(w)
		table := newTable(w, []string{"Category", "Events"})
		for _, c := range names {
			table.Append([]string{c, fmt.Sprintf("%d", categories[c])})
		}
		table.Render()
	}
	fmt.Fprintln(w)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

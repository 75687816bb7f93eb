package main

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var (
	reportDirective string
	reportLimit     int
)

var reportCmd = &cobra.Command{
	Use:   "report <collector-url-or-file>",
	Short: "Summarize collected violation reports",
	Long: `Fetch recent violation reports from a collector and count them per
directive. The argument is the collector base URL, or a path to a JSON
file saved from its /reports endpoint.

Examples:
  cspctl report http://localhost:8080
  cspctl report --directive script-src reports.json`,
	Args: cobra.ExactArgs(1),
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportDirective, "directive", "", "only show reports for this directive")
	reportCmd.Flags().IntVar(&reportLimit, "limit", 100, "maximum number of reports to fetch")
	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	raw, err := fetchReports(args[0])
	if err != nil {
		return err
	}
	if !gjson.Valid(raw) {
		return errors.New("collector response is not valid JSON")
	}
	list := gjson.Parse(raw)
	if !list.IsArray() {
		return errors.New("collector response is not a JSON array")
	}

	out := cmd.OutOrStdout()
	if reportDirective != "" {
		shown := 0
		list.ForEach(func(_, item gjson.Result) bool {
			if reportedDirective(item) != reportDirective {
				return true
			}
			shown++
			disposition := item.Get("body.disposition").String()
			if disposition == "" {
				disposition = "unknown"
			}
			fmt.Fprintf(out, "%s %s blocked %s (%s)\n",
				item.Get("received_at").String(),
				item.Get("body.document-uri").String(),
				item.Get("body.blocked-uri").String(),
				disposition)
			return true
		})
		fmt.Fprintf(out, "%d reports for %s\n", shown, reportDirective)
		return nil
	}

	total := 0
	counts := map[string]int{}
	var order []string
	list.ForEach(func(_, item gjson.Result) bool {
		total++
		directive := reportedDirective(item)
		if directive == "" {
			directive = "(unknown)"
		}
		if _, seen := counts[directive]; !seen {
			order = append(order, directive)
		}
		counts[directive]++
		return true
	})

	fmt.Fprintf(out, "%d reports\n", total)
	width := 0
	for _, directive := range order {
		if len(directive) > width {
			width = len(directive)
		}
	}
	for _, directive := range order {
		fmt.Fprintf(out, "  %s%-*s%s %d\n", cyan, width, directive, reset, counts[directive])
	}
	return nil
}

// reportedDirective resolves the directive a report is about, preferring
// the effective directive over the first clause of the violated one.
func reportedDirective(item gjson.Result) string {
	if directive := item.Get("body.effective-directive"); directive.Exists() && directive.String() != "" {
		return directive.String()
	}
	fields := strings.Fields(item.Get("body.violated-directive").String())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func fetchReports(target string) (string, error) {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		url := strings.TrimSuffix(target, "/") + "/reports?limit=" + strconv.Itoa(reportLimit)
		client := &http.Client{Timeout: 10 * time.Second}
		resp, err := client.Get(url)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("collector returned %s", resp.Status)
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := os.ReadFile(target)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
)

// TestMetadata is read from the comment block above a test function
type TestMetadata struct {
	Name       string `json:"name"`
	Purpose    string `json:"purpose,omitempty"`
	Scope      string `json:"scope,omitempty"`
	Expected   string `json:"expected,omitempty"`
	TestCaseID string `json:"test_case_id,omitempty"`
	Package    string `json:"package"`
	Category   string `json:"category"`
}

// GoTestEvent is one line of 'go test -json'
type GoTestEvent struct {
	Time    time.Time `json:"Time"`
	Action  string    `json:"Action"`
	Package string    `json:"Package"`
	Test    string    `json:"Test"`
	Elapsed float64   `json:"Elapsed"`
	Output  string    `json:"Output"`
}

type FinalTestResult struct {
	Name        string       `json:"name"`
	Package     string       `json:"package"`
	Status      string       `json:"status"`
	Elapsed     float64      `json:"elapsed"`
	Failure     string       `json:"failure,omitempty"`
	Annotations TestMetadata `json:"annotations"`
}

type ReportSummary struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Total       int               `json:"total"`
	Passed      int               `json:"passed"`
	Failed      int               `json:"failed"`
	Skipped     int               `json:"skipped"`
	Results     []FinalTestResult `json:"results"`
}

// Categories in report order. A package maps to the first entry whose path
// fragment it contains.
var categories = []struct{ fragment, name string }{
	{"internal/billing", "Billing"},
	{"internal/tenant", "Tenant"},
	{"internal/payment", "Payment"},
	{"internal/dashboard", "Dashboard"},
	{"internal/store", "Store"},
	{"internal/transport/http", "API"},
	{"internal/cli", "CLI"},
	{"internal/config", "Config"},
	{"internal/audit", "Audit"},
	{"internal/observability", "Observability"},
}

func main() {
	inputPath := flag.String("input", "", "Path to go test -json output file")
	outputJSON := flag.String("out-json", "", "Path for output JSON report")
	outputMD := flag.String("out-md", "", "Path for output Markdown report")
	title := flag.String("title", "Test Report", "Report title")
	filterCats := flag.String("filter-categories", "", "Comma-separated list of categories to include")
	flag.Parse()

	if *inputPath == "" || *outputJSON == "" || *outputMD == "" {
		fmt.Println("Usage: report_gen -input <json_file> -out-json <out_json> -out-md <out_md>")
		os.Exit(1)
	}

	module, err := modulePath("go.mod")
	if err != nil {
		fmt.Printf("Error reading go.mod: %v\n", err)
		os.Exit(1)
	}

	metadata := scanMetadata(module)
	results, err := parseTestOutput(*inputPath, metadata)
	if err != nil {
		fmt.Printf("Error reading test output: %v\n", err)
		os.Exit(1)
	}

	if *filterCats != "" {
		wanted := lo.Map(strings.Split(*filterCats, ","), func(s string, _ int) string { return strings.TrimSpace(s) })
		results = lo.Filter(results, func(r FinalTestResult, _ int) bool {
			return lo.Contains(wanted, r.Annotations.Category)
		})
	}

	summary := generateSummary(results)
	if err := saveJSON(summary, *outputJSON); err != nil {
		fmt.Printf("Error writing JSON report: %v\n", err)
		os.Exit(1)
	}
	if err := saveMarkdown(summary, *outputMD, *title); err != nil {
		fmt.Printf("Error writing Markdown report: %v\n", err)
		os.Exit(1)
	}

	// CI gates on the exit code
	if summary.Failed > 0 {
		fmt.Printf("\n❌ Test Reporting: %d tests failed. Exiting with error.\n", summary.Failed)
		os.Exit(1)
	}
}

func modulePath(goMod string) (string, error) {
	data, err := os.ReadFile(goMod)
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(data), "\n") {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(line), "module "); ok {
			return strings.TrimSpace(rest), nil
		}
	}
	return "", fmt.Errorf("no module directive in %s", goMod)
}

func scanMetadata(module string) map[string]TestMetadata {
	metadata := make(map[string]TestMetadata)
	fset := token.NewFileSet()

	_ = filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() && strings.HasPrefix(d.Name(), "_") {
			return filepath.SkipDir
		}
		if d.IsDir() || !strings.HasSuffix(path, "_test.go") {
			return nil
		}

		node, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil
		}

		pkgPath := module
		if dir := filepath.ToSlash(filepath.Dir(path)); dir != "." {
			pkgPath += "/" + dir
		}

		for _, decl := range node.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			if !ok || !strings.HasPrefix(fn.Name.Name, "Test") || fn.Name.Name == "TestMain" {
				continue
			}

			meta := TestMetadata{
				Name:     fn.Name.Name,
				Package:  pkgPath,
				Category: categoryOf(pkgPath),
			}
			if fn.Doc != nil {
				for _, line := range fn.Doc.List {
					text := strings.TrimSpace(strings.TrimPrefix(line.Text, "//"))
					switch {
					case strings.HasPrefix(text, "TestPurpose:"):
						meta.Purpose = strings.TrimSpace(strings.TrimPrefix(text, "TestPurpose:"))
					case strings.HasPrefix(text, "Scope:"):
						meta.Scope = strings.TrimSpace(strings.TrimPrefix(text, "Scope:"))
					case strings.HasPrefix(text, "Expected:"):
						meta.Expected = strings.TrimSpace(strings.TrimPrefix(text, "Expected:"))
					case strings.HasPrefix(text, "Test Case ID:"):
						meta.TestCaseID = strings.TrimSpace(strings.TrimPrefix(text, "Test Case ID:"))
					}
				}
			}
			metadata[pkgPath+"."+fn.Name.Name] = meta
		}
		return nil
	})

	return metadata
}

func categoryOf(pkgPath string) string {
	for _, c := range categories {
		if strings.Contains(pkgPath, c.fragment) {
			return c.name
		}
	}
	return "Other"
}

func parseTestOutput(path string, metadata map[string]TestMetadata) ([]FinalTestResult, error) {
	states := make(map[string]*FinalTestResult, len(metadata))
	for key, m := range metadata {
		states[key] = &FinalTestResult{Name: m.Name, Package: m.Package, Status: "not run", Annotations: m}
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		var event GoTestEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil || event.Test == "" {
			continue
		}

		key := event.Package + "." + event.Test
		res, ok := states[key]
		if !ok {
			// Subtests inherit the annotations of their parent.
			parent, _, _ := strings.Cut(event.Test, "/")
			meta, found := metadata[event.Package+"."+parent]
			if !found {
				meta = TestMetadata{Package: event.Package, Category: categoryOf(event.Package)}
			}
			meta.Name = event.Test
			res = &FinalTestResult{Name: event.Test, Package: event.Package, Annotations: meta}
			states[key] = res
		}

		switch event.Action {
		case "pass", "fail":
			res.Status = event.Action
			res.Elapsed = event.Elapsed
		case "skip":
			res.Status = "skip"
		case "output":
			if res.Status == "fail" || res.Status == "" {
				res.Failure += event.Output
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	results := lo.MapToSlice(states, func(_ string, r *FinalTestResult) FinalTestResult { return *r })
	slices.SortFunc(results, func(a, b FinalTestResult) int {
		return strings.Compare(a.Package+"."+a.Name, b.Package+"."+b.Name)
	})
	return results, nil
}

func generateSummary(results []FinalTestResult) ReportSummary {
	counts := lo.CountValuesBy(results, func(r FinalTestResult) string { return r.Status })
	return ReportSummary{
		GeneratedAt: time.Now(),
		Total:       len(results),
		Passed:      counts["pass"],
		Failed:      counts["fail"],
		Skipped:     counts["skip"],
		Results:     results,
	}
}

func saveJSON(summary ReportSummary, path string) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func saveMarkdown(summary ReportSummary, path, title string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Rentrack %s\n\n", title)
	fmt.Fprintf(&sb, "Generated at %s\n\n", summary.GeneratedAt.Format(time.RFC1123))
	sb.WriteString("| Total | Passed | Failed | Skipped |\n|---|---|---|---|\n")
	fmt.Fprintf(&sb, "| %d | %d | %d | %d |\n\n", summary.Total, summary.Passed, summary.Failed, summary.Skipped)

	grouped := lo.GroupBy(summary.Results, func(r FinalTestResult) string { return r.Annotations.Category })
	order := append(lo.Map(categories, func(c struct{ fragment, name string }, _ int) string { return c.name }), "Other")

	sb.WriteString("## Test Results by Category\n\n")
	for _, cat := range order {
		tests := grouped[cat]
		if len(tests) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "### %s\n\n", cat)
		sb.WriteString("| ID | Test Name | Status | Purpose | Expected |\n|---|---|---|---|---|\n")
		for _, t := range tests {
			fmt.Fprintf(&sb, "| %s | `%s` | %s | %s | %s |\n",
				t.Annotations.TestCaseID, t.Name, statusIcon(t.Status), t.Annotations.Purpose, t.Annotations.Expected)
		}
		sb.WriteString("\n")
	}

	failed := lo.Filter(summary.Results, func(r FinalTestResult, _ int) bool { return r.Status == "fail" })
	if len(failed) > 0 {
		sb.WriteString("## Failures\n\n")
		for _, t := range failed {
			fmt.Fprintf(&sb, "### %s\n\n```\n%s```\n\n", t.Name, t.Failure)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(sb.String()), 0o644)
}

func statusIcon(status string) string {
	switch status {
	case "pass":
		return "✅ PASS"
	case "fail":
		return "❌ FAIL"
	case "skip":
		return "⏭️ SKIP"
	}
	return "⚪ NOT RUN"
}

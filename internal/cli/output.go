// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"sigs.k8s.io/yaml"

	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	labelColor   = color.New(color.FgCyan)
)

func printSuccess(w io.Writer, format string, a ...interface{}) {
	_, _ = successColor.Fprintf(w, "✓ "+format+"\n", a...)
}

func printWarning(w io.Writer, format string, a ...interface{}) {
	_, _ = warnColor.Fprintf(w, "! "+format+"\n", a...)
}

func printField(w io.Writer, label, value string) {
	_, _ = labelColor.Fprintf(w, "%s: ", label)
	_, _ = fmt.Fprintln(w, value)
}

// printDepositions renders the list in the requested format.
// An empty list prints a single line in every format but json/yaml.
func printDepositions(w io.Writer, deps []deposit.Deposition, format string) error {
	switch utils.TranslateFormat(format) {
	case "json":
		if deps == nil {
			deps = []deposit.Deposition{}
		}
		b, err := json.MarshalIndent(deps, "", "  ")
		if err != nil {
			return fmt.Errorf("json marshal failed: %w", err)
		}
		_, err = fmt.Fprintln(w, string(b))
		return err
	case "yaml":
		if deps == nil {
			deps = []deposit.Deposition{}
		}
		b, err := yaml.Marshal(deps)
		if err != nil {
			return fmt.Errorf("yaml marshal failed: %w", err)
		}
		_, err = w.Write(b)
		return err
	default:
		if len(deps) == 0 {
			_, err := fmt.Fprintln(w, "No depositions found.")
			return err
		}
		return printShort(w, deps)
	}
}

func printShort(w io.Writer, deps []deposit.Deposition) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tSTATUS\tTITLE\tURL")
	for i := range deps {
		d := &deps[i]
		title := d.DisplayTitle()
		if title == "" {
			title = "(untitled)"
		}
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", d.ID, d.Status(), truncate(title, 60), d.URL())
	}
	return tw.Flush()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func printSkipped(w io.Writer, names []string) {
	if len(names) > 0 {
		printWarning(w, "Skipped (over size limit): %s", strings.Join(names, ", "))
	}
}

// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"time"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
)

/* ------------ single-line progress over a whole upload ------------ */

// Progress renders upload progress on w (normally stderr).
// In verbose mode every file gets its own size / percentage / done lines;
// otherwise one line tracks the bytes of all files together.
type Progress struct {
	w          io.Writer
	verbose    bool
	totalBytes int64
	doneBytes  int64
	spinIdx    int
	lastTick   time.Time
}

var spinner = []rune{'|', '/', '-', '\\'}

// NewProgress returns nil when w is nil; a nil *Progress hands out nil hooks.
func NewProgress(w io.Writer, totalBytes int64, verbose bool) *Progress {
	if w == nil {
		return nil
	}
	return &Progress{w: w, verbose: verbose, totalBytes: totalBytes}
}

// Hook returns the progress hook for the index-th of count files.
func (p *Progress) Hook(name string, index, count int) *config.ProgressHook {
	if p == nil {
		return nil
	}
	if p.verbose {
		return p.fileHook(name, index, count)
	}

	var prevWritten int64
	return &config.ProgressHook{
		OnProgress: func(_ string, written, _ int64) {
			if delta := written - prevWritten; delta > 0 {
				p.add(delta)
				p.render(false)
			}
			prevWritten = written
		},
		OnDone: func(_ string, total int64, _ time.Duration) {
			if total > prevWritten {
				p.add(total - prevWritten)
			}
			p.render(true)
		},
	}
}

func (p *Progress) fileHook(name string, index, count int) *config.ProgressHook {
	return &config.ProgressHook{
		OnStart: func(_ string, total int64) {
			fmt.Fprintf(p.w, "   [%d/%d] %s (%s)\n", index+1, count, name, HumanBytes(total))
		},
		OnProgress: func(_ string, written, total int64) {
			if total <= 0 {
				return
			}
			pct := float64(written) / float64(total) * 100
			fmt.Fprintf(p.w, "\r      └─ uploading: %6.2f%%", pct)
		},
		OnDone: func(_ string, total int64, took time.Duration) {
			if total > 0 {
				fmt.Fprintf(p.w, "\r      └─ done:      100.00%% in %s\n", took.Truncate(100*time.Millisecond))
			} else {
				fmt.Fprintf(p.w, "      └─ done in %s\n", took.Truncate(100*time.Millisecond))
			}
		},
	}
}

// Done terminates the single progress line.
func (p *Progress) Done() {
	if p == nil || p.verbose {
		return
	}
	p.render(true)
	fmt.Fprintln(p.w)
}

func (p *Progress) add(delta int64) {
	p.doneBytes += delta
}

func (p *Progress) render(force bool) {
	// ~10 updates per second at most
	if !force && time.Since(p.lastTick) < 100*time.Millisecond {
		return
	}
	p.lastTick = time.Now()

	if p.totalBytes > 0 {
		if p.doneBytes > p.totalBytes {
			p.doneBytes = p.totalBytes
		}
		pct := float64(p.doneBytes) / float64(p.totalBytes) * 100
		fmt.Fprintf(p.w, "\rProgress: %6.2f%% (%s / %s)   ",
			pct, HumanBytes(p.doneBytes), HumanBytes(p.totalBytes))
		return
	}
	ch := spinner[p.spinIdx%len(spinner)]
	p.spinIdx++
	fmt.Fprintf(p.w, "\rProgress: [%c] %s uploaded   ", ch, HumanBytes(p.doneBytes))
}

func HumanBytes(n int64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
	)
	switch {
	case n >= GB:
		return fmt.Sprintf("%.2f GB", float64(n)/float64(GB))
	case n >= MB:
		return fmt.Sprintf("%.2f MB", float64(n)/float64(MB))
	case n >= KB:
		return fmt.Sprintf("%.2f KB", float64(n)/float64(KB))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"fmt"
	"io"
	"time"
)

// ProgressHook receives the progress of a transfer.
type ProgressHook struct {
	OnStart    func(path string, totalBytes int64)                     // once, before the first byte
	OnProgress func(path string, written, totalBytes int64)            // throttled
	OnDone     func(path string, totalBytes int64, took time.Duration) // after the last byte
}

// ProgressWriter counts bytes written through it and reports them to a hook.
// Use it as the writer side of an io.TeeReader.
type ProgressWriter struct {
	path     string
	total    int64
	written  int64
	lastEmit time.Time
	interval time.Duration
	start    time.Time
	hook     *ProgressHook
}

// NewProgressWriter calls hook.OnStart; total may be -1 when unknown.
func NewProgressWriter(path string, total int64, hook *ProgressHook) *ProgressWriter {
	pw := &ProgressWriter{
		path:     path,
		total:    total,
		interval: 250 * time.Millisecond,
		start:    time.Now(),
		hook:     hook,
	}
	if hook != nil && hook.OnStart != nil {
		hook.OnStart(path, total)
	}
	return pw
}

func (pw *ProgressWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.written += int64(n)
	now := time.Now()
	if pw.hook != nil && pw.hook.OnProgress != nil && (pw.written == pw.total || now.Sub(pw.lastEmit) >= pw.interval) {
		pw.hook.OnProgress(pw.path, pw.written, pw.total)
		pw.lastEmit = now
	}
	return n, nil
}

// Written is the number of bytes seen so far.
func (pw *ProgressWriter) Written() int64 {
	return pw.written
}

// Done calls hook.OnDone with the final byte count.
func (pw *ProgressWriter) Done() {
	if pw.hook != nil && pw.hook.OnDone != nil {
		pw.hook.OnDone(pw.path, pw.written, time.Since(pw.start))
	}
}

/* ------------ single-line progress rendering ------------ */

type lineProgress struct {
	out        io.Writer
	totalBytes int64
	doneBytes  int64
	spinIdx    int
	lastTick   time.Time
}

var spinner = []rune{'|', '/', '-', '\\'}

// WriterProgress renders a one-line progress bar on out.
func WriterProgress(out io.Writer) *ProgressHook {
	lp := &lineProgress{out: out}
	return &ProgressHook{
		OnStart: func(_ string, total int64) {
			lp.totalBytes = total
			lp.doneBytes = 0
		},
		OnProgress: func(_ string, written, _ int64) {
			lp.doneBytes = written
			lp.render(false)
		},
		OnDone: func(_ string, total int64, took time.Duration) {
			lp.doneBytes = total
			lp.render(true)
			fmt.Fprintf(lp.out, " in %s\n", took.Truncate(100*time.Millisecond))
		},
	}
}

// HumanBytes formats n with a binary unit.
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

func (lp *lineProgress) render(force bool) {
	// about ten updates per second
	if !force && time.Since(lp.lastTick) < 100*time.Millisecond {
		return
	}
	lp.lastTick = time.Now()

	if lp.totalBytes > 0 {
		done := min(lp.doneBytes, lp.totalBytes)
		pct := float64(done) / float64(lp.totalBytes) * 100
		fmt.Fprintf(lp.out, "\rProgress: %6.2f%% (%s / %s)   ",
			pct, HumanBytes(done), HumanBytes(lp.totalBytes))
		return
	}
	ch := spinner[lp.spinIdx%len(spinner)]
	lp.spinIdx++
	fmt.Fprintf(lp.out, "\rProgress: [%c] %s transferred   ", ch, HumanBytes(lp.doneBytes))
}

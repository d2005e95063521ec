// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"io"
	"time"
)

const progressInterval = 250 * time.Millisecond

type ProgressHook struct {
	OnStart    func(key string, totalBytes int64)                     // once, before the first byte
	OnProgress func(key string, written, totalBytes int64)            // throttled
	OnDone     func(key string, totalBytes int64, took time.Duration) // after the last byte
}

type progressWriter struct {
	key        string
	total      int64
	written    int64
	lastEmit   time.Time
	interval   time.Duration
	onProgress func(key string, written, total int64)
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	n := len(p)
	pw.written += int64(n)
	now := time.Now()
	if pw.onProgress != nil && (pw.written == pw.total || now.Sub(pw.lastEmit) >= pw.interval) {
		pw.onProgress(pw.key, pw.written, pw.total)
		pw.lastEmit = now
	}
	return n, nil
}

// trackReader wraps r so that every byte read is reported to hook.
func trackReader(r io.Reader, key string, total int64, hook *ProgressHook) io.Reader {
	if hook == nil || hook.OnProgress == nil {
		return r
	}
	pw := &progressWriter{
		key:        key,
		total:      total,
		interval:   progressInterval,
		onProgress: hook.OnProgress,
	}
	return io.TeeReader(r, pw)
}

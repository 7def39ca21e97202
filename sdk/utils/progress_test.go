// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils_test

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yadisk-tools/yadisk-sdk/sdk/utils"
)

func TestProgressWriter(t *testing.T) {
	var (
		startTotal int64
		last       int64
		doneTotal  int64
	)
	hook := &utils.ProgressHook{
		OnStart:    func(_ string, total int64) { startTotal = total },
		OnProgress: func(_ string, written, _ int64) { last = written },
		OnDone:     func(_ string, total int64, _ time.Duration) { doneTotal = total },
	}

	pw := utils.NewProgressWriter("/a", 11, hook)
	_, err := io.Copy(io.Discard, io.TeeReader(strings.NewReader("hello world"), pw))
	require.NoError(t, err)
	pw.Done()

	assert.Equal(t, int64(11), startTotal)
	assert.Equal(t, int64(11), last)
	assert.Equal(t, int64(11), doneTotal)
	assert.Equal(t, int64(11), pw.Written())
}

func TestProgressWriterWithoutHook(t *testing.T) {
	pw := utils.NewProgressWriter("/a", -1, nil)
	n, err := pw.Write([]byte("abc"))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	pw.Done()
}

func TestWriterProgress(t *testing.T) {
	var out bytes.Buffer
	pw := utils.NewProgressWriter("/a", 2048, utils.WriterProgress(&out))
	_, _ = pw.Write(make([]byte, 2048))
	pw.Done()

	assert.Contains(t, out.String(), "100.00% (2.00 KB / 2.00 KB)")
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
}

func TestWriterProgressUnknownSize(t *testing.T) {
	var out bytes.Buffer
	pw := utils.NewProgressWriter("/a", -1, utils.WriterProgress(&out))
	_, _ = pw.Write(make([]byte, 10))
	pw.Done()

	assert.Contains(t, out.String(), "10 B transferred")
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", utils.HumanBytes(512))
	assert.Equal(t, "2.00 KB", utils.HumanBytes(2048))
	assert.Equal(t, "3.00 MB", utils.HumanBytes(3*1024*1024))
	assert.Equal(t, "1.50 GB", utils.HumanBytes(3*512*1024*1024))
}

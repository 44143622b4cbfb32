/*
 * MIT License
 *
 * Copyright (c) 2026 Orchd Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// entry mirrors the JSON line shape the encoder emits.
type entry struct {
	Level string `json:"level"`
	Msg   string `json:"msg"`
}

func lastEntry(t *testing.T, buffer *bytes.Buffer) entry {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buffer.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	var e entry
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &e))
	return e
}

func TestZapLevels(t *testing.T) {
	t.Run("info logger", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		require.Equal(t, InfoLevel, logger.LogLevel())

		logger.Info("started")
		e := lastEntry(t, buffer)
		require.Equal(t, "info", e.Level)
		require.Equal(t, "started", e.Msg)

		// below the configured level nothing is written
		before := buffer.Len()
		logger.Debug("hidden")
		require.Equal(t, before, buffer.Len())
	})

	t.Run("debug logger", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())

		logger.Debugf("loaded %d nodes", 3)
		e := lastEntry(t, buffer)
		require.Equal(t, "debug", e.Level)
		require.Equal(t, "loaded 3 nodes", e.Msg)
	})

	t.Run("warn and error", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(DebugLevel, buffer)

		logger.Warnf("disk %s is low", "/var")
		require.Equal(t, "warn", lastEntry(t, buffer).Level)

		logger.Errorf("save failed: %v", "permission denied")
		e := lastEntry(t, buffer)
		require.Equal(t, "error", e.Level)
		require.Equal(t, "save failed: permission denied", e.Msg)
	})

	t.Run("unknown level defaults to debug", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(Level(42), buffer)
		require.Equal(t, DebugLevel, logger.LogLevel())
	})

	t.Run("package loggers", func(t *testing.T) {
		require.Equal(t, InfoLevel, DefaultLogger.LogLevel())
		require.Equal(t, DebugLevel, DebugLogger.LogLevel())
	})
}

func TestZapWith(t *testing.T) {
	t.Run("adds structured fields", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("component", "store", "dir", "/var/lib/orchd").Info("ready")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buffer.Bytes()), &m))
		require.Contains(t, m, "component")
		require.Contains(t, m, "dir")
	})

	t.Run("returns same logger when empty", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		assert.Equal(t, logger, logger.With())
	})

	t.Run("odd trailing value goes under _", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With("a", 1, "orphan").Info("msg")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buffer.Bytes()), &m))
		require.Contains(t, m, "a")
		require.Contains(t, m, "_")
	})

	t.Run("non-string keys are skipped", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		logger.With(42, "ignored", "k", "v").Info("msg")

		var m map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(bytes.TrimSpace(buffer.Bytes()), &m))
		require.Contains(t, m, "k")
		require.NotContains(t, m, "42")
	})

	t.Run("all non-string keys returns same logger", func(t *testing.T) {
		buffer := new(bytes.Buffer)
		logger := NewZap(InfoLevel, buffer)
		assert.Equal(t, logger, logger.With(1, 2, 3, 4))
	})
}

func TestFlush(t *testing.T) {
	buffer := new(bytes.Buffer)
	logger := NewZap(InfoLevel, buffer)
	logger.Info("before flush")
	require.NoError(t, logger.Flush())
}

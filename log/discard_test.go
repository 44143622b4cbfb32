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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscardLogger(t *testing.T) {
	// none of these should panic or emit anything
	DiscardLogger.Info("info")
	DiscardLogger.Infof("info %d", 1)
	DiscardLogger.Warn("warn")
	DiscardLogger.Warnf("warn %d", 2)
	DiscardLogger.Error("error")
	DiscardLogger.Errorf("error %d", 3)
	DiscardLogger.Debug("debug")
	DiscardLogger.Debugf("debug %d", 4)

	assert.Equal(t, DiscardLogger, DiscardLogger.With("key", "value"))
	require.Equal(t, InvalidLevel, DiscardLogger.LogLevel())
	require.NoError(t, DiscardLogger.Flush())
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "INFO", InfoLevel.String())
	require.Equal(t, "WARNING", WarningLevel.String())
	require.Equal(t, "ERROR", ErrorLevel.String())
	require.Equal(t, "DEBUG", DebugLevel.String())
	require.Equal(t, "UNKNOWN", InvalidLevel.String())
	require.Equal(t, "UNKNOWN", Level(99).String())
}

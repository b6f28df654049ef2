// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package variant

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

// Logger returns the package logger.
// It is a no-op logger unless [SetLogger] installed another one.
func Logger() *zap.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return nopLogger
}

// SetLogger configures the package logger. Passing nil restores the
// no-op logger. Only schema compilation is logged; variant operations
// never log.
func SetLogger(l *zap.Logger) {
	logger.Store(l)
}

var nopLogger = zap.NewNop()

package frame

import "go.uber.org/zap"

var logger = zap.NewNop()

// UseLogger sets the logger that Def uses to record codec bindings.
// It is never consulted on the per-byte read/write path.
func UseLogger(zapLogger *zap.Logger) {
	logger = zapLogger
}

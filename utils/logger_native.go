//go:build !js || !wasm
// +build !js !wasm

package utils

import "go.uber.org/zap/zapcore"

// hostConsoleCore is nil on native platforms; stdout is used instead
func hostConsoleCore(enc zapcore.Encoder, level zapcore.LevelEnabler) zapcore.Core {
	return nil
}

//go:build js && wasm
// +build js,wasm

package utils

import (
	"strings"
	"syscall/js"

	"go.uber.org/zap/zapcore"
)

// consoleCore writes encoded entries to the browser's JS console
type consoleCore struct {
	zapcore.LevelEnabler
	enc     zapcore.Encoder
	console js.Value
}

// hostConsoleCore redirects logs to the JS console when one is present
func hostConsoleCore(enc zapcore.Encoder, level zapcore.LevelEnabler) zapcore.Core {
	console := js.Global().Get("console")
	if isValueNil(console) {
		return nil
	}
	return &consoleCore{LevelEnabler: level, enc: enc, console: console}
}

func (c *consoleCore) With(fields []zapcore.Field) zapcore.Core {
	clone := c.enc.Clone()
	for _, f := range fields {
		f.AddTo(clone)
	}
	return &consoleCore{LevelEnabler: c.LevelEnabler, enc: clone, console: c.console}
}

func (c *consoleCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *consoleCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	line := strings.TrimSuffix(buf.String(), "\n")
	buf.Free()
	c.console.Call(consoleMethod(ent.Level), line)
	return nil
}

func (c *consoleCore) Sync() error {
	return nil
}

// isValueNil helper for js.Value
func isValueNil(v js.Value) bool {
	return v.Type() == js.TypeNull || v.Type() == js.TypeUndefined
}

//go:build js && wasm

package host

import (
	"errors"
	"fmt"
	"syscall/js"

	"github.com/nmxmxh/inos_effects/probe"
	"github.com/nmxmxh/inos_effects/utils"
)

const reducedMotionQuery = "(prefers-reduced-motion: reduce)"

// Browser is the real page: window resize events and the reduced-motion
// media query.
type Browser struct {
	*probe.BrowserSource
	window js.Value
	logger *utils.Logger
}

// NewBrowser binds to the JS global object
func NewBrowser() *Browser {
	return &Browser{
		BrowserSource: probe.NewBrowserSource(),
		window:        js.Global(),
		logger:        utils.GlobalLogger().Named("host"),
	}
}

func (b *Browser) OnResize(fn func(width int)) (func(), error) {
	if b.window.Get("addEventListener").Type() != js.TypeFunction {
		return nil, errors.New("window.addEventListener unavailable")
	}
	handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		forward(b.logger, "resize", b.innerWidth, fn)
		return nil
	})
	b.window.Call("addEventListener", "resize", handler)
	return func() {
		b.window.Call("removeEventListener", "resize", handler)
		handler.Release()
	}, nil
}

func (b *Browser) OnReducedMotionChange(fn func(enabled bool)) (func(), error) {
	if b.window.Get("matchMedia").Type() != js.TypeFunction {
		return nil, errors.New("window.matchMedia unavailable")
	}
	mq := b.window.Call("matchMedia", reducedMotionQuery)
	handler := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		forward(b.logger, "reduced_motion", func() (bool, error) {
			matches := mq.Get("matches")
			if len(args) > 0 && args[0].Type() == js.TypeObject && args[0].Get("matches").Type() == js.TypeBoolean {
				matches = args[0].Get("matches")
			}
			if matches.Type() != js.TypeBoolean {
				return false, fmt.Errorf("matches is %s, want boolean", matches.Type())
			}
			return matches.Bool(), nil
		}, fn)
		return nil
	})

	// Safari < 14 only has the deprecated addListener
	if mq.Get("addEventListener").Type() == js.TypeFunction {
		mq.Call("addEventListener", "change", handler)
		return func() {
			mq.Call("removeEventListener", "change", handler)
			handler.Release()
		}, nil
	}
	mq.Call("addListener", handler)
	return func() {
		mq.Call("removeListener", handler)
		handler.Release()
	}, nil
}

func (b *Browser) innerWidth() (int, error) {
	v := b.window.Get("innerWidth")
	if v.Type() != js.TypeNumber {
		return 0, fmt.Errorf("innerWidth is %s, want number", v.Type())
	}
	return v.Int(), nil
}

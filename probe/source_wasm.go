//go:build js && wasm

package probe

import (
	"errors"
	"syscall/js"
)

const reducedMotionQuery = "(prefers-reduced-motion: reduce)"

// BrowserSource reads signals from window/navigator
type BrowserSource struct {
	global js.Value
}

// NewBrowserSource creates a source bound to the JS global object
func NewBrowserSource() *BrowserSource {
	return &BrowserSource{global: js.Global()}
}

func (b *BrowserSource) navigator() js.Value {
	return b.global.Get("navigator")
}

func (b *BrowserSource) ViewportWidth() (int, bool) {
	w := b.global.Get("innerWidth")
	if w.Type() != js.TypeNumber {
		return 0, false
	}
	return w.Int(), true
}

func (b *BrowserSource) UserAgent() (string, bool) {
	nav := b.navigator()
	if !isDefined(nav) {
		return "", false
	}
	ua := nav.Get("userAgent")
	if ua.Type() != js.TypeString {
		return "", false
	}
	return ua.String(), true
}

// GPUContext creates a detached canvas, asks for a WebGL context and
// releases both. The canvas is never attached to the document.
func (b *BrowserSource) GPUContext() (bool, error) {
	doc := b.global.Get("document")
	if !isDefined(doc) {
		return false, errors.New("no document")
	}
	canvas := doc.Call("createElement", "canvas")
	defer func() {
		canvas.Set("width", 0)
		canvas.Set("height", 0)
	}()

	ctx := canvas.Call("getContext", "webgl")
	if !ctx.Truthy() {
		ctx = canvas.Call("getContext", "experimental-webgl")
	}
	if !ctx.Truthy() {
		return false, nil
	}
	if lose := ctx.Call("getExtension", "WEBGL_lose_context"); lose.Truthy() {
		lose.Call("loseContext")
	}
	return true, nil
}

func (b *BrowserSource) PrefersReducedMotion() (bool, bool) {
	matchMedia := b.global.Get("matchMedia")
	if matchMedia.Type() != js.TypeFunction {
		return false, false
	}
	mq := b.global.Call("matchMedia", reducedMotionQuery)
	return mq.Get("matches").Truthy(), true
}

func (b *BrowserSource) HardwareConcurrency() (int, bool) {
	nav := b.navigator()
	if !isDefined(nav) {
		return 0, false
	}
	hw := nav.Get("hardwareConcurrency")
	if hw.Type() != js.TypeNumber {
		return 0, false
	}
	return hw.Int(), true
}

func (b *BrowserSource) DeviceMemory() (float64, bool) {
	nav := b.navigator()
	if !isDefined(nav) {
		return 0, false
	}
	mem := nav.Get("deviceMemory")
	if mem.Type() != js.TypeNumber {
		return 0, false
	}
	return mem.Float(), true
}

func (b *BrowserSource) connection() js.Value {
	nav := b.navigator()
	if !isDefined(nav) {
		return js.Undefined()
	}
	return nav.Get("connection")
}

func (b *BrowserSource) EffectiveConnectionType() (string, bool) {
	conn := b.connection()
	if !isDefined(conn) {
		return "", false
	}
	et := conn.Get("effectiveType")
	if et.Type() != js.TypeString {
		return "", false
	}
	return et.String(), true
}

func (b *BrowserSource) BatterySaver() (bool, bool) {
	conn := b.connection()
	if !isDefined(conn) {
		return false, false
	}
	sd := conn.Get("saveData")
	if sd.Type() != js.TypeBoolean {
		return false, false
	}
	return sd.Bool(), true
}

func isDefined(v js.Value) bool {
	return !v.IsUndefined() && !v.IsNull()
}

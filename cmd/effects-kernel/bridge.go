//go:build js && wasm
// +build js,wasm

package main

import (
	"syscall/js"
	"time"

	"github.com/nmxmxh/inos_effects/budget"
	"github.com/nmxmxh/inos_effects/probe"
)

// notifyHost sends events to the JS environment
func (k *kernel) notifyHost(event string, data map[string]interface{}) {
	payload := map[string]interface{}{
		"event":     event,
		"timestamp": time.Now().UnixNano(),
		"data":      data,
	}

	js.Global().Call("dispatchEvent",
		js.Global().Get("CustomEvent").New("inos:effects", map[string]interface{}{
			"detail": payload,
		}),
	)
}

// --- JS Exports ---

func (k *kernel) jsMount(this js.Value, args []js.Value) interface{} {
	if err := k.mount(); err != nil {
		return js.ValueOf(map[string]interface{}{"success": false, "error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"success": true})
}

func (k *kernel) jsUnmount(this js.Value, args []js.Value) interface{} {
	if err := k.unmount(); err != nil {
		return js.ValueOf(map[string]interface{}{"success": false, "error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"success": true})
}

func (k *kernel) jsGetBudget(this js.Value, args []js.Value) interface{} {
	engine := k.current()
	if engine == nil {
		return js.ValueOf(budget.Default().Map())
	}
	return js.ValueOf(engine.Budget().Map())
}

func (k *kernel) jsGetSample(this js.Value, args []js.Value) interface{} {
	engine := k.current()
	if engine == nil {
		return js.Null()
	}
	return js.ValueOf(sampleMap(engine.Sample()))
}

func (k *kernel) jsGetState(this js.Value, args []js.Value) interface{} {
	engine := k.current()
	if engine == nil {
		return js.ValueOf("UNINITIALIZED")
	}
	return js.ValueOf(engine.State().String())
}

// jsSubscribe(cb) registers cb for budget updates of this and every later
// mount and returns an unsubscribe function
func (k *kernel) jsSubscribe(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 || args[0].Type() != js.TypeFunction {
		return js.ValueOf(map[string]interface{}{"error": "missing argument: (callback)"})
	}

	cb := args[0]
	unsubscribe := k.relay.Subscribe(func(b budget.EffectsBudget) {
		cb.Invoke(js.ValueOf(b.Map()))
	})

	var release js.Func
	release = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		unsubscribe()
		release.Release()
		return nil
	})
	return release
}

func sampleMap(s probe.Sample) map[string]interface{} {
	return map[string]interface{}{
		"viewportWidth":        s.ViewportWidth,
		"viewportClass":        s.ViewportClass.String(),
		"userAgent":            s.UserAgent,
		"coreCount":            s.CoreCount,
		"memoryGB":             s.MemoryGB,
		"gpuAccelerated":       s.GPUAccelerated,
		"prefersReducedMotion": s.PrefersReducedMotion,
		"connectionQuality":    s.ConnectionQuality.String(),
		"batteryConscious":     s.BatteryConscious,
	}
}

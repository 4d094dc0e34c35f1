//go:build js && wasm
// +build js,wasm

package main

import (
	"syscall/js"

	"github.com/nmxmxh/inos_effects/config"
	"github.com/nmxmxh/inos_effects/utils"
)

func main() {
	// 1. Resolve policy and logger
	policy := loadPolicy()
	logger := utils.NewLogger(utils.LoggerConfig{
		Level:     policy.Level(),
		Component: "effects",
	})
	utils.SetGlobalLogger(logger)

	// 2. Create the page-scoped kernel
	k := newKernel(policy, logger)

	// 3. Export the effects API
	api := js.Global().Get("Object").New()
	api.Set("mount", js.FuncOf(k.jsMount))
	api.Set("unmount", js.FuncOf(k.jsUnmount))
	api.Set("getBudget", js.FuncOf(k.jsGetBudget))
	api.Set("getSample", js.FuncOf(k.jsGetSample))
	api.Set("getState", js.FuncOf(k.jsGetState))
	api.Set("subscribe", js.FuncOf(k.jsSubscribe))
	js.Global().Set("effects", api)

	// 4. Release listeners when the page goes away
	window := js.Global().Get("window")
	if !window.IsUndefined() && !window.IsNull() {
		window.Call("addEventListener", "pagehide", js.FuncOf(func(this js.Value, args []js.Value) interface{} {
			k.unmount()
			return nil
		}))
	}

	k.notifyHost("effects:ready", nil)
	utils.Info("Effects kernel ready", utils.String("log_level", policy.LogLevel))

	// Block Main Thread
	select {}
}

// loadPolicy reads an optional YAML policy from globalThis.__EFFECTS_POLICY__
func loadPolicy() *config.Policy {
	raw := js.Global().Get("__EFFECTS_POLICY__")
	if raw.Type() != js.TypeString {
		return config.Default()
	}
	policy, err := config.Parse([]byte(raw.String()))
	if err != nil {
		utils.Warn("Invalid __EFFECTS_POLICY__, using defaults", utils.Err(err))
		return config.Default()
	}
	return policy
}

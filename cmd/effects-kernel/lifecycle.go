//go:build js && wasm
// +build js,wasm

package main

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/nmxmxh/inos_effects/adapter"
	"github.com/nmxmxh/inos_effects/budget"
	"github.com/nmxmxh/inos_effects/config"
	"github.com/nmxmxh/inos_effects/host"
	"github.com/nmxmxh/inos_effects/utils"
)

// kernel hosts one engine per mounted page. A client-side navigation
// unmounts the old engine and the next mount builds a fresh one.
// Page subscriptions live on relay so they survive remounts.
type kernel struct {
	mu     sync.Mutex
	policy *config.Policy
	logger *utils.Logger
	engine *adapter.Engine
	relay  *adapter.Store
}

func newKernel(policy *config.Policy, logger *utils.Logger) *kernel {
	k := &kernel{
		policy: policy,
		logger: logger,
		relay:  adapter.NewStore(budget.Default(), logger.Named("relay")),
	}
	k.relay.Subscribe(func(b budget.EffectsBudget) {
		k.notifyHost("effects:budget", b.Map())
	})
	return k
}

func (k *kernel) mount() (err error) {
	defer k.recoverPanic(&err)

	k.mu.Lock()
	if k.engine != nil && k.engine.State() != adapter.StateUnmounted {
		k.mu.Unlock()
		return adapter.ErrAlreadyMounted
	}
	engine := adapter.New(host.NewBrowser(),
		adapter.WithPolicy(k.policy),
		adapter.WithLogger(k.logger),
	)
	engine.Subscribe(func(b budget.EffectsBudget) {
		k.relay.Publish(b)
	})
	k.engine = engine
	k.mu.Unlock()

	// Page listeners may call back into the kernel while Mount publishes
	if err := engine.Mount(); err != nil {
		return err
	}
	k.notifyHost("effects:mounted", engine.Budget().Map())
	return nil
}

func (k *kernel) unmount() (err error) {
	defer k.recoverPanic(&err)

	k.mu.Lock()
	engine := k.engine
	k.mu.Unlock()

	if engine == nil {
		return nil
	}
	if err := engine.Unmount(); err != nil {
		k.logger.Warn("Unmount released listeners with errors", utils.Err(err))
	}
	k.notifyHost("effects:unmounted", nil)
	return nil
}

// current returns the live engine, or nil
func (k *kernel) current() *adapter.Engine {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.engine
}

// recoverPanic keeps a failure inside the kernel from reaching page scripts
func (k *kernel) recoverPanic(err *error) {
	if r := recover(); r != nil {
		stack := string(debug.Stack())
		k.logger.Error("EFFECTS KERNEL PANIC",
			utils.Any("reason", r),
			utils.String("stack", stack))

		k.notifyHost("effects:panic", map[string]interface{}{
			"reason": fmt.Sprintf("%v", r),
		})
		*err = fmt.Errorf("effects kernel panic: %v", r)
	}
}

package adapter_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nmxmxh/inos_effects/adapter"
	"github.com/nmxmxh/inos_effects/budget"
	"github.com/nmxmxh/inos_effects/tier"
	"github.com/nmxmxh/inos_effects/utils"
)

func TestStore_PublishReplacesWholeValue(t *testing.T) {
	s := adapter.NewStore(budget.Default(), utils.NewNop())

	next := budget.EffectsBudget{ParticleCount: 200, ParticleSize: 3, AnimationSpeed: 1.2, Tier: tier.High}
	assert.True(t, s.Publish(next))
	assert.Equal(t, next, s.Load())
	assert.Equal(t, uint64(1), s.Version())

	// Mutating a loaded copy never reaches the store
	loaded := s.Load()
	loaded.ParticleCount = 1
	assert.Equal(t, 200, s.Load().ParticleCount)
}

func TestStore_ConcurrentReadersNeverTear(t *testing.T) {
	s := adapter.NewStore(budget.Default(), utils.NewNop())
	low := budget.EffectsBudget{ParticleCount: 15, ParticleSize: 1.5, AnimationSpeed: 0.5, Tier: tier.Low}
	high := budget.EffectsBudget{ParticleCount: 200, ParticleSize: 3, AnimationSpeed: 1.2, Tier: tier.High}
	valid := map[budget.EffectsBudget]bool{budget.Default(): true, low: true, high: true}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
					b := s.Load()
					if !valid[b] {
						t.Errorf("torn read: %+v", b)
						return
					}
				}
			}
		}()
	}

	for i := 0; i < 1000; i++ {
		if i%2 == 0 {
			s.Publish(low)
		} else {
			s.Publish(high)
		}
	}
	close(stop)
	wg.Wait()
}

func TestStore_CloseResetsSilently(t *testing.T) {
	s := adapter.NewStore(budget.Default(), utils.NewNop())
	calls := 0
	s.Subscribe(func(budget.EffectsBudget) { calls++ })

	s.Publish(budget.EffectsBudget{ParticleCount: 80, ParticleSize: 2.5, AnimationSpeed: 1, Tier: tier.High})
	assert.Equal(t, 1, calls)

	s.Close(budget.Default())
	assert.Equal(t, 0, s.Subscribers())
	assert.Equal(t, budget.Default(), s.Load())
	assert.False(t, s.Publish(budget.EffectsBudget{Tier: tier.Low}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, budget.Default(), s.Load())
}

func TestStore_CloseDuringDelivery(t *testing.T) {
	s := adapter.NewStore(budget.Default(), utils.NewNop())
	s.Subscribe(func(budget.EffectsBudget) { s.Close(budget.Default()) })
	later := 0
	s.Subscribe(func(budget.EffectsBudget) { later++ })

	assert.True(t, s.Publish(budget.EffectsBudget{ParticleCount: 80, Tier: tier.High}))
	assert.Equal(t, 0, later)
	assert.Equal(t, budget.Default(), s.Load())
	assert.False(t, s.Publish(budget.EffectsBudget{Tier: tier.Low}))
}

func TestStore_SwapDefersDelivery(t *testing.T) {
	s := adapter.NewStore(budget.Default(), utils.NewNop())
	var got []int
	s.Subscribe(func(b budget.EffectsBudget) { got = append(got, b.ParticleCount) })

	assert.True(t, s.Swap(budget.EffectsBudget{ParticleCount: 15, Tier: tier.Low}))
	assert.True(t, s.Swap(budget.EffectsBudget{ParticleCount: 40, Tier: tier.Medium}))
	assert.Equal(t, 40, s.Load().ParticleCount)
	assert.Empty(t, got)

	s.Deliver()
	assert.Equal(t, []int{15, 40}, got)

	s.Deliver()
	assert.Equal(t, []int{15, 40}, got)
}

func TestStore_ReentrantPublishKeepsOrder(t *testing.T) {
	s := adapter.NewStore(budget.Default(), utils.NewNop())
	var a, b []int
	s.Subscribe(func(v budget.EffectsBudget) {
		a = append(a, v.ParticleCount)
		if v.ParticleCount == 1 {
			s.Publish(budget.EffectsBudget{ParticleCount: 2})
		}
	})
	s.Subscribe(func(v budget.EffectsBudget) { b = append(b, v.ParticleCount) })

	s.Publish(budget.EffectsBudget{ParticleCount: 1})
	assert.Equal(t, []int{1, 2}, a)
	assert.Equal(t, []int{1, 2}, b)
}

func TestStore_UnsubscribeDuringDelivery(t *testing.T) {
	s := adapter.NewStore(budget.Default(), utils.NewNop())
	calls := 0
	var unsubscribe func()
	s.Subscribe(func(budget.EffectsBudget) { unsubscribe() })
	unsubscribe = s.Subscribe(func(budget.EffectsBudget) { calls++ })

	s.Publish(budget.EffectsBudget{ParticleCount: 40})
	assert.Equal(t, 0, calls)
	assert.Equal(t, 1, s.Subscribers())
}

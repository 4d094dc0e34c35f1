package main

import (
	"github.com/spf13/cobra"

	"github.com/nmxmxh/inos_effects/probe"
)

// signalFlags binds the raw probe signals to command flags. Only flags the
// user set become available signals.
type signalFlags struct {
	width         int
	userAgent     string
	cores         int
	memory        float64
	gpu           bool
	reducedMotion bool
	effectiveType string
	saveData      bool
}

func (f *signalFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntVar(&f.width, "width", 0, "viewport width in px")
	fs.StringVar(&f.userAgent, "user-agent", "", "user agent string")
	fs.IntVar(&f.cores, "cores", 0, "navigator.hardwareConcurrency")
	fs.Float64Var(&f.memory, "memory", 0, "navigator.deviceMemory in GB")
	fs.BoolVar(&f.gpu, "gpu", true, "a WebGL context can be created")
	fs.BoolVar(&f.reducedMotion, "reduced-motion", false, "prefers-reduced-motion: reduce")
	fs.StringVar(&f.effectiveType, "effective-type", "", "navigator.connection.effectiveType (slow-2g, 2g, 3g, 4g)")
	fs.BoolVar(&f.saveData, "save-data", false, "navigator.connection.saveData")
}

func (f *signalFlags) signals(cmd *cobra.Command) probe.Signals {
	fs := cmd.Flags()
	sig := probe.Signals{GPU: probe.Ptr(f.gpu)}
	if fs.Changed("width") {
		sig.ViewportWidth = probe.Ptr(f.width)
	}
	if fs.Changed("user-agent") {
		sig.UserAgent = probe.Ptr(f.userAgent)
	}
	if fs.Changed("cores") {
		sig.HardwareConcurrency = probe.Ptr(f.cores)
	}
	if fs.Changed("memory") {
		sig.DeviceMemory = probe.Ptr(f.memory)
	}
	if fs.Changed("reduced-motion") {
		sig.ReducedMotion = probe.Ptr(f.reducedMotion)
	}
	if fs.Changed("effective-type") {
		sig.EffectiveType = probe.Ptr(f.effectiveType)
	}
	if fs.Changed("save-data") {
		sig.SaveData = probe.Ptr(f.saveData)
	}
	return sig
}

// Package webgpu implements the accelerated backend: WGSL compute shaders
// dispatched through github.com/openfluke/webgpu.
//
// Tensors stay host-resident between operations. Each operation uploads its
// operands, runs one compute pass, reads the result back and releases the
// transient GPU buffers. Only float32 is supported.
package webgpu

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/openfluke/webgpu/wgpu"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

// Backend implements tensor operations on GPU using WebGPU.
type Backend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	info wgpu.AdapterInfo

	// Pipelines keyed by shader source. Shapes are baked into the source,
	// so one entry exists per distinct operation geometry.
	pipelines map[string]*wgpu.ComputePipeline
	mu        sync.RWMutex
}

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// adapterPreferences is the order in which adapters are requested.
// A nil entry lets the implementation choose.
var adapterPreferences = []*wgpu.RequestAdapterOptions{
	{PowerPreference: wgpu.PowerPreferenceHighPerformance},
	{PowerPreference: wgpu.PowerPreferenceLowPower},
	nil,
}

// New creates a new WebGPU backend.
// Returns an error if no adapter or device can be obtained.
func New() (backend *Backend, err error) {
	// The native library panics when it cannot be loaded.
	defer func() {
		if r := recover(); r != nil {
			backend = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, fmt.Errorf("webgpu: failed to create instance")
	}

	var adapter *wgpu.Adapter
	var adapterErr error
	for _, opts := range adapterPreferences {
		adapter, adapterErr = instance.RequestAdapter(opts)
		if adapterErr == nil && adapter != nil {
			break
		}
		slog.Debug("webgpu: adapter request failed", "options", describeOptions(opts), "error", adapterErr)
	}
	if adapter == nil {
		instance.Release()
		if adapterErr == nil {
			adapterErr = fmt.Errorf("no adapter returned")
		}
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	info := adapter.GetInfo()
	slog.Info("webgpu: using adapter", "name", info.Name, "vendor", info.VendorName)

	device, err := adapter.RequestDevice(nil)
	if err != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", err)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Backend{
		instance:  instance,
		adapter:   adapter,
		device:    device,
		queue:     queue,
		info:      info,
		pipelines: make(map[string]*wgpu.ComputePipeline),
	}, nil
}

func describeOptions(opts *wgpu.RequestAdapterOptions) string {
	if opts == nil {
		return "default"
	}
	switch opts.PowerPreference {
	case wgpu.PowerPreferenceHighPerformance:
		return "high-performance"
	case wgpu.PowerPreferenceLowPower:
		return "low-power"
	default:
		return "undefined"
	}
}

// Name returns the backend name.
func (b *Backend) Name() string {
	return "WebGPU"
}

// Device returns the compute device.
func (b *Backend) Device() tensor.Device {
	return tensor.WebGPU
}

// AdapterName returns the adapter description reported by the driver.
func (b *Backend) AdapterName() string {
	if b.info.VendorName == "" {
		return b.info.Name
	}
	return fmt.Sprintf("%s (%s)", b.info.Name, b.info.VendorName)
}

// Release releases all WebGPU resources.
// The backend must not be used afterwards.
func (b *Backend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, pipeline := range b.pipelines {
		pipeline.Release()
		delete(b.pipelines, key)
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

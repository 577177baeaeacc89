package webgpu

import (
	"fmt"

	"github.com/openfluke/webgpu/wgpu"

	"github.com/simpleconv/simpleconv/internal/tensor"
)

// pipeline returns the cached compute pipeline for code, compiling it on
// first use.
func (b *Backend) pipeline(label, code string) (*wgpu.ComputePipeline, error) {
	b.mu.RLock()
	if p, ok := b.pipelines[code]; ok {
		b.mu.RUnlock()
		return p, nil
	}
	b.mu.RUnlock()

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + "_Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: code},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: %s: compile shader: %w", label, err)
	}
	defer module.Release()

	p, err := b.device.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:   label + "_Pipe",
		Compute: wgpu.ProgrammableStageDescriptor{Module: module, EntryPoint: "main"},
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: %s: create pipeline: %w", label, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if cached, ok := b.pipelines[code]; ok {
		// Another goroutine won the race.
		p.Release()
		return cached, nil
	}
	b.pipelines[code] = p
	return p, nil
}

// upload copies a host tensor into a new storage buffer.
func (b *Backend) upload(label string, x *tensor.RawTensor) (*wgpu.Buffer, error) {
	buf, err := b.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    label,
		Contents: x.Data(),
		Usage:    wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: failed to create buffer %s: %w", label, err)
	}
	return buf, nil
}

// readBuffer reads size bytes of src back to host memory through a staging
// buffer, since storage buffers cannot be mapped directly.
func (b *Backend) readBuffer(src *wgpu.Buffer, size uint64) ([]byte, error) {
	staging, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "ReadStaging",
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: failed to create staging buffer: %w", err)
	}
	defer staging.Destroy()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("webgpu: failed to create command encoder: %w", err)
	}
	encoder.CopyBufferToBuffer(src, 0, staging, 0, size)
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("webgpu: failed to finish command: %w", err)
	}
	b.queue.Submit(cmd)

	done := make(chan struct{})
	var mapErr error
	err = staging.MapAsync(wgpu.MapModeRead, 0, size, func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			mapErr = fmt.Errorf("webgpu: map status %d", status)
		}
		close(done)
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: MapAsync failed: %w", err)
	}

Loop:
	for {
		b.device.Poll(true, nil)
		select {
		case <-done:
			break Loop
		default:
		}
	}
	if mapErr != nil {
		return nil, mapErr
	}

	mapped := staging.GetMappedRange(0, uint(size))
	if mapped == nil {
		staging.Unmap()
		return nil, fmt.Errorf("webgpu: mapped range nil")
	}
	out := make([]byte, size)
	copy(out, mapped)
	staging.Unmap()
	return out, nil
}

// kernel is one compute dispatch: a shader whose single read_write binding
// comes after its read-only inputs, plus the output it fills.
type kernel struct {
	label  string
	code   string
	inputs []*tensor.RawTensor
	shape  tensor.Shape
	groups dispatch
}

// run uploads the kernel inputs, dispatches the shader and returns the output
// as a host-resident float32 tensor tagged WebGPU.
func (b *Backend) run(k kernel) (*tensor.RawTensor, error) {
	for _, in := range k.inputs {
		if in.DType() != tensor.Float32 {
			return nil, fmt.Errorf("webgpu: %s: only float32 is supported, got %s", k.label, in.DType())
		}
	}

	result, err := tensor.NewRaw(k.shape, tensor.Float32, tensor.WebGPU)
	if err != nil {
		return nil, fmt.Errorf("webgpu: %s: %w", k.label, err)
	}
	//nolint:gosec // G115: ByteSize is non-negative.
	size := uint64(result.ByteSize())

	pipeline, err := b.pipeline(k.label, k.code)
	if err != nil {
		return nil, err
	}

	entries := make([]wgpu.BindGroupEntry, 0, len(k.inputs)+1)
	for i, in := range k.inputs {
		buf, err := b.upload(fmt.Sprintf("%s_In%d", k.label, i), in)
		if err != nil {
			return nil, err
		}
		defer buf.Destroy()
		//nolint:gosec // G115: binding index is tiny.
		entries = append(entries, wgpu.BindGroupEntry{Binding: uint32(i), Buffer: buf, Size: buf.GetSize()})
	}

	out, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: k.label + "_Out",
		Size:  size,
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: failed to create buffer %s_Out: %w", k.label, err)
	}
	defer out.Destroy()
	//nolint:gosec // G115: binding index is tiny.
	entries = append(entries, wgpu.BindGroupEntry{Binding: uint32(len(k.inputs)), Buffer: out, Size: size})

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   k.label + "_Bind",
		Layout:  pipeline.GetBindGroupLayout(0),
		Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("webgpu: %s: create bind group: %w", k.label, err)
	}
	defer bindGroup.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("webgpu: failed to create command encoder: %w", err)
	}
	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.DispatchWorkgroups(k.groups.x, k.groups.y, 1)
	pass.End()
	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, fmt.Errorf("webgpu: failed to finish command: %w", err)
	}
	b.queue.Submit(cmd)

	data, err := b.readBuffer(out, size)
	if err != nil {
		return nil, err
	}
	copy(result.Data(), data)
	return result, nil
}

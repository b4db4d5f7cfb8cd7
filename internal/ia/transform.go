// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ia

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swrast/resource"
	"github.com/gogpu/swrast/shader"
)

// Transformer runs the vertex shader over the bound vertex buffers.
type Transformer struct {
	layout  *InputLayout
	buffers [MaxSlots]*resource.Resource
	shader  shader.VertexShader
}

// SetInputLayout selects the layout used to address vertex buffers.
func (t *Transformer) SetInputLayout(l *InputLayout) { t.layout = l }

// InputLayout returns the current layout.
func (t *Transformer) InputLayout() *InputLayout { return t.layout }

// BindVertexBuffers binds buffers to slots first, first+1, ...
func (t *Transformer) BindVertexBuffers(first int, buffers []*resource.Resource) error {
	if first < 0 || first+len(buffers) > MaxSlots {
		return fmt.Errorf("%w: slots %d..%d", ErrSlotUnbound, first, first+len(buffers)-1)
	}
	copy(t.buffers[first:], buffers)
	return nil
}

// VertexBuffer returns the buffer bound to slot.
func (t *Transformer) VertexBuffer(slot int) *resource.Resource {
	if slot < 0 || slot >= MaxSlots {
		return nil
	}
	return t.buffers[slot]
}

// BindShader binds the vertex shader.
func (t *Transformer) BindShader(vs shader.VertexShader) { t.shader = vs }

// Shader returns the bound vertex shader.
func (t *Transformer) Shader() shader.VertexShader { return t.shader }

// slotData returns the stride-sized element of vertex in slot.
func (t *Transformer) slotData(slot, vertex int) (shader.Record, error) {
	stride := t.layout.Stride(slot)
	buf := t.buffers[slot]
	if buf.Released() {
		return nil, fmt.Errorf("%w: slot %d", ErrSlotUnbound, slot)
	}
	data := buf.Bytes()
	off := vertex * stride
	if vertex < 0 || off+stride > len(data) {
		return nil, fmt.Errorf("%w: vertex %d in slot %d (%d bytes)", ErrVertexOutOfRange, vertex, slot, len(data))
	}
	return shader.Record(data[off : off+stride : off+stride]), nil
}

// execute runs the shader for one vertex over every used slot. Without a
// layout the shader runs once with no input data.
func (t *Transformer) execute(out shader.Record, vertex, instance int) error {
	if t.layout == nil || t.layout.Slots() == 0 {
		t.shader.Execute(shader.VertexInput{VertexID: vertex, InstanceID: instance}, out)
		return nil
	}
	for slot := range t.layout.Slots() {
		if t.layout.Stride(slot) == 0 {
			continue
		}
		data, err := t.slotData(slot, vertex)
		if err != nil {
			return err
		}
		t.shader.Execute(shader.VertexInput{
			Data:       data,
			Slot:       slot,
			VertexID:   vertex,
			InstanceID: instance,
		}, out)
	}
	return nil
}

// Transform shades count vertices starting at firstVertex for one
// instance, appending one record per vertex to pool.
func (t *Transformer) Transform(pool *VertexPool, firstVertex, count, instance int) error {
	base := pool.Len()
	if !pool.Extend(count) {
		return fmt.Errorf("%w: %d vertices, %d free", ErrPoolExhausted, count, pool.Cap()-base)
	}
	for i := range count {
		out := pool.Vertex(base + i)
		clear(out)
		if err := t.execute(out, firstVertex+i, instance); err != nil {
			return err
		}
	}
	return nil
}

// TransformIndexed shades count vertices whose indices are read from ib
// starting at firstIndex, each offset by vertexOffset, for one instance.
func (t *Transformer) TransformIndexed(pool *VertexPool, ib *resource.Resource, format gputypes.IndexFormat, firstIndex, count, vertexOffset, instance int) error {
	size := int(format.Size())
	if size == 0 {
		return fmt.Errorf("%w: index format %s", ErrInvalidLayout, format)
	}
	if ib.Released() {
		return fmt.Errorf("%w: index buffer", ErrSlotUnbound)
	}
	indices := ib.Bytes()
	if firstIndex < 0 || (firstIndex+count)*size > len(indices) {
		return fmt.Errorf("%w: indices %d..%d of %d", ErrVertexOutOfRange, firstIndex, firstIndex+count-1, len(indices)/size)
	}

	base := pool.Len()
	if !pool.Extend(count) {
		return fmt.Errorf("%w: %d vertices, %d free", ErrPoolExhausted, count, pool.Cap()-base)
	}
	for i := range count {
		off := (firstIndex + i) * size
		var index int
		if size == 2 {
			index = int(binary.LittleEndian.Uint16(indices[off:]))
		} else {
			index = int(binary.LittleEndian.Uint32(indices[off:]))
		}
		out := pool.Vertex(base + i)
		clear(out)
		if err := t.execute(out, index+vertexOffset, instance); err != nil {
			return err
		}
	}
	return nil
}

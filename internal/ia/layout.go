// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package ia implements input assembly and the vertex stage: input
// layouts, the per-draw vertex pool and the transformer that runs the
// vertex shader over bound vertex buffers.
package ia

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/swrast/resource"
)

// Errors returned by the vertex stage.
var (
	// ErrInvalidLayout is returned for malformed input elements.
	ErrInvalidLayout = errors.New("ia: invalid input layout")

	// ErrSlotUnbound is returned when a layout slot has no vertex buffer.
	ErrSlotUnbound = errors.New("ia: vertex buffer slot not bound")

	// ErrVertexOutOfRange is returned when a draw reads past a buffer.
	ErrVertexOutOfRange = errors.New("ia: vertex out of range")

	// ErrPoolExhausted is returned when a draw does not fit the vertex pool.
	ErrPoolExhausted = errors.New("ia: vertex pool exhausted")
)

// MaxSlots is the number of vertex buffer slots.
const MaxSlots = 16

// InputElement describes one vertex attribute.
type InputElement struct {
	Format resource.Format
	Slot   int
	Offset int
}

// InputLayout maps vertex buffer slots to strides. It is immutable.
type InputLayout struct {
	elements []InputElement
	strides  []int
}

// NewInputLayout builds a layout. The stride of a slot is the end of its
// furthest element, so elements may be declared in any order.
func NewInputLayout(elements []InputElement) (*InputLayout, error) {
	l := &InputLayout{elements: append([]InputElement(nil), elements...)}
	for i, e := range elements {
		if e.Slot < 0 || e.Slot >= MaxSlots {
			return nil, fmt.Errorf("%w: element %d slot %d", ErrInvalidLayout, i, e.Slot)
		}
		if e.Offset < 0 {
			return nil, fmt.Errorf("%w: element %d offset %d", ErrInvalidLayout, i, e.Offset)
		}
		if !e.Format.IsValid() {
			return nil, fmt.Errorf("%w: element %d format %s", ErrInvalidLayout, i, e.Format)
		}
		for len(l.strides) <= e.Slot {
			l.strides = append(l.strides, 0)
		}
		l.strides[e.Slot] = max(l.strides[e.Slot], e.Offset+e.Format.Size())
	}
	return l, nil
}

// NewInputLayoutFromWebGPU builds a layout from WebGPU vertex attributes,
// one slice of attributes per slot.
func NewInputLayoutFromWebGPU(slots [][]gputypes.VertexAttribute) (*InputLayout, error) {
	var elements []InputElement
	for slot, attrs := range slots {
		for _, a := range attrs {
			f, ok := resource.FormatFromVertex(a.Format)
			if !ok {
				return nil, fmt.Errorf("%w: vertex format %s", ErrInvalidLayout, a.Format)
			}
			elements = append(elements, InputElement{Format: f, Slot: slot, Offset: int(a.Offset)})
		}
	}
	return NewInputLayout(elements)
}

// Slots returns the number of slots up to the highest one used.
func (l *InputLayout) Slots() int { return len(l.strides) }

// Stride returns the byte stride of slot, or 0 when it has no elements.
func (l *InputLayout) Stride(slot int) int {
	if slot < 0 || slot >= len(l.strides) {
		return 0
	}
	return l.strides[slot]
}

// Elements returns a copy of the declared elements.
func (l *InputLayout) Elements() []InputElement {
	return append([]InputElement(nil), l.elements...)
}

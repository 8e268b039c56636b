// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws tracked planes on a GPU device owned by the host.
//
// # Key Principle
//
// arplane RECEIVES a GPU device from the host application, it does NOT create
// its own. The host passes a [DeviceHandle] that also exposes its wgpu HAL
// device and queue through HalDevice() and HalQueue().
//
// # Usage
//
//	r, err := render.NewPlaneRenderer(handle)
//	if err != nil {
//	    return err
//	}
//	defer r.Close()
//
//	// every frame
//	frames := gen.Update(session.Status(), session.NewPlanes())
//	if err := r.Submit(frames); err != nil {
//	    return err
//	}
//	r.Record(renderPass, projection.Mul(view))
package render

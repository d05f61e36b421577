// Package logicsim is a digital logic circuit simulator with an
// immediate-mode graphical front end.
//
// # Overview
//
// Components (inputs, outputs, gates, clocks, flip-flops) are placed on a
// grid and connected with wires. The simulation engine propagates signal
// changes through the resulting net graph, and the UI layer turns the scene
// into a draw list of textured, colored triangles that any host can submit
// with the fixed rendering pipeline.
//
// # Architecture
//
// The module is organized into:
//   - sim: circuit graph and deterministic incremental evaluation
//   - pipeline: the rendering contract (vertex layout, Locals uniform,
//     WGSL shader, reference vertex/fragment stages)
//   - draw, atlas: draw list builder and the font/icon atlas
//   - raster: CPU reference implementation of the pipeline
//   - gpu: GPU renderer on gogpu/wgpu HAL devices
//   - project: settings and project persistence
//   - platform: the host seam (input events, frame submission)
//   - app: the shared application tying everything together
//
// # Logging
//
// logicsim is silent by default. Call [SetLogger] to route diagnostics to a
// [log/slog] handler.
package logicsim

// Package server implements an MCP (Model Context Protocol) server exposing the
// QR locator pipeline as tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Pipeline Stages:
//   - image_greyscale: Luminance image
//   - image_sobel: Vertical, horizontal or L1 magnitude edge response
//   - image_locate_qr: Full pipeline with overlay rectangle
//
// Region Operations:
//   - image_crop_region: Extract a rectangle from the source image
//
// # Parameters
//
// image_locate_qr falls back to the server's pipeline defaults (8 smoothing
// passes, threshold 70, overlay at 10,30 sized 70x50) for any argument that
// is omitted. An explicit smoothing_passes of 0 disables smoothing.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
package server

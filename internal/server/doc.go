// Package server implements the MCP (Model Context Protocol) server for
// morphological erosion tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the morph engine
// through the MCP protocol, so MCP-compatible clients can erode images, inspect
// kernels and keep a session history of results.
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
// Source Image Information:
//   - image_load: Load image and get metadata
//
// Kernels:
//   - erosion_kernel: Build a rect, cross, ellipse or custom kernel and show its cells
//
// Erosion:
//   - erosion_binary: Threshold to 0/255 and erode
//   - erosion_grayscale: Neighborhood-minimum erosion of a gray image
//   - erosion_boundary: original - eroded
//   - erosion_batch: Every shape at every size, saved under the results directory
//
// Result History:
//   - erosion_history: List the session's results
//   - erosion_history_get: Fetch one result as PNG
//
// Every erosion tool accepts an optional region of interest, an iteration
// count bounded by the configured maximum, and reports before/after sample
// statistics.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images. Images are cached
// by path and reused across tool calls for the lifetime of the process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// # Usage
//
//	cfg, err := config.FromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger, _ := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
//	if err := server.New(cfg, logger).Run(); err != nil {
//	    log.Fatal(err)
//	}
package server

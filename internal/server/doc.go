// Package server exposes the digit-recognition pipeline over the Model
// Context Protocol (MCP).
//
// The server speaks JSON-RPC 2.0 over stdin/stdout, one request per line.
// Stdout is reserved for protocol traffic; all logging goes to stderr.
//
// # Supported Methods
//
//   - initialize: protocol handshake, reports server info and capabilities
//   - notifications/initialized: client acknowledgment, no response
//   - tools/list: enumerate the recognition tools
//   - tools/call: execute one tool
//   - ping: liveness check
//
// # Tools
//
//   - digits_recognize: run the full pipeline on an image file; returns the
//     ordered digit regions and the concatenated digit string
//   - digits_regions: segmentation only (no classifier); returns the
//     filtered candidate regions with their shape statistics
//   - digits_annotate: returns the image with recognized digits boxed and
//     labeled, as base64 PNG
//   - image_info: dimensions and format metadata for an image file
//
// Tools accept an optional "profile" argument ("interactive" or
// "single-shot") overriding the server's default processing profile for
// that call.
//
// # Error Codes
//
//   - -32601: unknown method
//   - -32602: malformed tool parameters
//   - -32000: tool execution failure (bad path, unreadable image,
//     classifier unavailable)
package server

// Package domain translates MCP tool calls and resource reads into catalog
// queries.
//
// Results mirror the HTTP API shapes so an assistant sees the same data a
// browser does.
package domain

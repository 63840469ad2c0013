// Package service wires MCP transports to the catalog-backed domain handlers.
package service

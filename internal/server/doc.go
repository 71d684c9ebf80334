// Package server provides the MCP server runtime: the shared server
// context holding per-account calendar clients and scheduling engines,
// the streamable HTTP transport, health check endpoints for Kubernetes
// probes, and a dedicated Prometheus metrics server.
package server

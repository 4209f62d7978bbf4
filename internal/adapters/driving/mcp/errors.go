// Package mcp provides an MCP (Model Context Protocol) server adapter
// for Tarot42. It lets AI assistants draw spreads, request readings and
// ask follow-up questions through the same driving ports the TUI uses.
package mcp

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("mcp: session service is required")

// ErrMissingSpreadService is returned when the spread service is not provided.
var ErrMissingSpreadService = errors.New("mcp: spread service is required")

// ErrMissingAcquisitionService is returned when the acquisition service is not provided.
var ErrMissingAcquisitionService = errors.New("mcp: acquisition service is required")

// ErrMissingConversationService is returned when the conversation service is not provided.
var ErrMissingConversationService = errors.New("mcp: conversation service is required")

package tui

import "errors"

// ErrMissingSessionService is returned when the session service is not provided.
var ErrMissingSessionService = errors.New("tui: session service is required")

// ErrMissingSpreadService is returned when the spread service is not provided.
var ErrMissingSpreadService = errors.New("tui: spread service is required")

// ErrMissingAcquisitionService is returned when the acquisition service is not provided.
var ErrMissingAcquisitionService = errors.New("tui: acquisition service is required")

// ErrMissingConversationService is returned when the conversation service is not provided.
var ErrMissingConversationService = errors.New("tui: conversation service is required")

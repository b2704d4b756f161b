package common

import (
	"context"
)

// Context keys for storing values in context
type contextKey string

const (
	ContextKeySessionID  contextKey = "session_id"
	ContextKeyDocumentID contextKey = "document_id"
)

// WithSessionID adds a lease-drafting session ID to the context
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, ContextKeySessionID, sessionID)
}

// SessionIDFromContext extracts the session ID from context
func SessionIDFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value(ContextKeySessionID).(string); ok {
		return sessionID
	}
	return ""
}

// WithDocumentID adds a document ID to the context
func WithDocumentID(ctx context.Context, documentID string) context.Context {
	return context.WithValue(ctx, ContextKeyDocumentID, documentID)
}

// DocumentIDFromContext extracts the document ID from context
func DocumentIDFromContext(ctx context.Context) string {
	if documentID, ok := ctx.Value(ContextKeyDocumentID).(string); ok {
		return documentID
	}
	return ""
}

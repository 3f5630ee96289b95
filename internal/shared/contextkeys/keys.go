package contextkeys

import "context"

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "sheltercms context key " + string(c)
}

// ProjectIDKey is the key for the tenant project ID in context.Context.
const ProjectIDKey = contextKey("projectID")

// FamilyKey is the key for the record family in context.Context.
const FamilyKey = contextKey("family")

// OwnerIDKey is the key for the owning-entity ID (e.g. a pet) in context.Context.
const OwnerIDKey = contextKey("ownerID")

// RequestIDKey is the key for the request ID in context.Context.
const RequestIDKey = contextKey("requestID")

// OperationKey is the key for the current operation name in context.Context.
const OperationKey = contextKey("operation")

// WithProjectID returns a context carrying the given project ID.
func WithProjectID(ctx context.Context, projectID string) context.Context {
	return context.WithValue(ctx, ProjectIDKey, projectID)
}

// ProjectIDFromContext extracts the project ID from the context, if present.
func ProjectIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(ProjectIDKey).(string)
	return v, ok && v != ""
}

// WithFamily returns a context carrying the given record family.
func WithFamily(ctx context.Context, family string) context.Context {
	return context.WithValue(ctx, FamilyKey, family)
}

// FamilyFromContext extracts the record family from the context, if present.
func FamilyFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(FamilyKey).(string)
	return v, ok && v != ""
}

// WithOwnerID returns a context carrying the given owner ID.
func WithOwnerID(ctx context.Context, ownerID string) context.Context {
	return context.WithValue(ctx, OwnerIDKey, ownerID)
}

// OwnerIDFromContext extracts the owner ID from the context, if present.
func OwnerIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(OwnerIDKey).(string)
	return v, ok && v != ""
}

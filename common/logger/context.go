package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within
// a context. Handlers set the tenant scope once and every downstream log
// statement carries it.
type LogFields struct {
	OrgID          *int64
	CommunityID    *int64
	PrincipalEmail *string
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.OrgID != nil {
		result.OrgID = next.OrgID
	}
	if next.CommunityID != nil {
		result.CommunityID = next.CommunityID
	}
	if next.PrincipalEmail != nil {
		result.PrincipalEmail = next.PrincipalEmail
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
func Ptr[T any](v T) *T {
	return &v
}

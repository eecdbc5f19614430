package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/ignite/touchpoint-analytics/internal/pkg/httputil"
)

// OrgHeader carries the caller's organization on campaign routes.
const OrgHeader = "X-Organization-ID"

// OrgContextKey is the key for storing the organization ID
type OrgContextKey struct{}

// RequireOrg rejects requests without a valid organization UUID and
// stores the parsed ID in the request context.
func RequireOrg(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(OrgHeader)
		if raw == "" {
			httputil.ErrorCode(w, http.StatusBadRequest, "missing_org", OrgHeader+" header is required")
			return
		}
		orgID, err := uuid.Parse(raw)
		if err != nil {
			httputil.ErrorCode(w, http.StatusBadRequest, "invalid_org", "invalid organization id")
			return
		}
		ctx := context.WithValue(r.Context(), OrgContextKey{}, orgID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOrgIDFromContext retrieves organization ID from context
func GetOrgIDFromContext(ctx context.Context) uuid.UUID {
	if id, ok := ctx.Value(OrgContextKey{}).(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func getOrgIDString(r *http.Request) string {
	id := GetOrgIDFromContext(r.Context())
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}

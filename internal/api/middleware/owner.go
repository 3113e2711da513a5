package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
)

type contextKey string

const ownerKey contextKey = "owner_id"

// Owner middleware resolves the acting owner from the X-Owner-ID header and
// rejects requests without one. Catalog data is always scoped per owner.
func Owner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("X-Owner-ID")
		if raw == "" {
			unauthorized(w, "missing X-Owner-ID header")
			return
		}
		ownerID, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || ownerID == 0 {
			unauthorized(w, "invalid X-Owner-ID header")
			return
		}

		ctx := context.WithValue(r.Context(), ownerKey, uint(ownerID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OwnerID returns the owner resolved by the Owner middleware
func OwnerID(r *http.Request) uint {
	id, _ := r.Context().Value(ownerKey).(uint)
	return id
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

package middleware

import (
	"context"
	"net/http"
)

// ActorHeader identifies the member performing the request. Authentication
// happens upstream; by the time a request reaches this service the header
// carries a verified member ID.
const ActorHeader = "X-Member-ID"

type actorKey struct{}

// Actor extracts the acting member ID into the request context. Requests
// without the header still pass through; handlers that need an actor reject
// them individually.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(ActorHeader); id != "" {
			r = r.WithContext(context.WithValue(r.Context(), actorKey{}, id))
		}

		next.ServeHTTP(w, r)
	})
}

// ActorID returns the acting member ID from the context.
func ActorID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(actorKey{}).(string)
	return id, ok && id != ""
}

package testutils

import (
	"context"
	"testing"

	keyscontext "github.com/Bostads-AB-Mimer/onecore-keys/utils/context"
)

const TestActor = "test-user"

// ActorContext returns the test context with the test actor injected, the
// way the auth middleware does for authenticated requests.
func ActorContext(tb testing.TB) context.Context {
	tb.Helper()

	return keyscontext.WithActor(tb.Context(), TestActor)
}

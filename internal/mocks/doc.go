// Package mocks provides shared test doubles for the service and API tests.
//
// Each mock exposes function fields that override a method when set. When a
// field is nil the mock falls back to a simple in-memory behaviour that
// honours the same contract as the real stores: lookups are owner-scoped,
// missing rows yield the store's not-found errors and tasks list in creation
// order.
//
//	jwt := &mocks.MockJWTService{
//	    ValidateTokenFn: func(ctx context.Context, token string) (*auth.Claims, error) {
//	        return &auth.Claims{UserID: userID}, nil
//	    },
//	}
package mocks

// Package mocks provides centralized test doubles for the store, auth and
// service interfaces.
//
// The store doubles are small in-memory implementations, so a test can run a
// real service (or the whole router) against them without a database. Every
// double also exposes function fields; setting one replaces the default
// behavior of the matching method:
//
//	users := mocks.NewMockUserStore()
//	users.GetByIDFn = func(ctx context.Context, id int64) (*domain.User, error) {
//	    return nil, errors.New("boom")
//	}
//
// The service doubles are built on testify/mock and are meant for handler
// tests that assert on the exact calls made.
package mocks

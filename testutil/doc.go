// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package testutil provides shared fixtures for handler, router and store tests.

SetupTestStore opens a migrated SQLite database in t.TempDir(), so tests
need no external services:

	s := testutil.SetupTestStore(t)
	user := testutil.CreateTestUser(t, s, "a@x.com", "Alice")
	book := testutil.CreateTestBook(t, s, "Foo")

MakeRequest, AssertStatus and AssertJSON wrap httptest for table-driven
handler tests.
*/
package testutil

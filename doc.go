// Package calendarx is the backend for a personal calendar and task
// planner. It covers account registration, bearer-token login, and
// per-user task CRUD over a sqlite-backed store.
//
// Authentication:
//   - Passwords are hashed with bcrypt and never stored or returned in
//     clear. Login failures are uniform so callers cannot tell an
//     unknown email from a wrong password.
//   - Sessions are stateless HS256 JWTs whose subject is the numeric
//     user id serialized as a string. The Protected middleware turns a
//     bearer token back into a *User, rejecting every failure mode with
//     the same 401 response.
//
// Tasks:
//   - Every task belongs to exactly one user and all queries are scoped
//     by owner. A task that exists but belongs to someone else is
//     indistinguishable from one that does not exist.
//   - Listing supports status and inclusive date-range filters and
//     orders by task date, then start time.
package calendarx

// Package domain contains the core domain entities and types used by the
// application: audit records, their carbon and performance sub-records, and the
// derived views (grades, comparisons) computed from them. These types are
// intentionally free of infrastructure concerns so they can be shared across
// packages.
package domain

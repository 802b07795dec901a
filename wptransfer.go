// Package wptransfer exports a WordPress blog into a static site.
// It pages through the WordPress REST API, downloads featured images,
// strips page-builder markup from post bodies, assigns each post a
// category by keyword matching, and renders one HTML page per post plus
// a manifest of per-post outcomes.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, ahocorasick/).
package wptransfer

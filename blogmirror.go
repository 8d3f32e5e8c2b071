// Package blogmirror mirrors a single public blog into a local relational
// store. It scrapes the category list, the paginated post list of every
// category and the body of each newly seen post, then serves the mirrored
// content through a small read-only web front end.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, gin/).
package blogmirror

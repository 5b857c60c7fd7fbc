// Package cluster implements the union-find store that turns pairwise
// same/different judgments between specs into entity clusters.
//
// Specs live in a dense arena indexed by integer id; parent links are arena
// indices. Every root lookup compresses the path it walked.
package cluster

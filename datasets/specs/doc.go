// Package specs reads a product spec dataset from disk.
//
// A dataset directory holds one subdirectory per web site with one JSON
// document per spec, <dir>/<site>/<n>.json. The spec is identified as
// "<site>//<n>". Labelled pairs come from a CSV file with a header line and
// rows of left spec, right spec and label, where "1" marks the same entity.
package specs

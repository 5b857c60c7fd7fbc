// Package parallel contains the job scheduler used as the training barrier
// and a bounded parallel ForEach.
package parallel

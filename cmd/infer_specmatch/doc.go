// Package main scores whether two product spec documents describe the same
// entity, using a model and vocabulary written by train_specmatch:
//
//	infer_specmatch --model out/model.csv --vocabulary out/vocabulary.tsv a.json b.json
package main

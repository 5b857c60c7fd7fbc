// Package main trains a pairwise product spec matcher.
//
// It scans a dataset directory of JSON specs grouped by web site, clusters
// specs from a labelled pairs CSV, splits the pairs into train, test and
// validation sets and fits a logistic regression on the absolute difference
// of the two documents' bag-of-words or TF-IDF vectors. Gradients of a
// mini-batch are computed concurrently, one job per example. The model and
// its vocabulary are written to the output directory:
//
//	train_specmatch --dir ./specs --csv ./labelled.csv --sw ./stopwords.txt
package main

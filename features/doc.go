// Package features turns spec documents into fixed length numeric vectors.
//
// Documents are tokenized (NFKC, case folded, split on anything that is not a
// letter or digit, stop words dropped), counted against a vocabulary built
// from the training documents, and weighted as raw counts (bag of words) or
// TF-IDF. A pair of documents becomes the element-wise absolute difference of
// their vectors.
package features

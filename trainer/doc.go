// Package trainer provides the parallel mini-batch gradient descent engine
// for the logistic regression spec matcher.
//
// Every batch goes through the same cycle: predict against the frozen model,
// dispatch one gradient job per example, wait on the scheduler barrier, then
// apply the aggregated update. The model is never written while jobs run.
package trainer

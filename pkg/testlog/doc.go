// Package testlog reads the line-oriented log written by a test run and rebuilds one Record per
// executed test.
//
// The log is made of four kinds of lines:
//   - "Running <suite>::<name>" opens a test.
//   - "Test took <n>ns" closes the open test with its duration.
//   - "OK" or "FAILED" sets the outcome of the open test.
//   - any other line is diagnostic text attached to the open test.
package testlog

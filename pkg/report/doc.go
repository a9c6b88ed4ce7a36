// Package report assembles parsed test records into a JUnit XML report.
//
// The main functionalities include:
//   - Collecting records in the order they completed.
//   - Writing the report atomically to disk.
//   - Rendering a console summary of the collected tests.
package report

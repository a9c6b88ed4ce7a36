// Package convert wires the test log parser and the report builder into a single run driven by
// an explicit Config.
package convert

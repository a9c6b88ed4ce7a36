package junit

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type Testsuite struct {
	XMLName   xml.Name   `json:"-"                   xml:"testsuite"`
	Name      string     `json:"name,omitempty"      xml:"name,attr,omitempty"`
	Tests     int        `json:"tests"               xml:"tests,attr"`
	Failures  int        `json:"failures"            xml:"failures,attr"`
	Time      string     `json:"time,omitempty"      xml:"time,attr"`
	TestCases []TestCase `json:"testcases,omitempty" xml:"testcase"`
}

type TestCase struct {
	XMLName   xml.Name `json:"-"                    xml:"testcase"`
	Name      string   `json:"name,omitempty"       xml:"name,attr"`
	ClassName string   `json:"class_name,omitempty" xml:"classname,attr"`
	Time      string   `json:"time,omitempty"       xml:"time,attr"`
	SystemErr *string  `json:"system_err,omitempty" xml:"system-err,omitempty"`
	Failure   *Failure `json:"failure,omitempty"    xml:"failure,omitempty"`
}

// Failure marks a failed test case. It is written as an empty element unless a message is set.
type Failure struct {
	Message string `json:"message,omitempty" xml:"message,attr,omitempty"`
	Body    string `json:"body,omitempty"    xml:",chardata"`
}

// Encode writes the XML declaration followed by the indented testsuite document.
func Encode(w io.Writer, suite Testsuite) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")

	if err := encoder.Encode(suite); err != nil {
		return fmt.Errorf("can't encode testsuite: %w", err)
	}

	_, err := io.WriteString(w, "\n")

	return err
}

// FormatSeconds renders a duration in seconds the way JUnit viewers expect it: the shortest
// decimal that reads back to the same value, never in exponent form, and always with a
// fractional part ("2.0", "1.5", "0.0000001").
func FormatSeconds(seconds float64) string {
	formatted := strconv.FormatFloat(seconds, 'f', -1, 64)
	if !strings.ContainsAny(formatted, ".NI") {
		formatted += ".0"
	}

	return formatted
}

// ParseRawLogs cast a raw XML JunitReport (as byte) into a Testsuite structure.
func ParseRawLogs(testsuiteData []byte) (Testsuite, error) {
	testSuite := Testsuite{}
	err := xml.Unmarshal(testsuiteData, &testSuite)
	if err != nil {
		return testSuite, err
	}

	return testSuite, nil
}

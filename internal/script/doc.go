// File: doc.go
// Title: Operation Script Package Documentation
// Description: Package documentation for the YAML operation scripts.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-05
// Modified: 2025-08-05
//
// Change History:
// - 2025-08-05 v0.1.0: Initial documentation

/*
Package script drives a safestr.String through a sequence of operations read
from YAML and checks the result of every step.

# Format

A file holds one or more YAML documents, each one script:

	name: insertion
	initial: "Hello World!"
	steps:
	  - op: insert_char
	    index: 5
	    char: ","
	  - op: expect
	    text: "Hello, World!"
	  - op: insert_char
	    index: 99
	    char: "x"
	    want: InvalidIndex

A script starts from its initial content, or from an empty String with the
given capacity. The limit field caps the buffer size for that script.

Every step names an operation and the fields it reads (index, count, length,
start, size, text, char, old, new, args). Expectations are optional:

	want       result code name (default Success)
	want_pos   position returned by a search
	want_cmp   sign of a comparison
	want_bool  boolean result (contains, equality, expect: emptiness)
	want_text  bytes read back (at, copy_to_buffer)

The expect operation asserts text, length and capacity of the current String.

# Running

	runner, err := script.NewRunner(nil, script.Options{Logger: logger})
	reports, err := runner.RunFile(ctx, "suite.yaml")
	for _, report := range reports {
	    fmt.Print(report.Render(false))
	}

Run returns an error only when a script cannot be executed (unknown
operation, malformed step, cancelled context). Failed expectations are
collected in the Report.

Custom operations are added with Registry.Register before creating the runner.
*/
package script

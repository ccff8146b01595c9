// File: ops.go
// Title: Built-in Script Operations
// Description: One handler per String operation, translating step fields
//              into library calls and their results into Outcomes, plus the
//              expect operation that asserts on the current String.
// Author: msto63
// Version: v0.1.0
// Created: 2025-08-05
// Modified: 2025-08-06
//
// Change History:
// - 2025-08-05 v0.1.0: Initial implementation
// - 2025-08-06 v0.1.1: Added io and lifecycle operations

package script

import (
	"fmt"

	"github.com/msto63/safestr/pkg/safestr"
)

func intp(v int) *int          { return &v }
func boolp(v bool) *bool       { return &v }
func strp(v string) *string    { return &v }
func result(err error) Outcome { return Outcome{Code: safestr.CodeOf(err), Err: err} }

// simple builds a definition for an operation that only reports a code
func simple(name, description string, fields []string, run func(st *State, step *Step) error) *OpDefinition {
	return &OpDefinition{
		Name:        name,
		Description: description,
		Fields:      fields,
		Handler: func(st *State, step *Step) (Outcome, error) {
			return result(run(st, step)), nil
		},
	}
}

// withChar builds a definition for an operation taking the char field
func withChar(name, description string, fields []string, run func(st *State, step *Step, c byte) error) *OpDefinition {
	return &OpDefinition{
		Name:        name,
		Description: description,
		Fields:      fields,
		Handler: func(st *State, step *Step) (Outcome, error) {
			c, err := char("char", step.Char)
			if err != nil {
				return Outcome{}, err
			}
			return result(run(st, step, c)), nil
		},
	}
}

// position builds a definition for a search operation
func position(name, description string, fields []string, find func(st *State, step *Step) (int, error)) *OpDefinition {
	return &OpDefinition{
		Name:        name,
		Description: description,
		Fields:      fields,
		Handler: func(st *State, step *Step) (Outcome, error) {
			pos, err := find(st, step)
			if err != nil {
				return Outcome{}, err
			}
			return Outcome{Pos: intp(pos)}, nil
		},
	}
}

func builtinOps() []*OpDefinition {
	return []*OpDefinition{
		// Lifecycle
		{
			Name:        "new",
			Description: "replace the String with a new one from length bytes of text, or empty with size capacity",
			Fields:      []string{"text", "length", "size"},
			Handler: func(st *State, step *Step) (Outcome, error) {
				var s *safestr.String
				if step.Text != nil {
					buf, n := step.source()
					if n < 0 || n > len(buf) {
						return Outcome{Code: safestr.InvalidArgument}, nil
					}
					s = safestr.NewFromBuffer(buf, n, st.Options...)
				} else {
					s = safestr.NewWithCapacity(step.Size, st.Options...)
				}
				if s == nil {
					return Outcome{Code: safestr.OutOfMemory}, nil
				}
				st.Str.Release()
				st.Str = s
				return Outcome{}, nil
			},
		},
		simple("release", "release the String", nil, func(st *State, _ *Step) error {
			st.Str.Release()
			return nil
		}),

		// Capacity
		simple("reserve", "ensure capacity of at least size", []string{"size"}, func(st *State, step *Step) error {
			return st.Str.Reserve(step.Size)
		}),
		simple("resize", "set the length to size", []string{"size"}, func(st *State, step *Step) error {
			return st.Str.Resize(step.Size)
		}),
		simple("clear", "drop the content", nil, func(st *State, _ *Step) error {
			return st.Str.Clear()
		}),
		simple("shrink_to_fit", "shrink the buffer to length+1", nil, func(st *State, _ *Step) error {
			return st.Str.ShrinkToFit()
		}),

		// Assignment
		simple("assign_buffer", "replace content with length bytes of text", []string{"text", "length"}, func(st *State, step *Step) error {
			buf, n := step.source()
			return st.Str.AssignBuffer(buf, n)
		}),
		simple("assign_cstr", "replace content with text up to its first zero", []string{"text"}, func(st *State, step *Step) error {
			return st.Str.AssignCStr(step.cstr())
		}),
		simple("assign_string", "replace content with a String holding text", []string{"text"}, func(st *State, step *Step) error {
			return st.Str.AssignString(step.other())
		}),

		// Concatenation
		simple("append_buffer", "append length bytes of text", []string{"text", "length"}, func(st *State, step *Step) error {
			buf, n := step.source()
			return st.Str.AppendBuffer(buf, n)
		}),
		simple("append_cstr", "append text up to its first zero", []string{"text"}, func(st *State, step *Step) error {
			return st.Str.AppendCStr(step.cstr())
		}),
		simple("append_string", "append a String holding text", []string{"text"}, func(st *State, step *Step) error {
			return st.Str.AppendString(step.other())
		}),
		withChar("append_char", "append one byte", []string{"char"}, func(st *State, _ *Step, c byte) error {
			return st.Str.AppendChar(c)
		}),
		simple("write", "append text through io.Writer", []string{"text"}, func(st *State, step *Step) error {
			buf, _ := step.source()
			_, err := st.Str.Write(buf)
			return err
		}),

		// Insertion
		simple("insert_buffer", "insert length bytes of text at index", []string{"index", "text", "length"}, func(st *State, step *Step) error {
			buf, n := step.source()
			return st.Str.InsertBuffer(step.Index, buf, n)
		}),
		simple("insert_cstr", "insert text up to its first zero at index", []string{"index", "text"}, func(st *State, step *Step) error {
			return st.Str.InsertCStr(step.Index, step.cstr())
		}),
		simple("insert_string", "insert a String holding text at index", []string{"index", "text"}, func(st *State, step *Step) error {
			return st.Str.InsertString(step.Index, step.other())
		}),
		withChar("insert_char", "insert one byte at index", []string{"index", "char"}, func(st *State, step *Step, c byte) error {
			return st.Str.InsertChar(step.Index, c)
		}),

		// Removal and indexed access
		simple("erase", "remove count bytes at index", []string{"index", "count"}, func(st *State, step *Step) error {
			return st.Str.Erase(step.Index, step.Count)
		}),
		simple("pop_back", "remove the last byte", nil, func(st *State, _ *Step) error {
			return st.Str.PopBack()
		}),
		withChar("set_at", "overwrite the byte at index", []string{"index", "char"}, func(st *State, step *Step, c byte) error {
			return st.Str.SetAt(step.Index, c)
		}),
		{
			Name:        "at",
			Description: "read the byte at index into want_text",
			Fields:      []string{"index"},
			Handler: func(st *State, step *Step) (Outcome, error) {
				return Outcome{Text: strp(string([]byte{st.Str.At(step.Index)}))}, nil
			},
		},

		// Search
		position("find_char", "first position of char from start", []string{"char", "start"}, func(st *State, step *Step) (int, error) {
			c, err := char("char", step.Char)
			if err != nil {
				return 0, err
			}
			return st.Str.FindChar(c, step.start(0)), nil
		}),
		position("find_buffer", "first position of length bytes of text from start", []string{"text", "length", "start"}, func(st *State, step *Step) (int, error) {
			buf, n := step.source()
			if n < 0 || n > len(buf) {
				return 0, fmt.Errorf("length %d out of range for text of %d bytes", n, len(buf))
			}
			if buf == nil {
				return st.Str.FindBuffer(nil, step.start(0)), nil
			}
			return st.Str.FindBuffer(buf[:n], step.start(0)), nil
		}),
		position("find_cstr", "first position of text up to its first zero", []string{"text", "start"}, func(st *State, step *Step) (int, error) {
			return st.Str.FindCStr(step.cstr(), step.start(0)), nil
		}),
		position("find_string", "first position of a String holding text", []string{"text", "start"}, func(st *State, step *Step) (int, error) {
			return st.Str.FindString(step.other(), step.start(0)), nil
		}),
		position("rfind_char", "last position of char at or before start (default: end)", []string{"char", "start"}, func(st *State, step *Step) (int, error) {
			c, err := char("char", step.Char)
			if err != nil {
				return 0, err
			}
			return st.Str.RFindChar(c, step.start(safestr.NPos)), nil
		}),
		position("rfind_char_from_end", "last position of char", []string{"char"}, func(st *State, step *Step) (int, error) {
			c, err := char("char", step.Char)
			if err != nil {
				return 0, err
			}
			return st.Str.RFindCharFromEnd(c), nil
		}),
		{
			Name:        "contains",
			Description: "whether text occurs in the String, into want_bool",
			Fields:      []string{"text"},
			Handler: func(st *State, step *Step) (Outcome, error) {
				buf, _ := step.source()
				return Outcome{Bool: boolp(st.Str.Contains(buf))}, nil
			},
		},

		// Comparison
		{
			Name:        "compare",
			Description: "order against a String holding text, into want_cmp",
			Fields:      []string{"text"},
			Handler: func(st *State, step *Step) (Outcome, error) {
				cmp := safestr.Compare(st.Str, step.other())
				return Outcome{Cmp: intp(cmp), Bool: boolp(cmp == 0)}, nil
			},
		},
		{
			Name:        "compare_cstr",
			Description: "order against text up to its first zero, into want_cmp",
			Fields:      []string{"text"},
			Handler: func(st *State, step *Step) (Outcome, error) {
				cmp := st.Str.CompareCStr(step.cstr())
				return Outcome{Cmp: intp(cmp), Bool: boolp(cmp == 0)}, nil
			},
		},

		// Transforms
		simple("to_upper", "ASCII uppercase in place", nil, func(st *State, _ *Step) error {
			return st.Str.ToUpper()
		}),
		simple("to_lower", "ASCII lowercase in place", nil, func(st *State, _ *Step) error {
			return st.Str.ToLower()
		}),
		simple("trim", "strip leading and trailing whitespace", nil, func(st *State, _ *Step) error {
			return st.Str.Trim()
		}),
		{
			Name:        "replace_char",
			Description: "substitute every old byte with new",
			Fields:      []string{"old", "new"},
			Handler: func(st *State, step *Step) (Outcome, error) {
				oldChar, err := char("old", step.Old)
				if err != nil {
					return Outcome{}, err
				}
				newChar, err := char("new", step.New)
				if err != nil {
					return Outcome{}, err
				}
				return result(st.Str.ReplaceChar(oldChar, newChar)), nil
			},
		},

		// Copy-out and formatting
		{
			Name:        "copy_to_buffer",
			Description: "copy into a size-byte buffer (negative size: no buffer), into want_text and want_pos",
			Fields:      []string{"size"},
			Handler: func(st *State, step *Step) (Outcome, error) {
				var dest []byte
				if step.Size >= 0 {
					dest = make([]byte, step.Size)
				}
				n, err := st.Str.CopyToBuffer(dest)
				out := result(err)
				out.Pos = intp(n)
				out.Text = strp(string(dest[:n]))
				return out, nil
			},
		},
		{
			Name:        "format",
			Description: "replace content with the text template rendered with args",
			Fields:      []string{"text", "args"},
			Handler: func(st *State, step *Step) (Outcome, error) {
				if step.Text == nil {
					return Outcome{}, fmt.Errorf("format needs a text template")
				}
				return result(st.Str.Format(*step.Text, step.Args...)), nil
			},
		},
		{
			Name:        "append_format",
			Description: "append the text template rendered with args",
			Fields:      []string{"text", "args"},
			Handler: func(st *State, step *Step) (Outcome, error) {
				if step.Text == nil {
					return Outcome{}, fmt.Errorf("append_format needs a text template")
				}
				return result(st.Str.AppendFormat(*step.Text, step.Args...)), nil
			},
		},

		// Assertions
		{
			Name:        "expect",
			Description: "assert text, length and capacity of the String",
			Fields:      []string{"text", "length", "capacity"},
			Handler:     expect,
		},
	}
}

// expect compares the current String with the step's text, length and capacity
func expect(st *State, step *Step) (Outcome, error) {
	var out Outcome
	s := st.Str

	if step.Text != nil && s.String() != *step.Text {
		out.Mismatches = append(out.Mismatches, fmt.Sprintf("text = %q; want %q", s.String(), *step.Text))
	}
	if step.Length != nil && s.Len() != *step.Length {
		out.Mismatches = append(out.Mismatches, fmt.Sprintf("length = %d; want %d", s.Len(), *step.Length))
	}
	if step.Capacity != nil && s.Cap() != *step.Capacity {
		out.Mismatches = append(out.Mismatches, fmt.Sprintf("capacity = %d; want %d", s.Cap(), *step.Capacity))
	}
	if step.WantBool != nil {
		out.Bool = boolp(s.IsEmpty())
	}
	return out, nil
}

// Package demo walks through the String operations section by section and
// prints what every step does to the content.
package demo

import (
	"fmt"
	"io"
	"strings"

	"github.com/msto63/safestr/internal/tui"
	"github.com/msto63/safestr/pkg/safestr"
)

// Section is one part of the walkthrough
type Section struct {
	Name  string
	Title string
	run   func(p *printer) error
}

// Sections returns every section in presentation order
func Sections() []Section {
	return []Section{
		{Name: "basic", Title: "Basic String Operations", run: basic},
		{Name: "manipulation", Title: "String Manipulation", run: manipulation},
		{Name: "search", Title: "Search and Comparison", run: searchCompare},
		{Name: "format", Title: "Formatting", run: formatting},
		{Name: "memory", Title: "Memory Management", run: memory},
		{Name: "copy", Title: "Safe Copying", run: safeCopy},
	}
}

// Names returns the section names in presentation order
func Names() []string {
	sections := Sections()
	names := make([]string, len(sections))
	for i, s := range sections {
		names[i] = s.Name
	}
	return names
}

// Run prints the named sections, or all of them when names is empty.
// opts apply to every String the walkthrough creates.
func Run(w io.Writer, names []string, opts ...safestr.Option) error {
	selected, err := selectSections(names)
	if err != nil {
		return err
	}

	p := &printer{w: w, opts: opts}
	titles := make([]string, len(selected))
	for i, section := range selected {
		titles[i] = section.Name
	}
	p.line(tui.RenderBox(tui.RenderTitle("Safe Strings - Walkthrough"), tui.SubtitleStyle.Render(strings.Join(titles, ", "))))

	for _, section := range selected {
		p.line(tui.RenderSection(section.Title))
		if err := section.run(p); err != nil {
			return fmt.Errorf("section %s: %w", section.Name, err)
		}
		p.line("")
	}

	if p.err != nil {
		return p.err
	}
	p.line(tui.RenderHelp("All operations were bounds-checked; every buffer has been released."))
	return p.err
}

func selectSections(names []string) ([]Section, error) {
	all := Sections()
	if len(names) == 0 {
		return all, nil
	}

	byName := make(map[string]Section, len(all))
	for _, s := range all {
		byName[s.Name] = s
	}

	selected := make([]Section, 0, len(names))
	for _, name := range names {
		s, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown section %q (available: %s)", name, strings.Join(Names(), ", "))
		}
		selected = append(selected, s)
	}
	return selected, nil
}

// printer writes styled lines and remembers the first write error
type printer struct {
	w    io.Writer
	opts []safestr.Option
	err  error
}

func (p *printer) line(text string) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintln(p.w, text)
}

func (p *printer) field(label string, value interface{}) {
	p.line("  " + tui.RenderField(label, value))
}

// show prints the content with its length and capacity
func (p *printer) show(label string, s *safestr.String) {
	p.field(label, fmt.Sprintf("%s (length: %d, capacity: %d)", tui.RenderContent(s.String()), s.Len(), s.Cap()))
}

// step prints the content after an operation, or its failure
func (p *printer) step(label string, s *safestr.String, err error) {
	if err != nil {
		p.line("  " + tui.RenderError(fmt.Sprintf("%s: %s", label, safestr.ErrorMessage(err))))
		return
	}
	p.field(label, tui.RenderContent(s.String()))
}

func (p *printer) newString(text string) (*safestr.String, error) {
	s := safestr.NewFromString(text, p.opts...)
	if s == nil {
		return nil, safestr.ErrOutOfMemory
	}
	return s, nil
}

func basic(p *printer) error {
	str1, err := p.newString("Hello, ")
	if err != nil {
		return err
	}
	defer str1.Release()
	str2, err := p.newString("Safe World!")
	if err != nil {
		return err
	}
	defer str2.Release()
	str3, err := p.newString("")
	if err != nil {
		return err
	}
	defer str3.Release()

	p.show("str1", str1)
	p.show("str2", str2)
	p.show("str3", str3)

	p.step("append", str1, str1.AppendString(str2))
	p.show("str1", str1)

	p.step("assign", str3, str3.AssignCStr(safestr.CStr("This is a new string!")))
	p.step("add '!'", str3, str3.AppendChar('!'))
	return nil
}

func manipulation(p *printer) error {
	s, err := p.newString("  Hello, SAFE Programming!  ")
	if err != nil {
		return err
	}
	defer s.Release()

	p.field("original", tui.RenderContent(s.String()))
	p.step("trimmed", s, s.Trim())
	p.step("lower", s, s.ToLower())
	p.step("upper", s, s.ToUpper())
	p.step("spaces", s, s.ReplaceChar(' ', '_'))
	p.step("inserted", s, s.InsertCStr(6, safestr.CStr("[VERY_")))
	p.step("erased", s, s.Erase(6, 6))
	return nil
}

func searchCompare(p *printer) error {
	text, err := p.newString("The quick brown fox jumps over the lazy dog")
	if err != nil {
		return err
	}
	defer text.Release()
	pattern, err := p.newString("fox")
	if err != nil {
		return err
	}
	defer pattern.Release()

	p.field("text", tui.RenderContent(text.String()))
	p.field("pattern", tui.RenderContent(pattern.String()))
	p.field("found at", position(text.FindString(pattern, 0)))
	p.field("first 'o'", position(text.FindChar('o', 0)))
	p.field("last 'o'", position(text.RFindChar('o', safestr.NPos)))

	apple, err := p.newString("apple")
	if err != nil {
		return err
	}
	defer apple.Release()
	banana, err := p.newString("banana")
	if err != nil {
		return err
	}
	defer banana.Release()

	cmp := safestr.Compare(apple, banana)
	relation := "equal"
	switch {
	case cmp < 0:
		relation = "first < second"
	case cmp > 0:
		relation = "first > second"
	}
	p.field("compare", fmt.Sprintf("%q vs %q: %d (%s)", apple, banana, cmp, relation))
	p.field("equal", safestr.Equals(apple, banana))
	return nil
}

func position(pos int) string {
	if pos == safestr.NPos {
		return "not found"
	}
	return fmt.Sprintf("%d", pos)
}

func formatting(p *printer) error {
	s, err := p.newString("")
	if err != nil {
		return err
	}
	defer s.Release()

	p.step("formatted", s, s.Format("Hello %s! You have %d new messages.", "Alice", 5))
	p.step("appended", s, s.AppendFormat(" Current time: %02d:%02d", 14, 30))
	p.step("pi", s, s.Format("Pi is approximately %.2f", 3.14159))
	return nil
}

func memory(p *printer) error {
	s := safestr.NewWithCapacity(50, p.opts...)
	if s == nil {
		return safestr.ErrOutOfMemory
	}
	defer s.Release()

	p.field("capacity", s.Cap())
	if err := s.Reserve(100); err != nil {
		p.line("  " + tui.RenderError("reserve: "+safestr.ErrorMessage(err)))
	} else {
		p.field("reserved", s.Cap())
	}

	if err := s.AssignCStr(safestr.CStr("Short text")); err != nil {
		return err
	}
	p.show("content", s)

	if err := s.ShrinkToFit(); err == nil {
		p.field("shrunk", s.Cap())
	}
	if err := s.Resize(20); err == nil {
		p.show("resized", s)
	}
	if err := s.Clear(); err == nil {
		p.show("cleared", s)
	}
	return nil
}

func safeCopy(p *printer) error {
	s, err := p.newString("This is a long string that might not fit in a small buffer")
	if err != nil {
		return err
	}
	defer s.Release()

	p.show("source", s)
	for _, size := range []int{20, 100} {
		buf := make([]byte, size)
		n, err := s.CopyToBuffer(buf)
		p.field(fmt.Sprintf("buffer %d", size), fmt.Sprintf("%s -> %s",
			tui.RenderContent(string(buf[:n])), safestr.ErrorMessage(err)))
	}
	return nil
}

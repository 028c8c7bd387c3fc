package plan

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"time"

	"github.com/codesync/codesync/pkg/errors"
)

// A Writer produces a plan document entry by entry. The output is written
// exactly as composed here because plans are hand-edited and re-read
// bit-for-bit; nothing is reformatted on the way out.
//
// Write errors are sticky: the first one suppresses all later output and is
// returned from Close.
type Writer struct {
	out *bufio.Writer
	f   interface{ Close() error }
	err error
}

// Create opens path for writing, truncating any previous plan, and emits the
// document prologue: the XML declaration, the root element, the two directory
// elements, and the current time as ModifiedTime.
func Create(path, sourceDir, destDir string) (*Writer, error) {
	f, err := fs.Create(path)
	if err != nil {
		return nil, errors.WithContext(err, "create plan")
	}

	w := &Writer{out: bufio.NewWriter(f), f: f}
	w.write(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	w.write("<CodeSync>\n")
	w.element(1, "SourceDirectory", sourceDir)
	w.element(1, "DestDirectory", destDir)
	w.element(1, "ModifiedTime", Clock.Now().UTC().Format(time.RFC3339))
	return w, nil
}

// SectionHeader writes a comment block set off by blank lines above and
// below. The blank lines are part of the document's visual structure, so
// they're written as raw text rather than through an XML layer.
func (w *Writer) SectionHeader(text string) {
	w.write("\n  <!-- " + text + " -->\n\n")
}

// Copy writes a Copy entry. Empty sides are written as empty elements so
// that a partial entry survives a round-trip as a partial entry.
func (w *Writer) Copy(entry Entry) {
	w.write("  <Copy>\n")
	w.element(2, "Source", entry.Source)
	w.element(2, "Destination", entry.Destination)
	w.write("  </Copy>\n")
}

// IgnoreSource writes an Ignore entry for a source path.
func (w *Writer) IgnoreSource(path string) {
	w.write("  <Ignore>\n")
	w.element(2, "Source", path)
	w.write("  </Ignore>\n")
}

// IgnoreDest writes an Ignore entry for a destination path.
func (w *Writer) IgnoreDest(path string) {
	w.write("  <Ignore>\n")
	w.element(2, "Destination", path)
	w.write("  </Ignore>\n")
}

// Ambiguous writes an Ignore entry for a source whose match couldn't be
// decided, with every candidate listed as a commented-out Destination. The
// candidate lines are hints for the person editing the plan; the reader
// never parses them.
func (w *Writer) Ambiguous(source string, candidates []string) {
	w.write("  <Ignore>\n")
	w.element(2, "Source", source)
	for _, candidate := range candidates {
		w.write("    <!--<Destination>" + escape(candidate) + "</Destination>-->\n")
	}
	w.write("  </Ignore>\n")
}

// CommentedIgnoreDest writes a fully commented-out Ignore entry for a
// destination orphan. Uncommenting the line turns it into a live ignore.
func (w *Writer) CommentedIgnoreDest(path string) {
	w.write("  <!--<Ignore><Destination>" + escape(path) + "</Destination></Ignore>-->\n")
}

// Close writes the closing root tag, flushes, and closes the file. It
// returns the first error encountered anywhere during the write.
func (w *Writer) Close() error {
	w.write("</CodeSync>\n")
	if w.err == nil {
		w.err = w.out.Flush()
	}
	if err := w.f.Close(); w.err == nil {
		w.err = err
	}
	if w.err != nil {
		return errors.WithContext(w.err, "write plan")
	}
	return nil
}

func (w *Writer) element(depth int, name, value string) {
	indent := "  "
	for i := 1; i < depth; i++ {
		indent += "  "
	}
	w.write(indent + "<" + name + ">" + escape(value) + "</" + name + ">\n")
}

func (w *Writer) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = w.out.WriteString(s)
}

func escape(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return s
	}
	return buf.String()
}

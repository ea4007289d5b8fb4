package token

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"sync"
)

// Pos is a compact encoding of a source position: the offset, plus one, of
// a byte in the backing buffer of some File registered in a FileSet. The
// zero value NoPos means "no position", as when printing a manufactured
// tree with no corresponding source text.
type Pos int32

// NoPos is the zero Pos value. File.Pos never returns NoPos for a valid
// offset, so a Pos compares equal to NoPos only when it was never set.
const NoPos Pos = 0

// Spanner is implemented by anything with a start and end position, such as
// an ast.Node.
type Spanner interface {
	Span() (start, end Pos)
}

// PosInside reports whether test's span is entirely contained within ref's
// span (inclusive on both ends).
func PosInside(ref, test Spanner) bool {
	rs, re := ref.Span()
	ts, te := test.Span()
	return rs <= ts && te <= re
}

// PosAdjacent reports whether test is "close enough" to ref to be
// considered attached to it: either test starts on or before the line ref
// ends on (test follows ref with no blank line in between), or test ends on
// the line immediately preceding the one ref starts on or the same line
// (test precedes ref by at most one line, as a leading comment would).
func PosAdjacent(ref, test Spanner, f *File) bool {
	rs, re := ref.Span()
	ts, te := test.Span()
	if ts >= rs {
		return f.Line(ts) <= f.Line(re)
	}
	return f.Line(rs)-f.Line(te) <= 1
}

// Position is the unpacked, human-readable form of a Pos: a filename, a
// 1-based line and a 1-based column.
type Position struct {
	Filename string
	Line     int
	Column   int
}

func (p Position) String() string {
	if p.Filename == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// PosMode selects how FormatPos renders a Pos.
type PosMode int

const (
	// PosNone renders nothing, regardless of the position.
	PosNone PosMode = iota
	// PosRaw renders the raw integer Pos value.
	PosRaw
	// PosOffsets renders the 0-based byte offset into the owning File.
	PosOffsets
	// PosLong renders "file:line:col", go/token style.
	PosLong
)

func (m PosMode) String() string {
	switch m {
	case PosNone:
		return "none"
	case PosRaw:
		return "raw"
	case PosOffsets:
		return "offsets"
	case PosLong:
		return "long"
	default:
		return fmt.Sprintf("PosMode(%d)", int(m))
	}
}

// FormatPos renders pos in file according to mode. withFilename controls
// whether PosLong includes the filename component; the other modes never
// mention the filename.
func FormatPos(mode PosMode, file *File, pos Pos, withFilename bool) string {
	switch mode {
	case PosRaw:
		return strconv.Itoa(int(pos))
	case PosOffsets:
		if pos == NoPos {
			return "-"
		}
		return strconv.Itoa(file.Offset(pos))
	case PosLong:
		name := ""
		if withFilename {
			name = file.Name()
		}
		if pos == NoPos {
			return name + ":-:-"
		}
		p := file.Position(pos)
		return fmt.Sprintf("%s:%d:%d", name, p.Line, p.Column)
	default:
		return ""
	}
}

// File tracks the byte offsets of line breaks in a single source file so
// that Pos values (relative offsets into a FileSet) can be translated to
// line:column positions on demand.
type File struct {
	name string
	base int // Pos of the first byte of this file
	size int // size in bytes, not counting the virtual EOF position

	mu    sync.Mutex
	lines []int // 0-based byte offsets of '\n' bytes, strictly increasing
}

// Name returns the filename this File was registered with.
func (f *File) Name() string { return f.name }

// Base returns the Pos of the first byte of the file.
func (f *File) Base() int { return f.base }

// Size returns the size in bytes of the file.
func (f *File) Size() int { return f.size }

// Pos returns the Pos value for the given 0-based byte offset into the
// file.
func (f *File) Pos(offset int) Pos { return Pos(f.base + offset) }

// Offset returns the 0-based byte offset of pos within the file.
func (f *File) Offset(pos Pos) int { return int(pos) - f.base }

// AddLine records that the byte at the given 0-based offset is a newline.
// Offsets must be added in increasing order.
func (f *File) AddLine(offset int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n := len(f.lines); n == 0 || f.lines[n-1] < offset {
		f.lines = append(f.lines, offset)
	}
}

// LineCount returns the number of lines recorded so far, at least 1.
func (f *File) LineCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lines) + 1
}

func (f *File) lineForOffset(offset int) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	line := 1
	for _, nl := range f.lines {
		if nl <= offset {
			line++
		} else {
			break
		}
	}
	return line
}

func (f *File) lineStart(line int) int {
	if line <= 1 {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if line-2 < len(f.lines) {
		return f.lines[line-2] + 1
	}
	return f.size
}

// Line returns the 1-based line number containing pos.
func (f *File) Line(pos Pos) int {
	return f.lineForOffset(f.Offset(pos))
}

// LineBounds returns the [start, end) 0-based byte offsets of the given
// 1-based line, excluding its terminating newline.
func (f *File) LineBounds(line int) (start, end int) {
	start = f.lineStart(line)
	end = f.lineStart(line + 1)
	if line < f.LineCount() {
		end-- // drop the '\n' itself
	}
	return start, end
}

// Position returns the unpacked Position of pos within the file.
func (f *File) Position(pos Pos) Position {
	offset := f.Offset(pos)
	line := f.lineForOffset(offset)
	col := offset - f.lineStart(line) + 1
	return Position{Filename: f.name, Line: line, Column: col}
}

// Error is a single lexical or syntax error tied to a source Position. It is
// the same shape as go/scanner.Error, rebuilt against this package's own
// Position so lexer and parser errors share one representation.
type Error struct {
	Pos Position
	Msg string
}

func (e Error) Error() string {
	if e.Pos.Filename != "" || e.Pos.Line != 0 {
		return e.Pos.String() + ": " + e.Msg
	}
	return e.Msg
}

// ErrorList aggregates Errors, sortable in source-position order.
type ErrorList []*Error

// Add appends an Error built from pos and msg.
func (l *ErrorList) Add(pos Position, msg string) {
	*l = append(*l, &Error{Pos: pos, Msg: msg})
}

func (l ErrorList) Len() int      { return len(l) }
func (l ErrorList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }
func (l ErrorList) Less(i, j int) bool {
	pi, pj := l[i].Pos, l[j].Pos
	if pi.Filename != pj.Filename {
		return pi.Filename < pj.Filename
	}
	if pi.Line != pj.Line {
		return pi.Line < pj.Line
	}
	return pi.Column < pj.Column
}

// Sort sorts the list in place by source position.
func (l ErrorList) Sort() { sort.Sort(l) }

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", l[0].Error(), len(l)-1)
	}
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// PrintError writes err to w, one line per Error if err is an ErrorList,
// a single line otherwise.
func PrintError(w io.Writer, err error) {
	if list, ok := err.(ErrorList); ok {
		for _, e := range list {
			fmt.Fprintf(w, "%s\n", e)
		}
		return
	}
	fmt.Fprintf(w, "%s\n", err)
}

// FileSet is a registry of Files sharing a single Pos address space: the
// base of each registered File starts right after the previous one's last
// valid Pos, mirroring the go/token convention so a bare Pos can be mapped
// back to the File (and line:column) it came from without extra context.
type FileSet struct {
	mu    sync.Mutex
	base  int
	files []*File
}

// NewFileSet creates an empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{base: 1}
}

// AddFile registers a new file of the given size. If base is negative, the
// FileSet assigns the next available base itself; otherwise base must be
// greater than or equal to the FileSet's current base.
func (fs *FileSet) AddFile(name string, base, size int) *File {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if base < 0 {
		base = fs.base
	}
	f := &File{name: name, base: base, size: size}
	fs.files = append(fs.files, f)
	fs.base = base + size + 1
	return f
}

// File returns the File that owns pos, or nil if pos belongs to no
// registered file.
func (fs *FileSet) File(pos Pos) *File {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	for _, f := range fs.files {
		if int(pos) >= f.base && int(pos) <= f.base+f.size {
			return f
		}
	}
	return nil
}

// Position returns the unpacked Position of pos, looking up the owning
// File automatically. It returns the zero Position if pos belongs to no
// file in the set.
func (fs *FileSet) Position(pos Pos) Position {
	if f := fs.File(pos); f != nil {
		return f.Position(pos)
	}
	return Position{}
}

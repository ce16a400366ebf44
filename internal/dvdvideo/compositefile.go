package dvdvideo

import (
	"fmt"
	"io"
	"os"
)

// compositeFragment is one file in a CompositeFile's ordered list, along
// with the cumulative virtual end offset its bytes reach.
type compositeFragment struct {
	path string
	end  int64 // cumulative end offset (exclusive) across all fragments so far
}

// CompositeFile presents an ordered list of files as a single seekable
// byte source, as if they had been concatenated. It is NOT safe for
// concurrent use by multiple goroutines.
//
// Grounded on original_source/plugins/dvdvideo/compositefile.py.
type CompositeFile struct {
	fragments []compositeFragment
	size      int64

	open    *os.File
	openIdx int // index into fragments of the currently open file, -1 if none
	pos     int64
}

// NewCompositeFile builds a CompositeFile from an ordered list of paths.
// Zero-size or missing files are skipped, matching the original's
// behavior of ignoring empty/irregular members.
func NewCompositeFile(paths []string) (*CompositeFile, error) {
	cf := &CompositeFile{openIdx: -1}
	var cumulative int64
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, newIOError("compositefile stat "+p, err)
		}
		if !info.Mode().IsRegular() || info.Size() == 0 {
			continue
		}
		cumulative += info.Size()
		cf.fragments = append(cf.fragments, compositeFragment{path: p, end: cumulative})
	}
	cf.size = cumulative
	return cf, nil
}

// NewCompositeFileFrom clones another CompositeFile's file map, giving the
// clone its own independent read cursor over the same underlying files.
func NewCompositeFileFrom(other *CompositeFile) *CompositeFile {
	clone := &CompositeFile{openIdx: -1, size: other.size}
	clone.fragments = append(clone.fragments, other.fragments...)
	return clone
}

// Files returns the ordered list of member file paths.
func (c *CompositeFile) Files() []string {
	paths := make([]string, len(c.fragments))
	for i, f := range c.fragments {
		paths[i] = f.path
	}
	return paths
}

// Size returns the total size in bytes of the concatenated files.
func (c *CompositeFile) Size() int64 { return c.size }

func (c *CompositeFile) fragmentStart(idx int) int64 {
	if idx == 0 {
		return 0
	}
	return c.fragments[idx-1].end
}

// locate returns the index of the fragment containing byte offset pos.
// If pos equals the total size (end-of-stream), it returns len(fragments).
func (c *CompositeFile) locate(pos int64) (int, error) {
	if pos < 0 || pos > c.size {
		return 0, newFormatError("compositefile seek out of range", fmt.Errorf("offset %d size %d", pos, c.size))
	}
	if pos == c.size {
		return len(c.fragments), nil
	}
	for i, f := range c.fragments {
		if pos < f.end {
			return i, nil
		}
	}
	return len(c.fragments), nil
}

func (c *CompositeFile) ensureOpen(idx int) error {
	if c.openIdx == idx && c.open != nil {
		return nil
	}
	if c.open != nil {
		_ = c.open.Close()
		c.open = nil
		c.openIdx = -1
	}
	if idx < 0 || idx >= len(c.fragments) {
		return nil
	}
	f, err := os.Open(c.fragments[idx].path)
	if err != nil {
		return newIOError("compositefile open "+c.fragments[idx].path, err)
	}
	c.open = f
	c.openIdx = idx
	return nil
}

// Seek repositions the virtual cursor, SEEK_SET/SEEK_CUR/SEEK_END semantics
// matching io.Seeker.
func (c *CompositeFile) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = c.pos + offset
	case io.SeekEnd:
		target = c.size + offset
	default:
		return 0, fmt.Errorf("compositefile: invalid whence %d", whence)
	}
	// The resolved offset must be strictly less than the total size; an
	// empty composite (size 0) is the sole exception, since its only
	// legal cursor position is 0.
	if target < 0 || (c.size > 0 && target >= c.size) || (c.size == 0 && target > 0) {
		return 0, newFormatError("compositefile seek beyond bounds", fmt.Errorf("target %d size %d", target, c.size))
	}
	c.pos = target
	return c.pos, nil
}

func (c *CompositeFile) Tell() int64 { return c.pos }

// Read fills p, crossing file boundaries transparently. It returns
// io.EOF only once the virtual end of the concatenated files is reached.
func (c *CompositeFile) Read(p []byte) (int, error) {
	total := 0
	for total < len(p) {
		if c.pos >= c.size {
			if total > 0 {
				return total, nil
			}
			return 0, io.EOF
		}
		idx, err := c.locate(c.pos)
		if err != nil {
			return total, err
		}
		if err := c.ensureOpen(idx); err != nil {
			return total, err
		}
		fragStart := c.fragmentStart(idx)
		localOffset := c.pos - fragStart
		if _, err := c.open.Seek(localOffset, io.SeekStart); err != nil {
			return total, newIOError("compositefile seek within fragment", err)
		}
		remainInFragment := c.fragments[idx].end - c.pos
		want := int64(len(p) - total)
		if want > remainInFragment {
			want = remainInFragment
		}
		n, err := c.open.Read(p[total : int64(total)+want])
		total += n
		c.pos += int64(n)
		if err != nil && err != io.EOF {
			return total, newIOError("compositefile read", err)
		}
		if n == 0 && err == io.EOF {
			// fragment reported shorter than stat'd; treat as boundary crossed.
			continue
		}
	}
	return total, nil
}

// Close releases the currently-open member file handle. Idempotent.
func (c *CompositeFile) Close() error {
	if c.open == nil {
		return nil
	}
	err := c.open.Close()
	c.open = nil
	c.openIdx = -1
	if err != nil {
		return newIOError("compositefile close", err)
	}
	return nil
}

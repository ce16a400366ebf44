package dvdvideo

import (
	"fmt"
	"io"
)

// virtualFragment maps a contiguous run of virtual bytes onto a real byte
// offset in the underlying CompositeFile.
type virtualFragment struct {
	virtualEnd int64 // cumulative virtual end offset (exclusive)
	realStart  int64
}

// TitleStream presents a title's scattered VOB sector ranges as one linear
// byte stream. It is NOT safe for concurrent multi-reader use — a single
// TitleStream has one read cursor.
//
// Grounded on original_source/plugins/dvdvideo/dvdtitlestream.py:DVDTitleStream.
type TitleStream struct {
	cf    *CompositeFile
	slist []sectorRange

	fragments []virtualFragment
	size      int64
	mapDirty  bool

	pos int64
}

// NewTitleStream wraps a CompositeFile built from a VTS's VOB set.
func NewTitleStream(cf *CompositeFile) *TitleStream {
	return &TitleStream{cf: cf, mapDirty: true}
}

// AddSectors appends a sector range, coalescing it into the previous range
// when contiguous. Grounded on the original's AddSectors.
func (t *TitleStream) AddSectors(start, end uint32) {
	if n := len(t.slist); n > 0 && t.slist[n-1].End+1 == start {
		t.slist[n-1].End = end
	} else {
		t.slist = append(t.slist, sectorRange{Start: start, End: end})
	}
	t.mapDirty = true
}

func (t *TitleStream) buildMap() {
	if !t.mapDirty {
		return
	}
	t.fragments = t.fragments[:0]
	var virtualCursor int64
	for _, r := range t.slist {
		realStart := int64(r.Start) * SectorSize
		length := (int64(r.End) - int64(r.Start) + 1) * SectorSize
		virtualCursor += length
		t.fragments = append(t.fragments, virtualFragment{virtualEnd: virtualCursor, realStart: realStart})
	}
	t.size = virtualCursor
	t.mapDirty = false
}

// Size returns the total linear size of the title in bytes.
func (t *TitleStream) Size() int64 {
	t.buildMap()
	return t.size
}

// Seek repositions the virtual read cursor.
func (t *TitleStream) Seek(offset int64, whence int) (int64, error) {
	t.buildMap()
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = t.pos + offset
	case io.SeekEnd:
		target = t.size + offset
	default:
		return 0, fmt.Errorf("titlestream: invalid whence %d", whence)
	}
	if target < 0 || target > t.size {
		return 0, newFormatError("titlestream seek beyond bounds", fmt.Errorf("target %d size %d", target, t.size))
	}
	t.pos = target
	return t.pos, nil
}

func (t *TitleStream) Tell() int64 { return t.pos }

func (t *TitleStream) locate(virtualPos int64) (realOffset int64, fragmentRemain int64, err error) {
	var fragStart int64
	for _, f := range t.fragments {
		if virtualPos < f.virtualEnd {
			offsetIntoFragment := virtualPos - fragStart
			real := f.realStart + offsetIntoFragment
			remain := f.virtualEnd - virtualPos
			return real, remain, nil
		}
		fragStart = f.virtualEnd
	}
	return 0, 0, io.EOF
}

// Read fills p, translating through the sector map and crossing sector
// ranges transparently.
func (t *TitleStream) Read(p []byte) (int, error) {
	t.buildMap()
	total := 0
	for total < len(p) {
		if t.pos >= t.size {
			if total > 0 {
				return total, nil
			}
			return 0, io.EOF
		}
		realOffset, remain, err := t.locate(t.pos)
		if err != nil {
			if total > 0 {
				return total, nil
			}
			return 0, err
		}
		if _, err := t.cf.Seek(realOffset, io.SeekStart); err != nil {
			return total, err
		}
		want := int64(len(p) - total)
		if want > remain {
			want = remain
		}
		n, err := t.cf.Read(p[total : int64(total)+want])
		total += n
		t.pos += int64(n)
		if err != nil && err != io.EOF {
			return total, err
		}
		if n == 0 {
			break
		}
	}
	return total, nil
}

// Close releases the underlying CompositeFile's open handle.
func (t *TitleStream) Close() error { return t.cf.Close() }

// BuildTitleStream builds the linear stream for pgc's playback, resolving
// each interleaved cell through the ILVU resolver. An ILVU-resolution
// failure is recovered by downgrading that one cell to its raw
// [start, end] range (spec recovery policy), logged via log.
//
// Grounded on original_source/dvdfolder.py's per-cell loop in
// IFOVTSFile.__init__ (AddSectors vs ilvuhack.ComputeRealSectors).
func BuildTitleStream(vts *VTSFile, pgc *PGC, log Logger) (*TitleStream, error) {
	cf, err := NewCompositeFile(vts.VOBs)
	if err != nil {
		return nil, err
	}
	ts := NewTitleStream(cf)

	for _, cell := range pgc.Cells {
		if !cell.isILVU() {
			ts.AddSectors(cell.StartSector, cell.EndSector)
			continue
		}
		ranges, err := computeRealSectors(vts.VOBs, cell.StartSector, cell.EndSector)
		if err != nil {
			log.Warn("ilvu resolution failed, downgrading cell to raw range",
				"vts", vts.Number, "pgc", pgc.Number, "err", err)
			ts.AddSectors(cell.StartSector, cell.EndSector)
			continue
		}
		for _, r := range ranges {
			ts.AddSectors(r.Start, r.End)
		}
	}

	return ts, nil
}

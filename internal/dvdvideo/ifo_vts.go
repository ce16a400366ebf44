package dvdvideo

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

const (
	vtsMagic = "DVDVIDEO-VTS"

	offVTSPTTSRPTPtr = 0x00C8
	offVTSPGCIPtr    = 0x00CC

	pgcHeaderSize  = 8
	pgcEntrySize   = 8
	pgcProgCellOff = 0x00E6 // program map pointer, relative to pgcBase
	pgcCellPlayOff = 0x00E8 // cell playback table pointer, relative to pgcBase
	cellEntrySize  = 24

	cellAnglesMask  = 0xF0
	cellAudioActive = 0x80
	cellAudioMask   = 0x07
)

var vtsFileNameRE = regexp.MustCompile(`(?i)^VTS_(\d{2})_0\.IFO$`)
var vobFileNameRE = regexp.MustCompile(`(?i)^VTS_(\d{2})_(\d)\.VOB$`)

// Cell is one entry of a PGC's cell playback table: a sector range, plus
// the interleaved-unit bookkeeping the ILVU resolver needs.
type Cell struct {
	HasAngles          bool
	StartSector        uint32
	EndSector          uint32
	FirstILVUEndSector uint32 // 0 when the cell is not part of an interleaved block
}

func (c Cell) isILVU() bool { return c.FirstILVUEndSector != 0 }

// PGC is a parsed Program Chain: playback time, audio stream mapping, and
// cell table.
type PGC struct {
	Number          int
	Programs        int
	Playtime        PlaybackTime
	AudioStreamNums []int
	Cells           []Cell
}

// VTSFile is a parsed VTS_nn_0.IFO plus its sibling VTS_nn_k.VOB set.
type VTSFile struct {
	Number     int
	VOBs       []string
	VideoAttrs VideoAttributes
	AudioAttrs []AudioAttributes
	PGCs       []*PGC
}

// PGCByNumber returns the PGC with the given 1-based number, or nil.
func (v *VTSFile) PGCByNumber(n int) *PGC {
	for _, pgc := range v.PGCs {
		if pgc.Number == n {
			return pgc
		}
	}
	return nil
}

// ParseVTSFile parses a VTS_nn_0.IFO file at path, along with its sibling
// VOB set in the same directory.
//
// Grounded on internal/mediainfo/dvd.go's parseDVDChapters (byte layout of
// the PGC/cell tables) and original_source/dvdfolder.py's IFOVTSFile (full
// non-chapter-summarizing cell walk, ILVU delegation).
func ParseVTSFile(path string) (*VTSFile, error) {
	base := filepath.Base(path)
	m := vtsFileNameRE.FindStringSubmatch(base)
	if m == nil {
		return nil, newFormatError("VTS filename does not match VTS_nn_0.IFO: "+path, nil)
	}
	vtsNum, _ := strconv.Atoi(m[1])

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newIOError("read VTS "+path, err)
	}
	if len(data) < offVTSPGCIPtr+4 || !strings.HasPrefix(string(data[:12]), vtsMagic) {
		return nil, newFormatError("VTS magic mismatch: "+path, nil)
	}

	vts := &VTSFile{
		Number:     vtsNum,
		VOBs:       siblingVOBs(path, vtsNum),
		VideoAttrs: parseVideoAttrs(data, offVideoAttrVTS),
		AudioAttrs: parseAudioAttrs(data, offAudioCountVTS, offAudioAttrVTS),
	}

	pgciSector := binary.BigEndian.Uint32(data[offVTSPGCIPtr : offVTSPGCIPtr+4])
	if pgciSector == 0 {
		return nil, newFormatError("VTS has no PGC table: "+path, nil)
	}
	pgciOffset := int(pgciSector) * SectorSize
	if pgciOffset+pgcHeaderSize > len(data) {
		return nil, newFormatError("VTS PGC table pointer out of range: "+path, nil)
	}

	numPGC := int(binary.BigEndian.Uint16(data[pgciOffset : pgciOffset+2]))
	entriesStart := pgciOffset + pgcHeaderSize
	for i := 0; i < numPGC; i++ {
		entryOff := entriesStart + i*pgcEntrySize
		if entryOff+pgcEntrySize > len(data) {
			return nil, newFormatError(fmt.Sprintf("VTS %d PGC %d entry out of range", vtsNum, i+1), nil)
		}
		entry := data[entryOff : entryOff+pgcEntrySize]
		isEntryPGC := entry[0]&0x80 != 0
		if !isEntryPGC {
			continue
		}
		pgcRelOff := int(binary.BigEndian.Uint32(entry[4:8]))
		pgc, err := parsePGC(data, pgciOffset, pgcRelOff, i+1)
		if err != nil {
			return nil, newFormatError(fmt.Sprintf("VTS %d PGC %d", vtsNum, i+1), err)
		}
		vts.PGCs = append(vts.PGCs, pgc)
	}

	return vts, nil
}

func parsePGC(data []byte, pgciOffset, pgcRelOff, number int) (*PGC, error) {
	base := pgciOffset + pgcRelOff
	if base+pgcCellPlayOff+2 > len(data) {
		return nil, fmt.Errorf("pgc base out of range")
	}

	programCount := int(data[base+2])
	cellCount := int(data[base+3])
	playtime := parsePlaybackTime(data[base+4 : base+8])
	if playtime.FrameRate == invalidFrameRate {
		return nil, fmt.Errorf("pgc %d has invalid frame-rate code", number)
	}

	pgc := &PGC{Number: number, Programs: programCount, Playtime: playtime}

	// 8 two-byte audio stream control entries immediately follow the
	// playtime and 4 reserved (prohibited-ops) bytes.
	audioTableOff := base + 12
	for i := 0; i < 8; i++ {
		off := audioTableOff + i*2
		if off+2 > len(data) {
			break
		}
		strnum := binary.BigEndian.Uint16(data[off : off+2])
		if strnum&cellAudioActive != 0 {
			pgc.AudioStreamNums = append(pgc.AudioStreamNums, int(strnum&cellAudioMask))
		}
	}

	cellPlayOff := int(binary.BigEndian.Uint16(data[base+pgcCellPlayOff : base+pgcCellPlayOff+2]))
	cellTableStart := base + cellPlayOff
	if cellTableStart+cellCount*cellEntrySize > len(data) {
		return nil, fmt.Errorf("cell table out of range")
	}

	for i := 0; i < cellCount; i++ {
		entryOff := cellTableStart + i*cellEntrySize
		e := data[entryOff : entryOff+cellEntrySize]
		cell := Cell{
			HasAngles:          e[0]&cellAnglesMask != 0,
			StartSector:        binary.BigEndian.Uint32(e[8:12]),
			FirstILVUEndSector: binary.BigEndian.Uint32(e[12:16]),
			EndSector:          binary.BigEndian.Uint32(e[20:24]),
		}
		pgc.Cells = append(pgc.Cells, cell)
	}

	return pgc, nil
}

// siblingVOBs enumerates VTS_nn_k.VOB files (k=1..9, k=0 excluded as it
// holds only the VTS menu domain) next to an IFO path, sorted by k.
//
// Grounded on internal/mediainfo/dvd.go:dvdTitleSetVOBs.
func siblingVOBs(ifoPath string, vtsNum int) []string {
	dir := filepath.Dir(ifoPath)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	type indexed struct {
		idx  int
		path string
	}
	var found []indexed
	for _, entry := range entries {
		m := vobFileNameRE.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		if num != vtsNum {
			continue
		}
		k, _ := strconv.Atoi(m[2])
		if k == 0 {
			continue
		}
		found = append(found, indexed{idx: k, path: filepath.Join(dir, entry.Name())})
	}
	sort.Slice(found, func(i, j int) bool { return found[i].idx < found[j].idx })
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths
}

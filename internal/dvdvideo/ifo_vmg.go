package dvdvideo

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"
)

const (
	vmgMagic = "DVDVIDEO-VMG"

	offVMGNumVTS     = 0x003E
	offVMGTTSRPTPtr  = 0x00C4
	titleEntrySize   = 12
)

// TitleEntry is one row of the VMG's title table (VMG_PTT_SRPT), mapping a
// global title number to the VTS and in-VTS PGC that plays it.
type TitleEntry struct {
	Number        int
	PlaybackType  byte
	Angles        int
	Chapters      int
	ParentalMask  uint16
	VTSNumber     int
	VTSPGCNumber  int
	VTSSector     uint32
}

// VMGFile is the parsed VIDEO_TS.IFO (Video Manager).
type VMGFile struct {
	NumVTS int
	Titles []TitleEntry
}

// ParseVMGFile parses VIDEO_TS.IFO from path.
//
// Grounded on internal/mediainfo/dvd.go's "DVDVIDEO-VMG" magic check and
// dvdPointer-style pointer dereferencing, and
// original_source/dvdfolder.py's IFOVMGFile for the title table walk the
// teacher's single-file report never needed.
func ParseVMGFile(path string) (*VMGFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newIOError("read VMG "+path, err)
	}
	if len(data) < offVMGTTSRPTPtr+4 || !strings.HasPrefix(string(data[:12]), vmgMagic) {
		return nil, newFormatError("VMG magic mismatch: "+path, nil)
	}

	vmg := &VMGFile{
		NumVTS: int(binary.BigEndian.Uint16(data[offVMGNumVTS : offVMGNumVTS+2])),
	}

	pttSector := binary.BigEndian.Uint32(data[offVMGTTSRPTPtr : offVMGTTSRPTPtr+4])
	if pttSector == 0 {
		return nil, newFormatError("VMG has no title table: "+path, nil)
	}
	pttOffset := int(pttSector) * SectorSize
	if pttOffset+8 > len(data) {
		return nil, newFormatError("VMG title table pointer out of range: "+path, nil)
	}

	numTitles := int(binary.BigEndian.Uint16(data[pttOffset : pttOffset+2]))
	entriesStart := pttOffset + 8
	for i := 0; i < numTitles; i++ {
		entryOff := entriesStart + i*titleEntrySize
		if entryOff+titleEntrySize > len(data) {
			return nil, newFormatError(fmt.Sprintf("VMG title %d entry out of range: %s", i+1, path), nil)
		}
		e := data[entryOff : entryOff+titleEntrySize]
		vtsNum := int(e[6])
		vtsPGCNum := int(e[7])
		if vtsNum > 99 || vtsPGCNum > 99 {
			return nil, newFormatError(fmt.Sprintf("VMG title %d has invalid vts/pgc numbers: %s", i+1, path), nil)
		}
		vmg.Titles = append(vmg.Titles, TitleEntry{
			Number:       i + 1,
			PlaybackType: e[0],
			Angles:       int(e[1]),
			Chapters:     int(binary.BigEndian.Uint16(e[2:4])),
			ParentalMask: binary.BigEndian.Uint16(e[4:6]),
			VTSNumber:    vtsNum,
			VTSPGCNumber: vtsPGCNum,
			VTSSector:    binary.BigEndian.Uint32(e[8:12]),
		})
	}

	return vmg, nil
}

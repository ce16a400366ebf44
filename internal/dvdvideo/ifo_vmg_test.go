package dvdvideo

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

// buildVMGFixture assembles a minimal but structurally valid VIDEO_TS.IFO:
// the 12-byte magic, NumVTS at its fixed offset, a title-table pointer to
// sector 1, and one row in that table for each of the given entries.
func buildVMGFixture(t *testing.T, numVTS int, entries []TitleEntry) []byte {
	t.Helper()
	data := make([]byte, SectorSize*2)
	copy(data, []byte(vmgMagic))
	binary.BigEndian.PutUint16(data[offVMGNumVTS:], uint16(numVTS))
	binary.BigEndian.PutUint32(data[offVMGTTSRPTPtr:], 1)

	pttOffset := SectorSize
	binary.BigEndian.PutUint16(data[pttOffset:], uint16(len(entries)))
	entriesStart := pttOffset + 8
	for i, e := range entries {
		off := entriesStart + i*titleEntrySize
		row := data[off : off+titleEntrySize]
		row[0] = e.PlaybackType
		row[1] = byte(e.Angles)
		binary.BigEndian.PutUint16(row[2:4], uint16(e.Chapters))
		binary.BigEndian.PutUint16(row[4:6], e.ParentalMask)
		row[6] = byte(e.VTSNumber)
		row[7] = byte(e.VTSPGCNumber)
		binary.BigEndian.PutUint32(row[8:12], e.VTSSector)
	}
	return data
}

func TestParseVMGFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VIDEO_TS.IFO")
	data := buildVMGFixture(t, 2, []TitleEntry{
		{Angles: 1, Chapters: 5, VTSNumber: 1, VTSPGCNumber: 1},
		{Angles: 1, Chapters: 3, VTSNumber: 2, VTSPGCNumber: 1},
	})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	vmg, err := ParseVMGFile(path)
	if err != nil {
		t.Fatalf("ParseVMGFile: %v", err)
	}
	if vmg.NumVTS != 2 {
		t.Fatalf("NumVTS = %d, want 2", vmg.NumVTS)
	}
	if len(vmg.Titles) != 2 {
		t.Fatalf("len(Titles) = %d, want 2", len(vmg.Titles))
	}
	if vmg.Titles[0].Number != 1 || vmg.Titles[0].Chapters != 5 {
		t.Fatalf("unexpected first title: %+v", vmg.Titles[0])
	}
	if vmg.Titles[1].VTSNumber != 2 {
		t.Fatalf("unexpected second title VTS number: %+v", vmg.Titles[1])
	}
}

func TestParseVMGFileBadMagic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VIDEO_TS.IFO")
	data := buildVMGFixture(t, 1, []TitleEntry{{VTSNumber: 1, VTSPGCNumber: 1}})
	copy(data, []byte("NOT-A-VMG-HDR"))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ParseVMGFile(path); err == nil {
		t.Fatal("expected error for bad magic")
	} else if !IsFormatError(err) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestParseVMGFileInvalidVTSNumber(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VIDEO_TS.IFO")
	data := buildVMGFixture(t, 1, []TitleEntry{{VTSNumber: 150, VTSPGCNumber: 1}})
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if _, err := ParseVMGFile(path); err == nil {
		t.Fatal("expected error for out-of-range VTS number")
	}
}

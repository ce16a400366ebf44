package dvdvideo

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func buildPackHeader() []byte {
	buf := []byte{0x00, 0x00, 0x01, packStreamID}
	buf = append(buf, make([]byte, 10)...) // stuffing count byte (last) left at 0
	return buf
}

func buildDSIPacket(cellCategory byte, endILVUBlock, nextILVUBlock uint32) []byte {
	payload := make([]byte, dsiPacketLen-1)
	payload[dsiCellCatOff] = cellCategory
	binary.BigEndian.PutUint32(payload[dsiEndILVUOff:dsiEndILVUOff+4], endILVUBlock)
	binary.BigEndian.PutUint32(payload[dsiNextILVUOff:dsiNextILVUOff+4], nextILVUBlock)

	buf := []byte{0x00, 0x00, 0x01, privateStream2}
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], dsiPacketLen)
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, dsiSubstreamID)
	buf = append(buf, payload...)
	return buf
}

func TestGetNextDSIPacketSkipsPackHeader(t *testing.T) {
	var stream []byte
	stream = append(stream, buildPackHeader()...)
	stream = append(stream, buildDSIPacket(cellCatILVUBit, 50, 10)...)

	r := bufio.NewReader(bytes.NewReader(stream))
	dsi, err := getNextDSIPacket(r)
	if err != nil {
		t.Fatalf("getNextDSIPacket: %v", err)
	}
	if len(dsi) != dsiPacketLen-1 {
		t.Fatalf("len(dsi) = %d, want %d", len(dsi), dsiPacketLen-1)
	}
	if dsi[dsiCellCatOff] != cellCatILVUBit {
		t.Fatalf("cellCategory = %#x", dsi[dsiCellCatOff])
	}
	if got := binary.BigEndian.Uint32(dsi[dsiNextILVUOff : dsiNextILVUOff+4]); got != 10 {
		t.Fatalf("nextILVUBlock = %d, want 10", got)
	}
}

func TestGetNextDSIPacketIgnoresNonMatchingPrivateStream2(t *testing.T) {
	var stream []byte
	// a private-stream-2 packet with the wrong substream id, must be skipped.
	wrong := []byte{0x00, 0x00, 0x01, privateStream2}
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], 20)
	wrong = append(wrong, lenBuf[:]...)
	wrong = append(wrong, 0x02) // wrong substream id
	wrong = append(wrong, make([]byte, 19)...)

	stream = append(stream, wrong...)
	stream = append(stream, buildDSIPacket(cellCatBlockBit, 5, 7)...)

	r := bufio.NewReader(bytes.NewReader(stream))
	dsi, err := getNextDSIPacket(r)
	if err != nil {
		t.Fatalf("getNextDSIPacket: %v", err)
	}
	if dsi[dsiCellCatOff] != cellCatBlockBit {
		t.Fatalf("cellCategory = %#x, want %#x", dsi[dsiCellCatOff], cellCatBlockBit)
	}
}

func writeSectorAlignedVOB(t *testing.T, path string, streamAtSectorZero []byte) {
	t.Helper()
	data := make([]byte, SectorSize*2)
	copy(data, streamAtSectorZero)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
}

func TestComputeRealSectorsNonILVUPassesThrough(t *testing.T) {
	dir := t.TempDir()
	vob := filepath.Join(dir, "VTS_01_1.VOB")
	writeSectorAlignedVOB(t, vob, buildDSIPacket(0x00, 0, 0))

	ranges, err := computeRealSectors([]string{vob}, 0, 1)
	if err != nil {
		t.Fatalf("computeRealSectors: %v", err)
	}
	if len(ranges) != 1 || ranges[0] != (sectorRange{Start: 0, End: 1}) {
		t.Fatalf("ranges = %v, want unchanged [0,1]", ranges)
	}
}

func TestComputeRealSectorsILVUBlock(t *testing.T) {
	dir := t.TempDir()
	vob := filepath.Join(dir, "VTS_01_1.VOB")
	// a single ILVU block-start DSI packet; nextILVUBlock pushes curStart
	// past end so the walk terminates after emitting one range.
	writeSectorAlignedVOB(t, vob, buildDSIPacket(cellCatBlockBit, 3, 5))

	ranges, err := computeRealSectors([]string{vob}, 0, 1)
	if err != nil {
		t.Fatalf("computeRealSectors: %v", err)
	}
	if len(ranges) != 1 {
		t.Fatalf("ranges = %v, want 1 entry", ranges)
	}
	if ranges[0].Start != 0 || ranges[0].End != 3 {
		t.Fatalf("ranges[0] = %+v, want Start=0 End=3", ranges[0])
	}
}

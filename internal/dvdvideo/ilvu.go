package dvdvideo

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// dsiPacketLen and dsiSubstreamID identify the one PES payload out of a
// VOBU's navigation pack that carries the Data Search Information we need:
// Private Stream 2, substream 1, fixed 1018-byte payload.
const (
	dsiPacketLen    = 1018
	dsiSubstreamID  = 1
	dsiCellCatOff   = 32
	dsiEndILVUOff   = 34
	dsiNextILVUOff  = 38
	packStreamID    = 0xBA
	privateStream2  = 0xBF
	cellCatILVUBit  = 0x40
	cellCatBlockBit = 0x60
)

// getNextDSIPacket scans forward from the reader's current position for
// the next Private-Stream-2/substream-1/1018-byte DSI packet, returning its
// 1017-byte payload (the packet body after the substream-id byte).
//
// Grounded on original_source/plugins/dvdvideo/ilvuhack.py:GetNextDSIPacket,
// re-expressed with the teacher's start-code walking idiom from
// internal/mediainfo/mpeg_ps.go.
func getNextDSIPacket(r *bufio.Reader) ([]byte, error) {
	for {
		start, err := readStartCode(r)
		if err != nil {
			return nil, err
		}
		streamID, err := r.ReadByte()
		if err != nil {
			return nil, err
		}
		_ = start

		if streamID == packStreamID {
			hdr := make([]byte, 10)
			if _, err := io.ReadFull(r, hdr); err != nil {
				return nil, err
			}
			stuffing := int(hdr[9] & 0x07)
			if stuffing > 0 {
				if _, err := io.CopyN(io.Discard, r, int64(stuffing)); err != nil {
					return nil, err
				}
			}
			continue
		}

		var lenBuf [2]byte
		if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
			return nil, err
		}
		packetLen := int(binary.BigEndian.Uint16(lenBuf[:]))

		if streamID == privateStream2 {
			subID, err := r.ReadByte()
			if err != nil {
				return nil, err
			}
			if packetLen == dsiPacketLen && subID == dsiSubstreamID {
				payload := make([]byte, packetLen-1)
				if _, err := io.ReadFull(r, payload); err != nil {
					return nil, err
				}
				return payload, nil
			}
			if packetLen > 1 {
				if _, err := io.CopyN(io.Discard, r, int64(packetLen-1)); err != nil {
					return nil, err
				}
			}
			continue
		}

		if packetLen > 0 {
			if _, err := io.CopyN(io.Discard, r, int64(packetLen)); err != nil {
				return nil, err
			}
		}
	}
}

// readStartCode advances r past the next 00 00 01 start code.
func readStartCode(r *bufio.Reader) (int, error) {
	zeros := 0
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, err
		}
		switch {
		case b == 0x00:
			zeros++
		case b == 0x01 && zeros >= 2:
			return 0, nil
		default:
			zeros = 0
		}
	}
}

// sectorRange is an inclusive [Start, End] sector range, matching the
// [start, end] pairs used throughout the spec's cell/ILVU handling.
type sectorRange struct {
	Start uint32
	End   uint32
}

// computeRealSectors refines a cell's [start, end] sector range into the
// true set of sector ranges belonging to the current angle, by walking DSI
// packets across the VOBUs in [start, end]. For non-interleaved cells (the
// common case) it returns the input range unchanged.
//
// Grounded on original_source/plugins/dvdvideo/ilvuhack.py:ComputeRealSectors.
func computeRealSectors(files []string, start, end uint32) ([]sectorRange, error) {
	cf, err := NewCompositeFile(files)
	if err != nil {
		return nil, err
	}
	defer cf.Close()

	var result []sectorRange
	curStart := start
	first := true

	for {
		if int64(curStart)*SectorSize >= cf.Size() || curStart < start || curStart > end {
			break
		}
		if _, err := cf.Seek(int64(curStart)*SectorSize, io.SeekStart); err != nil {
			break
		}
		br := bufio.NewReaderSize(compositeFileReader{cf}, 4096)
		dsi, err := getNextDSIPacket(br)
		if err != nil {
			if first {
				return nil, newFormatError("ilvu: no DSI packet found in cell", err)
			}
			break
		}
		if len(dsi) < dsiNextILVUOff+4 {
			return nil, newFormatError("ilvu: short DSI packet", fmt.Errorf("len=%d", len(dsi)))
		}

		cellCategory := dsi[dsiCellCatOff]
		endILVUBlock := binary.BigEndian.Uint32(dsi[dsiEndILVUOff : dsiEndILVUOff+4])
		nextILVUBlock := binary.BigEndian.Uint32(dsi[dsiNextILVUOff : dsiNextILVUOff+4])

		if first {
			first = false
			if cellCategory&cellCatILVUBit == 0 {
				return []sectorRange{{Start: start, End: end}}, nil
			}
		}

		if cellCategory&cellCatBlockBit != cellCatBlockBit {
			curStart += nextILVUBlock
			continue
		}

		result = append(result, sectorRange{Start: curStart, End: curStart + endILVUBlock})
		curStart += nextILVUBlock
	}

	return result, nil
}

// compositeFileReader adapts *CompositeFile to io.Reader for bufio.
type compositeFileReader struct{ cf *CompositeFile }

func (c compositeFileReader) Read(p []byte) (int, error) { return c.cf.Read(p) }

package dvdvideo

import (
	"bytes"
	"testing"
)

func TestSectorReaderReadPrimitives(t *testing.T) {
	data := []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		'h', 'i',
	}
	r := NewSectorReader(bytes.NewReader(data), 0)

	if v, err := r.ReadU8(); err != nil || v != 0x01 {
		t.Fatalf("ReadU8 = %#x, %v", v, err)
	}
	if v, err := r.ReadU16(); err != nil || v != 0x0203 {
		t.Fatalf("ReadU16 = %#x, %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 0x04050607 {
		t.Fatalf("ReadU32 = %#x, %v", v, err)
	}
	if b, err := r.ReadBytes(2); err != nil || string(b) != "hi" {
		t.Fatalf("ReadBytes = %q, %v", b, err)
	}
}

func TestSectorReaderSectorSeekWithOffset(t *testing.T) {
	data := make([]byte, SectorSize*4)
	copy(data[SectorSize*2+10:], []byte("marker"))

	r := NewSectorReader(bytes.NewReader(data), 1)
	if err := r.SectorSeek(3, 10); err != nil {
		t.Fatalf("SectorSeek: %v", err)
	}
	got, err := r.ReadBytes(6)
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if string(got) != "marker" {
		t.Fatalf("got %q, want marker", got)
	}

	sec, err := r.SectorTell()
	if err != nil {
		t.Fatalf("SectorTell: %v", err)
	}
	if sec != 3 {
		t.Fatalf("SectorTell = %d, want 3", sec)
	}
}

func TestBCDToDecimal(t *testing.T) {
	cases := map[byte]int{
		0x00: 0,
		0x09: 9,
		0x10: 10,
		0x59: 59,
		0x99: 99,
	}
	for in, want := range cases {
		if got := bcdToDecimal(in); got != want {
			t.Errorf("bcdToDecimal(%#x) = %d, want %d", in, got, want)
		}
	}
}

package dvdvideo

import "testing"

func TestParseVideoAttrsNTSCWidescreen(t *testing.T) {
	// coding=1 (Version 2), standard=0 (NTSC), aspect=3 (16:9), resCode=0 (720x480)
	b0 := byte(1<<6 | 0<<4 | 3<<2)
	b1 := byte(0 << 3)
	attrs := parseVideoAttrs([]byte{b0, b1}, 0)

	if attrs.Version != "Version 2" {
		t.Errorf("Version = %q", attrs.Version)
	}
	if attrs.Standard != "NTSC" || attrs.FrameRate != 29.97 {
		t.Errorf("Standard/FrameRate = %q/%v", attrs.Standard, attrs.FrameRate)
	}
	if attrs.AspectRatio != "16:9" {
		t.Errorf("AspectRatio = %q", attrs.AspectRatio)
	}
	if attrs.Width != 720 || attrs.Height != 480 {
		t.Errorf("Width/Height = %d/%d", attrs.Width, attrs.Height)
	}
}

func TestParseVideoAttrsPALLowRes(t *testing.T) {
	b0 := byte(0<<6 | 1<<4 | 0<<2)
	b1 := byte(3 << 3) // resCode=3 -> 352x288 on PAL
	attrs := parseVideoAttrs([]byte{b0, b1}, 0)

	if attrs.Standard != "PAL" || attrs.FrameRate != 25.0 {
		t.Errorf("Standard/FrameRate = %q/%v", attrs.Standard, attrs.FrameRate)
	}
	if attrs.Width != 352 || attrs.Height != 288 {
		t.Errorf("Width/Height = %d/%d", attrs.Width, attrs.Height)
	}
}

func TestParseAudioAttrsStreamIDNumbering(t *testing.T) {
	data := make([]byte, 32)
	data[0] = 2 // count

	// first record: AC3 (code 0), 6 channels, sampleCode=0, lang "en"
	rec0 := data[2:10]
	rec0[0] = 0 << 5
	rec0[1] = byte(0<<4 | 5) // channels field = 5 -> 6 channels
	copy(rec0[2:4], "en")

	// second record: AC3 again, 2 channels, lang "fr" -> StreamID should bump by 1
	rec1 := data[10:18]
	rec1[0] = 0 << 5
	rec1[1] = byte(0<<4 | 1)
	copy(rec1[2:4], "fr")

	attrs := parseAudioAttrs(data, 0, 2)
	if len(attrs) != 2 {
		t.Fatalf("len(attrs) = %d, want 2", len(attrs))
	}
	if attrs[0].Coding != AudioCodingAC3 || attrs[0].Channels != 6 {
		t.Errorf("attrs[0] = %+v", attrs[0])
	}
	if attrs[0].StreamID != 0x80 {
		t.Errorf("attrs[0].StreamID = %#x, want 0x80", attrs[0].StreamID)
	}
	if attrs[1].StreamID != 0x81 {
		t.Errorf("attrs[1].StreamID = %#x, want 0x81", attrs[1].StreamID)
	}
	if attrs[0].Language != "English" || attrs[1].Language != "French" {
		t.Errorf("languages = %q, %q", attrs[0].Language, attrs[1].Language)
	}
}

func TestParseAudioAttrsCodeExtension(t *testing.T) {
	data := make([]byte, 16)
	data[0] = 1
	rec := data[2:10]
	rec[0] = 0 << 5 // AC3
	copy(rec[2:4], "en")
	rec[5] = 3 // code_ext: director's comments

	attrs := parseAudioAttrs(data, 0, 2)
	if len(attrs) != 1 {
		t.Fatalf("len(attrs) = %d, want 1", len(attrs))
	}
	if attrs[0].CodeExtension != 3 {
		t.Errorf("CodeExtension = %d, want 3", attrs[0].CodeExtension)
	}
	if attrs[0].CodeExtensionName() != "director's comments" {
		t.Errorf("CodeExtensionName() = %q", attrs[0].CodeExtensionName())
	}
}

func TestParseAudioAttrsUnknownLanguageIsEmpty(t *testing.T) {
	data := make([]byte, 16)
	data[0] = 1
	rec := data[2:10]
	rec[0] = byte(AudioCodingDTS) << 5
	copy(rec[2:4], "xx")

	attrs := parseAudioAttrs(data, 0, 2)
	if len(attrs) != 1 {
		t.Fatalf("len(attrs) = %d, want 1", len(attrs))
	}
	if attrs[0].Language != "" {
		t.Errorf("Language = %q, want empty for unknown code", attrs[0].Language)
	}
	if attrs[0].LanguageCode != "xx" {
		t.Errorf("LanguageCode = %q, want xx", attrs[0].LanguageCode)
	}
}

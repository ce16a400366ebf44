package dvdvideo

import (
	"os"
	"path/filepath"
	"testing"
)

func TestBestAudioStreamIDPrefersMatch(t *testing.T) {
	title := &Title{
		AudioStreams: []AudioAttributes{
			{LanguageCode: "en", Channels: 2, StreamID: 0x80},
			{LanguageCode: "fr", Channels: 6, StreamID: 0x81},
			{LanguageCode: "en", Channels: 6, StreamID: 0x82},
		},
	}
	if got := title.BestAudioStreamID("fr:6,en:2"); got != 0x81 {
		t.Fatalf("got %#x, want 0x81", got)
	}
	if got := title.BestAudioStreamID("de:2,en:6"); got != 0x82 {
		t.Fatalf("got %#x, want 0x82", got)
	}
}

func TestBestAudioStreamIDFallsBackToFirst(t *testing.T) {
	title := &Title{
		AudioStreams: []AudioAttributes{
			{LanguageCode: "ja", Channels: 2, StreamID: 0x80},
		},
	}
	if got := title.BestAudioStreamID("de:2,fr:6"); got != 0x80 {
		t.Fatalf("got %#x, want fallback 0x80", got)
	}
}

func TestBestAudioStreamIDNoStreams(t *testing.T) {
	title := &Title{}
	if got := title.BestAudioStreamID("en:2"); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestFindDOSFilename(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "VIDEO_TS.IFO")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, ok := FindDOSFilename(dir, "video_ts.ifo")
	if !ok || got != "VIDEO_TS.IFO" {
		t.Fatalf("FindDOSFilename = %q, %v", got, ok)
	}

	if _, ok := FindDOSFilename(dir, "missing.ifo"); ok {
		t.Fatal("expected not found for missing.ifo")
	}
}

func TestOpenDVDFolderNotADVD(t *testing.T) {
	dir := t.TempDir()
	if _, err := OpenDVDFolder(dir, 0, nil); err == nil {
		t.Fatal("expected error opening a plain directory as a DVD folder")
	}
}

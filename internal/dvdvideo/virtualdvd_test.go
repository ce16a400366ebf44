package dvdvideo

import "testing"

func TestFileTitleUnsupportedID(t *testing.T) {
	folder := &DVDFolder{loaded: true, loadErr: nil, vtsByNum: map[int]*VTSFile{}}
	v := &VirtualDVD{folder: folder, sidecar: NoSidecar{}, log: NopLogger{}}

	if _, err := v.FileTitle("__T-1.mpg"); err == nil {
		t.Fatal("expected error for unsupported title id -1")
	}
}

func TestFileTitleNotASyntheticFilename(t *testing.T) {
	folder := &DVDFolder{loaded: true, vtsByNum: map[int]*VTSFile{}}
	v := &VirtualDVD{folder: folder, sidecar: NoSidecar{}, log: NopLogger{}}

	if _, err := v.FileTitle("movie.mkv"); err == nil {
		t.Fatal("expected error for a non-synthetic filename")
	}
}

func TestTitleNameFolderError(t *testing.T) {
	folder := &DVDFolder{loaded: true, loadErr: ErrNotDVD, vtsByNum: map[int]*VTSFile{}}
	v := &VirtualDVD{folder: folder, sidecar: NoSidecar{}, log: NopLogger{}}

	if got := v.TitleName(-99); got != ErrNotDVD.Error() {
		t.Fatalf("TitleName(-99) = %q, want %q", got, ErrNotDVD.Error())
	}
}

func TestTitleNameMainFeature(t *testing.T) {
	folder := &DVDFolder{loaded: true, vtsByNum: map[int]*VTSFile{}}
	v := &VirtualDVD{folder: folder, sidecar: NoSidecar{}, log: NopLogger{}}

	if got := v.TitleName(0); got != "Main Feature" {
		t.Fatalf("TitleName(0) = %q, want Main Feature", got)
	}
}

func TestSyntheticPathFormat(t *testing.T) {
	if got := syntheticPath("/discs/Movie", 3); got != "/discs/Movie/__T03.mpg" {
		t.Fatalf("syntheticPath = %q", got)
	}
}

func TestSyntheticFilePatternMatchesCaseInsensitively(t *testing.T) {
	if !syntheticFilePattern.MatchString("__t07.MPG") {
		t.Fatal("expected case-insensitive match")
	}
	if syntheticFilePattern.MatchString("random.mpg") {
		t.Fatal("expected no match for an unrelated filename")
	}
}

// Package dvdvideo is the public proxy for github.com/autobrr/go-dvdvideo's
// internal DVD-Video parsing/streaming implementation.
//
// Grounded verbatim on the teacher's pkg/mediainfo/mediainfo.go proxy
// pattern: type aliases plus thin pass-through functions, so internal
// packages stay free to change shape without breaking callers.
package dvdvideo

import (
	"github.com/autobrr/go-dvdvideo/internal/dvdvideo"
)

// Types
type (
	VideoAttributes  = dvdvideo.VideoAttributes
	AudioAttributes  = dvdvideo.AudioAttributes
	AudioCoding      = dvdvideo.AudioCoding
	PlaybackTime     = dvdvideo.PlaybackTime
	TitleEntry       = dvdvideo.TitleEntry
	VMGFile          = dvdvideo.VMGFile
	VTSFile          = dvdvideo.VTSFile
	PGC              = dvdvideo.PGC
	Cell             = dvdvideo.Cell
	Title            = dvdvideo.Title
	DVDFolder        = dvdvideo.DVDFolder
	TitleStream      = dvdvideo.TitleStream
	CompositeFile    = dvdvideo.CompositeFile
	VirtualDVD       = dvdvideo.VirtualDVD
	FileEntry        = dvdvideo.FileEntry
	SidecarLookup    = dvdvideo.SidecarLookup
	Logger           = dvdvideo.Logger
	FormatError      = dvdvideo.FormatError
)

// Constants
const (
	SectorSize             = dvdvideo.SectorSize
	DefaultTitleMinSeconds = dvdvideo.DefaultTitleMinSeconds
	DefaultLRUCapacity     = dvdvideo.DefaultLRUCapacity

	AudioCodingAC3      = dvdvideo.AudioCodingAC3
	AudioCodingMPEG1    = dvdvideo.AudioCodingMPEG1
	AudioCodingMPEG2Ext = dvdvideo.AudioCodingMPEG2Ext
	AudioCodingLPCM     = dvdvideo.AudioCodingLPCM
	AudioCodingDTS      = dvdvideo.AudioCodingDTS
)

// Sentinel errors
var (
	ErrNotDVD = dvdvideo.ErrNotDVD
	ErrIO     = dvdvideo.ErrIO
)

// Folder / VirtualDVD entry points

func OpenDVDFolder(root string, titleMinSeconds float64, log Logger) (*DVDFolder, error) {
	return dvdvideo.OpenDVDFolder(root, titleMinSeconds, log)
}

func OpenVirtualDVD(path string, titleMinSeconds float64, sidecar SidecarLookup, log Logger) (*VirtualDVD, error) {
	return dvdvideo.OpenVirtualDVD(path, titleMinSeconds, sidecar, log)
}

func InitFolderCache(capacity int) error {
	return dvdvideo.InitFolderCache(capacity)
}

func NewDefaultLogger() Logger {
	return dvdvideo.NewDefaultLogger()
}

// Parsing entry points, useful to callers that want to work with a single
// IFO/VTS without going through the VirtualDVD façade.

func ParseVMGFile(path string) (*VMGFile, error) {
	return dvdvideo.ParseVMGFile(path)
}

func ParseVTSFile(path string) (*VTSFile, error) {
	return dvdvideo.ParseVTSFile(path)
}

func NewCompositeFile(paths []string) (*CompositeFile, error) {
	return dvdvideo.NewCompositeFile(paths)
}

func BuildTitleStream(vts *VTSFile, pgc *PGC, log Logger) (*TitleStream, error) {
	return dvdvideo.BuildTitleStream(vts, pgc, log)
}

func IsFormatError(err error) bool {
	return dvdvideo.IsFormatError(err)
}

package dvdvideo

import "strings"

// IFO byte offsets for video/audio attribute blocks, shared by the VMG menu
// domain and every VTS (menu + title) domain.
//
// Grounded on internal/mediainfo/dvd.go's dvdVideoAttrMenuOffset/
// dvdVideoAttrVTSOffset family, extended with the VTS title-domain audio
// stream-ID table from original_source/dvdfolder.py's IFOAudioAttrs.
const (
	offVideoAttrMenu  = 0x0100
	offAudioCountMenu = 0x0102
	offAudioAttrMenu  = 0x0104

	offVideoAttrVTS  = 0x0200
	offAudioCountVTS = 0x0202
	offAudioAttrVTS  = 0x0204
)

// VideoAttributes describes the coded video properties recorded in an IFO
// video attribute block.
type VideoAttributes struct {
	Version     string
	Standard    string // "NTSC" or "PAL"
	AspectRatio string
	Width       int
	Height      int
	FrameRate   float64
}

// AudioCoding enumerates the eight IFO audio coding-mode codes.
type AudioCoding int

const (
	AudioCodingAC3 AudioCoding = iota
	AudioCodingUnknown1
	AudioCodingMPEG1
	AudioCodingMPEG2Ext
	AudioCodingLPCM
	AudioCodingUnknown2
	AudioCodingDTS
	AudioCodingUnknown3
)

var audioCodingNames = [8]string{
	"AC3", "<unknown>", "MPEG-1", "MPEG-2", "LPCM", "<unknown>", "DTS", "<unknown>",
}

// audioStreamIDBase maps an audio coding code to the base value its
// sub-stream ID is built on (private-stream sub-IDs for AC3/LPCM/DTS,
// direct MPEG audio stream IDs for MPEG-1/2).
//
// Grounded on original_source/dvdfolder.py's IFOAudioAttrs stream-id table.
var audioStreamIDBase = [8]int{0x80, 0, 0xC0, 0xC0, 0xA0, 0, 0x88, 0}

// audioCodeExtensionNames maps the audio-attribute record's code-extension
// byte (0=unspecified, 1=normal, 2=for the blind, 3=director's comments,
// 4=alternate commentary) to a human-readable label.
//
// Grounded on original_source/plugins/dvdvideo/dvdfolder.py:297,310-315
// (IFOAudioAttrs.__code_ext / CodeExtension / CodeExtensionValue).
var audioCodeExtensionNames = map[int]string{
	0: "unspecified",
	1: "normal",
	2: "for the visually impaired",
	3: "director's comments",
	4: "alternate director's comments",
}

// AudioAttributes describes one audio stream's coded properties plus the
// stream ID a PES demuxer needs to pick it out of the program stream.
type AudioAttributes struct {
	Coding        AudioCoding
	Format        string
	FormatInfo    string
	Channels      int
	SampleRate    float64
	Language      string
	LanguageCode  string
	CodeExtension int // 0=unspecified, 1=normal, 2=for the blind, 3=director's comments, 4=alternate commentary
	StreamID      int // coding's base ID plus index within its coding family, e.g. 0x80 for the first AC3 track
}

// CodeExtensionName renders a's CodeExtension as a human-readable label, or
// "" if the value is outside the known range.
func (a AudioAttributes) CodeExtensionName() string {
	return audioCodeExtensionNames[a.CodeExtension]
}

// parseVideoAttrs decodes a 2-byte video attribute block at offset.
// Grounded on internal/mediainfo/dvd.go:parseDVDVideoAttrs.
func parseVideoAttrs(data []byte, offset int) VideoAttributes {
	if offset+2 > len(data) {
		return VideoAttributes{}
	}
	b0 := data[offset]
	b1 := data[offset+1]
	coding := (b0 >> 6) & 0x03
	standardCode := (b0 >> 4) & 0x03
	aspectCode := (b0 >> 2) & 0x03
	resCode := (b1 >> 3) & 0x03

	attrs := VideoAttributes{}
	switch coding {
	case 0:
		attrs.Version = "Version 1"
	case 1:
		attrs.Version = "Version 2"
	}

	switch standardCode {
	case 0:
		attrs.Standard = "NTSC"
		attrs.FrameRate = 29.97
	case 1:
		attrs.Standard = "PAL"
		attrs.FrameRate = 25.0
	}

	switch aspectCode {
	case 0:
		attrs.AspectRatio = "4:3"
	case 3:
		attrs.AspectRatio = "16:9"
	}

	switch attrs.Standard {
	case "PAL":
		switch resCode {
		case 0:
			attrs.Width, attrs.Height = 720, 576
		case 1:
			attrs.Width, attrs.Height = 704, 576
		case 2:
			attrs.Width, attrs.Height = 352, 576
		case 3:
			attrs.Width, attrs.Height = 352, 288
		}
	case "NTSC":
		switch resCode {
		case 0:
			attrs.Width, attrs.Height = 720, 480
		case 1:
			attrs.Width, attrs.Height = 704, 480
		case 2:
			attrs.Width, attrs.Height = 352, 480
		case 3:
			attrs.Width, attrs.Height = 352, 240
		}
	}
	return attrs
}

// parseAudioAttrs decodes the IFO audio-attribute table (count byte at
// countOffset, 8-byte records starting at attrOffset).
// Grounded on internal/mediainfo/dvd.go:parseDVDAudioAttrs, extended with
// the per-coding stream-ID numbering from original_source/dvdfolder.py.
func parseAudioAttrs(data []byte, countOffset, attrOffset int) []AudioAttributes {
	if countOffset >= len(data) || attrOffset >= len(data) {
		return nil
	}
	count := int(data[countOffset])
	if count > 8 {
		count = 8
	}
	var perCodingIndex [8]int
	var attrs []AudioAttributes
	for i := 0; i < count; i++ {
		off := attrOffset + i*8
		if off+8 > len(data) {
			break
		}
		b0 := data[off]
		b1 := data[off+1]
		code := AudioCoding((b0 >> 5) & 0x07)
		channels := int(b1&0x07) + 1
		sampleCode := (b1 >> 4) & 0x03
		lang := strings.TrimSpace(string(data[off+2 : off+4]))
		codeExt := int(data[off+5])

		a := AudioAttributes{
			Coding:        code,
			Format:        audioFormatName(code),
			FormatInfo:    audioFormatInfo(code),
			Channels:      channels,
			SampleRate:    audioSampleRate(sampleCode),
			Language:      formatLanguageName(lang),
			LanguageCode:  normalizeLangCode(lang),
			CodeExtension: codeExt,
			StreamID:      audioStreamIDBase[code] + perCodingIndex[code],
		}
		perCodingIndex[code]++
		attrs = append(attrs, a)
	}
	return attrs
}

func audioFormatName(code AudioCoding) string {
	if int(code) < 0 || int(code) >= len(audioCodingNames) {
		return ""
	}
	name := audioCodingNames[code]
	if name == "<unknown>" {
		return ""
	}
	if name == "MPEG-2" {
		return "MPEG Audio"
	}
	if name == "MPEG-1" {
		return "MPEG Audio"
	}
	return name
}

func audioFormatInfo(code AudioCoding) string {
	switch code {
	case AudioCodingAC3:
		return "Audio Coding 3"
	case AudioCodingMPEG1, AudioCodingMPEG2Ext:
		return "MPEG Audio"
	case AudioCodingLPCM:
		return "Linear PCM"
	case AudioCodingDTS:
		return "Digital Theater Systems"
	default:
		return ""
	}
}

func audioSampleRate(code byte) float64 {
	switch code {
	case 0:
		return 48000
	case 1:
		return 96000
	default:
		return 0
	}
}

// formatLanguageName and normalizeLangCode are small, self-contained
// replacements for the teacher's language.go table lookups (which cover
// far more of MediaInfo's full ISO-639 rendering needs than this spec's
// two-letter DVD language codes require); kept minimal on purpose rather
// than importing the whole teacher language table.
func formatLanguageName(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if name, ok := isoLanguageNames[code]; ok {
		return name
	}
	return ""
}

func normalizeLangCode(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

var isoLanguageNames = map[string]string{
	"en": "English",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"it": "Italian",
	"ja": "Japanese",
	"nl": "Dutch",
	"pt": "Portuguese",
	"sv": "Swedish",
	"zh": "Chinese",
	"ko": "Korean",
	"ru": "Russian",
}

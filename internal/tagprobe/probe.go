// Package tagprobe inspects uploaded audio for embedded metadata. Drops
// created without a cover image fall back to the front-cover picture found
// inside the audio file's own tags, when there is one.
package tagprobe

import (
	"bytes"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacpicture"
	flac "github.com/go-flac/go-flac"

	"dropgate/internal/constants"
)

// ExtractCover returns embedded front-cover bytes and their MIME type from
// MP3 (ID3v2 APIC) or FLAC (PICTURE block) data. A nil image with nil error
// means the format is supported but carries no cover, or is not supported.
func ExtractCover(data []byte, ext string) ([]byte, string, error) {
	switch ext {
	case "mp3":
		return extractID3Cover(data)
	case "flac":
		return extractFLACCover(data)
	default:
		return nil, "", nil
	}
}

func extractID3Cover(data []byte) ([]byte, string, error) {
	tag, err := id3v2.ParseReader(bytes.NewReader(data), id3v2.Options{Parse: true})
	if err != nil {
		return nil, "", err
	}

	for _, framer := range tag.GetFrames(tag.CommonID("Attached picture")) {
		pic, ok := framer.(id3v2.PictureFrame)
		if !ok {
			continue
		}
		if pic.PictureType != id3v2.PTFrontCover && pic.PictureType != id3v2.PTOther {
			continue
		}
		if len(pic.Picture) == 0 {
			continue
		}
		mime := pic.MimeType
		if mime == "" {
			mime = constants.MimeTypeJPEG
		}
		return pic.Picture, mime, nil
	}
	return nil, "", nil
}

func extractFLACCover(data []byte) ([]byte, string, error) {
	f, err := flac.ParseBytes(bytes.NewReader(data))
	if err != nil {
		return nil, "", err
	}

	for _, block := range f.Meta {
		if block.Type != flac.Picture {
			continue
		}
		pic, err := flacpicture.ParseFromMetaDataBlock(*block)
		if err != nil {
			continue
		}
		if pic.PictureType != flacpicture.PictureTypeFrontCover || len(pic.ImageData) == 0 {
			continue
		}
		mime := pic.MIME
		if mime == "" {
			mime = constants.MimeTypeJPEG
		}
		return pic.ImageData, mime, nil
	}
	return nil, "", nil
}

// CoverExt maps a cover MIME type to a file extension, defaulting to jpg.
func CoverExt(mime string) string {
	switch mime {
	case "image/png":
		return "png"
	case "image/gif":
		return "gif"
	case "image/webp":
		return "webp"
	default:
		return "jpg"
	}
}

// AudioMime guesses the MIME type for an audio extension, defaulting to
// audio/mpeg.
func AudioMime(ext string) string {
	switch ext {
	case "flac":
		return constants.MimeTypeFLAC
	case "wav":
		return constants.MimeTypeWAV
	case "ogg":
		return constants.MimeTypeOGG
	case "aac":
		return constants.MimeTypeAAC
	case "m4a":
		return constants.MimeTypeMP4
	default:
		return constants.MimeTypeMP3
	}
}

package library

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bogem/id3v2/v2"
	"github.com/go-flac/flacvorbis"
	flac "github.com/go-flac/go-flac"

	"crate/internal/models"
)

// ReadMeta extracts tag metadata from an audio file. FLAC and MP3 carry
// full tags; other supported containers fall back to a title derived from
// the file name. Tag read failures degrade to the fallback rather than
// failing the file, matching how sparse real-world libraries are.
func ReadMeta(path string) (models.TrackMeta, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		if meta, err := readFLAC(path); err == nil {
			return meta, nil
		}
	case ".mp3":
		if meta, err := readMP3(path); err == nil {
			return meta, nil
		}
	}
	return fallbackMeta(path), nil
}

// fallbackMeta derives a minimal record from the file path alone.
func fallbackMeta(path string) models.TrackMeta {
	base := filepath.Base(path)
	title := strings.TrimSuffix(base, filepath.Ext(base))

	meta := models.TrackMeta{Path: path, Title: title}
	// "Artist - Title" file names are common enough to split.
	if artist, rest, ok := strings.Cut(title, " - "); ok {
		meta.Artist = strings.TrimSpace(artist)
		meta.Title = strings.TrimSpace(rest)
	}
	return meta
}

func readFLAC(path string) (models.TrackMeta, error) {
	f, err := flac.ParseFile(path)
	if err != nil {
		return models.TrackMeta{}, fmt.Errorf("failed to parse FLAC: %w", err)
	}

	meta := models.TrackMeta{Path: path}

	if info, err := f.GetStreamInfo(); err == nil && info.SampleRate > 0 {
		meta.Duration = int(info.SampleCount / int64(info.SampleRate))
	}

	for _, block := range f.Meta {
		if block.Type != flac.VorbisComment {
			continue
		}
		comment, err := flacvorbis.ParseFromMetaDataBlock(*block)
		if err != nil {
			continue
		}

		meta.Title = vorbisField(comment, flacvorbis.FIELD_TITLE)
		meta.Artist = vorbisField(comment, flacvorbis.FIELD_ARTIST)
		meta.Album = vorbisField(comment, flacvorbis.FIELD_ALBUM)
		meta.AlbumArtist = vorbisField(comment, "ALBUMARTIST")
		meta.ISRC = vorbisField(comment, "ISRC")
		meta.TrackNumber = parseTagNumber(vorbisField(comment, flacvorbis.FIELD_TRACKNUMBER))
		meta.DiscNumber = parseTagNumber(vorbisField(comment, "DISCNUMBER"))
		break
	}

	if meta.Title == "" {
		fallback := fallbackMeta(path)
		meta.Title = fallback.Title
		if meta.Artist == "" {
			meta.Artist = fallback.Artist
		}
	}

	return meta, nil
}

func vorbisField(comment *flacvorbis.MetaDataBlockVorbisComment, field string) string {
	values, err := comment.Get(field)
	if err != nil || len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}

func readMP3(path string) (models.TrackMeta, error) {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return models.TrackMeta{}, fmt.Errorf("failed to parse ID3: %w", err)
	}
	defer tag.Close()

	meta := models.TrackMeta{
		Path:        path,
		Title:       strings.TrimSpace(tag.Title()),
		Artist:      strings.TrimSpace(tag.Artist()),
		Album:       strings.TrimSpace(tag.Album()),
		AlbumArtist: strings.TrimSpace(tag.GetTextFrame("TPE2").Text),
		ISRC:        strings.TrimSpace(tag.GetTextFrame("TSRC").Text),
		TrackNumber: parseTagNumber(tag.GetTextFrame("TRCK").Text),
		DiscNumber:  parseTagNumber(tag.GetTextFrame("TPOS").Text),
	}

	if meta.Title == "" {
		fallback := fallbackMeta(path)
		meta.Title = fallback.Title
		if meta.Artist == "" {
			meta.Artist = fallback.Artist
		}
	}

	return meta, nil
}

// parseTagNumber reads the leading integer of "3" or "3/12" style tag values.
func parseTagNumber(s string) int {
	value, _, _ := strings.Cut(strings.TrimSpace(s), "/")
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Package texpack reads and writes baked sprite packs. A pack bundles the
// procedural gradients the renderer would otherwise generate at startup, so
// low-end machines can skip the generation pass entirely.
package texpack

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/color"
	"io"
	"os"

	"github.com/mauserzjeh/dxt"
	"github.com/pierrec/lz4/v4"

	"speed-of-light/internal/utils"
)

// Magic identifies a sprite pack file.
const Magic = "SOLTEX01"

// Pixel payload formats. RawRGBA and LZ4RGBA are what the writer emits;
// DXT1/DXT5 entries come from external bake tools and are decode-only.
const (
	FormatRawRGBA uint32 = iota
	FormatLZ4RGBA
	FormatDXT1
	FormatDXT5
)

// Entry is one decoded sprite: tightly packed RGBA, stride Width*4.
type Entry struct {
	Name   string
	Width  int
	Height int
	Pix    []color.RGBA
}

func readPackString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > 4096 {
		return "", fmt.Errorf("texpack: entry name of %d bytes", size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writePackString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// Load opens a pack file and decodes every entry.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a pack from r and decompresses each payload into RGBA.
func Decode(r io.Reader) ([]Entry, error) {
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, err
	}
	if string(magic) != Magic {
		return nil, fmt.Errorf("texpack: bad magic %q", magic)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, err
	}
	utils.Debug("Texpack: %d entries", count)

	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		name, err := readPackString(r)
		if err != nil {
			return nil, err
		}
		var hdr struct {
			Width, Height  uint32
			Format         uint32
			StoredSize     uint32
			UncompressedSz uint32
		}
		if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
			return nil, err
		}
		data := make([]byte, hdr.StoredSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, err
		}

		raw, err := decodePayload(data, hdr.Format, hdr.Width, hdr.Height, hdr.UncompressedSz)
		if err != nil {
			return nil, fmt.Errorf("texpack: entry %q: %w", name, err)
		}
		if uint32(len(raw)) != hdr.Width*hdr.Height*4 {
			return nil, fmt.Errorf("texpack: entry %q decoded to %d bytes, want %d",
				name, len(raw), hdr.Width*hdr.Height*4)
		}
		utils.Debug("Texpack: decoded %s %dx%d format=%d", name, hdr.Width, hdr.Height, hdr.Format)
		entries = append(entries, Entry{
			Name:   name,
			Width:  int(hdr.Width),
			Height: int(hdr.Height),
			Pix:    pixFromBytes(raw),
		})
	}
	return entries, nil
}

func decodePayload(data []byte, format, w, h, rawSize uint32) ([]byte, error) {
	switch format {
	case FormatRawRGBA:
		return data, nil
	case FormatLZ4RGBA:
		out := make([]byte, rawSize)
		if _, err := lz4.UncompressBlock(data, out); err != nil {
			return nil, err
		}
		return out, nil
	case FormatDXT1:
		return dxt.DecodeDXT1(data, uint(w), uint(h))
	case FormatDXT5:
		return dxt.DecodeDXT5(data, uint(w), uint(h))
	default:
		return nil, fmt.Errorf("unsupported format %d", format)
	}
}

// Write serializes entries to path, lz4-compressing each payload. Payloads
// that do not shrink are stored raw.
func Write(path string, entries []Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := Encode(f, entries); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// Encode writes the pack to w.
func Encode(w io.Writer, entries []Entry) error {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	if err := binary.Write(&buf, binary.LittleEndian, uint32(len(entries))); err != nil {
		return err
	}

	for _, e := range entries {
		raw := bytesFromPix(e.Pix)
		if len(raw) != e.Width*e.Height*4 {
			return fmt.Errorf("texpack: entry %q has %d pixels, want %dx%d",
				e.Name, len(e.Pix), e.Width, e.Height)
		}

		format := FormatLZ4RGBA
		stored := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, stored, nil)
		if err != nil {
			return err
		}
		if n == 0 || n >= len(raw) {
			// incompressible, keep it raw
			format = FormatRawRGBA
			stored = raw
		} else {
			stored = stored[:n]
		}

		if err := writePackString(&buf, e.Name); err != nil {
			return err
		}
		hdr := struct {
			Width, Height  uint32
			Format         uint32
			StoredSize     uint32
			UncompressedSz uint32
		}{uint32(e.Width), uint32(e.Height), format, uint32(len(stored)), uint32(len(raw))}
		if err := binary.Write(&buf, binary.LittleEndian, &hdr); err != nil {
			return err
		}
		buf.Write(stored)
		utils.Debug("Texpack: wrote %s %dx%d format=%d (%d -> %d bytes)",
			e.Name, e.Width, e.Height, format, len(raw), len(stored))
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func pixFromBytes(raw []byte) []color.RGBA {
	pix := make([]color.RGBA, len(raw)/4)
	for i := range pix {
		pix[i] = color.RGBA{raw[i*4], raw[i*4+1], raw[i*4+2], raw[i*4+3]}
	}
	return pix
}

func bytesFromPix(pix []color.RGBA) []byte {
	raw := make([]byte, len(pix)*4)
	for i, p := range pix {
		raw[i*4] = p.R
		raw[i*4+1] = p.G
		raw[i*4+2] = p.B
		raw[i*4+3] = p.A
	}
	return raw
}

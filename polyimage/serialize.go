package polyimage

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/jvlmdr/go-cv/rimg64"
)

// Identifies streams written by Serialize.
const (
	formatTag     = "poly-feat.polyimage"
	formatVersion = 1
)

// Stream contents, in fixed order.
type message struct {
	Format     string
	Version    int
	Order      int
	WindowSize int
	Downsample int
	Nr, Nc     int
	Elems      []float64
}

// Serialize writes the configuration and the loaded descriptor grid,
// if any, to w.  Deserialize reconstructs an equivalent extractor.
func (p *PolyImage) Serialize(w io.Writer) error {
	msg := message{
		Format:     formatTag,
		Version:    formatVersion,
		Order:      p.order,
		WindowSize: p.windowSize,
		Downsample: p.downsample,
	}
	if p.grid != nil {
		msg.Nr = p.grid.Height
		msg.Nc = p.grid.Width
		msg.Elems = p.grid.Elems
	}
	if err := gob.NewEncoder(w).Encode(&msg); err != nil {
		return fmt.Errorf("encode poly image: %v", err)
	}
	return nil
}

// Deserialize replaces the state of p with that read from r.
// A stream not written by Serialize is reported as an error.  After an
// error the previous state of p may have been partially replaced and
// the caller should treat p as cleared.
func (p *PolyImage) Deserialize(r io.Reader) error {
	var msg message
	if err := gob.NewDecoder(r).Decode(&msg); err != nil {
		return fmt.Errorf("decode poly image: %v", err)
	}
	if msg.Format != formatTag {
		return fmt.Errorf("not a poly image stream: format %q", msg.Format)
	}
	if msg.Version != formatVersion {
		return fmt.Errorf("unknown format version: %d", msg.Version)
	}
	if msg.Downsample < 1 {
		return fmt.Errorf("downsample must be at least 1: %d", msg.Downsample)
	}
	if err := p.Setup(msg.Order, msg.WindowSize); err != nil {
		return err
	}
	p.downsample = msg.Downsample
	if msg.Nr == 0 && msg.Nc == 0 {
		return nil
	}
	dims := p.NumDimensions()
	if msg.Nr <= 0 || msg.Nc <= 0 || len(msg.Elems) != msg.Nr*msg.Nc*dims {
		return fmt.Errorf(
			"descriptor grid %dx%dx%d requires %d elements: have %d",
			msg.Nr, msg.Nc, dims, msg.Nr*msg.Nc*dims, len(msg.Elems),
		)
	}
	p.grid = &rimg64.Multi{
		Elems:    msg.Elems,
		Width:    msg.Nc,
		Height:   msg.Nr,
		Channels: dims,
	}
	return nil
}

// Package mp4probe inspects encoded MP4 files with mp4ff.
package mp4probe

import (
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/sweepcast/pkg/ports"
)

// Probe implements ports.OutputProbe for MP4 containers.
type Probe struct{}

// New creates a new Probe.
func New() *Probe {
	return &Probe{}
}

// Probe reads the video track's frame count and display size.
func (p *Probe) Probe(path string) (ports.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return p.ProbeReader(f)
}

// ProbeReader is Probe for an already opened file.
func (p *Probe) ProbeReader(r io.ReadSeeker) (ports.VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(r)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if mp4File.IsFragmented() && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return ports.VideoInfo{}, fmt.Errorf("no moov box")
	}

	var trak *mp4.TrakBox
	for _, t := range moov.Traks {
		if t.Mdia != nil && t.Mdia.Hdlr != nil && t.Mdia.Hdlr.HandlerType == "vide" {
			trak = t
			break
		}
	}
	if trak == nil {
		return ports.VideoInfo{}, fmt.Errorf("no video track found")
	}

	info := ports.VideoInfo{}
	if trak.Tkhd != nil {
		// 16.16 fixed point
		info.Width = int(trak.Tkhd.Width >> 16)
		info.Height = int(trak.Tkhd.Height >> 16)
	}

	if mp4File.IsFragmented() {
		for _, seg := range mp4File.Segments {
			for _, frag := range seg.Fragments {
				if frag.Moof == nil {
					continue
				}
				for _, traf := range frag.Moof.Trafs {
					if traf.Tfhd == nil || traf.Tfhd.TrackID != trak.Tkhd.TrackID {
						continue
					}
					for _, trun := range traf.Truns {
						info.Frames += int(trun.SampleCount())
					}
				}
			}
		}
		return info, nil
	}

	if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsz != nil {
		info.Frames = int(trak.Mdia.Minf.Stbl.Stsz.SampleNumber)
	}
	return info, nil
}

var _ ports.OutputProbe = (*Probe)(nil)

// Package assemble builds the encoder invocation for a captured sequence.
//
// The invocation is first modelled as a FilterGraph (pad stage, optional
// split stage, one branch per output format) and only then serialized to
// ffmpeg argument syntax.
package assemble

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/user/sweepcast/pkg/pipeline"
)

// DefaultFPS is the frame rate used when the job leaves it unset.
const DefaultFPS = 30.0

// Policy is the per-format encoding policy.
type Policy struct {
	Codec       string
	PixelFormat string
	Extra       []string // container or codec specific flags
}

// Policies holds the encoding policy for every known format tag.
var Policies = map[pipeline.FormatTag]Policy{
	pipeline.FormatMP4: {
		Codec:       "libx264",
		PixelFormat: "yuv420p",
		Extra:       []string{"-movflags", "+faststart"},
	},
	pipeline.FormatPNG: {
		Codec:       "apng",
		PixelFormat: "rgba",
		Extra:       []string{"-plays", "0", "-f", "apng"},
	},
	pipeline.FormatGIF: {
		Codec:       "gif",
		PixelFormat: "rgb8",
		Extra:       []string{"-loop", "0"},
	},
	pipeline.FormatWebM: {
		Codec:       "libvpx-vp9",
		PixelFormat: "yuva420p",
		Extra:       []string{"-b:v", "2M"},
	},
}

// PadStage places each frame at the top-left corner of a fixed canvas.
// The pad expression is re-evaluated per frame since frame sizes vary.
type PadStage struct {
	Width  int
	Height int
	Color  string
}

// String renders the pad filter.
func (p PadStage) String() string {
	return fmt.Sprintf("pad=w=%d:h=%d:x=0:y=0:color=%s:eval=frame", p.Width, p.Height, p.Color)
}

// SplitStage duplicates the padded stream into N branches.
type SplitStage struct {
	Outputs int
}

// String renders the split filter.
func (s SplitStage) String() string {
	return fmt.Sprintf("split=%d", s.Outputs)
}

// Branch is one labelled output of the graph.
type Branch struct {
	Label  string
	Format pipeline.FormatTag
	Policy Policy
	Path   string
}

// FilterGraph is the typed form of the encoder invocation.
type FilterGraph struct {
	Input    string
	Pad      PadStage
	Split    *SplitStage // nil for a single output
	Branches []Branch
}

// BuildGraph validates the job and constructs its filter graph.
// Branches follow the sorted order of the format tags.
func BuildGraph(job pipeline.EncoderJob) (*FilterGraph, error) {
	if len(job.Outputs) == 0 {
		return nil, fmt.Errorf("%w: no output formats requested", pipeline.ErrAssembly)
	}
	if job.CanvasWidth <= 0 || job.CanvasHeight <= 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d is empty", pipeline.ErrAssembly, job.CanvasWidth, job.CanvasHeight)
	}
	if job.CanvasWidth%2 != 0 || job.CanvasHeight%2 != 0 {
		return nil, fmt.Errorf("%w: canvas %dx%d must have even dimensions", pipeline.ErrAssembly, job.CanvasWidth, job.CanvasHeight)
	}
	if job.InputPattern == "" {
		return nil, fmt.Errorf("%w: input pattern is empty", pipeline.ErrAssembly)
	}

	g := &FilterGraph{
		Input: "0:v",
		Pad:   PadStage{Width: job.CanvasWidth, Height: job.CanvasHeight, Color: "black@0"},
	}

	tags := job.Outputs.Tags()
	if len(tags) > 1 {
		g.Split = &SplitStage{Outputs: len(tags)}
	}

	for i, tag := range tags {
		policy, ok := Policies[tag]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported output format %q", pipeline.ErrAssembly, tag)
		}
		path := job.Outputs[tag]
		if path == "" {
			return nil, fmt.Errorf("%w: no destination for %s output", pipeline.ErrAssembly, tag)
		}
		g.Branches = append(g.Branches, Branch{
			Label:  "v" + strconv.Itoa(i),
			Format: tag,
			Policy: policy,
			Path:   path,
		})
	}

	return g, nil
}

// Filter renders the -filter_complex expression.
func (g *FilterGraph) Filter() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s]%s", g.Input, g.Pad)
	if g.Split != nil {
		fmt.Fprintf(&b, ",%s", g.Split)
	}
	for _, br := range g.Branches {
		fmt.Fprintf(&b, "[%s]", br.Label)
	}
	return b.String()
}

// Args serializes the graph and the job's input clause to ffmpeg arguments.
// Progress is requested as key=value lines on stdout.
func (g *FilterGraph) Args(job pipeline.EncoderJob) []string {
	fps := job.FPS
	if fps <= 0 {
		fps = DefaultFPS
	}

	args := []string{
		"-hide_banner",
		"-y",
		"-nostats",
		"-progress", "pipe:1",
		"-framerate", strconv.FormatFloat(fps, 'f', -1, 64),
		"-start_number", strconv.Itoa(job.StartNumber),
		"-i", job.InputPattern,
		"-filter_complex", g.Filter(),
	}

	for _, br := range g.Branches {
		args = append(args,
			"-map", "["+br.Label+"]",
			"-c:v", br.Policy.Codec,
			"-pix_fmt", br.Policy.PixelFormat,
		)
		args = append(args, br.Policy.Extra...)
		args = append(args, br.Path)
	}

	return args
}

// BuildArgs builds the full argument list for a job.
func BuildArgs(job pipeline.EncoderJob) ([]string, error) {
	g, err := BuildGraph(job)
	if err != nil {
		return nil, err
	}
	return g.Args(job), nil
}

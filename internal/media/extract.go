package media

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/nguyentantai21042004/echoscribe/pkg/executor"
)

// unknownChunkSize is written by ffmpeg when the output is not seekable.
const unknownChunkSize = 0xFFFFFFFF

type probeResult struct {
	Streams []struct {
		Index     int    `json:"index"`
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Extract converts the first audio stream of videoPath into a WAV file at audioPath.
func (e *implExtractor) Extract(ctx context.Context, videoPath, audioPath string) error {
	e.logger.Info(ctx, "Probing media: %s", videoPath)

	if err := e.requireAudio(ctx, videoPath); err != nil {
		return err
	}

	args := e.buildArgs(videoPath, audioPath)
	e.logger.Debug(ctx, "ffmpeg args: %v", args)

	if _, err := e.executor.Execute(ctx, e.opts.BinaryPath, args...); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg extract audio: %w", ctx.Err())
		}
		return fmt.Errorf("%w: ffmpeg extract audio: %v (%s)", ErrUnsupportedMedia, err, executor.Stderr(err))
	}

	pcm, err := pcmDataSize(audioPath)
	if err != nil {
		return fmt.Errorf("%w: read extracted audio: %v", ErrUnsupportedMedia, err)
	}
	if pcm == 0 {
		return fmt.Errorf("%w: audio track is empty", ErrUnsupportedMedia)
	}

	e.logger.Info(ctx, "Audio extracted: %s (%d bytes of PCM)", audioPath, pcm)
	return nil
}

func (e *implExtractor) ffprobe(ctx context.Context, path string) (string, error) {
	out, err := e.executor.Execute(ctx, e.opts.ProbePath,
		"-v", "error", "-show_format", "-show_streams", "-of", "json", path)
	if err != nil {
		return "", err
	}
	return out, nil
}

func (e *implExtractor) requireAudio(ctx context.Context, videoPath string) error {
	out, err := e.probe(ctx, videoPath)
	if err != nil && ctx.Err() != nil {
		return fmt.Errorf("probe %s: %w", videoPath, ctx.Err())
	}
	if err != nil {
		return fmt.Errorf("%w: probe %s: %v", ErrUnsupportedMedia, videoPath, err)
	}

	var res probeResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		return fmt.Errorf("%w: parse probe output: %v", ErrUnsupportedMedia, err)
	}

	for _, s := range res.Streams {
		if s.CodecType == "audio" {
			return nil
		}
	}
	return fmt.Errorf("%w: %s has no audio stream", ErrUnsupportedMedia, videoPath)
}

// buildArgs renders the ffmpeg command line:
// first audio stream only, resampled to PCM s16le at the configured rate and channel count.
// Metadata is dropped so the WAV holds just the fmt and data chunks.
func (e *implExtractor) buildArgs(videoPath, audioPath string) []string {
	return ffmpeg.Input(videoPath).
		Output(audioPath, ffmpeg.KwArgs{
			"map":          "0:a:0",
			"ac":           strconv.Itoa(e.opts.Channels),
			"ar":           strconv.Itoa(e.opts.SampleRate),
			"c:a":          "pcm_s16le",
			"threads":      "0",
			"map_metadata": "-1",
			"fflags":       "+bitexact",
		}).
		OverWriteOutput().
		GetArgs()
}

// pcmDataSize walks the RIFF chunks of a WAV file and returns the size of its
// data chunk. A size of 0xFFFFFFFF is taken to mean "up to end of file".
func pcmDataSize(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}

	var riff [12]byte
	if _, err := io.ReadFull(f, riff[:]); err != nil {
		return 0, fmt.Errorf("short RIFF header: %w", err)
	}
	if string(riff[0:4]) != "RIFF" || string(riff[8:12]) != "WAVE" {
		return 0, errors.New("not a RIFF/WAVE file")
	}

	offset := int64(len(riff))
	var hdr [8]byte
	for {
		if _, err := io.ReadFull(f, hdr[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return 0, errors.New("no data chunk")
			}
			return 0, fmt.Errorf("read chunk header: %w", err)
		}
		offset += int64(len(hdr))

		id := string(hdr[0:4])
		size := int64(binary.LittleEndian.Uint32(hdr[4:8]))
		remaining := info.Size() - offset

		if id == "data" {
			if size == unknownChunkSize || size > remaining {
				size = remaining
			}
			return size, nil
		}

		// chunks are word aligned
		skip := size + size&1
		if skip > remaining {
			return 0, fmt.Errorf("chunk %q overruns file", id)
		}
		if _, err := f.Seek(skip, io.SeekCurrent); err != nil {
			return 0, err
		}
		offset += skip
	}
}

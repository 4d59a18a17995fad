package artifact

// Options configures where a Store places its files.
type Options struct {
	TempDir     string
	OutputDir   string
	SubtitleExt string
}

// New creates a filesystem-backed Store.
func New(opts Options) Store {
	if opts.SubtitleExt == "" {
		opts.SubtitleExt = "srt"
	}
	return &implStore{opts: opts}
}

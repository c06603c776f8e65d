package whisperx

// Config holds the transcription settings taken from the [transcription]
// section of the configuration file.
type Config struct {
	Model       string
	Threads     int
	Language    string // empty lets WhisperX detect the language
	CUDAEnabled bool
	VADMethod   string // "silero" or "pyannote"
	HFToken     string // required by pyannote only
}

// DefaultModel is used when Config.Model is blank.
const DefaultModel = "large-v3-turbo"

const (
	vadSilero   = "silero"
	vadPyannote = "pyannote"

	pypiIndex = "https://pypi.org/simple"
	cudaIndex = "https://download.pytorch.org/whl/cu128"

	// jsonOutput is the only output format Transcribe reads back.
	jsonOutput = "json"
)

// decoding is the fixed set of decoder flags passed on every run. Sentence
// resolution keeps chapter headings in a segment of their own more often
// than word-level chunking does.
var decoding = [][2]string{
	{"--batch_size", "4"},
	{"--segment_resolution", "sentence"},
	{"--chunk_size", "15"},
	{"--vad_onset", "0.08"},
	{"--vad_offset", "0.07"},
	{"--beam_size", "10"},
	{"--best_of", "10"},
	{"--temperature", "0.0"},
	{"--patience", "1.0"},
}

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel
}

func (c Config) vadMethod() string {
	if c.VADMethod != "" {
		return c.VADMethod
	}
	return vadSilero
}

// deviceFlags selects CUDA or a float32 CPU run.
func (c Config) deviceFlags() []string {
	if c.CUDAEnabled {
		return []string{"--device", "cuda"}
	}
	return []string{"--device", "cpu", "--compute_type", "float32"}
}

// indexFlags points uvx at the package index that carries the matching
// torch build.
func (c Config) indexFlags() []string {
	if c.CUDAEnabled {
		return []string{"--index-url", cudaIndex, "--extra-index-url", pypiIndex}
	}
	return []string{"--index-url", pypiIndex}
}

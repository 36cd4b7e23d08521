package splitter

import (
	"stem-split-worker/src/lib/cerr"
)

type SplitType string

const (
	InvalidSplitType  SplitType = ""
	TwoStemSplitType  SplitType = "2stems"
	FourStemSplitType SplitType = "4stems"
	FiveStemSplitType SplitType = "5stems"
)

func ConvertToSplitType(val string) (SplitType, error) {
	switch val {
	case string(TwoStemSplitType):
		return TwoStemSplitType, nil
	case string(FourStemSplitType):
		return FourStemSplitType, nil
	case string(FiveStemSplitType):
		return FiveStemSplitType, nil
	default:
		return InvalidSplitType, cerr.Field("split_type", val).Error("Value does not match any split type")
	}
}

type Engine string

const (
	InvalidEngine  Engine = ""
	SpleeterEngine Engine = "spleeter"
	DemucsEngine   Engine = "demucs"
)

func ConvertToEngine(val string) (Engine, error) {
	switch val {
	case string(SpleeterEngine):
		return SpleeterEngine, nil
	case string(DemucsEngine):
		return DemucsEngine, nil
	default:
		return InvalidEngine, cerr.Field("engine", val).Error("Value does not match any separation engine")
	}
}

type OutputFormat string

const (
	InvalidOutputFormat OutputFormat = ""
	WavOutputFormat     OutputFormat = "wav"
	MP3OutputFormat     OutputFormat = "mp3"
)

func ConvertToOutputFormat(val string) (OutputFormat, error) {
	switch val {
	case string(WavOutputFormat):
		return WavOutputFormat, nil
	case string(MP3OutputFormat):
		return MP3OutputFormat, nil
	default:
		return InvalidOutputFormat, cerr.Field("output_format", val).Error("Value does not match any output format")
	}
}

func (o OutputFormat) Extension() string {
	return string(o)
}

func (o OutputFormat) ContentType() string {
	switch o {
	case MP3OutputFormat:
		return "audio/mpeg"
	default:
		return "audio/wav"
	}
}

var spleeterStems = map[SplitType][]string{
	TwoStemSplitType:  {"vocals", "accompaniment"},
	FourStemSplitType: {"vocals", "drums", "bass", "other"},
	FiveStemSplitType: {"vocals", "drums", "bass", "piano", "other"},
}

var demucsStems = map[SplitType][]string{
	TwoStemSplitType:  {"vocals", "no_vocals"},
	FourStemSplitType: {"vocals", "drums", "bass", "other"},
}

// StemNames lists the stems an engine produces for a split type, in upload order.
func StemNames(engine Engine, splitType SplitType) ([]string, error) {
	var stemsBySplitType map[SplitType][]string

	switch engine {
	case SpleeterEngine:
		stemsBySplitType = spleeterStems
	case DemucsEngine:
		stemsBySplitType = demucsStems
	default:
		return nil, cerr.Field("engine", engine).Error("Unsupported separation engine")
	}

	stems, ok := stemsBySplitType[splitType]
	if !ok {
		return nil, cerr.Fields(cerr.F{
			"engine":     engine,
			"split_type": splitType,
		}).Error("Split type is not supported by the separation engine")
	}

	return append([]string{}, stems...), nil
}

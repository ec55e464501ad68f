package model

type FFProbeOutput struct {
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		SampleRate int    `json:"sample_rate,string"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
	Format struct {
		FormatName string  `json:"format_name"`
		Duration   float64 `json:"duration,string"`
	} `json:"format"`
}

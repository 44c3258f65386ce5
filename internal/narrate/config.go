package narrate

// DefaultVoice is the Azure neural voice used for read-aloud.
// Full list: https://learn.microsoft.com/en-us/azure/ai-services/speech-service/language-support
const DefaultVoice = "en-US-AvaNeural"

// DefaultAudioFormat is requested from Azure and expected by the player.
const DefaultAudioFormat = "riff-24khz-16bit-mono-pcm"

// Audio parameters matching DefaultAudioFormat.
const (
	SampleRate   = 24000
	ChannelCount = 1
)

// Env var names for Azure Speech credentials.
const (
	EnvAzureSpeechKey    = "AZURE_SPEECH_KEY"
	EnvAzureSpeechRegion = "AZURE_SPEECH_REGION"
)

// DefaultChunkSize is the approximate max characters per synthesis request.
const DefaultChunkSize = 200

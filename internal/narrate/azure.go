package narrate

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/recipex/internal/logger"
)

// AzureOption configures the Azure TTS client.
type AzureOption func(*AzureClient)

// WithVoice sets the TTS voice.
func WithVoice(voice string) AzureOption {
	return func(c *AzureClient) {
		c.voice = voice
	}
}

// WithEndpoint overrides the synthesis URL (tests point it at httptest).
func WithEndpoint(url string) AzureOption {
	return func(c *AzureClient) {
		c.endpoint = url
	}
}

// WithHTTPTimeout sets the HTTP client timeout for TTS requests.
func WithHTTPTimeout(d time.Duration) AzureOption {
	return func(c *AzureClient) {
		c.httpClient.Timeout = d
	}
}

// AzureClient turns text into WAV audio via Azure Cognitive Services.
type AzureClient struct {
	subscriptionKey string
	endpoint        string
	voice           string
	format          string
	httpClient      *http.Client
	log             *logger.Logger
}

// NewAzureClient creates an Azure TTS client for region.
func NewAzureClient(key, region string, log *logger.Logger, opts ...AzureOption) *AzureClient {
	c := &AzureClient{
		subscriptionKey: key,
		endpoint:        fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region),
		voice:           DefaultVoice,
		format:          DefaultAudioFormat,
		httpClient:      &http.Client{Timeout: 30 * time.Second},
		log:             log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Voice returns the configured voice name.
func (c *AzureClient) Voice() string { return c.voice }

// Synthesize converts text to WAV bytes.
func (c *AzureClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	c.log.Debug("synthesizing %d chars with voice %s", len(text), c.voice)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(c.buildSSML(text)))
	if err != nil {
		return nil, fmt.Errorf("narrate: creating request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.subscriptionKey)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", c.format)
	req.Header.Set("User-Agent", "recipex/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("narrate: tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("narrate: azure tts status %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("narrate: reading audio: %w", err)
	}
	c.log.Debug("got %d bytes of audio", len(audio))
	return audio, nil
}

// buildSSML wraps text in a voice element. Recipe text routinely carries
// '&' and '<', so it is escaped.
func (c *AzureClient) buildSSML(text string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<speak version='1.0' xml:lang='en-US'><voice xml:lang='en-US' name='%s'>`, c.voice)
	_ = xml.EscapeText(&b, []byte(text))
	b.WriteString(`</voice></speak>`)
	return b.String()
}

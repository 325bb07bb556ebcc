package speech

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sandevgo/anjali/internal/config"
	"github.com/sandevgo/anjali/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(url string) *Client {
	return NewClient(&config.SpeechConfig{
		Enabled:  true,
		BaseURL:  url,
		APIKey:   "key",
		STTModel: "whisper-1",
		TTSModel: "tts-1",
		Voice:    "nova",
		Language: "en",
		Timeout:  time.Second,
	})
}

func TestTranscribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "en", r.FormValue("language"))

		f, hdr, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		data, _ := io.ReadAll(f)
		assert.Equal(t, "voice.ogg", hdr.Filename)
		assert.Equal(t, []byte("OggS..."), data)

		w.Write([]byte(`{"text":" hello there "}`))
	}))
	defer srv.Close()

	text, err := newClient(srv.URL).Transcribe(context.Background(), []byte("OggS..."), "voice.ogg")
	require.NoError(t, err)
	assert.Equal(t, "hello there", text)
}

func TestTranscribe_NoSpeech(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":""}`))
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Transcribe(context.Background(), []byte("x"), "")
	assert.ErrorIs(t, err, core.ErrNoSpeech)

	_, err = newClient(srv.URL).Transcribe(context.Background(), nil, "")
	assert.ErrorIs(t, err, core.ErrNoSpeech)
}

func TestTranscribe_ServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newClient(srv.URL).Transcribe(context.Background(), []byte("x"), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, core.ErrNoSpeech)
}

func TestSynthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/speech", r.URL.Path)
		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Good morning", payload["input"])
		assert.Equal(t, "nova", payload["voice"])
		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write([]byte("ID3mp3"))
	}))
	defer srv.Close()

	audio, err := newClient(srv.URL).Synthesize(context.Background(), "Good morning")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3mp3"), audio)
}

func TestDisabled(t *testing.T) {
	c := NewClient(&config.SpeechConfig{})
	assert.False(t, c.Enabled())

	_, err := c.Transcribe(context.Background(), []byte("x"), "")
	assert.ErrorIs(t, err, ErrDisabled)
	_, err = c.Synthesize(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrDisabled)
}

package httpapi

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
	"github.com/sandevgo/anjali/internal/core"
	"github.com/sandevgo/anjali/internal/service/companion"
)

type handlers struct {
	deps Deps
}

type chatRequest struct {
	Text        string `json:"text"`
	ImageBase64 string `json:"image_base64,omitempty"`
	MimeType    string `json:"mime_type,omitempty"`
}

type voiceResponse struct {
	Transcript string `json:"transcript"`
	companion.Reply
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		hlog.FromRequest(r).Error().Err(err).Msg("request failed")
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

func limitParam(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": core.AppVersion})
}

func (h *handlers) chat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	var image *companion.Image
	if req.ImageBase64 != "" {
		data, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, errors.New("image_base64 is not valid base64"))
			return
		}
		mime := req.MimeType
		if mime == "" {
			mime = http.DetectContentType(data)
		}
		image = &companion.Image{Data: data, MimeType: mime}
	}

	h.turn(w, r, req.Text, image, "")
}

func (h *handlers) turn(w http.ResponseWriter, r *http.Request, text string, image *companion.Image, transcript string) {
	reply, err := h.deps.Companion.Process(r.Context(), text, image)
	if errors.Is(err, core.ErrEmptyInput) {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	if transcript != "" {
		writeJSON(w, http.StatusOK, voiceResponse{Transcript: transcript, Reply: reply})
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (h *handlers) voice(w http.ResponseWriter, r *http.Request) {
	audio, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	filename := "audio.wav"
	if ct := r.Header.Get("Content-Type"); strings.Contains(ct, "ogg") {
		filename = "audio.ogg"
	} else if strings.Contains(ct, "mpeg") {
		filename = "audio.mp3"
	}

	text, notice, err := h.deps.Voice.Listen(r.Context(), audio, filename)
	if errors.Is(err, core.ErrNoSpeech) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: notice})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: notice})
		return
	}

	h.turn(w, r, text, nil, text)
}

func (h *handlers) speech(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	audio, err := h.deps.Voice.Say(r.Context(), req.Text)
	if errors.Is(err, core.ErrEmptyInput) {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: companion.NoticeVoiceFailed})
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(audio)
}

func (h *handlers) briefing(w http.ResponseWriter, r *http.Request) {
	text, err := h.deps.Briefing.Deliver(r.Context(), h.deps.Session.Mood())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"briefing": text})
}

func (h *handlers) relationship(w http.ResponseWriter, r *http.Request) {
	s, err := h.deps.Status.Status(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *handlers) conversations(w http.ResponseWriter, r *http.Request) {
	turns, err := h.deps.Conversations.RecentTurns(r.Context(), limitParam(r, 50))
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if turns == nil {
		turns = []core.ConversationTurn{}
	}
	writeJSON(w, http.StatusOK, turns)
}

func (h *handlers) listMemories(w http.ResponseWriter, r *http.Request) {
	records, err := h.deps.Memory.List(r.Context(), limitParam(r, 0))
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if records == nil {
		records = []core.MemoryRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (h *handlers) forgetMemory(w http.ResponseWriter, r *http.Request) {
	err := h.deps.Memory.Forget(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) clearMemories(w http.ResponseWriter, r *http.Request) {
	if err := h.deps.Memory.ClearAll(r.Context()); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handlers) listFacts(w http.ResponseWriter, r *http.Request) {
	facts, err := h.deps.Facts.ListFacts(r.Context())
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	if facts == nil {
		facts = []core.Fact{}
	}
	writeJSON(w, http.StatusOK, facts)
}

func (h *handlers) getFact(w http.ResponseWriter, r *http.Request) {
	f, err := h.deps.Facts.GetFact(r.Context(), chi.URLParam(r, "key"))
	if errors.Is(err, core.ErrNotFound) {
		writeError(w, r, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

func (h *handlers) putFact(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	key := chi.URLParam(r, "key")
	if err := h.deps.Facts.UpsertFact(r.Context(), key, req.Value); err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, core.Fact{Key: key, Value: req.Value})
}

func (h *handlers) getMood(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"mood": h.deps.Session.Mood(), "moods": core.Moods})
}

func (h *handlers) putMood(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mood string `json:"mood"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	mood, err := h.deps.Session.SetMood(req.Mood)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]core.Mood{"mood": mood})
}

package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/osr/pkg/compress"
	"github.com/ssargent/osr/pkg/replay"
)

// Server holds the API server state
type Server struct {
	archive ReplayArchive
	codec   *replay.Codec
	config  ServerConfig
	metrics *Metrics
	log     zerolog.Logger
}

// NewServer creates a new API server
func NewServer(archive ReplayArchive, codec *replay.Codec, config ServerConfig, metrics *Metrics, log zerolog.Logger) *Server {
	if codec == nil {
		codec = replay.NewCodec(replay.DefaultOptions())
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Server{
		archive: archive,
		codec:   codec,
		config:  config,
		metrics: metrics,
		log:     log,
	}
}

// readBody reads the request body up to the configured limit
func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read request body: %w", err)
	}
	s.metrics.RecordReplayBytes("in", len(body))
	return body, nil
}

// decode runs the codec and records its metrics
func (s *Server) decode(data []byte) (*replay.Replay, error) {
	start := time.Now()
	rep, err := s.codec.Decode(data)
	s.metrics.RecordCodecOperation("decode", err == nil, time.Since(start))
	if err != nil {
		s.log.Debug().Err(err).Int("bytes", len(data)).Msg("decode failed")
		return nil, err
	}
	s.metrics.RecordReplayEvents(rep.Mode.String(), len(rep.Events))
	return rep, nil
}

func boolParam(r *http.Request, name string, fallback bool) (bool, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter %q", name, v)
	}
	return b, nil
}

func idParam(r *http.Request) (ksuid.KSUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := ksuid.Parse(raw)
	if err != nil {
		return ksuid.Nil, fmt.Errorf("invalid replay id %q", raw)
	}
	return id, nil
}

func decodeResponse(rep *replay.Replay, withEvents bool) DecodeResponse {
	resp := DecodeResponse{Summary: rep.Summarize(), LifeBar: rep.LifeBar}
	if withEvents {
		resp.Events = rep.Events
		resp.Padding = rep.Padding
	}
	return resp
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleDecode godoc
//
//	@Summary		Decode a replay
//	@Description	Decode an uploaded .osr file. Use ?events=true to include the input events.
//	@Tags			replays
//	@Accept			octet-stream
//	@Produce		json
//	@Param			events	query		bool	false	"Include events"
//	@Success		200		{object}	DecodeResponse
//	@Failure		400		{object}	APIResponse
//	@Failure		422		{object}	APIResponse
//	@Router			/replays/decode [post]
//	@Security		ApiKeyAuth
func (s *Server) handleDecode(w http.ResponseWriter, r *http.Request) {
	withEvents, err := boolParam(r, "events", false)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		sendErr(w, err)
		return
	}

	rep, err := s.decode(body)
	if err != nil {
		sendErr(w, err)
		return
	}

	sendSuccess(w, decodeResponse(rep, withEvents))
}

// handleRepack godoc
//
//	@Summary		Re-encode a replay
//	@Description	Decode an uploaded .osr file and encode it again, optionally with another LZMA preset.
//	@Tags			replays
//	@Accept			octet-stream
//	@Produce		octet-stream
//	@Param			preset	query		int	false	"LZMA preset 0-9"
//	@Success		200		{string}	byte
//	@Failure		400		{object}	APIResponse
//	@Router			/replays/repack [post]
//	@Security		ApiKeyAuth
func (s *Server) handleRepack(w http.ResponseWriter, r *http.Request) {
	c := s.codec
	if v := r.URL.Query().Get("preset"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < int(compress.MinPreset) || p > int(compress.MaxPreset) {
			sendError(w, fmt.Sprintf("invalid preset %q", v), http.StatusBadRequest)
			return
		}
		opts := c.Options()
		opts.Preset = compress.Preset(p)
		c = replay.NewCodec(opts)
	}

	body, err := s.readBody(w, r)
	if err != nil {
		sendErr(w, err)
		return
	}

	rep, err := s.decode(body)
	if err != nil {
		sendErr(w, err)
		return
	}

	start := time.Now()
	out, err := c.Encode(rep)
	s.metrics.RecordCodecOperation("encode", err == nil, time.Since(start))
	if err != nil {
		sendErr(w, err)
		return
	}
	s.metrics.RecordReplayBytes("out", len(out))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	_, _ = w.Write(out)
}

// handleParseData godoc
//
//	@Summary		Parse replay event data
//	@Description	Parse an event stream fetched from the score API without the .osr header.
//	@Tags			replays
//	@Accept			octet-stream,plain
//	@Produce		json
//	@Param			mode		query		string	false	"Game mode (default standard)"
//	@Param			base64		query		bool	false	"Body is base64 text"
//	@Param			compressed	query		bool	false	"Body is LZMA compressed (default true)"
//	@Success		200			{object}	replay.EventData
//	@Failure		400			{object}	APIResponse
//	@Router			/replay-data/parse [post]
//	@Security		ApiKeyAuth
func (s *Server) handleParseData(w http.ResponseWriter, r *http.Request) {
	mode := replay.ModeStandard
	if v := r.URL.Query().Get("mode"); v != "" {
		m, err := replay.ParseGameMode(v)
		if err != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
			return
		}
		mode = m
	}
	isBase64, err := boolParam(r, "base64", false)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}
	isCompressed, err := boolParam(r, "compressed", true)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := s.readBody(w, r)
	if err != nil {
		sendErr(w, err)
		return
	}

	start := time.Now()
	data, err := s.codec.ParseReplayData(body, isBase64, isCompressed, mode)
	s.metrics.RecordCodecOperation("parse_data", err == nil, time.Since(start))
	if err != nil {
		sendErr(w, err)
		return
	}

	sendSuccess(w, data)
}

// handleArchivePut godoc
//
//	@Summary		Archive a replay
//	@Description	Validate an uploaded .osr file by decoding it, then store it.
//	@Tags			archive
//	@Accept			octet-stream
//	@Produce		json
//	@Success		200	{object}	ArchiveResponse
//	@Failure		400	{object}	APIResponse
//	@Router			/replays [post]
//	@Security		ApiKeyAuth
func (s *Server) handleArchivePut(w http.ResponseWriter, r *http.Request) {
	body, err := s.readBody(w, r)
	if err != nil {
		sendErr(w, err)
		return
	}

	rep, err := s.decode(body)
	if err != nil {
		sendErr(w, err)
		return
	}

	id, err := s.archive.Put(body)
	s.metrics.RecordArchiveOperation("put", err == nil)
	if err != nil {
		sendErr(w, err)
		return
	}

	s.log.Info().Str("id", id.String()).Str("player", rep.PlayerName).Msg("archived replay")
	sendSuccess(w, ArchiveResponse{ID: id.String(), Summary: rep.Summarize()})
}

// handleArchiveList godoc
//
//	@Summary		List archived replays
//	@Tags			archive
//	@Produce		json
//	@Param			limit	query		int	false	"Maximum number of ids"
//	@Success		200		{object}	ListResponse
//	@Router			/replays [get]
//	@Security		ApiKeyAuth
func (s *Server) handleArchiveList(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			sendError(w, fmt.Sprintf("invalid limit %q", v), http.StatusBadRequest)
			return
		}
		limit = n
	}

	ids, err := s.archive.List(limit)
	s.metrics.RecordArchiveOperation("list", err == nil)
	if err != nil {
		sendErr(w, err)
		return
	}

	resp := ListResponse{IDs: make([]string, len(ids)), Count: len(ids)}
	for i, id := range ids {
		resp.IDs[i] = id.String()
	}
	sendSuccess(w, resp)
}

// handleArchiveGet godoc
//
//	@Summary		Download an archived replay
//	@Tags			archive
//	@Produce		octet-stream
//	@Param			id	path		string	true	"Replay id"
//	@Success		200	{string}	byte
//	@Failure		404	{object}	APIResponse
//	@Router			/replays/{id} [get]
//	@Security		ApiKeyAuth
func (s *Server) handleArchiveGet(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := s.archive.Get(id)
	s.metrics.RecordArchiveOperation("get", err == nil)
	if err != nil {
		sendErr(w, err)
		return
	}
	s.metrics.RecordReplayBytes("out", len(data))

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", id.String()+".osr"))
	_, _ = w.Write(data)
}

// handleArchiveSummary godoc
//
//	@Summary		Summarize an archived replay
//	@Tags			archive
//	@Produce		json
//	@Param			id	path		string	true	"Replay id"
//	@Success		200	{object}	DecodeResponse
//	@Failure		404	{object}	APIResponse
//	@Router			/replays/{id}/summary [get]
//	@Security		ApiKeyAuth
func (s *Server) handleArchiveSummary(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	data, err := s.archive.Get(id)
	s.metrics.RecordArchiveOperation("get", err == nil)
	if err != nil {
		sendErr(w, err)
		return
	}

	rep, err := s.decode(data)
	if err != nil {
		sendErr(w, err)
		return
	}
	sendSuccess(w, decodeResponse(rep, false))
}

// handleArchiveDelete godoc
//
//	@Summary		Delete an archived replay
//	@Tags			archive
//	@Produce		json
//	@Param			id	path		string	true	"Replay id"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	APIResponse
//	@Router			/replays/{id} [delete]
//	@Security		ApiKeyAuth
func (s *Server) handleArchiveDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	err = s.archive.Delete(id)
	s.metrics.RecordArchiveOperation("delete", err == nil)
	if err != nil {
		sendErr(w, err)
		return
	}
	sendSuccess(w, map[string]string{"message": "Replay deleted successfully"})
}

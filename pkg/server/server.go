package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
	"unicode/utf8"

	"github.com/bastiangx/wordgram/internal/logger"
	"github.com/bastiangx/wordgram/internal/utils"
	"github.com/bastiangx/wordgram/pkg/config"
	"github.com/bastiangx/wordgram/pkg/suggest"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles the IPC for word completions
type Server struct {
	completer    suggest.ICompleter
	config       *config.Config
	decoder      *msgpack.Decoder
	writer       *bufio.Writer
	encoder      *msgpack.Encoder
	logger       *log.Logger
	requestCount int
}

// NewServer creates a completion server reading requests from r and writing responses to w.
// A nil config uses the defaults.
func NewServer(completer suggest.ICompleter, cfg *config.Config, r io.Reader, w io.Writer) *Server {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	writer := bufio.NewWriter(w)
	return &Server{
		completer: completer,
		config:    cfg,
		decoder:   msgpack.NewDecoder(bufio.NewReader(r)),
		writer:    writer,
		encoder:   msgpack.NewEncoder(writer),
		logger:    logger.New("server"),
	}
}

// NewStdioServer creates a completion server on stdin/stdout
func NewStdioServer(completer suggest.ICompleter, cfg *config.Config) *Server {
	return NewServer(completer, cfg, os.Stdin, os.Stdout)
}

// Start sends the ready frame and processes requests until the input is closed.
// A clean EOF between requests returns nil.
func (s *Server) Start() error {
	s.logger.Debug("Starting server")

	if err := s.sendResponse(StatusResponse{Status: "ready"}); err != nil {
		return fmt.Errorf("sending ready frame: %w", err)
	}

	for {
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.logger.Debug("Input closed", "requests", s.requestCount)
				return nil
			}
			s.logger.Errorf("Reading request: %v", err)
			return fmt.Errorf("reading request: %w", err)
		}

		s.requestCount++
		if err := s.handleMessage(raw); err != nil {
			return err
		}
	}
}

// handleMessage decodes a single framed request and dispatches it.
// Only write failures are returned; bad requests are answered with an error frame.
func (s *Server) handleMessage(raw msgpack.RawMessage) error {
	var request Request
	if err := msgpack.Unmarshal(raw, &request); err != nil {
		s.logger.Warnf("Malformed request: %v", err)
		return s.sendError("", "invalid msgpack request", 400)
	}
	if request.ID == "" {
		request.ID = "req-" + uuid.NewString()
	}

	switch request.Action {
	case "", ActionComplete:
		return s.handleComplete(request, s.completer.Complete)
	case ActionWords:
		return s.handleComplete(request, s.completer.KnownWords)
	case ActionScore:
		return s.handleScore(request)
	case ActionStats:
		return s.handleStats(request)
	case ActionHealth:
		return s.sendResponse(StatusResponse{ID: request.ID, Status: "ok"})
	default:
		return s.sendError(request.ID, fmt.Sprintf("unknown action: %s", request.Action), 404)
	}
}

// handleComplete validates a prefix request and answers it with lookup.
func (s *Server) handleComplete(request Request, lookup func(prefix string, limit int) []suggest.Suggestion) error {
	cfg := s.config.Server
	prefix := request.Prefix
	prefixLen := utf8.RuneCountInString(prefix)

	if prefix == "" {
		s.logger.Debug("Prefix is empty in request", "id", request.ID)
		return s.sendError(request.ID, "missing prefix", 400)
	}
	if prefixLen < cfg.MinPrefix {
		s.logger.Debug("Prefix is too short in request", "id", request.ID, "len", prefixLen)
		return s.sendError(request.ID, fmt.Sprintf("prefix must be at least %d characters", cfg.MinPrefix), 400)
	}
	if prefixLen > cfg.MaxPrefix {
		s.logger.Debug("Prefix is too long in request", "id", request.ID, "len", prefixLen)
		return s.sendError(request.ID, fmt.Sprintf("prefix exceeds maximum length of %d", cfg.MaxPrefix), 400)
	}
	if request.Limit < 0 {
		return s.sendError(request.ID, "limit must not be negative", 400)
	}

	limit := request.Limit
	if limit == 0 {
		limit = s.config.CLI.DefaultLimit
	}
	limit = min(limit, cfg.MaxLimit)

	start := time.Now()
	var suggestions []suggest.Suggestion
	if !cfg.EnableFilter || utils.IsValidInput(prefix) {
		suggestions = lookup(prefix, limit)
	} else {
		s.logger.Debug("Prefix rejected by filter", "prefix", prefix)
	}
	elapsed := time.Since(start)

	response := CompletionResponse{
		ID:          request.ID,
		Suggestions: make([]CompletionSuggestion, len(suggestions)),
		Count:       len(suggestions),
		TimeTaken:   elapsed.Microseconds(),
	}
	for i, sg := range suggestions {
		response.Suggestions[i] = CompletionSuggestion{
			Word:        sg.Word,
			Rank:        sg.Rank,
			Probability: sg.Probability,
		}
	}
	return s.sendResponse(response)
}

func (s *Server) handleScore(request Request) error {
	if request.Word == "" {
		return s.sendError(request.ID, "missing word", 400)
	}
	return s.sendResponse(ScoreResponse{
		ID:             request.ID,
		Word:           request.Word,
		Probability:    s.completer.Score(request.Word),
		LogProbability: s.completer.LogScore(request.Word),
	})
}

func (s *Server) handleStats(request Request) error {
	stats := s.completer.Stats()
	stats["requests"] = s.requestCount
	return s.sendResponse(StatsResponse{ID: request.ID, Stats: stats})
}

// sendResponse encodes one response frame and flushes it to the client
func (s *Server) sendResponse(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		s.logger.Errorf("Encoding response: %v", err)
		return fmt.Errorf("encoding response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("writing response: %w", err)
	}
	return nil
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.sendResponse(CompletionError{
		ID:    id,
		Error: message,
		Code:  code,
	})
}

package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/announce"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

const sessionCookieName = "user_session"

// SinkFactory builds extra announcers for a new session, such as the event feed.
// browserID comes from the session cookie and is shared by every tab of one browser;
// sessionID is unique per connection.
type SinkFactory func(browserID, sessionID string) []announce.Announcer

type Options struct {
	Locale    language.Tag
	RateLimit rate.Limit
	Burst     int
	Sinks     SinkFactory
}

type handlerFunc func(ctx context.Context, msg *Message, conn *connection) error

type Server struct {
	logger  *slog.Logger
	options Options

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, options Options) *Server {
	if options.Sinks == nil {
		options.Sinks = func(string, string) []announce.Announcer { return nil }
	}

	if options.RateLimit <= 0 {
		options.RateLimit = rate.Inf
	}

	server := &Server{
		logger:  logger.With("component", "websocket"),
		options: options,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionCellSelect] = server.handleCellSelect
	server.handlers[actionGameReset] = server.handleGameReset
	server.handlers[actionGameResetAll] = server.handleGameResetAll

	return server
}

// Handler returns the http handler serving the websocket endpoint.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(ctx),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	key := req.Header.Get("Sec-WebSocket-Key")
	if !strings.EqualFold(req.Header.Get("Upgrade"), "websocket") || key == "" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	browserID := that.setBrowserCookie(writer, req)
	sessionID := pkg.GenerateNewSessionID()
	locale := announce.MatchAcceptLanguage(req.Header.Get("Accept-Language"), that.options.Locale)

	acceptKey := pkg.GenerateAcceptKey(key)

	writer.Header().Set("Upgrade", "websocket")
	writer.Header().Set("Connection", "Upgrade")
	writer.Header().Set("Sec-WebSocket-Accept", acceptKey)
	writer.WriteHeader(http.StatusSwitchingProtocols)

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking", "error", http.StatusText(http.StatusInternalServerError))
		return
	}

	netConn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer netConn.Close()

	log = log.With("browserID", browserID, "sessionID", sessionID)

	conn := &connection{
		logger:  log,
		bufrw:   bufrw,
		printer: announce.Printer(locale),
		limiter: rate.NewLimiter(that.options.RateLimit, that.options.Burst),
	}

	sinks := append([]announce.Announcer{conn}, that.options.Sinks(browserID, sessionID)...)
	sinks = append(sinks, announce.NewLog(log))
	conn.session = usecase.NewSession(that.logger, sessionID, announce.NewFanout(that.logger, sinks...))

	log.Info("WebSocket connection established", "locale", locale.String())

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Error("error handling messages", "error", err)
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := conn.logger.With("method", "handleMessages")

	for {
		reqBody, err := conn.readMessage()
		if errors.Is(err, errConnectionClosed) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		if !conn.limiter.Allow() {
			log.Warn("rate limit exceeded")
			_ = conn.sendErrorResponse(actionError, apperror.ErrTooManyRequests.Error())
			continue
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			_ = conn.sendErrorResponse(actionError, "malformed message")
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("error processing message", "error", apperror.ErrUnknownAction, "action", message.Action)
			_ = conn.sendErrorResponse(message.Action, fmt.Sprintf("%v: %s", apperror.ErrUnknownAction, message.Action))
			continue
		}

		if err = handler(ctx, &message, conn); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

// setBrowserCookie - returns the browser id kept in the session cookie, creating the cookie when missing.
func (that *Server) setBrowserCookie(writer http.ResponseWriter, req *http.Request) string {
	log := that.logger.With("method", "setBrowserCookie")

	cookie, err := req.Cookie(sessionCookieName)
	if err == nil && pkg.IsSessionID(cookie.Value) {
		log.Debug("session cookie found", "cookie", cookie.Value)
		return cookie.Value
	}

	cookie = &http.Cookie{
		Name:     sessionCookieName,
		Value:    pkg.GenerateNewSessionID(),
		Expires:  time.Now().Add(24 * time.Hour),
		Path:     "/ws",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	}
	http.SetCookie(writer, cookie)
	log.Info("session cookie not found, new one created", "cookie", cookie.Value)

	return cookie.Value
}

package websocket

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/text/message"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/announce"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

// connection is one browser page: it owns the session and renders its events as frames.
type connection struct {
	logger *slog.Logger

	writeMutex sync.Mutex
	bufrw      *bufio.ReadWriter

	printer *message.Printer
	limiter *rate.Limiter
	session *usecase.Session
}

// Announce sends the event to the page. Write failures are logged, never returned.
func (that *connection) Announce(event entity.Event) {
	payload := Payload{
		Event:   &event,
		Message: announce.Text(that.printer, event),
	}

	if event.Outcome != nil {
		payload.Status = announce.Status(that.printer, *event.Outcome)
	}

	if err := that.sendMessage(string(event.Kind), payload); err != nil {
		that.logger.Error("failed to send event", "event", event.Kind, "error", err)
	}
}

func (that *connection) sendMessage(action string, payload Payload) error {
	body, err := encodeMessage(action, payload)
	if err != nil {
		return err
	}

	return that.writeFrame(frame{
		isFin:   true,
		opCode:  opText,
		length:  uint64(len(body)),
		payload: body,
	})
}

func (that *connection) sendErrorResponse(action, errorMsg string) error {
	if err := that.sendMessage(action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func (that *connection) writeFrame(f frame) error {
	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err := writeFrame(that.bufrw.Writer, f); err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}

	return nil
}

// readMessage returns the next complete text message. Control frames are answered inline.
func (that *connection) readMessage() ([]byte, error) {
	var body []byte

	for {
		f, err := readFrame(that.bufrw.Reader)
		if err != nil {
			return nil, err
		}

		if f.mask == nil {
			status := binary.BigEndian.AppendUint16(nil, closeProtocolError)
			_ = that.writeFrame(frame{isFin: true, opCode: opClose, length: uint64(len(status)), payload: status})
			return nil, errUnmaskedFrame
		}

		switch f.opCode {
		case opClose:
			_ = that.writeFrame(frame{isFin: true, opCode: opClose, length: f.length, payload: f.payload})
			return nil, errConnectionClosed
		case opPing:
			if err = that.writeFrame(frame{isFin: true, opCode: opPong, length: f.length, payload: f.payload}); err != nil {
				return nil, err
			}
			continue
		case opPong:
			continue
		case opText, opContinuation:
		default:
			return nil, fmt.Errorf("unsupported opcode %d", f.opCode)
		}

		body = append(body, f.payload...)
		if len(body) > maxMessageSize {
			return nil, fmt.Errorf("%w: %d bytes", errMessageTooLarge, len(body))
		}

		if f.isFin {
			return body, nil
		}
	}
}

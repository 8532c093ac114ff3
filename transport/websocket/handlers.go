package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
)

const (
	actionConnect      = "connect"
	actionCellSelect   = "cell:select"
	actionGameReset    = "game:reset"
	actionGameResetAll = "game:reset-all"
	actionError        = "error"
)

// handleConnect starts the session on first use and replies with the full state.
func (that *Server) handleConnect(_ context.Context, msg *Message, conn *connection) error {
	log := conn.logger.With("method", "handleConnect")

	snapshot := conn.session.Start()

	if err := conn.sendMessage(msg.Action, Payload{State: &snapshot}); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player")

	return nil
}

func (that *Server) handleCellSelect(_ context.Context, msg *Message, conn *connection) error {
	log := conn.logger.With("method", "handleCellSelect")

	var payloadReq Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
			log.Error("failed to unmarshal payload", "error", err)
			return conn.sendErrorResponse(msg.Action, "malformed payload")
		}
	}

	if payloadReq.Cell == nil {
		log.Error("Cell is missing in payload")
		return conn.sendErrorResponse(msg.Action, apperror.ErrMissingCell.Error())
	}

	err := conn.session.SelectCell(*payloadReq.Cell)
	if errors.Is(err, apperror.ErrInvalidCell) || errors.Is(err, apperror.ErrSessionNotStarted) {
		log.Warn("rejected cell selection", "cell", *payloadReq.Cell, "error", err)
		return conn.sendErrorResponse(msg.Action, err.Error())
	}

	if err != nil {
		return fmt.Errorf("failed to select cell: %w", err)
	}

	return nil
}

func (that *Server) handleGameReset(_ context.Context, msg *Message, conn *connection) error {
	if err := conn.session.Reset(); err != nil {
		conn.logger.Warn("rejected game reset", "error", err)
		return conn.sendErrorResponse(msg.Action, err.Error())
	}

	return nil
}

func (that *Server) handleGameResetAll(_ context.Context, msg *Message, conn *connection) error {
	if err := conn.session.ResetAll(); err != nil {
		conn.logger.Warn("rejected score reset", "error", err)
		return conn.sendErrorResponse(msg.Action, err.Error())
	}

	return nil
}

package websocket

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/usecase"
)

const (
	opContinuation byte = 0x0
	opText         byte = 0x1
	opClose        byte = 0x8
	opPing         byte = 0x9
	opPong         byte = 0xA

	closeProtocolError = 1002

	maxMessageSize = 64 << 10
)

var (
	errConnectionClosed = errors.New("connection closed by peer")
	errMessageTooLarge  = errors.New("message too large")
	errUnmaskedFrame    = errors.New("client frame is not masked")
)

// frame represents a WebSocket frame and its metadata.
type frame struct {
	isFin   bool
	opCode  byte
	length  uint64
	mask    []byte // set only on client frames
	payload []byte
}

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Payload is shared by requests and responses; only the fields relevant to the action are set.
type Payload struct {
	Cell *int `json:"cell,omitempty"`

	Event   *entity.Event     `json:"event,omitempty"`
	Message string            `json:"message,omitempty"`
	Status  string            `json:"status,omitempty"`
	State   *usecase.Snapshot `json:"state,omitempty"`
	Error   string            `json:"error,omitempty"`
}

func encodeMessage(action string, payload Payload) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	response := Message{
		Action:  action,
		Payload: payloadBytes,
	}

	responseBytes, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}

	return responseBytes, nil
}

func writeFrame(writer *bufio.Writer, frameData frame) error {
	header := make([]byte, 2, 14)
	header[0] |= frameData.opCode

	if frameData.isFin {
		header[0] |= 0x80
	}

	if frameData.mask != nil {
		header[1] |= 0x80
	}

	switch {
	case frameData.length < 126:
		header[1] |= byte(frameData.length)
	case frameData.length < 1<<16:
		header[1] |= 126
		header = binary.BigEndian.AppendUint16(header, uint16(frameData.length))
	default:
		header[1] |= 127
		header = binary.BigEndian.AppendUint64(header, frameData.length)
	}

	payload := frameData.payload
	if frameData.mask != nil {
		header = append(header, frameData.mask...)
		payload = applyMask(append([]byte(nil), payload...), frameData.mask)
	}

	if _, err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write frame header: %w", err)
	}

	if _, err := writer.Write(payload); err != nil {
		return fmt.Errorf("failed to write frame payload: %w", err)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}

	return nil
}

func readFrame(reader io.Reader) (frame, error) {
	header := make([]byte, 2)
	if _, err := io.ReadFull(reader, header); err != nil {
		return frame{}, fmt.Errorf("failed to read header: %w", err)
	}

	f := frame{
		isFin:  header[0]>>7 == 1,
		opCode: header[0] & 0x0f,
	}

	length, err := readPayloadLength(reader, header[1]&0x7f)
	if err != nil {
		return frame{}, err
	}

	if length > maxMessageSize {
		return frame{}, fmt.Errorf("%w: %d bytes", errMessageTooLarge, length)
	}
	f.length = length

	if header[1]>>7 == 1 {
		f.mask = make([]byte, 4)
		if _, err = io.ReadFull(reader, f.mask); err != nil {
			return frame{}, fmt.Errorf("failed to read mask: %w", err)
		}
	}

	f.payload = make([]byte, length)
	if _, err = io.ReadFull(reader, f.payload); err != nil {
		return frame{}, fmt.Errorf("failed to read payload: %w", err)
	}

	if f.mask != nil {
		applyMask(f.payload, f.mask)
	}

	return f, nil
}

func readPayloadLength(reader io.Reader, payloadLen byte) (uint64, error) {
	switch payloadLen {
	case 126:
		length := make([]byte, 2)
		if _, err := io.ReadFull(reader, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return uint64(binary.BigEndian.Uint16(length)), nil
	case 127:
		length := make([]byte, 8)
		if _, err := io.ReadFull(reader, length); err != nil {
			return 0, fmt.Errorf("failed to read payload length: %w", err)
		}
		return binary.BigEndian.Uint64(length), nil
	default:
		return uint64(payloadLen), nil
	}
}

func applyMask(payload, mask []byte) []byte {
	for i := range payload {
		payload[i] ^= mask[i%4]
	}
	return payload
}

// Package transport provides an optional NATS request/reply front end
// over the same reply pipeline the HTTP server uses.
package transport

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"chatbuddy/internal/chat"
	"chatbuddy/internal/config"
	"chatbuddy/internal/models"
)

type NATSTransport struct {
	conn     *nats.Conn
	config   *config.Config
	pipeline *chat.Pipeline
}

func NewNATSTransport(cfg *config.Config, pipeline *chat.Pipeline) (*NATSTransport, error) {
	conn, err := nats.Connect(cfg.NatsURL,
		nats.Name(cfg.ServiceName),
		nats.Timeout(cfg.NatsTimeout),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
	)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to NATS")
	}

	log.Info().Str("url", cfg.NatsURL).Msg("connected to NATS server")

	return &NATSTransport{
		conn:     conn,
		config:   cfg,
		pipeline: pipeline,
	}, nil
}

func (nt *NATSTransport) Start() error {
	_, err := nt.conn.QueueSubscribe(nt.config.NatsSubject, nt.config.ServiceName, nt.handleChatRequest)
	if err != nil {
		return errors.Wrapf(err, "subscribing to %s", nt.config.NatsSubject)
	}

	log.Info().Str("subject", nt.config.NatsSubject).Msg("subscribed")
	return nil
}

func (nt *NATSTransport) handleChatRequest(msg *nats.Msg) {
	var request models.ChatRequest
	if err := json.Unmarshal(msg.Data, &request); err != nil {
		log.Error().Err(err).Msg("parsing chat request")
		nt.respond(msg, models.ChatResponse{
			Reply: models.ReplyNotJSON,
			Error: "Invalid request format",
		})
		return
	}
	if strings.TrimSpace(request.Message) == "" {
		nt.respond(msg, models.ChatResponse{
			Reply: models.ReplyBlankMessage,
			Error: models.ErrorBlankMessage,
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), nt.config.NatsTimeout)
	defer cancel()

	reply, err := nt.pipeline.Reply(ctx, request.Message)
	if err != nil {
		log.Error().Err(err).Msg("processing chat request")
		nt.respond(msg, models.ChatResponse{
			Reply: models.ReplyInternal,
			Error: err.Error(),
		})
		return
	}

	nt.respond(msg, models.ChatResponse{Reply: reply})
}

func (nt *NATSTransport) respond(msg *nats.Msg, response models.ChatResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		log.Error().Err(err).Msg("marshaling chat response")
		return
	}
	if err := msg.Respond(data); err != nil {
		log.Error().Err(err).Msg("sending chat response")
	}
}

func (nt *NATSTransport) Close() error {
	if nt.conn != nil {
		if err := nt.conn.Drain(); err != nil {
			return errors.Wrap(err, "draining NATS connection")
		}
		log.Info().Msg("NATS connection closed")
	}
	return nil
}

package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/clinassist/decision-worker/internal/catalog"
	"github.com/clinassist/decision-worker/internal/config"
	"github.com/clinassist/decision-worker/internal/eval/template"
	"github.com/clinassist/decision-worker/internal/tree"
)

// Worker consumes evaluation requests from a Redis stream and publishes
// decisions to the result stream.
type Worker struct {
	id            string
	config        *config.Config
	redisClient   *redis.Client
	evaluator     *tree.Evaluator
	catalog       *catalog.Catalog
	reports       *template.Engine
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	evaluator *tree.Evaluator,
	cat *catalog.Catalog,
	reports *template.Engine,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		evaluator:     evaluator,
		catalog:       cat,
		reports:       reports,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting decision worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
		zap.Strings("tools", w.catalog.Names()),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	// Start processing work
	go w.processWork()

	w.logger.Info("decision worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker gracefully
func (w *Worker) Stop() error {
	w.logger.Info("stopping decision worker", zap.String("worker_id", w.id))

	// Cancel context to stop work processing
	w.cancel()

	// Wait a bit for in-flight work to complete
	time.Sleep(2 * time.Second)

	w.logger.Info("decision worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	// Try to create the group
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP error means the group already exists, which is fine
		if err.Error() == "BUSYGROUP Consumer Group name already exists" {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			// Read from stream
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if err == redis.Nil {
					// No messages available, continue
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				time.Sleep(time.Second)
				continue
			}

			// Process each message
			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// handleMessage handles a single evaluation request message
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID
	w.logger.Info("processing evaluation request",
		zap.String("message_id", messageID),
	)

	// Parse the work request
	request, err := w.parseWorkRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse work request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.acknowledgeMessage(messageID)
		return
	}

	// Evaluate and publish
	decision, err := w.processRequest(request)
	if err != nil {
		w.logger.Error("failed to process evaluation request",
			zap.String("message_id", messageID),
			zap.String("request_id", request.RequestID),
			zap.String("tool", request.Tool),
			zap.Error(err),
		)
		w.publishError(request, err)
	} else if err := w.publishDecision(decision); err != nil {
		w.logger.Error("failed to publish decision",
			zap.String("message_id", messageID),
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
	}

	// Acknowledge the message
	w.acknowledgeMessage(messageID)
}

// WorkRequest represents one evaluation request
type WorkRequest struct {
	RequestID string         `json:"request_id"`
	Tool      string         `json:"tool"`
	Inputs    map[string]any `json:"inputs"`
}

// Decision is the published evaluation outcome
type Decision struct {
	RequestID string    `json:"request_id"`
	Tool      string    `json:"tool"`
	Decision  string    `json:"decision"`
	Reason    string    `json:"reason"`
	PathTaken []string  `json:"path_taken"`
	Report    string    `json:"report,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// parseWorkRequest parses a work request from a Redis message
func (w *Worker) parseWorkRequest(values map[string]interface{}) (*WorkRequest, error) {
	dataStr, ok := values["data"].(string)
	if !ok {
		return nil, fmt.Errorf("missing or invalid 'data' field")
	}

	var request WorkRequest
	if err := json.Unmarshal([]byte(dataStr), &request); err != nil {
		return nil, fmt.Errorf("failed to unmarshal work request: %w", err)
	}

	if request.Tool == "" {
		return nil, fmt.Errorf("work request has no tool name")
	}

	return &request, nil
}

// processRequest evaluates one request against its catalog entry.
//
// Conditions attributable to the supplied inputs (missing required inputs,
// failed derivation, an Error decision from the evaluator) still produce a
// publishable Decision; only authoring and operator defects are returned as
// errors and routed to the error stream.
func (w *Worker) processRequest(request *WorkRequest) (*Decision, error) {
	entry, ok := w.catalog.Get(request.Tool)
	if !ok {
		return nil, fmt.Errorf("unknown tool %q", request.Tool)
	}

	inputs := tree.Inputs(request.Inputs)

	if missing := entry.MissingInputs(inputs); len(missing) > 0 {
		return w.decision(request, &tree.Result{
			Decision:  tree.ErrorDecision,
			Reason:    fmt.Sprintf("missing required inputs: %s", strings.Join(missing, ", ")),
			PathTaken: []string{},
		}), nil
	}

	prepared, err := entry.Prepare(inputs)
	if err != nil {
		return w.decision(request, &tree.Result{
			Decision:  tree.ErrorDecision,
			Reason:    err.Error(),
			PathTaken: []string{},
		}), nil
	}

	result, err := w.evaluator.Evaluate(entry.Tree, prepared)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}

	return w.decision(request, result), nil
}

// decision wraps an evaluation result into a publishable decision,
// rendering the audit report.
func (w *Worker) decision(request *WorkRequest, result *tree.Result) *Decision {
	d := &Decision{
		RequestID: request.RequestID,
		Tool:      request.Tool,
		Decision:  result.Decision,
		Reason:    result.Reason,
		PathTaken: result.PathTaken,
		Timestamp: time.Now().UTC(),
	}

	report, err := w.reports.RenderResult(w.config.ReportTemplate, result)
	if err != nil {
		// The decision itself is still publishable without the report.
		w.logger.Warn("failed to render report",
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
		return d
	}
	d.Report = report

	return d
}

// publishDecision publishes the decision to the result stream
func (w *Worker) publishDecision(decision *Decision) error {
	data, err := json.Marshal(decision)
	if err != nil {
		return fmt.Errorf("failed to marshal decision: %w", err)
	}

	// Publish to result stream
	_, err = w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
		Stream: w.resultStream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	w.logger.Info("published decision",
		zap.String("request_id", decision.RequestID),
		zap.String("tool", decision.Tool),
		zap.String("decision", decision.Decision),
	)

	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(request *WorkRequest, err error) {
	errorEvent := map[string]interface{}{
		"request_id": request.RequestID,
		"tool":       request.Tool,
		"error":      err.Error(),
		"timestamp":  time.Now().UTC(),
	}

	data, marshalErr := json.Marshal(errorEvent)
	if marshalErr != nil {
		w.logger.Error("failed to marshal error event", zap.Error(marshalErr))
		return
	}

	// Publish error to a separate stream
	_, publishErr := w.redisClient.XAdd(w.ctx, &redis.XAddArgs{
		Stream: w.resultStream + ".errors",
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()

	if publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	err := w.redisClient.XAck(w.ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}

// Package worker implements the decision worker lifecycle and Redis Streams integration.
//
// The worker subscribes to Redis Streams for evaluation requests, runs them
// against the tree catalog, and publishes decisions back for the caller.
//
// A request names a catalog tool and supplies its inputs:
//
//	{"request_id": "r-42", "tool": "loan_decision",
//	 "inputs": {"credit_score": 600, "income": 40000, "requested_amount": 9000}}
//
// The published decision carries the outcome, the audit trail and a
// rendered report:
//
//	{"request_id": "r-42", "tool": "loan_decision",
//	 "decision": "Declined", "reason": "Credit score too low",
//	 "path_taken": ["Checked credit score: 600 < 640 -> matched"], ...}
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	evaluator := tree.NewEvaluator(logger)
//	cat := catalog.Builtin()
//
//	worker := worker.NewWorker(cfg, redisClient, evaluator, cat, template.NewEngine(), logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop()
//
// The worker handles:
//   - Redis Streams subscription and consumer group management
//   - Request validation, input derivation and tree evaluation
//   - Decision publishing, with Error decisions still published as decisions
//   - Authoring/operator failures routed to the error stream
//   - Graceful shutdown
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8082, redisClient, cat, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker

// Package worker implements batch routing over JSON lines.
//
// The worker reads one routing request per line, evaluates it against a rule
// set and writes one decision per request, in input order.
//
// Example usage:
//
//	cfg, _ := config.Load()
//	rules, _ := router.LoadRuleSet(cfg.RulesFile)
//	w := worker.NewWorker(cfg, router.NewRouter(logger), rules, logger)
//
//	stats, err := w.Process(ctx, os.Stdin, os.Stdout)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Request line:
//
//	{"execution_id": "exec-1", "node_id": "triage", "input": {"priority": "high"}}
//
// Decision line:
//
//	{"execution_id": "exec-1", "node_id": "triage", "target_node": "urgent", "path_taken": "rule", ...}
//
// A request that cannot be parsed or routed produces a decision line with an
// error field. With FailFast the batch stops after writing it.
package worker

package resolver

import (
	"context"

	"github.com/gnana997/tokenbridge/pkg/host"
)

// ApplyResult records one apply-binding attempt. Partial success is
// accepted and reported; there are no transactional semantics.
type ApplyResult struct {
	NodeID       string   `json:"node_id"`
	Property     Property `json:"property"`
	Applied      bool     `json:"applied"`
	VariableID   string   `json:"variable_id,omitempty"`
	VariableName string   `json:"variable_name,omitempty"`
	Reason       string   `json:"reason,omitempty"`
}

// ApplyNode matches a node tree and applies every successful match through
// the session. Host calls are awaited sequentially per property: the
// design document is effectively single-writer, so concurrent writes to
// one node are never issued from a single operation. A per-property apply
// failure is recorded and does not affect siblings; already-applied
// properties are not rolled back.
func (o *Orchestrator) ApplyNode(ctx context.Context, sess *host.Session, node NodeValues) (NodeReport, []ApplyResult) {
	report := o.MatchNode(node)
	var results []ApplyResult
	o.applyReport(ctx, sess, report, &results)
	return report, results
}

func (o *Orchestrator) applyReport(ctx context.Context, sess *host.Session, report NodeReport, results *[]ApplyResult) {
	for _, pm := range report.Matches {
		if pm.Match == nil {
			*results = append(*results, ApplyResult{
				NodeID:   report.NodeID,
				Property: pm.Property,
				Applied:  false,
				Reason:   pm.Reason,
			})
			continue
		}

		res := ApplyResult{
			NodeID:       report.NodeID,
			Property:     pm.Property,
			VariableID:   pm.Match.VariableID,
			VariableName: pm.Match.VariableName,
		}
		if err := sess.ApplyBinding(ctx, report.NodeID, string(pm.Property), pm.Match.VariableID); err != nil {
			res.Reason = err.Error()
			o.logger.Warn("apply binding failed",
				"node", report.NodeID,
				"property", pm.Property,
				"error", err)
		} else {
			res.Applied = true
		}
		*results = append(*results, res)
	}

	for _, child := range report.Children {
		o.applyReport(ctx, sess, child, results)
	}
}

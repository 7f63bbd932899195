package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/warroom/warroom/internal/agents"
	"github.com/warroom/warroom/internal/database"
	"github.com/warroom/warroom/internal/llm"
)

// Cycle statuses reported in CycleResult.
const (
	StatusCompleted   = "completed"
	StatusNoIncidents = "no_incidents"
	StatusNoAnalysis  = "no_analysis"
)

// VerdictNotifier posts a finished verdict to an external channel. Delivery
// failures are logged, never surfaced to the caller.
type VerdictNotifier interface {
	PostVerdict(ctx context.Context, verdict *agents.JudgeVerdict, analyses map[string]agents.AgentAnalysis) error
}

// CycleResult is the outcome of one troubleshoot cycle.
type CycleResult struct {
	CycleID  uuid.UUID                       `json:"cycle_id"`
	Status   string                          `json:"status"`
	Analyses map[string]agents.AgentAnalysis `json:"analyses,omitempty"`
	Failures map[string]string               `json:"failures,omitempty"`
	Verdict  *agents.JudgeVerdict            `json:"verdict,omitempty"`
}

// TroubleshootService runs the full analysis cycle: load active incidents,
// fan out blind domain specialists, and adjudicate their findings.
type TroubleshootService struct {
	db       *gorm.DB
	client   llm.Client
	notifier VerdictNotifier
}

// NewTroubleshootService creates a new TroubleshootService. notifier may be
// nil when no delivery channel is configured.
func NewTroubleshootService(db *gorm.DB, client llm.Client, notifier VerdictNotifier) *TroubleshootService {
	return &TroubleshootService{
		db:       db,
		client:   client,
		notifier: notifier,
	}
}

// Run executes one troubleshoot cycle. With force set, specialists run even
// when no incidents are active, each receiving a placeholder all-clear
// context. Specialist failures never abort the cycle; they are collected
// per agent and the judge runs over whatever succeeded.
func (s *TroubleshootService) Run(ctx context.Context, force bool) (*CycleResult, error) {
	result := &CycleResult{
		CycleID:  uuid.New(),
		Analyses: make(map[string]agents.AgentAnalysis),
		Failures: make(map[string]string),
	}

	active, err := database.ActiveIncidentsByCategory(s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to load active incidents: %w", err)
	}

	if n := len(active[database.CategoryUnknown]); n > 0 {
		log.Printf("Cycle %s: %d active incident(s) in category Unknown will not be dispatched", result.CycleID, n)
	}

	totalDispatchable := 0
	for _, cat := range database.DispatchableCategories() {
		totalDispatchable += len(active[cat])
	}

	if totalDispatchable == 0 && !force {
		log.Printf("Cycle %s: no active incidents, skipping analysis", result.CycleID)
		result.Status = StatusNoIncidents
		return result, nil
	}

	// Pick the specialists to run and the context each one sees. A domain
	// with no incidents participates only under force, with an all-clear
	// placeholder so the judge still hears from it.
	type dispatch struct {
		specialist *agents.Specialist
		context    string
	}
	var dispatches []dispatch
	for _, domain := range agents.AllDomains() {
		incidents := active[domain.Category()]
		switch {
		case len(incidents) > 0:
			dispatches = append(dispatches, dispatch{
				specialist: agents.NewSpecialist(domain, s.client),
				context:    BuildContext(incidents, domain),
			})
		case totalDispatchable == 0 && force:
			dispatches = append(dispatches, dispatch{
				specialist: agents.NewSpecialist(domain, s.client),
				context:    domain.AllClearContext(),
			})
		}
	}

	log.Printf("Cycle %s: dispatching %d specialist(s) over %d active incident(s)",
		result.CycleID, len(dispatches), totalDispatchable)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(dispatches))
	for _, d := range dispatches {
		d := d
		g.Go(func() error {
			analysis, err := d.specialist.Analyze(gctx, d.context)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Printf("Cycle %s: %s failed: %v", result.CycleID, d.specialist.Name(), err)
				result.Failures[d.specialist.Name()] = err.Error()
				return nil
			}
			result.Analyses[analysis.AgentName] = *analysis
			return nil
		})
	}
	// Workers swallow their own errors into the failure map.
	_ = g.Wait()

	if len(result.Analyses) == 0 {
		log.Printf("Cycle %s: all specialists failed, nothing to adjudicate", result.CycleID)
		result.Status = StatusNoAnalysis
		return result, nil
	}

	analyses := make([]agents.AgentAnalysis, 0, len(result.Analyses))
	for _, domain := range agents.AllDomains() {
		if a, ok := result.Analyses[domain.AgentName()]; ok {
			analyses = append(analyses, a)
		}
	}

	judge := agents.NewJudge(s.client)
	verdict, err := judge.Adjudicate(ctx, analyses)
	if err != nil {
		log.Printf("Cycle %s: adjudication failed: %v", result.CycleID, err)
		result.Failures["Judge"] = err.Error()
		result.Status = StatusNoAnalysis
		return result, nil
	}

	result.Verdict = verdict
	result.Status = StatusCompleted
	log.Printf("Cycle %s: completed (root cause agent: %s)", result.CycleID, verdict.RootCauseAgent)

	if s.notifier != nil {
		if err := s.notifier.PostVerdict(ctx, verdict, result.Analyses); err != nil {
			log.Printf("Cycle %s: verdict notification failed: %v", result.CycleID, err)
		}
	}

	return result, nil
}

// BuildContext renders the incidents of one category into the labeled text
// block a specialist analyzes. Each specialist sees only its own domain's
// slice of the log bundle.
func BuildContext(incidents []database.Incident, domain agents.Domain) string {
	blocks := make([]string, 0, len(incidents))
	for i, inc := range incidents {
		blocks = append(blocks, fmt.Sprintf("=== Incident %d: %s (Severity: %s) ===\n%s",
			i+1, inc.AlertName, inc.Severity, domain.SelectLogs(inc.Logs)))
	}
	return strings.Join(blocks, "\n\n")
}

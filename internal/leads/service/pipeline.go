// Package service orchestrates the lead qualification pipeline: enrichment,
// scoring, categorization, territory routing, and the best-effort dispatch
// fan-out to the external collaborators.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"leadflow_backend/internal/events"
	"leadflow_backend/internal/leads/analytics"
	"leadflow_backend/internal/leads/domain"
	"leadflow_backend/internal/leads/ports"
	"leadflow_backend/internal/leads/scoring"
	"leadflow_backend/internal/leads/territory"
	"leadflow_backend/internal/store"
	"leadflow_backend/platform/config"
	"leadflow_backend/platform/logger"
	"leadflow_backend/platform/phone"
)

// DispatchPolicy holds the score thresholds that gate the dispatch steps
// and the per-collaborator call timeout.
type DispatchPolicy struct {
	DealScoreMin   int
	NotifyScoreMin int
	TicketScoreMin int
	QuoteScoreMin  int
	StepTimeout    time.Duration
}

// PolicyFromConfig builds the dispatch policy from configuration.
func PolicyFromConfig(cfg config.DispatchConfig) DispatchPolicy {
	return DispatchPolicy{
		DealScoreMin:   cfg.GetDealScoreMin(),
		NotifyScoreMin: cfg.GetNotifyScoreMin(),
		TicketScoreMin: cfg.GetTicketScoreMin(),
		QuoteScoreMin:  cfg.GetQuoteScoreMin(),
		StepTimeout:    cfg.GetCollaboratorTimeout(),
	}
}

// Pipeline processes inbound leads end to end. Submissions for the same
// email serialize on a per-key mutex; different emails process concurrently.
type Pipeline struct {
	store     store.LeadStore
	enricher  ports.Enricher
	crm       ports.CRM
	notifier  ports.Notifier
	tasker    ports.TaskTracker
	ticketer  ports.Ticketer
	quoter    ports.Quoter
	scorer    *scoring.Service
	territory *territory.Service
	policy    DispatchPolicy
	bus       events.Bus
	log       *logger.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewPipeline wires the pipeline with its collaborators.
func NewPipeline(
	st store.LeadStore,
	enricher ports.Enricher,
	crm ports.CRM,
	notifier ports.Notifier,
	tasker ports.TaskTracker,
	ticketer ports.Ticketer,
	quoter ports.Quoter,
	scorer *scoring.Service,
	territorySvc *territory.Service,
	policy DispatchPolicy,
	bus events.Bus,
	log *logger.Logger,
) *Pipeline {
	return &Pipeline{
		store:     st,
		enricher:  enricher,
		crm:       crm,
		notifier:  notifier,
		tasker:    tasker,
		ticketer:  ticketer,
		quoter:    quoter,
		scorer:    scorer,
		territory: territorySvc,
		policy:    policy,
		bus:       bus,
		log:       log,
	}
}

// Process runs the full pipeline for one lead and returns the per-step
// report. Only a CRM identity failure marks the report unsuccessful; every
// other step failure is recorded and the pipeline continues.
func (p *Pipeline) Process(ctx context.Context, lead *domain.Lead) (*domain.Report, error) {
	email := domain.NormalizeEmail(lead.Email)
	lead.Email = email

	unlock := p.lockEmail(email)
	defer unlock()

	ctx = context.WithValue(ctx, logger.LeadEmailKey, email)
	log := p.log.WithContext(ctx)

	if lead.Phone != "" {
		lead.Phone = phone.NormalizeE164(lead.Phone)
	}

	// Enrichment never fails: the adapter falls back to a synthetic profile.
	profile := p.enricher.Enrich(ctx, lead)

	score, breakdown := p.scorer.Score(lead, profile)
	lead.Score = score
	lead.Category = p.scorer.Categorize(score)

	// Territory rules read the score, so assignment follows scoring.
	lead.Territory = p.territory.Assign(lead.CompanySize, lead.Industry, score)

	now := time.Now().UTC()
	lead.UpdatedAt = now
	if prior, err := p.store.GetLead(ctx, email); err == nil {
		lead.CreatedAt = prior.CreatedAt
	} else {
		lead.CreatedAt = now
	}

	if err := p.store.SaveProfile(ctx, profile); err != nil {
		log.StoreError("save_profile", err)
	}
	if err := p.store.UpsertLead(ctx, lead); err != nil {
		return nil, fmt.Errorf("store lead: %w", err)
	}

	report := &domain.Report{
		Success:     true,
		Email:       email,
		Score:       score,
		Breakdown:   breakdown,
		Category:    lead.Category,
		Territory:   lead.Territory,
		Steps:       make(map[string]domain.StepResult),
		ProcessedAt: now,
	}

	contactID := p.runCRM(ctx, lead, report)
	p.runDeal(ctx, lead, contactID, report)
	p.runFanOut(ctx, lead, report)

	for step, result := range report.Steps {
		log.DispatchStep(step, email, string(result.Status), stepError(result))
	}

	p.bus.Publish(ctx, events.NewLeadProcessed(report))
	return report, nil
}

// runCRM upserts the CRM contact. Returns the contact ID, empty on failure.
func (p *Pipeline) runCRM(ctx context.Context, lead *domain.Lead, report *domain.Report) string {
	stepCtx, cancel := context.WithTimeout(ctx, p.policy.StepTimeout)
	defer cancel()

	result, err := p.crm.UpsertContact(stepCtx, lead)
	if err != nil {
		report.Success = false
		report.Steps[domain.StepCRM] = domain.Failed(err)
		return ""
	}

	detail := "contact created"
	if result.Existing {
		detail = "existing contact updated"
	}
	report.Steps[domain.StepCRM] = domain.Succeeded(result.ID, detail)
	return result.ID
}

// runDeal creates the CRM deal when the lead qualifies and a contact exists.
func (p *Pipeline) runDeal(ctx context.Context, lead *domain.Lead, contactID string, report *domain.Report) {
	if lead.Score < p.policy.DealScoreMin {
		report.Steps[domain.StepDeal] = domain.Skipped("score below deal threshold")
		return
	}
	if contactID == "" {
		report.Steps[domain.StepDeal] = domain.Skipped("no crm contact")
		return
	}

	stepCtx, cancel := context.WithTimeout(ctx, p.policy.StepTimeout)
	defer cancel()

	amount := analytics.EstimatedDealValueCents(lead.Category)
	id, err := p.crm.CreateDeal(stepCtx, lead, contactID, amount)
	if err != nil {
		report.Steps[domain.StepDeal] = domain.Failed(err)
		return
	}
	report.Steps[domain.StepDeal] = domain.Succeeded(id, fmt.Sprintf("deal for %d cents", amount))
}

// runFanOut executes the independent dispatch steps in parallel. Steps are
// failure-isolated: one step's error never blocks or cancels another.
func (p *Pipeline) runFanOut(ctx context.Context, lead *domain.Lead, report *domain.Report) {
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	record := func(step string, result domain.StepResult) {
		mu.Lock()
		report.Steps[step] = result
		mu.Unlock()
	}

	g.Go(func() error {
		record(domain.StepMessaging, p.runMessaging(ctx, lead))
		return nil
	})
	g.Go(func() error {
		record(domain.StepTasking, p.runTasking(ctx, lead))
		return nil
	})
	g.Go(func() error {
		record(domain.StepTicketing, p.runTicketing(ctx, lead))
		return nil
	})
	g.Go(func() error {
		record(domain.StepQuoting, p.runQuoting(ctx, lead))
		return nil
	})

	// Goroutines report through record, never through errors.
	_ = g.Wait()
}

func (p *Pipeline) runMessaging(ctx context.Context, lead *domain.Lead) domain.StepResult {
	if lead.Score < p.policy.NotifyScoreMin {
		return domain.Skipped("score below notify threshold")
	}

	stepCtx, cancel := context.WithTimeout(ctx, p.policy.StepTimeout)
	defer cancel()

	severity := severityFor(lead.Category)
	if err := p.notifier.Notify(stepCtx, lead, severity); err != nil {
		return domain.Failed(err)
	}
	return domain.Succeeded("", severity+" notification sent")
}

func (p *Pipeline) runTasking(ctx context.Context, lead *domain.Lead) domain.StepResult {
	stepCtx, cancel := context.WithTimeout(ctx, p.policy.StepTimeout)
	defer cancel()

	req := taskFor(lead)
	id, err := p.tasker.CreateTask(stepCtx, lead, req)
	if err != nil {
		return domain.Failed(err)
	}
	return domain.Succeeded(id, req.Priority+" follow-up due "+req.DueAt.Format("2006-01-02"))
}

func (p *Pipeline) runTicketing(ctx context.Context, lead *domain.Lead) domain.StepResult {
	if lead.Score < p.policy.TicketScoreMin {
		return domain.Skipped("score below ticket threshold")
	}

	stepCtx, cancel := context.WithTimeout(ctx, p.policy.StepTimeout)
	defer cancel()

	subject := fmt.Sprintf("Onboarding: %s (%s)", lead.Company, lead.FullName())
	id, err := p.ticketer.OpenTicket(stepCtx, lead, subject)
	if err != nil {
		return domain.Failed(err)
	}
	return domain.Succeeded(id, "onboarding ticket opened")
}

func (p *Pipeline) runQuoting(ctx context.Context, lead *domain.Lead) domain.StepResult {
	if lead.Score < p.policy.QuoteScoreMin {
		return domain.Skipped("score below quote threshold")
	}
	if lead.Territory.Territory != territory.Enterprise {
		return domain.Skipped("territory not enterprise")
	}

	stepCtx, cancel := context.WithTimeout(ctx, p.policy.StepTimeout)
	defer cancel()

	amount := analytics.EstimatedDealValueCents(lead.Category)
	id, err := p.quoter.CreateQuote(stepCtx, lead, amount)
	if err != nil {
		return domain.Failed(err)
	}
	return domain.Succeeded(id, fmt.Sprintf("quote for %d cents", amount))
}

// severityFor maps the score band onto a notification severity tier.
func severityFor(category domain.Category) string {
	switch category {
	case domain.CategoryHot:
		return "urgent"
	case domain.CategoryWarm:
		return "high"
	default:
		return "normal"
	}
}

// taskFor derives the follow-up task from the score: higher score means a
// sooner due date and a higher priority.
func taskFor(lead *domain.Lead) ports.TaskRequest {
	var (
		days     int
		priority string
	)
	switch {
	case lead.Score >= 85:
		days, priority = 1, "urgent"
	case lead.Score >= 60:
		days, priority = 2, "high"
	case lead.Score >= 40:
		days, priority = 3, "normal"
	default:
		days, priority = 7, "low"
	}

	return ports.TaskRequest{
		Title: fmt.Sprintf("Follow up with %s (%s)", lead.FullName(), lead.Company),
		Notes: fmt.Sprintf("Score %d (%s), territory %s. Assigned to %s.",
			lead.Score, lead.Category, lead.Territory.Territory, lead.Territory.Representative),
		DueAt:    time.Now().UTC().AddDate(0, 0, days),
		Priority: priority,
	}
}

// lockEmail serializes processing per normalized email.
func (p *Pipeline) lockEmail(email string) func() {
	p.mu.Lock()
	if p.locks == nil {
		p.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := p.locks[email]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[email] = lock
	}
	p.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func stepError(result domain.StepResult) error {
	if result.Error == "" {
		return nil
	}
	return fmt.Errorf("%s", result.Error)
}

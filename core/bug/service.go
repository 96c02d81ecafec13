package bug

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

var ErrNotFound = errors.New("bug not found")

type (
	Repository interface {
		CreateBug(ctx context.Context, region string, b Bug) (Bug, error)
		GetBugByID(ctx context.Context, region, id string) (Bug, error)
		// FilterBugs applies AND on the cleaned filter's equality constraints,
		// sorted by created_at descending.
		FilterBugs(ctx context.Context, region string, filter core.Filter) ([]Bug, error)
		UpdateBug(ctx context.Context, region, id string, fields core.Filter) (Bug, error)
		DeleteBug(ctx context.Context, region, id string) error
	}

	Service struct {
		repo    Repository
		mailSvc core.EmailService
		conf    *core.Config
		logger  core.Logger
	}
)

func NewService(repo Repository, mailSvc core.EmailService, conf *core.Config, logger core.Logger) *Service {
	return &Service{repo: repo, mailSvc: mailSvc, conf: conf, logger: logger}
}

func (svc *Service) Create(ctx context.Context, region string, nb NewBug) (Bug, error) {
	now := time.Now().UTC()
	b := Bug{
		Title:            nb.Title,
		Description:      nb.Description,
		Status:           StatusNew,
		Severity:         nb.Severity,
		Assignee:         nb.Assignee,
		Reporter:         nb.Reporter,
		Platform:         nb.Platform,
		StepsToReproduce: nb.StepsToReproduce,
		ExpectedBehavior: nb.ExpectedBehavior,
		ActualBehavior:   nb.ActualBehavior,
		DueDate:          nb.DueDate,
		Region:           region,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	b, err := svc.repo.CreateBug(ctx, region, b)
	if err != nil {
		return Bug{}, err
	}
	if b.IsCritical() {
		svc.notifyCritical(region, b)
	}
	return b, nil
}

func (svc *Service) GetByID(ctx context.Context, region, id string) (Bug, error) {
	return svc.repo.GetBugByID(ctx, region, id)
}

// Filter lists a region's bugs, newest first. Backend failures are logged
// and degrade to an empty listing so a broken bug collection does not take
// the dashboard down with it.
func (svc *Service) Filter(ctx context.Context, region string, qf QueryFilter) []Bug {
	qf.Clean()

	items, err := svc.repo.FilterBugs(ctx, region, core.Filter{
		"region":   region,
		"status":   qf.Status,
		"severity": qf.Severity,
		"assignee": qf.Assignee,
	})
	if err != nil {
		svc.logger.Error("filtering bugs: "+err.Error(), err)
		return []Bug{}
	}
	return items
}

func (svc *Service) Update(ctx context.Context, region, id string, ub UpdateBug) (Bug, error) {
	fields := core.Filter{
		"title":            ub.Title,
		"description":      ub.Description,
		"severity":         ub.Severity,
		"assignee":         ub.Assignee,
		"platform":         ub.Platform,
		"stepsToReproduce": ub.StepsToReproduce,
		"expectedBehavior": ub.ExpectedBehavior,
		"actualBehavior":   ub.ActualBehavior,
		"dueDate":          ub.DueDate,
	}
	return svc.repo.UpdateBug(ctx, region, id, fields.Clean())
}

// UpdateStatus persists a workflow transition. Used by the board
// reconciler, which relies on the returned error to decide reverts.
func (svc *Service) UpdateStatus(ctx context.Context, region, id, status string) error {
	valid := false
	for _, st := range Statuses {
		if status == st {
			valid = true
			break
		}
	}
	if !valid {
		return core.NewValidationError(fmt.Errorf("invalid bug status %q", status))
	}
	_, err := svc.repo.UpdateBug(ctx, region, id, core.Filter{"status": status})
	return err
}

// UpdateField persists a single editable field such as the assignee or
// the due date.
func (svc *Service) UpdateField(ctx context.Context, region, id, field string, value interface{}) error {
	_, err := svc.repo.UpdateBug(ctx, region, id, core.Filter{field: value})
	return err
}

func (svc *Service) Delete(ctx context.Context, region, id string) error {
	return svc.repo.DeleteBug(ctx, region, id)
}

// notifyCritical emails the team when a system-down bug lands. Best
// effort: delivery failures are the email service's problem, filing the
// bug already succeeded.
func (svc *Service) notifyCritical(region string, b Bug) {
	if len(svc.conf.TeamEmails) == 0 {
		return
	}
	to := make([]mail.Address, 0, len(svc.conf.TeamEmails))
	for _, email := range svc.conf.TeamEmails {
		to = append(to, mail.Address{Address: email})
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      to,
		Subject: fmt.Sprintf("[%s] Critical bug: %s", region, b.DisplayTitle(region)),
		TextContent: fmt.Sprintf(
			"A critical bug was reported in the %s workspace.\n\nTitle: %s\nReporter: %s\nPlatform: %s\n\n%s\n",
			region, b.DisplayTitle(region), b.DisplayReporter(region), b.DisplayPlatform(region), b.Description,
		),
	})
	svc.logger.Info(fmt.Sprintf("critical bug notification sent for %s", b.ID))
}

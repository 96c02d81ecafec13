package quiz

import (
	"context"
	"errors"
	"time"

	"github.com/Akr1040317/hiveUniDash/core"
)

var ErrNotFound = errors.New("quiz not found")

type (
	Repository interface {
		CreateQuiz(ctx context.Context, region string, q Quiz) (Quiz, error)
		GetQuizByID(ctx context.Context, region, id string) (Quiz, error)
		// FilterQuizzes applies AND on the cleaned filter's equality
		// constraints, sorted by created_at descending.
		FilterQuizzes(ctx context.Context, region string, filter core.Filter) ([]Quiz, error)
		DeleteQuiz(ctx context.Context, region, id string) error
	}

	Service struct {
		repo   Repository
		logger core.Logger
	}
)

func NewService(repo Repository, logger core.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (svc *Service) Create(ctx context.Context, region string, nq NewQuiz) (Quiz, error) {
	now := time.Now().UTC()
	q := Quiz{
		Title:         nq.Title,
		Description:   nq.Description,
		WordCount:     nq.WordCount,
		Difficulty:    nq.Difficulty,
		IsWebinar:     nq.IsWebinar,
		ScheduledDate: nq.ScheduledDate,
		StartTime:     nq.StartTime,
		EndTime:       nq.EndTime,
		MeetingLink:   nq.MeetingLink,
		Host:          nq.Host,
		Region:        region,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	return svc.repo.CreateQuiz(ctx, region, q)
}

func (svc *Service) GetByID(ctx context.Context, region, id string) (Quiz, error) {
	return svc.repo.GetQuizByID(ctx, region, id)
}

// All lists a region's quizzes, newest first. Backend failures are logged
// and degrade to an empty listing.
func (svc *Service) All(ctx context.Context, region string) []Quiz {
	items, err := svc.repo.FilterQuizzes(ctx, region, core.Filter{"region": region})
	if err != nil {
		svc.logger.Error("listing quizzes: "+err.Error(), err)
		return []Quiz{}
	}
	return items
}

// Webinars lists the quizzes hosted live, the ones the calendar shows.
func (svc *Service) Webinars(ctx context.Context, region string) []Quiz {
	items, err := svc.repo.FilterQuizzes(ctx, region, core.Filter{
		"region":    region,
		"isWebinar": true,
	})
	if err != nil {
		svc.logger.Error("listing webinars: "+err.Error(), err)
		return []Quiz{}
	}
	return items
}

func (svc *Service) Delete(ctx context.Context, region, id string) error {
	return svc.repo.DeleteQuiz(ctx, region, id)
}

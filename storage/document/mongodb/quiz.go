package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Akr1040317/hiveUniDash/core"
	"github.com/Akr1040317/hiveUniDash/core/quiz"
	"github.com/Akr1040317/hiveUniDash/storage/document"
)

var _ quiz.Repository = (*quizRepository)(nil)

type quizRepository struct {
	gateway *document.Gateway
}

func NewQuizRepository(gateway *document.Gateway) quiz.Repository {
	return &quizRepository{gateway: gateway}
}

func (repo *quizRepository) coll(region string) *mongo.Collection {
	return repo.gateway.Resolve(region).Collection(quizzesCollection)
}

func (repo *quizRepository) CreateQuiz(ctx context.Context, region string, q quiz.Quiz) (quiz.Quiz, error) {
	if q.ID == "" {
		q.ID = uuid.New().String()
	}
	if _, err := repo.coll(region).InsertOne(ctx, q); err != nil {
		return quiz.Quiz{}, err
	}
	return q, nil
}

func (repo *quizRepository) GetQuizByID(ctx context.Context, region, id string) (quiz.Quiz, error) {
	var q quiz.Quiz
	if err := findOne(ctx, repo.coll(region), id, &q, quiz.ErrNotFound); err != nil {
		return quiz.Quiz{}, err
	}
	return q, nil
}

func (repo *quizRepository) FilterQuizzes(ctx context.Context, region string, filter core.Filter) ([]quiz.Quiz, error) {
	cur, err := repo.coll(region).Find(ctx, buildFilter(filter.Clean()), sortOpts(core.Ordering{Field: "created_at"}))
	if err != nil {
		return nil, err
	}
	items := make([]quiz.Quiz, 0)
	if err = cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (repo *quizRepository) DeleteQuiz(ctx context.Context, region, id string) error {
	return deleteOne(ctx, repo.coll(region), id, quiz.ErrNotFound)
}

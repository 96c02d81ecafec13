package mongodb

import (
	"context"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Akr1040317/hiveUniDash/core/user"
	"github.com/Akr1040317/hiveUniDash/storage/document"
)

var _ user.Repository = (*userRepository)(nil)

type userRepository struct {
	gateway *document.Gateway
}

func NewUserRepository(gateway *document.Gateway) user.Repository {
	return &userRepository{gateway: gateway}
}

func (repo *userRepository) coll(region string) *mongo.Collection {
	return repo.gateway.Resolve(region).Collection(usersCollection)
}

func (repo *userRepository) CreateUser(ctx context.Context, region string, usr user.User) (user.User, error) {
	if usr.ID == "" {
		usr.ID = uuid.New().String()
	}
	if _, err := repo.coll(region).InsertOne(ctx, usr); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context, region string) ([]user.User, error) {
	cur, err := repo.coll(region).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	users := make([]user.User, 0)
	if err = cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(ctx context.Context, region, id string) (user.User, error) {
	var usr user.User
	if err := findOne(ctx, repo.coll(region), id, &usr, user.ErrNotFound); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, region, email string) (user.User, error) {
	var usr user.User
	err := repo.coll(region).FindOne(ctx, bson.M{"email": email}).Decode(&usr)
	if err == mongo.ErrNoDocuments {
		return user.User{}, user.ErrNotFound
	}
	if err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo *userRepository) UpdateUser(ctx context.Context, region string, usr user.User) (user.User, error) {
	res, err := repo.coll(region).ReplaceOne(ctx, bson.M{"_id": usr.ID}, usr)
	if err != nil {
		return user.User{}, err
	}
	if res.MatchedCount == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo *userRepository) DeleteUsersByID(ctx context.Context, region string, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.coll(region).DeleteMany(ctx, bson.M{"_id": bson.M{"$in": ids}})
	return err
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/isratemma/FinEase-Backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	transactionsCollection = "add"
	usersCollection        = "user"
)

// Storage errors recognised by the service layer.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Repository provides database operations
type Repository struct {
	transactions *mongo.Collection
	users        *mongo.Collection
}

// NewRepository initializes a new repository
func NewRepository(db *mongo.Database) *Repository {
	return &Repository{
		transactions: db.Collection(transactionsCollection),
		users:        db.Collection(usersCollection),
	}
}

// EnsureIndexes creates the unique email index that makes the user upsert
// race-free. Call once at startup, before requests are accepted.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create user email index: %w", err)
	}
	return nil
}

// TypeTotals sums amounts per transaction type for one owner.
func (r *Repository) TypeTotals(ctx context.Context, email string) ([]models.TypeTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "email", Value: email}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$type"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}
	cur, err := r.transactions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate type totals: %w", err)
	}
	var totals []models.TypeTotal
	if err := cur.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("failed to decode type totals: %w", err)
	}
	return totals, nil
}

// CategoryTotals sums amounts per category for one owner. Group order is
// whatever the server produces.
func (r *Repository) CategoryTotals(ctx context.Context, email string) ([]models.CategoryTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "email", Value: email}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$category"},
			{Key: "total", Value: bson.D{{Key: "$sum", Value: "$amount"}}},
		}}},
	}
	cur, err := r.transactions.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate category totals: %w", err)
	}
	var totals []models.CategoryTotal
	if err := cur.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("failed to decode category totals: %w", err)
	}
	return totals, nil
}

// FindTransactions returns all transactions for one owner, newest first.
func (r *Repository) FindTransactions(ctx context.Context, email string) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.transactions.Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find transactions: %w", err)
	}
	var transactions []models.Transaction
	if err := cur.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("failed to decode transactions: %w", err)
	}
	return transactions, nil
}

// FindTransactionByID retrieves a single transaction
func (r *Repository) FindTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error) {
	var tx models.Transaction
	err := r.transactions.FindOne(ctx, bson.M{"_id": id}).Decode(&tx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find transaction: %w", err)
	}
	return &tx, nil
}

// InsertTransaction stores a new transaction and returns its generated id
func (r *Repository) InsertTransaction(ctx context.Context, tx *models.Transaction) (primitive.ObjectID, error) {
	res, err := r.transactions.InsertOne(ctx, tx)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert transaction: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

// UpdateTransaction applies a partial $set to one transaction.
// ErrNotFound when nothing matched the id.
func (r *Repository) UpdateTransaction(ctx context.Context, id primitive.ObjectID, fields bson.M) error {
	res, err := r.transactions.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTransaction removes one transaction. ErrNotFound when nothing matched.
func (r *Repository) DeleteTransaction(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.transactions.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// FindUserByEmail retrieves a user by email
func (r *Repository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

// UpdateUserByEmail applies a $set to the user holding the email and returns
// the updated document. ErrNotFound when no user has that email.
func (r *Repository) UpdateUserByEmail(ctx context.Context, email string, fields bson.M) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var user models.User
	err := r.users.FindOneAndUpdate(ctx, bson.M{"email": email}, bson.M{"$set": fields}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return &user, nil
}

// InsertUser stores a new user. ErrDuplicateEmail when the unique email
// index rejects the write.
func (r *Repository) InsertUser(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := r.users.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return primitive.NilObjectID, ErrDuplicateEmail
	}
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("failed to insert user: %w", err)
	}
	return res.InsertedID.(primitive.ObjectID), nil
}

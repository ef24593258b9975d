package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/isratemma/FinEase-Backend/internal/models"
	"github.com/isratemma/FinEase-Backend/internal/repository"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// Sentinel errors mapped to HTTP statuses by the handler layer.
var (
	ErrInvalidData = errors.New("invalid data")
	ErrInvalidID   = errors.New("invalid id")
	// ErrNotFound is surfaced unchanged from the repository.
	ErrNotFound = repository.ErrNotFound
)

// Store is the persistence surface the service needs. Implemented by
// repository.Repository; faked in tests.
type Store interface {
	TypeTotals(ctx context.Context, email string) ([]models.TypeTotal, error)
	CategoryTotals(ctx context.Context, email string) ([]models.CategoryTotal, error)
	FindTransactions(ctx context.Context, email string) ([]models.Transaction, error)
	FindTransactionByID(ctx context.Context, id primitive.ObjectID) (*models.Transaction, error)
	InsertTransaction(ctx context.Context, tx *models.Transaction) (primitive.ObjectID, error)
	UpdateTransaction(ctx context.Context, id primitive.ObjectID, fields bson.M) error
	DeleteTransaction(ctx context.Context, id primitive.ObjectID) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserByEmail(ctx context.Context, email string, fields bson.M) (*models.User, error)
	InsertUser(ctx context.Context, user *models.User) (primitive.ObjectID, error)
}

// Service handles business logic
type Service struct {
	store Store
	log   *logrus.Logger
	now   func() time.Time
}

// NewService initializes a new service
func NewService(store Store, log *logrus.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// Overview reports income and expense totals plus the balance for one owner.
// Types with no transactions report zero.
func (s *Service) Overview(ctx context.Context, email string) (models.Overview, error) {
	totals, err := s.store.TypeTotals(ctx, email)
	if err != nil {
		return models.Overview{}, err
	}
	return overviewFromTotals(totals), nil
}

func overviewFromTotals(totals []models.TypeTotal) models.Overview {
	var o models.Overview
	for _, t := range totals {
		switch t.Type {
		case "income":
			o.TotalIncome = t.Total
		case "expense":
			o.TotalExpense = t.Total
		}
	}
	o.Balance = o.TotalIncome - o.TotalExpense
	return o
}

// ListTransactions returns all transactions for one owner, newest first.
func (s *Service) ListTransactions(ctx context.Context, email string) ([]models.Transaction, error) {
	return s.store.FindTransactions(ctx, email)
}

// CategoryTotals reports per-category amount sums for one owner.
func (s *Service) CategoryTotals(ctx context.Context, email string) ([]models.CategoryTotal, error) {
	return s.store.CategoryTotals(ctx, email)
}

// GetTransaction retrieves one transaction by its hex id.
func (s *Service) GetTransaction(ctx context.Context, id string) (*models.Transaction, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return s.store.FindTransactionByID(ctx, oid)
}

// CreateTransaction validates and stores a new transaction, stamping
// createdAt server-side. Returns the generated id.
func (s *Service) CreateTransaction(ctx context.Context, req models.CreateTransactionRequest) (primitive.ObjectID, error) {
	if req.Email == "" || req.Type == "" || req.Amount == 0 {
		return primitive.NilObjectID, fmt.Errorf("%w: email, amount and type are required", ErrInvalidData)
	}

	now := s.now()
	date := now
	if req.Date != "" {
		var err error
		date, err = parseDate(req.Date)
		if err != nil {
			return primitive.NilObjectID, fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
	}

	id, err := s.store.InsertTransaction(ctx, &models.Transaction{
		Email:     req.Email,
		Type:      req.Type,
		Category:  req.Category,
		Amount:    float64(req.Amount),
		Date:      date,
		CreatedAt: now,
	})
	if err != nil {
		return primitive.NilObjectID, err
	}

	s.log.WithFields(logrus.Fields{"email": req.Email, "type": req.Type}).Info("transaction created")
	return id, nil
}

// UpdateTransaction applies a partial merge: only the non-nil request fields
// change, everything else is untouched.
func (s *Service) UpdateTransaction(ctx context.Context, id string, req models.UpdateTransactionRequest) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	fields := bson.M{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Type != nil {
		fields["type"] = *req.Type
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Amount != nil {
		fields["amount"] = float64(*req.Amount)
	}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		fields["date"] = date
	}
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrInvalidData)
	}

	return s.store.UpdateTransaction(ctx, oid, fields)
}

// DeleteTransaction removes one transaction by its hex id.
func (s *Service) DeleteTransaction(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return s.store.DeleteTransaction(ctx, oid)
}

// GetUserByEmail returns the public projection of the user holding the email.
func (s *Service) GetUserByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	user, err := s.store.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		Email:     user.Email,
		ImgURL:    user.ImgURL,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}, nil
}

// SaveUser creates a user or updates the one holding the email. The unique
// index on email turns a lost create race into a duplicate key error, which
// retries as an update, so concurrent saves converge on one document.
// The returned flag is true when a new user was created.
func (s *Service) SaveUser(ctx context.Context, req models.SaveUserRequest) (primitive.ObjectID, bool, error) {
	if req.FirstName == "" || req.Email == "" || req.ImgURL == "" {
		return primitive.NilObjectID, false, fmt.Errorf("%w: firstName, email and imgUrl are required", ErrInvalidData)
	}

	var hashed string
	if req.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return primitive.NilObjectID, false, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed = string(h)
	}

	fields := bson.M{
		"firstName": req.FirstName,
		"imgUrl":    req.ImgURL,
		"updatedAt": s.now(),
	}
	if hashed != "" {
		fields["password"] = hashed
	}

	for attempt := 0; ; attempt++ {
		user, err := s.store.UpdateUserByEmail(ctx, req.Email, fields)
		if err == nil {
			s.log.WithField("email", req.Email).Info("user updated")
			return user.ID, false, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return primitive.NilObjectID, false, err
		}

		id, err := s.store.InsertUser(ctx, &models.User{
			FirstName: req.FirstName,
			Email:     req.Email,
			Password:  hashed,
			ImgURL:    req.ImgURL,
			CreatedAt: s.now(),
		})
		if err == nil {
			s.log.WithField("email", req.Email).Info("user created")
			return id, true, nil
		}
		if !errors.Is(err, repository.ErrDuplicateEmail) || attempt > 0 {
			return primitive.NilObjectID, false, err
		}
		// lost a create race; the document exists now, update it instead
	}
}

// parseDate accepts RFC 3339 timestamps and bare YYYY-MM-DD dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}

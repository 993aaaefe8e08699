package neo4j

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/tanit/user-management/internal/core/domain"
)

// UserRepository persists user accounts as (:User) nodes keyed by email.
type UserRepository struct {
	driver   neo4j.DriverWithContext
	database string
}

func NewUserRepository(driver neo4j.DriverWithContext, database string) *UserRepository {
	return &UserRepository{driver: driver, database: database}
}

// EnsureSchema creates the uniqueness constraint on :User(email). The
// existence check before insert and the insert itself are separate
// operations, so this constraint is what actually guarantees one user per
// email under concurrent signups.
func (r *UserRepository) EnsureSchema(ctx context.Context) error {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: r.database})
	defer session.Close(ctx)

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"CREATE CONSTRAINT user_email_unique IF NOT EXISTS FOR (u:User) REQUIRE u.email IS UNIQUE",
			nil)
		if err != nil {
			return nil, err
		}
		return nil, res.Err()
	})
	if err != nil {
		return fmt.Errorf("ensure user schema: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: r.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"MATCH (u:User {email: $email}) RETURN u.email, u.password_hash, u.full_name, u.created_at",
			map[string]any{"email": email})
		if err != nil {
			return nil, err
		}

		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		if len(records) == 0 {
			return nil, domain.ErrUserNotFound
		}
		return recordToUser(records[0])
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return result.(*domain.User), nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	session := r.driver.NewSession(ctx, neo4j.SessionConfig{DatabaseName: r.database})
	defer session.Close(ctx)

	// Returning the node from the write transaction avoids a follow-up read
	// that a causally lagging replica could answer with "not found".
	result, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx,
			"CREATE (u:User {email: $email, password_hash: $password_hash, full_name: $full_name, created_at: $created_at}) "+
				"RETURN u.email, u.password_hash, u.full_name, u.created_at",
			map[string]any{
				"email":         user.Email,
				"password_hash": user.PasswordHash,
				"full_name":     user.FullName,
				"created_at":    user.CreatedAt.Unix(),
			})
		if err != nil {
			return nil, err
		}
		record, err := res.Single(ctx)
		if err != nil {
			return nil, err
		}
		return recordToUser(record)
	})
	if err != nil {
		if isConstraintViolation(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	return result.(*domain.User), nil
}

// isConstraintViolation reports whether the error is the unique-constraint
// failure raised when a second signup races past the existence check.
func isConstraintViolation(err error) bool {
	var neoErr *db.Neo4jError
	return errors.As(err, &neoErr) && neoErr.Code == "Neo.ClientError.Schema.ConstraintValidationFailed"
}

func recordToUser(record *db.Record) (*domain.User, error) {
	email, _ := record.Values[0].(string)
	passwordHash, _ := record.Values[1].(string)
	fullName, _ := record.Values[2].(string)
	createdAt, _ := record.Values[3].(int64)

	if email == "" {
		return nil, fmt.Errorf("user record missing email")
	}

	return &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		CreatedAt:    unixToTime(createdAt),
	}, nil
}

func unixToTime(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}

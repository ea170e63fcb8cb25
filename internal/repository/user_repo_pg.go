package repository

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/mkolev/routecatalog/internal/domain"
	"github.com/mkolev/routecatalog/internal/store"
)

type UserRepository interface {
	Insert(ctx context.Context, user domain.User) error
	List(ctx context.Context) ([]domain.User, error)
}

type PGUserRepository struct {
	db   *store.DB
	mode QueryMode
}

func NewUserRepository(db *store.DB, mode QueryMode) UserRepository {
	return &PGUserRepository{db: db, mode: mode}
}

func (r *PGUserRepository) Insert(ctx context.Context, user domain.User) error {
	sess, err := r.db.Session(ctx)
	if err != nil {
		return domain.Internalf("insert user: %v", err)
	}
	defer sess.Close()

	if r.mode == ModeConcatenated {
		query := insertUserSQL(user)
		log.Debug().Str("query", query).Msg("executing concatenated insert")
		_, err = sess.Exec(ctx, query)
	} else {
		_, err = sess.Exec(ctx, insertUserStmt, user.Username, user.Password, int(user.Type))
	}
	if err != nil {
		return domain.Internalf("insert user: %v", err)
	}
	return nil
}

func (r *PGUserRepository) List(ctx context.Context) ([]domain.User, error) {
	sess, err := r.db.Session(ctx)
	if err != nil {
		return nil, domain.Internalf("list users: %v", err)
	}
	defer sess.Close()

	rows, err := sess.Query(ctx, selectUsersStmt)
	if err != nil {
		return nil, domain.Internalf("list users: %v", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var (
			u      domain.User
			typeID int
		)
		if err := rows.Scan(&u.Username, &u.Password, &typeID); err != nil {
			return nil, domain.Internalf("scan user: %v", err)
		}
		u.Type = domain.Role(typeID)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.Internalf("list users: %v", err)
	}
	return users, nil
}

var _ UserRepository = (*PGUserRepository)(nil)

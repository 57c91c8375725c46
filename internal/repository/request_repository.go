package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/request-service/internal/domain"
)

// ErrNotFound is returned by repositories when a record does not exist.
var ErrNotFound = errors.New("record not found")

// RequestFilter narrows list queries. Nil fields match everything; set
// fields combine with AND.
type RequestFilter struct {
	State     *domain.RequestState
	Type      *domain.RequestType
	Priority  *domain.Priority
	HandlerID *string
}

// RequestRepository defines persistence access for requests and their
// audit trail. Save persists the request row together with any history
// entries that do not yet have an ID, atomically per record.
type RequestRepository interface {
	Create(ctx context.Context, request *domain.Request) error
	GetByID(ctx context.Context, id string) (*domain.Request, error)
	List(ctx context.Context) ([]domain.Request, error)
	ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, error)
	ListByRequester(ctx context.Context, requesterID string) ([]domain.Request, error)
	ListByHandler(ctx context.Context, handlerID string) ([]domain.Request, error)
	Save(ctx context.Context, request *domain.Request) error
}

type requestRepository struct {
	pool *pgxpool.Pool
}

// NewRequestRepository returns a Postgres-backed implementation.
func NewRequestRepository(pool *pgxpool.Pool) RequestRepository {
	return &requestRepository{pool: pool}
}

const requestColumns = `id, request_type, description, origin_channel, created_at, state,
    priority, priority_reason, requester_id, handler_id, deadline, closing_remark`

func (r *requestRepository) Create(ctx context.Context, request *domain.Request) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        INSERT INTO requests (request_type, description, origin_channel, created_at, state,
            priority, priority_reason, requester_id, handler_id, deadline, closing_remark)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id`
	if err := tx.QueryRow(ctx, query,
		request.Type,
		request.Description,
		request.Channel,
		request.CreatedAt,
		request.State,
		request.Priority,
		request.PriorityReason,
		request.RequesterID,
		request.HandlerID,
		request.Deadline,
		request.ClosingRemark,
	).Scan(&request.ID); err != nil {
		return err
	}

	if err := insertNewHistory(ctx, tx, request); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*domain.Request, error) {
	request, err := r.fetchSingle(ctx, id)
	if err != nil {
		return nil, err
	}
	history, err := r.fetchHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	request.History = history
	return request, nil
}

// List returns all requests, newest first, without their history.
func (r *requestRepository) List(ctx context.Context) ([]domain.Request, error) {
	return r.ListWithFilter(ctx, RequestFilter{})
}

func (r *requestRepository) ListWithFilter(ctx context.Context, filter RequestFilter) ([]domain.Request, error) {
	var (
		clauses []string
		args    []any
	)
	appendClause := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if filter.State != nil {
		appendClause("state", *filter.State)
	}
	if filter.Type != nil {
		appendClause("request_type", *filter.Type)
	}
	if filter.Priority != nil {
		appendClause("priority", *filter.Priority)
	}
	if filter.HandlerID != nil {
		appendClause("handler_id", *filter.HandlerID)
	}

	query := `SELECT ` + requestColumns + ` FROM requests`
	if len(clauses) > 0 {
		query += ` WHERE ` + strings.Join(clauses, " AND ")
	}
	query += ` ORDER BY created_at DESC`
	return r.fetchMany(ctx, query, args...)
}

func (r *requestRepository) ListByRequester(ctx context.Context, requesterID string) ([]domain.Request, error) {
	return r.fetchMany(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE requester_id=$1 ORDER BY created_at DESC`, requesterID)
}

func (r *requestRepository) ListByHandler(ctx context.Context, handlerID string) ([]domain.Request, error) {
	return r.fetchMany(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE handler_id=$1 ORDER BY created_at DESC`, handlerID)
}

func (r *requestRepository) Save(ctx context.Context, request *domain.Request) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const query = `
        UPDATE requests SET request_type=$1, description=$2, origin_channel=$3, state=$4,
            priority=$5, priority_reason=$6, handler_id=$7, deadline=$8, closing_remark=$9
        WHERE id=$10`
	cmd, err := tx.Exec(ctx, query,
		request.Type,
		request.Description,
		request.Channel,
		request.State,
		request.Priority,
		request.PriorityReason,
		request.HandlerID,
		request.Deadline,
		request.ClosingRemark,
		request.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := insertNewHistory(ctx, tx, request); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// insertNewHistory persists history entries that have no ID yet; already
// stored entries are left untouched.
func insertNewHistory(ctx context.Context, tx pgx.Tx, request *domain.Request) error {
	const query = `
        INSERT INTO request_history (request_id, occurred_at, action, actor_id, note)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id`
	for i := range request.History {
		entry := &request.History[i]
		if entry.ID != "" {
			continue
		}
		entry.RequestID = request.ID
		if err := tx.QueryRow(ctx, query,
			entry.RequestID,
			entry.Timestamp,
			entry.Action,
			entry.ActorID,
			entry.Note,
		).Scan(&entry.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *requestRepository) fetchSingle(ctx context.Context, id string) (*domain.Request, error) {
	var request domain.Request
	if err := r.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM requests WHERE id=$1`, id).Scan(
		&request.ID,
		&request.Type,
		&request.Description,
		&request.Channel,
		&request.CreatedAt,
		&request.State,
		&request.Priority,
		&request.PriorityReason,
		&request.RequesterID,
		&request.HandlerID,
		&request.Deadline,
		&request.ClosingRemark,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *requestRepository) fetchHistory(ctx context.Context, requestID string) ([]domain.RequestHistory, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, request_id, occurred_at, action, actor_id, note
        FROM request_history
        WHERE request_id=$1
        ORDER BY occurred_at ASC, id ASC`, requestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var history []domain.RequestHistory
	for rows.Next() {
		var entry domain.RequestHistory
		if err := rows.Scan(
			&entry.ID,
			&entry.RequestID,
			&entry.Timestamp,
			&entry.Action,
			&entry.ActorID,
			&entry.Note,
		); err != nil {
			return nil, err
		}
		history = append(history, entry)
	}
	return history, rows.Err()
}

func (r *requestRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Request, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Request
	for rows.Next() {
		var request domain.Request
		if err := rows.Scan(
			&request.ID,
			&request.Type,
			&request.Description,
			&request.Channel,
			&request.CreatedAt,
			&request.State,
			&request.Priority,
			&request.PriorityReason,
			&request.RequesterID,
			&request.HandlerID,
			&request.Deadline,
			&request.ClosingRemark,
		); err != nil {
			return nil, err
		}
		result = append(result, request)
	}
	return result, rows.Err()
}

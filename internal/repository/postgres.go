package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/titanmaster/vortexproxies/internal/models"
)

// PostgresStore implements the directory repositories against PostgreSQL.
//
// It honors the same contract as MemoryStore: absent records surface as nil
// values (or false for deletes), never as errors. The seq column assigned by
// the database provides the deterministic tie-break for equal creation times.
type PostgresStore struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresStore creates a new PostgresStore with the given database connection.
// db must be a valid *sql.DB connected to a PostgreSQL instance.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// GetUser returns the user with the given id, or nil if absent.
func (s *PostgresStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT id, username, password FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername returns the user with the given username, or nil if absent.
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT id, username, password FROM users WHERE username = $1`,
		username,
	).Scan(&u.ID, &u.Username, &u.Password)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a user with a fresh id and the given password composite.
func (s *PostgresStore) CreateUser(ctx context.Context, username, passwordHash string) (*models.User, error) {
	u := models.User{ID: uuid.NewString(), Username: username, Password: passwordHash}
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, username, password) VALUES ($1, $2, $3)`,
		u.ID, u.Username, u.Password,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetProxyLink returns the link with the given id, or nil if absent.
func (s *PostgresStore) GetProxyLink(ctx context.Context, id string) (*models.ProxyLink, error) {
	var l models.ProxyLink
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT id, name, url, description, active, created_at FROM proxy_links WHERE id = $1`,
		id,
	).Scan(&l.ID, &l.Name, &l.URL, &l.Description, &l.Active, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetProxyLinks returns all proxy links, newest first.
func (s *PostgresStore) GetProxyLinks(ctx context.Context) ([]models.ProxyLink, error) {
	return s.queryLinks(ctx, `SELECT id, name, url, description, active, created_at
	   FROM proxy_links ORDER BY created_at DESC, seq DESC`)
}

// GetActiveProxyLinks returns only active proxy links, newest first.
func (s *PostgresStore) GetActiveProxyLinks(ctx context.Context) ([]models.ProxyLink, error) {
	return s.queryLinks(ctx, `SELECT id, name, url, description, active, created_at
	   FROM proxy_links WHERE active = TRUE ORDER BY created_at DESC, seq DESC`)
}

func (s *PostgresStore) queryLinks(ctx context.Context, query string, args ...any) ([]models.ProxyLink, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ProxyLink{}
	for rows.Next() {
		var l models.ProxyLink
		if err := rows.Scan(&l.ID, &l.Name, &l.URL, &l.Description, &l.Active, &l.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

// CreateProxyLink inserts a proxy link; active defaults to true when omitted.
func (s *PostgresStore) CreateProxyLink(ctx context.Context, in models.InsertProxyLink) (*models.ProxyLink, error) {
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	l := models.ProxyLink{
		ID:          uuid.NewString(),
		Name:        in.Name,
		URL:         in.URL,
		Description: in.Description,
		Active:      active,
		CreatedAt:   time.Now(),
	}
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO proxy_links (id, name, url, description, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.Name, l.URL, l.Description, l.Active, l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateProxyLink merges the non-nil fields of upd onto the stored link.
// Returns nil when no link has the given id.
func (s *PostgresStore) UpdateProxyLink(ctx context.Context, id string, upd models.UpdateProxyLink) (*models.ProxyLink, error) {
	var l models.ProxyLink
	err := s.DB.QueryRowContext(
		ctx,
		`UPDATE proxy_links
		    SET name        = COALESCE($2, name),
		        url         = COALESCE($3, url),
		        description = COALESCE($4, description),
		        active      = COALESCE($5, active)
		  WHERE id = $1
		  RETURNING id, name, url, description, active, created_at`,
		id, upd.Name, upd.URL, upd.Description, upd.Active,
	).Scan(&l.ID, &l.Name, &l.URL, &l.Description, &l.Active, &l.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// DeleteProxyLink removes a link by id, reporting whether it existed.
func (s *PostgresStore) DeleteProxyLink(ctx context.Context, id string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM proxy_links WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetAnnouncements returns all announcements, newest first.
func (s *PostgresStore) GetAnnouncements(ctx context.Context) ([]models.Announcement, error) {
	return s.queryAnnouncements(ctx, `SELECT id, text, type, created_at
	   FROM announcements ORDER BY created_at DESC, seq DESC`)
}

// GetAnnouncementsByType returns announcements of the given type, newest first.
func (s *PostgresStore) GetAnnouncementsByType(ctx context.Context, t models.AnnouncementType) ([]models.Announcement, error) {
	return s.queryAnnouncements(ctx, `SELECT id, text, type, created_at
	   FROM announcements WHERE type = $1 ORDER BY created_at DESC, seq DESC`, string(t))
}

func (s *PostgresStore) queryAnnouncements(ctx context.Context, query string, args ...any) ([]models.Announcement, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Announcement{}
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.Text, &a.Type, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// CreateAnnouncement inserts an announcement with a fresh id and creation time.
func (s *PostgresStore) CreateAnnouncement(ctx context.Context, in models.InsertAnnouncement) (*models.Announcement, error) {
	a := models.Announcement{
		ID:        uuid.NewString(),
		Text:      in.Text,
		Type:      in.Type,
		CreatedAt: time.Now(),
	}
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO announcements (id, text, type, created_at) VALUES ($1, $2, $3, $4)`,
		a.ID, a.Text, string(a.Type), a.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAnnouncement removes an announcement by id, reporting whether it existed.
func (s *PostgresStore) DeleteAnnouncement(ctx context.Context, id string) (bool, error) {
	res, err := s.DB.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// GetFeedback returns all feedback entries, newest first.
func (s *PostgresStore) GetFeedback(ctx context.Context) ([]models.Feedback, error) {
	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, email, type, message, created_at
	   FROM feedback ORDER BY created_at DESC, seq DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Feedback{}
	for rows.Next() {
		var f models.Feedback
		if err := rows.Scan(&f.ID, &f.Name, &f.Email, &f.Type, &f.Message, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// CreateFeedback inserts a feedback entry. Empty name and email are stored
// as NULL rather than empty strings.
func (s *PostgresStore) CreateFeedback(ctx context.Context, in models.InsertFeedback) (*models.Feedback, error) {
	f := models.Feedback{
		ID:        uuid.NewString(),
		Name:      optional(in.Name),
		Email:     optional(in.Email),
		Type:      in.Type,
		Message:   in.Message,
		CreatedAt: time.Now(),
	}
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO feedback (id, name, email, type, message, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.Name, f.Email, f.Type, f.Message, f.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

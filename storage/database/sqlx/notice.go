package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/notice"
)

type noticeRow struct {
	ID        string    `db:"id"`
	SchoolID  string    `db:"school_id"`
	Date      core.Date `db:"date"`
	Title     string    `db:"title"`
	Message   string    `db:"message"`
	Category  string    `db:"category"`
	Target    string    `db:"target"`
	CreatedAt time.Time `db:"created_at"`
}

var noticeColumns = []string{"id", "school_id", "date", "title", "message", "category", "target", "created_at"}

type noticeRepository struct {
	db core.DB
}

var _ notice.Repository = (*noticeRepository)(nil) // interface compliance check

func NewNoticeRepository(db core.DB) *noticeRepository {
	return &noticeRepository{db: db}
}

func (repo noticeRepository) CreateNotice(ctx context.Context, n notice.Notice) (notice.Notice, error) {
	n.ID = newID()
	q := psql.Insert("notices").Columns(noticeColumns...).
		Values(n.ID, n.SchoolID, n.Date, n.Title, n.Message, n.Category, n.Target, n.CreatedAt.UTC())
	if _, err := execQuery(ctx, repo.db, q); err != nil {
		return notice.Notice{}, errors.Wrap(err, "inserting notice")
	}
	return n, nil
}

func (repo noticeRepository) QueryNotices(ctx context.Context, filter notice.QueryFilter) ([]notice.Notice, error) {
	q := psql.Select(noticeColumns...).From("notices").
		Where(sq.Eq{"school_id": filter.SchoolID}).
		OrderBy("created_at DESC", "id DESC")
	if filter.Targets != nil {
		q = q.Where(sq.Eq{"target": filter.Targets})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	var rows []noticeRow
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying notices")
	}
	notices := make([]notice.Notice, 0, len(rows))
	for _, r := range rows {
		notices = append(notices, notice.Notice{
			ID:        r.ID,
			SchoolID:  r.SchoolID,
			Date:      r.Date,
			Title:     r.Title,
			Message:   r.Message,
			Category:  r.Category,
			Target:    r.Target,
			CreatedAt: r.CreatedAt.UTC(),
		})
	}
	return notices, nil
}

func (repo noticeRepository) DeleteNotice(ctx context.Context, schoolID, id string) error {
	n, err := execQuery(ctx, repo.db, psql.Delete("notices").Where(sq.Eq{"id": id, "school_id": schoolID}))
	if err != nil {
		return errors.Wrap(err, "deleting notice")
	}
	if n == 0 {
		return notice.ErrNotFound
	}
	return nil
}

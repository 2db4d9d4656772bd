package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/curriculum"
)

type curriculumTable struct {
	name      string
	parentCol string
	nameCol   string
	orderBy   string
}

var curriculumTables = map[curriculum.Level]curriculumTable{
	curriculum.LevelClass:    {name: "school_classes", parentCol: "school_id", nameCol: "class_name", orderBy: "class_name"},
	curriculum.LevelSubject:  {name: "class_subjects", parentCol: "class_id", nameCol: "subject_name", orderBy: "subject_name"},
	curriculum.LevelLesson:   {name: "subject_lessons", parentCol: "subject_id", nameCol: "lesson_name", orderBy: "lesson_name"},
	curriculum.LevelHomework: {name: "lesson_homework", parentCol: "lesson_id", nameCol: "homework_template", orderBy: "created_at"},
}

type curriculumRow struct {
	ID        string    `db:"id"`
	ParentID  string    `db:"parent_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

type curriculumRepository struct {
	db core.DB
}

var _ curriculum.Repository = (*curriculumRepository)(nil) // interface compliance check

func NewCurriculumRepository(db core.DB) *curriculumRepository {
	return &curriculumRepository{db: db}
}

func tableOf(level curriculum.Level) (curriculumTable, error) {
	t, ok := curriculumTables[level]
	if !ok {
		return curriculumTable{}, curriculum.ErrInvalidLevel
	}
	return t, nil
}

// ownedBy restricts the rows of level to the tree of schoolID, climbing the parent tables up to school_classes.
func ownedBy(level curriculum.Level, schoolID string) (sq.Sqlizer, error) {
	t, err := tableOf(level)
	if err != nil {
		return nil, err
	}
	parent, ok := level.Parent()
	if !ok {
		return sq.Eq{t.parentCol: schoolID}, nil
	}
	pt, _ := tableOf(parent)
	cond, err := ownedBy(parent, schoolID)
	if err != nil {
		return nil, err
	}
	sub, args, err := sq.Select("id").From(pt.name).Where(cond).ToSql()
	if err != nil {
		return nil, errors.Wrapf(err, "building %s ownership query", pt.name)
	}
	return sq.Expr(t.parentCol+" IN ("+sub+")", args...), nil
}

// checkParent fails with curriculum.ErrNotFound unless parentID is an item of the level above level in schoolID's tree.
func (repo curriculumRepository) checkParent(ctx context.Context, level curriculum.Level, schoolID, parentID string) error {
	parent, ok := level.Parent()
	if !ok {
		if parentID != schoolID {
			return curriculum.ErrNotFound
		}
		return nil
	}
	pt, err := tableOf(parent)
	if err != nil {
		return err
	}
	cond, err := ownedBy(parent, schoolID)
	if err != nil {
		return err
	}
	var n int
	q := psql.Select("COUNT(*)").From(pt.name).Where(sq.Eq{"id": parentID}).Where(cond)
	if err = getQuery(ctx, repo.db, &n, q); err != nil {
		return errors.Wrapf(err, "checking parent in %s", pt.name)
	}
	if n == 0 {
		return curriculum.ErrNotFound
	}
	return nil
}

func (repo curriculumRepository) CreateItem(ctx context.Context, level curriculum.Level, schoolID string, item curriculum.Item) (curriculum.Item, error) {
	t, err := tableOf(level)
	if err != nil {
		return curriculum.Item{}, err
	}
	if err = repo.checkParent(ctx, level, schoolID, item.ParentID); err != nil {
		return curriculum.Item{}, err
	}
	item.ID = newID()
	q := psql.Insert(t.name).
		Columns("id", t.parentCol, t.nameCol, "created_at").
		Values(item.ID, item.ParentID, item.Name, item.CreatedAt.UTC())
	if _, err = execQuery(ctx, repo.db, q); err != nil {
		return curriculum.Item{}, errors.Wrapf(err, "inserting into %s", t.name)
	}
	return item, nil
}

func (repo curriculumRepository) QueryItems(ctx context.Context, level curriculum.Level, schoolID, parentID string) ([]curriculum.Item, error) {
	t, err := tableOf(level)
	if err != nil {
		return nil, err
	}
	if err = repo.checkParent(ctx, level, schoolID, parentID); err != nil {
		return nil, err
	}
	q := psql.Select("id", t.parentCol+" AS parent_id", t.nameCol+" AS name", "created_at").
		From(t.name).
		Where(sq.Eq{t.parentCol: parentID}).
		OrderBy(t.orderBy, "id")

	var rows []curriculumRow
	if err = selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrapf(err, "querying %s", t.name)
	}
	items := make([]curriculum.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, curriculum.Item{ID: r.ID, ParentID: r.ParentID, Name: r.Name, CreatedAt: r.CreatedAt.UTC()})
	}
	return items, nil
}

func (repo curriculumRepository) DeleteItem(ctx context.Context, level curriculum.Level, schoolID, id string) error {
	t, err := tableOf(level)
	if err != nil {
		return err
	}
	cond, err := ownedBy(level, schoolID)
	if err != nil {
		return err
	}
	n, err := execQuery(ctx, repo.db, psql.Delete(t.name).Where(sq.Eq{"id": id}).Where(cond))
	if err != nil {
		return errors.Wrapf(err, "deleting from %s", t.name)
	}
	if n == 0 {
		return curriculum.ErrNotFound
	}
	return nil
}

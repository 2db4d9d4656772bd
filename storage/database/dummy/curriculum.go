package dummydb

import (
	"context"
	"sort"

	"github.com/vidyasetu/backend/core/curriculum"
)

type curriculumRepository struct {
	db *DB
}

var _ curriculum.Repository = (*curriculumRepository)(nil) // interface compliance check

func NewCurriculumRepository(db *DB) *curriculumRepository {
	return &curriculumRepository{db: db}
}

// schoolOf climbs the parents of an item of level up to its class. Broken chains belong to no school.
func (repo *curriculumRepository) schoolOf(level curriculum.Level, item curriculum.Item) string {
	for {
		parent, ok := level.Parent()
		if !ok {
			return item.ParentID
		}
		next, found := repo.db.curriculum[parent][item.ParentID]
		if !found {
			return ""
		}
		level, item = parent, next
	}
}

// checkParent requires parentID to be the school itself for classes, or an item of the level above in its tree.
func (repo *curriculumRepository) checkParent(level curriculum.Level, schoolID, parentID string) error {
	parent, ok := level.Parent()
	if !ok {
		if parentID != schoolID {
			return curriculum.ErrNotFound
		}
		return nil
	}
	item, found := repo.db.curriculum[parent][parentID]
	if !found || schoolID == "" || repo.schoolOf(parent, item) != schoolID {
		return curriculum.ErrNotFound
	}
	return nil
}

func (repo *curriculumRepository) CreateItem(_ context.Context, level curriculum.Level, schoolID string, item curriculum.Item) (curriculum.Item, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	table, ok := repo.db.curriculum[level]
	if !ok {
		return curriculum.Item{}, curriculum.ErrInvalidLevel
	}
	if err := repo.checkParent(level, schoolID, item.ParentID); err != nil {
		return curriculum.Item{}, err
	}
	item.ID = newID()
	table[item.ID] = item
	return item, nil
}

func (repo *curriculumRepository) QueryItems(_ context.Context, level curriculum.Level, schoolID, parentID string) ([]curriculum.Item, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	table, ok := repo.db.curriculum[level]
	if !ok {
		return nil, curriculum.ErrInvalidLevel
	}
	if err := repo.checkParent(level, schoolID, parentID); err != nil {
		return nil, err
	}
	items := make([]curriculum.Item, 0)
	for _, item := range table {
		if item.ParentID == parentID {
			items = append(items, item)
		}
	}
	if level == curriculum.LevelHomework {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].CreatedAt.Equal(items[j].CreatedAt) {
				return items[i].ID < items[j].ID
			}
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		})
	} else {
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Name == items[j].Name {
				return items[i].ID < items[j].ID
			}
			return items[i].Name < items[j].Name
		})
	}
	return items, nil
}

func (repo *curriculumRepository) DeleteItem(_ context.Context, level curriculum.Level, schoolID, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	table, ok := repo.db.curriculum[level]
	if !ok {
		return curriculum.ErrInvalidLevel
	}
	item, ok := table[id]
	if !ok || schoolID == "" || repo.schoolOf(level, item) != schoolID {
		return curriculum.ErrNotFound
	}
	delete(table, id)
	return nil
}

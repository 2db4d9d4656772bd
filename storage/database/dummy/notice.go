package dummydb

import (
	"context"
	"sort"

	"github.com/vidyasetu/backend/core/notice"
)

type noticeRepository struct {
	db *DB
}

var _ notice.Repository = (*noticeRepository)(nil) // interface compliance check

func NewNoticeRepository(db *DB) *noticeRepository {
	return &noticeRepository{db: db}
}

func (repo *noticeRepository) CreateNotice(_ context.Context, n notice.Notice) (notice.Notice, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	n.ID = newID()
	repo.db.notices[n.ID] = n
	return n, nil
}

func (repo *noticeRepository) QueryNotices(_ context.Context, filter notice.QueryFilter) ([]notice.Notice, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	notices := make([]notice.Notice, 0)
	for _, n := range repo.db.notices {
		if n.SchoolID != filter.SchoolID {
			continue
		}
		if filter.Targets != nil && !contains(filter.Targets, n.Target) {
			continue
		}
		notices = append(notices, n)
	}
	sort.SliceStable(notices, func(i, j int) bool {
		return newerFirst(notices[i].CreatedAt, notices[i].ID, notices[j].CreatedAt, notices[j].ID)
	})
	if filter.Limit > 0 && len(notices) > filter.Limit {
		notices = notices[:filter.Limit]
	}
	return notices, nil
}

func (repo *noticeRepository) DeleteNotice(_ context.Context, schoolID, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if n, ok := repo.db.notices[id]; !ok || n.SchoolID != schoolID {
		return notice.ErrNotFound
	}
	delete(repo.db.notices, id)
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// Package curriculum manages a school's syllabus tree: classes, their subjects,
// the lessons of a subject and the homework templates of a lesson.
package curriculum

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
)

var (
	ErrNotFound     = errors.New("curriculum item not found")
	ErrInvalidLevel = errors.New("invalid curriculum level")
)

// Level is a depth of the tree.
type Level string

const (
	LevelClass    Level = "classes"
	LevelSubject  Level = "subjects"
	LevelLesson   Level = "lessons"
	LevelHomework Level = "homework"
)

func (l Level) Valid() bool {
	switch l {
	case LevelClass, LevelSubject, LevelLesson, LevelHomework:
		return true
	}
	return false
}

// Parent is the level an item of l hangs from. Classes hang from the school itself.
func (l Level) Parent() (Level, bool) {
	switch l {
	case LevelSubject:
		return LevelClass, true
	case LevelLesson:
		return LevelSubject, true
	case LevelHomework:
		return LevelLesson, true
	case LevelClass:
		return "", false
	}
	return "", false
}

// Item is a node of the tree. ParentID is the school ID for classes.
type Item struct {
	ID        string    `json:"id"`
	ParentID  string    `json:"parent_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"` // UTC
}

type NewItem struct {
	ParentID string `json:"parent_id" validate:"required"`
	Name     string `json:"name" validate:"required,notblank"`
}

func (ni *NewItem) Validate(validate *validator.Validate) error {
	ni.Name = core.CleanString(ni.Name)
	return validate.Struct(ni)
}

type (
	// Repository scopes every operation to the school at the root of the item's chain.
	// Items of another school are reported as ErrNotFound.
	Repository interface {
		// CreateItem fails with ErrNotFound unless the parent of a non-class item belongs to schoolID.
		CreateItem(ctx context.Context, level Level, schoolID string, item Item) (Item, error)
		// QueryItems returns the children of parentID, by name (homework templates by creation time).
		QueryItems(ctx context.Context, level Level, schoolID, parentID string) ([]Item, error)
		DeleteItem(ctx context.Context, level Level, schoolID, id string) error
	}

	Service struct {
		repo     Repository
		validate *validator.Validate
	}
)

func NewService(repo Repository, validate *validator.Validate) *Service {
	return &Service{repo: repo, validate: validate}
}

// Add creates an item of schoolID's tree. Classes always hang from the school itself.
func (svc *Service) Add(ctx context.Context, level Level, schoolID string, ni NewItem) (Item, error) {
	if !level.Valid() {
		return Item{}, ErrInvalidLevel
	}
	if _, ok := level.Parent(); !ok {
		ni.ParentID = schoolID
	}
	if err := ni.Validate(svc.validate); err != nil {
		return Item{}, err
	}
	item, err := svc.repo.CreateItem(ctx, level, schoolID, Item{ParentID: ni.ParentID, Name: ni.Name, CreatedAt: core.NowFunc().UTC()})
	return item, errors.Wrapf(err, "creating %s item", level)
}

// List returns the children of parentID. Classes are listed for schoolID whatever parentID is.
func (svc *Service) List(ctx context.Context, level Level, schoolID, parentID string) ([]Item, error) {
	if !level.Valid() {
		return nil, ErrInvalidLevel
	}
	if _, ok := level.Parent(); !ok {
		parentID = schoolID
	}
	return svc.repo.QueryItems(ctx, level, schoolID, parentID)
}

func (svc *Service) Delete(ctx context.Context, level Level, schoolID, id string) error {
	if !level.Valid() {
		return ErrInvalidLevel
	}
	return svc.repo.DeleteItem(ctx, level, schoolID, id)
}

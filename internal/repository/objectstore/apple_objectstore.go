// Package objectstore keeps apples as JSON documents in an S3-compatible bucket,
// one object per apple at apples/<escaped id>.json. Ids are path-escaped so every
// key stays a single segment under the prefix.
package objectstore

import (
	"bytes"
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"applesapi/internal/model"
	"applesapi/internal/repository"
	"applesapi/internal/storage"
)

const (
	keyPrefix   = "apples/"
	keySuffix   = ".json"
	contentType = "application/json"
)

// document is the on-bucket layout. Field names mirror the relational columns.
type document struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AppleObjectStore implements repository.AppleRepository on top of storage.Storage.
type AppleObjectStore struct {
	store storage.Storage
}

// NewAppleObjectStore creates a document-store backed repository.
func NewAppleObjectStore(store storage.Storage) *AppleObjectStore {
	return &AppleObjectStore{store: store}
}

var _ repository.AppleRepository = (*AppleObjectStore)(nil)

func objectKey(id string) string {
	return keyPrefix + url.PathEscape(id) + keySuffix
}

func idFromKey(key string) (string, error) {
	return url.PathUnescape(strings.TrimSuffix(strings.TrimPrefix(key, keyPrefix), keySuffix))
}

// FindByID loads and decodes the apple document.
func (r *AppleObjectStore) FindByID(ctx context.Context, id string) (*model.Apple, error) {
	rc, _, err := r.store.Get(ctx, objectKey(id))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, errors.Wrapf(err, "find apple %s", id)
	}
	defer rc.Close()

	var d document
	if err := json.NewDecoder(rc).Decode(&d); err != nil {
		return nil, errors.Wrapf(err, "decode apple %s", id)
	}
	return &model.Apple{ID: d.ID, Name: d.Name}, nil
}

// ExistsByID stats the object without reading it.
func (r *AppleObjectStore) ExistsByID(ctx context.Context, id string) (bool, error) {
	if _, err := r.store.Stat(ctx, objectKey(id)); err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return false, nil
		}
		return false, errors.Wrapf(err, "check apple %s", id)
	}
	return true, nil
}

// Insert writes the document only if no object exists under the key yet.
func (r *AppleObjectStore) Insert(ctx context.Context, apple *model.Apple) (*model.Apple, error) {
	out, err := r.put(ctx, apple, true)
	if err != nil {
		if errors.Is(err, storage.ErrObjectExists) {
			return nil, repository.ErrAlreadyExists
		}
		return nil, errors.Wrapf(err, "insert apple %s", apple.ID)
	}
	return out, nil
}

// Save overwrites the document for apple.ID.
func (r *AppleObjectStore) Save(ctx context.Context, apple *model.Apple) (*model.Apple, error) {
	out, err := r.put(ctx, apple, false)
	if err != nil {
		return nil, errors.Wrapf(err, "save apple %s", apple.ID)
	}
	return out, nil
}

func (r *AppleObjectStore) put(ctx context.Context, apple *model.Apple, ifAbsent bool) (*model.Apple, error) {
	b, err := json.Marshal(document{ID: apple.ID, Name: apple.Name})
	if err != nil {
		return nil, errors.Wrap(err, "encode")
	}
	_, err = r.store.Put(ctx, objectKey(apple.ID), bytes.NewReader(b), storage.PutObjectOptions{
		Size:        int64(len(b)),
		ContentType: contentType,
		IfAbsent:    ifAbsent,
	})
	if err != nil {
		return nil, err
	}
	out := *apple
	return &out, nil
}

// DeleteByID removes the document. S3 deletes of missing keys already succeed.
func (r *AppleObjectStore) DeleteByID(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, objectKey(id)); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return errors.Wrapf(err, "delete apple %s", id)
	}
	return nil
}

// List pages over the sorted key listing and fetches only the documents in the window.
func (r *AppleObjectStore) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.Apple], error) {
	keys, err := r.store.List(ctx, keyPrefix)
	if err != nil {
		return nil, errors.Wrap(err, "list apples")
	}

	total := len(keys)
	start := min(max(pq.Offset, 0), total)
	end := min(start+max(pq.Limit, 0), total)

	items := make([]model.Apple, 0, end-start)
	for _, key := range keys[start:end] {
		id, err := idFromKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "parse key %s", key)
		}
		a, err := r.FindByID(ctx, id)
		if err != nil {
			// Deleted between listing and fetch.
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		items = append(items, *a)
	}

	return &repository.PageResult[model.Apple]{
		Items: items,
		Total: total,
	}, nil
}

package store

import (
	"context"
	"fmt"

	"github.com/abhisek/lessoncraft/ent"
	"github.com/abhisek/lessoncraft/ent/kventry"
)

// kvRepo implements KVRepo on the kv_entries table.
type kvRepo struct {
	client *ent.Client
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, error) {
	e, err := r.client.KVEntry.Query().
		Where(kventry.Key(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return e.Value, nil
}

func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	n, err := r.client.KVEntry.Update().
		Where(kventry.Key(key)).
		SetValue(value).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("update %s: %w", key, err)
	}
	if n > 0 {
		return nil
	}

	_, err = r.client.KVEntry.Create().
		SetKey(key).
		SetValue(value).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("create %s: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	_, err := r.client.KVEntry.Delete().
		Where(kventry.Key(key)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

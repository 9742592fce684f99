package store

import (
	"context"
	"fmt"

	"github.com/medtrix/medtrix/ent"
	"github.com/medtrix/medtrix/ent/keyvalue"
)

// Keys written by medtrix.
const (
	KeyTheme   = "medtrix-theme"
	KeyHistory = "medtrix_analytics"
)

// KV is a persistent string key-value store.
type KV interface {
	// Get returns the value for key. ok is false when the key is unset.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set creates or replaces the value for key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists all stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Clear removes every key.
	Clear(ctx context.Context) error
}

// kvRepo implements KV using the ent client.
type kvRepo struct {
	client *ent.Client
}

func (r *kvRepo) Get(ctx context.Context, key string) (string, bool, error) {
	kv, err := r.client.KeyValue.Query().
		Where(keyvalue.Key(key)).
		Only(ctx)
	if err != nil {
		if ent.IsNotFound(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %q: %w", key, err)
	}
	return kv.Payload, true, nil
}

func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	tx, err := r.client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	n, err := tx.KeyValue.Update().
		Where(keyvalue.Key(key)).
		SetPayload(value).
		Save(ctx)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update %q: %w", key, err)
	}
	if n == 0 {
		_, err = tx.KeyValue.Create().
			SetKey(key).
			SetPayload(value).
			Save(ctx)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("create %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	_, err := r.client.KeyValue.Delete().
		Where(keyvalue.Key(key)).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (r *kvRepo) Keys(ctx context.Context) ([]string, error) {
	keys, err := r.client.KeyValue.Query().
		Order(ent.Asc(keyvalue.FieldKey)).
		Select(keyvalue.FieldKey).
		Strings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list keys: %w", err)
	}
	return keys, nil
}

func (r *kvRepo) Clear(ctx context.Context) error {
	if _, err := r.client.KeyValue.Delete().Exec(ctx); err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	return nil
}

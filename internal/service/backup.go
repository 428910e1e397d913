package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/petpalapp/petpal/internal/errs"
	"github.com/petpalapp/petpal/internal/storage"
)

// Export collects every stored value in the user's partition, keyed by
// storage key, for backups. Unlike regular operations, export reads storage
// rather than memory so the result matches what a restore would see.
func (ps *PetStore) Export(ctx context.Context) (map[string]json.RawMessage, error) {
	if ps.uid == "" {
		return nil, errs.ErrNoSession
	}
	out := map[string]json.RawMessage{}
	for _, key := range storage.UserKeys(ps.uid) {
		raw, ok, err := ps.st.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}
		if !ok {
			continue
		}
		var data json.RawMessage
		if err := storage.DecodeJSON(raw, &data); err != nil {
			return nil, fmt.Errorf("export %s: %w", key, err)
		}
		out[key] = data
	}
	return out, nil
}

// Import restores a backup produced by Export, then reloads the partition.
// Keys outside the user's partition are rejected. Unlike regular mutations,
// import failures are hard errors.
func (ps *PetStore) Import(ctx context.Context, data map[string]json.RawMessage) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	owned := map[string]bool{}
	for _, key := range storage.UserKeys(ps.uid) {
		owned[key] = true
	}
	for key := range data {
		if !owned[key] {
			return fmt.Errorf("%w: key %q is not part of this user's data", errs.ErrValidation, key)
		}
	}
	for key, payload := range data {
		enc, err := storage.EncodeJSON(payload)
		if err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
		if err := ps.st.Set(ctx, key, enc); err != nil {
			return fmt.Errorf("import %s: %w", key, err)
		}
	}
	return ps.load(ctx)
}

// Clear deletes the user's entire partition from storage and resets the
// in-memory state.
func (ps *PetStore) Clear(ctx context.Context) error {
	if ps.uid == "" {
		return errs.ErrNoSession
	}
	if err := ps.st.RemoveMany(ctx, storage.UserKeys(ps.uid)); err != nil {
		return fmt.Errorf("clear partition: %w", err)
	}
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.resetLocked()
	return nil
}

// StorageSize reports the total byte length of the user's stored values.
func (ps *PetStore) StorageSize(ctx context.Context) (int64, error) {
	if ps.uid == "" {
		return 0, errs.ErrNoSession
	}
	var total int64
	for _, key := range storage.UserKeys(ps.uid) {
		raw, ok, err := ps.st.Get(ctx, key)
		if err != nil {
			return 0, fmt.Errorf("size %s: %w", key, err)
		}
		if ok {
			total += int64(len(raw))
		}
	}
	return total, nil
}

// Package organizer is the command surface of the personal organizer. Every
// operation validates its input, runs in exactly one store transaction, records
// an event for each committed mutation and returns errors from the mutate
// taxonomy.
package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"auralis-cli/internal/logging"
	"auralis-cli/internal/model"
	"auralis-cli/internal/mutate"
	"auralis-cli/internal/store"
)

type Options struct {
	DefaultAreaID   string
	DefaultAreaName string
	Logger          *slog.Logger
}

type Service struct {
	st  *store.Store
	log *slog.Logger

	defaultAreaID string
}

// New wraps st and seeds the default area if it does not exist yet.
func New(ctx context.Context, st *store.Store, opts Options) (*Service, error) {
	if st == nil {
		return nil, errors.New("organizer: store is required")
	}
	id := strings.TrimSpace(opts.DefaultAreaID)
	name := strings.TrimSpace(opts.DefaultAreaName)
	if id == "" || name == "" {
		return nil, errors.New("organizer: default area id and name are required")
	}
	l := opts.Logger
	if l == nil {
		l = logging.Discard()
	}
	s := &Service{st: st, log: l, defaultAreaID: id}

	err := st.Update(ctx, func(tx *store.Tx) error {
		created, err := tx.EnsureArea(ctx, &model.Area{ID: id, Name: name, Active: true})
		if err != nil {
			return err
		}
		if created {
			s.log.Info("seeded default area", "id", id, "name", name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("seed default area: %w", err)
	}
	return s, nil
}

func (s *Service) DefaultAreaID() string { return s.defaultAreaID }

// mutation runs fn in a write transaction. On success it logs the committed
// change; on failure it normalizes the error into the taxonomy.
func (s *Service) mutation(ctx context.Context, op string, kind model.Kind, fn func(tx *store.Tx) (string, error)) error {
	var id string
	err := s.st.Update(ctx, func(tx *store.Tx) error {
		var err error
		id, err = fn(tx)
		return err
	})
	if err != nil {
		return s.fail(op, err)
	}
	s.log.Debug("mutation", "op", op, "kind", string(kind), "id", id)
	return nil
}

func (s *Service) view(ctx context.Context, op string, fn func(tx *store.Tx) error) error {
	if err := s.st.View(ctx, fn); err != nil {
		return s.fail(op, err)
	}
	return nil
}

func (s *Service) fail(op string, err error) error {
	if mutate.Code(err) != mutate.CodeStoreFailure {
		return err
	}
	var sf mutate.StoreFailure
	if !errors.As(err, &sf) {
		err = mutate.StoreFailure{Op: op, Err: err}
	}
	s.log.Error("store failure", "op", op, "err", err)
	return err
}

func record(ctx context.Context, tx *store.Tx, typ string, kind model.Kind, id string, payload any) error {
	if err := tx.AppendEvent(ctx, typ, kind, id, payload); err != nil {
		return mutate.StoreFailure{Op: "append event " + typ, Err: err}
	}
	return nil
}

// getErr maps a keyed lookup failure.
func getErr(kind model.Kind, id string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return mutate.NotFoundError{Kind: kind, ID: id}
	}
	return mutate.StoreFailure{Op: "get " + string(kind), Err: err}
}

func requireText(field, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", mutate.ValidationError{Field: field, Reason: "must not be empty"}
	}
	return v, nil
}

func requireID(kind model.Kind, id string) (string, error) {
	return requireText(string(kind)+" id", id)
}

// parse converts an enum parse failure into a ValidationError.
func parse[T any](fn func(string) (T, error), v string) (T, error) {
	out, err := fn(v)
	if err != nil {
		var ee model.EnumError
		if errors.As(err, &ee) {
			return out, mutate.ValidationError{
				Field:  ee.Field,
				Reason: fmt.Sprintf("%q is not one of %s", ee.Value, strings.Join(ee.Expected, "|")),
			}
		}
		return out, mutate.ValidationError{Field: "value", Reason: err.Error()}
	}
	return out, nil
}

// parseOptional parses v unless it is blank, in which case the filter is absent.
func parseOptional[T any](fn func(string) (T, error), v string) (*T, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	out, err := parse(fn, v)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

package organizer

import (
	"context"

	"auralis-cli/internal/store"
)

// Doctor reports stored data that violates the organizer's invariants.
func (s *Service) Doctor(ctx context.Context) (store.DoctorReport, error) {
	var rep store.DoctorReport
	err := s.view(ctx, "doctor", func(tx *store.Tx) error {
		var err error
		rep, err = tx.Doctor(ctx, s.defaultAreaID)
		return err
	})
	return rep, err
}

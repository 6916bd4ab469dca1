package a

import "context"

type Writer interface {
	AddSchedule(id string) error
}

type Store interface {
	Update(ctx context.Context, fn func(Writer) error) error
}

type Extractor interface {
	Extract(ctx context.Context, text string) (string, error)
}

func bad(ctx context.Context, ids []string, s Store, e Extractor) {
	for _, id := range ids {
		_ = s.Update(ctx, func(w Writer) error { return w.AddSchedule(id) }) // want "Update called inside loop"
		_, _ = e.Extract(ctx, id)                                            // want "Extract called inside loop"
	}
}

func good(ctx context.Context, ids []string, s Store) {
	// One rewrite for the whole batch
	_ = s.Update(ctx, func(w Writer) error {
		for _, id := range ids {
			if err := w.AddSchedule(id); err != nil {
				return err
			}
		}
		return nil
	})
}

func deferred(ctx context.Context, ids []string, s Store) []func() error {
	var fns []func() error
	for _, id := range ids {
		fns = append(fns, func() error {
			return s.Update(ctx, func(w Writer) error { return w.AddSchedule(id) })
		})
	}
	return fns
}

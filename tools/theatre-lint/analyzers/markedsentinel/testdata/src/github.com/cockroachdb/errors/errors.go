package errors

func Is(err, reference error) bool { return err == reference }

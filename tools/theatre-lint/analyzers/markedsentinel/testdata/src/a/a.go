package a

import (
	stderrors "errors"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"

	"entities"
)

func bad(t assert.TestingT, err error) bool {
	assert.ErrorIs(t, err, entities.ErrConflict)   // want "assert.ErrorIs cannot match marked sentinel entities.ErrConflict"
	return stderrors.Is(err, entities.ErrNotFound) // want "errors.Is cannot match marked sentinel entities.ErrNotFound"
}

func good(t assert.TestingT, err error) bool {
	assert.ErrorIs(t, err, io.EOF)
	assert.Error(t, err)
	return errors.Is(err, entities.ErrNotFound) || stderrors.Is(err, io.EOF)
}

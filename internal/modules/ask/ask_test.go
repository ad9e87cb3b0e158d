package ask

import (
	"context"
	"errors"
	"testing"

	"github.com/astucieuxx/atenea-core/internal/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

func TestAskRejectsShortQuestion(t *testing.T) {
	// validation happens before any retrieval dependency is touched
	svc := NewService(nil, nil, nil, nil)

	_, err := svc.Ask(context.Background(), "¿Amparo?")
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	_, err = svc.Ask(context.Background(), "         ")
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

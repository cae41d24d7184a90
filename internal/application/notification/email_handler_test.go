package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storekeeper-api/internal/application/notification"
	"github.com/jhoicas/storekeeper-api/internal/application/ports"
)

type fakeSender struct {
	sent []ports.EmailNotification
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg ports.EmailNotification) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func TestEmailHandler_EnviaMensajeValido(t *testing.T) {
	sender := &fakeSender{}
	h := notification.NewEmailHandler(sender, nil, nil)

	ok := h.Handle(context.Background(), []byte(`{"to":"a@b.com","subject":"Hola","text":"cuerpo"}`))
	assert.True(t, ok)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "a@b.com", sender.sent[0].To)
}

func TestEmailHandler_DescartaInvalidos(t *testing.T) {
	sender := &fakeSender{}
	h := notification.NewEmailHandler(sender, nil, nil)

	for _, raw := range []string{
		`no-json`,
		`{"subject":"s","text":"t"}`,
		`{"to":"no-es-email","subject":"s","text":"t"}`,
		`{"to":"a@b.com","text":"t"}`,
	} {
		assert.False(t, h.Handle(context.Background(), []byte(raw)), raw)
	}
	assert.Empty(t, sender.sent)
}

func TestEmailHandler_ErrorDeEnvioNoPropaga(t *testing.T) {
	h := notification.NewEmailHandler(&fakeSender{err: errors.New("smtp caído")}, nil, nil)
	assert.False(t, h.Handle(context.Background(), []byte(`{"to":"a@b.com","subject":"s","text":"t"}`)))
}

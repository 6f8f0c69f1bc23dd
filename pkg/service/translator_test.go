package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fieldgate-project/fieldgate-go/pkg/event"
	"github.com/fieldgate-project/fieldgate-go/pkg/model"
)

func TestTranslateMessage(t *testing.T) {
	updates := []event.Update{{SensorID: 3, Value: model.IntValue(7)}}

	tests := []struct {
		name     string
		msg      event.Message
		wantOK   bool
		wantType event.Type
	}{
		{
			name:     "update",
			msg:      event.Message{Kind: event.KindUpdate, Updates: updates},
			wantOK:   true,
			wantType: event.TypeDataUpdate,
		},
		{
			name:   "update with error flag ignored",
			msg:    event.Message{Kind: event.KindUpdate, Error: true},
			wantOK: false,
		},
		{
			name:     "request",
			msg:      event.Message{Kind: event.KindRequest, SensorIDs: []int{1, 2}},
			wantOK:   true,
			wantType: event.TypePublishRequest,
		},
		{
			name:   "request with error flag ignored",
			msg:    event.Message{Kind: event.KindRequest, Error: true},
			wantOK: false,
		},
		{
			name:     "register success",
			msg:      event.Message{Kind: event.KindRegister, Token: "abc123"},
			wantOK:   true,
			wantType: event.TypeRegisterOK,
		},
		{
			name:     "register failure",
			msg:      event.Message{Kind: event.KindRegister, Error: true},
			wantOK:   true,
			wantType: event.TypeRegisterFailed,
		},
		{
			name:     "unregister request",
			msg:      event.Message{Kind: event.KindUnregister},
			wantOK:   true,
			wantType: event.TypeUnregisterRequested,
		},
		{
			name:   "unregister with error flag ignored",
			msg:    event.Message{Kind: event.KindUnregister, Error: true},
			wantOK: false,
		},
		{
			name:     "auth success",
			msg:      event.Message{Kind: event.KindAuth},
			wantOK:   true,
			wantType: event.TypeAuthOK,
		},
		{
			name:     "auth failure",
			msg:      event.Message{Kind: event.KindAuth, Error: true},
			wantOK:   true,
			wantType: event.TypeAuthFailed,
		},
		{
			name:     "schema success",
			msg:      event.Message{Kind: event.KindSchema},
			wantOK:   true,
			wantType: event.TypeSchemaOK,
		},
		{
			name:     "schema failure",
			msg:      event.Message{Kind: event.KindSchema, Error: true},
			wantOK:   true,
			wantType: event.TypeSchemaFailed,
		},
		{
			name:   "list reply ignored",
			msg:    event.Message{Kind: event.KindList},
			wantOK: false,
		},
		{
			name:   "unknown kind ignored",
			msg:    event.Message{Kind: event.MessageKind(200)},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, ok := translateMessage(tt.msg)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantType, ev.Type)

			switch tt.wantType {
			case event.TypeRegisterOK:
				assert.Equal(t, "abc123", ev.Token)
			case event.TypeDataUpdate:
				assert.Equal(t, updates, ev.Updates)
			case event.TypePublishRequest:
				assert.Equal(t, []int{1, 2}, ev.SensorIDs)
			}
		})
	}
}

package event

import (
	"testing"

	"github.com/fieldgate-project/fieldgate-go/pkg/model"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		typ  Type
		want string
	}{
		{TypeReady, "READY"},
		{TypeNotReady, "NOT_READY"},
		{TypeTimeout, "TIMEOUT"},
		{TypeDataUpdate, "DATA_UPDATE"},
		{TypePublishRequest, "PUBLISH_REQUEST"},
		{TypeRegisterOK, "REGISTER_OK"},
		{TypeRegisterFailed, "REGISTER_FAILED"},
		{TypeAuthOK, "AUTH_OK"},
		{TypeAuthFailed, "AUTH_FAILED"},
		{TypeSchemaOK, "SCHEMA_OK"},
		{TypeSchemaFailed, "SCHEMA_FAILED"},
		{TypeUnregisterRequested, "UNREGISTER_REQUESTED"},
		{Type(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("Type(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestMessageKindString(t *testing.T) {
	tests := []struct {
		kind MessageKind
		want string
	}{
		{KindUpdate, "UPDATE"},
		{KindRequest, "REQUEST"},
		{KindRegister, "REGISTER"},
		{KindUnregister, "UNREGISTER"},
		{KindAuth, "AUTH"},
		{KindSchema, "SCHEMA"},
		{KindList, "LIST"},
		{MessageKind(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("MessageKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestConstructors(t *testing.T) {
	if ev := PublishRequest(7); ev.Type != TypePublishRequest || len(ev.SensorIDs) != 1 || ev.SensorIDs[0] != 7 {
		t.Errorf("PublishRequest(7) = %+v", ev)
	}

	if ev := RegisterOK("abc123"); ev.Type != TypeRegisterOK || ev.Token != "abc123" {
		t.Errorf("RegisterOK = %+v", ev)
	}

	updates := []Update{{SensorID: 1, Value: model.IntValue(5)}}
	if ev := DataUpdate(updates); ev.Type != TypeDataUpdate || len(ev.Updates) != 1 {
		t.Errorf("DataUpdate = %+v", ev)
	}

	if Ready().Type != TypeReady || NotReady().Type != TypeNotReady || Timeout().Type != TypeTimeout {
		t.Error("nullary constructors returned wrong types")
	}
}

package broker

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fieldgate-project/fieldgate-go/pkg/event"
	"github.com/fieldgate-project/fieldgate-go/pkg/model"
)

// kindUnknown tags inbound messages whose type string is not part of the
// protocol. They flow through untranslated and are ignored downstream.
const kindUnknown = event.MessageKind(0xFF)

type registerRequest struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type authRequest struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type schemaRequest struct {
	ID     string        `json:"id"`
	Schema []schemaEntry `json:"schema"`
}

type schemaEntry struct {
	SensorID  int    `json:"sensor_id"`
	ValueType string `json:"value_type"`
	Unit      uint8  `json:"unit"`
	TypeID    uint16 `json:"type_id"`
	Name      string `json:"name"`
}

type dataPublication struct {
	ID       string `json:"id"`
	SensorID int    `json:"sensor_id"`
	Value    any    `json:"value"`
}

// inboundEnvelope is the wire shape of messages arriving on the device topic.
type inboundEnvelope struct {
	Type      string          `json:"type"`
	Error     bool            `json:"error,omitempty"`
	Token     string          `json:"token,omitempty"`
	SensorIDs []int           `json:"sensor_ids,omitempty"`
	Data      []inboundUpdate `json:"data,omitempty"`
}

type inboundUpdate struct {
	SensorID int             `json:"sensor_id"`
	Value    json.RawMessage `json:"value"`
}

func marshalPayload(payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

func newSchemaRequest(id string, items []model.SchemaItem) schemaRequest {
	req := schemaRequest{ID: id, Schema: make([]schemaEntry, 0, len(items))}
	for _, item := range items {
		req.Schema = append(req.Schema, schemaEntry{
			SensorID:  item.SensorID,
			ValueType: strings.ToLower(item.Schema.ValueType.String()),
			Unit:      item.Schema.Unit,
			TypeID:    item.Schema.TypeID,
			Name:      item.Schema.Name,
		})
	}
	return req
}

// encodeValue renders a typed value as its JSON form: booleans and numbers
// natively, raw bytes as base64 text.
func encodeValue(v model.Value) any {
	switch v.Type {
	case model.ValueTypeBool:
		return v.Bool
	case model.ValueTypeInt:
		return v.Int
	case model.ValueTypeFloat:
		return v.Float
	case model.ValueTypeRaw:
		return base64.StdEncoding.EncodeToString(v.Raw)
	default:
		return nil
	}
}

// decodeValue reads a JSON value back into a typed value. The wire carries
// no schema, so the JSON token decides the type: true/false is a boolean,
// a number without fraction or exponent is an integer, any other number is
// a float, and a string is base64 raw bytes.
func decodeValue(raw json.RawMessage) (model.Value, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" {
		return model.Value{}, fmt.Errorf("empty value")
	}

	switch trimmed[0] {
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return model.Value{}, err
		}
		return model.BoolValue(b), nil

	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return model.Value{}, err
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return model.Value{}, fmt.Errorf("raw value: %w", err)
		}
		return model.RawValue(data), nil

	default:
		if strings.ContainsAny(trimmed, ".eE") {
			var f float64
			if err := json.Unmarshal(raw, &f); err != nil {
				return model.Value{}, err
			}
			return model.FloatValue(f), nil
		}
		var i int64
		if err := json.Unmarshal(raw, &i); err != nil {
			return model.Value{}, err
		}
		return model.IntValue(i), nil
	}
}

func kindFromString(s string) event.MessageKind {
	switch s {
	case "update":
		return event.KindUpdate
	case "request":
		return event.KindRequest
	case "register":
		return event.KindRegister
	case "unregister":
		return event.KindUnregister
	case "auth":
		return event.KindAuth
	case "schema":
		return event.KindSchema
	case "list":
		return event.KindList
	default:
		return kindUnknown
	}
}

// decodeMessage parses one inbound payload. Unknown type strings decode
// successfully into an unknown kind; only malformed JSON or broken values
// fail.
func decodeMessage(payload []byte) (event.Message, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return event.Message{}, fmt.Errorf("decode envelope: %w", err)
	}

	msg := event.Message{
		Kind:      kindFromString(env.Type),
		Error:     env.Error,
		Token:     env.Token,
		SensorIDs: env.SensorIDs,
	}

	for _, u := range env.Data {
		value, err := decodeValue(u.Value)
		if err != nil {
			return event.Message{}, fmt.Errorf("sensor %d: %w", u.SensorID, err)
		}
		msg.Updates = append(msg.Updates, event.Update{
			SensorID: u.SensorID,
			Value:    value,
		})
	}
	return msg, nil
}

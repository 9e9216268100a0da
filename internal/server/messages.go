package server

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/msto63/fnc/foundation/lang"
	mdwast "github.com/msto63/fnc/foundation/lang/ast"
	mdwparser "github.com/msto63/fnc/foundation/lang/parser"
	"github.com/msto63/fnc/internal/store"
)

// TokenInfo describes one token on the wire
type TokenInfo struct {
	Type   string `json:"type"`
	Value  string `json:"value"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

// TokenizeReply is the body of a Tokenize response
type TokenizeReply struct {
	Tokens []TokenInfo      `json:"tokens"`
	Faults []lang.FaultInfo `json:"faults"`
}

// ParseReply is the body of a Parse response
type ParseReply struct {
	JobID      uuid.UUID        `json:"job_id"`
	Name       string           `json:"name"`
	OK         bool             `json:"ok"`
	AST        string           `json:"ast"`
	Program    string           `json:"program"`
	Faults     []lang.FaultInfo `json:"faults"`
	Stats      lang.Stats       `json:"stats"`
	DurationMS float64          `json:"duration_ms"`
	Recorded   bool             `json:"recorded"`
	Cached     bool             `json:"cached"`
}

// HistoryReply is the body of a History response
type HistoryReply struct {
	Jobs []*store.Job `json:"jobs"`
}

// NewTokenizeReply builds the reply for a tokenize run; err is the lex
// fault, if any
func NewTokenizeReply(tokens []mdwparser.Token, err error) TokenizeReply {
	reply := TokenizeReply{
		Tokens: tokenInfos(tokens),
		Faults: []lang.FaultInfo{},
	}
	if err != nil {
		reply.Faults = append(reply.Faults, lang.Describe(err))
	}
	return reply
}

// NewParseReply builds the reply for an engine result
func NewParseReply(result *lang.Result) ParseReply {
	reply := ParseReply{
		JobID:      result.JobID,
		Name:       result.Name,
		OK:         result.OK(),
		Faults:     result.FaultInfos(),
		Stats:      result.Stats,
		DurationMS: float64(result.Duration.Microseconds()) / 1000,
	}
	if result.Program != nil {
		reply.AST = mdwast.Dump(result.Program)
		reply.Program = result.Program.String()
	}
	return reply
}

func tokenInfos(tokens []mdwparser.Token) []TokenInfo {
	infos := make([]TokenInfo, 0, len(tokens))
	for _, tok := range tokens {
		infos = append(infos, TokenInfo{
			Type:   tok.Type.String(),
			Value:  tok.Value,
			Line:   tok.Line,
			Column: tok.Column,
		})
	}
	return infos
}

// encode converts a reply into a Struct through its JSON form
func encode(v interface{}) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, err
	}
	return out, nil
}

// decode fills v from a Struct through its JSON form
func decode(in *structpb.Struct, v interface{}) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// stringField returns the string field key. required reports a missing
// field as an error; a present field of another kind is always an error.
func stringField(in *structpb.Struct, key string, required bool) (string, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		if required {
			return "", fmt.Errorf("missing field %q", key)
		}
		return "", nil
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return s.StringValue, nil
}

func boolField(in *structpb.Struct, key string) (bool, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return false, nil
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, fmt.Errorf("field %q must be a bool", key)
	}
	return b.BoolValue, nil
}

func intField(in *structpb.Struct, key string) (int, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return 0, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != float64(int(n.NumberValue)) {
		return 0, fmt.Errorf("field %q must be an integer", key)
	}
	return int(n.NumberValue), nil
}

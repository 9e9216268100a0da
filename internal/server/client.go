package server

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

// Client calls fnc.v1.ParseService
type Client struct {
	conn grpc.ClientConnInterface
}

// NewClient creates a client on an established connection
func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Tokenize sends source to the remote lexer
func (c *Client) Tokenize(ctx context.Context, source string) (*TokenizeReply, error) {
	in, err := structpb.NewStruct(map[string]interface{}{"source": source})
	if err != nil {
		return nil, err
	}

	var reply TokenizeReply
	if err := c.call(ctx, "Tokenize", in, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// ParseOptions are the optional fields of a Parse request
type ParseOptions struct {
	Record      bool // store the job in the server's history
	StopOnError bool // end the parse at the first fault
}

// Parse sends source to the remote parser. record asks the server to store
// the job in its history.
func (c *Client) Parse(ctx context.Context, name, source string, record bool) (*ParseReply, error) {
	return c.ParseWithOptions(ctx, name, source, ParseOptions{Record: record})
}

// ParseWithOptions sends source to the remote parser with opts
func (c *Client) ParseWithOptions(ctx context.Context, name, source string, opts ParseOptions) (*ParseReply, error) {
	in, err := structpb.NewStruct(map[string]interface{}{
		"name":          name,
		"source":        source,
		"record":        opts.Record,
		"stop_on_error": opts.StopOnError,
	})
	if err != nil {
		return nil, err
	}

	var reply ParseReply
	if err := c.call(ctx, "Parse", in, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

// History lists the most recent jobs recorded by the server
func (c *Client) History(ctx context.Context, limit int) (*HistoryReply, error) {
	in, err := structpb.NewStruct(map[string]interface{}{"limit": limit})
	if err != nil {
		return nil, err
	}

	var reply HistoryReply
	if err := c.call(ctx, "History", in, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *Client) call(ctx context.Context, method string, in *structpb.Struct, reply interface{}) error {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, "/"+ServiceName+"/"+method, in, out); err != nil {
		return err
	}
	if err := decode(out, reply); err != nil {
		return fmt.Errorf("failed to decode %s reply: %w", method, err)
	}
	return nil
}

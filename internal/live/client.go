package live

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "stagehand/internal/api/pb"
)

// Client connects to a show feed gRPC server and delivers events to a
// callback, giving consoles a local mirror of a running deployment.
type Client struct {
	addr string
	log  *slog.Logger
}

// NewClient creates a client targeting the given gRPC address.
func NewClient(addr string, log *slog.Logger) *Client {
	return &Client{addr: addr, log: log}
}

// Watch connects to the gRPC server and streams show events for a strategy,
// invoking fn for each one. It blocks until ctx is cancelled or the stream
// ends.
func (c *Client) Watch(ctx context.Context, strategy string, fn func(*pb.ShowEvent)) error {
	conn, err := grpc.NewClient(c.addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", c.addr, err)
	}
	defer conn.Close()

	client := pb.NewShowFeedClient(conn)
	stream, err := client.StreamShow(ctx, &pb.StreamShowRequest{Strategy: strategy})
	if err != nil {
		return fmt.Errorf("starting stream: %w", err)
	}

	c.log.Info("connected to show feed", "addr", c.addr, "strategy", strategy)

	for {
		evt, err := stream.Recv()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("receiving event: %w", err)
		}
		fn(evt)
	}
}

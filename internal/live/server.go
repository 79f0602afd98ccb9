package live

import (
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "stagehand/internal/api/pb"
)

// Server implements the ShowFeed gRPC endpoint.
type Server struct {
	pb.UnimplementedShowFeedServer
	manager *Manager
	log     *slog.Logger
}

// NewServer creates a gRPC server backed by the given deployment Manager.
func NewServer(manager *Manager, log *slog.Logger) *Server {
	return &Server{manager: manager, log: log}
}

// RegisterGRPC registers the server on the given gRPC server instance.
func (s *Server) RegisterGRPC(gs *grpc.Server) {
	pb.RegisterShowFeedServer(gs, s)
}

// StreamShow streams show events for one deployed strategy. The stream ends
// when the client disconnects or the deployment stops.
func (s *Server) StreamShow(req *pb.StreamShowRequest, stream grpc.ServerStreamingServer[pb.ShowEvent]) error {
	session, ok := s.manager.Get(req.GetStrategy())
	if !ok {
		return status.Errorf(codes.NotFound, "strategy %q is not deployed", req.GetStrategy())
	}

	subID, ch := session.Subscribe(4096)
	defer session.Unsubscribe(subID)

	s.log.Info("grpc client subscribed", "strategy", req.GetStrategy(), "subID", subID)

	ctx := stream.Context()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("grpc client disconnected", "subID", subID)
			return nil
		case evt, ok := <-ch:
			if !ok {
				return nil
			}
			if err := stream.Send(eventToProto(&evt)); err != nil {
				return err
			}
		}
	}
}

func eventToProto(e *Event) *pb.ShowEvent {
	out := &pb.ShowEvent{
		Timestamp: e.Timestamp,
		Price:     e.Price,
		Action:    string(e.Decision.Action),
		Reason:    string(e.Decision.Reason),
		Message:   e.Decision.Message,
		Pnl:       e.Decision.PnL,
		Balance:   e.Balance,
		VibeScore: e.VibeScore,
		VibeLevel: e.VibeLevel,
	}
	for _, c := range e.Comments {
		out.Comments = append(out.Comments, &pb.JudgeComment{
			Judge:     c.Judge,
			Text:      c.Text,
			Timestamp: c.Timestamp,
		})
	}
	return out
}

package delegate

import (
	"context"
	"errors"
	"log"
	"net"

	"github.com/phuhao00/fluxion/wire"
)

// Server accepts foreign connections and answers each request frame
// against a Registration table, one goroutine per connection.
type Server struct {
	registration *Registration
	listener     net.Listener
}

// NewServer creates a Server that will dispatch inbound requests against
// reg.
func NewServer(reg *Registration) *Server {
	return &Server{registration: reg}
}

// Listen starts accepting connections on addr. It blocks until the
// listener is closed, at which point it returns nil.
func (s *Server) Listen(addr string) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = l
	log.Printf("delegate: listening on %s", l.Addr())

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Printf("delegate: accept error: %v", err)
			continue
		}
		go s.handleConn(conn)
	}
}

// Addr returns the address the server is listening on, valid only after
// Listen has been called.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	for {
		req, err := wire.ReadRequest(conn)
		if err != nil {
			return
		}

		resp := wire.Response{RequestID: req.RequestID}
		payload, err := s.registration.Invoke(context.Background(), req.ActorID, req.MessageTypeID, req.Payload)
		switch {
		case err == nil:
			resp.Payload = payload
		case errors.Is(err, ErrNotRegistered):
			resp.ErrKind = wire.ErrKindNotRegistered
			resp.Err = err.Error()
		default:
			resp.ErrKind = wire.ErrKindHandler
			resp.Err = err.Error()
		}

		if err := wire.WriteResponse(conn, resp); err != nil {
			log.Printf("delegate: write response to %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
}
